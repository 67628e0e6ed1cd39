package sim

import (
	"github.com/kjard-games/snow-sub006/internal/game/cast"
	"github.com/kjard-games/snow-sub006/internal/game/effect"
	"github.com/kjard-games/snow-sub006/internal/model"
)

// EntityView is the read-only per-entity state in a snapshot.
type EntityView struct {
	ID        model.EntityID
	Name      string
	Team      model.Team
	Warmth    int32
	MaxWarmth int32
	Energy    int32
	Secondary int32
	X, Y      int32
	Alive     bool

	Cast       cast.Progress
	Conditions []effect.ConditionView
}

// Snapshot is the observable match state after a tick. It is a copy;
// holding one across ticks is safe.
type Snapshot struct {
	Tick     int32
	Done     bool
	Winner   model.Team
	Entities []EntityView
}

// Snapshot captures the current observable state in world order.
func (m *Match) Snapshot() Snapshot {
	snap := Snapshot{Tick: m.tick, Done: m.done, Winner: m.winner}
	for _, c := range m.world.All() {
		loc := c.Location()
		snap.Entities = append(snap.Entities, EntityView{
			ID:         c.ID(),
			Name:       c.Name(),
			Team:       c.Team(),
			Warmth:     c.Warmth(),
			MaxWarmth:  c.MaxWarmth(),
			Energy:     c.Energy(),
			Secondary:  c.Secondary(),
			X:          loc.X,
			Y:          loc.Y,
			Alive:      c.IsAlive(),
			Cast:       m.casts.ProgressOf(c.ID()),
			Conditions: m.effects.Conditions(c.ID()),
		})
	}
	return snap
}
