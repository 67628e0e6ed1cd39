package effect

import (
	"github.com/kjard-games/snow-sub006/internal/data"
	"github.com/kjard-games/snow-sub006/internal/model"
	"github.com/kjard-games/snow-sub006/internal/world"
)

// ResolveSelector maps a WHO selector onto concrete living characters,
// relative to the event's source and target. Results follow world
// insertion order, so resolution is deterministic.
func ResolveSelector(sel data.Selector, source, target model.EntityID, w *world.World) []*model.Character {
	alive := func(id model.EntityID) []*model.Character {
		c := w.Get(id)
		if c == nil || !c.IsAlive() {
			return nil
		}
		return []*model.Character{c}
	}

	switch sel {
	case data.SelectSelf, data.SelectSource:
		return alive(source)
	case data.SelectTarget:
		return alive(target)
	case data.SelectAdjacentToTarget:
		return w.AdjacentTo(target)
	case data.SelectNearbyAllies:
		return w.AlliesNear(target, data.NearbyRange)
	case data.SelectNearbyEnemies:
		return w.EnemiesNear(target, data.NearbyRange)
	default:
		return nil
	}
}
