// Package world tracks the entities of one match and answers the spatial
// and team queries the engines need. Iteration order is insertion order,
// which keeps every query deterministic for a given intent sequence.
package world

import (
	"github.com/kjard-games/snow-sub006/internal/data"
	"github.com/kjard-games/snow-sub006/internal/model"
)

// World owns the entity registry of a single match. Not safe for
// concurrent use; one match = one goroutine.
type World struct {
	entities map[model.EntityID]*model.Character
	order    []model.EntityID
	nextID   model.EntityID
}

// New creates an empty world.
func New() *World {
	return &World{
		entities: make(map[model.EntityID]*model.Character),
	}
}

// NextID allocates a fresh entity id. Ids are never reused in a match.
func (w *World) NextID() model.EntityID {
	w.nextID++
	return w.nextID
}

// Add registers a character. The caller allocates its id via NextID.
func (w *World) Add(c *model.Character) {
	if _, exists := w.entities[c.ID()]; exists {
		return
	}
	w.entities[c.ID()] = c
	w.order = append(w.order, c.ID())
}

// Get returns the character or nil if unknown or removed.
func (w *World) Get(id model.EntityID) *model.Character {
	if id == model.NoEntity {
		return nil
	}
	return w.entities[id]
}

// Remove deletes a character from the registry. Its id stays burned.
func (w *World) Remove(id model.EntityID) {
	if _, ok := w.entities[id]; !ok {
		return
	}
	delete(w.entities, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// All returns all registered characters in insertion order.
func (w *World) All() []*model.Character {
	out := make([]*model.Character, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.entities[id])
	}
	return out
}

// Alive returns all living characters in insertion order.
func (w *World) Alive() []*model.Character {
	out := make([]*model.Character, 0, len(w.order))
	for _, id := range w.order {
		if c := w.entities[id]; c != nil && c.IsAlive() {
			out = append(out, c)
		}
	}
	return out
}

// AlliesNear returns living teammates of the given character within r
// units, excluding the character itself. Insertion order.
func (w *World) AlliesNear(of model.EntityID, r int32) []*model.Character {
	c := w.Get(of)
	if c == nil {
		return nil
	}
	var out []*model.Character
	for _, id := range w.order {
		other := w.entities[id]
		if other == nil || other.ID() == of || !other.IsAlive() {
			continue
		}
		if other.Team() == c.Team() && c.Location().WithinRange(other.Location(), r) {
			out = append(out, other)
		}
	}
	return out
}

// EnemiesNear returns living enemies of the given character within r units.
func (w *World) EnemiesNear(of model.EntityID, r int32) []*model.Character {
	c := w.Get(of)
	if c == nil {
		return nil
	}
	var out []*model.Character
	for _, id := range w.order {
		other := w.entities[id]
		if other == nil || !other.IsAlive() {
			continue
		}
		if other.Team() != c.Team() && c.Location().WithinRange(other.Location(), r) {
			out = append(out, other)
		}
	}
	return out
}

// AdjacentTo returns living characters within AdjacentRange of the given
// character, excluding it.
func (w *World) AdjacentTo(of model.EntityID) []*model.Character {
	c := w.Get(of)
	if c == nil {
		return nil
	}
	var out []*model.Character
	for _, id := range w.order {
		other := w.entities[id]
		if other == nil || other.ID() == of || !other.IsAlive() {
			continue
		}
		if c.Location().WithinRange(other.Location(), data.AdjacentRange) {
			out = append(out, other)
		}
	}
	return out
}

// TeamAlive reports how many living characters the team has.
func (w *World) TeamAlive(team model.Team) int {
	n := 0
	for _, id := range w.order {
		if c := w.entities[id]; c != nil && c.IsAlive() && c.Team() == team {
			n++
		}
	}
	return n
}
