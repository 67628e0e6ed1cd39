package world

import (
	"testing"

	"github.com/kjard-games/snow-sub006/internal/model"
)

func addChar(w *World, name string, team model.Team, at model.Location) *model.Character {
	c := model.NewCharacter(w.NextID(), name, team, model.SchoolVanguard, 100, 50, 30)
	c.SetLocation(at)
	w.Add(c)
	return c
}

func TestAddGetRemove(t *testing.T) {
	w := New()
	a := addChar(w, "a", model.TeamAurora, model.Location{})

	if w.Get(a.ID()) != a {
		t.Fatal("get returned wrong character")
	}
	w.Remove(a.ID())
	if w.Get(a.ID()) != nil {
		t.Error("removed character still resolvable")
	}
	if len(w.All()) != 0 {
		t.Error("removed character still iterated")
	}
}

func TestAllKeepsInsertionOrder(t *testing.T) {
	w := New()
	names := []string{"first", "second", "third"}
	for _, n := range names {
		addChar(w, n, model.TeamAurora, model.Location{})
	}
	for i, c := range w.All() {
		if c.Name() != names[i] {
			t.Errorf("position %d = %q, want %q", i, c.Name(), names[i])
		}
	}
}

func TestAlliesNearExcludesSelfAndDead(t *testing.T) {
	w := New()
	a := addChar(w, "a", model.TeamAurora, model.Location{X: 0})
	b := addChar(w, "b", model.TeamAurora, model.Location{X: 50})
	dead := addChar(w, "dead", model.TeamAurora, model.Location{X: 60})
	dead.Kill()
	addChar(w, "enemy", model.TeamBoreal, model.Location{X: 40})
	addChar(w, "far", model.TeamAurora, model.Location{X: 500})

	allies := w.AlliesNear(a.ID(), 120)
	if len(allies) != 1 || allies[0] != b {
		t.Errorf("allies = %d entries, want only b", len(allies))
	}
}

func TestEnemiesNear(t *testing.T) {
	w := New()
	a := addChar(w, "a", model.TeamAurora, model.Location{X: 0})
	e1 := addChar(w, "e1", model.TeamBoreal, model.Location{X: 80})
	addChar(w, "e2", model.TeamBoreal, model.Location{X: 400})

	enemies := w.EnemiesNear(a.ID(), 120)
	if len(enemies) != 1 || enemies[0] != e1 {
		t.Errorf("enemies = %d entries, want only e1", len(enemies))
	}
}

func TestAdjacentToIgnoresTeams(t *testing.T) {
	w := New()
	a := addChar(w, "a", model.TeamAurora, model.Location{X: 0})
	ally := addChar(w, "ally", model.TeamAurora, model.Location{X: 30})
	enemy := addChar(w, "enemy", model.TeamBoreal, model.Location{X: 20})

	adj := w.AdjacentTo(a.ID())
	if len(adj) != 2 {
		t.Fatalf("adjacent = %d entries, want 2", len(adj))
	}
	if adj[0] != ally || adj[1] != enemy {
		t.Error("adjacent set wrong or out of order")
	}
}

func TestTeamAlive(t *testing.T) {
	w := New()
	addChar(w, "a", model.TeamAurora, model.Location{})
	b := addChar(w, "b", model.TeamAurora, model.Location{})
	addChar(w, "e", model.TeamBoreal, model.Location{})

	if got := w.TeamAlive(model.TeamAurora); got != 2 {
		t.Errorf("aurora alive = %d, want 2", got)
	}
	b.Kill()
	if got := w.TeamAlive(model.TeamAurora); got != 1 {
		t.Errorf("aurora alive after death = %d, want 1", got)
	}
}
