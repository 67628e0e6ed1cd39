package effect

import (
	"os"
	"testing"

	"github.com/kjard-games/snow-sub006/internal/data"
	"github.com/kjard-games/snow-sub006/internal/model"
	"github.com/kjard-games/snow-sub006/internal/terrain"
	"github.com/kjard-games/snow-sub006/internal/world"
)

func TestMain(m *testing.M) {
	if err := data.Load(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fixture struct {
	w *world.World
	e *Engine
	a *model.Character // Aurora
	b *model.Character // Boreal, 20 units away
}

func newFixture() *fixture {
	w := world.New()
	e := NewEngine(w, terrain.NewFlatField(terrain.KindSnow))

	a := model.NewCharacter(w.NextID(), "a", model.TeamAurora, model.SchoolVanguard, 100, 50, 30)
	b := model.NewCharacter(w.NextID(), "b", model.TeamBoreal, model.SchoolChorus, 100, 50, 30)
	b.SetLocation(model.Location{X: 20})
	w.Add(a)
	w.Add(b)
	return &fixture{w: w, e: e, a: a, b: b}
}

func apply(t *testing.T, f *fixture, effectID data.EffectID, source, target model.EntityID) {
	t.Helper()
	eff := data.GetEffect(effectID)
	if eff == nil {
		t.Fatalf("effect %d missing", effectID)
	}
	if f.e.Apply(eff, source, target) != Applied {
		t.Fatalf("effect %d not applied", effectID)
	}
}

func TestIntensityStackingCapsAtMax(t *testing.T) {
	f := newFixture()

	// Frostbite stacks in intensity up to 3.
	for i := 0; i < 4; i++ {
		apply(t, f, 101, f.a.ID(), f.b.ID())
	}
	remaining, stacks := f.e.ConditionState(f.b.ID(), 301)
	if stacks != 3 {
		t.Errorf("stacks = %d, want cap 3", stacks)
	}
	if remaining != 8000 {
		t.Errorf("remaining = %d, want refreshed 8000", remaining)
	}
}

func TestRefreshStackingResetsTimerKeepsStacks(t *testing.T) {
	f := newFixture()

	apply(t, f, 102, f.a.ID(), f.b.ID())
	f.e.Tick(2000)
	if remaining, _ := f.e.ConditionState(f.b.ID(), 302); remaining != 2000 {
		t.Fatalf("remaining = %d, want 2000", remaining)
	}

	apply(t, f, 102, f.a.ID(), f.b.ID())
	remaining, stacks := f.e.ConditionState(f.b.ID(), 302)
	if remaining != 4000 {
		t.Errorf("remaining = %d, want reset 4000", remaining)
	}
	if stacks != 1 {
		t.Errorf("stacks = %d, want 1", stacks)
	}
}

func TestIndependentStackingCoexists(t *testing.T) {
	f := newFixture()

	apply(t, f, 118, f.a.ID(), f.b.ID())
	apply(t, f, 118, f.a.ID(), f.b.ID())
	if got := f.e.ActiveCount(f.b.ID(), 118); got != 2 {
		t.Errorf("instances = %d, want 2 independent", got)
	}
}

func TestPeriodicDamageRoutedThroughHook(t *testing.T) {
	f := newFixture()

	var hits []int32
	f.e.SetDamageHook(func(source, target model.EntityID, amount int32) {
		if source != f.a.ID() || target != f.b.ID() {
			t.Errorf("hook got %d->%d", source, target)
		}
		hits = append(hits, amount)
	})

	apply(t, f, 118, f.a.ID(), f.b.ID())
	f.e.Tick(3000)
	if len(hits) != 3 {
		t.Fatalf("periodic hits = %d, want 3", len(hits))
	}
	for _, h := range hits {
		if h != 4 {
			t.Errorf("hit = %d, want 4", h)
		}
	}
}

func TestExpiryFiresOnEndChain(t *testing.T) {
	f := newFixture()
	f.b.SetWarmth(50)

	// Hearthglow: +2 warmth per second for 10s, then Afterglow heals 10.
	apply(t, f, 103, f.a.ID(), f.b.ID())
	f.e.Tick(10000)

	if got := f.b.Warmth(); got != 80 {
		t.Errorf("warmth = %d, want 50 + 20 ticks + 10 chain = 80", got)
	}
	if remaining, _ := f.e.ConditionState(f.b.ID(), 311); remaining != 0 {
		t.Error("condition survived expiry")
	}
}

func TestCleanseFiresEarlyRemoveChain(t *testing.T) {
	f := newFixture()

	// Packed Guard drains 3 energy via Chilled Soul when stripped early.
	f.e.addCondition(data.GetCondition(312), f.a.ID(), f.b)
	if removed := f.e.Cleanse(f.b.ID(), data.PolarityCozy); removed != 1 {
		t.Fatalf("cleansed = %d, want 1", removed)
	}
	if got := f.b.Energy(); got != 47 {
		t.Errorf("energy = %d, want 47 after chain drain", got)
	}
	if remaining, _ := f.e.ConditionState(f.b.ID(), 312); remaining != 0 {
		t.Error("condition survived cleanse")
	}
}

func TestStatValueFoldsModifiers(t *testing.T) {
	f := newFixture()

	// Packed Coat: +20 armor while active.
	apply(t, f, 107, f.a.ID(), f.a.ID())
	if got := f.e.StatValue(f.a.ID(), data.StatArmor, 10); got != 30 {
		t.Errorf("armor = %v, want 30", got)
	}

	// Brittleframe: -10 armor, additive before the multiplier fold.
	apply(t, f, 108, f.b.ID(), f.a.ID())
	if got := f.e.StatValue(f.a.ID(), data.StatArmor, 10); got != 20 {
		t.Errorf("armor with debuff = %v, want 20", got)
	}
}

func TestStatValueMultiplicativePerStack(t *testing.T) {
	f := newFixture()

	// Frostbite at two stacks: speed x0.85 per stack.
	apply(t, f, 101, f.a.ID(), f.b.ID())
	apply(t, f, 101, f.a.ID(), f.b.ID())
	want := 40 * 0.85 * 0.85
	if got := f.e.StatValue(f.b.ID(), data.StatSpeed, 40); got != want {
		t.Errorf("speed = %v, want %v", got, want)
	}
}

func TestOnBlockStanceRetaliates(t *testing.T) {
	f := newFixture()

	var gotSource, gotTarget model.EntityID
	var gotAmount int32
	f.e.SetDamageHook(func(source, target model.EntityID, amount int32) {
		gotSource, gotTarget, gotAmount = source, target, amount
	})

	// Retort stance on a; b's blocked attack triggers it.
	apply(t, f, 110, f.a.ID(), f.a.ID())
	f.e.OnBlock(f.a.ID(), f.b.ID())

	if gotSource != f.a.ID() || gotTarget != f.b.ID() || gotAmount != 10 {
		t.Errorf("retaliation = %d->%d for %d, want a->b for 10", gotSource, gotTarget, gotAmount)
	}
}

func TestDropAllDiscardsWithoutChains(t *testing.T) {
	f := newFixture()

	f.e.addCondition(data.GetCondition(312), f.a.ID(), f.b)
	f.e.DropAll(f.b.ID())
	if got := f.b.Energy(); got != 50 {
		t.Errorf("energy = %d, drop must not fire chains", got)
	}
	if len(f.e.Conditions(f.b.ID())) != 0 {
		t.Error("conditions survived drop")
	}
}

func TestPredicateGatedEffectSkipsQuietly(t *testing.T) {
	f := newFixture()

	var called bool
	f.e.SetDamageHook(func(_, _ model.EntityID, _ int32) { called = true })

	// Frost Snap only lands on ice; the fixture field is snow.
	eff := data.GetEffect(117)
	if f.e.Apply(eff, f.a.ID(), f.b.ID()) != Skipped {
		t.Error("gated effect reported as applied")
	}
	if called {
		t.Error("gated effect dealt damage")
	}
}

func TestTerrainPredicateFollowsShapedGround(t *testing.T) {
	f := newFixture()
	field := terrain.NewFlatField(terrain.KindSnow)
	f.e.field = field

	field.Shape(f.b.Location(), 40, terrain.KindIce)

	var called bool
	f.e.SetDamageHook(func(_, _ model.EntityID, _ int32) { called = true })
	if f.e.Apply(data.GetEffect(117), f.a.ID(), f.b.ID()) != Applied {
		t.Fatal("effect not applied on ice")
	}
	if !called {
		t.Error("damage hook not invoked")
	}
}
