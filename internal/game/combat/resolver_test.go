package combat

import (
	"math/rand/v2"
	"os"
	"testing"

	"github.com/kjard-games/snow-sub006/internal/data"
	"github.com/kjard-games/snow-sub006/internal/game/behavior"
	"github.com/kjard-games/snow-sub006/internal/game/effect"
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
	w         *world.World
	effects   *effect.Engine
	behaviors *behavior.Engine
	r         *Resolver

	attacker *model.Character
	victim   *model.Character

	results []HitResult
}

func newFixture() *fixture {
	w := world.New()
	effects := effect.NewEngine(w, terrain.NewFlatField(terrain.KindSnow))
	behaviors := behavior.NewEngine(w, effects)
	r := NewResolver(w, effects, behaviors, rand.New(rand.NewPCG(1, 1)))

	effects.SetDamageHook(r.DealEffectDamage)
	behaviors.SetDamageHook(r.DealBehaviorDamage)
	behaviors.SetRedirectHook(r.RedirectDamage)

	f := &fixture{w: w, effects: effects, behaviors: behaviors, r: r}
	r.SetHitObserver(func(res HitResult) { f.results = append(f.results, res) })

	f.attacker = model.NewCharacter(w.NextID(), "attacker", model.TeamAurora, model.SchoolChorus, 100, 50, 30)
	w.Add(f.attacker)
	f.victim = model.NewCharacter(w.NextID(), "victim", model.TeamBoreal, model.SchoolVanguard, 100, 50, 30)
	f.victim.SetLocation(model.Location{X: 50})
	w.Add(f.victim)
	return f
}

func (f *fixture) lastResult(t *testing.T) HitResult {
	t.Helper()
	if len(f.results) == 0 {
		t.Fatal("no hit result observed")
	}
	return f.results[len(f.results)-1]
}

func TestUnblockableSkipsAvoidance(t *testing.T) {
	f := newFixture()
	f.victim.SetBaseAvoidance(100)

	// Sharp Icicle is unblockable: the guaranteed avoid never rolls.
	f.r.ResolveSkill(f.attacker.ID(), data.GetSkill(9), f.victim.ID())

	res := f.lastResult(t)
	if res.Blocked {
		t.Error("unblockable hit was blocked")
	}
	if res.Damage != 10 {
		t.Errorf("damage = %d, want 10", res.Damage)
	}
	if f.victim.Warmth() != 90 {
		t.Errorf("victim warmth = %d, want 90", f.victim.Warmth())
	}
}

func TestAvoidanceBlocksAndTriggersStance(t *testing.T) {
	f := newFixture()
	f.victim.SetBaseAvoidance(100)

	// Retort stance on the victim retaliates on block.
	f.effects.Apply(data.GetEffect(110), f.victim.ID(), f.victim.ID())

	f.r.ResolveSkill(f.attacker.ID(), data.GetSkill(2), f.victim.ID())

	res := f.lastResult(t)
	if !res.Blocked {
		t.Fatal("hit was not blocked at 100 avoidance")
	}
	if f.victim.Warmth() != 100 {
		t.Error("blocked hit dealt damage")
	}
	if f.attacker.Warmth() != 90 {
		t.Errorf("attacker warmth = %d, want 90 after retaliation", f.attacker.Warmth())
	}
}

func TestArmorMitigatesHit(t *testing.T) {
	f := newFixture()
	f.victim.SetBaseArmor(40)

	// Sharp Icicle: 10 base, soak 0.25 against armor 40 -> x0.625 -> 6.
	f.r.ResolveSkill(f.attacker.ID(), data.GetSkill(9), f.victim.ID())

	if got := f.lastResult(t).Damage; got != 6 {
		t.Errorf("damage = %d, want 6", got)
	}
}

func TestOnHitRidersLand(t *testing.T) {
	f := newFixture()

	// Snowball Toss applies Frostbite on hit (victim avoidance is 0).
	f.r.ResolveSkill(f.attacker.ID(), data.GetSkill(1), f.victim.ID())

	if _, stacks := f.effects.ConditionState(f.victim.ID(), 301); stacks != 1 {
		t.Errorf("frostbite stacks = %d, want 1", stacks)
	}
}

func TestProjectilePreventedByVeil(t *testing.T) {
	f := newFixture()
	f.behaviors.Grant(f.victim.ID(), 204)

	f.r.ResolveSkill(f.attacker.ID(), data.GetSkill(1), f.victim.ID())

	res := f.lastResult(t)
	if !res.Prevented {
		t.Fatal("projectile not prevented")
	}
	if f.victim.Warmth() != 100 {
		t.Error("prevented projectile dealt damage")
	}
	if _, stacks := f.effects.ConditionState(f.victim.ID(), 301); stacks != 0 {
		t.Error("prevented projectile applied riders")
	}
}

func TestWouldDieRescueAborts(t *testing.T) {
	f := newFixture()
	f.victim.SetWarmth(5)
	f.behaviors.Grant(f.victim.ID(), 201) // Last Ember

	f.r.ResolveSkill(f.attacker.ID(), data.GetSkill(9), f.victim.ID())

	res := f.lastResult(t)
	if res.Lethal {
		t.Error("rescued hit reported lethal")
	}
	if !f.victim.IsAlive() {
		t.Fatal("victim died through rescue")
	}
	if f.victim.Warmth() != 25 {
		t.Errorf("warmth = %d, want rescue floor 25", f.victim.Warmth())
	}
}

func TestLethalHitDownsAndCleansUp(t *testing.T) {
	f := newFixture()
	f.victim.SetWarmth(5)
	f.effects.Apply(data.GetEffect(101), f.attacker.ID(), f.victim.ID())
	f.behaviors.Grant(f.victim.ID(), 205)

	f.r.ResolveSkill(f.attacker.ID(), data.GetSkill(9), f.victim.ID())

	res := f.lastResult(t)
	if !res.Lethal {
		t.Fatal("killing hit not reported lethal")
	}
	if f.victim.IsAlive() {
		t.Fatal("victim survived lethal hit")
	}
	if len(f.effects.Conditions(f.victim.ID())) != 0 {
		t.Error("conditions survived death")
	}
	if f.behaviors.ActiveCount(f.victim.ID()) != 0 {
		t.Error("behaviors survived death")
	}
}

func TestAllySkillGrantsBehavior(t *testing.T) {
	f := newFixture()
	ally := model.NewCharacter(f.w.NextID(), "ally", model.TeamAurora, model.SchoolVanguard, 100, 50, 30)
	f.w.Add(ally)

	// Guardian Pact attaches its bond to the ally, unmitigated.
	f.r.ResolveSkill(f.attacker.ID(), data.GetSkill(5), ally.ID())

	if f.behaviors.ActiveCount(ally.ID()) != 1 {
		t.Error("bond not granted")
	}
}

func TestEffectDamagePassesInterception(t *testing.T) {
	f := newFixture()
	f.behaviors.Grant(f.victim.ID(), 204) // projectile veil, wrong trigger

	f.r.DealEffectDamage(f.attacker.ID(), f.victim.ID(), 7)
	if f.victim.Warmth() != 93 {
		t.Errorf("warmth = %d, want 93; veil must not stop effect damage", f.victim.Warmth())
	}
}
