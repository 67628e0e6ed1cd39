// Package combat resolves released skills against their targets: the
// avoidance roll, armor mitigation, behavior interception and the death
// check, in that order.
package combat

import (
	"log/slog"
	"math/rand/v2"

	"github.com/kjard-games/snow-sub006/internal/data"
	"github.com/kjard-games/snow-sub006/internal/game/behavior"
	"github.com/kjard-games/snow-sub006/internal/game/effect"
	"github.com/kjard-games/snow-sub006/internal/model"
	"github.com/kjard-games/snow-sub006/internal/world"
)

// HitResult describes one resolved hostile skill application. Observers
// receive it after the outcome committed (tests, telemetry, replay).
type HitResult struct {
	Caster model.EntityID
	Target model.EntityID
	Skill  data.SkillID

	Projectile bool
	Blocked    bool
	Prevented  bool
	Damage     int32
	Lethal     bool
}

// Resolver turns released skills into world mutations. It owns the
// single RNG stream of the match: the avoidance roll is the only random
// draw in resolution, so replays reproduce bit for bit from the seed.
type Resolver struct {
	world     *world.World
	effects   *effect.Engine
	behaviors *behavior.Engine
	rng       *rand.Rand

	observer func(HitResult)
}

// NewResolver creates a combat resolver over the given engines.
func NewResolver(w *world.World, effects *effect.Engine, behaviors *behavior.Engine, rng *rand.Rand) *Resolver {
	return &Resolver{
		world:     w,
		effects:   effects,
		behaviors: behaviors,
		rng:       rng,
	}
}

// SetHitObserver wires a post-resolution observer.
func (r *Resolver) SetHitObserver(fn func(HitResult)) {
	r.observer = fn
}

// ResolveSkill resolves a released skill payload against its stored
// target. This is the cast manager's release hook: by the time it runs,
// costs are spent and the recharge is counting whatever happens here.
func (r *Resolver) ResolveSkill(caster model.EntityID, sk *data.Skill, target model.EntityID) {
	c := r.world.Get(caster)
	if c == nil || !c.IsAlive() {
		return
	}

	switch sk.Targeting {
	case data.TargetEnemy:
		tgt := r.world.Get(target)
		if tgt == nil || !tgt.IsAlive() {
			slog.Debug("skill fizzled, target gone", "caster", c.Name(), "skill", sk.Name)
			return
		}
		r.resolveHostile(c, sk, tgt)

	default:
		// Self, ally and ground payloads are never avoided or mitigated.
		r.effects.ApplyWhen(sk.Effects, data.TriggerOnHit, caster, target)
		if sk.Behavior != 0 {
			r.behaviors.Grant(target, sk.Behavior)
		}
	}
}

// resolveHostile runs the full hostile pipeline: projectile
// interception, the avoidance roll, mitigation, take-damage
// interception, warmth loss and on-hit riders.
func (r *Resolver) resolveHostile(c *model.Character, sk *data.Skill, tgt *model.Character) {
	res := HitResult{
		Caster:     c.ID(),
		Target:     tgt.ID(),
		Skill:      sk.ID,
		Projectile: sk.Projectile,
	}

	if sk.Projectile {
		ev := &behavior.Event{
			Trigger:    data.TriggerHitByProjectile,
			Source:     c.ID(),
			Target:     tgt.ID(),
			Projectile: true,
		}
		r.behaviors.Dispatch(ev)
		if ev.Prevented {
			res.Prevented = true
			r.notify(res)
			return
		}
		// A redirect may have moved the hit elsewhere mid-flight.
		tgt = r.world.Get(ev.Target)
		if tgt == nil || !tgt.IsAlive() {
			r.notify(res)
			return
		}
		res.Target = tgt.ID()
	}

	// Unblockable attacks skip the avoidance draw entirely; they still
	// face armor below.
	if !sk.Unblockable {
		avoidance := r.effects.StatValue(tgt.ID(), data.StatAvoidance, float64(tgt.BaseAvoidance()))
		if r.rng.IntN(100) < int(avoidance) {
			res.Blocked = true
			slog.Debug("hit blocked", "caster", c.Name(), "target", tgt.Name(), "skill", sk.Name)
			r.effects.OnBlock(tgt.ID(), c.ID())
			r.notify(res)
			return
		}
	}

	if sk.BaseDamage > 0 {
		power := r.effects.StatValue(c.ID(), data.StatPower, 1.0)
		armor := r.effects.StatValue(tgt.ID(), data.StatArmor, float64(tgt.BaseArmor()))
		dmg := MitigatedDamage(sk.BaseDamage*power, armor, sk.Soak, sk.Penetration)

		ev := &behavior.Event{
			Trigger:    data.TriggerTakeDamage,
			Source:     c.ID(),
			Target:     tgt.ID(),
			Amount:     dmg,
			Projectile: sk.Projectile,
		}
		r.behaviors.Dispatch(ev)
		res.Prevented = ev.Prevented

		if ev.Amount > 0 {
			res.Damage = ev.Amount
			res.Lethal = r.applyDamage(c.ID(), tgt, ev.Amount)
		}
	}

	// On-hit riders land even on a zero-damage connect, but not on a
	// target that just went down.
	if tgt.IsAlive() {
		r.effects.ApplyWhen(sk.Effects, data.TriggerOnHit, c.ID(), tgt.ID())
		if sk.Behavior != 0 {
			r.behaviors.Grant(tgt.ID(), sk.Behavior)
		}
	}
	r.notify(res)
}

// DealEffectDamage is the effect engine's damage sink: periodic ticks,
// instant damage payloads and chain effects. Effect damage is already
// final (no avoidance, no mitigation) but it still passes the
// take-damage interception point and the death check.
func (r *Resolver) DealEffectDamage(source, target model.EntityID, amount int32) {
	tgt := r.world.Get(target)
	if tgt == nil || !tgt.IsAlive() || amount <= 0 {
		return
	}
	ev := &behavior.Event{
		Trigger: data.TriggerTakeDamage,
		Source:  source,
		Target:  target,
		Amount:  amount,
	}
	r.behaviors.Dispatch(ev)
	if ev.Amount > 0 {
		r.applyDamage(source, tgt, ev.Amount)
	}
}

// DealBehaviorDamage is the behavior engine's damage sink: split shares
// and deal-damage responses. The guard keeps the producing instance
// from intercepting its own output.
func (r *Resolver) DealBehaviorDamage(source, target model.EntityID, amount int32, guard *behavior.Instance) {
	tgt := r.world.Get(target)
	if tgt == nil || !tgt.IsAlive() || amount <= 0 {
		return
	}
	ev := behavior.GuardedEvent(data.TriggerTakeDamage, source, target, amount, guard)
	r.behaviors.Dispatch(ev)
	if ev.Amount > 0 {
		r.applyDamage(source, tgt, ev.Amount)
	}
}

// RedirectDamage is the behavior engine's redirect sink. The redirected
// event is re-dispatched on the new target, so its own guards and
// splits still apply, then the surviving amount lands. Mitigation is
// not re-rolled: the redirect moves an already-resolved hit.
func (r *Resolver) RedirectDamage(ev *behavior.Event, newTarget model.EntityID) {
	tgt := r.world.Get(newTarget)
	if tgt == nil || !tgt.IsAlive() {
		return
	}
	r.behaviors.Dispatch(ev)
	if ev.Prevented || ev.Amount <= 0 {
		return
	}
	r.applyDamage(ev.Source, tgt, ev.Amount)
}

// applyDamage commits warmth loss and runs the death check. Reports
// whether the target went down.
func (r *Resolver) applyDamage(source model.EntityID, tgt *model.Character, amount int32) bool {
	tgt.ReduceWarmth(amount)
	if tgt.Warmth() > 0 {
		return false
	}

	// Last interception point: a would-die response can heal the target
	// back up or flat-out prevent the death.
	ev := &behavior.Event{
		Trigger: data.TriggerWouldDie,
		Source:  source,
		Target:  tgt.ID(),
		Amount:  amount,
	}
	r.behaviors.Dispatch(ev)
	if tgt.Warmth() > 0 {
		return false
	}
	if ev.Prevented {
		tgt.SetWarmth(1)
		return false
	}

	r.down(tgt)
	return true
}

// down finalizes a death: conditions and owned behaviors are dropped
// without firing chains, summons leave the world entirely.
func (r *Resolver) down(tgt *model.Character) {
	if !tgt.Kill() {
		return
	}
	slog.Info("character downed", "name", tgt.Name(), "team", tgt.Team())
	r.effects.DropAll(tgt.ID())
	r.behaviors.DropOwned(tgt.ID())
	if tgt.IsSummon() {
		r.world.Remove(tgt.ID())
	}
}

func (r *Resolver) notify(res HitResult) {
	if r.observer != nil {
		r.observer(res)
	}
}
