// Package behavior intercepts designated trigger points in combat
// resolution and executes prevent/redirect/split/heal/summon/chain
// responses before the primary outcome commits.
package behavior

import (
	"log/slog"

	"github.com/kjard-games/snow-sub006/internal/data"
	"github.com/kjard-games/snow-sub006/internal/game/effect"
	"github.com/kjard-games/snow-sub006/internal/model"
	"github.com/kjard-games/snow-sub006/internal/world"
)

// chainDepthCap bounds synchronous behavior chains. Content can describe
// cycles; exceeding the cap truncates execution and logs, never faults.
const chainDepthCap = 8

// Event is a mutable interception context passed through Dispatch.
type Event struct {
	Trigger data.BehaviorTrigger
	Source  model.EntityID
	Target  model.EntityID
	Amount  int32

	Projectile bool

	// Prevented marks the default outcome as discarded.
	Prevented bool

	// guard is the instance a redirected event must not re-trigger.
	guard *Instance

	// origin is the target the event was first aimed at, recorded when
	// a redirect moves it. Redirect-to-target sends the hit back there.
	origin model.EntityID
}

// Instance is one behavior running on a character. Cooldown and
// activation bookkeeping is per instance, not per definition.
type Instance struct {
	Def   *data.Behavior
	Owner model.EntityID

	RemainingMs int32 // <0 = owner-lifetime
	CooldownMs  int32
	Activations int32
	periodAccum int32
}

// Exhausted reports whether the activation budget is used up.
func (i *Instance) Exhausted() bool {
	return i.Def.MaxActivations > 0 && i.Activations >= i.Def.MaxActivations
}

// Engine holds all active behavior instances of a match in registration
// order. Responses that feed back into combat resolution go through
// hooks injected at match setup.
type Engine struct {
	world   *world.World
	effects *effect.Engine

	instances []*Instance

	// dealDamage applies response damage with death interception.
	dealDamage func(source, target model.EntityID, amount int32, guard *Instance)

	// redirect re-applies a damage event to a new target through the
	// take-damage resolution path, carrying the loop guard.
	redirect func(ev *Event, newTarget model.EntityID)

	// summon spawns the described entity next to the owner.
	summon func(owner model.EntityID, spec *data.SummonSpec)
}

// NewEngine creates a behavior engine.
func NewEngine(w *world.World, effects *effect.Engine) *Engine {
	return &Engine{world: w, effects: effects}
}

// SetDamageHook wires the response damage sink.
func (e *Engine) SetDamageHook(fn func(source, target model.EntityID, amount int32, guard *Instance)) {
	e.dealDamage = fn
}

// SetRedirectHook wires the redirect resolution path.
func (e *Engine) SetRedirectHook(fn func(ev *Event, newTarget model.EntityID)) {
	e.redirect = fn
}

// SetSummonHook wires the summon spawner.
func (e *Engine) SetSummonHook(fn func(owner model.EntityID, spec *data.SummonSpec)) {
	e.summon = fn
}

// Grant attaches a behavior instance to the owner. Registration order is
// dispatch order.
func (e *Engine) Grant(owner model.EntityID, id data.BehaviorID) *Instance {
	def := data.GetBehavior(id)
	if def == nil {
		return nil
	}
	inst := &Instance{Def: def, Owner: owner, RemainingMs: def.DurationMs}
	if def.DurationMs <= 0 {
		inst.RemainingMs = -1
	}
	e.instances = append(e.instances, inst)
	slog.Debug("behavior granted", "behavior", def.Name, "owner", owner)
	return inst
}

// Guarded reports whether the event carries a loop guard (test helper).
func (ev *Event) Guarded() bool { return ev.guard != nil }

// GuardedEvent builds an event that the given instance will not
// intercept. Used by the combat resolver when applying damage a
// behavior response produced, so the response cannot feed itself.
func GuardedEvent(trigger data.BehaviorTrigger, source, target model.EntityID, amount int32, guard *Instance) *Event {
	return &Event{Trigger: trigger, Source: source, Target: target, Amount: amount, guard: guard}
}

// Dispatch offers the event to active instances in registration order.
// The first instance whose trigger matches, whose gating condition holds
// and whose budget is free consumes the event and executes its response;
// remaining candidates are not evaluated (at-most-one-responder).
func (e *Engine) Dispatch(ev *Event) *Event {
	for _, inst := range e.instances {
		if !e.candidate(inst, ev) {
			continue
		}
		inst.Activations++
		inst.CooldownMs = inst.Def.CooldownMs
		slog.Debug("behavior intercepted",
			"behavior", inst.Def.Name,
			"owner", inst.Owner,
			"trigger", ev.Trigger,
			"amount", ev.Amount)
		e.execute(inst, ev, 0)
		return ev
	}
	return ev
}

func (e *Engine) candidate(inst *Instance, ev *Event) bool {
	def := inst.Def
	if def.Trigger != ev.Trigger {
		return false
	}
	if inst.RemainingMs == 0 || inst.Exhausted() || inst.CooldownMs > 0 {
		return false
	}
	if ev.guard == inst {
		return false
	}
	owner := e.world.Get(inst.Owner)
	if owner == nil || !owner.IsAlive() {
		return false
	}

	// A guard with force-target-self protects nearby allies; everything
	// else responds to events on its own owner.
	if def.Response == data.RespForceTargetSelf {
		if inst.Owner == ev.Target {
			return false
		}
		tgt := e.world.Get(ev.Target)
		if tgt == nil || tgt.Team() != owner.Team() {
			return false
		}
		if !owner.Location().WithinRange(tgt.Location(), data.NearbyRange) {
			return false
		}
	} else if inst.Owner != ev.Target {
		return false
	}

	return e.predicateHolds(def.If, ev.Source, ev.Target)
}

// Behaviors gate on the same closed predicate set as effects.
func (e *Engine) predicateHolds(p data.Predicate, source, target model.EntityID) bool {
	return e.effects.EvalPredicate(p, source, target)
}

func (e *Engine) execute(inst *Instance, ev *Event, depth int) {
	if depth > chainDepthCap {
		slog.Warn("behavior chain truncated",
			"behavior", inst.Def.Name,
			"owner", inst.Owner,
			"depth", depth)
		return
	}

	def := inst.Def
	switch def.Response {
	case data.RespPrevent:
		ev.Prevented = true
		ev.Amount = 0

	case data.RespRedirectToSelf, data.RespForceTargetSelf:
		e.redirectTo(inst, ev, inst.Owner)

	case data.RespRedirectToSource:
		e.redirectTo(inst, ev, ev.Source)

	case data.RespRedirectToTarget:
		// Meaningful only on an event an earlier redirect moved away
		// from its original target; otherwise origin is unset and
		// redirectTo declines.
		e.redirectTo(inst, ev, ev.origin)

	case data.RespSplitDamage:
		e.splitDamage(inst, ev)

	case data.RespHealPercent:
		for _, tgt := range e.resolve(def.Who, inst, ev) {
			floor := int32(def.Magnitude * float64(tgt.MaxWarmth()))
			if tgt.Warmth() < floor {
				tgt.SetWarmth(floor)
			}
		}

	case data.RespGrantEffect:
		eff := data.GetEffect(def.Effect)
		if eff != nil {
			for _, tgt := range e.resolve(def.Who, inst, ev) {
				e.effects.Apply(eff, inst.Owner, tgt.ID())
			}
		}

	case data.RespDealDamage:
		if e.dealDamage != nil {
			for _, tgt := range e.resolve(def.Who, inst, ev) {
				e.dealDamage(inst.Owner, tgt.ID(), int32(def.Magnitude), inst)
			}
		}

	case data.RespSummon:
		if e.summon != nil && def.Summon != nil {
			e.summon(inst.Owner, def.Summon)
		}

	case data.RespChain:
		next := data.GetBehavior(def.Next)
		if next == nil {
			return
		}
		// The chained response runs under the consuming instance's
		// ownership; it has no budget of its own.
		e.execute(&Instance{Def: next, Owner: inst.Owner, RemainingMs: -1}, ev, depth+1)
	}
}

// redirectTo discards the outcome for the original target and re-applies
// the event to newTarget through the injected resolution path. The guard
// flag prevents the same instance from intercepting its own redirect.
func (e *Engine) redirectTo(inst *Instance, ev *Event, newTarget model.EntityID) {
	if newTarget == model.NoEntity || newTarget == ev.Target {
		return
	}
	ev.Prevented = true
	redirected := &Event{
		Trigger:    ev.Trigger,
		Source:     ev.Source,
		Target:     newTarget,
		Amount:     ev.Amount,
		Projectile: ev.Projectile,
		guard:      inst,
		origin:     ev.Target,
	}
	if ev.origin != model.NoEntity {
		// Chained redirects keep pointing at the first target.
		redirected.origin = ev.origin
	}
	ev.Amount = 0
	if e.redirect != nil {
		e.redirect(redirected, newTarget)
	}
}

// splitDamage divides ev.Amount across the resolved set per the declared
// split rule. The primary (triggering) target keeps its share in
// ev.Amount; other shares are applied directly with death interception.
func (e *Engine) splitDamage(inst *Instance, ev *Event) {
	others := e.resolve(inst.Def.Who, inst, ev)
	// The primary target never appears twice.
	n := 0
	for _, c := range others {
		if c.ID() != ev.Target {
			others[n] = c
			n++
		}
	}
	others = others[:n]
	if len(others) == 0 || ev.Amount <= 0 {
		return
	}

	total := ev.Amount
	shares := make([]int32, len(others))
	var primary int32

	switch inst.Def.Split {
	case data.SplitProportionalMaxWarmth:
		primaryChar := e.world.Get(ev.Target)
		weightSum := int64(0)
		if primaryChar != nil {
			weightSum += int64(primaryChar.MaxWarmth())
		}
		for _, c := range others {
			weightSum += int64(c.MaxWarmth())
		}
		if weightSum <= 0 {
			return
		}
		assigned := int32(0)
		for i, c := range others {
			shares[i] = int32(int64(total) * int64(c.MaxWarmth()) / weightSum)
			assigned += shares[i]
		}
		primary = total - assigned // remainder to the primary

	case data.SplitAbsorbRemainder:
		share := int32(inst.Def.Magnitude * float64(total))
		assigned := int32(0)
		for i := range others {
			if assigned+share > total {
				share = total - assigned
			}
			shares[i] = share
			assigned += shares[i]
		}
		primary = total - assigned

	default: // SplitEqual
		n := int32(len(others)) + 1
		share := total / n
		for i := range others {
			shares[i] = share
		}
		primary = total - share*int32(len(others)) // integer remainder to primary
	}

	ev.Amount = primary
	if e.dealDamage != nil {
		for i, c := range others {
			if shares[i] > 0 {
				e.dealDamage(ev.Source, c.ID(), shares[i], inst)
			}
		}
	}
}

func (e *Engine) resolve(sel data.Selector, inst *Instance, ev *Event) []*model.Character {
	// SelectSelf is the instance owner; other selectors are relative to
	// the event's source and target.
	if sel == data.SelectSelf {
		c := e.world.Get(inst.Owner)
		if c == nil || !c.IsAlive() {
			return nil
		}
		return []*model.Character{c}
	}
	return effect.ResolveSelector(sel, ev.Source, ev.Target, e.world)
}

// Tick advances instance cooldowns, durations and periodic responses.
// Expired instances are removed; instances of dead owners are dropped.
func (e *Engine) Tick(deltaMs int32) {
	n := 0
	for _, inst := range e.instances {
		owner := e.world.Get(inst.Owner)
		if owner == nil || !owner.IsAlive() {
			continue
		}

		if inst.CooldownMs > 0 {
			inst.CooldownMs = max(inst.CooldownMs-deltaMs, 0)
		}
		if inst.RemainingMs > 0 {
			inst.RemainingMs -= deltaMs
			if inst.RemainingMs <= 0 {
				slog.Debug("behavior expired", "behavior", inst.Def.Name, "owner", inst.Owner)
				continue
			}
		}

		if inst.Def.Trigger == data.TriggerPeriodic {
			period := inst.Def.PeriodMs
			if period <= 0 {
				period = 1000
			}
			inst.periodAccum += deltaMs
			for inst.periodAccum >= period {
				inst.periodAccum -= period
				// Periodic fires draw on the same activation budget and
				// cooldown as dispatched interceptions.
				if inst.Exhausted() || inst.CooldownMs > 0 {
					continue
				}
				ev := &Event{Trigger: data.TriggerPeriodic, Source: inst.Owner, Target: inst.Owner}
				if e.predicateHolds(inst.Def.If, ev.Source, ev.Target) {
					inst.Activations++
					inst.CooldownMs = inst.Def.CooldownMs
					e.execute(inst, ev, 0)
				}
			}
		}

		e.instances[n] = inst
		n++
	}
	e.instances = e.instances[:n]
}

// DropOwned removes all instances owned by the entity (on death).
func (e *Engine) DropOwned(owner model.EntityID) {
	n := 0
	for _, inst := range e.instances {
		if inst.Owner != owner {
			e.instances[n] = inst
			n++
		}
	}
	e.instances = e.instances[:n]
}

// ActiveCount returns how many instances the owner currently has
// (test and snapshot helper).
func (e *Engine) ActiveCount(owner model.EntityID) int {
	n := 0
	for _, inst := range e.instances {
		if inst.Owner == owner {
			n++
		}
	}
	return n
}
