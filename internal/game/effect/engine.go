// Package effect applies timed and instant effects according to their
// timing, target and stacking rules, and fires chain effects on expiry
// and early removal.
package effect

import (
	"log/slog"
	"math"

	"github.com/kjard-games/snow-sub006/internal/data"
	"github.com/kjard-games/snow-sub006/internal/model"
	"github.com/kjard-games/snow-sub006/internal/terrain"
	"github.com/kjard-games/snow-sub006/internal/world"
)

// Outcome of an effect application.
type Outcome int8

const (
	Skipped Outcome = iota
	Applied
)

// Engine owns the active condition instances of every entity in a match.
// Single-threaded; driven by the tick loop.
//
// Damage from effect payloads is routed through an injected hook so that
// the combat resolver can run its death interception; the hook is wired
// at match setup (callback injection keeps the import graph acyclic).
type Engine struct {
	world *world.World
	field terrain.Field

	sets map[model.EntityID]*conditionSet

	// dealDamage applies payload damage (already past armor; effect
	// damage never re-rolls mitigation). Set by the combat resolver.
	dealDamage func(source, target model.EntityID, amount int32)

	// reduceRecharge shaves time off the target's recharging skill
	// slots. Set by the casting manager.
	reduceRecharge func(id model.EntityID, ms int32)
}

// NewEngine creates an effect engine over the given world and terrain.
func NewEngine(w *world.World, field terrain.Field) *Engine {
	return &Engine{
		world: w,
		field: field,
		sets:  make(map[model.EntityID]*conditionSet),
	}
}

// SetDamageHook wires the payload damage sink.
func (e *Engine) SetDamageHook(fn func(source, target model.EntityID, amount int32)) {
	e.dealDamage = fn
}

// SetRechargeHook wires the cooldown-reduction sink.
func (e *Engine) SetRechargeHook(fn func(id model.EntityID, ms int32)) {
	e.reduceRecharge = fn
}

func (e *Engine) setFor(id model.EntityID) *conditionSet {
	s, ok := e.sets[id]
	if !ok {
		s = &conditionSet{}
		e.sets[id] = s
	}
	return s
}

// ApplyWhen applies the subset of the referenced effects whose trigger
// moment matches, in declaration order.
func (e *Engine) ApplyWhen(ids []data.EffectID, when data.Trigger, source, target model.EntityID) {
	for _, id := range ids {
		eff := data.GetEffect(id)
		if eff == nil {
			continue
		}
		if !appliesAt(eff, when) {
			continue
		}
		e.Apply(eff, source, target)
	}
}

// appliesAt reports whether an effect fires at the given moment.
// Timed effects (over-time, while-active, on-block stances) are
// installed when the skill lands, so they count as on-hit applications.
func appliesAt(eff *data.Effect, when data.Trigger) bool {
	if eff.When == when {
		return true
	}
	return when == data.TriggerOnHit && eff.When != data.TriggerOnActivation
}

// Apply resolves the effect's WHO selector and applies it to each
// resolved target whose IF predicate holds. A false predicate is a
// silent no-op. Returns Applied if at least one target was affected.
func (e *Engine) Apply(eff *data.Effect, source, target model.EntityID) Outcome {
	return e.applyDepth(eff, source, target, 0)
}

// chainDepthCap bounds effect chain recursion against cyclic content.
const chainDepthCap = 8

func (e *Engine) applyDepth(eff *data.Effect, source, target model.EntityID, depth int) Outcome {
	if depth > chainDepthCap {
		slog.Warn("effect chain truncated", "effect", eff.Name, "depth", depth)
		return Skipped
	}

	src := e.world.Get(source)
	out := Skipped
	for _, tgt := range ResolveSelector(eff.Who, source, target, e.world) {
		if !evalPredicate(eff.If, src, tgt, e.world, e.field) {
			continue
		}
		if eff.IsTimed() {
			e.addTimedEffect(eff, source, tgt, depth)
		} else {
			e.applyInstant(eff, source, tgt, depth)
		}
		out = Applied
	}
	return out
}

func (e *Engine) applyInstant(eff *data.Effect, source model.EntityID, tgt *model.Character, depth int) {
	switch eff.Kind {
	case data.EffectDamage:
		if e.dealDamage != nil {
			e.dealDamage(source, tgt.ID(), int32(eff.Magnitude))
		}

	case data.EffectHeal:
		tgt.RestoreWarmth(int32(eff.Magnitude))

	case data.EffectRestoreEnergy:
		tgt.RestoreEnergy(int32(eff.Magnitude))

	case data.EffectDrainEnergy:
		tgt.DrainEnergy(int32(eff.Magnitude))

	case data.EffectGainSecondary:
		tgt.GainSecondary(int32(eff.Magnitude))

	case data.EffectReduceRecharge:
		if e.reduceRecharge != nil {
			e.reduceRecharge(tgt.ID(), int32(eff.Magnitude))
		}

	case data.EffectApplyChill, data.EffectApplyCozy:
		cond := data.GetCondition(eff.Condition)
		if cond != nil {
			e.addCondition(cond, source, tgt)
		}

	case data.EffectShapeTerrain:
		if e.field != nil {
			e.field.Shape(tgt.Location(), eff.Radius, eff.Terrain)
		}

	default:
		slog.Warn("instant application of timed-only effect kind", "effect", eff.Name)
	}

	if eff.Initial != 0 {
		if next := data.GetEffect(eff.Initial); next != nil {
			e.applyDepth(next, source, tgt.ID(), depth+1)
		}
	}
}

// addTimedEffect creates or restacks an effect-materialized instance.
func (e *Engine) addTimedEffect(eff *data.Effect, source model.EntityID, tgt *model.Character, depth int) {
	inst := &ActiveCondition{Effect: eff, Source: source, RemainingMs: eff.DurationMs, Stacks: 1}
	if e.insert(tgt.ID(), inst) && eff.Initial != 0 {
		if next := data.GetEffect(eff.Initial); next != nil {
			e.applyDepth(next, source, tgt.ID(), depth+1)
		}
	}
}

// addCondition creates or restacks a chill/cozy instance.
func (e *Engine) addCondition(cond *data.Condition, source model.EntityID, tgt *model.Character) {
	inst := &ActiveCondition{Cond: cond, Source: source, RemainingMs: cond.DurationMs, Stacks: 1}
	e.insert(tgt.ID(), inst)
}

// insert places an instance into the target's set honoring the stacking
// policy. Returns true when a fresh instance was created (as opposed to
// refreshing or restacking an existing one).
func (e *Engine) insert(target model.EntityID, inst *ActiveCondition) bool {
	set := e.setFor(target)
	list := set.listFor(inst.polarity())

	if inst.stacking() != data.StackIndependent {
		for _, existing := range *list {
			if !existing.sameDefinition(inst) {
				continue
			}
			existing.RemainingMs = inst.durationMs()
			if existing.stacking() == data.StackIntensity {
				existing.Stacks = min(existing.Stacks+1, existing.maxStacks())
			}
			return false
		}
	}

	*list = append(*list, inst)
	slog.Debug("condition applied",
		"name", inst.name(),
		"target", target,
		"source", inst.Source,
		"duration_ms", inst.RemainingMs)
	return true
}

// Tick advances all instances by deltaMs: first the periodic payload
// pass for every entity, then the expiry pass with on-end chains. The
// two passes are kept separate so periodic payloads of one entity never
// observe another entity's expiry mid-pass.
func (e *Engine) Tick(deltaMs int32) {
	for _, c := range e.world.All() {
		set, ok := e.sets[c.ID()]
		if !ok {
			continue
		}
		for _, inst := range set.all() {
			e.tickPeriodic(inst, c, deltaMs)
		}
	}

	for _, c := range e.world.All() {
		set, ok := e.sets[c.ID()]
		if !ok {
			continue
		}
		e.expireDue(set, c, deltaMs)
	}
}

func (e *Engine) tickPeriodic(inst *ActiveCondition, owner *model.Character, deltaMs int32) {
	if !owner.IsAlive() {
		return
	}

	periodic := false
	if inst.Cond != nil {
		periodic = inst.Cond.TickWarmth != 0
	} else {
		periodic = inst.Effect.When == data.TriggerOverTime
	}
	if !periodic {
		return
	}

	inst.periodAccum += deltaMs
	period := inst.periodMs()
	for inst.periodAccum >= period {
		inst.periodAccum -= period
		e.firePeriodic(inst, owner)
	}
}

func (e *Engine) firePeriodic(inst *ActiveCondition, owner *model.Character) {
	if inst.Cond != nil {
		delta := inst.Cond.TickWarmth * inst.Stacks
		if delta < 0 {
			if e.dealDamage != nil {
				e.dealDamage(inst.Source, owner.ID(), -delta)
			}
		} else {
			owner.RestoreWarmth(delta)
		}
		return
	}

	eff := inst.Effect
	switch eff.Kind {
	case data.EffectDamage:
		if e.dealDamage != nil {
			e.dealDamage(inst.Source, owner.ID(), int32(eff.Magnitude))
		}
	case data.EffectHeal:
		owner.RestoreWarmth(int32(eff.Magnitude))
	case data.EffectRestoreEnergy:
		owner.RestoreEnergy(int32(eff.Magnitude))
	case data.EffectDrainEnergy:
		owner.DrainEnergy(int32(eff.Magnitude))
	case data.EffectGainSecondary:
		owner.GainSecondary(int32(eff.Magnitude))
	}
}

// expireDue decrements timers and removes instances that reached zero,
// firing their on-end chain before removal.
func (e *Engine) expireDue(set *conditionSet, owner *model.Character, deltaMs int32) {
	expire := func(list []*ActiveCondition) []*ActiveCondition {
		n := 0
		for _, inst := range list {
			inst.RemainingMs -= deltaMs
			if inst.RemainingMs > 0 {
				list[n] = inst
				n++
				continue
			}
			slog.Debug("condition expired", "name", inst.name(), "target", owner.ID())
			if chain := inst.onEnd(); chain != 0 && owner.IsAlive() {
				if eff := data.GetEffect(chain); eff != nil {
					e.applyDepth(eff, inst.Source, owner.ID(), 1)
				}
			}
		}
		return list[:n]
	}
	set.chills = expire(set.chills)
	set.cozies = expire(set.cozies)
}

// Cleanse removes all instances of the given polarity from the target,
// firing each instance's early-removal chain instead of its on-end one.
func (e *Engine) Cleanse(target model.EntityID, p data.Polarity) int {
	set, ok := e.sets[target]
	if !ok {
		return 0
	}
	list := set.listFor(p)
	removed := len(*list)
	owner := e.world.Get(target)
	for _, inst := range *list {
		if chain := inst.onEarlyRemove(); chain != 0 && owner != nil && owner.IsAlive() {
			if eff := data.GetEffect(chain); eff != nil {
				e.applyDepth(eff, inst.Source, target, 1)
			}
		}
	}
	*list = (*list)[:0]
	return removed
}

// DropAll discards every instance on the target without firing chains.
// Used when the entity is removed from the match.
func (e *Engine) DropAll(target model.EntityID) {
	delete(e.sets, target)
}

// OnBlock fires the payloads of the owner's on-block stances after the
// owner avoided a hit from attacker.
func (e *Engine) OnBlock(owner, attacker model.EntityID) {
	set, ok := e.sets[owner]
	if !ok {
		return
	}
	for _, inst := range set.all() {
		if inst.Effect == nil || inst.Effect.When != data.TriggerOnBlock {
			continue
		}
		eff := inst.Effect
		// The block event's source is the attacker, its target the owner.
		for _, tgt := range ResolveSelector(eff.Who, attacker, owner, e.world) {
			if !evalPredicate(eff.If, e.world.Get(attacker), tgt, e.world, e.field) {
				continue
			}
			switch eff.Kind {
			case data.EffectDamage:
				if e.dealDamage != nil {
					e.dealDamage(owner, tgt.ID(), int32(eff.Magnitude))
				}
			case data.EffectHeal:
				tgt.RestoreWarmth(int32(eff.Magnitude))
			case data.EffectDrainEnergy:
				tgt.DrainEnergy(int32(eff.Magnitude))
			}
		}
	}
}

// StatValue folds the target's active modifiers over a base stat value.
// Additive contributions are summed first, multiplicative ones applied
// after. While-active effect modifiers only count while their predicate
// holds.
func (e *Engine) StatValue(id model.EntityID, stat data.Stat, base float64) float64 {
	set, ok := e.sets[id]
	if !ok {
		return base
	}
	owner := e.world.Get(id)

	add := 0.0
	mul := 1.0
	for _, inst := range set.all() {
		if inst.Cond != nil {
			c := inst.Cond
			if c.PerStack == 0 || c.Stat != stat {
				continue
			}
			if c.Op == data.OpAdd {
				add += c.PerStack * float64(inst.Stacks)
			} else {
				mul *= math.Pow(c.PerStack, float64(inst.Stacks))
			}
			continue
		}

		eff := inst.Effect
		if eff.Kind != data.EffectModifyStat || eff.Stat != stat {
			continue
		}
		if eff.When == data.TriggerWhileActive {
			src := e.world.Get(inst.Source)
			if !evalPredicate(eff.If, src, owner, e.world, e.field) {
				continue
			}
		}
		if eff.Op == data.OpAdd {
			add += eff.Magnitude
		} else {
			mul *= eff.Magnitude
		}
	}
	return (base + add) * mul
}

// EvalPredicate evaluates an IF predicate against current world state.
// Exposed for the behavior engine, which gates on the same closed set.
func (e *Engine) EvalPredicate(p data.Predicate, source, target model.EntityID) bool {
	return evalPredicate(p, e.world.Get(source), e.world.Get(target), e.world, e.field)
}

// Conditions returns snapshot views of the target's active instances.
func (e *Engine) Conditions(id model.EntityID) []ConditionView {
	set, ok := e.sets[id]
	if !ok {
		return nil
	}
	views := make([]ConditionView, 0, len(set.chills)+len(set.cozies))
	for _, inst := range set.all() {
		views = append(views, ConditionView{
			Name:        inst.name(),
			Chill:       inst.polarity() == data.PolarityChill,
			RemainingMs: inst.RemainingMs,
			Stacks:      inst.Stacks,
			Source:      inst.Source,
		})
	}
	return views
}

// ActiveCount returns the number of instances matching the definition of
// the given timed effect on the target (test and telemetry helper).
func (e *Engine) ActiveCount(target model.EntityID, effectID data.EffectID) int {
	set, ok := e.sets[target]
	if !ok {
		return 0
	}
	n := 0
	for _, inst := range set.all() {
		if inst.Effect != nil && inst.Effect.ID == effectID {
			n++
		}
	}
	return n
}

// ConditionState returns remaining duration and stacks for a chill/cozy
// on the target, or (0, 0) when absent.
func (e *Engine) ConditionState(target model.EntityID, condID data.ConditionID) (remainingMs, stacks int32) {
	set, ok := e.sets[target]
	if !ok {
		return 0, 0
	}
	for _, inst := range set.all() {
		if inst.Cond != nil && inst.Cond.ID == condID {
			return inst.RemainingMs, inst.Stacks
		}
	}
	return 0, 0
}
