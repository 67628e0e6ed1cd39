package data

import "github.com/kjard-games/snow-sub006/internal/terrain"

// Definition ids. 0 means "no reference" everywhere.
type (
	SkillID     int32
	EffectID    int32
	BehaviorID  int32
	ConditionID int32
)

// Range constants used by target selectors and predicates, in world units.
const (
	AdjacentRange = 40
	NearbyRange   = 120
)

// Mechanic is the timing mechanic tag of a skill. It governs when the
// skill's payload resolves and whether an aftercast recovery follows.
type Mechanic int8

const (
	MechanicInstant Mechanic = iota // no activation time, resolves on cast
	MechanicWindup                  // resolves at full activation, no recovery
	MechanicStrike                  // resolves at full activation, then aftercast
	MechanicLob                     // resolves at half activation, then aftercast
)

// ReleaseAtMidpoint reports whether the payload resolves at exactly half
// of the activation duration instead of at its end.
func (m Mechanic) ReleaseAtMidpoint() bool { return m == MechanicLob }

// HasRecovery reports whether the mechanic enters an aftercast phase.
func (m Mechanic) HasRecovery() bool { return m == MechanicStrike || m == MechanicLob }

// TargetMode is the cast-targeting mode of a skill.
type TargetMode int8

const (
	TargetSelf TargetMode = iota
	TargetEnemy
	TargetAlly
	TargetGround
)

// Trigger is the moment an effect applies (the WHEN axis).
type Trigger int8

const (
	TriggerOnActivation Trigger = iota // the instant the cast begins
	TriggerOnHit                       // when the skill lands on a resolved target
	TriggerOverTime                    // periodic while the instance lasts
	TriggerWhileActive                 // re-evaluated every tick while active
	TriggerOnBlock                     // when the owner avoids an incoming hit
)

// Selector resolves WHO an effect or behavior response lands on, relative
// to the event's source and target.
type Selector int8

const (
	SelectSelf Selector = iota // the entity the instance belongs to
	SelectTarget
	SelectSource
	SelectAdjacentToTarget // entities within AdjacentRange of the target
	SelectNearbyAllies     // allies within NearbyRange, excluding self
	SelectNearbyEnemies    // enemies within NearbyRange
)

// Stacking is the policy when an instance of the same definition is
// applied to a target that already has one.
type Stacking int8

const (
	StackRefresh     Stacking = iota // reset timer, keep intensity
	StackIntensity                   // bump bounded counter, reset timer
	StackIndependent                 // track separate instances
)

// Stat is a modifiable character statistic.
type Stat int8

const (
	StatArmor Stat = iota
	StatPower     // outgoing damage scale
	StatAvoidance
	StatSpeed
)

// ModOp is how a stat modifier combines with the base value.
type ModOp int8

const (
	OpAdd ModOp = iota
	OpMul
)

// PredicateKind is a closed set of condition predicates evaluated as pure
// reads of a consistent world snapshot. A failed predicate is a silent
// no-op, never an error; missing or dead state evaluates to false.
type PredicateKind int8

const (
	PredAlways PredicateKind = iota
	PredWarmthBelowPct      // target warmth percentage below Value
	PredWarmthAbovePct      // target warmth percentage above Value
	PredSecondaryAtLeast    // caster secondary resource at least Value
	PredEnergyAtLeast       // caster energy at least Value
	PredTerrainIs           // terrain under target is Terrain
	PredDistanceAtMost      // source-target distance at most Value
	PredAlliesNearbyAtLeast // allies within NearbyRange of target >= Value
	PredEnemiesNearbyAtLeast
)

// Predicate is the IF axis: a gating condition over read-only game state.
type Predicate struct {
	Kind    PredicateKind
	Value   float64
	Terrain terrain.Kind
}

// EffectKind is the WHAT axis: the state change an effect performs.
type EffectKind int8

const (
	EffectDamage EffectKind = iota
	EffectHeal
	EffectRestoreEnergy
	EffectDrainEnergy
	EffectGainSecondary
	EffectModifyStat    // timed stat modifier (uses Stat, Op, Magnitude)
	EffectApplyChill    // apply the referenced Chill condition
	EffectApplyCozy     // apply the referenced Cozy condition
	EffectReduceRecharge // shave Magnitude ms off all recharging slots
	EffectShapeTerrain   // ground effect at the target's position
)

// Effect is a static, shared definition of a state change. Referenced by
// id across skills, never mutated at runtime.
//
// A timed effect (DurationMs > 0 with TriggerOverTime, TriggerWhileActive
// or TriggerOnBlock) materializes as an active instance on the target;
// everything else applies instantly.
type Effect struct {
	ID   EffectID
	Name string

	Kind      EffectKind
	Magnitude float64
	Stat      Stat         // EffectModifyStat
	Op        ModOp        // EffectModifyStat
	Condition ConditionID  // EffectApplyChill / EffectApplyCozy
	Terrain   terrain.Kind // EffectShapeTerrain
	Radius    int32        // EffectShapeTerrain

	When Trigger
	Who  Selector
	If   Predicate

	DurationMs int32
	PeriodMs   int32 // over-time cadence, defaults to 1000 when unset
	Stacking   Stacking
	MaxStacks  int32

	// Chain references. Initial fires immediately on first application,
	// OnEnd on natural expiry, OnEarlyRemove when cleansed before expiry.
	Initial       EffectID
	OnEnd         EffectID
	OnEarlyRemove EffectID
}

// IsTimed reports whether applications of this effect create an active
// instance with a duration instead of resolving instantly.
func (e *Effect) IsTimed() bool {
	if e.DurationMs <= 0 {
		return false
	}
	switch e.When {
	case TriggerOverTime, TriggerWhileActive, TriggerOnBlock:
		return true
	}
	return e.Kind == EffectModifyStat
}

// Polarity classifies a condition as debuff (chill) or buff (cozy).
type Polarity int8

const (
	PolarityChill Polarity = iota
	PolarityCozy
)

// Condition is a static chill/cozy definition: a named timed condition
// with an optional per-stack stat modifier and an optional periodic
// warmth payload.
type Condition struct {
	ID       ConditionID
	Name     string
	Polarity Polarity

	Stat     Stat
	Op       ModOp
	PerStack float64 // stat modifier contribution per stack, 0 = none

	TickWarmth int32 // warmth delta per period: negative drains, positive restores
	PeriodMs   int32 // defaults to 1000 when unset

	DurationMs int32
	Stacking   Stacking
	MaxStacks  int32

	OnEnd         EffectID
	OnEarlyRemove EffectID
}

// BehaviorTrigger is the interception point a behavior listens on.
type BehaviorTrigger int8

const (
	TriggerWouldDie BehaviorTrigger = iota
	TriggerTakeDamage
	TriggerHitByProjectile
	TriggerPeriodic // fires on its own cadence while the instance is active
)

// ResponseKind is the closed set of behavior responses.
type ResponseKind int8

const (
	RespPrevent ResponseKind = iota
	RespRedirectToSelf
	RespRedirectToSource
	RespRedirectToTarget
	RespSplitDamage
	RespHealPercent
	RespGrantEffect
	RespDealDamage
	RespForceTargetSelf
	RespSummon
	RespChain
)

// SplitRule is how split_damage divides the magnitude across the
// resolved target set.
type SplitRule int8

const (
	SplitEqual SplitRule = iota
	SplitProportionalMaxWarmth
	SplitAbsorbRemainder
)

// SummonSpec describes the entity a summon response spawns.
type SummonSpec struct {
	Name       string
	Warmth     int32
	Armor      int32
	DurationMs int32
}

// Behavior is a static second-order interception definition. It can
// prevent, redirect, split or chain the primary effect resolution at its
// trigger point.
type Behavior struct {
	ID   BehaviorID
	Name string

	Trigger  BehaviorTrigger
	Response ResponseKind

	Split     SplitRule
	Magnitude float64     // heal percent, damage amount, or absorb share
	Effect    EffectID    // RespGrantEffect
	Next      BehaviorID  // RespChain
	Summon    *SummonSpec // RespSummon

	If  Predicate
	Who Selector

	DurationMs int32 // 0 = lasts for the owner's lifetime
	CooldownMs int32
	PeriodMs   int32 // TriggerPeriodic cadence, defaults to 1000

	// MaxActivations bounds how many times one instance may respond.
	// 0 = unlimited.
	MaxActivations int32
}

// AutoCast attaches an auto-cast trigger condition to a skill: when the
// predicate holds for the chosen target, the owner queues the skill for
// the next tick.
type AutoCast struct {
	If     Predicate
	Target TargetMode // whom the predicate is checked against
}

// Skill is a static skill definition.
type Skill struct {
	ID     SkillID
	Name   string
	School string // descriptive; loadout construction is external

	EnergyCost    int32
	SecondaryCost int32

	CastRange int32
	Targeting TargetMode
	Mechanic  Mechanic

	ActivationMs int32
	AftercastMs  int32
	RechargeMs   int32

	BaseDamage  float64
	Soak        float64 // fraction of damage bypassing armor mitigation
	Penetration float64 // fraction of armor ignored before mitigation
	Unblockable bool    // bypasses avoidance, never armor
	Projectile  bool

	// Effects applied on hit, in order. At most one behavior.
	Effects  []EffectID
	Behavior BehaviorID

	// Elite marks an AP skill; at most one per loadout.
	Elite bool

	Auto *AutoCast // nil = manual cast only
}
