package data

import "github.com/kjard-games/snow-sub006/internal/terrain"

// Built-in definition set. Balance numbers are tunable via ApplyOverlay;
// ids and structure are fixed at compile time.
//
// Chain effects are applied at their chain point; their When is nominal
// (Who and If still route and gate them).

var conditionDefs = []Condition{
	{
		ID: 301, Name: "Frostbite", Polarity: PolarityChill,
		Stat: StatSpeed, Op: OpMul, PerStack: 0.85,
		TickWarmth: -3, PeriodMs: 1000,
		DurationMs: 8000, Stacking: StackIntensity, MaxStacks: 3,
	},
	{
		ID: 302, Name: "Numb", Polarity: PolarityChill,
		Stat: StatAvoidance, Op: OpAdd, PerStack: -10,
		DurationMs: 4000, Stacking: StackRefresh,
	},
	{
		ID: 303, Name: "Brittleframe", Polarity: PolarityChill,
		Stat: StatArmor, Op: OpAdd, PerStack: -10,
		DurationMs: 8000, Stacking: StackRefresh,
	},
	{
		ID: 311, Name: "Hearthglow", Polarity: PolarityCozy,
		TickWarmth: 2, PeriodMs: 1000,
		DurationMs: 10000, Stacking: StackRefresh,
		OnEnd: 111,
	},
	{
		ID: 312, Name: "Packed Guard", Polarity: PolarityCozy,
		Stat: StatArmor, Op: OpAdd, PerStack: 15,
		DurationMs: 12000, Stacking: StackRefresh,
		OnEarlyRemove: 112,
	},
	{
		ID: 313, Name: "Swift Drift", Polarity: PolarityCozy,
		Stat: StatSpeed, Op: OpMul, PerStack: 1.25,
		DurationMs: 6000, Stacking: StackRefresh,
	},
}

var effectDefs = []Effect{
	{
		ID: 101, Name: "Biting Snow",
		Kind: EffectApplyChill, Condition: 301,
		When: TriggerOnHit, Who: SelectTarget,
	},
	{
		ID: 102, Name: "Deep Freeze",
		Kind: EffectApplyChill, Condition: 302,
		When: TriggerOnHit, Who: SelectTarget,
	},
	{
		ID: 103, Name: "Hearth Glow",
		Kind: EffectApplyCozy, Condition: 311,
		When: TriggerOnHit, Who: SelectTarget,
	},
	{
		ID: 104, Name: "Warm Up",
		Kind: EffectHeal, Magnitude: 15,
		When: TriggerOnHit, Who: SelectTarget,
	},
	{
		ID: 105, Name: "Kindle",
		Kind: EffectRestoreEnergy, Magnitude: 5,
		When: TriggerOnActivation, Who: SelectSelf,
	},
	{
		ID: 106, Name: "Numbing Drain",
		Kind: EffectDrainEnergy, Magnitude: 5,
		When: TriggerOnHit, Who: SelectTarget,
	},
	{
		ID: 107, Name: "Packed Coat",
		Kind: EffectModifyStat, Stat: StatArmor, Op: OpAdd, Magnitude: 20,
		When: TriggerWhileActive, Who: SelectTarget,
		DurationMs: 10000, Stacking: StackRefresh,
	},
	{
		ID: 108, Name: "Shatter Frame",
		Kind: EffectApplyChill, Condition: 303,
		When: TriggerOnHit, Who: SelectTarget,
	},
	{
		ID: 109, Name: "Glacier Floor",
		Kind: EffectShapeTerrain, Terrain: terrain.KindIce, Radius: 80,
		When: TriggerOnHit, Who: SelectTarget,
	},
	{
		ID: 110, Name: "Retort",
		Kind: EffectDamage, Magnitude: 10,
		When: TriggerOnBlock, Who: SelectSource,
		DurationMs: 15000, Stacking: StackRefresh,
	},
	{
		ID: 111, Name: "Afterglow",
		Kind: EffectHeal, Magnitude: 10,
		When: TriggerOnHit, Who: SelectTarget,
	},
	{
		ID: 112, Name: "Chilled Soul",
		Kind: EffectDrainEnergy, Magnitude: 3,
		When: TriggerOnHit, Who: SelectTarget,
	},
	{
		ID: 113, Name: "Momentum",
		Kind: EffectGainSecondary, Magnitude: 2,
		When: TriggerOnActivation, Who: SelectSelf,
	},
	{
		ID: 114, Name: "Echoing Chill",
		Kind: EffectApplyChill, Condition: 301,
		When: TriggerOnHit, Who: SelectAdjacentToTarget,
	},
	{
		ID: 115, Name: "Cooldown Surge",
		Kind: EffectReduceRecharge, Magnitude: 1000,
		When: TriggerOnHit, Who: SelectSelf,
	},
	{
		ID: 116, Name: "Rally Glow",
		Kind: EffectApplyCozy, Condition: 311,
		When: TriggerOnHit, Who: SelectNearbyAllies,
	},
	{
		ID: 117, Name: "Frost Snap",
		Kind: EffectDamage, Magnitude: 8,
		When: TriggerOnHit, Who: SelectTarget,
		If: Predicate{Kind: PredTerrainIs, Terrain: terrain.KindIce},
	},
	{
		ID: 118, Name: "Smolder",
		Kind: EffectDamage, Magnitude: 4,
		When: TriggerOverTime, Who: SelectTarget,
		DurationMs: 6000, PeriodMs: 1000, Stacking: StackIndependent,
	},
	{
		ID: 119, Name: "Gentle Warmth",
		Kind: EffectHeal, Magnitude: 3,
		When: TriggerOnHit, Who: SelectTarget,
	},
}

var behaviorDefs = []Behavior{
	{
		ID: 201, Name: "Last Ember",
		Trigger: TriggerWouldDie, Response: RespHealPercent,
		Magnitude: 0.25, Who: SelectSelf,
		MaxActivations: 1,
	},
	{
		ID: 202, Name: "Guardian Bond",
		Trigger: TriggerTakeDamage, Response: RespSplitDamage,
		Split: SplitEqual, Who: SelectNearbyAllies,
		DurationMs: 20000,
	},
	{
		ID: 203, Name: "Mirror Drift",
		Trigger: TriggerTakeDamage, Response: RespRedirectToSource,
		DurationMs: 15000, CooldownMs: 5000,
	},
	{
		ID: 204, Name: "White Veil",
		Trigger: TriggerHitByProjectile, Response: RespPrevent,
		DurationMs: 10000, CooldownMs: 3000,
	},
	{
		ID: 205, Name: "Vengeful Frost",
		Trigger: TriggerTakeDamage, Response: RespDealDamage,
		Magnitude: 5, Who: SelectSource,
		DurationMs: 15000, CooldownMs: 1000,
	},
	{
		ID: 206, Name: "Decoy Drift",
		Trigger: TriggerWouldDie, Response: RespSummon,
		Summon:         &SummonSpec{Name: "Snow Decoy", Warmth: 40, Armor: 20, DurationMs: 15000},
		MaxActivations: 1,
	},
	{
		ID: 207, Name: "Echo Pact",
		Trigger: TriggerTakeDamage, Response: RespChain, Next: 205,
		DurationMs: 15000, CooldownMs: 2000,
	},
	{
		ID: 208, Name: "Warming Presence",
		Trigger: TriggerPeriodic, Response: RespGrantEffect,
		Effect: 119, Who: SelectNearbyAllies,
		DurationMs: 12000, PeriodMs: 2000,
	},
	{
		ID: 209, Name: "Bodyguard",
		Trigger: TriggerTakeDamage, Response: RespForceTargetSelf,
		Who:        SelectSelf,
		DurationMs: 12000, CooldownMs: 2000,
	},
	{
		ID: 210, Name: "Burden Share",
		Trigger: TriggerTakeDamage, Response: RespSplitDamage,
		Split: SplitProportionalMaxWarmth, Who: SelectNearbyAllies,
		DurationMs: 20000,
	},
	{
		ID: 211, Name: "Bulwark Pact",
		Trigger: TriggerTakeDamage, Response: RespSplitDamage,
		Split: SplitAbsorbRemainder, Magnitude: 0.3, Who: SelectNearbyAllies,
		DurationMs: 20000,
	},
}

var skillDefs = []Skill{
	{
		ID: 1, Name: "Snowball Toss", School: "Vanguard",
		EnergyCost: 5, CastRange: 300, Targeting: TargetEnemy,
		Mechanic: MechanicLob, ActivationMs: 1000, AftercastMs: 500, RechargeMs: 2000,
		BaseDamage: 20, Projectile: true,
		Effects:    []EffectID{101},
	},
	{
		ID: 2, Name: "Ice Lance", School: "Chorus",
		EnergyCost: 10, CastRange: 350, Targeting: TargetEnemy,
		Mechanic: MechanicStrike, ActivationMs: 800, AftercastMs: 400, RechargeMs: 4000,
		BaseDamage: 28, Penetration: 0.5, Projectile: true,
		Effects:    []EffectID{102},
	},
	{
		ID: 3, Name: "Frost Nova", School: "Chorus",
		EnergyCost: 15, CastRange: 200, Targeting: TargetEnemy,
		Mechanic: MechanicWindup, ActivationMs: 1200, RechargeMs: 8000,
		BaseDamage: 15,
		Effects:    []EffectID{114, 108},
	},
	{
		ID: 4, Name: "Warm Hearth", School: "Peddler",
		EnergyCost: 10, CastRange: 250, Targeting: TargetAlly,
		Mechanic: MechanicWindup, ActivationMs: 600, RechargeMs: 5000,
		Effects: []EffectID{104, 103},
		Auto:    &AutoCast{If: Predicate{Kind: PredWarmthBelowPct, Value: 0.5}, Target: TargetAlly},
	},
	{
		ID: 5, Name: "Guardian Pact", School: "Vanguard",
		EnergyCost: 10, CastRange: 250, Targeting: TargetAlly,
		Mechanic: MechanicInstant, RechargeMs: 15000,
		Behavior: 202,
	},
	{
		ID: 6, Name: "Last Ember", School: "Peddler",
		EnergyCost: 5, Targeting: TargetSelf,
		Mechanic: MechanicInstant, RechargeMs: 30000,
		Behavior: 201, Elite: true,
	},
	{
		ID: 7, Name: "Mirror Drift", School: "Wildcard",
		EnergyCost: 10, Targeting: TargetSelf,
		Mechanic: MechanicInstant, RechargeMs: 20000,
		Behavior: 203, Elite: true,
	},
	{
		ID: 8, Name: "Glacier Path", School: "Wildcard",
		EnergyCost: 12, CastRange: 400, Targeting: TargetGround,
		Mechanic: MechanicWindup, ActivationMs: 900, RechargeMs: 10000,
		Unblockable: true,
		Effects:     []EffectID{109},
	},
	{
		ID: 9, Name: "Sharp Icicle", School: "Chorus",
		EnergyCost: 5, CastRange: 300, Targeting: TargetEnemy,
		Mechanic: MechanicInstant, RechargeMs: 1000,
		BaseDamage: 10, Soak: 0.25, Unblockable: true,
	},
	{
		ID: 10, Name: "White Veil", School: "Vanguard",
		EnergyCost: 8, Targeting: TargetSelf,
		Mechanic: MechanicInstant, RechargeMs: 12000,
		Behavior: 204,
	},
	{
		ID: 11, Name: "Ember Coat", School: "Peddler",
		EnergyCost: 10, Targeting: TargetSelf,
		Mechanic: MechanicInstant, RechargeMs: 10000,
		Effects: []EffectID{110, 107},
	},
	{
		ID: 12, Name: "Rally Cry", School: "Vanguard",
		EnergyCost: 8, Targeting: TargetSelf,
		Mechanic: MechanicWindup, ActivationMs: 700, RechargeMs: 9000,
		Effects: []EffectID{116, 113},
	},
	{
		ID: 13, Name: "Vengeful Shell", School: "Wildcard",
		EnergyCost: 8, Targeting: TargetSelf,
		Mechanic: MechanicInstant, RechargeMs: 8000,
		Behavior: 205,
	},
	{
		ID: 14, Name: "Warming Presence", School: "Peddler",
		EnergyCost: 12, Targeting: TargetSelf,
		Mechanic: MechanicInstant, RechargeMs: 18000,
		Behavior: 208,
	},
	{
		ID: 15, Name: "Bodyguard", School: "Vanguard",
		EnergyCost: 10, Targeting: TargetSelf,
		Mechanic: MechanicInstant, RechargeMs: 15000,
		Behavior: 209,
	},
	{
		ID: 16, Name: "Smolder Strike", School: "Wildcard",
		EnergyCost: 6, SecondaryCost: 2, CastRange: 150, Targeting: TargetEnemy,
		Mechanic: MechanicStrike, ActivationMs: 600, AftercastMs: 300, RechargeMs: 3000,
		BaseDamage: 12,
		Effects:    []EffectID{118},
	},
	{
		ID: 17, Name: "Echo Pact", School: "Wildcard",
		EnergyCost: 8, Targeting: TargetSelf,
		Mechanic: MechanicInstant, RechargeMs: 14000,
		Behavior: 207,
	},
	{
		ID: 18, Name: "Decoy Charm", School: "Peddler",
		EnergyCost: 12, Targeting: TargetSelf,
		Mechanic: MechanicInstant, RechargeMs: 40000,
		Behavior: 206, Elite: true,
	},
	{
		ID: 19, Name: "Burden Share", School: "Vanguard",
		EnergyCost: 10, CastRange: 250, Targeting: TargetAlly,
		Mechanic: MechanicInstant, RechargeMs: 15000,
		Behavior: 210,
	},
	{
		ID: 20, Name: "Bulwark Pact", School: "Vanguard",
		EnergyCost: 10, CastRange: 250, Targeting: TargetAlly,
		Mechanic: MechanicInstant, RechargeMs: 15000,
		Behavior: 211,
	},
	{
		ID: 21, Name: "Winter Rebate", School: "Chorus",
		EnergyCost: 6, CastRange: 300, Targeting: TargetEnemy,
		Mechanic: MechanicInstant, RechargeMs: 2000,
		BaseDamage: 6,
		Effects:    []EffectID{117, 115},
	},
}
