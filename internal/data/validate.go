package data

import "fmt"

// maxChainWalk bounds reference walks during validation. Content can
// legitimately chain a few steps; anything deeper is assumed cyclic.
const maxChainWalk = 16

// validate checks cross-references between loaded definitions. Runs once
// at load time so the tick loop can assume structural validity.
func validate() error {
	for id, e := range effectTable {
		if err := validateEffect(e); err != nil {
			return fmt.Errorf("effect %d (%s): %w", id, e.Name, err)
		}
	}
	for id, c := range conditionTable {
		if err := validateCondition(c); err != nil {
			return fmt.Errorf("condition %d (%s): %w", id, c.Name, err)
		}
	}
	for id, b := range behaviorTable {
		if err := validateBehavior(b); err != nil {
			return fmt.Errorf("behavior %d (%s): %w", id, b.Name, err)
		}
	}
	for id, s := range skillTable {
		if err := validateSkill(s); err != nil {
			return fmt.Errorf("skill %d (%s): %w", id, s.Name, err)
		}
	}
	return nil
}

func validateEffect(e *Effect) error {
	switch e.Kind {
	case EffectApplyChill, EffectApplyCozy:
		c := conditionTable[e.Condition]
		if c == nil {
			return fmt.Errorf("dangling condition ref %d", e.Condition)
		}
		if e.Kind == EffectApplyChill && c.Polarity != PolarityChill {
			return fmt.Errorf("condition %d is not a chill", e.Condition)
		}
		if e.Kind == EffectApplyCozy && c.Polarity != PolarityCozy {
			return fmt.Errorf("condition %d is not a cozy", e.Condition)
		}
	}
	if e.Stacking == StackIntensity && e.MaxStacks < 1 {
		return fmt.Errorf("intensity stacking needs MaxStacks >= 1")
	}
	for _, ref := range []EffectID{e.Initial, e.OnEnd, e.OnEarlyRemove} {
		if ref != 0 && effectTable[ref] == nil {
			return fmt.Errorf("dangling chain effect ref %d", ref)
		}
	}
	return checkEffectChainDepth(e.ID)
}

func validateCondition(c *Condition) error {
	if c.DurationMs <= 0 {
		return fmt.Errorf("condition must have a positive duration")
	}
	if c.Stacking == StackIntensity && c.MaxStacks < 1 {
		return fmt.Errorf("intensity stacking needs MaxStacks >= 1")
	}
	for _, ref := range []EffectID{c.OnEnd, c.OnEarlyRemove} {
		if ref != 0 && effectTable[ref] == nil {
			return fmt.Errorf("dangling chain effect ref %d", ref)
		}
	}
	return nil
}

func validateBehavior(b *Behavior) error {
	if b.Response == RespGrantEffect && effectTable[b.Effect] == nil {
		return fmt.Errorf("dangling effect ref %d", b.Effect)
	}
	if b.Response == RespChain {
		if behaviorTable[b.Next] == nil {
			return fmt.Errorf("dangling chain behavior ref %d", b.Next)
		}
		// Cycles in chain content are tolerated at runtime (bounded
		// recursion), but a self-loop is always authoring error.
		if b.Next == b.ID {
			return fmt.Errorf("behavior chains to itself")
		}
	}
	if b.Response == RespSummon && b.Summon == nil {
		return fmt.Errorf("summon response without summon spec")
	}
	if b.MaxActivations < 0 {
		return fmt.Errorf("negative max activations")
	}
	return nil
}

func validateSkill(s *Skill) error {
	for _, ref := range s.Effects {
		if effectTable[ref] == nil {
			return fmt.Errorf("dangling effect ref %d", ref)
		}
	}
	if s.Behavior != 0 && behaviorTable[s.Behavior] == nil {
		return fmt.Errorf("dangling behavior ref %d", s.Behavior)
	}
	if s.Mechanic != MechanicInstant && s.ActivationMs <= 0 {
		return fmt.Errorf("non-instant mechanic with zero activation")
	}
	if s.Mechanic.HasRecovery() && s.AftercastMs <= 0 {
		return fmt.Errorf("recovery mechanic with zero aftercast")
	}
	if s.Soak < 0 || s.Soak > 1 {
		return fmt.Errorf("soak out of [0,1]")
	}
	if s.Penetration < 0 || s.Penetration > 1 {
		return fmt.Errorf("penetration out of [0,1]")
	}
	return nil
}

// checkEffectChainDepth walks Initial/OnEnd/OnEarlyRemove references and
// rejects chains deeper than maxChainWalk (a cycle in practice).
func checkEffectChainDepth(root EffectID) error {
	var walk func(id EffectID, depth int) error
	walk = func(id EffectID, depth int) error {
		if id == 0 {
			return nil
		}
		if depth > maxChainWalk {
			return fmt.Errorf("effect chain from %d exceeds depth %d (cycle?)", root, maxChainWalk)
		}
		e := effectTable[id]
		if e == nil {
			return nil // dangling refs reported elsewhere
		}
		for _, next := range []EffectID{e.Initial, e.OnEnd, e.OnEarlyRemove} {
			if err := walk(next, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root, 0)
}

// ValidateLoadout checks a loadout slot assignment: ids must resolve and
// at most one elite (AP) skill may be present.
func ValidateLoadout(skillIDs []int32) error {
	elites := 0
	for _, raw := range skillIDs {
		if raw == 0 {
			continue
		}
		sk := GetSkill(SkillID(raw))
		if sk == nil {
			return fmt.Errorf("unknown skill id %d", raw)
		}
		if sk.Elite {
			elites++
		}
	}
	if elites > 1 {
		return fmt.Errorf("loadout has %d elite skills, at most 1 allowed", elites)
	}
	return nil
}
