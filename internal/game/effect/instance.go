package effect

import (
	"github.com/kjard-games/snow-sub006/internal/data"
	"github.com/kjard-games/snow-sub006/internal/model"
)

// ActiveCondition is one running timed instance on an entity. It owns only
// its mutable fields and points back at the shared static definition:
// either a timed Effect or a Chill/Cozy Condition, never both.
type ActiveCondition struct {
	Effect *data.Effect
	Cond   *data.Condition

	Source      model.EntityID
	RemainingMs int32
	Stacks      int32
	periodAccum int32
}

func (a *ActiveCondition) durationMs() int32 {
	if a.Cond != nil {
		return a.Cond.DurationMs
	}
	return a.Effect.DurationMs
}

func (a *ActiveCondition) periodMs() int32 {
	p := int32(0)
	if a.Cond != nil {
		p = a.Cond.PeriodMs
	} else {
		p = a.Effect.PeriodMs
	}
	if p <= 0 {
		p = 1000
	}
	return p
}

func (a *ActiveCondition) stacking() data.Stacking {
	if a.Cond != nil {
		return a.Cond.Stacking
	}
	return a.Effect.Stacking
}

func (a *ActiveCondition) maxStacks() int32 {
	m := int32(1)
	if a.Cond != nil {
		m = a.Cond.MaxStacks
	} else {
		m = a.Effect.MaxStacks
	}
	if m < 1 {
		m = 1
	}
	return m
}

func (a *ActiveCondition) onEnd() data.EffectID {
	if a.Cond != nil {
		return a.Cond.OnEnd
	}
	return a.Effect.OnEnd
}

func (a *ActiveCondition) onEarlyRemove() data.EffectID {
	if a.Cond != nil {
		return a.Cond.OnEarlyRemove
	}
	return a.Effect.OnEarlyRemove
}

func (a *ActiveCondition) name() string {
	if a.Cond != nil {
		return a.Cond.Name
	}
	return a.Effect.Name
}

// polarity classifies the instance for the chill/cozy split. Conditions
// declare it; effect-materialized instances are classified by payload.
func (a *ActiveCondition) polarity() data.Polarity {
	if a.Cond != nil {
		return a.Cond.Polarity
	}
	e := a.Effect
	if e.When == data.TriggerOnBlock {
		return data.PolarityCozy // a stance the owner benefits from
	}
	switch e.Kind {
	case data.EffectDamage, data.EffectDrainEnergy:
		return data.PolarityChill
	case data.EffectModifyStat:
		if e.Op == data.OpMul {
			if e.Magnitude < 1 {
				return data.PolarityChill
			}
			return data.PolarityCozy
		}
		if e.Magnitude < 0 {
			return data.PolarityChill
		}
		return data.PolarityCozy
	default:
		return data.PolarityCozy
	}
}

// sameDefinition reports whether the instance tracks the given definition
// (used for stacking lookups).
func (a *ActiveCondition) sameDefinition(other *ActiveCondition) bool {
	if a.Cond != nil && other.Cond != nil {
		return a.Cond.ID == other.Cond.ID
	}
	if a.Effect != nil && other.Effect != nil {
		return a.Effect.ID == other.Effect.ID
	}
	return false
}

// conditionSet holds the active instances of one entity, chills and
// cozies tracked separately.
type conditionSet struct {
	chills []*ActiveCondition
	cozies []*ActiveCondition
}

func (s *conditionSet) listFor(p data.Polarity) *[]*ActiveCondition {
	if p == data.PolarityChill {
		return &s.chills
	}
	return &s.cozies
}

func (s *conditionSet) all() []*ActiveCondition {
	out := make([]*ActiveCondition, 0, len(s.chills)+len(s.cozies))
	out = append(out, s.chills...)
	out = append(out, s.cozies...)
	return out
}

// ConditionView is the read-only snapshot form of an active instance.
type ConditionView struct {
	Name        string
	Chill       bool
	RemainingMs int32
	Stacks      int32
	Source      model.EntityID
}
