package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Global definition tables. Loaded once via Load() at startup, read-only
// afterwards and shared by reference across every skill that uses them.
var (
	skillTable     map[SkillID]*Skill
	effectTable    map[EffectID]*Effect
	behaviorTable  map[BehaviorID]*Behavior
	conditionTable map[ConditionID]*Condition
)

// Load builds the definition tables from the built-in Go-literal set and
// validates cross-references. Must be called before any Get accessor.
func Load() error {
	skillTable = make(map[SkillID]*Skill, len(skillDefs))
	effectTable = make(map[EffectID]*Effect, len(effectDefs))
	behaviorTable = make(map[BehaviorID]*Behavior, len(behaviorDefs))
	conditionTable = make(map[ConditionID]*Condition, len(conditionDefs))

	for i := range effectDefs {
		e := &effectDefs[i]
		if _, dup := effectTable[e.ID]; dup {
			return fmt.Errorf("duplicate effect id %d", e.ID)
		}
		effectTable[e.ID] = e
	}
	for i := range conditionDefs {
		c := &conditionDefs[i]
		if _, dup := conditionTable[c.ID]; dup {
			return fmt.Errorf("duplicate condition id %d", c.ID)
		}
		conditionTable[c.ID] = c
	}
	for i := range behaviorDefs {
		b := &behaviorDefs[i]
		if _, dup := behaviorTable[b.ID]; dup {
			return fmt.Errorf("duplicate behavior id %d", b.ID)
		}
		behaviorTable[b.ID] = b
	}
	for i := range skillDefs {
		s := &skillDefs[i]
		if _, dup := skillTable[s.ID]; dup {
			return fmt.Errorf("duplicate skill id %d", s.ID)
		}
		skillTable[s.ID] = s
	}

	if err := validate(); err != nil {
		return fmt.Errorf("validating content: %w", err)
	}

	slog.Info("loaded content",
		"skills", len(skillTable),
		"effects", len(effectTable),
		"behaviors", len(behaviorTable),
		"conditions", len(conditionTable))
	return nil
}

// GetSkill returns the skill definition or nil if unknown.
func GetSkill(id SkillID) *Skill {
	if skillTable == nil {
		return nil
	}
	return skillTable[id]
}

// GetEffect returns the effect definition or nil if unknown.
func GetEffect(id EffectID) *Effect {
	if effectTable == nil {
		return nil
	}
	return effectTable[id]
}

// GetBehavior returns the behavior definition or nil if unknown.
func GetBehavior(id BehaviorID) *Behavior {
	if behaviorTable == nil {
		return nil
	}
	return behaviorTable[id]
}

// GetCondition returns the condition definition or nil if unknown.
func GetCondition(id ConditionID) *Condition {
	if conditionTable == nil {
		return nil
	}
	return conditionTable[id]
}

// SkillCount returns the number of loaded skills.
func SkillCount() int { return len(skillTable) }

// skillOverlay is one tuning entry in a balance overlay file.
type skillOverlay struct {
	ID            int32    `yaml:"id"`
	EnergyCost    *int32   `yaml:"energy_cost"`
	SecondaryCost *int32   `yaml:"secondary_cost"`
	BaseDamage    *float64 `yaml:"base_damage"`
	RechargeMs    *int32   `yaml:"recharge_ms"`
	ActivationMs  *int32   `yaml:"activation_ms"`
	AftercastMs   *int32   `yaml:"aftercast_ms"`
}

type overlayFile struct {
	Skills []skillOverlay `yaml:"skills"`
}

// ApplyOverlay tunes numeric skill fields from a YAML balance overlay.
// A missing file is not an error; unknown skill ids are logged and
// skipped. Must be called after Load and before the first match starts.
func ApplyOverlay(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading overlay %s: %w", path, err)
	}

	var f overlayFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parsing overlay %s: %w", path, err)
	}

	applied := 0
	for _, o := range f.Skills {
		sk := GetSkill(SkillID(o.ID))
		if sk == nil {
			slog.Warn("overlay references unknown skill", "id", o.ID)
			continue
		}
		if o.EnergyCost != nil {
			sk.EnergyCost = *o.EnergyCost
		}
		if o.SecondaryCost != nil {
			sk.SecondaryCost = *o.SecondaryCost
		}
		if o.BaseDamage != nil {
			sk.BaseDamage = *o.BaseDamage
		}
		if o.RechargeMs != nil {
			sk.RechargeMs = *o.RechargeMs
		}
		if o.ActivationMs != nil {
			sk.ActivationMs = *o.ActivationMs
		}
		if o.AftercastMs != nil {
			sk.AftercastMs = *o.AftercastMs
		}
		applied++
	}

	slog.Info("applied balance overlay", "path", path, "skills", applied)
	return nil
}
