package data

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMain(m *testing.M) {
	if err := Load(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestLoadTables(t *testing.T) {
	if SkillCount() == 0 {
		t.Fatal("no skills loaded")
	}
	sk := GetSkill(1)
	if sk == nil {
		t.Fatal("skill 1 missing")
	}
	if sk.Name != "Snowball Toss" {
		t.Errorf("skill 1 name = %q", sk.Name)
	}
	if GetEffect(101) == nil {
		t.Error("effect 101 missing")
	}
	if GetBehavior(201) == nil {
		t.Error("behavior 201 missing")
	}
	if GetCondition(301) == nil {
		t.Error("condition 301 missing")
	}
}

func TestGetUnknownReturnsNil(t *testing.T) {
	if GetSkill(9999) != nil {
		t.Error("unknown skill id resolved")
	}
	if GetEffect(9999) != nil {
		t.Error("unknown effect id resolved")
	}
}

func TestSkillEffectReferencesResolve(t *testing.T) {
	for _, sk := range skillTable {
		for _, id := range sk.Effects {
			if GetEffect(id) == nil {
				t.Errorf("skill %q references missing effect %d", sk.Name, id)
			}
		}
		if sk.Behavior != 0 && GetBehavior(sk.Behavior) == nil {
			t.Errorf("skill %q references missing behavior %d", sk.Name, sk.Behavior)
		}
	}
}

func TestValidateLoadout(t *testing.T) {
	if err := ValidateLoadout([]int32{1, 2, 6, 0}); err != nil {
		t.Errorf("valid loadout rejected: %v", err)
	}
	if err := ValidateLoadout([]int32{1, 424242}); err == nil {
		t.Error("unknown skill id accepted")
	}
	// 6 and 7 are both elite.
	if err := ValidateLoadout([]int32{6, 7}); err == nil {
		t.Error("double elite loadout accepted")
	}
}

func TestApplyOverlay(t *testing.T) {
	t.Cleanup(func() {
		if err := Load(); err != nil {
			t.Fatal(err)
		}
	})

	path := filepath.Join(t.TempDir(), "overlay.yaml")
	overlay := `skills:
  - id: 1
    base_damage: 25
    recharge_ms: 1500
`
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ApplyOverlay(path); err != nil {
		t.Fatal(err)
	}

	sk := GetSkill(1)
	if sk.BaseDamage != 25 {
		t.Errorf("base damage = %v, want 25", sk.BaseDamage)
	}
	if sk.RechargeMs != 1500 {
		t.Errorf("recharge = %d, want 1500", sk.RechargeMs)
	}
}

func TestApplyOverlayMissingFileIsNoop(t *testing.T) {
	if err := ApplyOverlay(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Errorf("missing overlay reported as error: %v", err)
	}
}
