package combat

import (
	"math"
	"testing"
)

func TestMitigationMultiplier(t *testing.T) {
	cases := []struct {
		name        string
		armor       float64
		soak        float64
		penetration float64
		want        float64
	}{
		{"no armor", 0, 0, 0, 1.0},
		{"armor at softening constant halves", 40, 0, 0, 0.5},
		{"penetration halves effective armor", 80, 0, 0.5, 0.5},
		{"soak bypasses part of mitigation", 40, 0.25, 0, 0.625},
		{"full soak ignores armor", 200, 1, 0, 1.0},
		{"full penetration ignores armor", 200, 0, 1, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MitigationMultiplier(tc.armor, tc.soak, tc.penetration)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("multiplier = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMitigationMultiplierNeverZero(t *testing.T) {
	for _, armor := range []float64{0, 10, 40, 200, 100000} {
		m := MitigationMultiplier(armor, 0, 0)
		if m <= 0 || m > 1 {
			t.Errorf("armor %v: multiplier %v outside (0, 1]", armor, m)
		}
	}
}

func TestMitigatedDamage(t *testing.T) {
	if got := MitigatedDamage(20, 0, 0, 0); got != 20 {
		t.Errorf("unarmored damage = %d, want 20", got)
	}
	if got := MitigatedDamage(20, 40, 0, 0); got != 10 {
		t.Errorf("armor 40 damage = %d, want 10", got)
	}
	if got := MitigatedDamage(20, 80, 0, 0.5); got != 10 {
		t.Errorf("pen 0.5 armor 80 damage = %d, want 10", got)
	}
}

func TestMitigatedDamageFloorsAtOne(t *testing.T) {
	if got := MitigatedDamage(1, 100000, 0, 0); got != 1 {
		t.Errorf("chip damage = %d, want 1", got)
	}
	if got := MitigatedDamage(0, 0, 0, 0); got != 0 {
		t.Errorf("zero base damage = %d, want 0", got)
	}
}
