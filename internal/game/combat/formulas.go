package combat

// armorSofteningConstant shapes the diminishing-returns curve of armor
// mitigation. At armor == armorSofteningConstant the mitigated fraction
// of the non-soaked part is exactly one half.
const armorSofteningConstant = 40.0

// MitigationMultiplier returns the fraction of base damage that lands
// after armor mitigation:
//
//	effectiveArmor = armor * (1 - penetration)
//	mult = 1 - (1-soak) * effectiveArmor / (effectiveArmor + K)
//
// soak is the damage fraction that ignores armor entirely; penetration
// is the armor fraction the attack ignores. Both are clamped to [0, 1].
// The result is always in (0, 1]: armor can soften a hit, never zero it.
func MitigationMultiplier(armor float64, soak, penetration float64) float64 {
	soak = clamp01(soak)
	penetration = clamp01(penetration)
	if armor < 0 {
		armor = 0
	}
	effective := armor * (1 - penetration)
	return 1 - (1-soak)*effective/(effective+armorSofteningConstant)
}

// MitigatedDamage applies the armor multiplier to a base amount and
// truncates to whole warmth points. A positive base always deals at
// least 1.
func MitigatedDamage(base float64, armor float64, soak, penetration float64) int32 {
	if base <= 0 {
		return 0
	}
	dmg := int32(base * MitigationMultiplier(armor, soak, penetration))
	return max(dmg, 1)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
