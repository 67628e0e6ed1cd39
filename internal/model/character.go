package model

// MaxSkillSlots is the number of skill slots in a loadout.
const MaxSkillSlots = 8

// Character holds the mutable per-entity runtime state: resources, position,
// team affiliation and movement. Active conditions and casting state are
// tracked by the engines that own them.
//
// The simulation is single-threaded (one owner goroutine per match), so no
// locking here; everything is mutated inside the tick loop only.
type Character struct {
	id     EntityID
	name   string
	team   Team
	school School

	warmth       int32
	maxWarmth    int32
	energy       int32
	maxEnergy    int32
	secondary    int32
	maxSecondary int32

	baseArmor     int32
	baseAvoidance int32 // percent chance to avoid a blockable hit
	speed         float64

	loc  Location
	dest *Location // nil when not moving

	// moved is set when the character changed position this tick and is
	// cleared at end of tick. An in-progress cast is canceled on movement.
	moved bool

	alive bool

	// summoned entities despawn when summonTTLMs reaches zero.
	summoned    bool
	summonTTLMs int32

	loadout [MaxSkillSlots]int32 // skill ids, 0 = empty slot
}

// NewCharacter creates a character at full resources.
func NewCharacter(id EntityID, name string, team Team, school School, maxWarmth, maxEnergy, maxSecondary int32) *Character {
	return &Character{
		id:           id,
		name:         name,
		team:         team,
		school:       school,
		warmth:       maxWarmth,
		maxWarmth:    maxWarmth,
		energy:       maxEnergy,
		maxEnergy:    maxEnergy,
		secondary:    0,
		maxSecondary: maxSecondary,
		speed:        40,
		alive:        true,
	}
}

// NewSummon creates a short-lived summoned character (e.g. a snow decoy).
func NewSummon(id EntityID, name string, team Team, maxWarmth, armor, ttlMs int32) *Character {
	c := NewCharacter(id, name, team, SchoolVanguard, maxWarmth, 0, 0)
	c.baseArmor = armor
	c.summoned = true
	c.summonTTLMs = ttlMs
	return c
}

func (c *Character) ID() EntityID          { return c.id }
func (c *Character) Name() string          { return c.name }
func (c *Character) Team() Team            { return c.team }
func (c *Character) School() School        { return c.school }
func (c *Character) Warmth() int32         { return c.warmth }
func (c *Character) MaxWarmth() int32      { return c.maxWarmth }
func (c *Character) Energy() int32         { return c.energy }
func (c *Character) MaxEnergy() int32      { return c.maxEnergy }
func (c *Character) Secondary() int32      { return c.secondary }
func (c *Character) MaxSecondary() int32   { return c.maxSecondary }
func (c *Character) BaseArmor() int32      { return c.baseArmor }
func (c *Character) BaseAvoidance() int32  { return c.baseAvoidance }
func (c *Character) Speed() float64        { return c.speed }
func (c *Character) Location() Location    { return c.loc }
func (c *Character) IsAlive() bool         { return c.alive }
func (c *Character) IsSummon() bool        { return c.summoned }
func (c *Character) SummonTTLMs() int32    { return c.summonTTLMs }
func (c *Character) MovedThisTick() bool   { return c.moved }
func (c *Character) IsMoving() bool        { return c.dest != nil }

// SetBaseArmor sets the armor rating (clamped at zero).
func (c *Character) SetBaseArmor(a int32) {
	if a < 0 {
		a = 0
	}
	c.baseArmor = a
}

// SetBaseAvoidance sets the avoidance percent, clamped to [0, 100].
func (c *Character) SetBaseAvoidance(pct int32) {
	c.baseAvoidance = min(max(pct, 0), 100)
}

// SetSpeed sets base movement speed in units per second.
func (c *Character) SetSpeed(s float64) {
	if s < 0 {
		s = 0
	}
	c.speed = s
}

// SetLocation teleports the character without counting as movement.
func (c *Character) SetLocation(loc Location) { c.loc = loc }

// MoveTo sets the movement destination.
func (c *Character) MoveTo(dest Location) {
	d := dest
	c.dest = &d
}

// StopMoving clears the movement destination.
func (c *Character) StopMoving() { c.dest = nil }

// AdvanceMovement moves the character toward its destination by up to
// dist units. Returns true if the position changed.
func (c *Character) AdvanceMovement(dist float64) bool {
	if c.dest == nil || dist <= 0 {
		return false
	}
	next := c.loc.StepToward(*c.dest, dist)
	if next == c.loc {
		c.dest = nil
		return false
	}
	c.loc = next
	if c.loc == *c.dest {
		c.dest = nil
	}
	c.moved = true
	return true
}

// ClearMovedFlag resets the per-tick movement marker.
func (c *Character) ClearMovedFlag() { c.moved = false }

// ReduceWarmth lowers warmth by amount, clamped at zero.
func (c *Character) ReduceWarmth(amount int32) {
	if amount <= 0 {
		return
	}
	c.warmth = max(c.warmth-amount, 0)
}

// RestoreWarmth raises warmth by amount, clamped at max.
func (c *Character) RestoreWarmth(amount int32) {
	if amount <= 0 {
		return
	}
	c.warmth = min(c.warmth+amount, c.maxWarmth)
}

// SetWarmth sets warmth directly, clamped to [0, max].
func (c *Character) SetWarmth(w int32) {
	c.warmth = min(max(w, 0), c.maxWarmth)
}

// SpendEnergy deducts cost if available. Returns false without mutation
// when energy is insufficient.
func (c *Character) SpendEnergy(cost int32) bool {
	if cost < 0 || c.energy < cost {
		return false
	}
	c.energy -= cost
	return true
}

// RestoreEnergy raises energy by amount, clamped at max.
func (c *Character) RestoreEnergy(amount int32) {
	if amount <= 0 {
		return
	}
	c.energy = min(c.energy+amount, c.maxEnergy)
}

// DrainEnergy lowers energy by amount, clamped at zero.
func (c *Character) DrainEnergy(amount int32) {
	if amount <= 0 {
		return
	}
	c.energy = max(c.energy-amount, 0)
}

// SpendSecondary deducts cost from the secondary resource if available.
func (c *Character) SpendSecondary(cost int32) bool {
	if cost < 0 || c.secondary < cost {
		return false
	}
	c.secondary -= cost
	return true
}

// GainSecondary raises the secondary resource, clamped at max.
func (c *Character) GainSecondary(amount int32) {
	if amount <= 0 {
		return
	}
	c.secondary = min(c.secondary+amount, c.maxSecondary)
}

// Kill marks the character dead. Idempotent; returns true only for the
// first call so death handling runs once.
func (c *Character) Kill() bool {
	if !c.alive {
		return false
	}
	c.alive = false
	return true
}

// TickSummon decrements the summon lifetime. Returns true when expired.
func (c *Character) TickSummon(deltaMs int32) bool {
	if !c.summoned {
		return false
	}
	c.summonTTLMs -= deltaMs
	return c.summonTTLMs <= 0
}

// SetLoadout assigns skill ids to slots. Extra ids are ignored.
func (c *Character) SetLoadout(skillIDs []int32) {
	for i := range c.loadout {
		c.loadout[i] = 0
	}
	for i, id := range skillIDs {
		if i >= MaxSkillSlots {
			break
		}
		c.loadout[i] = id
	}
}

// SkillAt returns the skill id in the given slot, 0 if empty or out of range.
func (c *Character) SkillAt(slot int) int32 {
	if slot < 0 || slot >= MaxSkillSlots {
		return 0
	}
	return c.loadout[slot]
}

// Loadout returns a copy of the slot assignment.
func (c *Character) Loadout() [MaxSkillSlots]int32 { return c.loadout }
