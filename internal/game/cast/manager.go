// Package cast drives skills through activation, mid-cast release,
// aftercast recovery and per-slot recharge.
package cast

import (
	"errors"
	"log/slog"

	"github.com/kjard-games/snow-sub006/internal/data"
	"github.com/kjard-games/snow-sub006/internal/game/effect"
	"github.com/kjard-games/snow-sub006/internal/model"
	"github.com/kjard-games/snow-sub006/internal/world"
)

// Rejected cast requests. These are commands turned down before any
// state mutation or cost deduction, not faults.
var (
	ErrDead               = errors.New("caster is down")
	ErrUnknownSlot        = errors.New("slot out of range")
	ErrEmptySlot          = errors.New("slot is empty")
	ErrRecharging         = errors.New("skill is recharging")
	ErrAlreadyCasting     = errors.New("a cast is already in progress")
	ErrInAftercast        = errors.New("still recovering from the last cast")
	ErrNotEnoughEnergy    = errors.New("not enough energy")
	ErrNotEnoughSecondary = errors.New("not enough secondary resource")
	ErrNoTarget           = errors.New("no valid target")
	ErrOutOfRange         = errors.New("target out of range")
)

// Phase of the active-cast state machine.
type Phase int8

const (
	PhaseIdle Phase = iota
	PhaseActivating
	PhaseAftercast
)

func (p Phase) String() string {
	switch p {
	case PhaseActivating:
		return "activating"
	case PhaseAftercast:
		return "aftercast"
	default:
		return "idle"
	}
}

// State is the per-entity casting record: one active-cast phase plus the
// parallel per-slot recharge countdowns.
type State struct {
	Skill     *data.Skill
	Slot      int
	Target    model.EntityID
	Phase     Phase
	ElapsedMs int32
	Released  bool

	Recharge [model.MaxSkillSlots]int32
}

// CancelReason says why an in-progress cast was aborted.
type CancelReason int8

const (
	CancelMoved CancelReason = iota
	CancelExplicit
	CancelTargetLost
)

func (r CancelReason) String() string {
	switch r {
	case CancelExplicit:
		return "explicit"
	case CancelTargetLost:
		return "target lost"
	default:
		return "moved"
	}
}

// Manager owns every entity's casting state. On release it hands the
// skill to the injected resolver; the hook keeps the import graph
// acyclic the same way the broadcast callbacks do elsewhere.
type Manager struct {
	world   *world.World
	effects *effect.Engine

	// release resolves the skill payload against the stored target.
	release func(caster model.EntityID, sk *data.Skill, target model.EntityID)

	states map[model.EntityID]*State
}

// NewManager creates a cast manager.
func NewManager(w *world.World, effects *effect.Engine) *Manager {
	return &Manager{
		world:   w,
		effects: effects,
		states:  make(map[model.EntityID]*State),
	}
}

// SetReleaseHook wires the payload resolver.
func (m *Manager) SetReleaseHook(fn func(caster model.EntityID, sk *data.Skill, target model.EntityID)) {
	m.release = fn
}

// StateOf returns the casting record for the entity, creating it lazily.
func (m *Manager) StateOf(id model.EntityID) *State {
	st, ok := m.states[id]
	if !ok {
		st = &State{}
		m.states[id] = st
	}
	return st
}

// Request validates and starts a cast for the skill in the given slot.
// All validation happens before any mutation; a rejected request leaves
// the caster untouched. On acceptance the resource cost is deducted and
// the slot's recharge countdown starts immediately. Both are
// irrevocable even if the cast is later interrupted.
func (m *Manager) Request(caster model.EntityID, slot int, target model.EntityID) error {
	c := m.world.Get(caster)
	if c == nil || !c.IsAlive() {
		return ErrDead
	}
	if slot < 0 || slot >= model.MaxSkillSlots {
		return ErrUnknownSlot
	}
	skillID := c.SkillAt(slot)
	if skillID == 0 {
		return ErrEmptySlot
	}
	sk := data.GetSkill(data.SkillID(skillID))
	if sk == nil {
		return ErrEmptySlot
	}

	st := m.StateOf(caster)
	if st.Recharge[slot] > 0 {
		return ErrRecharging
	}
	switch st.Phase {
	case PhaseActivating:
		return ErrAlreadyCasting
	case PhaseAftercast:
		return ErrInAftercast
	}
	if c.Energy() < sk.EnergyCost {
		return ErrNotEnoughEnergy
	}
	if c.Secondary() < sk.SecondaryCost {
		return ErrNotEnoughSecondary
	}

	resolved, err := m.resolveTarget(c, sk, target)
	if err != nil {
		return err
	}

	// Commit: costs are deducted at initiation and never refunded, and
	// the recharge countdown starts now regardless of how the cast ends.
	c.SpendEnergy(sk.EnergyCost)
	c.SpendSecondary(sk.SecondaryCost)
	st.Recharge[slot] = sk.RechargeMs

	m.effects.ApplyWhen(sk.Effects, data.TriggerOnActivation, caster, resolved)

	slog.Debug("cast started",
		"caster", c.Name(),
		"skill", sk.Name,
		"slot", slot,
		"target", resolved,
		"activation_ms", sk.ActivationMs)

	if sk.Mechanic == data.MechanicInstant {
		if m.release != nil {
			m.release(caster, sk, resolved)
		}
		return nil
	}

	st.Skill = sk
	st.Slot = slot
	st.Target = resolved
	st.Phase = PhaseActivating
	st.ElapsedMs = 0
	st.Released = false
	return nil
}

// resolveTarget checks targeting mode, validity and cast range.
func (m *Manager) resolveTarget(c *model.Character, sk *data.Skill, target model.EntityID) (model.EntityID, error) {
	switch sk.Targeting {
	case data.TargetSelf:
		return c.ID(), nil

	case data.TargetGround:
		// Ground casts anchor on the chosen entity's position when one
		// is given, otherwise on the caster.
		if target == model.NoEntity {
			return c.ID(), nil
		}
	}

	tgt := m.world.Get(target)
	if tgt == nil || !tgt.IsAlive() {
		return model.NoEntity, ErrNoTarget
	}
	switch sk.Targeting {
	case data.TargetEnemy:
		if tgt.Team() == c.Team() {
			return model.NoEntity, ErrNoTarget
		}
	case data.TargetAlly:
		if tgt.Team() != c.Team() {
			return model.NoEntity, ErrNoTarget
		}
	}
	if sk.CastRange > 0 && !c.Location().WithinRange(tgt.Location(), sk.CastRange) {
		return model.NoEntity, ErrOutOfRange
	}
	return target, nil
}

// Cancel aborts an in-progress cast before its payload resolved. Spent
// resources are not restored and the slot recharge keeps counting.
func (m *Manager) Cancel(caster model.EntityID, reason CancelReason) bool {
	st, ok := m.states[caster]
	if !ok || st.Phase != PhaseActivating || st.Released {
		return false
	}
	slog.Debug("cast canceled",
		"caster", caster,
		"skill", st.Skill.Name,
		"reason", reason.String(),
		"elapsed_ms", st.ElapsedMs)
	st.Phase = PhaseIdle
	st.Skill = nil
	st.ElapsedMs = 0
	return true
}

// Tick advances every entity's recharge countdowns and active cast by
// deltaMs, resolving payloads whose release point is reached this tick.
// Iterates in world order for determinism.
func (m *Manager) Tick(deltaMs int32) {
	for _, c := range m.world.All() {
		st, ok := m.states[c.ID()]
		if !ok {
			continue
		}

		// Recharge countdowns are monotonically non-increasing; only
		// explicit cooldown-reduction effects shorten them further.
		for i := range st.Recharge {
			if st.Recharge[i] > 0 {
				st.Recharge[i] = max(st.Recharge[i]-deltaMs, 0)
			}
		}

		if !c.IsAlive() {
			st.Phase = PhaseIdle
			st.Skill = nil
			continue
		}

		switch st.Phase {
		case PhaseActivating:
			m.tickActivating(c, st, deltaMs)
		case PhaseAftercast:
			st.ElapsedMs += deltaMs
			if st.ElapsedMs >= st.Skill.AftercastMs {
				st.Phase = PhaseIdle
				st.Skill = nil
				st.ElapsedMs = 0
			}
		}
	}
}

func (m *Manager) tickActivating(c *model.Character, st *State, deltaMs int32) {
	sk := st.Skill

	// Interruption checks before the clock advances: movement, or loss
	// of a valid target, abort the cast with nothing resolved. A cast
	// whose payload already released can no longer be interrupted; it
	// only has its remaining animation time to run down.
	if !st.Released {
		if c.MovedThisTick() {
			m.Cancel(c.ID(), CancelMoved)
			return
		}
		if sk.Targeting == data.TargetEnemy || sk.Targeting == data.TargetAlly {
			tgt := m.world.Get(st.Target)
			if tgt == nil || !tgt.IsAlive() {
				m.Cancel(c.ID(), CancelTargetLost)
				return
			}
		}
	}

	st.ElapsedMs += deltaMs

	// Mechanics with a release point resolve at exactly half of the
	// activation duration; everything else at full completion.
	if sk.Mechanic.ReleaseAtMidpoint() && !st.Released && st.ElapsedMs >= sk.ActivationMs/2 {
		st.Released = true
		if m.release != nil {
			m.release(c.ID(), sk, st.Target)
		}
	}

	if st.ElapsedMs < sk.ActivationMs {
		return
	}

	if !sk.Mechanic.ReleaseAtMidpoint() && !st.Released {
		st.Released = true
		if m.release != nil {
			m.release(c.ID(), sk, st.Target)
		}
	}

	if sk.Mechanic.HasRecovery() {
		st.Phase = PhaseAftercast
		st.ElapsedMs = 0
	} else {
		st.Phase = PhaseIdle
		st.Skill = nil
		st.ElapsedMs = 0
	}
}

// ReduceRecharge shaves ms off all recharging slots of the entity. This
// is the one path that shortens a countdown out of band.
func (m *Manager) ReduceRecharge(id model.EntityID, ms int32) {
	st, ok := m.states[id]
	if !ok || ms <= 0 {
		return
	}
	for i := range st.Recharge {
		if st.Recharge[i] > 0 {
			st.Recharge[i] = max(st.Recharge[i]-ms, 0)
		}
	}
}

// Progress describes cast progress for snapshots.
type Progress struct {
	Casting   bool
	SkillName string
	Phase     string
	ElapsedMs int32
	TotalMs   int32
	Recharge  [model.MaxSkillSlots]int32
}

// ProgressOf returns a read-only view of the entity's casting state.
func (m *Manager) ProgressOf(id model.EntityID) Progress {
	st, ok := m.states[id]
	if !ok {
		return Progress{Phase: PhaseIdle.String()}
	}
	p := Progress{Phase: st.Phase.String(), Recharge: st.Recharge}
	if st.Phase == PhaseActivating && st.Skill != nil {
		p.Casting = true
		p.SkillName = st.Skill.Name
		p.ElapsedMs = st.ElapsedMs
		p.TotalMs = st.Skill.ActivationMs
	}
	if st.Phase == PhaseAftercast && st.Skill != nil {
		p.SkillName = st.Skill.Name
		p.ElapsedMs = st.ElapsedMs
		p.TotalMs = st.Skill.AftercastMs
	}
	return p
}
