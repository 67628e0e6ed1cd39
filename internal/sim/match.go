// Package sim runs matches: the fixed-step tick loop that drives the
// casting, effect and behavior engines in a fixed order, plus batch
// execution of many seeded matches.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/kjard-games/snow-sub006/internal/data"
	"github.com/kjard-games/snow-sub006/internal/game/behavior"
	"github.com/kjard-games/snow-sub006/internal/game/cast"
	"github.com/kjard-games/snow-sub006/internal/game/combat"
	"github.com/kjard-games/snow-sub006/internal/game/effect"
	"github.com/kjard-games/snow-sub006/internal/model"
	"github.com/kjard-games/snow-sub006/internal/replay"
	"github.com/kjard-games/snow-sub006/internal/terrain"
	"github.com/kjard-games/snow-sub006/internal/world"
)

// energyRegenPerSecond is the passive energy recovery of every living
// character.
const energyRegenPerSecond = 1

// Result summarizes a finished match.
type Result struct {
	Seed   uint64
	Winner model.Team // TeamNone = draw by tick limit
	Ticks  int32
	Digest string
}

// Match is one self-contained simulation. All engines share the world
// and the single seeded RNG stream; everything runs on the caller's
// goroutine.
type Match struct {
	tickMs   int32
	maxTicks int32
	seed     uint64

	world     *world.World
	field     *terrain.FlatField
	effects   *effect.Engine
	behaviors *behavior.Engine
	casts     *cast.Manager
	resolver  *combat.Resolver
	rng       *rand.Rand
	journal   *replay.Journal

	tick       int32
	regenAccum int32
	pending    []replay.Intent
	autoQueue  []autoCast

	done   bool
	winner model.Team
}

type autoCast struct {
	actor  model.EntityID
	slot   int
	target model.EntityID
}

// NewMatch wires a fresh match. The seed fixes every random draw, so
// the same seed and intent stream reproduce the same match.
func NewMatch(seed uint64, tickMs, maxTicks int32) *Match {
	w := world.New()
	field := terrain.NewFlatField(terrain.KindSnow)
	effects := effect.NewEngine(w, field)
	behaviors := behavior.NewEngine(w, effects)
	rng := rand.New(rand.NewPCG(seed, seed))
	resolver := combat.NewResolver(w, effects, behaviors, rng)

	casts := cast.NewManager(w, effects)
	casts.SetReleaseHook(resolver.ResolveSkill)

	effects.SetDamageHook(resolver.DealEffectDamage)
	effects.SetRechargeHook(casts.ReduceRecharge)
	behaviors.SetDamageHook(resolver.DealBehaviorDamage)
	behaviors.SetRedirectHook(resolver.RedirectDamage)

	m := &Match{
		tickMs:    tickMs,
		maxTicks:  maxTicks,
		seed:      seed,
		world:     w,
		field:     field,
		effects:   effects,
		behaviors: behaviors,
		casts:     casts,
		resolver:  resolver,
		rng:       rng,
		journal:   replay.New(seed),
	}
	behaviors.SetSummonHook(m.spawnSummon)
	return m
}

// World exposes the entity registry (snapshots, tests).
func (m *Match) World() *world.World { return m.world }

// Effects exposes the effect engine (snapshots, tests).
func (m *Match) Effects() *effect.Engine { return m.effects }

// Behaviors exposes the behavior engine (tests).
func (m *Match) Behaviors() *behavior.Engine { return m.behaviors }

// Casts exposes the cast manager (snapshots, tests).
func (m *Match) Casts() *cast.Manager { return m.casts }

// Resolver exposes the combat resolver (hit observers).
func (m *Match) Resolver() *combat.Resolver { return m.resolver }

// Journal exposes the replay journal.
func (m *Match) Journal() *replay.Journal { return m.journal }

// Tick returns the current tick number.
func (m *Match) Tick() int32 { return m.tick }

// Done reports whether the match ended.
func (m *Match) Done() bool { return m.done }

// Winner returns the winning team once done; TeamNone for a draw.
func (m *Match) Winner() model.Team { return m.winner }

// AddCharacter registers a combatant before or during a match. The
// loadout is validated against the content tables.
func (m *Match) AddCharacter(name string, team model.Team, school model.School, maxWarmth, maxEnergy, maxSecondary, armor, avoidance int32, loadout []int32, at model.Location) (model.EntityID, error) {
	if err := data.ValidateLoadout(loadout); err != nil {
		return model.NoEntity, fmt.Errorf("loadout of %s: %w", name, err)
	}
	c := model.NewCharacter(m.world.NextID(), name, team, school, maxWarmth, maxEnergy, maxSecondary)
	c.SetBaseArmor(armor)
	c.SetBaseAvoidance(avoidance)
	c.SetLocation(at)
	c.SetLoadout(loadout)
	m.world.Add(c)
	return c.ID(), nil
}

func (m *Match) spawnSummon(owner model.EntityID, spec *data.SummonSpec) {
	o := m.world.Get(owner)
	if o == nil {
		return
	}
	c := model.NewSummon(m.world.NextID(), spec.Name, o.Team(), spec.Warmth, spec.Armor, spec.DurationMs)
	loc := o.Location()
	loc.X += data.AdjacentRange / 2
	c.SetLocation(loc)
	m.world.Add(c)
	slog.Debug("summon spawned", "name", spec.Name, "owner", o.Name())
}

// QueueMove queues a movement intent for the next Step.
func (m *Match) QueueMove(actor model.EntityID, to model.Location) {
	m.enqueue(replay.Intent{
		Tick: m.tick, Actor: actor, Kind: replay.IntentMove, X: to.X, Y: to.Y,
	})
}

// QueueCast queues a cast intent for the next Step.
func (m *Match) QueueCast(actor model.EntityID, slot int, target model.EntityID) {
	m.enqueue(replay.Intent{
		Tick: m.tick, Actor: actor, Kind: replay.IntentCast, Slot: int32(slot), Target: target,
	})
}

// QueueCancel queues an explicit cast-cancel intent for the next Step.
func (m *Match) QueueCancel(actor model.EntityID) {
	m.enqueue(replay.Intent{Tick: m.tick, Actor: actor, Kind: replay.IntentCancel})
}

func (m *Match) enqueue(it replay.Intent) {
	m.journal.RecordIntent(it)
	m.pending = append(m.pending, it)
}

// Step advances the match by one tick. Phase order is fixed: intents,
// movement, cast timers and releases, periodic effects and expiry,
// behavior timers, auto-cast scouting, housekeeping. Changing this
// order changes match outcomes, so it never varies.
func (m *Match) Step() {
	if m.done {
		return
	}

	m.applyIntents()
	m.advanceMovement()
	m.casts.Tick(m.tickMs)
	m.effects.Tick(m.tickMs)
	m.behaviors.Tick(m.tickMs)
	m.scoutAutoCasts()
	m.housekeeping()

	for _, c := range m.world.All() {
		loc := c.Location()
		m.journal.RecordState(m.tick, c.ID(), c.Warmth(), c.Energy(), loc.X, loc.Y, c.IsAlive())
	}

	m.tick++
	m.checkEnd()
}

// Run steps the match until it ends and returns the result.
func (m *Match) Run() Result {
	for !m.done {
		m.Step()
	}
	return Result{Seed: m.seed, Winner: m.winner, Ticks: m.tick, Digest: m.journal.Digest()}
}

func (m *Match) applyIntents() {
	// Auto-casts queued at the end of the previous tick fire before
	// player intents of this tick.
	for _, ac := range m.autoQueue {
		if err := m.casts.Request(ac.actor, ac.slot, ac.target); err != nil {
			slog.Debug("auto-cast rejected", "actor", ac.actor, "slot", ac.slot, "err", err)
		}
	}
	m.autoQueue = m.autoQueue[:0]

	for _, it := range m.pending {
		switch it.Kind {
		case replay.IntentMove:
			if c := m.world.Get(it.Actor); c != nil && c.IsAlive() {
				c.MoveTo(model.Location{X: it.X, Y: it.Y})
			}
		case replay.IntentCast:
			if err := m.casts.Request(it.Actor, int(it.Slot), it.Target); err != nil {
				slog.Debug("cast rejected", "actor", it.Actor, "slot", it.Slot, "err", err)
			}
		case replay.IntentCancel:
			m.casts.Cancel(it.Actor, cast.CancelExplicit)
		}
	}
	m.pending = m.pending[:0]
}

func (m *Match) advanceMovement() {
	for _, c := range m.world.Alive() {
		if !c.IsMoving() {
			continue
		}
		speed := m.effects.StatValue(c.ID(), data.StatSpeed, c.Speed())
		speed *= m.field.SpeedMultiplierAt(c.Location())
		if c.AdvanceMovement(speed * float64(m.tickMs) / 1000) {
			m.casts.Cancel(c.ID(), cast.CancelMoved)
		}
	}
}

// scoutAutoCasts checks each idle character's auto-flagged skills and
// queues a cast request for the next tick when a trigger condition
// holds. Target choice is deterministic: first valid candidate in
// world order.
func (m *Match) scoutAutoCasts() {
	for _, c := range m.world.Alive() {
		st := m.casts.StateOf(c.ID())
		if st.Phase != cast.PhaseIdle {
			continue
		}
		for slot := 0; slot < model.MaxSkillSlots; slot++ {
			sk := data.GetSkill(data.SkillID(c.SkillAt(slot)))
			if sk == nil || sk.Auto == nil || st.Recharge[slot] > 0 {
				continue
			}
			if c.Energy() < sk.EnergyCost || c.Secondary() < sk.SecondaryCost {
				continue
			}
			if tgt, ok := m.autoTarget(c, sk); ok {
				m.autoQueue = append(m.autoQueue, autoCast{actor: c.ID(), slot: slot, target: tgt})
				break // one queued skill per character per tick
			}
		}
	}
}

func (m *Match) autoTarget(c *model.Character, sk *data.Skill) (model.EntityID, bool) {
	holds := func(target model.EntityID) bool {
		return m.effects.EvalPredicate(sk.Auto.If, c.ID(), target)
	}
	inRange := func(other *model.Character) bool {
		return sk.CastRange <= 0 || c.Location().WithinRange(other.Location(), sk.CastRange)
	}

	switch sk.Auto.Target {
	case data.TargetSelf:
		if holds(c.ID()) {
			return c.ID(), true
		}

	case data.TargetAlly:
		if holds(c.ID()) {
			return c.ID(), true
		}
		for _, ally := range m.world.AlliesNear(c.ID(), data.NearbyRange) {
			if inRange(ally) && holds(ally.ID()) {
				return ally.ID(), true
			}
		}

	case data.TargetEnemy:
		for _, enemy := range m.world.EnemiesNear(c.ID(), data.NearbyRange) {
			if inRange(enemy) && holds(enemy.ID()) {
				return enemy.ID(), true
			}
		}
	}
	return model.NoEntity, false
}

func (m *Match) housekeeping() {
	// Summon lifetimes.
	for _, c := range m.world.All() {
		if c.IsAlive() && c.TickSummon(m.tickMs) {
			slog.Debug("summon expired", "name", c.Name())
			c.Kill()
			m.effects.DropAll(c.ID())
			m.behaviors.DropOwned(c.ID())
			m.world.Remove(c.ID())
		}
	}

	// Passive energy regeneration, once per simulated second.
	m.regenAccum += m.tickMs
	for m.regenAccum >= 1000 {
		m.regenAccum -= 1000
		for _, c := range m.world.Alive() {
			c.RestoreEnergy(energyRegenPerSecond)
		}
	}

	for _, c := range m.world.All() {
		c.ClearMovedFlag()
	}
}

func (m *Match) checkEnd() {
	aurora := m.world.TeamAlive(model.TeamAurora)
	boreal := m.world.TeamAlive(model.TeamBoreal)
	switch {
	case aurora == 0 && boreal == 0:
		m.done, m.winner = true, model.TeamNone
	case aurora == 0:
		m.done, m.winner = true, model.TeamBoreal
	case boreal == 0:
		m.done, m.winner = true, model.TeamAurora
	case m.tick >= m.maxTicks:
		m.done, m.winner = true, model.TeamNone
	}
	if m.done {
		slog.Info("match finished",
			"seed", m.seed,
			"winner", m.winner,
			"ticks", m.tick)
	}
}
