package cast

import (
	"errors"
	"os"
	"testing"

	"github.com/kjard-games/snow-sub006/internal/data"
	"github.com/kjard-games/snow-sub006/internal/game/effect"
	"github.com/kjard-games/snow-sub006/internal/model"
	"github.com/kjard-games/snow-sub006/internal/terrain"
	"github.com/kjard-games/snow-sub006/internal/world"
)

func TestMain(m *testing.M) {
	if err := data.Load(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fixture struct {
	w *world.World
	m *Manager

	caster *model.Character
	enemy  *model.Character

	releases []model.EntityID // targets, in release order
}

func newFixture() *fixture {
	w := world.New()
	effects := effect.NewEngine(w, terrain.NewFlatField(terrain.KindSnow))
	m := NewManager(w, effects)

	f := &fixture{w: w, m: m}
	m.SetReleaseHook(func(caster model.EntityID, sk *data.Skill, target model.EntityID) {
		f.releases = append(f.releases, target)
	})

	f.caster = model.NewCharacter(w.NextID(), "caster", model.TeamAurora, model.SchoolChorus, 100, 50, 30)
	f.caster.SetLoadout([]int32{1, 2, 9}) // Snowball Toss, Ice Lance, Sharp Icicle
	w.Add(f.caster)

	f.enemy = model.NewCharacter(w.NextID(), "enemy", model.TeamBoreal, model.SchoolVanguard, 100, 50, 30)
	f.enemy.SetLocation(model.Location{X: 100})
	w.Add(f.enemy)
	return f
}

func TestRequestValidation(t *testing.T) {
	f := newFixture()

	if err := f.m.Request(f.caster.ID(), 9, f.enemy.ID()); !errors.Is(err, ErrUnknownSlot) {
		t.Errorf("bad slot: %v", err)
	}
	if err := f.m.Request(f.caster.ID(), 5, f.enemy.ID()); !errors.Is(err, ErrEmptySlot) {
		t.Errorf("empty slot: %v", err)
	}

	// Enemy skill aimed at a teammate.
	ally := model.NewCharacter(f.w.NextID(), "ally", model.TeamAurora, model.SchoolPeddler, 100, 50, 30)
	f.w.Add(ally)
	if err := f.m.Request(f.caster.ID(), 0, ally.ID()); !errors.Is(err, ErrNoTarget) {
		t.Errorf("friendly target for enemy skill: %v", err)
	}

	// Out of range: Snowball Toss reaches 300.
	f.enemy.SetLocation(model.Location{X: 400})
	if err := f.m.Request(f.caster.ID(), 0, f.enemy.ID()); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("out of range: %v", err)
	}
	f.enemy.SetLocation(model.Location{X: 100})

	f.caster.DrainEnergy(50)
	if err := f.m.Request(f.caster.ID(), 0, f.enemy.ID()); !errors.Is(err, ErrNotEnoughEnergy) {
		t.Errorf("no energy: %v", err)
	}

	f.caster.Kill()
	if err := f.m.Request(f.caster.ID(), 0, f.enemy.ID()); !errors.Is(err, ErrDead) {
		t.Errorf("dead caster: %v", err)
	}
}

func TestRejectedRequestLeavesCasterUntouched(t *testing.T) {
	f := newFixture()
	f.enemy.SetLocation(model.Location{X: 900})

	if err := f.m.Request(f.caster.ID(), 0, f.enemy.ID()); err == nil {
		t.Fatal("expected rejection")
	}
	if f.caster.Energy() != 50 {
		t.Error("energy spent on rejected request")
	}
	if f.m.StateOf(f.caster.ID()).Recharge[0] != 0 {
		t.Error("recharge started on rejected request")
	}
}

func TestInstantReleasesDuringRequest(t *testing.T) {
	f := newFixture()

	if err := f.m.Request(f.caster.ID(), 2, f.enemy.ID()); err != nil {
		t.Fatal(err)
	}
	if len(f.releases) != 1 || f.releases[0] != f.enemy.ID() {
		t.Fatalf("releases = %v", f.releases)
	}
	if f.m.StateOf(f.caster.ID()).Phase != PhaseIdle {
		t.Error("instant cast left a phase behind")
	}
}

func TestCostAndRechargeCommitAtInitiation(t *testing.T) {
	f := newFixture()

	// Snowball Toss: 5 energy, 2000ms recharge, 1000ms activation.
	if err := f.m.Request(f.caster.ID(), 0, f.enemy.ID()); err != nil {
		t.Fatal(err)
	}
	if f.caster.Energy() != 45 {
		t.Errorf("energy = %d, want 45", f.caster.Energy())
	}
	st := f.m.StateOf(f.caster.ID())
	if st.Recharge[0] != 2000 {
		t.Errorf("recharge = %d, want 2000", st.Recharge[0])
	}

	// Canceling refunds nothing and leaves the recharge counting.
	if !f.m.Cancel(f.caster.ID(), CancelExplicit) {
		t.Fatal("cancel failed")
	}
	if f.caster.Energy() != 45 {
		t.Error("cancel refunded energy")
	}
	f.m.Tick(50)
	if st.Recharge[0] != 1950 {
		t.Errorf("recharge = %d, want 1950", st.Recharge[0])
	}
	if len(f.releases) != 0 {
		t.Error("canceled cast released")
	}

	// The slot stays locked until the recharge completes.
	if err := f.m.Request(f.caster.ID(), 0, f.enemy.ID()); !errors.Is(err, ErrRecharging) {
		t.Errorf("recharging slot: %v", err)
	}
}

func TestLobReleasesAtActivationMidpoint(t *testing.T) {
	f := newFixture()

	// Snowball Toss lobs: 1000ms activation, release at 500ms.
	if err := f.m.Request(f.caster.ID(), 0, f.enemy.ID()); err != nil {
		t.Fatal(err)
	}

	f.m.Tick(450)
	if len(f.releases) != 0 {
		t.Fatal("released before midpoint")
	}
	f.m.Tick(100) // elapsed 550
	if len(f.releases) != 1 {
		t.Fatal("not released at midpoint")
	}

	// Still activating; completion hands over to aftercast without a
	// second release.
	st := f.m.StateOf(f.caster.ID())
	if st.Phase != PhaseActivating {
		t.Errorf("phase = %v, want activating", st.Phase)
	}
	f.m.Tick(450) // elapsed 1000
	if st.Phase != PhaseAftercast {
		t.Errorf("phase = %v, want aftercast", st.Phase)
	}
	if len(f.releases) != 1 {
		t.Error("released twice")
	}
}

func TestStrikeReleasesAtCompletion(t *testing.T) {
	f := newFixture()

	// Ice Lance strikes: 800ms activation, 400ms aftercast.
	if err := f.m.Request(f.caster.ID(), 1, f.enemy.ID()); err != nil {
		t.Fatal(err)
	}

	f.m.Tick(750)
	if len(f.releases) != 0 {
		t.Fatal("released before completion")
	}
	f.m.Tick(50)
	if len(f.releases) != 1 {
		t.Fatal("not released at completion")
	}

	st := f.m.StateOf(f.caster.ID())
	if st.Phase != PhaseAftercast {
		t.Fatalf("phase = %v, want aftercast", st.Phase)
	}
	if err := f.m.Request(f.caster.ID(), 2, f.enemy.ID()); !errors.Is(err, ErrInAftercast) {
		t.Errorf("request during aftercast: %v", err)
	}

	f.m.Tick(400)
	if st.Phase != PhaseIdle {
		t.Errorf("phase = %v, want idle after recovery", st.Phase)
	}
}

func TestMovementCancelsActivation(t *testing.T) {
	f := newFixture()

	if err := f.m.Request(f.caster.ID(), 0, f.enemy.ID()); err != nil {
		t.Fatal(err)
	}
	f.caster.MoveTo(model.Location{X: 10})
	f.caster.AdvanceMovement(5)

	f.m.Tick(50)
	if f.m.StateOf(f.caster.ID()).Phase != PhaseIdle {
		t.Error("cast survived movement")
	}
	if len(f.releases) != 0 {
		t.Error("canceled cast released")
	}
}

func TestTargetLossCancelsActivation(t *testing.T) {
	f := newFixture()

	if err := f.m.Request(f.caster.ID(), 0, f.enemy.ID()); err != nil {
		t.Fatal(err)
	}
	f.enemy.Kill()

	f.m.Tick(600)
	if f.m.StateOf(f.caster.ID()).Phase != PhaseIdle {
		t.Error("cast survived target loss")
	}
	if len(f.releases) != 0 {
		t.Error("released against a dead target")
	}
}

func TestReleasedCastFinishesWhenTargetDies(t *testing.T) {
	f := newFixture()

	// Snowball Toss releases at 500ms into its 1000ms activation. If
	// the released payload kills the target, the remaining animation
	// must still run down into aftercast and back to idle instead of
	// pinning the caster in the activating phase.
	if err := f.m.Request(f.caster.ID(), 0, f.enemy.ID()); err != nil {
		t.Fatal(err)
	}
	f.m.Tick(500)
	if len(f.releases) != 1 {
		t.Fatal("not released at midpoint")
	}
	f.enemy.Kill()

	st := f.m.StateOf(f.caster.ID())
	f.m.Tick(500) // elapsed 1000, activation complete
	if st.Phase != PhaseAftercast {
		t.Fatalf("phase = %v, want aftercast", st.Phase)
	}
	f.m.Tick(500)
	if st.Phase != PhaseIdle {
		t.Fatalf("phase = %v, want idle", st.Phase)
	}

	// The caster is free to cast again.
	next := model.NewCharacter(f.w.NextID(), "next", model.TeamBoreal, model.SchoolPeddler, 100, 50, 30)
	next.SetLocation(model.Location{X: 100})
	f.w.Add(next)
	if err := f.m.Request(f.caster.ID(), 1, next.ID()); err != nil {
		t.Errorf("follow-up cast rejected: %v", err)
	}
}

func TestReleasedCastFinishesDespiteMovement(t *testing.T) {
	f := newFixture()

	if err := f.m.Request(f.caster.ID(), 0, f.enemy.ID()); err != nil {
		t.Fatal(err)
	}
	f.m.Tick(500)
	if len(f.releases) != 1 {
		t.Fatal("not released at midpoint")
	}

	f.caster.MoveTo(model.Location{X: -50})
	f.caster.AdvanceMovement(5)

	st := f.m.StateOf(f.caster.ID())
	f.m.Tick(500)
	if st.Phase != PhaseAftercast {
		t.Errorf("phase = %v, want aftercast", st.Phase)
	}
	if len(f.releases) != 1 {
		t.Error("released twice")
	}
}

func TestReduceRechargeShortensAllSlots(t *testing.T) {
	f := newFixture()

	st := f.m.StateOf(f.caster.ID())
	st.Recharge[0] = 2000
	st.Recharge[1] = 500

	f.m.ReduceRecharge(f.caster.ID(), 1000)
	if st.Recharge[0] != 1000 {
		t.Errorf("slot 0 = %d, want 1000", st.Recharge[0])
	}
	if st.Recharge[1] != 0 {
		t.Errorf("slot 1 = %d, want clamp at 0", st.Recharge[1])
	}
}
