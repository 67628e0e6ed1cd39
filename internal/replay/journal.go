// Package replay records the inputs and state trace of a match so a
// rerun from the same seed and intents can be verified bit for bit.
package replay

import (
	"encoding/binary"
	"encoding/hex"
	"hash"

	"golang.org/x/crypto/blake2b"

	"github.com/kjard-games/snow-sub006/internal/model"
)

// IntentKind is the player-command discriminator.
type IntentKind int8

const (
	IntentMove IntentKind = iota
	IntentCast
	IntentCancel
)

// Intent is one recorded player command.
type Intent struct {
	Tick   int32
	Actor  model.EntityID
	Kind   IntentKind
	Slot   int32
	Target model.EntityID
	X, Y   int32
}

// Journal accumulates a match's seed, intent stream and a running
// digest of the observable state after every tick. Two journals with
// equal digests ran the same match.
type Journal struct {
	seed    uint64
	intents []Intent
	h       hash.Hash
	buf     [8]byte
}

// New creates a journal for a match seeded with seed.
func New(seed uint64) *Journal {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only fails on oversized keys; nil never does.
		panic(err)
	}
	j := &Journal{seed: seed, h: h}
	j.writeUint64(seed)
	return j
}

func (j *Journal) writeUint64(v uint64) {
	binary.LittleEndian.PutUint64(j.buf[:], v)
	j.h.Write(j.buf[:8])
}

func (j *Journal) writeInt32(v int32) {
	binary.LittleEndian.PutUint32(j.buf[:4], uint32(v))
	j.h.Write(j.buf[:4])
}

// Seed returns the match seed.
func (j *Journal) Seed() uint64 { return j.seed }

// Intents returns the recorded intent stream in arrival order.
func (j *Journal) Intents() []Intent { return j.intents }

// RecordIntent folds a player command into the journal.
func (j *Journal) RecordIntent(it Intent) {
	j.intents = append(j.intents, it)
	j.writeInt32(it.Tick)
	j.writeInt32(int32(it.Actor))
	j.writeInt32(int32(it.Kind))
	j.writeInt32(it.Slot)
	j.writeInt32(int32(it.Target))
	j.writeInt32(it.X)
	j.writeInt32(it.Y)
}

// RecordState folds one entity's observable state after a tick into the
// digest. The sim calls it for every entity in world order, so the
// digest covers the full state trace.
func (j *Journal) RecordState(tick int32, id model.EntityID, warmth, energy, x, y int32, alive bool) {
	j.writeInt32(tick)
	j.writeInt32(int32(id))
	j.writeInt32(warmth)
	j.writeInt32(energy)
	j.writeInt32(x)
	j.writeInt32(y)
	if alive {
		j.writeInt32(1)
	} else {
		j.writeInt32(0)
	}
}

// Digest returns the hex digest of everything recorded so far.
func (j *Journal) Digest() string {
	return hex.EncodeToString(j.h.Sum(nil))
}

// Matches reports whether two journals describe the same match run.
func Matches(a, b *Journal) bool {
	return a != nil && b != nil && a.Digest() == b.Digest()
}
