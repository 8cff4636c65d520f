/*
Package mpu emulates the security subsystem of the IGS PGM2 motherboard:
the R5F21256SN protection microcontroller ("MPU" to the games) reached
through a bank of shared command registers, the dual-bank RAM it exchanges
data with, the IC card slots behind it, and the program ROM decryption
registers internal to the IGS036 main CPU.

The main CPU talks to all of it through memory mapped registers, so the
whole subsystem hangs off the Read/Write dispatch entry points of a System.
Command completion is asynchronous: issuing or acknowledging a command arms
a completion timer and the result only becomes meaningful to the main CPU
once the completion interrupt is observed. Time is advanced cooperatively
by the caller, there are no goroutines.
*/
package mpu

import (
	"log"
	"math/bits"

	"github.com/bodgit/pgm2/igs"
	"github.com/bodgit/pgm2/memcard"
)

const (
	shareRAMSize  = 0x100
	shareBankSize = shareRAMSize / 2
	sramSize      = 0x10000

	// one time unit is a millisecond of emulated time
	unitsPerSecond = 1000

	spriteKeyMask = 0x90055555
)

// Interrupt numbers delivered to the interrupt controller
const (
	MCUIRQ    = 0x46
	VBlankIRQ = 0x47
)

// Slots is the number of IC card slots on the motherboard, one per player
const Slots = 4

// System is one instance of the security subsystem. It owns all of the
// register state; multiple independent instances can coexist
type System struct {
	program      []byte // borrowed, decrypted in place
	predecrypted bool

	encTable     [igs.TableSize]byte
	hasDecrypted bool

	spriteKey     uint32
	realSpriteKey uint32

	mcuRegs          [8]uint32
	result0, result1 uint32
	lastCmd          uint8

	shareRAM  [shareRAMSize]uint8
	shareBank uint16

	cards [Slots]memcard.Card

	clock   int64
	pending *completion

	sram [sramSize]uint8

	irq    func(int)
	logger *log.Logger
}

// New returns a System for the given title. The program ROM buffer is
// borrowed and decrypted in place when the main CPU writes the decrypt
// trigger; it must stay valid for the lifetime of the System. irq receives
// the interrupt numbers raised by the subsystem and may be nil, as may the
// logger used for protocol diagnostics.
func New(title *igs.Title, program []byte, irq func(int), logger *log.Logger) *System {
	s := &System{
		program: program,
		irq:     irq,
		logger:  logger,
	}

	if title != nil {
		s.predecrypted = title.Predecrypted
	}

	return s
}

// Reset models a hardware reset: the sprite key, bank selector and any
// in-flight command are cleared but battery backed and one-shot state
// survives
func (s *System) Reset() {
	s.spriteKey = 0
	s.realSpriteKey = 0
	s.lastCmd = 0
	s.shareBank = 0
	s.pending = nil
}

// InsertCard places a card in the given slot
func (s *System) InsertCard(slot int, c memcard.Card) {
	s.cards[slot&3] = c
}

// RemoveCard empties the given slot
func (s *System) RemoveCard(slot int) {
	s.cards[slot&3] = nil
}

// card returns the card in the slot if one is present
func (s *System) card(slot uint8) memcard.Card {
	c := s.cards[slot&3]
	if c == nil || !c.Present() {
		return nil
	}
	return c
}

// RealSpriteKey returns the derived sprite decode key consumed by the
// video hardware
func (s *System) RealSpriteKey() uint32 {
	return s.realSpriteKey
}

// writeSpriteKey recomputes the real key on every raw key write unless the
// sprite data was already decrypted at load time, in which case the live
// key path is a no-op
func (s *System) writeSpriteKey(data uint32) {
	s.spriteKey = data

	if !s.predecrypted {
		s.realSpriteKey = bits.Reverse32(s.spriteKey ^ spriteKeyMask)
	}
}

// triggerDecrypt runs the one-shot program ROM decryption from the
// uploaded cipher table. Further trigger writes are no-ops; the guard is
// part of the saved state so a restored session does not decrypt twice
func (s *System) triggerDecrypt() {
	if s.hasDecrypted {
		return
	}

	igs.ProgramDecrypt(s.program, &s.encTable)
	s.hasDecrypted = true
}

// cpuBank is the share RAM bank addressed by the main CPU; mcuBank is the
// opposite bank addressed by the MPU. The two never alias, which is the
// only synchronization the exchange has
func (s *System) cpuBank() int {
	return int(s.shareBank&1) * shareBankSize
}

func (s *System) mcuBank() int {
	return int(^s.shareBank&1) * shareBankSize
}

// SRAM exposes the battery backed RAM so the frontend can persist it
// across power cycles
func (s *System) SRAM() []byte {
	return s.sram[:]
}
