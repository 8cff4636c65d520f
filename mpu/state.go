package mpu

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/bodgit/pgm2/igs"
)

var errInvalidState = errors.New("mpu: invalid state")

var stateSignature = [4]uint8{'P', 'G', '2', 1}

// stateFields enumerates every field that has to survive a save/restore
// cycle; omitting one here breaks mid-session state capture. The battery
// backed SRAM is persisted separately by the frontend
type stateFields struct {
	Signature       [4]uint8
	EncryptionTable [igs.TableSize]uint8
	HasDecrypted    uint8
	SpriteKey       uint32
	RealSpriteKey   uint32
	MCURegs         [8]uint32
	Result0         uint32
	Result1         uint32
	LastCommand     uint8
	ShareRAM        [shareRAMSize]uint8
	ShareBank       uint16
	Clock           int64
	PendingDue      int64 // negative when no completion is armed
}

// MarshalBinary encodes the subsystem state into binary form and returns
// the result
func (s *System) MarshalBinary() ([]byte, error) {
	f := stateFields{
		Signature:       stateSignature,
		EncryptionTable: s.encTable,
		SpriteKey:       s.spriteKey,
		RealSpriteKey:   s.realSpriteKey,
		MCURegs:         s.mcuRegs,
		Result0:         s.result0,
		Result1:         s.result1,
		LastCommand:     s.lastCmd,
		ShareRAM:        s.shareRAM,
		ShareBank:       s.shareBank,
		Clock:           s.clock,
		PendingDue:      -1,
	}

	if s.hasDecrypted {
		f.HasDecrypted = 1
	}
	if s.pending != nil {
		f.PendingDue = s.pending.due
	}

	w := new(bytes.Buffer)
	// Writes to bytes.Buffer never error
	_ = binary.Write(w, binary.LittleEndian, &f)

	return w.Bytes(), nil
}

// UnmarshalBinary decodes the subsystem state from binary form
func (s *System) UnmarshalBinary(b []byte) error {
	var f stateFields
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &f); err != nil {
		return err
	}

	if f.Signature != stateSignature {
		return errInvalidState
	}

	s.encTable = f.EncryptionTable
	s.hasDecrypted = f.HasDecrypted != 0
	s.spriteKey = f.SpriteKey
	s.realSpriteKey = f.RealSpriteKey
	s.mcuRegs = f.MCURegs
	s.result0 = f.Result0
	s.result1 = f.Result1
	s.lastCmd = f.LastCommand
	s.shareRAM = f.ShareRAM
	s.shareBank = f.ShareBank
	s.clock = f.Clock

	s.pending = nil
	if f.PendingDue >= 0 {
		s.pending = &completion{due: f.PendingDue}
	}

	return nil
}
