package mpu

import (
	"math/bits"
	"testing"

	"github.com/bodgit/pgm2/igs"
	"github.com/stretchr/testify/assert"
)

func TestSpriteKey(t *testing.T) {
	s, _ := testSystem()

	for _, key := range []uint32{0, 1, 0xdeadbeef, 0xffffffff} {
		s.Write32(spriteKeyAddr, key)
		assert.Equal(t, bits.Reverse32(key^spriteKeyMask), s.RealSpriteKey())
	}
}

func TestSpriteKeyPredecrypted(t *testing.T) {
	s := New(igs.Titles["kov3"], nil, nil, nil)

	// titles with sprite data decrypted at load time never re-key
	s.Write32(spriteKeyAddr, 0xdeadbeef)
	assert.Equal(t, uint32(0), s.RealSpriteKey())
}

func TestTriggerDecrypt(t *testing.T) {
	program := make([]byte, 0x100)
	for i := range program {
		program[i] = byte(i * 7)
	}

	s := New(igs.Titles["orleg2"], program, nil, nil)

	// the main CPU uploads the cipher table a byte at a time before
	// writing the trigger
	var table [igs.TableSize]byte
	for i := 0; i < igs.TableSize; i++ {
		table[i] = byte(i ^ 0xa5)
		s.Write8(encTableBase+uint32(i), table[i])
	}

	expected := make([]byte, len(program))
	copy(expected, program)
	igs.ProgramDecrypt(expected, &table)

	s.Write32(decryptTriggerAddr, 1)
	assert.Equal(t, expected, program)

	// a second trigger write is a no-op
	s.Write32(decryptTriggerAddr, 1)
	assert.Equal(t, expected, program)
}

func TestEncryptionTableWindow(t *testing.T) {
	s, _ := testSystem()

	s.Write8(encTableBase+0x12, 0x34)
	assert.Equal(t, uint8(0x34), s.Read8(encTableBase+0x12))
	assert.Equal(t, uint8(0), s.Read8(encTableBase+0x13))
}

func TestShareBankAntisymmetry(t *testing.T) {
	s, _ := testSystem()

	// bank 0: CPU writes land in the low half, the MPU fill lands in the
	// high half
	s.Write8(shareRAMBase+5<<1, 0x11)
	s.issueCommand(0x220200e1)
	assert.Equal(t, uint8(0x11), s.shareRAM[5])
	assert.Equal(t, uint8(0x22), s.shareRAM[shareBankSize+5])

	// flipping the selector swaps both sides; the two agents never alias
	s.Write16(shareBankAddr, 1)
	assert.Equal(t, uint8(0x22), s.Read8(shareRAMBase+5<<1))

	s.Write8(shareRAMBase+5<<1, 0x33)
	s.issueCommand(0x440200e1)
	assert.Equal(t, uint8(0x33), s.shareRAM[shareBankSize+5])
	assert.Equal(t, uint8(0x44), s.shareRAM[5])

	// odd bus addresses are not decoded
	assert.Equal(t, uint8(0), s.Read8(shareRAMBase+5<<1+1))
}

func TestDispatcherInertAddresses(t *testing.T) {
	s, _ := testSystem()

	// undocumented peripheral registers must not fault
	s.Write32(0x30120000, 0xffffffff)
	assert.Equal(t, uint32(0), s.Read32(0x30120000))
	s.Write8(0x03900000, 0xff)
	assert.Equal(t, uint8(0), s.Read8(0x03900000))
}

func TestStartupAndRTC(t *testing.T) {
	s, _ := testSystem()

	assert.Equal(t, uint32(startupStatus), s.Read32(startupAddr))

	assert.Equal(t, uint32(0), s.Read32(rtcAddr))
	s.Advance(2500)
	assert.Equal(t, uint32(2), s.Read32(rtcAddr))
}

func TestSRAM(t *testing.T) {
	s, _ := testSystem()

	s.Write8(sramBase+0x1234, 0xa5)
	assert.Equal(t, uint8(0xa5), s.Read8(sramBase+0x1234))
	assert.Equal(t, uint8(0xa5), s.SRAM()[0x1234])
}

func TestSpinUntilInterrupt(t *testing.T) {
	s, irqs := testSystem()

	// with nothing pending this is a no-op
	s.SpinUntilInterrupt()
	assert.Empty(t, *irqs)
	assert.Equal(t, int64(0), s.Now())

	s.issueCommand(0x000000e0)
	s.SpinUntilInterrupt()
	assert.Equal(t, []int{MCUIRQ}, *irqs)
	assert.Equal(t, int64(30), s.Now())
}

func TestVBlank(t *testing.T) {
	s, irqs := testSystem()

	s.VBlank()
	assert.Equal(t, []int{VBlankIRQ}, *irqs)
}

func TestReset(t *testing.T) {
	s, _ := testSystem()

	s.Write32(spriteKeyAddr, 0x12345678)
	s.Write16(shareBankAddr, 1)
	s.issueCommand(0x000000c1)

	s.Reset()

	assert.Equal(t, uint32(0), s.RealSpriteKey())
	assert.Equal(t, uint16(0), s.shareBank)
	assert.Equal(t, uint8(0), s.lastCmd)
	assert.Nil(t, s.pending)
}
