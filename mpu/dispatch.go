package mpu

// Register map, as decoded from the main CPU address bus. The I/O range
// also contains undocumented peripheral registers; anything not matched
// below reads as zero and ignores writes rather than faulting
const (
	sramBase = 0x02000000
	sramEnd  = 0x0200ffff

	mcuBase = 0x03600000
	mcuEnd  = 0x036bffff

	shareRAMBase = 0x30100000
	shareRAMEnd  = 0x301000ff

	shareBankAddr = 0x30120030
	spriteKeyAddr = 0x30120038

	decryptTriggerAddr = 0xfffffa08
	startupAddr        = 0xfffffa0c

	encTableBase = 0xfffffc00
	encTableEnd  = 0xfffffcff

	rtcAddr = 0xfffffd28
)

// startupStatus is checked by the internal ROM on boot; bits 0-1 are the
// ROM board status, zero meaning OK
const startupStatus = 0x00000180

// Read32 handles a 32-bit read from the main CPU
func (s *System) Read32(addr uint32) uint32 {
	switch {
	case addr >= mcuBase && addr <= mcuEnd:
		return s.mcuRegs[(addr-mcuBase)>>17&7]
	case addr == rtcAddr:
		return s.rtcSeconds()
	case addr == startupAddr:
		return startupStatus
	}

	return 0
}

// Write32 handles a 32-bit write from the main CPU. Writing a nonzero
// value to MPU register 2 issues the command in register 0; nonzero to
// register 5 acknowledges it
func (s *System) Write32(addr, data uint32) {
	switch {
	case addr >= mcuBase && addr <= mcuEnd:
		reg := (addr - mcuBase) >> 17 & 7
		s.mcuRegs[reg] = data

		switch {
		case reg == 2 && data != 0:
			s.issue()
		case reg == 5 && data != 0:
			s.acknowledge()
		}
	case addr == spriteKeyAddr:
		s.writeSpriteKey(data)
	case addr == decryptTriggerAddr:
		s.triggerDecrypt()
	}
}

// Read16 handles a 16-bit read from the main CPU
func (s *System) Read16(addr uint32) uint16 {
	if addr == shareBankAddr {
		return s.shareBank
	}

	return 0
}

// Write16 handles a 16-bit write from the main CPU
func (s *System) Write16(addr uint32, data uint16) {
	if addr == shareBankAddr {
		s.shareBank = data
	}
}

// Read8 handles an 8-bit read from the main CPU. The share RAM window only
// decodes byte lanes 0 and 2 of each word, so 256 bus addresses reach the
// 128 bytes of the selected bank
func (s *System) Read8(addr uint32) uint8 {
	switch {
	case addr >= sramBase && addr <= sramEnd:
		return s.sram[addr-sramBase]
	case addr >= shareRAMBase && addr <= shareRAMEnd:
		if addr&1 != 0 {
			return 0
		}
		return s.shareRAM[s.cpuBank()+int(addr&0xff>>1)]
	case addr >= encTableBase && addr <= encTableEnd:
		return s.encTable[addr-encTableBase]
	}

	return 0
}

// Write8 handles an 8-bit write from the main CPU
func (s *System) Write8(addr uint32, data uint8) {
	switch {
	case addr >= sramBase && addr <= sramEnd:
		s.sram[addr-sramBase] = data
	case addr >= shareRAMBase && addr <= shareRAMEnd:
		if addr&1 != 0 {
			return
		}
		s.shareRAM[s.cpuBank()+int(addr&0xff>>1)] = data
	case addr >= encTableBase && addr <= encTableEnd:
		s.encTable[addr-encTableBase] = data
	}
}
