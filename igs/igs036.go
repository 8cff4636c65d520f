package igs

import "encoding/binary"

// TableSize is the size of the IGS036 program cipher table
const TableSize = 0x100

// ProgramDecrypt decrypts the external program ROM in place using the
// 256 byte cipher table, either baked into the IGS036 internal ROM or
// uploaded by the internal ROM itself before the decrypt trigger is
// written. Each word is XORed with a pair of table bytes selected by the
// word address. The buffer is borrowed and only ever transformed, never
// reallocated. A table that was not fully populated before triggering
// yields a non-booting image rather than an error, exactly as on hardware.
func ProgramDecrypt(rom []byte, table *[TableSize]byte) {
	for i := 0; i+1 < len(rom); i += 2 {
		w := binary.LittleEndian.Uint16(rom[i:])
		w ^= uint16(table[(i>>1)&0xff]) | uint16(table[(i>>9)&0xff])<<8
		binary.LittleEndian.PutUint16(rom[i:], w)
	}
}
