package igs

import "encoding/binary"

// Per-word XOR masks for the two IGA sprite mask decoders. Bit n of the
// shifted word index selects mask n; every set bit accumulates by XOR on
// top of the title key.
var (
	igaU12Masks = [11]uint16{
		0x9004, 0x0028, 0x0182, 0x0010, 0x2040, 0x0801,
		0x0000, 0x0000, 0x4000, 0x0600, 0x0000,
	}
	igaU16Masks = [11]uint16{
		0x0010, 0x2004, 0x0801, 0x0300, 0x0080, 0x0020,
		0x4008, 0x1002, 0x0400, 0x0040, 0x8000,
	}
)

func igaMask(i int, masks *[11]uint16) (x uint16) {
	for b, m := range masks {
		if (i>>1)&(1<<b) != 0 {
			x ^= m
		}
	}
	return
}

// igaU12Decode decrypts the even words of the sprite mask region, the data
// lanes fed by the IGA U12 custom. The transform has to match the hardware
// bit for bit or the mask data is garbage.
func igaU12Decode(rom []byte, key uint16) {
	igaDecode(rom, 0, key, &igaU12Masks)
}

// igaU16Decode decrypts the odd words of the sprite mask region, the lanes
// fed by the IGA U16 custom.
func igaU16Decode(rom []byte, key uint16) {
	igaDecode(rom, 1, key, &igaU16Masks)
}

func igaDecode(rom []byte, phase int, key uint16, masks *[11]uint16) {
	for i := phase; i < len(rom)/2; i += 2 {
		w := binary.LittleEndian.Uint16(rom[i*2:])
		w ^= igaMask(i, masks) ^ key
		w = bitswapUint16(w, 8, 9, 10, 11, 12, 13, 14, 15, 0, 1, 2, 3, 4, 5, 6, 7)
		binary.LittleEndian.PutUint16(rom[i*2:], w)
	}
}

// spriteColourDecode regroups the two interleaved 6 bit colour channels of
// each packed sprite colour word into display order. The top two bits of
// each channel are unused, the data is 6bpp.
func spriteColourDecode(rom []byte) {
	for i := 0; i+1 < len(rom); i += 2 {
		w := binary.LittleEndian.Uint16(rom[i:])
		w = bitswapUint16(w, 15, 14, 13, 12, 11, 5, 4, 3, 7, 6, 10, 9, 8, 2, 1, 0)
		binary.LittleEndian.PutUint16(rom[i:], w)
	}
}

// moduleDecrypt removes the extra encryption layer applied by the KOV3
// flash ROM module: every word is XORed with dataXOR and fetched from the
// word address permuted by addrXOR. The buffer must cover the permuted
// address range, which for the real 8 MB modules it always does.
func moduleDecrypt(rom []byte, addrXOR uint32, dataXOR uint16) {
	src := make([]uint16, len(rom)/2)
	for i := range src {
		src[i] = binary.LittleEndian.Uint16(rom[i*2:])
	}

	for i := range src {
		binary.LittleEndian.PutUint16(rom[i*2:], src[uint32(i)^addrXOR]^dataXOR)
	}
}
