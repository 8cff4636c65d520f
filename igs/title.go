/*
Package igs implements the ROM transforms used by IGS PGM2 cartridges: the
IGA positional XOR decoders covering the sprite data, the sprite colour
repack, the extra XOR/address-permutation layer of the KOV3 flash module
and the table-driven IGS036 program cipher.

All transforms operate in place on borrowed buffers owned by the caller.
*/
package igs

// These constants map to the ROM regions of a cartridge
const (
	Program int = iota
	Tiles
	BGTile
	SpriteMask
	SpriteColour
	Areas
)

// moduleKey is the per-revision key pair of the KOV3 flash ROM module layer
type moduleKey struct {
	addrXOR uint32
	dataXOR uint16
}

type romFile struct {
	filename string
	size     uint64
	crc      uint32
}

// regionStep is one contiguous chunk of a ROM region: a single image, or a
// low/high pair interleaved 16 bits at a time (the ROM_LOAD32_WORD layout
// used by the cartridges). padTo pads the chunk out before the next one,
// covering unpopulated sockets.
type regionStep struct {
	roms  []romFile
	padTo int64
}

// Title describes one supported cartridge
type Title struct {
	Name         string
	Manufacturer string
	Year         uint32
	Genre        Genre

	// IGA sprite mask decoder keys; zero for titles whose internal ROM is
	// dumped and supplies the real keys at runtime
	U12Key uint16
	U16Key uint16

	// Predecrypted is set for titles whose sprite data is decrypted once
	// at load time; live writes to the sprite key register are then a
	// no-op
	Predecrypted bool

	module *moduleKey

	roms [Areas][]regionStep
}

// Regions holds the ROM regions of a loaded title. The buffers are
// borrowed by the transforms and mutated in place; the engine never
// allocates or frees them.
type Regions struct {
	ROM [Areas][]byte
}

// Decrypt applies the load time transforms for the title in fixed order:
// the flash module layer over the program ROM where fitted, the two IGA
// decoders over the sprite mask and the colour repack over the sprite
// colour data. Each region is transformed exactly once, at driver init.
// Program ROM decryption is deferred to the decrypt trigger (see the mpu
// package) or, for titles with a known table, to ProgramDecrypt.
func (t *Title) Decrypt(r *Regions) {
	if t.module != nil {
		moduleDecrypt(r.ROM[Program], t.module.addrXOR, t.module.dataXOR)
	}

	igaU12Decode(r.ROM[SpriteMask], t.U12Key)
	igaU16Decode(r.ROM[SpriteMask], t.U16Key)
	spriteColourDecode(r.ROM[SpriteColour])
}

// the video and sound ROMs never move between the KOV3 revisions, only the
// program module changes
var kov3Video = [Areas][]regionStep{
	Tiles: {
		{roms: []romFile{{"kov3_text.u1", 0x200000, 0x198b52d6}}},
	},
	BGTile: {
		{roms: []romFile{
			{"kov3_bgl.u6", 0x1000000, 0x49a4c5bc},
			{"kov3_bgh.u7", 0x1000000, 0xadc1aff1},
		}},
	},
	SpriteMask: {
		{roms: []romFile{
			{"kov3_mapl0.u15", 0x2000000, 0x9e569bf7},
			{"kov3_maph0.u16", 0x2000000, 0x6f200ad8},
		}},
	},
	SpriteColour: {
		{roms: []romFile{
			{"kov3_spa0.u17", 0x4000000, 0x3a1e58a9},
			{"kov3_spb0.u10", 0x4000000, 0x90396065},
		}},
	},
}

func kov3Title(program romFile, key *moduleKey) *Title {
	roms := kov3Video
	roms[Program] = []regionStep{{roms: []romFile{program}}}

	return &Title{
		Name:         "Knights of Valour 3",
		Manufacturer: "IGS",
		Year:         2011,
		Genre:        BeatEmUp,
		U12Key:       0x956d,
		U16Key:       0x3d17,
		Predecrypted: true,
		module:       key,
		roms:         roms,
	}
}

// Titles is the table of supported cartridges, keyed by set name
var Titles = map[string]*Title{
	"orleg2": {
		Name:         "Oriental Legend 2",
		Manufacturer: "IGS",
		Year:         2007,
		Genre:        BeatEmUp,
		roms: [Areas][]regionStep{
			Program: {
				{roms: []romFile{{"ol2_v104fa.u7", 0x800000, 0x7c24a4f5}}},
			},
			Tiles: {
				{roms: []romFile{{"ig-a_text.u4", 0x200000, 0xfa444c32}}},
			},
			BGTile: {
				{roms: []romFile{
					{"ig-a_bgl.u35", 0x800000, 0x083a8315},
					{"ig-a_bgh.u36", 0x800000, 0xe197221d},
				}},
			},
			SpriteMask: {
				{roms: []romFile{
					{"ig-a_bml.u12", 0x1000000, 0x113a331c},
					{"ig-a_bmh.u16", 0x1000000, 0xfbf411c8},
				}},
			},
			SpriteColour: {
				{roms: []romFile{
					{"ig-a_cgl.u18", 0x2000000, 0x43501fa6},
					{"ig-a_cgh.u26", 0x2000000, 0x7051d020},
				}},
			},
		},
	},
	"kov2nl": {
		Name:         "Knights of Valour 2 New Legend",
		Manufacturer: "IGS",
		Year:         2008,
		Genre:        BeatEmUp,
		roms: [Areas][]regionStep{
			Program: {
				{roms: []romFile{{"gsyx_v302cn.u7", 0x800000, 0xb19cf540}}},
			},
			Tiles: {
				{roms: []romFile{{"ig-a3_text.u4", 0x200000, 0x214530ff}}},
			},
			BGTile: {
				{roms: []romFile{
					{"ig-a3_bgl.u35", 0x800000, 0x2d46b1f6},
					{"ig-a3_bgh.u36", 0x800000, 0xdf710c36},
				}},
			},
			SpriteMask: {
				{roms: []romFile{
					{"ig-a3_bml.u12", 0x1000000, 0x0bf63836},
					{"ig-a3_bmh.u16", 0x1000000, 0x4a378542},
				}},
			},
			SpriteColour: {
				{roms: []romFile{
					{"ig-a3_cgl.u18", 0x2000000, 0x8d923e1f},
					{"ig-a3_cgh.u26", 0x2000000, 0x5b6fbf3f},
				}},
			},
		},
	},
	"ddpdojh": {
		Name:         "Dodonpachi Daioujou Tamashii",
		Manufacturer: "IGS",
		Year:         2010,
		Genre:        Shooter,
		U12Key:       0x1e96,
		U16Key:       0x869c,
		Predecrypted: true,
		roms: [Areas][]regionStep{
			Program: {
				{roms: []romFile{{"ddpdoj_v201cn.u4", 0x200000, 0x89e4b760}}},
			},
			Tiles: {
				{roms: []romFile{{"ddpdoj_text.u1", 0x200000, 0xf18141d1}}},
			},
			BGTile: {
				{roms: []romFile{
					{"ddpdoj_bgl.u23", 0x1000000, 0xff65fdab},
					{"ddpdoj_bgh.u24", 0x1000000, 0xbb84d2a6},
				}},
			},
			SpriteMask: {
				{roms: []romFile{
					{"ddpdoj_mapl0.u13", 0x800000, 0xbcfbb0fc},
					{"ddpdoj_maph0.u15", 0x800000, 0x0cc75d4e},
				}},
			},
			SpriteColour: {
				{roms: []romFile{
					{"ddpdoj_spa0.u9", 0x1000000, 0x1232c1b4},
					{"ddpdoj_spb0.u18", 0x1000000, 0x6a9e2cbf},
				}},
			},
		},
	},
	"kov3": kov3Title(
		romFile{"kov3_v104cn_raw.bin", 0x800000, 0x1b5cbd24},
		&moduleKey{0x18ec71, 0xb89d},
	),
	"kov3_102": kov3Title(
		romFile{"kov3_v102cn_raw.bin", 0x800000, 0x61d0dabd},
		&moduleKey{0x021d37, 0x81d0},
	),
	"kov3_100": kov3Title(
		romFile{"kov3_v100cn_raw.bin", 0x800000, 0x93bca924},
		&moduleKey{0x3e8aa8, 0xc530},
	),
	"kof98umh": {
		Name:         "The King of Fighters '98: Ultimate Match HERO",
		Manufacturer: "IGS / SNK Playmore / NewChannel",
		Year:         2009,
		Genre:        Fighting,
		U12Key:       0x21df,
		U16Key:       0x8692,
		Predecrypted: true,
		roms: [Areas][]regionStep{
			Program: {
				{roms: []romFile{{"kof98umh_v100cn.u4", 0x1000000, 0x2ea91e3b}}},
			},
			Tiles: {
				{roms: []romFile{{"ig-d3_text.u1", 0x200000, 0x9a0ea82e}}},
			},
			SpriteMask: {
				{roms: []romFile{
					{"ig-d3_mapl0.u13", 0x4000000, 0x5571d63e},
					{"ig-d3_maph0.u15", 0x4000000, 0x0da7b1b8},
				}},
			},
			SpriteColour: {
				// spa1/spb1 and spa3/spb3 sockets are unpopulated
				{
					roms: []romFile{
						{"ig-d3_spa0.u9", 0x4000000, 0xcfef8f7d},
						{"ig-d3_spb0.u18", 0x4000000, 0xf199d5c8},
					},
					padTo: 0x10000000,
				},
				{roms: []romFile{
					{"ig-d3_spa2.u10", 0x4000000, 0x03bfd35c},
					{"ig-d3_spb2.u20", 0x4000000, 0x9aaa840b},
				}},
			},
		},
	},
}
