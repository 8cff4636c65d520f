package igs

import (
	"archive/zip"
	"bytes"
	"errors"
	"hash/crc32"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bodgit/plumbing"
	"github.com/gabriel-vasile/mimetype"
)

var (
	errUnsupportedFormat = errors.New("unsupported format")
	errBadROM            = errors.New("ROM doesn't match expected data")
	errROMNotFound       = errors.New("ROM not found")
	errBadPair           = errors.New("interleaved ROM pair differs in size")
)

type romOpener interface {
	open([]romFile) ([]io.Reader, error)
}

type zipOpener struct {
	path string
}

func (zo zipOpener) open(roms []romFile) ([]io.Reader, error) {
	z, err := zip.OpenReader(zo.path)
	if err != nil {
		return nil, err
	}
	defer z.Close()

	var readers []io.Reader
	for _, rom := range roms {
		var r io.Reader
		for _, f := range z.File {
			if f.Name == rom.filename || f.CRC32 == rom.crc {
				if f.UncompressedSize64 != rom.size || f.CRC32 != rom.crc {
					return nil, errBadROM
				}

				t, err := f.Open()
				if err != nil {
					return nil, err
				}
				defer t.Close()

				b := new(bytes.Buffer)
				if _, err := io.Copy(b, t); err != nil {
					return nil, err
				}

				r = b

				break
			}
		}

		if r == nil {
			return nil, errROMNotFound
		}

		readers = append(readers, r)
	}

	return readers, nil
}

type directoryOpener struct {
	path string
}

func (do directoryOpener) open(roms []romFile) ([]io.Reader, error) {
	var readers []io.Reader
	for _, rom := range roms {
		f, err := os.Open(filepath.Join(do.path, rom.filename))
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errROMNotFound
			}
			return nil, err
		}
		defer f.Close()

		b := new(bytes.Buffer)

		h := crc32.NewIEEE()
		n, err := io.Copy(io.MultiWriter(h, b), f)
		if err != nil {
			return nil, err
		}

		if uint64(n) != rom.size || h.Sum32() != rom.crc {
			return nil, errBadROM
		}

		readers = append(readers, b)
	}

	return readers, nil
}

// interleaveROM combines the low and high images of a ROM_LOAD32_WORD pair
// into one region, 16 bits from each in turn
func interleaveROM(low, high io.Reader) (io.Reader, error) {
	lo, err := ioutil.ReadAll(low)
	if err != nil {
		return nil, err
	}

	hi, err := ioutil.ReadAll(high)
	if err != nil {
		return nil, err
	}

	if len(lo) != len(hi) {
		return nil, errBadPair
	}

	b := new(bytes.Buffer)
	for i := 0; i+1 < len(lo); i += 2 {
		b.Write(lo[i : i+2])
		b.Write(hi[i : i+2])
	}

	return b, nil
}

func (t *Title) readRegion(area int, o romOpener) ([]byte, error) {
	var chunks []io.Reader

	for _, step := range t.roms[area] {
		readers, err := o.open(step.roms)
		if err != nil {
			return nil, err
		}

		var r io.Reader
		switch len(readers) {
		case 1:
			r = readers[0]
		case 2:
			if r, err = interleaveROM(readers[0], readers[1]); err != nil {
				return nil, err
			}
		}

		if step.padTo > 0 {
			r = plumbing.PaddedReader(r, step.padTo, 0)
		}

		chunks = append(chunks, r)
	}

	return ioutil.ReadAll(io.MultiReader(chunks...))
}

// LoadRegions reads the ROM regions of a title from the passed zip file or
// directory, verifying each image against its expected size and CRC. The
// returned buffers are still encrypted; apply Decrypt and, once the cipher
// table is known, ProgramDecrypt.
func (t *Title) LoadRegions(path string) (*Regions, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var o romOpener

	switch {
	case info.IsDir():
		o = directoryOpener{path}
	default:
		mime, err := mimetype.DetectFile(path)
		if err != nil {
			return nil, err
		}

		switch mime.Extension() {
		case ".zip":
			o = zipOpener{path}
		default:
			return nil, errUnsupportedFormat
		}
	}

	r := new(Regions)
	for i := 0; i < Areas; i++ {
		if len(t.roms[i]) == 0 {
			continue
		}
		if r.ROM[i], err = t.readRegion(i, o); err != nil {
			return nil, err
		}
	}

	return r, nil
}
