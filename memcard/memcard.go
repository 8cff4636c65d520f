/*
Package memcard implements the IC memory cards read and written by the PGM2
motherboard MPU through its 0xC0-0xC9 command family. A card is a 256 byte
image accessed one byte at a time; slots without a card respond with a
fixed sentinel rather than failing.
*/
package memcard

import "errors"

const (
	// Size is the capacity of a card in bytes
	Size = 0x100

	// Extension is the conventional file extension used for card images
	Extension = ".pg2"

	// NotPresent is the value read from an empty slot
	NotPresent = 0xff
)

var errInvalid = errors.New("memcard: invalid image size")

// Card is a single IC card as seen by the MPU
type Card interface {
	Present() bool
	Read(offset uint8) uint8
	Write(offset, data uint8)
}

// Image is a card holding a 256 byte image
type Image struct {
	data [Size]uint8
}

// NewImage returns a blank card
func NewImage() *Image {
	return new(Image)
}

// Present always reports true for a card that is in its slot
func (i *Image) Present() bool {
	return true
}

// Read returns the byte at offset
func (i *Image) Read(offset uint8) uint8 {
	return i.data[offset]
}

// Write stores data at offset
func (i *Image) Write(offset, data uint8) {
	i.data[offset] = data
}

// MarshalBinary encodes the card image into binary form and returns the
// result
func (i *Image) MarshalBinary() ([]byte, error) {
	b := make([]byte, Size)
	copy(b, i.data[:])
	return b, nil
}

// UnmarshalBinary decodes the card image from binary form
func (i *Image) UnmarshalBinary(b []byte) error {
	if len(b) != Size {
		return errInvalid
	}
	copy(i.data[:], b)
	return nil
}

// Empty is an unoccupied slot; reads return the NotPresent sentinel and
// writes are dropped
type Empty struct{}

// Present always reports false for an empty slot
func (Empty) Present() bool {
	return false
}

// Read returns the NotPresent sentinel
func (Empty) Read(uint8) uint8 {
	return NotPresent
}

// Write drops the data
func (Empty) Write(uint8, uint8) {}
