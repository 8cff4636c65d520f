package memcard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImage(t *testing.T) {
	c := NewImage()

	assert.True(t, c.Present())
	assert.Equal(t, uint8(0), c.Read(0x10))

	c.Write(0x10, 0x5a)
	assert.Equal(t, uint8(0x5a), c.Read(0x10))
}

func TestImageMarshal(t *testing.T) {
	c := NewImage()
	c.Write(0x00, 0x49)
	c.Write(0x01, 0x47)
	c.Write(0x02, 0x53)

	b, err := c.MarshalBinary()
	assert.Nil(t, err)
	assert.Len(t, b, Size)

	d := NewImage()
	assert.Nil(t, d.UnmarshalBinary(b))
	assert.Equal(t, uint8(0x47), d.Read(0x01))

	assert.Equal(t, errInvalid, d.UnmarshalBinary(b[1:]))
}

func TestEmpty(t *testing.T) {
	var c Card = Empty{}

	assert.False(t, c.Present())
	assert.Equal(t, uint8(NotPresent), c.Read(0))

	// writes to an empty slot are dropped
	c.Write(0, 0x5a)
	assert.Equal(t, uint8(NotPresent), c.Read(0))
}
