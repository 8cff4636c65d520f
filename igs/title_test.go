package igs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitles(t *testing.T) {
	// titles with dumped internal ROMs take their keys at runtime
	for _, name := range []string{"orleg2", "kov2nl"} {
		title := Titles[name]
		assert.False(t, title.Predecrypted, name)
		assert.Equal(t, uint16(0), title.U12Key, name)
		assert.Equal(t, uint16(0), title.U16Key, name)
		assert.Nil(t, title.module, name)
	}

	// the rest are decrypted once at load with reverse engineered keys
	for _, name := range []string{"ddpdojh", "kov3", "kov3_102", "kov3_100", "kof98umh"} {
		title := Titles[name]
		assert.True(t, title.Predecrypted, name)
		assert.NotEqual(t, uint16(0), title.U12Key, name)
	}

	// only KOV3 carries the extra flash module layer, with a key pair per
	// program revision
	assert.Equal(t, &moduleKey{0x18ec71, 0xb89d}, Titles["kov3"].module)
	assert.Equal(t, &moduleKey{0x021d37, 0x81d0}, Titles["kov3_102"].module)
	assert.Equal(t, &moduleKey{0x3e8aa8, 0xc530}, Titles["kov3_100"].module)
}

func TestGenre(t *testing.T) {
	assert.Equal(t, Genre(0), Other)
	assert.Equal(t, "Shooter", Titles["ddpdojh"].Genre.String())
	assert.Equal(t, "Fighting", Titles["kof98umh"].Genre.String())
}
