package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChannel(t *testing.T) {
	for _, n := range []int{-1, 0, 9, 15} {
		ch, err := ParseChannel(n)
		require.NoError(t, err, n)
		assert.Equal(t, Channel(n), ch)
	}

	// values that would wrap when narrowed to a Channel
	for _, n := range []int{-2, 16, 127, 128, 255, 256, 271, -129} {
		_, err := ParseChannel(n)
		assert.ErrorIs(t, err, ErrFieldOutOfRange, n)

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "channel", fe.Field)
	}
}

func TestNoteVelocityDefaults(t *testing.T) {
	on, err := NewNoteOn(60, DefaultNoteOnVelocity)
	require.NoError(t, err)
	b, err := on.Encode(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x90, 0x3C, 0x7F}, b)

	off, err := NewNoteOff(61, DefaultNoteOffVelocity)
	require.NoError(t, err)
	b, err = off.Encode(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80, 0x3D, 0x00}, b)
}
