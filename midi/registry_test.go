package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NoteOnType, SystemExclusiveType, TimingClockType))

	for ch := byte(0); ch < 16; ch++ {
		d, ok := r.Lookup(StatusNoteOn | ch)
		require.True(t, ok)
		assert.Equal(t, KindNoteOn, d.Kind)
	}

	d, ok := r.Lookup(StatusSystemExclusive)
	require.True(t, ok)
	assert.Equal(t, Variable, d.Length)

	_, ok = r.Lookup(StatusNoteOff)
	assert.False(t, ok, "not registered")
	_, ok = r.Lookup(0xF9)
	assert.False(t, ok, "system statuses match exactly")
	_, ok = r.Lookup(0x30)
	assert.False(t, ok, "data byte")
	_, ok = r.Lookup(StatusEndOfExclusive)
	assert.False(t, ok)
}

func TestRegisterIdempotent(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NoteOnType))
	require.NoError(t, r.Register(NoteOnType, NoteOnType))
	assert.Len(t, r.Types(), 1)
}

func TestRegisterConflict(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NoteOnType))

	clash := NoteOnType
	clash.Kind = KindNoteOff
	assert.ErrorIs(t, r.Register(clash), ErrTypeConflict)
}

func TestRegisterInvalid(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
	}{
		{"no decoder", Descriptor{Kind: KindStart, Status: 0xFA, Length: 1}},
		{"data status", Descriptor{Kind: KindStart, Status: 0x7A, Length: 1, Decode: decodeStart}},
		{"end of exclusive", Descriptor{Kind: KindStart, Status: 0xF7, Length: 1, Decode: decodeStart}},
		{"channel nibble set", Descriptor{Kind: KindNoteOn, Status: 0x91, Channel: true, Length: 3, Decode: decodeNoteOn}},
		{"system with channel", Descriptor{Kind: KindStart, Status: 0xFA, Channel: true, Length: 1, Decode: decodeStart}},
		{"channel status without channel", Descriptor{Kind: KindNoteOn, Status: 0x90, Length: 3, Decode: decodeNoteOn}},
		{"zero length", Descriptor{Kind: KindStart, Status: 0xFA, Length: 0, Decode: decodeStart}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, NewRegistry().Register(tt.d), ErrInvalidDescriptor)
		})
	}
}

func TestRegistryTypesOrdered(t *testing.T) {
	types := fullRegistry(t).Types()
	require.Len(t, types, len(AllTypes()))
	for i := 1; i < len(types); i++ {
		assert.Less(t, types[i-1].Status, types[i].Status)
	}
}

func TestTypeByName(t *testing.T) {
	d, ok := TypeByName("pitch_bend")
	require.True(t, ok)
	assert.Equal(t, StatusPitchBend, d.Status)

	_, ok = TypeByName("unknown")
	assert.False(t, ok)
}

func TestCustomDescriptor(t *testing.T) {
	songSelect := Descriptor{
		Kind:   Kind(100),
		Status: 0xF3,
		Length: 2,
		Decode: func(frame []byte) (Message, error) {
			return Unknown{Status: frame[1]}, nil
		},
	}
	r := NewRegistry()
	require.NoError(t, r.Register(songSelect))

	out := r.Parse([]byte{0xF3, 0x05}, 0)
	assert.Equal(t, Outcome{Message: Unknown{Status: 0x05}, Consumed: 2}, out)
}

func TestDefaultRegistry(t *testing.T) {
	require.NoError(t, RegisterAll())
	out := Parse([]byte{0x90, 0x30, 0x7F}, 0)
	require.NotNil(t, out.Message)
	assert.Equal(t, KindNoteOn, out.Message.Kind())
	require.NoError(t, Register(NoteOnType), "re-registering is harmless")
}
