package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestToGomidiMatchesLibrary(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want gomidi.Message
	}{
		{"note on", must(NewNoteOn(60, 100, WithChannel(2))), gomidi.NoteOn(2, 60, 100)},
		{"control change", must(NewControlChange(7, 64, WithChannel(15))), gomidi.ControlChange(15, 7, 64)},
		{"program change", must(NewProgramChange(12, WithChannel(9))), gomidi.ProgramChange(9, 12)},
		{"sysex", must(NewSystemExclusive([]byte{0x42}, []byte{0x01, 0x02})), gomidi.SysEx([]byte{0x42, 0x01, 0x02})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToGomidi(tt.msg, NoChannel)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Bytes(), got.Bytes())
		})
	}
}

func TestToGomidiFallback(t *testing.T) {
	m := NoteOn{Note: 60, Velocity: 1}.OnChannel(NoChannel)

	_, err := ToGomidi(m, NoChannel)
	assert.ErrorIs(t, err, ErrNoChannel)

	got, err := ToGomidi(m, 4)
	require.NoError(t, err)
	var ch, key, vel uint8
	require.True(t, got.GetNoteOn(&ch, &key, &vel))
	assert.Equal(t, [3]uint8{4, 60, 1}, [3]uint8{ch, key, vel})
}

func TestFromGomidi(t *testing.T) {
	r := fullRegistry(t)

	msg, err := r.FromGomidi(gomidi.NoteOn(5, 64, 90))
	require.NoError(t, err)
	assert.Equal(t, noteOn(t, 5, 64, 90), msg)

	msg, err = r.FromGomidi(gomidi.SysEx([]byte{0x00, 0x20, 0x29, 0x7F}))
	require.NoError(t, err)
	assert.Equal(t, SystemExclusive{ManufacturerID: []byte{0x00, 0x20, 0x29}, Data: []byte{0x7F}}, msg)

	_, err = r.FromGomidi(gomidi.Message{0x90, 0x40})
	assert.ErrorIs(t, err, ErrIncomplete)

	_, err = r.FromGomidi(gomidi.Message{0x90, 0x40, 0x40, 0xF8})
	assert.ErrorIs(t, err, ErrIncomplete)
}
