package port

import (
	"bytes"
	"errors"
	"testing"

	"github.com/PixPMusic/gopher-midi/internal/log"
	"github.com/PixPMusic/gopher-midi/midi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func testRegistry(t *testing.T) *midi.Registry {
	t.Helper()
	r := midi.NewRegistry()
	require.NoError(t, r.Register(midi.AllTypes()...))
	return r
}

func TestFeedDispatchesMessages(t *testing.T) {
	var logs bytes.Buffer
	m := NewManager(log.New(&logs, "debug"))
	stream := midi.NewStream(2, midi.WithRegistry(testRegistry(t)))

	var got []midi.Message
	handler := func(portName string, msg midi.Message) {
		assert.Equal(t, "IAC", portName)
		got = append(got, msg)
	}

	// Drivers may hand over partial frames; the stream reassembles them.
	m.feed("IAC", stream, []byte{0x92, 0x3C}, handler)
	assert.Empty(t, got)
	m.feed("IAC", stream, []byte{0x40, 0x93, 0x3C, 0x40, 0xFD}, handler)

	want, err := midi.NewNoteOn(60, 64, midi.WithChannel(2))
	require.NoError(t, err)
	assert.Equal(t, []midi.Message{want, midi.Unknown{Status: 0xFD}}, got)
	assert.Contains(t, logs.String(), "0xFD")
}

func TestSenderSend(t *testing.T) {
	var sent []gomidi.Message
	s := newSender("out", 5, func(msg gomidi.Message) error {
		sent = append(sent, msg)
		return nil
	}, log.New(&bytes.Buffer{}, "info"))

	cc, err := midi.NewControlChange(7, 100)
	require.NoError(t, err)
	require.NoError(t, s.Send(cc))

	pinned, err := midi.NewProgramChange(3, midi.WithChannel(1))
	require.NoError(t, err)
	require.NoError(t, s.Send(pinned))

	require.Len(t, sent, 2)
	assert.Equal(t, gomidi.ControlChange(5, 7, 100).Bytes(), sent[0].Bytes())
	assert.Equal(t, gomidi.ProgramChange(1, 3).Bytes(), sent[1].Bytes())
	assert.Equal(t, "out", s.Port())
}

func TestSenderErrors(t *testing.T) {
	boom := errors.New("boom")
	s := newSender("out", midi.NoChannel, func(gomidi.Message) error {
		return boom
	}, log.New(&bytes.Buffer{}, "info"))

	cc, err := midi.NewControlChange(7, 100)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Send(cc), midi.ErrNoChannel)

	assert.ErrorIs(t, s.Send(midi.TimingClock{}), boom)
}

func TestSenderUnknownPort(t *testing.T) {
	m := NewManager(log.New(&bytes.Buffer{}, "debug"))

	_, err := m.Sender("gopher-midi no such port", midi.NoChannel)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPortNotFound)

	_, lookupErr := m.GetOutPort("gopher-midi no such port")
	assert.Equal(t, lookupErr.Error(), err.Error())
}
