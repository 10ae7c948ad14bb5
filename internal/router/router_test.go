package router

import (
	"bytes"
	"errors"
	"testing"

	"github.com/PixPMusic/gopher-midi/internal/config"
	"github.com/PixPMusic/gopher-midi/internal/log"
	"github.com/PixPMusic/gopher-midi/midi"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	sent []midi.Message
	err  error
}

func (r *recorder) Send(msg midi.Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func route(typ string, channel, number, outChannel int) config.Route {
	r := config.NewRoute()
	r.MessageType = typ
	r.Channel = channel
	r.Number = number
	r.OutChannel = outChannel
	return r
}

func must(m midi.Message, err error) midi.Message {
	if err != nil {
		panic(err)
	}
	return m
}

func TestMatch(t *testing.T) {
	on := must(midi.NewNoteOn(60, 100, midi.WithChannel(1)))
	off := must(midi.NewNoteOff(60, 0, midi.WithChannel(1)))
	cc := must(midi.NewControlChange(7, 100, midi.WithChannel(2)))
	bend := must(midi.NewPitchBend(midi.PitchBendCenter, midi.WithChannel(1)))

	tests := []struct {
		name  string
		route config.Route
		msg   midi.Message
		want  bool
	}{
		{"everything", route("", -1, -1, -1), midi.TimingClock{}, true},
		{"note matches on", route("note", -1, -1, -1), on, true},
		{"note matches off", route("note", -1, -1, -1), off, true},
		{"note skips cc", route("note", -1, -1, -1), cc, false},
		{"kind name", route("control_change", -1, -1, -1), cc, true},
		{"kind name mismatch", route("note_on", -1, -1, -1), off, false},
		{"channel", route("", 1, -1, -1), on, true},
		{"channel mismatch", route("", 2, -1, -1), on, false},
		{"channel excludes system", route("", 1, -1, -1), midi.Start{}, false},
		{"number", route("", -1, 60, -1), on, true},
		{"controller number", route("", -1, 7, -1), cc, true},
		{"number mismatch", route("", -1, 61, -1), on, false},
		{"number needs numbered message", route("", -1, 0, -1), bend, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.route, tt.msg))
		})
	}
}

func TestHandleForwardsAndRechannels(t *testing.T) {
	keep := route("note", 1, -1, -1)
	move := route("control_change", -1, -1, 9)
	target := &recorder{}
	r := New([]config.Route{keep, move}, target, log.New(&bytes.Buffer{}, "info"))

	on := must(midi.NewNoteOn(60, 100, midi.WithChannel(1)))
	cc := must(midi.NewControlChange(7, 100, midi.WithChannel(2)))
	r.Handle("in", on)
	r.Handle("in", cc)
	r.Handle("in", midi.TimingClock{})

	want := must(midi.NewControlChange(7, 100, midi.WithChannel(9)))
	assert.Equal(t, []midi.Message{on, want}, target.sent)
	assert.Equal(t, map[string]uint64{keep.ID: 1, move.ID: 1}, r.Counts())
}

func TestHandleRechannelLeavesSystemMessages(t *testing.T) {
	target := &recorder{}
	r := New([]config.Route{route("", -1, -1, 3)}, target, log.New(&bytes.Buffer{}, "info"))

	r.Handle("in", midi.Stop{})
	assert.Equal(t, []midi.Message{midi.Stop{}}, target.sent)
}

func TestHandleLogsFailures(t *testing.T) {
	var logs bytes.Buffer
	all := route("", -1, -1, -1)
	r := New([]config.Route{all}, &recorder{err: errors.New("port gone")}, log.New(&logs, "info"))

	r.Handle("in", midi.Start{})
	assert.Contains(t, logs.String(), "port gone")
	assert.Empty(t, r.Counts())
}
