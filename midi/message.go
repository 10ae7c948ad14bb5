package midi

import "fmt"

// Status bytes of the message types this package understands. Channel
// statuses carry the channel in their low nibble.
const (
	StatusNoteOff          byte = 0x80
	StatusNoteOn           byte = 0x90
	StatusPolyKeyPressure  byte = 0xA0
	StatusControlChange    byte = 0xB0
	StatusProgramChange    byte = 0xC0
	StatusChannelPressure  byte = 0xD0
	StatusPitchBend        byte = 0xE0
	StatusSystemExclusive  byte = 0xF0
	StatusMTCQuarterFrame  byte = 0xF1
	StatusEndOfExclusive   byte = 0xF7
	StatusTimingClock      byte = 0xF8
	StatusStart            byte = 0xFA
	StatusContinue         byte = 0xFB
	StatusStop             byte = 0xFC
	statusChannelMask      byte = 0xF0
	statusBit              byte = 0x80
	firstSystemStatus      byte = 0xF0
	manufacturerExtendedID byte = 0x00
)

// Kind identifies a message variant.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindNoteOff
	KindNoteOn
	KindPolyKeyPressure
	KindControlChange
	KindProgramChange
	KindChannelPressure
	KindPitchBend
	KindSystemExclusive
	KindMTCQuarterFrame
	KindTimingClock
	KindStart
	KindContinue
	KindStop
)

var kindNames = map[Kind]string{
	KindUnknown:         "unknown",
	KindNoteOff:         "note_off",
	KindNoteOn:          "note_on",
	KindPolyKeyPressure: "poly_key_pressure",
	KindControlChange:   "control_change",
	KindProgramChange:   "program_change",
	KindChannelPressure: "channel_pressure",
	KindPitchBend:       "pitch_bend",
	KindSystemExclusive: "system_exclusive",
	KindMTCQuarterFrame: "mtc_quarter_frame",
	KindTimingClock:     "timing_clock",
	KindStart:           "start",
	KindContinue:        "continue",
	KindStop:            "stop",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Message is a decoded MIDI message.
type Message interface {
	Kind() Kind
	// Encode returns the wire bytes of the message. Channel messages without a
	// channel of their own are encoded on fallback; system messages ignore it.
	Encode(fallback Channel) ([]byte, error)
	String() string
}

// ChannelMessage is a Message scoped to one of the 16 channels.
type ChannelMessage interface {
	Message
	// Channel returns the message channel, or NoChannel when unset.
	Channel() Channel
	// OnChannel returns a copy of the message carrying ch.
	OnChannel(ch Channel) Message
}

// Bytes encodes m without a fallback channel.
func Bytes(m Message) ([]byte, error) {
	return m.Encode(NoChannel)
}

// Rechannel returns m moved to ch. Messages without a channel are returned unchanged.
func Rechannel(m Message, ch Channel) (Message, error) {
	cm, ok := m.(ChannelMessage)
	if !ok {
		return m, nil
	}
	if !ch.Valid() {
		return nil, &FieldError{Field: "channel", Value: int(ch), Min: 0, Max: int(MaxChannel)}
	}
	return cm.OnChannel(ch), nil
}

// Option configures a message constructor.
type Option func(*options)

type options struct {
	channel Channel
}

// WithChannel sets the channel of a channel message at construction.
func WithChannel(ch Channel) Option {
	return func(o *options) {
		o.channel = ch
	}
}

func buildOptions(opts []Option) (options, error) {
	o := options{channel: NoChannel}
	for _, opt := range opts {
		opt(&o)
	}
	if err := checkChannel(o.channel); err != nil {
		return o, err
	}
	return o, nil
}

// channelled is embedded by every channel variant.
type channelled struct {
	channel Channel
}

func (c channelled) Channel() Channel {
	return c.channel
}

// resolve picks the channel used on the wire.
func (c channelled) resolve(fallback Channel) (byte, error) {
	ch := c.channel
	if ch == NoChannel {
		ch = fallback
	}
	if ch == NoChannel {
		return 0, ErrNoChannel
	}
	if err := checkChannel(ch); err != nil {
		return 0, err
	}
	return byte(ch), nil
}
