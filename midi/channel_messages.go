package midi

import "fmt"

// PitchBendCenter is the pitch bend value of an unbent wheel.
const PitchBendCenter = 8192

// Velocities for note messages built without an explicit one.
const (
	DefaultNoteOnVelocity  = 127
	DefaultNoteOffVelocity = 0
)

// NoteOff releases a note.
type NoteOff struct {
	channelled
	Note     uint8
	Velocity uint8
}

// NewNoteOff builds a Note Off from a pitch number.
func NewNoteOff(note, velocity int, opts ...Option) (NoteOff, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return NoteOff{}, err
	}
	if err := validateKey(note, "velocity", velocity); err != nil {
		return NoteOff{}, err
	}
	return NoteOff{channelled{o.channel}, uint8(note), uint8(velocity)}, nil
}

// NewNoteOffName builds a Note Off from a note name such as "C#4".
func NewNoteOffName(name string, velocity int, opts ...Option) (NoteOff, error) {
	note, err := NoteNumber(name)
	if err != nil {
		return NoteOff{}, err
	}
	return NewNoteOff(int(note), velocity, opts...)
}

func (m NoteOff) Kind() Kind { return KindNoteOff }

func (m NoteOff) OnChannel(ch Channel) Message {
	m.channel = ch
	return m
}

func (m NoteOff) Encode(fallback Channel) ([]byte, error) {
	return encodeKey(StatusNoteOff, m.channelled, fallback, m.Note, "velocity", m.Velocity)
}

func (m NoteOff) String() string {
	return fmt.Sprintf("NoteOff ch=%s note=%d(%s) velocity=%d", m.channel, m.Note, NoteName(m.Note), m.Velocity)
}

func decodeNoteOff(frame []byte) (Message, error) {
	if err := validateKey(int(frame[1]), "velocity", int(frame[2])); err != nil {
		return nil, err
	}
	return NoteOff{channelled{ChannelOf(frame[0])}, frame[1], frame[2]}, nil
}

// NoteOn starts a note. A velocity of zero is conventionally a release.
type NoteOn struct {
	channelled
	Note     uint8
	Velocity uint8
}

// NewNoteOn builds a Note On from a pitch number.
func NewNoteOn(note, velocity int, opts ...Option) (NoteOn, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return NoteOn{}, err
	}
	if err := validateKey(note, "velocity", velocity); err != nil {
		return NoteOn{}, err
	}
	return NoteOn{channelled{o.channel}, uint8(note), uint8(velocity)}, nil
}

// NewNoteOnName builds a Note On from a note name such as "C#4".
func NewNoteOnName(name string, velocity int, opts ...Option) (NoteOn, error) {
	note, err := NoteNumber(name)
	if err != nil {
		return NoteOn{}, err
	}
	return NewNoteOn(int(note), velocity, opts...)
}

func (m NoteOn) Kind() Kind { return KindNoteOn }

func (m NoteOn) OnChannel(ch Channel) Message {
	m.channel = ch
	return m
}

func (m NoteOn) Encode(fallback Channel) ([]byte, error) {
	return encodeKey(StatusNoteOn, m.channelled, fallback, m.Note, "velocity", m.Velocity)
}

func (m NoteOn) String() string {
	return fmt.Sprintf("NoteOn ch=%s note=%d(%s) velocity=%d", m.channel, m.Note, NoteName(m.Note), m.Velocity)
}

func decodeNoteOn(frame []byte) (Message, error) {
	if err := validateKey(int(frame[1]), "velocity", int(frame[2])); err != nil {
		return nil, err
	}
	return NoteOn{channelled{ChannelOf(frame[0])}, frame[1], frame[2]}, nil
}

// PolyKeyPressure is aftertouch on a single key.
type PolyKeyPressure struct {
	channelled
	Note     uint8
	Pressure uint8
}

// NewPolyKeyPressure builds a Polyphonic Key Pressure from a pitch number.
func NewPolyKeyPressure(note, pressure int, opts ...Option) (PolyKeyPressure, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return PolyKeyPressure{}, err
	}
	if err := validateKey(note, "pressure", pressure); err != nil {
		return PolyKeyPressure{}, err
	}
	return PolyKeyPressure{channelled{o.channel}, uint8(note), uint8(pressure)}, nil
}

// NewPolyKeyPressureName builds a Polyphonic Key Pressure from a note name.
func NewPolyKeyPressureName(name string, pressure int, opts ...Option) (PolyKeyPressure, error) {
	note, err := NoteNumber(name)
	if err != nil {
		return PolyKeyPressure{}, err
	}
	return NewPolyKeyPressure(int(note), pressure, opts...)
}

func (m PolyKeyPressure) Kind() Kind { return KindPolyKeyPressure }

func (m PolyKeyPressure) OnChannel(ch Channel) Message {
	m.channel = ch
	return m
}

func (m PolyKeyPressure) Encode(fallback Channel) ([]byte, error) {
	return encodeKey(StatusPolyKeyPressure, m.channelled, fallback, m.Note, "pressure", m.Pressure)
}

func (m PolyKeyPressure) String() string {
	return fmt.Sprintf("PolyKeyPressure ch=%s note=%d(%s) pressure=%d", m.channel, m.Note, NoteName(m.Note), m.Pressure)
}

func decodePolyKeyPressure(frame []byte) (Message, error) {
	if err := validateKey(int(frame[1]), "pressure", int(frame[2])); err != nil {
		return nil, err
	}
	return PolyKeyPressure{channelled{ChannelOf(frame[0])}, frame[1], frame[2]}, nil
}

// ControlChange sets a controller to a value.
type ControlChange struct {
	channelled
	Control uint8
	Value   uint8
}

// NewControlChange builds a Control Change.
func NewControlChange(control, value int, opts ...Option) (ControlChange, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return ControlChange{}, err
	}
	if err := check7("control", control); err != nil {
		return ControlChange{}, err
	}
	if err := check7("value", value); err != nil {
		return ControlChange{}, err
	}
	return ControlChange{channelled{o.channel}, uint8(control), uint8(value)}, nil
}

func (m ControlChange) Kind() Kind { return KindControlChange }

func (m ControlChange) OnChannel(ch Channel) Message {
	m.channel = ch
	return m
}

func (m ControlChange) Encode(fallback Channel) ([]byte, error) {
	ch, err := m.resolve(fallback)
	if err != nil {
		return nil, err
	}
	if err := check7("control", int(m.Control)); err != nil {
		return nil, err
	}
	if err := check7("value", int(m.Value)); err != nil {
		return nil, err
	}
	return []byte{StatusControlChange | ch, m.Control, m.Value}, nil
}

func (m ControlChange) String() string {
	return fmt.Sprintf("ControlChange ch=%s control=%d value=%d", m.channel, m.Control, m.Value)
}

func decodeControlChange(frame []byte) (Message, error) {
	if err := check7("control", int(frame[1])); err != nil {
		return nil, err
	}
	if err := check7("value", int(frame[2])); err != nil {
		return nil, err
	}
	return ControlChange{channelled{ChannelOf(frame[0])}, frame[1], frame[2]}, nil
}

// ProgramChange selects a patch.
type ProgramChange struct {
	channelled
	Program uint8
}

// NewProgramChange builds a Program Change.
func NewProgramChange(program int, opts ...Option) (ProgramChange, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return ProgramChange{}, err
	}
	if err := check7("program", program); err != nil {
		return ProgramChange{}, err
	}
	return ProgramChange{channelled{o.channel}, uint8(program)}, nil
}

func (m ProgramChange) Kind() Kind { return KindProgramChange }

func (m ProgramChange) OnChannel(ch Channel) Message {
	m.channel = ch
	return m
}

func (m ProgramChange) Encode(fallback Channel) ([]byte, error) {
	ch, err := m.resolve(fallback)
	if err != nil {
		return nil, err
	}
	if err := check7("program", int(m.Program)); err != nil {
		return nil, err
	}
	return []byte{StatusProgramChange | ch, m.Program}, nil
}

func (m ProgramChange) String() string {
	return fmt.Sprintf("ProgramChange ch=%s program=%d", m.channel, m.Program)
}

func decodeProgramChange(frame []byte) (Message, error) {
	if err := check7("program", int(frame[1])); err != nil {
		return nil, err
	}
	return ProgramChange{channelled{ChannelOf(frame[0])}, frame[1]}, nil
}

// ChannelPressure is aftertouch applied to the whole channel.
type ChannelPressure struct {
	channelled
	Pressure uint8
}

// NewChannelPressure builds a Channel Pressure.
func NewChannelPressure(pressure int, opts ...Option) (ChannelPressure, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return ChannelPressure{}, err
	}
	if err := check7("pressure", pressure); err != nil {
		return ChannelPressure{}, err
	}
	return ChannelPressure{channelled{o.channel}, uint8(pressure)}, nil
}

func (m ChannelPressure) Kind() Kind { return KindChannelPressure }

func (m ChannelPressure) OnChannel(ch Channel) Message {
	m.channel = ch
	return m
}

func (m ChannelPressure) Encode(fallback Channel) ([]byte, error) {
	ch, err := m.resolve(fallback)
	if err != nil {
		return nil, err
	}
	if err := check7("pressure", int(m.Pressure)); err != nil {
		return nil, err
	}
	return []byte{StatusChannelPressure | ch, m.Pressure}, nil
}

func (m ChannelPressure) String() string {
	return fmt.Sprintf("ChannelPressure ch=%s pressure=%d", m.channel, m.Pressure)
}

func decodeChannelPressure(frame []byte) (Message, error) {
	if err := check7("pressure", int(frame[1])); err != nil {
		return nil, err
	}
	return ChannelPressure{channelled{ChannelOf(frame[0])}, frame[1]}, nil
}

// PitchBend carries a 14-bit bend value, 8192 being the center.
type PitchBend struct {
	channelled
	Value uint16
}

// NewPitchBend builds a Pitch Bend from a value in 0-16383.
func NewPitchBend(value int, opts ...Option) (PitchBend, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return PitchBend{}, err
	}
	if err := checkRange("value", value, 0, 0x3FFF); err != nil {
		return PitchBend{}, err
	}
	return PitchBend{channelled{o.channel}, uint16(value)}, nil
}

func (m PitchBend) Kind() Kind { return KindPitchBend }

func (m PitchBend) OnChannel(ch Channel) Message {
	m.channel = ch
	return m
}

// Encode splits the value into the low and high 7 bits, low first.
func (m PitchBend) Encode(fallback Channel) ([]byte, error) {
	ch, err := m.resolve(fallback)
	if err != nil {
		return nil, err
	}
	if err := checkRange("value", int(m.Value), 0, 0x3FFF); err != nil {
		return nil, err
	}
	return []byte{StatusPitchBend | ch, byte(m.Value & 0x7F), byte(m.Value >> 7)}, nil
}

func (m PitchBend) String() string {
	return fmt.Sprintf("PitchBend ch=%s value=%d", m.channel, m.Value)
}

func decodePitchBend(frame []byte) (Message, error) {
	if err := check7("value lsb", int(frame[1])); err != nil {
		return nil, err
	}
	if err := check7("value msb", int(frame[2])); err != nil {
		return nil, err
	}
	return PitchBend{channelled{ChannelOf(frame[0])}, uint16(frame[2])<<7 | uint16(frame[1])}, nil
}

func validateKey(note int, field string, value int) error {
	if err := check7("note", note); err != nil {
		return err
	}
	return check7(field, value)
}

// encodeKey encodes the three byte note-addressed messages.
func encodeKey(status byte, c channelled, fallback Channel, note uint8, field string, value uint8) ([]byte, error) {
	ch, err := c.resolve(fallback)
	if err != nil {
		return nil, err
	}
	if err := validateKey(int(note), field, int(value)); err != nil {
		return nil, err
	}
	return []byte{status | ch, note, value}, nil
}
