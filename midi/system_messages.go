package midi

import "fmt"

// TimingClock is sent 24 times per quarter note.
type TimingClock struct{}

func (TimingClock) Kind() Kind { return KindTimingClock }
func (TimingClock) Encode(Channel) ([]byte, error) { return []byte{StatusTimingClock}, nil }
func (TimingClock) String() string { return "TimingClock" }
func decodeTimingClock([]byte) (Message, error) { return TimingClock{}, nil }

// Start starts playback from the beginning.
type Start struct{}

func (Start) Kind() Kind { return KindStart }
func (Start) Encode(Channel) ([]byte, error) { return []byte{StatusStart}, nil }
func (Start) String() string { return "Start" }
func decodeStart([]byte) (Message, error) { return Start{}, nil }

// Continue resumes playback from the current position.
type Continue struct{}

func (Continue) Kind() Kind { return KindContinue }
func (Continue) Encode(Channel) ([]byte, error) { return []byte{StatusContinue}, nil }
func (Continue) String() string { return "Continue" }
func decodeContinue([]byte) (Message, error) { return Continue{}, nil }

// Stop stops playback.
type Stop struct{}

func (Stop) Kind() Kind { return KindStop }
func (Stop) Encode(Channel) ([]byte, error) { return []byte{StatusStop}, nil }
func (Stop) String() string { return "Stop" }
func decodeStop([]byte) (Message, error) { return Stop{}, nil }

// MTCQuarterFrame carries one nibble of a MIDI time code position.
type MTCQuarterFrame struct {
	// Type selects which piece of the time code is carried, 0-7.
	Type uint8
	// Value is the nibble itself, 0-15.
	Value uint8
}

// NewMTCQuarterFrame builds a quarter frame message.
func NewMTCQuarterFrame(typ, value int) (MTCQuarterFrame, error) {
	if err := checkRange("type", typ, 0, 7); err != nil {
		return MTCQuarterFrame{}, err
	}
	if err := checkRange("value", value, 0, 15); err != nil {
		return MTCQuarterFrame{}, err
	}
	return MTCQuarterFrame{Type: uint8(typ), Value: uint8(value)}, nil
}

func (m MTCQuarterFrame) Kind() Kind { return KindMTCQuarterFrame }

func (m MTCQuarterFrame) Encode(Channel) ([]byte, error) {
	if err := checkRange("type", int(m.Type), 0, 7); err != nil {
		return nil, err
	}
	if err := checkRange("value", int(m.Value), 0, 15); err != nil {
		return nil, err
	}
	return []byte{StatusMTCQuarterFrame, m.Type<<4 | m.Value}, nil
}

func (m MTCQuarterFrame) String() string {
	return fmt.Sprintf("MTCQuarterFrame type=%d value=%d", m.Type, m.Value)
}

func decodeMTCQuarterFrame(frame []byte) (Message, error) {
	if err := check7("data", int(frame[1])); err != nil {
		return nil, err
	}
	return MTCQuarterFrame{Type: frame[1] >> 4, Value: frame[1] & 0x0F}, nil
}

// SystemExclusive is a manufacturer specific message framed by 0xF0 and 0xF7.
type SystemExclusive struct {
	// ManufacturerID is one byte, or three bytes starting with 0x00.
	ManufacturerID []byte
	Data           []byte
}

// NewSystemExclusive builds a sysex message. The slices are copied.
func NewSystemExclusive(manufacturerID, data []byte) (SystemExclusive, error) {
	m := SystemExclusive{
		ManufacturerID: append([]byte(nil), manufacturerID...),
		Data:           append([]byte(nil), data...),
	}
	if err := m.validate(); err != nil {
		return SystemExclusive{}, err
	}
	return m, nil
}

func (m SystemExclusive) validate() error {
	switch {
	case len(m.ManufacturerID) == 1 && m.ManufacturerID[0] != manufacturerExtendedID:
	case len(m.ManufacturerID) == 3 && m.ManufacturerID[0] == manufacturerExtendedID:
	default:
		return &FieldError{
			Field:  "manufacturer id length",
			Value:  len(m.ManufacturerID),
			Reason: "must be one non-zero byte or three bytes starting with 0x00",
		}
	}
	for _, b := range m.ManufacturerID {
		if err := check7("manufacturer id", int(b)); err != nil {
			return err
		}
	}
	for _, b := range m.Data {
		if err := check7("data", int(b)); err != nil {
			return err
		}
	}
	return nil
}

func (m SystemExclusive) Kind() Kind { return KindSystemExclusive }

func (m SystemExclusive) Encode(Channel) ([]byte, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(m.ManufacturerID)+len(m.Data)+2)
	out = append(out, StatusSystemExclusive)
	out = append(out, m.ManufacturerID...)
	out = append(out, m.Data...)
	return append(out, StatusEndOfExclusive), nil
}

func (m SystemExclusive) String() string {
	return fmt.Sprintf("SystemExclusive manufacturer=% X data=% X", m.ManufacturerID, m.Data)
}

// decodeSystemExclusive decodes a full frame including both delimiters.
func decodeSystemExclusive(frame []byte) (Message, error) {
	payload := frame[1 : len(frame)-1]
	idLen := 1
	if len(payload) > 0 && payload[0] == manufacturerExtendedID {
		idLen = 3
	}
	if len(payload) < idLen {
		return nil, &FieldError{
			Field:  "payload length",
			Value:  len(payload),
			Reason: "too short for a manufacturer id",
		}
	}
	m := SystemExclusive{
		ManufacturerID: append([]byte(nil), payload[:idLen]...),
		Data:           append([]byte(nil), payload[idLen:]...),
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Unknown stands in for a status byte no registered type matched, or for a
// frame that could not be decoded.
type Unknown struct {
	Status byte
}

func (m Unknown) Kind() Kind { return KindUnknown }
func (m Unknown) Encode(Channel) ([]byte, error) { return []byte{m.Status}, nil }
func (m Unknown) String() string { return fmt.Sprintf("Unknown status=0x%02X", m.Status) }
