package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// ToGomidi encodes m for sending through a gomidi driver.
func ToGomidi(m Message, fallback Channel) (gomidi.Message, error) {
	b, err := m.Encode(fallback)
	if err != nil {
		return nil, err
	}
	return gomidi.Message(b), nil
}

// FromGomidi decodes a single complete message delivered by a gomidi driver.
func (r *Registry) FromGomidi(msg gomidi.Message) (Message, error) {
	raw := []byte(msg)
	out := r.Parse(raw, AnyChannel)
	if out.Message == nil || out.Skipped != 0 || out.Consumed != len(raw) {
		return nil, fmt.Errorf("%w: % X", ErrIncomplete, raw)
	}
	return out.Message, nil
}
