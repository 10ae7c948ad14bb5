package midi

import (
	"fmt"
	"sort"
	"sync"
)

// Variable marks a descriptor whose frame is closed by StatusEndOfExclusive
// rather than having a fixed length.
const Variable = -1

// Descriptor tells the parser how to frame and decode one message type.
type Descriptor struct {
	Kind Kind
	// Status is the status byte, with the channel nibble clear for channel types.
	Status byte
	// Channel reports whether the low nibble of the status carries a channel.
	Channel bool
	// Length is the wire length including the status byte, or Variable.
	Length int
	// Decode builds a message from a complete frame starting at the status byte.
	Decode func(frame []byte) (Message, error)
}

// Built-in message types. Register the ones an application needs, or call RegisterAll.
var (
	NoteOffType         = Descriptor{KindNoteOff, StatusNoteOff, true, 3, decodeNoteOff}
	NoteOnType          = Descriptor{KindNoteOn, StatusNoteOn, true, 3, decodeNoteOn}
	PolyKeyPressureType = Descriptor{KindPolyKeyPressure, StatusPolyKeyPressure, true, 3, decodePolyKeyPressure}
	ControlChangeType   = Descriptor{KindControlChange, StatusControlChange, true, 3, decodeControlChange}
	ProgramChangeType   = Descriptor{KindProgramChange, StatusProgramChange, true, 2, decodeProgramChange}
	ChannelPressureType = Descriptor{KindChannelPressure, StatusChannelPressure, true, 2, decodeChannelPressure}
	PitchBendType       = Descriptor{KindPitchBend, StatusPitchBend, true, 3, decodePitchBend}
	SystemExclusiveType = Descriptor{KindSystemExclusive, StatusSystemExclusive, false, Variable, decodeSystemExclusive}
	MTCQuarterFrameType = Descriptor{KindMTCQuarterFrame, StatusMTCQuarterFrame, false, 2, decodeMTCQuarterFrame}
	TimingClockType     = Descriptor{KindTimingClock, StatusTimingClock, false, 1, decodeTimingClock}
	StartType           = Descriptor{KindStart, StatusStart, false, 1, decodeStart}
	ContinueType        = Descriptor{KindContinue, StatusContinue, false, 1, decodeContinue}
	StopType            = Descriptor{KindStop, StatusStop, false, 1, decodeStop}
)

// AllTypes lists every built-in message type.
func AllTypes() []Descriptor {
	return []Descriptor{
		NoteOffType,
		NoteOnType,
		PolyKeyPressureType,
		ControlChangeType,
		ProgramChangeType,
		ChannelPressureType,
		PitchBendType,
		SystemExclusiveType,
		MTCQuarterFrameType,
		TimingClockType,
		StartType,
		ContinueType,
		StopType,
	}
}

// TypeByName returns the built-in type whose Kind has the given name, e.g. "note_on".
func TypeByName(name string) (Descriptor, bool) {
	for _, d := range AllTypes() {
		if d.Kind.String() == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

func (d Descriptor) validate() error {
	switch {
	case d.Decode == nil:
		return fmt.Errorf("%w: %s has no decoder", ErrInvalidDescriptor, d.Kind)
	case d.Status&statusBit == 0:
		return fmt.Errorf("%w: %s status 0x%02X is a data byte", ErrInvalidDescriptor, d.Kind, d.Status)
	case d.Status == StatusEndOfExclusive:
		return fmt.Errorf("%w: %s cannot use the end of exclusive status", ErrInvalidDescriptor, d.Kind)
	case d.Channel && (d.Status >= firstSystemStatus || d.Status&0x0F != 0):
		return fmt.Errorf("%w: %s status 0x%02X is not a channel status", ErrInvalidDescriptor, d.Kind, d.Status)
	case !d.Channel && d.Status < firstSystemStatus:
		return fmt.Errorf("%w: %s status 0x%02X needs a channel", ErrInvalidDescriptor, d.Kind, d.Status)
	case d.Length != Variable && d.Length < 1:
		return fmt.Errorf("%w: %s length %d", ErrInvalidDescriptor, d.Kind, d.Length)
	}
	return nil
}

// Registry maps status bytes to message types. It is filled once at startup
// and read by Parse afterwards; registering while another goroutine parses is
// safe but changes what that parse recognises.
type Registry struct {
	mu    sync.RWMutex
	types map[byte]Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[byte]Descriptor),
	}
}

// Register adds message types. Registering the same type twice is a no-op;
// registering a different type under a taken status fails with ErrTypeConflict.
func (r *Registry) Register(descs ...Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range descs {
		if err := d.validate(); err != nil {
			return err
		}
		if have, ok := r.types[d.Status]; ok {
			if have.Kind != d.Kind || have.Length != d.Length || have.Channel != d.Channel {
				return fmt.Errorf("%w: 0x%02X is %s, not %s", ErrTypeConflict, d.Status, have.Kind, d.Kind)
			}
			continue
		}
		r.types[d.Status] = d
	}
	return nil
}

// Lookup finds the type for a status byte. Channel statuses are matched with
// their channel nibble masked off, system statuses exactly.
func (r *Registry) Lookup(status byte) (Descriptor, bool) {
	if status&statusBit == 0 {
		return Descriptor{}, false
	}
	key := status
	if status < firstSystemStatus {
		key = status & statusChannelMask
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.types[key]
	return d, ok
}

// Types returns the registered types ordered by status.
func (r *Registry) Types() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.types))
	for _, d := range r.types {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out
}

// DefaultRegistry is the process wide registry used by the package level functions.
var DefaultRegistry = NewRegistry()

// Register adds message types to DefaultRegistry.
func Register(descs ...Descriptor) error {
	return DefaultRegistry.Register(descs...)
}

// RegisterAll adds every built-in type to DefaultRegistry.
func RegisterAll() error {
	return DefaultRegistry.Register(AllTypes()...)
}
