package midi

import (
	"fmt"
	"strconv"
)

var noteOffsets = map[byte]int{
	'C': 0,
	'D': 2,
	'E': 4,
	'F': 5,
	'G': 7,
	'A': 9,
	'B': 11,
}

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteNumber resolves a note name such as "C4", "C#4" or "A-1" to a MIDI pitch.
// The octave follows the convention where C4 is 60.
func NoteNumber(name string) (uint8, error) {
	if len(name) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNoteName, name)
	}
	offset, ok := noteOffsets[name[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNoteName, name)
	}
	rest := name[1:]
	if rest[0] == '#' {
		offset++
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNoteName, name)
	}
	// bound the octave first so the arithmetic below cannot overflow
	if octave < -1 || octave > 9 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNoteName, name)
	}
	pitch := (octave+1)*12 + offset
	if pitch < 0 || pitch > 127 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNoteName, name)
	}
	return uint8(pitch), nil
}

// NoteName returns the sharp spelling of a pitch, e.g. 61 is "C#4".
func NoteName(pitch uint8) string {
	return sharpNames[int(pitch)%12] + strconv.Itoa(int(pitch)/12-1)
}
