package midi

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNoteName is returned when a note name does not resolve to a pitch in 0-127
	ErrInvalidNoteName = errors.New("invalid note name")
	// ErrFieldOutOfRange is returned when a message field is outside its legal range
	ErrFieldOutOfRange = errors.New("field out of range")
	// ErrNoChannel is returned when a channel message is encoded without any channel
	ErrNoChannel = errors.New("channel message has no channel")
	// ErrTypeConflict is returned when a status is already registered to a different message type
	ErrTypeConflict = errors.New("status already registered to another message type")
	// ErrInvalidDescriptor is returned when registering a malformed descriptor
	ErrInvalidDescriptor = errors.New("invalid message type descriptor")
	// ErrIncomplete is returned when bytes do not hold exactly one complete message
	ErrIncomplete = errors.New("incomplete message")
)

// FieldError describes a message field holding a value outside its legal range.
type FieldError struct {
	Field string
	Value int
	Min   int
	Max   int
	// Reason replaces the range in the error text when the constraint is not a plain range.
	Reason string
}

func (e *FieldError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %d: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s %d out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// Unwrap lets errors.Is match ErrFieldOutOfRange.
func (e *FieldError) Unwrap() error {
	return ErrFieldOutOfRange
}

func checkRange(field string, value, min, max int) error {
	if value < min || value > max {
		return &FieldError{Field: field, Value: value, Min: min, Max: max}
	}
	return nil
}

// check7 validates a 7-bit data value.
func check7(field string, value int) error {
	return checkRange(field, value, 0, 127)
}
