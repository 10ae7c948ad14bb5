package midi

import "strconv"

// Channel is a MIDI channel in the range 0-15.
type Channel int8

const (
	// NoChannel marks a channel message built without a channel. The channel is
	// then supplied when the message is encoded.
	NoChannel Channel = -1
	// AnyChannel makes Parse return channel messages on every channel.
	AnyChannel Channel = -1
	// MaxChannel is the highest valid channel.
	MaxChannel Channel = 15
)

// Valid reports whether c is a real channel (0-15).
func (c Channel) Valid() bool {
	return c >= 0 && c <= MaxChannel
}

func (c Channel) String() string {
	if !c.Valid() {
		return "-"
	}
	return strconv.Itoa(int(c))
}

// ChannelOf returns the channel carried in the low nibble of a channel status byte.
func ChannelOf(status byte) Channel {
	return Channel(status & 0x0F)
}

// ParseChannel converts a user supplied number to a Channel. It accepts 0-15,
// and -1 for NoChannel or AnyChannel. The range is checked before narrowing.
func ParseChannel(n int) (Channel, error) {
	if n == int(AnyChannel) {
		return AnyChannel, nil
	}
	if err := checkRange("channel", n, 0, int(MaxChannel)); err != nil {
		return NoChannel, err
	}
	return Channel(n), nil
}

func checkChannel(c Channel) error {
	if c == NoChannel {
		return nil
	}
	return checkRange("channel", int(c), 0, int(MaxChannel))
}
