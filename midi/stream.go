package midi

import "sync"

// Stats counts what a Stream has seen.
type Stats struct {
	Received uint64 `json:"received"`
	Messages uint64 `json:"messages"`
	Unknown  uint64 `json:"unknown"`
	Skipped  uint64 `json:"skipped"`
	Dropped  uint64 `json:"dropped"`
	Buffered int    `json:"buffered"`
}

// Stream accumulates bytes from a transport and hands out decoded messages
// for one channel. It is safe for concurrent use.
type Stream struct {
	mu sync.Mutex

	registry  *Registry
	channel   Channel
	maxBuffer int
	buf       []byte
	stats     Stats

	// lastStatus is the status of the last channel message returned. It is
	// recorded for running status support and not used for parsing yet.
	lastStatus byte
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithRegistry makes the stream parse with r instead of DefaultRegistry.
func WithRegistry(r *Registry) StreamOption {
	return func(s *Stream) {
		s.registry = r
	}
}

// WithMaxBuffer bounds how many bytes may wait on an incomplete frame. When a
// stalled frame holds more than n bytes it is dropped. Zero means unbounded.
func WithMaxBuffer(n int) StreamOption {
	return func(s *Stream) {
		if n < 0 {
			n = 0
		}
		s.maxBuffer = n
	}
}

// NewStream returns a stream returning messages on channel, or on every
// channel for AnyChannel.
func NewStream(channel Channel, opts ...StreamOption) *Stream {
	s := &Stream{
		registry: DefaultRegistry,
		channel:  channel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Write appends p to the stream buffer. It never fails.
func (s *Stream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf = append(s.buf, p...)
	s.stats.Received += uint64(len(p))
	return len(p), nil
}

// Next returns the next message, or false when more bytes are needed.
func (s *Stream) Next() (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		out := s.registry.Parse(s.buf, s.channel)
		if out.Consumed == 0 {
			if s.maxBuffer > 0 && len(s.buf) > s.maxBuffer {
				s.dropStalled()
				continue
			}
			return nil, false
		}

		s.buf = s.buf[out.Consumed:]
		s.stats.Skipped += uint64(out.Skipped)
		if out.Message == nil {
			continue
		}

		s.stats.Messages++
		switch m := out.Message.(type) {
		case Unknown:
			s.stats.Unknown++
		case ChannelMessage:
			if b, err := m.Encode(NoChannel); err == nil {
				s.lastStatus = b[0]
			}
		}
		return out.Message, true
	}
}

// Drain returns every message currently available.
func (s *Stream) Drain() []Message {
	var msgs []Message
	for {
		msg, ok := s.Next()
		if !ok {
			return msgs
		}
		msgs = append(msgs, msg)
	}
}

// dropStalled discards the frame blocking the head of the buffer, up to the
// next status byte. A buffer holding no further status byte is cleared.
func (s *Stream) dropStalled() {
	n := len(s.buf)
	for i := 1; i < len(s.buf); i++ {
		if s.buf[i]&statusBit != 0 {
			n = i
			break
		}
	}
	s.buf = s.buf[n:]
	s.stats.Dropped += uint64(n)
}

// Buffered returns how many bytes are waiting.
func (s *Stream) Buffered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buf)
}

// Stats returns a snapshot of the counters.
func (s *Stream) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stats
	st.Buffered = len(s.buf)
	return st
}

// Channel returns the channel the stream filters on.
func (s *Stream) Channel() Channel {
	return s.channel
}

// LastStatus returns the status byte of the last channel message returned,
// or 0 before any.
func (s *Stream) LastStatus() byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStatus
}

// Reset discards buffered bytes and the running status.
func (s *Stream) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = nil
	s.lastStatus = 0
}
