package midi

// Outcome is the result of one Parse call.
type Outcome struct {
	// Message is the decoded message, or nil when none is available yet.
	Message Message
	// Consumed is how many leading bytes the caller must drop from its buffer.
	// Zero means more input is needed before anything can be decided.
	Consumed int
	// Skipped counts the junk data bytes before the first status byte that
	// are included in Consumed.
	Skipped int
}

// Parse looks for the next complete message on channel want in buf. Messages
// on other channels are dropped and scanning continues after them. Parse never
// keeps a reference to buf.
//
// The caller drops buf[:Consumed] and calls Parse again until Consumed is 0.
func (r *Registry) Parse(buf []byte, want Channel) Outcome {
	var out Outcome

	start := 0
	leading := true
	for {
		// Running status is not supported, so data bytes ahead of a status byte are junk.
		junk := 0
		for start < len(buf) && buf[start]&statusBit == 0 {
			start++
			junk++
		}
		if leading {
			out.Skipped = junk
			leading = false
		}
		if start >= len(buf) {
			return out.wait()
		}

		status := buf[start]
		d, ok := r.Lookup(status)
		if !ok {
			out.Message = Unknown{Status: status}
			out.Consumed = start + 1
			return out
		}

		if d.Length == Variable {
			return r.parseExclusive(buf, start, d, out)
		}

		end := start + d.Length
		if end > len(buf) {
			return out.wait()
		}
		frame := buf[start:end]

		// A status byte inside the data means the frame was cut short. Emit the
		// status on its own and leave the interrupting byte for the next call.
		if hasStatus(frame[1:]) {
			out.Message = Unknown{Status: status}
			out.Consumed = start + 1
			return out
		}

		if d.Channel && want != AnyChannel && ChannelOf(status) != want {
			out.Consumed = end
			start = end
			continue
		}

		msg, err := d.Decode(frame)
		if err != nil {
			out.Message = Unknown{Status: status}
			out.Consumed = start + 1
			return out
		}
		out.Message = msg
		out.Consumed = end
		return out
	}
}

// parseExclusive frames a variable length message starting at buf[start].
func (r *Registry) parseExclusive(buf []byte, start int, d Descriptor, out Outcome) Outcome {
	for i := start + 1; i < len(buf); i++ {
		b := buf[i]
		if b&statusBit == 0 {
			continue
		}
		if b != StatusEndOfExclusive {
			// malformed: drop the frame together with the offending status byte
			out.Message = nil
			out.Consumed = i + 1
			return out
		}

		msg, err := d.Decode(buf[start : i+1])
		if err != nil {
			out.Message = Unknown{Status: buf[start]}
			out.Consumed = start + 1
			return out
		}
		out.Message = msg
		out.Consumed = i + 1
		return out
	}
	return out.wait()
}

// wait turns out into a "need more data" result. Bytes of messages already
// filtered in this call stay consumed; pending junk is left for the next call.
func (out Outcome) wait() Outcome {
	out.Message = nil
	if out.Consumed == 0 {
		out.Skipped = 0
	}
	return out
}

func hasStatus(data []byte) bool {
	for _, b := range data {
		if b&statusBit != 0 {
			return true
		}
	}
	return false
}

// Parse runs DefaultRegistry.Parse.
func Parse(buf []byte, want Channel) Outcome {
	return DefaultRegistry.Parse(buf, want)
}
