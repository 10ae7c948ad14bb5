package router

import (
	"sync"

	"github.com/PixPMusic/gopher-midi/internal/config"
	"github.com/PixPMusic/gopher-midi/internal/log"
	"github.com/PixPMusic/gopher-midi/midi"
)

// Target receives forwarded messages
type Target interface {
	Send(msg midi.Message) error
}

// Router forwards input messages to a target according to configured routes.
// Every matching route forwards its own copy, so overlapping routes duplicate
// a message.
type Router struct {
	routes []config.Route
	target Target
	logger *log.Logger

	mu     sync.Mutex
	counts map[string]uint64
}

// New creates a router over routes
func New(routes []config.Route, target Target, logger *log.Logger) *Router {
	return &Router{
		routes: routes,
		target: target,
		logger: logger,
		counts: make(map[string]uint64, len(routes)),
	}
}

// Handle routes msg. Its signature matches port.Handler.
func (r *Router) Handle(portName string, msg midi.Message) {
	for _, route := range r.routes {
		if !Match(route, msg) {
			continue
		}
		if err := r.forward(route, msg); err != nil {
			r.logger.With(log.LogParams{
				"route":   route.Name,
				"message": msg.String(),
				"in_port": portName,
				"error":   err.Error(),
			}).Error("failed to forward message")
			continue
		}

		r.mu.Lock()
		r.counts[route.ID]++
		r.mu.Unlock()
	}
}

func (r *Router) forward(route config.Route, msg midi.Message) error {
	if route.OutChannel >= 0 {
		var err error
		msg, err = midi.Rechannel(msg, midi.Channel(route.OutChannel))
		if err != nil {
			return err
		}
	}
	return r.target.Send(msg)
}

// Counts returns how many messages each route has forwarded, keyed by route ID
func (r *Router) Counts() map[string]uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]uint64, len(r.counts))
	for id, n := range r.counts {
		out[id] = n
	}
	return out
}

// Match reports whether msg passes the route's type, channel and number filters
func Match(route config.Route, msg midi.Message) bool {
	switch route.MessageType {
	case "":
	case "note":
		if k := msg.Kind(); k != midi.KindNoteOn && k != midi.KindNoteOff {
			return false
		}
	default:
		if msg.Kind().String() != route.MessageType {
			return false
		}
	}

	if route.Channel >= 0 {
		cm, ok := msg.(midi.ChannelMessage)
		if !ok || int(cm.Channel()) != route.Channel {
			return false
		}
	}

	if route.Number >= 0 {
		n, ok := number(msg)
		if !ok || n != route.Number {
			return false
		}
	}
	return true
}

// number returns the note, controller or program a message addresses
func number(msg midi.Message) (int, bool) {
	switch m := msg.(type) {
	case midi.NoteOn:
		return int(m.Note), true
	case midi.NoteOff:
		return int(m.Note), true
	case midi.PolyKeyPressure:
		return int(m.Note), true
	case midi.ControlChange:
		return int(m.Control), true
	case midi.ProgramChange:
		return int(m.Program), true
	}
	return 0, false
}
