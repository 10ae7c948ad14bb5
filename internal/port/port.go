package port

import (
	"errors"
	"fmt"
	"sync"

	"github.com/PixPMusic/gopher-midi/internal/log"
	"github.com/PixPMusic/gopher-midi/midi"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver
)

// ErrPortNotFound is returned when no port has the requested name
var ErrPortNotFound = errors.New("port not found")

// Handler is called for every message decoded from an input port
type Handler func(portName string, msg midi.Message)

// Manager handles MIDI port discovery, input and output
type Manager struct {
	mu     sync.RWMutex
	logger *log.Logger
}

// NewManager creates a new port manager
func NewManager(logger *log.Logger) *Manager {
	return &Manager{logger: logger}
}

// Close cleans up the MIDI driver
func (m *Manager) Close() {
	gomidi.CloseDriver()
}

// ListInPorts returns the names of available MIDI input ports
func (m *Manager) ListInPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ins := gomidi.GetInPorts()
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names
}

// ListOutPorts returns the names of available MIDI output ports
func (m *Manager) ListOutPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	outs := gomidi.GetOutPorts()
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names
}

// GetInPort returns an input port by name
func (m *Manager) GetInPort(name string) (drivers.In, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, in := range gomidi.GetInPorts() {
		if in.String() == name {
			return in, nil
		}
	}
	return nil, fmt.Errorf("%w: input %q", ErrPortNotFound, name)
}

// GetOutPort returns an output port by name
func (m *Manager) GetOutPort(name string) (drivers.Out, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, out := range gomidi.GetOutPorts() {
		if out.String() == name {
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: output %q", ErrPortNotFound, name)
}

// Listen feeds everything arriving on the named input port into stream and
// calls handler for each message the stream yields. The returned function
// stops listening.
func (m *Manager) Listen(inPortName string, stream *midi.Stream, handler Handler) (func(), error) {
	inPort, err := m.GetInPort(inPortName)
	if err != nil {
		return nil, err
	}

	stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
		m.feed(inPortName, stream, msg.Bytes(), handler)
	}, gomidi.UseSysEx())
	if err != nil {
		return nil, fmt.Errorf("failed to start listening: %w", err)
	}

	m.logger.With(log.LogParams{
		"port":    inPortName,
		"channel": stream.Channel().String(),
	}).Info("listening")
	return stop, nil
}

// feed pushes raw bytes through the stream and dispatches what comes out
func (m *Manager) feed(portName string, stream *midi.Stream, data []byte, handler Handler) {
	_, _ = stream.Write(data)
	for _, msg := range stream.Drain() {
		if u, ok := msg.(midi.Unknown); ok {
			m.logger.With(log.LogParams{
				"port":   portName,
				"status": fmt.Sprintf("0x%02X", u.Status),
			}).Debug("unrecognised status")
		}
		handler(portName, msg)
	}
}

// Sender writes messages to one output port
type Sender struct {
	port     string
	fallback midi.Channel
	send     func(gomidi.Message) error
	logger   *log.Logger
}

// Sender opens the named output port. Channel messages without a channel are
// sent on fallback.
func (m *Manager) Sender(outPortName string, fallback midi.Channel) (*Sender, error) {
	outPort, err := m.GetOutPort(outPortName)
	if err != nil {
		return nil, err
	}

	send, err := gomidi.SendTo(outPort)
	if err != nil {
		return nil, fmt.Errorf("failed to create sender: %w", err)
	}
	return newSender(outPortName, fallback, send, m.logger), nil
}

func newSender(port string, fallback midi.Channel, send func(gomidi.Message) error, logger *log.Logger) *Sender {
	return &Sender{
		port:     port,
		fallback: fallback,
		send:     send,
		logger:   logger,
	}
}

// Send encodes msg and writes it to the port
func (s *Sender) Send(msg midi.Message) error {
	out, err := midi.ToGomidi(msg, s.fallback)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", msg, err)
	}
	if err := s.send(out); err != nil {
		return fmt.Errorf("failed to send to %s: %w", s.port, err)
	}
	s.logger.With(log.LogParams{
		"port":  s.port,
		"bytes": midi.FormatHex(out.Bytes()),
	}).Debug("sent")
	return nil
}

// Port returns the output port name
func (s *Sender) Port() string {
	return s.port
}
