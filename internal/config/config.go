package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PixPMusic/gopher-midi/midi"
	"github.com/google/uuid"
)

// DefaultMonitorAddr is where the monitor API listens when enabled without an address
const DefaultMonitorAddr = "127.0.0.1:7074"

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// LogConfig stores the config for logging
type LogConfig struct {
	// Path of the log file, empty logs to stderr
	Path string `json:"path"`
	// Format is "json" or "text"
	Format string `json:"format"`
	// Level is one of panic|fatal|error|warn|info|debug|trace
	Level string `json:"level"`
}

// Route forwards matching input messages to the output port
type Route struct {
	ID          string `json:"id"`
	Name        string `json:"name"`         // User-friendly description
	MessageType string `json:"message_type"` // Kind name such as "note_on", "note" for on and off, or "" for all
	Channel     int    `json:"channel"`      // 0-15, or -1 for any channel
	Number      int    `json:"number"`       // Note/CC/program number (0-127), or -1 for any
	OutChannel  int    `json:"out_channel"`  // 0-15 to rechannel, or -1 to keep the input channel
}

// NewRoute creates a route matching everything with a generated ID
func NewRoute() Route {
	return Route{
		ID:          uuid.New().String(),
		Name:        "New Route",
		MessageType: "",
		Channel:     -1,
		Number:      -1,
		OutChannel:  -1,
	}
}

// Config holds application configuration
type Config struct {
	InPort      string    `json:"in_port"`      // MIDI input port name
	OutPort     string    `json:"out_port"`     // MIDI output port name
	Channel     int       `json:"channel"`      // Input channel 0-15, or -1 for any
	OutChannel  int       `json:"out_channel"`  // Channel for outgoing messages without one
	MaxBuffer   int       `json:"max_buffer"`   // Bytes an incomplete frame may hold, 0 for unbounded
	Types       []string  `json:"types"`        // Registered message types, empty for all
	Routes      []Route   `json:"routes"`       // Forwarding rules applied by listen
	MonitorAddr string    `json:"monitor_addr"` // Monitor API address, empty disables it
	HistorySize int       `json:"history_size"` // Messages kept for the monitor
	Log         LogConfig `json:"log"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Channel:     0,
		OutChannel:  0,
		MaxBuffer:   1024,
		Types:       []string{},
		Routes:      []Route{},
		HistorySize: 256,
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// configDir returns the platform-appropriate config directory
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "gopher-midi"), nil
}

// ConfigPath returns the full path to the default config file
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config at path, or at ConfigPath when path is empty.
// A missing file yields the defaults; fields present in the file override them.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Ensure slices are not nil
	if cfg.Types == nil {
		cfg.Types = []string{}
	}
	if cfg.Routes == nil {
		cfg.Routes = []Route{}
	}
	return cfg, cfg.Validate()
}

// Save writes the config to path, or to ConfigPath when path is empty
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks channels, numbers and type names
func (c *Config) Validate() error {
	if err := checkChannel("channel", c.Channel, true); err != nil {
		return err
	}
	if err := checkChannel("out_channel", c.OutChannel, false); err != nil {
		return err
	}
	if c.MaxBuffer < 0 {
		return fmt.Errorf("%w: max_buffer %d is negative", ErrInvalidConfig, c.MaxBuffer)
	}
	if c.HistorySize < 0 {
		return fmt.Errorf("%w: history_size %d is negative", ErrInvalidConfig, c.HistorySize)
	}
	for _, name := range c.Types {
		if _, ok := midi.TypeByName(name); !ok {
			return fmt.Errorf("%w: unknown message type %q", ErrInvalidConfig, name)
		}
	}
	for _, r := range c.Routes {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("route %q: %w", r.Name, err)
		}
	}
	return nil
}

// Validate checks the route's fields
func (r Route) Validate() error {
	switch r.MessageType {
	case "", "note":
	default:
		if _, ok := midi.TypeByName(r.MessageType); !ok {
			return fmt.Errorf("%w: unknown message type %q", ErrInvalidConfig, r.MessageType)
		}
	}
	if err := checkChannel("channel", r.Channel, true); err != nil {
		return err
	}
	if err := checkChannel("out_channel", r.OutChannel, true); err != nil {
		return err
	}
	if r.Number < -1 || r.Number > 127 {
		return fmt.Errorf("%w: number %d", ErrInvalidConfig, r.Number)
	}
	return nil
}

// Registry builds a message type registry holding the configured types, or all
// built-in types when none are listed.
func (c *Config) Registry() (*midi.Registry, error) {
	descs := midi.AllTypes()
	if len(c.Types) > 0 {
		descs = make([]midi.Descriptor, 0, len(c.Types))
		for _, name := range c.Types {
			d, ok := midi.TypeByName(name)
			if !ok {
				return nil, fmt.Errorf("%w: unknown message type %q", ErrInvalidConfig, name)
			}
			descs = append(descs, d)
		}
	}
	r := midi.NewRegistry()
	if err := r.Register(descs...); err != nil {
		return nil, err
	}
	return r, nil
}

// AddRoute adds a new route to the config
func (c *Config) AddRoute(route Route) {
	c.Routes = append(c.Routes, route)
}

// RemoveRoute removes a route by ID
func (c *Config) RemoveRoute(id string) {
	for i, r := range c.Routes {
		if r.ID == id {
			c.Routes = append(c.Routes[:i], c.Routes[i+1:]...)
			return
		}
	}
}

// GetRoute returns a route by ID, or nil if not found
func (c *Config) GetRoute(id string) *Route {
	for i := range c.Routes {
		if c.Routes[i].ID == id {
			return &c.Routes[i]
		}
	}
	return nil
}

func checkChannel(field string, ch int, allowAny bool) error {
	if allowAny && ch == -1 {
		return nil
	}
	if ch < 0 || ch > int(midi.MaxChannel) {
		return fmt.Errorf("%w: %s %d", ErrInvalidConfig, field, ch)
	}
	return nil
}
