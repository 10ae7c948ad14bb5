package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PixPMusic/gopher-midi/midi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"in_port": "Launchpad",
		"channel": -1,
		"types": ["note_on", "note_off"],
		"log": {"level": "debug"}
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Launchpad", cfg.InPort)
	assert.Equal(t, -1, cfg.Channel)
	assert.Equal(t, []string{"note_on", "note_off"}, cfg.Types)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset nested fields keep defaults")
	assert.Equal(t, 1024, cfg.MaxBuffer)
	assert.NotNil(t, cfg.Routes)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad json":      `{"channel":`,
		"channel":       `{"channel": 16}`,
		"out channel":   `{"out_channel": -1}`,
		"type":          `{"types": ["note"]}`,
		"max buffer":    `{"max_buffer": -5}`,
		"route channel": `{"routes": [{"name": "r", "channel": 20}]}`,
		"route number":  `{"routes": [{"name": "r", "channel": -1, "out_channel": -1, "number": 128}]}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.OutPort = "IAC Bus 1"
	route := NewRoute()
	route.MessageType = "note"
	route.OutChannel = 9
	cfg.AddRoute(route)
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	require.NotNil(t, loaded.GetRoute(route.ID))
	assert.Equal(t, 9, loaded.GetRoute(route.ID).OutChannel)
}

func TestRoutes(t *testing.T) {
	cfg := Default()
	a, b := NewRoute(), NewRoute()
	assert.NotEqual(t, a.ID, b.ID)

	cfg.AddRoute(a)
	cfg.AddRoute(b)
	cfg.RemoveRoute(a.ID)
	assert.Nil(t, cfg.GetRoute(a.ID))
	assert.NotNil(t, cfg.GetRoute(b.ID))
	assert.Len(t, cfg.Routes, 1)
}

func TestRouteValidate(t *testing.T) {
	r := NewRoute()
	assert.NoError(t, r.Validate())

	r.MessageType = "pitch_bend"
	assert.NoError(t, r.Validate())

	r.MessageType = "wobble"
	assert.ErrorIs(t, r.Validate(), ErrInvalidConfig)
}

func TestRegistry(t *testing.T) {
	cfg := Default()
	r, err := cfg.Registry()
	require.NoError(t, err)
	assert.Len(t, r.Types(), len(midi.AllTypes()))

	cfg.Types = []string{"control_change"}
	r, err = cfg.Registry()
	require.NoError(t, err)
	_, ok := r.Lookup(midi.StatusControlChange | 3)
	assert.True(t, ok)
	_, ok = r.Lookup(midi.StatusNoteOn)
	assert.False(t, ok)

	cfg.Types = []string{"nope"}
	_, err = cfg.Registry()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
