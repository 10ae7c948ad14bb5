package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"F0 42 01 F7", []byte{0xF0, 0x42, 0x01, 0xF7}},
		{"0x90,0x30,0x7f", []byte{0x90, 0x30, 0x7F}},
		{"90307F", []byte{0x90, 0x30, 0x7F}},
		{"f8\n 0xA", []byte{0xF8, 0x0A}},
		{"", nil},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseHexInvalid(t *testing.T) {
	_, err := ParseHex("90 zz")
	assert.Error(t, err)
}

func TestFormatHex(t *testing.T) {
	assert.Equal(t, "F0 42 01 F7", FormatHex([]byte{0xF0, 0x42, 0x01, 0xF7}))
}
