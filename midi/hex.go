package midi

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ParseHex reads bytes written as hex, e.g. "F0 42 01 F7", "0x90,0x30,0x7f"
// or "90307F". Tokens are separated by spaces or commas.
func ParseHex(s string) ([]byte, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	var out []byte
	for _, f := range fields {
		f = strings.TrimPrefix(strings.TrimPrefix(f, "0x"), "0X")
		if len(f)%2 == 1 {
			f = "0" + f
		}
		b, err := hex.DecodeString(f)
		if err != nil {
			return nil, fmt.Errorf("bad hex %q: %w", f, err)
		}
		out = append(out, b...)
	}
	return out, nil
}

// FormatHex writes bytes as space separated upper case hex.
func FormatHex(b []byte) string {
	return fmt.Sprintf("% X", b)
}
