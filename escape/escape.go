// Package escape renders raw bytes as a double-quoted string literal made
// of fixed-width \xNN escapes, and parses such literals back.
package escape

import (
	"fmt"
)

const hexDigits = "0123456789abcdef"

// Literal returns b as a quoted literal with one lowercase \xNN escape per
// byte. The result is always 4*len(b)+2 bytes long.
func Literal(b []byte) string {
	buf := make([]byte, 0, Len(len(b)))
	buf = append(buf, '"')
	for _, c := range b {
		buf = append(buf, '\\', 'x', hexDigits[c>>4], hexDigits[c&0x0f])
	}
	buf = append(buf, '"')
	return string(buf)
}

// Len returns the length of the literal Literal produces for n bytes.
func Len(n int) int { return 4*n + 2 }

// Decode parses a literal in the form Literal produces. Both hex cases are
// accepted; anything else is an error.
func Decode(lit string) ([]byte, error) {
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return nil, fmt.Errorf("escaped literal must be enclosed in double quotes")
	}
	body := lit[1 : len(lit)-1]
	if len(body)%4 != 0 {
		return nil, fmt.Errorf("escaped literal has %d body bytes, not a multiple of 4", len(body))
	}
	out := make([]byte, len(body)/4)
	for i := 0; i < len(body); i += 4 {
		if body[i] != '\\' || body[i+1] != 'x' {
			return nil, fmt.Errorf("offset %d: expected \\x escape, got %q", i+1, body[i:i+2])
		}
		hi, ok1 := unhex(body[i+2])
		lo, ok2 := unhex(body[i+3])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("offset %d: invalid hex digits %q", i+3, body[i+2:i+4])
		}
		out[i/4] = hi<<4 | lo
	}
	return out, nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
