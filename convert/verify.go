package convert

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rubiojr/wasmbed/escape"
	"github.com/rubiojr/wasmbed/scanner"
)

const lengthCall = "buffer.create("

// Embedded is the payload recovered from a generated snippet.
type Embedded struct {
	Data   []byte
	Length int // value passed to buffer.create
	Line   int // line of the escaped literal
}

// Inspect extracts the first literal that decodes as an escaped payload,
// plus the buffer.create length, from generated Luau source. Other string
// literals a template may contain are skipped.
func Inspect(src string) (*Embedded, error) {
	lits := scanner.DoubleQuoted(src)
	if len(lits) == 0 {
		return nil, fmt.Errorf("no string literal found")
	}
	var (
		data     []byte
		line     int
		firstErr error
	)
	for _, lit := range lits {
		d, err := escape.Decode(lit.Text)
		if err == nil {
			data, line = d, lit.Line
			break
		}
		if firstErr == nil {
			firstErr = fmt.Errorf("line %d: %w", lit.Line, err)
		}
	}
	if line == 0 {
		return nil, firstErr
	}

	pos := scanner.FindInCode(src, lengthCall)
	if pos < 0 {
		return nil, fmt.Errorf("no %s...) call found", lengthCall)
	}
	rest := src[pos+len(lengthCall):]
	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return nil, fmt.Errorf("unterminated %s...) call", lengthCall)
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest[:end]))
	if err != nil {
		return nil, fmt.Errorf("invalid buffer length %q", rest[:end])
	}
	return &Embedded{Data: data, Length: n, Line: line}, nil
}

// Verify checks that the snippet at path is self-consistent and, when input
// is non-empty, that it embeds exactly the bytes of input.
func Verify(path, input string) (*Embedded, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	emb, err := Inspect(string(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if emb.Length != len(emb.Data) {
		return emb, fmt.Errorf("%s: length field is %d but literal holds %d bytes", path, emb.Length, len(emb.Data))
	}
	if input == "" {
		return emb, nil
	}
	want, err := os.ReadFile(input)
	if err != nil {
		return emb, &IOError{Op: "read", Path: input, Err: err}
	}
	if !bytes.Equal(want, emb.Data) {
		return emb, fmt.Errorf("%s: embedded bytes differ from %s", path, input)
	}
	return emb, nil
}
