package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/wasmbed/snippet"
)

func TestInspectDefaultSnippet(t *testing.T) {
	_, in := writeInput(t, []byte{0x00, 0x61, 0x73, 0x6d})
	text, err := (&Converter{Input: in}).Emit()
	require.NoError(t, err)

	emb, err := Inspect(text)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x00asm"), emb.Data)
	assert.Equal(t, 4, emb.Length)
	assert.Equal(t, 2, emb.Line)
}

func TestInspectErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"no literal", "local b = buffer.create(0)", "no string literal"},
		{"bad literal", "local w = \"abcd\"\nbuffer.create(1)", "line 1"},
		{"no create", `local w = "\x00"`, "buffer.create("},
		{"bad length", "local w = \"\\x00\"\nbuffer.create(n)", "invalid buffer length"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Inspect(tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	dir, in := writeInput(t, []byte("\x00asm\x01\x00\x00\x00\xff"))
	out := filepath.Join(dir, "dummy.luau")
	_, err := (&Converter{Input: in, Output: out}).Run()
	require.NoError(t, err)

	emb, err := Verify(out, in)
	require.NoError(t, err)
	assert.Equal(t, 9, emb.Length)
}

func TestVerifyTamperedLength(t *testing.T) {
	dir, in := writeInput(t, []byte{1, 2})
	out := filepath.Join(dir, "dummy.luau")
	_, err := (&Converter{Input: in, Output: out}).Run()
	require.NoError(t, err)

	src, err := os.ReadFile(out)
	require.NoError(t, err)
	tampered := strings.Replace(string(src), "buffer.create(2)", "buffer.create(3)", 1)
	require.NoError(t, os.WriteFile(out, []byte(tampered), 0o644))

	_, err = Verify(out, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length field is 3 but literal holds 2 bytes")
}

func TestVerifyDifferentInput(t *testing.T) {
	dir, in := writeInput(t, []byte{1, 2})
	out := filepath.Join(dir, "dummy.luau")
	_, err := (&Converter{Input: in, Output: out}).Run()
	require.NoError(t, err)

	other := filepath.Join(dir, "other.wasm")
	require.NoError(t, os.WriteFile(other, []byte{1, 3}, 0o644))

	_, err = Verify(out, other)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "differ")
}

func TestVerifyMissingFile(t *testing.T) {
	_, err := Verify(filepath.Join(t.TempDir(), "nope.luau"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInspectSkipsUnrelatedLiterals(t *testing.T) {
	s, err := snippet.Parse("named", "local name = \"mod\"\nlocal w = {{.Literal}}\nlocal b = buffer.create({{.Length}})\n")
	require.NoError(t, err)
	text, err := s.Render([]byte{0xde, 0xad})
	require.NoError(t, err)

	emb, err := Inspect(text)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad}, emb.Data)
	assert.Equal(t, 2, emb.Length)
	assert.Equal(t, 2, emb.Line)
}

func TestVerifyCustomTemplateOutput(t *testing.T) {
	dir, in := writeInput(t, []byte("\x00asm"))
	out := filepath.Join(dir, "named.luau")
	s, err := snippet.Parse("named", "local name = \"mod\"\nlocal w = {{.Literal}}\nreturn buffer.create({{.Length}}), w\n")
	require.NoError(t, err)
	_, err = (&Converter{Input: in, Output: out, Snippet: s}).Run()
	require.NoError(t, err)

	emb, err := Verify(out, in)
	require.NoError(t, err)
	assert.Equal(t, 4, emb.Length)
}
