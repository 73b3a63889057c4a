package snippet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRender(t *testing.T) {
	out, err := Default().Render([]byte{0x00, 0xff})
	require.NoError(t, err)

	want := "--!optimize 2\n" +
		"local w = \"\\x00\\xff\"\n" +
		"return function()\n" +
		"    local b = buffer.create(2)\n" +
		"    buffer.writestring(b, 0, w, 2)\n" +
		"    return b\n" +
		"end"
	assert.Equal(t, want, out)
}

func TestDefaultRenderEmpty(t *testing.T) {
	out, err := Default().Render(nil)
	require.NoError(t, err)
	assert.Contains(t, out, "local w = \"\"\n")
	assert.Contains(t, out, "buffer.create(0)")
	assert.Contains(t, out, "buffer.writestring(b, 0, w, 0)")
}

func TestDefaultHasNoTrailingNewline(t *testing.T) {
	out, err := Default().Render([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "end", out[len(out)-3:])
}

func TestParseCustom(t *testing.T) {
	s, err := Parse("custom", "return {{.Literal}} -- {{.Length}} bytes\n")
	require.NoError(t, err)
	assert.Equal(t, "custom", s.Name())

	out, err := s.Render([]byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, "return \"\\x68\\x69\" -- 2 bytes\n", out)
}

func TestParseRejectsTemplateWithoutPlaceholders(t *testing.T) {
	_, err := Parse("static", "return nil")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither")
}

func TestParseRejectsPlaceholderNamesInPlainText(t *testing.T) {
	_, err := Parse("prose", "-- fill in .Literal and .Length by hand\nreturn nil")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither")
}

func TestParseAcceptsPlaceholderInsideBlocks(t *testing.T) {
	s, err := Parse("cond", "{{if true}}return {{.Literal}}{{else}}return nil{{end}}")
	require.NoError(t, err)
	out, err := s.Render([]byte{0x10})
	require.NoError(t, err)
	assert.Equal(t, `return "\x10"`, out)

	_, err = Parse("with", "{{with .Length}}n = {{.}}{{end}}")
	require.NoError(t, err)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("broken", "{{.Literal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing template broken")
}

func TestRenderUnknownField(t *testing.T) {
	s, err := Parse("typo", "{{.Literal}} {{.Size}}")
	require.NoError(t, err)
	_, err = s.Render([]byte{1})
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "default", s.Name())

	path := filepath.Join(t.TempDir(), "tmpl.luau")
	require.NoError(t, os.WriteFile(path, []byte("local n = {{.Length}}"), 0o644))
	s, err = Load(path)
	require.NoError(t, err)
	out, err := s.Render(make([]byte, 5))
	require.NoError(t, err)
	assert.Equal(t, "local n = 5", out)

	_, err = Load(filepath.Join(t.TempDir(), "missing.luau"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
