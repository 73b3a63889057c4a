// Package convert turns a binary file into a Luau snippet that embeds it.
package convert

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rubiojr/wasmbed/logging"
	"github.com/rubiojr/wasmbed/snippet"
)

const (
	// DefaultInput is the binary read when no input is configured.
	DefaultInput = "dummy.wasm"
	// DefaultOutput is the snippet written when no output is configured.
	DefaultOutput = "dummy.luau"
)

// IOError reports a failed read of the input or write of the output.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	err := e.Err
	var pe *fs.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Converter holds the paths and template for one conversion.
// Zero-valued fields fall back to the defaults.
type Converter struct {
	Input   string
	Output  string
	Snippet *snippet.Snippet
	Log     *logging.Logger
}

// Result describes a completed conversion.
type Result struct {
	Input  string
	Output string
	Bytes  int
}

// Emit reads the whole input file and returns the rendered snippet.
func (c *Converter) Emit() (string, error) {
	text, _, err := c.render()
	return text, err
}

// Run renders the input and writes it to the output file, replacing any
// previous content. The input is read in full before the output is opened,
// so a failed read leaves the output untouched.
func (c *Converter) Run() (*Result, error) {
	text, n, err := c.render()
	if err != nil {
		return nil, err
	}
	out := c.output()
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		return nil, &IOError{Op: "write", Path: out, Err: err}
	}
	c.Log.Infof("wrote %s (%d bytes from %s)", c.Log.Bold(out), n, c.input())
	return &Result{Input: c.input(), Output: out, Bytes: n}, nil
}

func (c *Converter) render() (string, int, error) {
	in := c.input()
	data, err := os.ReadFile(in)
	if err != nil {
		return "", 0, &IOError{Op: "read", Path: in, Err: err}
	}
	s := c.Snippet
	if s == nil {
		s = snippet.Default()
	}
	text, err := s.Render(data)
	if err != nil {
		return "", 0, err
	}
	return text, len(data), nil
}

func (c *Converter) input() string {
	if c.Input == "" {
		return DefaultInput
	}
	return c.Input
}

func (c *Converter) output() string {
	if c.Output == "" {
		return DefaultOutput
	}
	return c.Output
}
