// Package snippet renders the Luau source that embeds an escaped binary.
//
// A snippet is a text/template with two substitution points: {{.Literal}}
// receives the quoted escaped literal and {{.Length}} the byte count. Both
// are inserted verbatim.
package snippet

import (
	"fmt"
	"os"
	"strings"
	"text/template"
	"text/template/parse"

	"github.com/rubiojr/wasmbed/escape"
)

// DefaultText is the built-in Luau snippet. The optimize directive targets
// the Roblox/Luau compiler; the literal is copied into a fresh buffer on
// every call so callers can mutate the result.
const DefaultText = `--!optimize 2
local w = {{.Literal}}
return function()
    local b = buffer.create({{.Length}})
    buffer.writestring(b, 0, w, {{.Length}})
    return b
end`

// Data is the value a snippet template is executed with.
type Data struct {
	Literal string
	Length  int
}

// Snippet is a parsed template.
type Snippet struct {
	name string
	tmpl *template.Template
}

// Default returns the built-in Luau snippet.
func Default() *Snippet {
	s, err := Parse("default", DefaultText)
	if err != nil {
		panic("snippet: default template: " + err.Error())
	}
	return s
}

// Parse compiles text into a Snippet. Templates that use neither
// placeholder are rejected since they would discard the input.
func Parse(name, text string) (*Snippet, error) {
	t, err := template.New(name).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	if t.Tree == nil || !usesPlaceholder(t.Tree.Root) {
		return nil, fmt.Errorf("template %s: uses neither {{.Literal}} nor {{.Length}}", name)
	}
	return &Snippet{name: name, tmpl: t}, nil
}

// usesPlaceholder reports whether any action under n references the
// Literal or Length field.
func usesPlaceholder(n parse.Node) bool {
	switch n := n.(type) {
	case *parse.ListNode:
		if n == nil {
			return false
		}
		for _, c := range n.Nodes {
			if usesPlaceholder(c) {
				return true
			}
		}
	case *parse.ActionNode:
		return usesPlaceholder(n.Pipe)
	case *parse.PipeNode:
		if n == nil {
			return false
		}
		for _, c := range n.Cmds {
			if usesPlaceholder(c) {
				return true
			}
		}
	case *parse.CommandNode:
		for _, a := range n.Args {
			if usesPlaceholder(a) {
				return true
			}
		}
	case *parse.FieldNode:
		return len(n.Ident) > 0 && (n.Ident[0] == "Literal" || n.Ident[0] == "Length")
	case *parse.IfNode:
		return usesBranch(&n.BranchNode)
	case *parse.RangeNode:
		return usesBranch(&n.BranchNode)
	case *parse.WithNode:
		return usesBranch(&n.BranchNode)
	case *parse.TemplateNode:
		return usesPlaceholder(n.Pipe)
	}
	return false
}

func usesBranch(b *parse.BranchNode) bool {
	return usesPlaceholder(b.Pipe) || usesPlaceholder(b.List) || usesPlaceholder(b.ElseList)
}

// Load reads a template file. An empty path yields the default snippet.
func Load(path string) (*Snippet, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	return Parse(path, string(data))
}

// Name returns the template name ("default" for the built-in snippet).
func (s *Snippet) Name() string { return s.name }

// Render fills the template with the escaped literal of data and its length.
func (s *Snippet) Render(data []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(DefaultText) + escape.Len(len(data)))
	d := Data{Literal: escape.Literal(data), Length: len(data)}
	if err := s.tmpl.Execute(&sb, d); err != nil {
		return "", fmt.Errorf("rendering template %s: %w", s.name, err)
	}
	return sb.String(), nil
}
