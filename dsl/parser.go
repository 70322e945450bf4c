package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)(?:px|pt)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;,]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	layoutParser = participle.MustBuild[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document is the root AST node of a layout file.
type Document struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    string         `parser:"Newline* 'layout' @Ident"`
	Entries []*Entry       `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}' Newline*"`
}

// Entry is a canvas-level property or a region block.
type Entry struct {
	Region     *Region     `parser:"  @@"`
	Assignment *Assignment `parser:"| @@"`
}

// Region describes one text block.
type Region struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    string         `parser:"'region' @Ident"`
	Entries []*Assignment  `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Assignment uses colon syntax (key: value [value...]).
type Assignment struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Key    string         `parser:"@Ident ':'"`
	Values []*Value       `parser:"@@ ( ','? @@ )*"`
}

// Value is a single property value.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Ident  *string        `parser:"| @Ident"`
}

// Text returns the value as written, with strings unquoted.
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// Text joins all values of the assignment with single spaces.
func (a *Assignment) Text() string {
	parts := make([]string, 0, len(a.Values))
	for _, v := range a.Values {
		parts = append(parts, v.Text())
	}
	return strings.Join(parts, " ")
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a layout file from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return layoutParser.Parse("", r)
}

// ParseString parses a layout file from a string.
func ParseString(input string) (*Document, error) {
	return layoutParser.ParseString("", input)
}

// Properties returns the canvas-level assignments in file order.
func (d *Document) Properties() []*Assignment {
	var out []*Assignment
	for _, e := range d.Entries {
		if e.Assignment != nil {
			out = append(out, e.Assignment)
		}
	}
	return out
}

// Regions returns the region blocks in file order.
func (d *Document) Regions() []*Region {
	var out []*Region
	for _, e := range d.Entries {
		if e.Region != nil {
			out = append(out, e.Region)
		}
	}
	return out
}
