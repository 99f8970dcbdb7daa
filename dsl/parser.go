package dsl

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	imuLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `<!--[\s\S]*?-->`},
		{Name: "ProcInst", Pattern: `<\?[\s\S]*?\?>`},
		{Name: "Doctype", Pattern: `<!DOCTYPE[^>]*>`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "EndOpen", Pattern: `</`},
		{Name: "SelfClose", Pattern: `/>`},
		{Name: "Punct", Pattern: `[<>=]`},
		{Name: "String", Pattern: `"[^"]*"|'[^']*'`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.:-]*`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(imuLexer),
		participle.Elide("Whitespace", "Comment", "ProcInst", "Doctype"),
	)

	entityReplacer = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
		"&amp;", "&",
	)
)

// Document is the root AST node for an imu layout file.
type Document struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Root *Element       `parser:"@@"`
}

// Element is a single markup element with its attributes and child elements.
// Whitespace-only text between elements is dropped by the lexer.
type Element struct {
	Pos         lexer.Position `parser:"" json:"-"`
	Name        string         `parser:"'<' @Ident"`
	Attributes  []*Attribute   `parser:"@@*"`
	SelfClosing bool           `parser:"( @'/>'"`
	Children    []*Element     `parser:"| '>' @@*"`
	Close       string         `parser:"'</' @Ident '>' )"`
}

// Attribute is a key="value" pair.
type Attribute struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident '='"`
	Value AttrValue      `parser:"@String"`
}

// AttrValue strips quotes and decodes the predefined XML entities on capture.
type AttrValue string

// Capture implements participle.Capture.
func (v *AttrValue) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("attribute value capture requires value")
	}
	raw := values[0]
	if len(raw) < 2 {
		return fmt.Errorf("malformed attribute value %s", raw)
	}
	*v = AttrValue(entityReplacer.Replace(raw[1 : len(raw)-1]))
	return nil
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return string(a.Value), true
		}
	}
	return "", false
}

// Parse parses imu markup from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	doc, err := documentParser.Parse("", r)
	if err != nil {
		return nil, err
	}
	if err := validate(doc.Root); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseString parses imu markup from a string.
func ParseString(input string) (*Document, error) {
	return Parse(strings.NewReader(input))
}

// validate checks what the grammar cannot express: matching end tags and unique attributes.
func validate(e *Element) error {
	if e == nil {
		return nil
	}
	if !e.SelfClosing && e.Close != e.Name {
		return participle.Errorf(e.Pos, "<%s> 的结束标签不匹配: </%s>", e.Name, e.Close)
	}
	seen := make(map[string]struct{}, len(e.Attributes))
	for _, a := range e.Attributes {
		if _, dup := seen[a.Key]; dup {
			return participle.Errorf(a.Pos, "<%s> 的属性 %s 重复", e.Name, a.Key)
		}
		seen[a.Key] = struct{}{}
	}
	for _, child := range e.Children {
		if err := validate(child); err != nil {
			return err
		}
	}
	return nil
}
