package blog

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

type Rendered struct {
	HTML     template.HTML
	Contents []Heading
}

// Render converts the post body to HTML and collects its headings for the
// table of contents.
func Render(p Post) (Rendered, error) {
	src := []byte(p.Content)
	pctx := parser.NewContext(parser.WithIDs(newSlugIDs()))
	doc := markdown.Parser().Parse(text.NewReader(src), parser.WithContext(pctx))

	var toc []Heading
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		var id string
		if v, ok := h.AttributeString("id"); ok {
			if b, ok := v.([]byte); ok {
				id = string(b)
			}
		}
		toc = append(toc, Heading{ID: id, Text: string(h.Text(src)), Level: h.Level})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return Rendered{}, err
	}

	var buf bytes.Buffer
	if err := markdown.Renderer().Render(&buf, src, doc); err != nil {
		return Rendered{}, fmt.Errorf("render %s: %w", p.ID, err)
	}
	return Rendered{HTML: template.HTML(buf.String()), Contents: toc}, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and joins alphanumeric runs with dashes.
func Slug(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// slugIDs generates heading anchors with Slug, suffixing repeats.
type slugIDs struct {
	seen map[string]int
}

func newSlugIDs() *slugIDs {
	return &slugIDs{seen: make(map[string]int)}
}

func (s *slugIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	base := Slug(string(value))
	if base == "" {
		base = "section"
	}
	id := base
	if n := s.seen[base]; n > 0 {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	s.seen[base]++
	return []byte(id)
}

func (s *slugIDs) Put(value []byte) {
	s.seen[string(value)]++
}
