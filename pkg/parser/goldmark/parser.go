// Package goldmark hosts the dollar math scanners inside the goldmark
// Markdown parser and renders the resulting nodes to HTML.
package goldmark

import (
	"context"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdmath/pkg/dollarmath"
	"github.com/yaklabco/mdmath/pkg/source"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser parses Markdown with dollar math. A Parser is safe for concurrent
// use; every Parse call gets its own goldmark context.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string, opts ...Option) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f, NewExtension(opts...)),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Document is a parsed Markdown file.
type Document struct {
	// Snapshot is the source the document was parsed from.
	Snapshot *source.Snapshot

	// Root is the goldmark AST.
	Root ast.Node

	// Math holds every math token in source order.
	Math []dollarmath.Token

	// Unclosed holds `$$` lines that found no closing line.
	Unclosed []source.Range

	// Empty holds `$$` lines that closed around nothing, e.g. `$$$$`.
	Empty []source.Range
}

// Parse converts raw Markdown bytes into a Document.
// Returns nil and an error if the context is cancelled.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := source.NewSnapshot(path, content)

	pc := parser.NewContext()
	pc.Set(linesKey, snapshot.Lines)
	root := p.md.Parser().Parse(text.NewReader(snapshot.Content), parser.WithContext(pc))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	return &Document{
		Snapshot: snapshot,
		Root:     root,
		Math:     collectMath(root),
		Unclosed: UnclosedBlocks(pc),
		Empty:    EmptyBlocks(pc),
	}, nil
}

// Render writes the document as HTML.
func (p *Parser) Render(w io.Writer, doc *Document) error {
	if err := p.md.Renderer().Render(w, doc.Snapshot.Content, doc.Root); err != nil {
		return fmt.Errorf("render %s: %w", doc.Snapshot.Path, err)
	}
	return nil
}

// collectMath walks the tree in document order and gathers math tokens.
func collectMath(root ast.Node) []dollarmath.Token {
	var tokens []dollarmath.Token
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *MathBlock:
			tokens = append(tokens, node.Token)
			return ast.WalkSkipChildren, nil
		case *MathInline:
			tokens = append(tokens, node.Token)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return tokens
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string, math goldmark.Extender) goldmark.Markdown {
	exts := []goldmark.Extender{math}
	if flavor == FlavorGFM {
		exts = append(exts, extension.GFM)
	}
	return goldmark.New(goldmark.WithExtensions(exts...))
}
