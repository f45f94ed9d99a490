// Package casebook reads analyzer test cases out of Markdown documents.
//
// A case starts at any heading of the form "Case: <name>" and collects the
// fenced code blocks that follow it until the next case heading:
//
//	## Case: widening on assignment
//	```pminus
//	real r;
//	r = 1;
//	```
//	```errors
//	```
//	```tree
//	L1: Decl: r
//	L2: Assign to: r
//	  L2: Conversion: integer to real
//	    L2: Const: 1
//	```
//
// The pminus fence is required. An errors fence lists one "Linha n: msg"
// diagnostic per line and may be empty. A tree fence holds the adjusted tree
// dump and a symbols fence holds "name type offset size sim|nao" rows.
package casebook

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type FenceType string

const (
	FenceSource  FenceType = "pminus"
	FenceErrors  FenceType = "errors"
	FenceTree    FenceType = "tree"
	FenceSymbols FenceType = "symbols"
)

const casePrefix = "Case: "

// Assertion is one expectation fence of a case.
type Assertion struct {
	Type    FenceType
	Content string
}

type Case struct {
	Name       string
	Line       int // line of the heading in the document
	Source     string
	Assertions []Assertion

	hasSource bool
}

// Extract parses a Markdown document and returns its cases in document order.
func Extract(markdown string) ([]Case, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []Case
	var current *Case
	finish := func() error {
		if current == nil {
			return nil
		}
		if !current.hasSource {
			return fmt.Errorf("case '%s' has no %s fence", current.Name, FenceSource)
		}
		if len(current.Assertions) == 0 {
			return fmt.Errorf("case '%s' has no assertion fences", current.Name)
		}
		cases = append(cases, *current)
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Heading:
			heading := headingText(n, source)
			if !strings.HasPrefix(heading, casePrefix) {
				return ast.WalkSkipChildren, nil
			}
			if err := finish(); err != nil {
				return ast.WalkStop, err
			}
			current = &Case{
				Name: strings.TrimSpace(strings.TrimPrefix(heading, casePrefix)),
				Line: lineOf(n, source),
			}
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			lang := FenceType(n.Language(source))
			line := lineOf(n, source)
			if current == nil {
				if lang != "" {
					return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of a case", line, lang)
				}
				return ast.WalkContinue, nil
			}
			content := fenceContent(n, source)
			switch lang {
			case FenceSource:
				if current.hasSource {
					return ast.WalkStop, fmt.Errorf("line %d: multiple %s fences in case '%s'", line, lang, current.Name)
				}
				current.Source = content
				current.hasSource = true
			case FenceErrors, FenceTree, FenceSymbols:
				current.Assertions = append(current.Assertions, Assertion{
					Type:    lang,
					Content: strings.TrimRight(content, "\n"),
				})
			case "":
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in case '%s'", line, lang, current.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return cases, nil
}

func headingText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

func lineOf(node ast.Node, source []byte) int {
	start := -1
	if fence, ok := node.(*ast.FencedCodeBlock); ok && fence.Info != nil {
		start = fence.Info.Segment.Start
	} else if node.Lines().Len() > 0 {
		start = node.Lines().At(0).Start
	}
	if start < 0 {
		return 0
	}
	return bytes.Count(source[:start], []byte("\n")) + 1
}
