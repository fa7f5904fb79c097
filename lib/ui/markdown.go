// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// The goldmark parser configuration never changes and the parser is
// safe to share; build it once.
var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownParser
}

// renderMarkdown renders a listing description as styled terminal text.
// Sellers paste free-form text; treating it as markdown gives sensible
// output for both plain prose (paragraphs reflow to the terminal width)
// and formatted descriptions with headings, lists, and emphasis.
func renderMarkdown(input string, theme Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))

	// Force an ANSI256 profile so output is styled even without a TTY
	// on stderr. lipgloss re-detects from the environment unless the
	// profile is set explicitly on the renderer.
	lip := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lip.SetColorProfile(termenv.ANSI256)

	renderer := &markdownRenderer{source: source, theme: theme, width: width, lip: lip}
	ast.Walk(document, renderer.walk)
	return strings.TrimRight(renderer.output.String(), "\n")
}

// markdownRenderer walks the goldmark AST directly. Paragraph inline
// content accumulates in a buffer and is word-wrapped as a unit when
// the paragraph closes; goldmark's streaming renderer interface doesn't
// fit that accumulate-then-wrap shape.
type markdownRenderer struct {
	source []byte
	theme  Theme
	width  int
	lip    *lipgloss.Renderer

	output strings.Builder
	inline strings.Builder

	// indent is the hanging indent inside list items; indentStack
	// remembers each level's width so leaving an item pops exactly what
	// entering pushed.
	indent      string
	indentStack []int

	// pendingBullet replaces the indent on the next emitted line, then
	// clears. Carries the list item bullet or ordinal.
	pendingBullet string

	// listCounters holds the next ordinal per open list, innermost
	// last; zero marks a bullet list.
	listCounters []int

	bold   int
	italic int
	strike int
}

func (r *markdownRenderer) style() lipgloss.Style {
	return r.lip.NewStyle()
}

func (r *markdownRenderer) contentWidth() int {
	width := r.width - len(r.indent)
	if width < 10 {
		width = 10
	}
	return width
}

// flushInline word-wraps the accumulated inline text and writes it out
// under the current indent. The first line takes the pending bullet
// when one is set.
func (r *markdownRenderer) flushInline() {
	content := r.inline.String()
	r.inline.Reset()
	if content == "" {
		return
	}
	wrapped := ansi.Wrap(content, r.contentWidth(), " ,.;-")
	for i, line := range strings.Split(wrapped, "\n") {
		prefix := r.indent
		if i == 0 && r.pendingBullet != "" {
			prefix = r.pendingBullet
			r.pendingBullet = ""
		}
		r.output.WriteString(prefix + line + "\n")
	}
}

func (r *markdownRenderer) blankLine() {
	if !strings.HasSuffix(r.output.String(), "\n\n") {
		r.output.WriteString("\n")
	}
}

func (r *markdownRenderer) styledText(content string) string {
	style := r.style().Foreground(r.theme.NormalText)
	if r.bold > 0 {
		style = style.Bold(true)
	}
	if r.italic > 0 {
		style = style.Italic(true)
	}
	if r.strike > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

func (r *markdownRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		if entering {
			r.inline.Reset()
		} else {
			r.flushInline()
			if _, inListItem := node.Parent().(*ast.ListItem); !inListItem {
				r.blankLine()
			}
		}

	case *ast.Heading:
		if entering {
			r.inline.Reset()
		} else {
			content := ansi.Strip(r.inline.String())
			r.inline.Reset()
			if content != "" {
				heading := r.style().Bold(true).Foreground(r.theme.Accent).Render(content)
				r.output.WriteString(heading + "\n")
				r.blankLine()
			}
		}

	case *ast.FencedCodeBlock:
		if entering {
			r.writeCodeBlock(blockText(node, r.source), string(node.Language(r.source)))
			return ast.WalkSkipChildren, nil
		}

	case *ast.CodeBlock:
		if entering {
			r.writeCodeBlock(blockText(node, r.source), "")
			return ast.WalkSkipChildren, nil
		}

	case *ast.List:
		if entering {
			start := 0
			if node.IsOrdered() {
				start = node.Start
			}
			r.listCounters = append(r.listCounters, start)
		} else {
			r.listCounters = r.listCounters[:len(r.listCounters)-1]
			if len(r.listCounters) == 0 {
				r.blankLine()
			}
		}

	case *ast.ListItem:
		if entering {
			bullet := "• "
			if n := len(r.listCounters); n > 0 && r.listCounters[n-1] > 0 {
				bullet = fmt.Sprintf("%d. ", r.listCounters[n-1])
				r.listCounters[n-1]++
			}
			width := ansi.StringWidth(bullet)
			r.pendingBullet = r.indent + r.style().Foreground(r.theme.Accent).Render(bullet)
			r.indentStack = append(r.indentStack, width)
			r.indent += strings.Repeat(" ", width)
		} else if n := len(r.indentStack); n > 0 {
			width := r.indentStack[n-1]
			r.indentStack = r.indentStack[:n-1]
			r.indent = r.indent[:len(r.indent)-width]
		}

	case *ast.ThematicBreak:
		if entering {
			rule := r.style().Foreground(r.theme.BorderColor).Render(strings.Repeat("─", r.contentWidth()))
			r.output.WriteString(rule + "\n")
			r.blankLine()
		}

	case *ast.Text:
		if entering {
			r.inline.WriteString(r.styledText(string(node.Segment.Value(r.source))))
			if node.SoftLineBreak() {
				// Soft breaks reflow: hard-wrapped source joins into one
				// paragraph and wraps at the terminal width instead.
				r.inline.WriteString(" ")
			}
			if node.HardLineBreak() {
				r.inline.WriteString("\n")
			}
		}

	case *ast.String:
		if entering {
			r.inline.WriteString(r.styledText(string(node.Value)))
		}

	case *ast.Emphasis:
		if node.Level >= 2 {
			r.bold += delta(entering)
		} else {
			r.italic += delta(entering)
		}

	case *ast.CodeSpan:
		if entering {
			r.inline.WriteString(r.style().Foreground(r.theme.Secondary).Render(spanText(node, r.source)))
			return ast.WalkSkipChildren, nil
		}

	case *ast.Link:
		if !entering {
			if url := string(node.Destination); url != "" {
				r.inline.WriteString(" " + r.style().Foreground(r.theme.FaintText).Render("("+url+")"))
			}
		}

	case *ast.AutoLink:
		if entering {
			url := string(node.URL(r.source))
			r.inline.WriteString(r.style().Foreground(r.theme.FaintText).Render(url))
		}

	case *extast.Strikethrough:
		r.strike += delta(entering)
	}

	return ast.WalkContinue, nil
}

// writeCodeBlock highlights a fenced block with chroma when a language
// is named, and falls back to faint text otherwise.
func (r *markdownRenderer) writeCodeBlock(code, language string) {
	highlighted := ""
	if language != "" {
		var buffer strings.Builder
		if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err == nil {
			highlighted = buffer.String()
		}
	}
	if highlighted == "" {
		highlighted = r.style().Foreground(r.theme.FaintText).Render(code)
	}
	for _, line := range strings.Split(strings.TrimRight(highlighted, "\n"), "\n") {
		r.output.WriteString(r.indent + "  " + line + "\n")
	}
	r.blankLine()
}

func blockText(node ast.Node, source []byte) string {
	var out strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		out.Write(segment.Value(source))
	}
	return out.String()
}

func spanText(node ast.Node, source []byte) string {
	var out strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			out.Write(child.Segment.Value(source))
		case *ast.String:
			out.Write(child.Value)
		}
	}
	return out.String()
}

func delta(entering bool) int {
	if entering {
		return 1
	}
	return -1
}
