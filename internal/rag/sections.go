package rag

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// knownSections are the headings the prompt asks for, normalized.
var knownSections = []string{
	"key findings",
	"clinical implications",
	"critical analysis",
	"recommendations",
	"referenced papers",
}

var markdown = goldmark.New()

type sectionMark struct {
	heading string
	start   int    // offset of the line holding the heading
	bodyAt  int    // offset of the line after the heading
	lead    string // body text sharing the heading's line
}

// ParseSections splits a Markdown analysis into headed sections. Headings
// are ATX or setext headings, bold-only lines, or ordered list items that
// open with one of the requested section names. Text before the first
// heading is not part of any section.
func ParseSections(analysis string) []Section {
	src := []byte(analysis)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var marks []sectionMark
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if m, ok := headingMark(node, src); ok {
				marks = append(marks, m)
			}
		case *ast.Paragraph:
			if m, ok := boldLineMark(node, src); ok {
				marks = append(marks, m)
			}
		case *ast.List:
			if node.IsOrdered() {
				marks = append(marks, listMarks(node, src)...)
			}
		}
	}

	if len(marks) == 0 {
		return nil
	}

	sections := make([]Section, 0, len(marks))
	for i, m := range marks {
		end := len(src)
		if i+1 < len(marks) {
			end = marks[i+1].start
		}
		body := ""
		if m.bodyAt < end {
			body = stripSetextUnderline(string(src[m.bodyAt:end]))
		}
		body = strings.TrimSpace(body)
		if m.lead != "" {
			body = strings.TrimSpace(m.lead + "\n" + body)
		}
		sections = append(sections, Section{Heading: m.heading, Body: body})
	}
	return sections
}

func headingMark(h *ast.Heading, src []byte) (sectionMark, bool) {
	lines := h.Lines()
	if lines.Len() == 0 {
		return sectionMark{}, false
	}
	heading := cleanHeading(nodeText(h, src))
	if heading == "" {
		return sectionMark{}, false
	}
	return sectionMark{
		heading: heading,
		start:   lineStart(src, lines.At(0).Start),
		bodyAt:  nextLine(src, lines.At(lines.Len()-1).Stop),
	}, true
}

// boldLineMark treats a paragraph whose first line is only bold text as a
// heading. The rest of the paragraph becomes body.
func boldLineMark(p *ast.Paragraph, src []byte) (sectionMark, bool) {
	strong, ok := p.FirstChild().(*ast.Emphasis)
	if !ok || strong.Level != 2 || p.Lines().Len() == 0 {
		return sectionMark{}, false
	}
	stop := lastTextStop(strong)
	if stop < 0 {
		return sectionMark{}, false
	}
	rest := src[stop:lineEnd(src, stop)]
	if strings.Trim(string(rest), "*_: \t") != "" {
		return sectionMark{}, false
	}
	heading := cleanHeading(nodeText(strong, src))
	if heading == "" {
		return sectionMark{}, false
	}
	return sectionMark{
		heading: heading,
		start:   lineStart(src, p.Lines().At(0).Start),
		bodyAt:  nextLine(src, stop),
	}, true
}

// listMarks returns a mark for every item of an ordered list whose first
// line starts with a requested section name, as in "1. **Key Findings**: ...".
func listMarks(list *ast.List, src []byte) []sectionMark {
	var marks []sectionMark
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		first := item.FirstChild()
		if first == nil || first.Type() != ast.TypeBlock || first.Lines().Len() == 0 {
			continue
		}
		seg := first.Lines().At(0)
		line := string(src[seg.Start:lineEnd(src, seg.Start)])

		title, lead := splitItemLine(first, src, line)
		heading := cleanHeading(title)
		if !isKnownSection(heading) {
			continue
		}
		marks = append(marks, sectionMark{
			heading: heading,
			start:   lineStart(src, seg.Start),
			bodyAt:  nextLine(src, seg.Start),
			lead:    lead,
		})
	}
	return marks
}

// splitItemLine separates the title of a list item line from the text that
// follows it on the same line.
func splitItemLine(block ast.Node, src []byte, line string) (string, string) {
	if strong, ok := block.FirstChild().(*ast.Emphasis); ok && strong.Level == 2 {
		title := nodeText(strong, src)
		if stop := lastTextStop(strong); stop >= 0 {
			rest := src[stop:lineEnd(src, stop)]
			return title, strings.TrimSpace(strings.TrimLeft(string(rest), "*_: \t"))
		}
		return title, ""
	}
	if i := strings.Index(line, ":"); i >= 0 {
		return line[:i], strings.TrimSpace(line[i+1:])
	}
	return line, ""
}

func isKnownSection(heading string) bool {
	norm := normalizeHeading(heading)
	for _, name := range knownSections {
		if strings.HasPrefix(norm, name) {
			return true
		}
	}
	return false
}

// cleanHeading drops list numbering, emphasis markers and a trailing colon.
func cleanHeading(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*_ \t")
	if i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }); i > 0 && (s[i] == '.' || s[i] == ')') {
		s = s[i+1:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ":")
	return strings.TrimSpace(strings.Trim(s, "*_ \t"))
}

func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(src))
			if v.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// lastTextStop returns the end offset of the last text segment under n, or -1.
func lastTextStop(n ast.Node) int {
	stop := -1
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := node.(*ast.Text); ok && entering {
			stop = t.Segment.Stop
		}
		return ast.WalkContinue, nil
	})
	return stop
}

func stripSetextUnderline(body string) string {
	line, rest, found := strings.Cut(body, "\n")
	trimmed := strings.TrimSpace(line)
	if trimmed != "" && strings.Trim(trimmed, "=") == "" || trimmed != "" && strings.Trim(trimmed, "-") == "" {
		if !found {
			return ""
		}
		return rest
	}
	return body
}

func lineStart(src []byte, off int) int {
	return bytes.LastIndexByte(src[:off], '\n') + 1
}

func lineEnd(src []byte, off int) int {
	if i := bytes.IndexByte(src[off:], '\n'); i >= 0 {
		return off + i
	}
	return len(src)
}

func nextLine(src []byte, off int) int {
	end := lineEnd(src, off)
	if end < len(src) {
		return end + 1
	}
	return end
}
