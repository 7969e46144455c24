package intro

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"docintro/pkg/markup"
	"docintro/pkg/models"
	"docintro/pkg/utils"
)

// mdHeading records one markdown heading and the byte extent of its
// line(s) in the source, so the body can be rebuilt with the heading
// replaced in place and everything else untouched.
type mdHeading struct {
	level      int
	start, end int
}

// extractMarkdown maps markdown headings onto the two-level taxonomy:
// the first '#' heading is the title, '##' is a section, '###' a
// subsection. Deeper headings fall outside the supported levels and
// fail with utils.ErrMalformedMarkup. Non-heading text is preserved
// verbatim; headings are re-emitted in the same canonical form the
// marker scanner renders.
func extractMarkdown(raw string, linkFn markup.LinkFunc) (string, []models.HeadingEvent, string, error) {
	source := []byte(raw)
	parser := goldmark.DefaultParser()
	doc := parser.Parse(text.NewReader(source))

	var title string
	titleSet := false
	var events []models.HeadingEvent
	var headings []mdHeading

	walkErr := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if heading.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}

		start, end := headingExtent(source, heading)
		headingTitle := headingText(source, heading)

		switch heading.Level {
		case 1:
			if !titleSet {
				title = headingTitle
				titleSet = true
			}
			headings = append(headings, mdHeading{level: 1, start: start, end: end})
		case 2, 3:
			level := models.LevelSection
			if heading.Level == 3 {
				level = models.LevelSubsection
			}
			events = append(events, models.HeadingEvent{
				Level: level,
				Title: headingTitle,
				Link:  linkFn(headingTitle, ""),
			})
			headings = append(headings, mdHeading{level: heading.Level, start: start, end: end})
		default:
			return ast.WalkStop, fmt.Errorf("%w: h%d heading %q is below the two supported levels",
				utils.ErrMalformedMarkup, heading.Level, headingTitle)
		}
		return ast.WalkContinue, nil
	})
	if walkErr != nil {
		return "", nil, "", walkErr
	}

	// Rebuild the body: literal text verbatim, headings canonicalized,
	// the title line omitted.
	var b strings.Builder
	pos := 0
	eventIdx := 0
	for _, h := range headings {
		b.WriteString(raw[pos:h.start])
		if h.level != 1 {
			ev := events[eventIdx]
			eventIdx++
			tag := "h2"
			if ev.Level == models.LevelSubsection {
				tag = "h3"
			}
			if ev.Link != "" {
				fmt.Fprintf(&b, `<%s id="%s">%s</%s>`, tag, ev.Link, ev.Title, tag)
			} else {
				fmt.Fprintf(&b, "<%s>%s</%s>", tag, ev.Title, tag)
			}
		}
		pos = h.end
	}
	b.WriteString(raw[pos:])

	return title, events, b.String(), nil
}

// headingExtent returns the byte range covering the heading's source
// lines, widened to full line boundaries so the ATX marker prefix and
// any trailing closing sequence are included. The line terminator
// itself stays outside the range.
func headingExtent(source []byte, heading *ast.Heading) (int, int) {
	lines := heading.Lines()
	first := lines.At(0)
	last := lines.At(lines.Len() - 1)

	start := 0
	if nl := bytes.LastIndexByte(source[:first.Start], '\n'); nl >= 0 {
		start = nl + 1
	}
	end := lineEnd(source, last.Start)

	// Setext headings ("Title" underlined with === or ---) keep only
	// their text lines in Lines(); the underline row is the following
	// line and must leave the body together with the heading.
	if !isATXLine(source, start) && end < len(source) {
		end = lineEnd(source, end+1)
	}
	return start, end
}

// lineEnd returns the index of the line terminator (or EOF) for the
// line containing or starting at i.
func lineEnd(source []byte, i int) int {
	if nl := bytes.IndexByte(source[i:], '\n'); nl >= 0 {
		return i + nl
	}
	return len(source)
}

// isATXLine reports whether the line starting at i opens with an ATX
// heading marker ('#' after at most three spaces of indentation).
func isATXLine(source []byte, i int) bool {
	for j := 0; j < 3 && i < len(source) && source[i] == ' '; j++ {
		i++
	}
	return i < len(source) && source[i] == '#'
}

// headingText concatenates the text nodes of a heading in document
// order.
func headingText(source []byte, heading *ast.Heading) string {
	var buf bytes.Buffer
	for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			buf.Write(textNode.Segment.Value(source))
		}
	}
	return strings.TrimSpace(buf.String())
}
