package markup

import (
	"fmt"
	"strings"

	"docintro/pkg/models"
	"docintro/pkg/utils"
)

// The scanner recognizes a fixed literal vocabulary of heading markers:
// <h1 ...>..</h1> (title), <h2 ...>..</h2> (section) and <h3 ...>..</h3>
// (subsection). It is deliberately not an HTML parser; anything outside
// those literal patterns passes through as ordinary text, and
// structurally broken markers fail instead of being repaired.

type segmentKind int

const (
	segLiteral segmentKind = iota // Verbatim slice of the source text
	segHeading                    // Reference into Document.Events
)

type segment struct {
	kind  segmentKind
	text  string // Set for segLiteral
	event int    // Set for segHeading
}

// Document is the decomposition of one document's raw markup: the
// extracted title, the ordered heading events, and the interleaved
// literal/heading segments the renderer folds back into body text.
type Document struct {
	Title    string
	Events   []models.HeadingEvent
	segments []segment
}

// Extractor scans raw markup for heading markers. The zero value is not
// usable; construct with NewExtractor.
type Extractor struct {
	linkFn LinkFunc
}

// NewExtractor creates an Extractor deriving anchor links with linkFn.
// A nil linkFn falls back to IDLinks, the reference behavior.
func NewExtractor(linkFn LinkFunc) *Extractor {
	if linkFn == nil {
		linkFn = IDLinks
	}
	return &Extractor{linkFn: linkFn}
}

// Extract decomposes raw markup into title, heading events and body
// segments. Extraction is order-preserving and lossless for non-heading
// text. Malformed markers fail with utils.ErrMalformedMarkup and no
// partial Document is returned.
func (e *Extractor) Extract(raw string) (*Document, error) {
	doc := &Document{}
	titleSet := false

	start, pos := 0, 0
	for pos < len(raw) {
		lt := strings.IndexByte(raw[pos:], '<')
		if lt < 0 {
			break
		}
		at := pos + lt

		level, ok := markerStart(raw, at)
		if !ok {
			if endLevel, isEnd := markerEnd(raw, at); isEnd {
				return nil, fmt.Errorf("%w: closing </h%d> at offset %d without an open marker",
					utils.ErrMalformedMarkup, endLevel, at)
			}
			pos = at + 1 // Ordinary '<', keep scanning
			continue
		}

		// Opening tag must terminate before the next marker starts
		gt := strings.IndexByte(raw[at:], '>')
		if gt < 0 {
			return nil, fmt.Errorf("%w: unterminated <h%d> marker at offset %d",
				utils.ErrMalformedMarkup, level, at)
		}
		attrs := raw[at+3 : at+gt]
		if strings.ContainsRune(attrs, '<') {
			return nil, fmt.Errorf("%w: unterminated <h%d> marker at offset %d",
				utils.ErrMalformedMarkup, level, at)
		}

		endTag := fmt.Sprintf("</h%d>", level)
		innerStart := at + gt + 1
		rel := strings.Index(raw[innerStart:], endTag)
		if rel < 0 {
			return nil, fmt.Errorf("%w: <h%d> marker at offset %d has no closing %s",
				utils.ErrMalformedMarkup, level, at, endTag)
		}
		inner := raw[innerStart : innerStart+rel]
		if containsMarker(inner) {
			return nil, fmt.Errorf("%w: heading marker nested inside <h%d> marker at offset %d",
				utils.ErrMalformedMarkup, level, at)
		}

		if start < at {
			doc.segments = append(doc.segments, segment{kind: segLiteral, text: raw[start:at]})
		}

		title := strings.TrimSpace(inner)
		switch level {
		case 1:
			// First title marker wins; later ones are stripped unchanged
			if !titleSet {
				doc.Title = title
				titleSet = true
			}
		default:
			eventLevel := models.LevelSection
			if level == 3 {
				eventLevel = models.LevelSubsection
			}
			doc.Events = append(doc.Events, models.HeadingEvent{
				Level: eventLevel,
				Title: title,
				Link:  e.linkFn(title, parseIDAttr(attrs)),
			})
			doc.segments = append(doc.segments, segment{kind: segHeading, event: len(doc.Events) - 1})
		}

		start = innerStart + rel + len(endTag)
		pos = start
	}

	if start < len(raw) {
		doc.segments = append(doc.segments, segment{kind: segLiteral, text: raw[start:]})
	}

	return doc, nil
}

// markerStart reports whether raw[at:] begins a heading marker opener
// (<h1, <h2 or <h3 followed by '>' or whitespace, or cut off by EOF).
func markerStart(raw string, at int) (level int, ok bool) {
	if at+2 >= len(raw) || raw[at] != '<' || raw[at+1] != 'h' {
		return 0, false
	}
	digit := raw[at+2]
	if digit < '1' || digit > '3' {
		return 0, false
	}
	if at+3 < len(raw) {
		switch raw[at+3] {
		case '>', ' ', '\t', '\n', '\r':
		default:
			return 0, false // e.g. <h2x or <h20: ordinary text
		}
	}
	return int(digit - '0'), true
}

// markerEnd reports whether raw[at:] is a literal heading end tag.
func markerEnd(raw string, at int) (level int, ok bool) {
	if at+4 >= len(raw) || raw[at] != '<' || raw[at+1] != '/' || raw[at+2] != 'h' {
		return 0, false
	}
	digit := raw[at+3]
	if digit < '1' || digit > '3' || raw[at+4] != '>' {
		return 0, false
	}
	return int(digit - '0'), true
}

// containsMarker reports whether s holds any heading marker opener or
// end tag. Used to reject markers nested inside markers.
func containsMarker(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '<' {
			continue
		}
		if _, ok := markerStart(s, i); ok {
			return true
		}
		if _, ok := markerEnd(s, i); ok {
			return true
		}
	}
	return false
}

// parseIDAttr extracts the value of an id="..." attribute from the text
// between the marker name and the closing '>'. Returns "" when absent.
func parseIDAttr(attrs string) string {
	const key = `id="`
	idx := 0
	for {
		k := strings.Index(attrs[idx:], key)
		if k < 0 {
			return ""
		}
		k += idx
		if k == 0 || !isAttrSpace(attrs[k-1]) {
			idx = k + len(key) // Part of another attribute name (e.g. data-id)
			continue
		}
		rest := attrs[k+len(key):]
		q := strings.IndexByte(rest, '"')
		if q < 0 {
			return ""
		}
		return rest[:q]
	}
}

func isAttrSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
