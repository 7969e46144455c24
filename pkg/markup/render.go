package markup

import (
	"fmt"
	"strings"

	"docintro/pkg/models"
)

// Render folds the decomposition back into body text. Literal segments
// pass through byte-for-byte; each heading is re-emitted in canonical
// form (<h2>title</h2> / <h3>title</h3>, with the derived id when one
// exists); title markers do not appear in the body. Pure: repeated
// calls return identical strings.
func (d *Document) Render() string {
	var b strings.Builder
	for _, seg := range d.segments {
		switch seg.kind {
		case segLiteral:
			b.WriteString(seg.text)
		case segHeading:
			ev := d.Events[seg.event]
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
	}
	return b.String()
}
