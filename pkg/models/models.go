package models

// HeadingLevel distinguishes the two supported heading depths.
// The outline is deliberately a closed two-level structure, not a
// general tree: Section entries may hold Subsection children and
// nothing nests below a Subsection.
type HeadingLevel int

const (
	LevelSection    HeadingLevel = iota // Top-level heading (<h2>)
	LevelSubsection                     // Nested heading (<h3>)
)

// String returns a human-readable name for logging.
func (l HeadingLevel) String() string {
	switch l {
	case LevelSection:
		return "section"
	case LevelSubsection:
		return "subsection"
	default:
		return "unknown"
	}
}

// HeadingEvent records one heading occurrence in document order.
// Link may be empty when no linkable id was derivable; consumers must
// tolerate empty links.
type HeadingEvent struct {
	Level HeadingLevel
	Title string
	Link  string
}

// TocEntry is one outline entry. Subheadings is always empty for an
// entry derived from a Subsection event.
type TocEntry struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Subheadings []TocEntry `json:"subheadings"`
}

// Page is the render-ready result of building one document: the
// extracted title, the nested outline, and the body with headings
// re-emitted in canonical form. Constructed once per build and not
// mutated afterwards.
type Page struct {
	Title        string     `json:"title"`
	Toc          []TocEntry `json:"toc"`
	RenderedBody string     `json:"rendered_body"`
}
