// Package toc assembles the nested table of contents from the ordered
// heading events of one document.
package toc

import "docintro/pkg/models"

// Build folds the ordered heading events into the two-level outline.
// Each Section event opens a new top-level entry and becomes the
// current parent; each Subsection event is appended to the current
// parent's Subheadings. A Subsection arriving before any Section is
// attached to an implicit top-level entry with empty title and link.
//
// Build is a pure function of its input: it keeps no state between
// calls and never mutates events.
func Build(events []models.HeadingEvent) []models.TocEntry {
	entries := []models.TocEntry{}
	current := -1

	for _, ev := range events {
		switch ev.Level {
		case models.LevelSection:
			entries = append(entries, models.TocEntry{
				Title:       ev.Title,
				Link:        ev.Link,
				Subheadings: []models.TocEntry{},
			})
			current = len(entries) - 1
		case models.LevelSubsection:
			if current < 0 {
				// Orphan subsection: open an implicit empty parent
				entries = append(entries, models.TocEntry{Subheadings: []models.TocEntry{}})
				current = len(entries) - 1
			}
			entries[current].Subheadings = append(entries[current].Subheadings, models.TocEntry{
				Title:       ev.Title,
				Link:        ev.Link,
				Subheadings: []models.TocEntry{},
			})
		}
	}

	return entries
}
