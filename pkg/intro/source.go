// Package intro builds render-ready intro pages: it resolves a document
// name through a virtual file reader, extracts the title and heading
// events from the raw markup, assembles the nested table of contents
// and renders the final body.
package intro

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"docintro/pkg/markup"
	"docintro/pkg/models"
	"docintro/pkg/toc"
	"docintro/pkg/utils"
	"docintro/pkg/vfs"
)

// Source builds pages from documents served by a FileReader. Each
// BuildPage call is an independent computation with no shared mutable
// state, so a Source is safe for concurrent use whenever its reader is.
type Source struct {
	reader    vfs.FileReader
	extractor *markup.Extractor
	linkFn    markup.LinkFunc
	log       *logrus.Entry
}

// NewSource creates a Source reading documents from reader and deriving
// anchor links with linkFn (nil selects markup.IDLinks).
func NewSource(reader vfs.FileReader, linkFn markup.LinkFunc, logger *logrus.Entry) *Source {
	if linkFn == nil {
		linkFn = markup.IDLinks
	}
	return &Source{
		reader:    reader,
		extractor: markup.NewExtractor(linkFn),
		linkFn:    linkFn,
		log:       logger,
	}
}

// BuildPage resolves name, extracts headings and produces the page.
// Reader and extraction errors surface unchanged (utils.ErrNotFound,
// utils.ErrMalformedMarkup); a failed build yields no Page. Documents
// named *.md go through the markdown extractor; everything else is
// scanned for the literal heading-marker vocabulary.
func (s *Source) BuildPage(ctx context.Context, name string) (*models.Page, error) {
	raw, err := s.reader.Read(ctx, name)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"doc":            name,
			"error_category": utils.CategorizeError(err),
		}).Debugf("Read failed: %v", err)
		return nil, err
	}

	var title string
	var events []models.HeadingEvent
	var body string

	if strings.HasSuffix(name, ".md") {
		title, events, body, err = extractMarkdown(raw, s.linkFn)
	} else {
		var doc *markup.Document
		doc, err = s.extractor.Extract(raw)
		if err == nil {
			title, events, body = doc.Title, doc.Events, doc.Render()
		}
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"doc":            name,
			"error_category": utils.CategorizeError(err),
		}).Warnf("Extraction failed: %v", err)
		return nil, err
	}

	page := &models.Page{
		Title:        title,
		Toc:          toc.Build(events),
		RenderedBody: body,
	}
	s.log.WithField("doc", name).Debugf("Built page: title=%q headings=%d", page.Title, len(events))
	return page, nil
}
