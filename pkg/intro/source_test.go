package intro

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docintro/pkg/markup"
	"docintro/pkg/models"
	"docintro/pkg/utils"
	"docintro/pkg/vfs"
)

func testLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

var cannedFiles = map[string]string{
	"test":     "<h1>hi</h1>you<h2>first</h2><h3>inner</h3><h2>second</h2>",
	"plain":    "no headings here at all",
	"bad":      "<h1>hi</h1><h2>never closed",
	"anchored": `<h2 id="a">alpha</h2>body<h3 id="a-1">alpha one</h3>`,
}

func newTestSource(t *testing.T, linkFn markup.LinkFunc) *Source {
	t.Helper()
	return NewSource(vfs.NewMapReader(cannedFiles), linkFn, testLogger())
}

func TestBuildPage_ReferenceScenario(t *testing.T) {
	source := newTestSource(t, nil)

	page, err := source.BuildPage(context.Background(), "test")
	require.NoError(t, err)

	assert.Equal(t, "hi", page.Title)
	assert.Equal(t, []models.TocEntry{
		{Title: "first", Link: "", Subheadings: []models.TocEntry{
			{Title: "inner", Link: "", Subheadings: []models.TocEntry{}},
		}},
		{Title: "second", Link: "", Subheadings: []models.TocEntry{}},
	}, page.Toc)
	assert.Equal(t, "you<h2>first</h2><h3>inner</h3><h2>second</h2>", page.RenderedBody)
}

func TestBuildPage_MissingDocument(t *testing.T) {
	source := newTestSource(t, nil)

	page, err := source.BuildPage(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrNotFound)
	assert.Nil(t, page)
}

func TestBuildPage_MalformedDocument(t *testing.T) {
	source := newTestSource(t, nil)

	page, err := source.BuildPage(context.Background(), "bad")
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrMalformedMarkup)
	assert.Nil(t, page, "no partial page on malformed markup")
}

func TestBuildPage_NoHeadings(t *testing.T) {
	source := newTestSource(t, nil)

	page, err := source.BuildPage(context.Background(), "plain")
	require.NoError(t, err)

	assert.Equal(t, "", page.Title)
	assert.Empty(t, page.Toc)
	assert.Equal(t, "no headings here at all", page.RenderedBody)
}

func TestBuildPage_AnchorLinks(t *testing.T) {
	source := newTestSource(t, nil)

	page, err := source.BuildPage(context.Background(), "anchored")
	require.NoError(t, err)

	require.Len(t, page.Toc, 1)
	assert.Equal(t, "a", page.Toc[0].Link)
	require.Len(t, page.Toc[0].Subheadings, 1)
	assert.Equal(t, "a-1", page.Toc[0].Subheadings[0].Link)
	assert.Equal(t, `<h2 id="a">alpha</h2>body<h3 id="a-1">alpha one</h3>`, page.RenderedBody)
}

func TestBuildPage_Idempotent(t *testing.T) {
	source := newTestSource(t, nil)
	ctx := context.Background()

	first, err := source.BuildPage(ctx, "test")
	require.NoError(t, err)
	second, err := source.BuildPage(ctx, "test")
	require.NoError(t, err)

	assert.Equal(t, first, second, "unchanged document must yield identical pages")
}

func TestBuildPage_OrderPreserved(t *testing.T) {
	source := newTestSource(t, nil)

	page, err := source.BuildPage(context.Background(), "test")
	require.NoError(t, err)

	// Flatten the outline depth-first and compare against marker order.
	var flat []string
	for _, entry := range page.Toc {
		flat = append(flat, entry.Title)
		for _, sub := range entry.Subheadings {
			flat = append(flat, sub.Title)
		}
	}
	assert.Equal(t, []string{"first", "inner", "second"}, flat)
}

func TestBuildPage_ConcurrentBuilds(t *testing.T) {
	source := newTestSource(t, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			page, err := source.BuildPage(ctx, "test")
			assert.NoError(t, err)
			assert.Equal(t, "hi", page.Title)
		}()
	}
	wg.Wait()
}

func TestBuildPage_SlugLinkPolicy(t *testing.T) {
	reader := vfs.NewMapReader(map[string]string{
		"doc": "<h2>Hello World</h2>",
	})
	source := NewSource(reader, markup.SlugLinks, testLogger())

	page, err := source.BuildPage(context.Background(), "doc")
	require.NoError(t, err)

	require.Len(t, page.Toc, 1)
	assert.Equal(t, "hello-world", page.Toc[0].Link)
	assert.Equal(t, `<h2 id="hello-world">Hello World</h2>`, page.RenderedBody)
}
