package intro

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docintro/pkg/markup"
	"docintro/pkg/models"
	"docintro/pkg/utils"
	"docintro/pkg/vfs"
)

func TestBuildPage_Markdown(t *testing.T) {
	reader := vfs.NewMapReader(map[string]string{
		"intro.md": "# hi\n\nyou\n\n## first\n\n### inner\n\n## second\n",
	})
	source := NewSource(reader, nil, testLogger())

	page, err := source.BuildPage(context.Background(), "intro.md")
	require.NoError(t, err)

	assert.Equal(t, "hi", page.Title)
	assert.Equal(t, []models.TocEntry{
		{Title: "first", Link: "", Subheadings: []models.TocEntry{
			{Title: "inner", Link: "", Subheadings: []models.TocEntry{}},
		}},
		{Title: "second", Link: "", Subheadings: []models.TocEntry{}},
	}, page.Toc)
	assert.Equal(t, "\n\nyou\n\n<h2>first</h2>\n\n<h3>inner</h3>\n\n<h2>second</h2>\n", page.RenderedBody)
}

func TestBuildPage_MarkdownNoTitle(t *testing.T) {
	reader := vfs.NewMapReader(map[string]string{
		"intro.md": "intro prose\n\n## only section\n",
	})
	source := NewSource(reader, nil, testLogger())

	page, err := source.BuildPage(context.Background(), "intro.md")
	require.NoError(t, err)

	assert.Equal(t, "", page.Title)
	require.Len(t, page.Toc, 1)
	assert.Equal(t, "only section", page.Toc[0].Title)
	assert.Equal(t, "intro prose\n\n<h2>only section</h2>\n", page.RenderedBody)
}

func TestBuildPage_MarkdownTooDeep(t *testing.T) {
	reader := vfs.NewMapReader(map[string]string{
		"intro.md": "## ok\n\n#### too deep\n",
	})
	source := NewSource(reader, nil, testLogger())

	page, err := source.BuildPage(context.Background(), "intro.md")
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrMalformedMarkup)
	assert.Nil(t, page)
}

func TestBuildPage_MarkdownSlugLinks(t *testing.T) {
	reader := vfs.NewMapReader(map[string]string{
		"intro.md": "## Getting Started\n",
	})
	source := NewSource(reader, markup.SlugLinks, testLogger())

	page, err := source.BuildPage(context.Background(), "intro.md")
	require.NoError(t, err)

	require.Len(t, page.Toc, 1)
	assert.Equal(t, "getting-started", page.Toc[0].Link)
	assert.Equal(t, "<h2 id=\"getting-started\">Getting Started</h2>\n", page.RenderedBody)
}

func TestBuildPage_MarkdownSetextHeadings(t *testing.T) {
	reader := vfs.NewMapReader(map[string]string{
		"intro.md": "hi\n==\n\nyou\n\nfirst\n-----\n\n### inner\n",
	})
	source := NewSource(reader, nil, testLogger())

	page, err := source.BuildPage(context.Background(), "intro.md")
	require.NoError(t, err)

	assert.Equal(t, "hi", page.Title)
	require.Len(t, page.Toc, 1)
	assert.Equal(t, "first", page.Toc[0].Title)
	require.Len(t, page.Toc[0].Subheadings, 1)
	assert.Equal(t, "inner", page.Toc[0].Subheadings[0].Title)

	// The underline rows must go with their headings, not linger as body text.
	assert.Equal(t, "\n\nyou\n\n<h2>first</h2>\n\n<h3>inner</h3>\n", page.RenderedBody)
}

func TestBuildPage_MarkdownSecondTitleStripped(t *testing.T) {
	reader := vfs.NewMapReader(map[string]string{
		"intro.md": "# real\n\n# ignored\n\nbody\n",
	})
	source := NewSource(reader, nil, testLogger())

	page, err := source.BuildPage(context.Background(), "intro.md")
	require.NoError(t, err)

	assert.Equal(t, "real", page.Title)
	assert.Equal(t, "\n\n\n\nbody\n", page.RenderedBody)
}
