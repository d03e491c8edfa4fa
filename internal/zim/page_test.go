package zim

import (
	"strings"
	"testing"
	"time"

	"github.com/bruvellu/zim-kindle/internal/clippings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeValidPageName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "replaces forbidden characters",
			input:    `Some/Book?Name`,
			expected: "Some_Book_Name",
		},
		{
			name:     "collapses whitespace",
			input:    "Too   many \t spaces",
			expected: "Too many spaces",
		},
		{
			name:     "trims underscores and colons",
			input:    "#Title#",
			expected: "Title",
		},
		{
			name:     "keeps unicode letters",
			input:    "Pamiętnik znaleziony w wannie",
			expected: "Pamiętnik znaleziony w wannie",
		},
		{
			name:     "empty becomes Untitled",
			input:    "",
			expected: "Untitled",
		},
		{
			name:     "only forbidden chars becomes Untitled",
			input:    `<>?*#`,
			expected: "Untitled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MakeValidPageName(tt.input))
		})
	}
}

func TestPagePath(t *testing.T) {
	assert.Equal(t, "Kindle:My Book", PagePath("Kindle", "My Book"))
	assert.Equal(t, "Kindle:A_B", PagePath("Kindle", "A#B"))
}

func sampleLibrary(t *testing.T) *clippings.Library {
	t.Helper()
	input := `Walden (Henry David Thoreau)
- Your Highlight on page 18 | Location 248-249 | Added on Tuesday, January 1, 2019 10:30:00 AM

The mass of men lead lives of quiet desperation.
==========
Anthill
- Your Note on page 3 | Added on Tuesday, January 1, 2019 11:00:00 AM

Check the ant chapters again
==========
`
	lib, err := clippings.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	return lib
}

func TestIndexPage(t *testing.T) {
	lib := sampleLibrary(t)
	page := IndexPage(lib, "Kindle")

	assert.Contains(t, page, "====== Kindle Clippings ======")
	assert.Contains(t, page, "2 books | 2 entries")
	assert.Contains(t, page, "==== A ====")
	assert.Contains(t, page, "==== W ====")
	assert.Contains(t, page, "* [[Kindle:Walden|Walden]]")
	assert.Contains(t, page, "* [[Kindle:Anthill|Anthill]]")

	// Section order is alphabetical.
	assert.Less(t, strings.Index(page, "==== A ===="), strings.Index(page, "==== W ===="))
}

func TestBookPage(t *testing.T) {
	lib := sampleLibrary(t)
	created := time.Date(2019, 1, 2, 0, 0, 0, 0, time.UTC)

	page := BookPage(lib.Book("Walden"), created)
	assert.Contains(t, page, "====== Walden ======")
	assert.Contains(t, page, "Created Wednesday 02 January 2019")
	assert.Contains(t, page, "**Author:** Henry David Thoreau")
	assert.Contains(t, page, "The mass of men lead lives of quiet desperation.")
	assert.Contains(t, page, "| Highlight | Page: 18 | Location: 248-249 | 2019-01-01 10:30 |")

	noAuthor := BookPage(lib.Book("Anthill"), created)
	assert.NotContains(t, noAuthor, "**Author:**")
	assert.Contains(t, noAuthor, "| Note | Page: 3 | 2019-01-01 11:00 |")
}
