package database

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bruvellu/zim-kindle/internal/clippings"
	"github.com/bruvellu/zim-kindle/internal/entities"
)

func setupTestDB(t *testing.T) *Database {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func parseFixture(t *testing.T, input string) *clippings.Library {
	t.Helper()
	lib, err := clippings.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	return lib
}

const twoBookInput = `Walden (Henry David Thoreau)
- Your Highlight on page 18 | Location 248-249 | Added on Tuesday, January 1, 2019 10:30:00 AM

The mass of men lead lives of quiet desperation.
==========
Walden (Henry David Thoreau)
- Your Note on page 19 | Added on Tuesday, January 1, 2019 10:35:00 AM

Revisit this one
==========
Dune (Frank Herbert)
- Your Highlight on page 5 | Added on Tuesday, January 1, 2019 11:00:00 AM

Fear is the mind-killer.
==========
`

func TestSaveLibrary(t *testing.T) {
	db := setupTestDB(t)
	lib := parseFixture(t, twoBookInput)

	session, err := db.SaveLibrary(lib)
	require.NoError(t, err)

	assert.Equal(t, entities.ImportStatusCompleted, session.Status)
	assert.Equal(t, 2, session.BooksImported)
	assert.Equal(t, 3, session.EntriesCreated)
	assert.NotNil(t, session.CompletedAt)

	books, err := db.GetAllBooks()
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "Walden", books[0].Title)
	assert.Equal(t, "Henry David Thoreau", books[0].Author)
	assert.Equal(t, "Walden", books[0].PageName)
	require.Len(t, books[0].Entries, 2)
	assert.Equal(t, "highlight", books[0].Entries[0].Kind)
	assert.Equal(t, "248-249", books[0].Entries[0].Location)
	assert.Equal(t, "note", books[0].Entries[1].Kind)

	count, err := db.CountEntries()
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestSaveLibrary_ReimportAppends(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.SaveLibrary(parseFixture(t, twoBookInput))
	require.NoError(t, err)
	_, err = db.SaveLibrary(parseFixture(t, twoBookInput))
	require.NoError(t, err)

	// Same raw entries re-imported are appended, not deduplicated.
	books, err := db.GetAllBooks()
	require.NoError(t, err)
	require.Len(t, books, 2)

	walden, err := db.GetBookByTitle("Walden")
	require.NoError(t, err)
	assert.Len(t, walden.Entries, 4)

	sessions, err := db.GetRecentSessions(10)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestGetBookByID(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.SaveLibrary(parseFixture(t, twoBookInput))
	require.NoError(t, err)

	books, err := db.GetAllBooks()
	require.NoError(t, err)

	book, err := db.GetBookByID(books[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
	assert.Len(t, book.Entries, 1)

	_, err = db.GetBookByID(9999)
	assert.Error(t, err)
}
