package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bruvellu/zim-kindle/internal/database"
	"github.com/bruvellu/zim-kindle/internal/importers"
)

const sampleClippings = `Walden (Henry David Thoreau)
- Your Highlight on page 18 | Location 248-249 | Added on Tuesday, January 1, 2019 10:30:00 AM

The mass of men lead lives of quiet desperation.
==========
Dune (Frank Herbert)
- Your Highlight on page 5 | Added on Tuesday, January 1, 2019 11:00:00 AM

Fear is the mind-killer.
==========
`

func setupRouter(t *testing.T) (*gin.Engine, *database.Database) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	router := NewRouter(RouterConfig{
		DB:       db,
		Importer: importers.NewImporter(db, nil),
		Version:  "test",
	})
	return router, db
}

func uploadClippings(t *testing.T, router *gin.Engine, content string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("clippings_file", "My Clippings.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestImport_Success(t *testing.T) {
	router, db := setupRouter(t)

	w := uploadClippings(t, router, sampleClippings)
	require.Equal(t, http.StatusOK, w.Code)

	var result ImportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.BooksImported)
	assert.Equal(t, 2, result.EntriesCreated)

	books, err := db.GetAllBooks()
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestImport_MissingFile(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/import", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImport_EmptyClippings(t *testing.T) {
	router, _ := setupRouter(t)

	w := uploadClippings(t, router, "")
	require.Equal(t, http.StatusOK, w.Code)

	var result ImportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.BooksImported)
}

func TestListBooks(t *testing.T) {
	router, _ := setupRouter(t)

	w := uploadClippings(t, router, sampleClippings)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		TotalBooks   int `json:"total_books"`
		TotalEntries int `json:"total_entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.TotalBooks)
	assert.Equal(t, 2, response.TotalEntries)
}

func TestGetBook_NotFound(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/books/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSync_NoTaskQueue(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
