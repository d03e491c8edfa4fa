package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bruvellu/zim-kindle/internal/database"
)

type BooksController struct {
	db *database.Database
}

func NewBooksController(db *database.Database) *BooksController {
	return &BooksController{db: db}
}

// List returns all imported books with their entries.
func (bc *BooksController) List(c *gin.Context) {
	books, err := bc.db.GetAllBooks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list books"})
		return
	}

	entries, err := bc.db.CountEntries()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"books":         books,
		"total_books":   len(books),
		"total_entries": entries,
	})
}

// Get returns one book by ID.
func (bc *BooksController) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	book, err := bc.db.GetBookByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}

	c.JSON(http.StatusOK, book)
}

// Sessions returns recent import sessions, newest first.
func (bc *BooksController) Sessions(c *gin.Context) {
	sessions, err := bc.db.GetRecentSessions(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
