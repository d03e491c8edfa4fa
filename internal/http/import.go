package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bruvellu/zim-kindle/internal/importers"
)

const maxClippingsFileSize = 10 * 1024 * 1024 // 10 MB

type ImportController struct {
	importer *importers.Importer
}

func NewImportController(importer *importers.Importer) *ImportController {
	return &ImportController{importer: importer}
}

type ImportResult struct {
	Success        bool   `json:"success"`
	Error          string `json:"error,omitempty"`
	BooksImported  int    `json:"books_imported"`
	EntriesCreated int    `json:"entries_created"`
	RecordsDropped int    `json:"records_dropped"`
}

// Import accepts an uploaded clippings file and runs the import pipeline.
func (ic *ImportController) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("clippings_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, &ImportResult{
			Success: false,
			Error:   "Clippings file not provided",
		})
		return
	}
	defer file.Close()

	if header.Size > maxClippingsFileSize {
		c.JSON(http.StatusBadRequest, &ImportResult{
			Success: false,
			Error:   fmt.Sprintf("File too large (max %d MB)", maxClippingsFileSize/(1024*1024)),
		})
		return
	}

	limitedReader := io.LimitReader(file, maxClippingsFileSize+1)

	result, err := ic.importer.ImportReader(limitedReader, header.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, &ImportResult{
			Success: false,
			Error:   fmt.Sprintf("Failed to import clippings: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, &ImportResult{
		Success:        true,
		BooksImported:  result.Library.Len(),
		EntriesCreated: result.Library.TotalEntries,
		RecordsDropped: result.Library.DroppedRecords,
	})
}
