// Package exporters writes a parsed clippings library into a Zim notebook
// directory as wiki pages.
package exporters

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bruvellu/zim-kindle/internal/clippings"
	"github.com/bruvellu/zim-kindle/internal/zim"
)

// ExportResult summarizes one export run.
type ExportResult struct {
	BooksProcessed   int
	EntriesProcessed int
	BooksFailed      int
}

// NotebookExporter writes wiki pages under a root namespace inside an
// existing Zim notebook directory. The root page becomes <Root>.txt and each
// book a page inside the <Root>/ subdirectory.
type NotebookExporter struct {
	NotebookDir string
	Root        string
}

func NewNotebookExporter(notebookDir, root string) *NotebookExporter {
	if root == "" {
		root = "Kindle"
	}
	return &NotebookExporter{
		NotebookDir: notebookDir,
		Root:        zim.MakeValidPageName(root),
	}
}

// pageFile maps a page name to its file inside the notebook. Zim stores
// pages as text files with spaces encoded as underscores.
func pageFile(dir, pageName string) string {
	return filepath.Join(dir, strings.ReplaceAll(pageName, " ", "_")+".txt")
}

func (e *NotebookExporter) ensureDirs() (string, error) {
	if _, err := os.Stat(e.NotebookDir); err != nil {
		return "", fmt.Errorf("notebook directory %s not accessible: %w", e.NotebookDir, err)
	}

	rootDir := filepath.Join(e.NotebookDir, strings.ReplaceAll(e.Root, " ", "_"))
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create root namespace directory: %w", err)
	}
	return rootDir, nil
}

// Export writes the index page and one page per book, rewriting existing
// pages from the freshly parsed library.
func (e *NotebookExporter) Export(lib *clippings.Library) (ExportResult, error) {
	result := ExportResult{}

	rootDir, err := e.ensureDirs()
	if err != nil {
		return result, err
	}

	index := zim.IndexPage(lib, e.Root)
	if err := os.WriteFile(pageFile(e.NotebookDir, e.Root), []byte(index), 0644); err != nil {
		return result, fmt.Errorf("failed to write index page: %w", err)
	}

	for _, book := range lib.Books() {
		page := zim.BookPage(book, lib.UpdatedAt)
		path := pageFile(rootDir, zim.MakeValidPageName(book.Title))
		if err := os.WriteFile(path, []byte(page), 0644); err != nil {
			log.Printf("Failed to export %q: %v", book.Title, err)
			result.BooksFailed++
			continue
		}
		result.BooksProcessed++
		result.EntriesProcessed += len(book.Entries)
	}

	return result, nil
}
