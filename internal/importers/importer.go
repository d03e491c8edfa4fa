// Package importers handles the common import workflow:
// parse clippings → save to database → regenerate notebook pages.
package importers

import (
	"fmt"
	"io"
	"log"

	"github.com/bruvellu/zim-kindle/internal/clippings"
	"github.com/bruvellu/zim-kindle/internal/database"
	"github.com/bruvellu/zim-kindle/internal/entities"
	"github.com/bruvellu/zim-kindle/internal/exporters"
)

// Result aggregates the outcome of one import run.
type Result struct {
	Library *clippings.Library
	Session *entities.ImportSession
	Export  *exporters.ExportResult
}

// Importer wires the parser to persistence and notebook export. The
// exporter is optional; without one the import stops at the database.
type Importer struct {
	parser   *clippings.Parser
	db       *database.Database
	exporter *exporters.NotebookExporter
}

func NewImporter(db *database.Database, exporter *exporters.NotebookExporter) *Importer {
	return &Importer{
		parser:   clippings.NewParser(),
		db:       db,
		exporter: exporter,
	}
}

// ImportFile parses a clippings file and runs the full pipeline.
func (i *Importer) ImportFile(path string) (*Result, error) {
	lib, err := i.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return i.importLibrary(lib)
}

// ImportReader parses clippings from a reader (e.g. an uploaded file) and
// runs the full pipeline. sourceName labels the source in statistics.
func (i *Importer) ImportReader(r io.Reader, sourceName string) (*Result, error) {
	lib, err := i.parser.Parse(r)
	if err != nil {
		return nil, err
	}
	lib.SourceName = sourceName
	return i.importLibrary(lib)
}

func (i *Importer) importLibrary(lib *clippings.Library) (*Result, error) {
	result := &Result{Library: lib}

	if lib.DroppedRecords > 0 {
		log.Printf("Import: dropped %d malformed records", lib.DroppedRecords)
	}

	if i.db != nil {
		session, err := i.db.SaveLibrary(lib)
		result.Session = session
		if err != nil {
			return result, fmt.Errorf("failed to save library: %w", err)
		}
	}

	if i.exporter != nil && lib.Len() > 0 {
		export, err := i.exporter.Export(lib)
		if err != nil {
			return result, fmt.Errorf("failed to export notebook pages: %w", err)
		}
		result.Export = &export
	}

	return result, nil
}
