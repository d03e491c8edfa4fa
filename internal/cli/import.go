// Package cli implements the command line import workflow.
package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bruvellu/zim-kindle/internal/clippings"
	"github.com/bruvellu/zim-kindle/internal/config"
	"github.com/bruvellu/zim-kindle/internal/database"
	"github.com/bruvellu/zim-kindle/internal/exporters"
	"github.com/bruvellu/zim-kindle/internal/importers"
)

// ImportCommand imports highlights from a Kindle "My Clippings.txt" file.
type ImportCommand struct {
	ClippingsPath string
	DatabasePath  string
	NotebookDir   string
	Root          string
	Verbose       bool
	DryRun        bool
}

func NewImportCommand() *ImportCommand {
	return &ImportCommand{}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	fs.StringVar(&cmd.ClippingsPath, "file", "", "Path to Kindle 'My Clippings.txt' file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database for imported entries")
	fs.StringVar(&cmd.NotebookDir, "notebook", "", "Zim notebook directory (if specified, exports wiki pages)")
	fs.StringVar(&cmd.Root, "root", "Kindle", "Root namespace for clippings pages")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be imported without making changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import highlights from a Kindle 'My Clippings.txt' file.\n\n")
		fmt.Fprintf(os.Stderr, "The clippings file is typically found at:\n")
		fmt.Fprintf(os.Stderr, "  /Volumes/Kindle/documents/My Clippings.txt\n\n")
		fmt.Fprintf(os.Stderr, "By default, entries are only saved to the database. Use -notebook to also\n")
		fmt.Fprintf(os.Stderr, "generate Zim wiki pages.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Import from connected Kindle device:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file \"/Volumes/Kindle/documents/My Clippings.txt\"\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Import and generate pages in a Zim notebook:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file \"My Clippings.txt\" -notebook ~/Notebooks/Notes\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Preview what would be imported:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file \"My Clippings.txt\" -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.ClippingsPath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ImportCommand) Run() error {
	fmt.Println("Kindle Clippings Import")
	fmt.Println("=======================")

	if cmd.DryRun {
		fmt.Println("DRY RUN MODE - No changes will be made")
		fmt.Println()
	}

	fmt.Printf("File: %s\n", cmd.ClippingsPath)
	fmt.Println("\nParsing clippings...")

	parser := clippings.NewParser()
	lib, err := parser.ParseFile(cmd.ClippingsPath)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d books with %d entries", lib.Len(), lib.TotalEntries)
	if lib.DroppedRecords > 0 {
		fmt.Printf(" (%d malformed records dropped)", lib.DroppedRecords)
	}
	fmt.Println()

	if cmd.Verbose {
		fmt.Println("\n=== Books Found ===")
		for i, book := range lib.Books() {
			authorStr := book.Author
			if authorStr == "" {
				authorStr = "(no author)"
			}
			fmt.Printf("%d. \"%s\" by %s (%d entries)\n",
				i+1, book.Title, authorStr, len(book.Entries))
		}

		fmt.Println("\n=== Sections ===")
		sections := lib.Sections()
		keys := make([]string, 0, len(sections))
		for key := range sections {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("%s: %d books\n", key, len(sections[key]))
		}
	}

	if cmd.DryRun {
		fmt.Println("\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	fmt.Printf("\nSaving to database: %s\n", absDBPath)

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	var exporter *exporters.NotebookExporter
	if cmd.NotebookDir != "" {
		absNotebookDir, err := filepath.Abs(cmd.NotebookDir)
		if err != nil {
			return fmt.Errorf("failed to get absolute path for notebook: %w", err)
		}
		exporter = exporters.NewNotebookExporter(absNotebookDir, cmd.Root)
	}

	importer := importers.NewImporter(db, exporter)
	result, err := importer.ImportFile(cmd.ClippingsPath)
	if err != nil {
		return err
	}

	fmt.Println("\n=== Import Summary ===")
	fmt.Printf("Books saved: %d\n", result.Session.BooksImported)
	fmt.Printf("Entries saved: %d\n", result.Session.EntriesCreated)

	if result.Export != nil {
		fmt.Printf("Pages written: %d\n", result.Export.BooksProcessed+1)
		if result.Export.BooksFailed > 0 {
			fmt.Printf("Pages failed: %d\n", result.Export.BooksFailed)
		}
	}

	fmt.Println("\nImport complete!")
	return nil
}
