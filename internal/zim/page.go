// Package zim generates Zim Desktop Wiki page names and markup from a
// parsed clippings library.
package zim

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bruvellu/zim-kindle/internal/clippings"
)

var (
	// Characters Zim forbids in page names.
	invalidNameChars = regexp.MustCompile(`[<>"/\\|?*#%]`)
	multipleSpaces   = regexp.MustCompile(`\s+`)
)

// MakeValidPageName sanitizes a title into a valid Zim page name. Forbidden
// characters become underscores, whitespace is collapsed, and an empty
// result degrades to "Untitled" so every book gets an addressable page.
func MakeValidPageName(name string) string {
	name = invalidNameChars.ReplaceAllString(name, "_")
	name = multipleSpaces.ReplaceAllString(name, " ")
	name = strings.Trim(name, " :_")
	if name == "" {
		name = "Untitled"
	}
	return name
}

// PagePath joins a root namespace and a book title into a full page name,
// e.g. "Kindle:My Book".
func PagePath(root, title string) string {
	return root + ":" + MakeValidPageName(title)
}

// header renders a Zim page title with its creation line.
func header(title string, created time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "====== %s ======\n", title)
	fmt.Fprintf(&b, "Created %s\n", created.Format("Monday 02 January 2006"))
	return b.String()
}

// IndexPage renders the root page: library statistics and a book listing
// grouped by first letter, with links into the root namespace.
func IndexPage(lib *clippings.Library, root string) string {
	var b strings.Builder
	b.WriteString(header("Kindle Clippings", lib.UpdatedAt))

	b.WriteString("\n===== Library =====\n")
	fmt.Fprintf(&b, "* [[file://%s|%s]] | %d books | %d entries | Updated %s\n",
		lib.SourcePath, lib.SourceName, lib.Len(), lib.TotalEntries,
		lib.UpdatedAt.Format(time.RFC3339))

	b.WriteString("\n===== Books =====\n")

	sections := lib.Sections()
	keys := make([]string, 0, len(sections))
	for key := range sections {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		titles := sections[key]
		sort.Slice(titles, func(i, j int) bool {
			return strings.ToLower(titles[i]) < strings.ToLower(titles[j])
		})
		fmt.Fprintf(&b, "\n==== %s ====\n", key)
		for _, title := range titles {
			fmt.Fprintf(&b, "* [[%s|%s]]\n", PagePath(root, title), title)
		}
	}

	return b.String()
}

// BookPage renders one book's page: optional author attribution followed by
// one block per entry with its text and metadata row, in file order.
func BookPage(book *clippings.Book, created time.Time) string {
	var b strings.Builder
	b.WriteString(header(book.Title, created))

	if book.Author != "" {
		fmt.Fprintf(&b, "\n**Author:** %s\n\n", book.Author)
	} else {
		b.WriteString("\n")
	}

	for _, entry := range book.Entries {
		if entry.Text != "" {
			fmt.Fprintf(&b, "%s\n", entry.Text)
		}
		fmt.Fprintf(&b, "| %s | ", titleCase(string(entry.Kind)))
		if entry.Page != "" {
			fmt.Fprintf(&b, "Page: %s | ", entry.Page)
		}
		if entry.Location != "" {
			fmt.Fprintf(&b, "Location: %s | ", entry.Location)
		}
		fmt.Fprintf(&b, "%s |\n\n", entry.AddedAt.Format("2006-01-02 15:04"))
	}

	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
