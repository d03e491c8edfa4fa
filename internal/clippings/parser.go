// Package clippings parses Kindle "My Clippings.txt" exports into an
// in-memory library of books and annotation entries.
//
// The format is a flat text file of records separated by a line of ten
// equals signs. Each record carries a free-form header line with title and
// optional author, a metadata line with type, page, location and date, and
// the annotation body. Device locales and firmware versions disagree on date
// formats and metadata phrasing, so extraction is best effort: malformed
// records are dropped silently, unknown entry types and unparseable dates
// degrade to safe defaults, and only an unreadable source is an error.
package clippings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// ErrSourceUnreadable marks a clippings source that could not be opened or
// read at all. It is the only failure the parser propagates; check with
// errors.Is to distinguish it from a legitimately empty export.
var ErrSourceUnreadable = errors.New("clippings source unreadable")

// IsSourceUnreadable reports whether err came from a source that could not
// be read, as opposed to a valid parse that found nothing.
func IsSourceUnreadable(err error) bool {
	return errors.Is(err, ErrSourceUnreadable)
}

const recordDelimiter = "==========\n"

const utf8BOM = "\ufeff"

var (
	// Author is the last parenthetical expression anchored at the end of the
	// header line, with no nested parentheses inside. A title that happens to
	// end in unrelated parentheses is indistinguishable from an attribution
	// and will be misparsed; accepted ambiguity.
	authorPattern = regexp.MustCompile(`\(([^()]+)\)$`)

	// Emphasis tags that sometimes leak into exported titles.
	markupPattern = regexp.MustCompile(`</?[ib]>`)

	// Matches: "- Your Highlight on page 8 | Location 64-64 | Added on ..."
	kindPattern     = regexp.MustCompile(`- Your (\w+)`)
	pagePattern     = regexp.MustCompile(`on page (\d+(?:-\d+)?)`)
	locationPattern = regexp.MustCompile(`Location (\d+(?:-\d+)?)`)
	datePattern     = regexp.MustCompile(`Added on (.+?)(\||$)`)

	// Known date layouts, tried in order; commas are stripped from the date
	// text before matching. Covers US and non-US weekday/month orderings in
	// both 12h and 24h clocks.
	dateLayouts = []string{
		"Monday January 2 2006 3:04:05 PM",
		"Monday January 2 2006 15:04:05",
		"Monday 2 January 2006 3:04:05 PM",
		"Monday 2 January 2006 15:04:05",
	}
)

// Parser parses the clippings format. It keeps no state between calls; each
// Parse builds an independent Library.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses a clippings file. A file that cannot be read
// yields an empty Library and an error wrapping ErrSourceUnreadable.
func (p *Parser) ParseFile(path string) (*Library, error) {
	now := time.Now()
	raw, err := os.ReadFile(path)
	if err != nil {
		return newLibrary(now), fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}

	lib := p.parse(string(raw), now)
	lib.SourcePath = path
	lib.SourceName = filepath.Base(path)
	return lib, nil
}

// Parse parses clippings from a reader. The whole source is read into
// memory; exports are bounded by a user's highlight history, not streamed.
func (p *Parser) Parse(r io.Reader) (*Library, error) {
	now := time.Now()
	raw, err := io.ReadAll(r)
	if err != nil {
		return newLibrary(now), fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	return p.parse(string(raw), now), nil
}

func (p *Parser) parse(raw string, now time.Time) *Library {
	lib := newLibrary(now)

	// Tolerate a BOM prefix and Windows line endings.
	raw = strings.TrimPrefix(raw, utf8BOM)
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	for _, record := range strings.Split(raw, recordDelimiter) {
		if strings.TrimSpace(record) == "" {
			continue
		}
		p.parseRecord(lib, record, now)
	}

	return lib
}

// parseRecord parses one delimiter-separated record and appends the entry to
// its book. Records with fewer than 3 meaningful lines or without a
// recognizable metadata line are dropped silently.
func (p *Parser) parseRecord(lib *Library, record string, now time.Time) {
	var lines []string
	for _, line := range strings.Split(record, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) < 3 {
		lib.DroppedRecords++
		return
	}

	entry, ok := parseMetadata(lines[1], now)
	if !ok {
		lib.DroppedRecords++
		return
	}

	title, author := parseTitleAuthor(lines[0])
	entry.Text = strings.Join(lines[2:], "\n")

	lib.add(sanitizeTitle(title), author, entry)
}

// parseTitleAuthor splits the header line into title and optional author.
func parseTitleAuthor(line string) (title, author string) {
	if m := authorPattern.FindStringSubmatchIndex(line); m != nil {
		author = strings.TrimSpace(line[m[2]:m[3]])
		title = strings.TrimSpace(line[:m[0]])
		return title, author
	}
	return line, ""
}

// sanitizeTitle produces the canonical title used as the book identity key.
// Colons are reserved for namespaces in the destination notebook and are
// replaced; leaked emphasis tags are stripped.
func sanitizeTitle(title string) string {
	title = strings.ReplaceAll(title, ":", " -")
	return markupPattern.ReplaceAllString(title, "")
}

// parseMetadata extracts kind, page, location and date from the second line
// of a record. A line without a "- Your <kind>" marker invalidates the whole
// record. Page and location are optional; a date that matches none of the
// known layouts falls back to the capture time rather than failing.
func parseMetadata(line string, now time.Time) (Entry, bool) {
	m := kindPattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}

	word := strings.ToLower(m[1])
	entry := Entry{Kind: kindFromWord(word)}
	if entry.Kind == KindUnknown {
		entry.RawKind = word
	}

	if m := pagePattern.FindStringSubmatch(line); m != nil {
		entry.Page = m[1]
	}
	if m := locationPattern.FindStringSubmatch(line); m != nil {
		entry.Location = m[1]
	}

	entry.AddedAt = now
	if m := datePattern.FindStringSubmatch(line); m != nil {
		dateText := strings.ReplaceAll(strings.TrimSpace(m[1]), ",", "")
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, dateText); err == nil {
				entry.AddedAt = t
				break
			}
		}
	}

	return entry, true
}
