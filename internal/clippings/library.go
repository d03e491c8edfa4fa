package clippings

import (
	"time"
	"unicode"
)

// Kind classifies a clipping entry.
type Kind string

const (
	KindHighlight Kind = "highlight"
	KindNote      Kind = "note"
	KindBookmark  Kind = "bookmark"
	KindUnknown   Kind = "unknown"
)

// kindFromWord maps the lower-cased word following "- Your " onto a known
// kind. Unrecognized words become KindUnknown; the original word is kept on
// the entry for diagnostics.
func kindFromWord(word string) Kind {
	switch word {
	case "highlight", "note", "bookmark":
		return Kind(word)
	default:
		return KindUnknown
	}
}

// Entry is one parsed annotation. Entries are created during parsing and
// never mutated afterwards.
type Entry struct {
	Kind     Kind      `json:"kind"`
	RawKind  string    `json:"raw_kind,omitempty"` // original type word when Kind is unknown
	Page     string    `json:"page,omitempty"`     // may be a range, e.g. "12-13"
	Location string    `json:"location,omitempty"` // may be a range
	AddedAt  time.Time `json:"added_at"`
	Text     string    `json:"text"`
}

// Book groups all entries sharing a canonical title. The first record seen
// for a title fixes the author; later records never overwrite it.
type Book struct {
	Title   string  `json:"title"`
	Author  string  `json:"author,omitempty"`
	Entries []Entry `json:"entries"`
}

// Library is the result of one parse: books keyed by canonical title with
// first-seen insertion order preserved, plus aggregate statistics.
type Library struct {
	books map[string]*Book
	order []string

	TotalEntries   int
	DroppedRecords int
	SourceName     string
	SourcePath     string
	UpdatedAt      time.Time
}

func newLibrary(now time.Time) *Library {
	return &Library{
		books:     make(map[string]*Book),
		UpdatedAt: now,
	}
}

// Book returns the book for a canonical title, or nil when absent.
func (l *Library) Book(title string) *Book {
	return l.books[title]
}

// Books returns all books in first-seen file order.
func (l *Library) Books() []*Book {
	books := make([]*Book, 0, len(l.order))
	for _, title := range l.order {
		books = append(books, l.books[title])
	}
	return books
}

// Titles returns the canonical titles in first-seen file order.
func (l *Library) Titles() []string {
	titles := make([]string, len(l.order))
	copy(titles, l.order)
	return titles
}

// Len returns the number of books.
func (l *Library) Len() int {
	return len(l.books)
}

// Sections groups titles by their upper-cased first letter for sectioned
// browsing. Titles starting with a non-letter bucket under "#". This is a
// derived view; iteration order within a section follows file order.
func (l *Library) Sections() map[string][]string {
	sections := make(map[string][]string)
	for _, title := range l.order {
		key := "#"
		for _, r := range title {
			if unicode.IsLetter(r) {
				key = string(unicode.ToUpper(r))
			}
			break
		}
		sections[key] = append(sections[key], title)
	}
	return sections
}

// add appends an entry to the book for the canonical title, creating the
// book on first sight.
func (l *Library) add(title, author string, entry Entry) {
	book, ok := l.books[title]
	if !ok {
		book = &Book{Title: title, Author: author}
		l.books[title] = book
		l.order = append(l.order, title)
	}
	book.Entries = append(book.Entries, entry)
	l.TotalEntries++
}
