// Package entities defines the persistence model for imported clippings.
package entities

import (
	"time"
)

type ImportStatus string

const (
	ImportStatusRunning   ImportStatus = "running"
	ImportStatusCompleted ImportStatus = "completed"
	ImportStatusFailed    ImportStatus = "failed"
)

// Book is a persisted book keyed by its canonical title.
type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"uniqueIndex;size:512" json:"title"`
	Author    string    `gorm:"index;size:256" json:"author,omitempty"`
	PageName  string    `gorm:"size:512" json:"page_name"` // valid Zim page name derived from title
	Entries   []Entry   `gorm:"foreignKey:BookID" json:"entries,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Entry is one persisted annotation. Entries are append-only; re-importing
// the same clippings file appends again rather than deduplicating.
type Entry struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	BookID   uint      `gorm:"index" json:"book_id"`
	Kind     string    `gorm:"size:20" json:"kind"`
	RawKind  string    `gorm:"size:50" json:"raw_kind,omitempty"`
	Page     string    `gorm:"size:20" json:"page,omitempty"`
	Location string    `gorm:"size:20" json:"location,omitempty"`
	Text     string    `gorm:"type:text" json:"text"`
	AddedAt  time.Time `json:"added_at"`

	CreatedAt time.Time `json:"created_at"`
}

// ImportSession records one import run for diagnostics.
type ImportSession struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	SourcePath     string       `gorm:"size:1024" json:"source_path"`
	Status         ImportStatus `gorm:"size:20;default:'running'" json:"status"`
	BooksImported  int          `json:"books_imported"`
	EntriesCreated int          `json:"entries_created"`
	RecordsDropped int          `json:"records_dropped"`
	Error          string       `gorm:"type:text" json:"error,omitempty"`
	StartedAt      time.Time    `json:"started_at"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty"`
}

func (Book) TableName() string {
	return "books"
}

func (Entry) TableName() string {
	return "entries"
}

func (ImportSession) TableName() string {
	return "import_sessions"
}
