// Package database persists imported books and entries in SQLite via gorm.
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bruvellu/zim-kindle/internal/clippings"
	"github.com/bruvellu/zim-kindle/internal/entities"
	"github.com/bruvellu/zim-kindle/internal/zim"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.Entry{},
		&entities.ImportSession{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveLibrary persists a parsed library. Books are matched by canonical
// title; entries are appended in file order. An ImportSession row records
// the run.
func (d *Database) SaveLibrary(lib *clippings.Library) (*entities.ImportSession, error) {
	session := &entities.ImportSession{
		SourcePath:     lib.SourcePath,
		Status:         entities.ImportStatusRunning,
		RecordsDropped: lib.DroppedRecords,
		StartedAt:      lib.UpdatedAt,
	}
	if err := d.DB.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create import session: %w", err)
	}

	for _, book := range lib.Books() {
		if err := d.saveBook(book); err != nil {
			session.Status = entities.ImportStatusFailed
			session.Error = err.Error()
			d.completeSession(session)
			return session, fmt.Errorf("failed to save %q: %w", book.Title, err)
		}
		session.BooksImported++
		session.EntriesCreated += len(book.Entries)
	}

	session.Status = entities.ImportStatusCompleted
	d.completeSession(session)
	return session, nil
}

func (d *Database) completeSession(session *entities.ImportSession) {
	now := time.Now()
	session.CompletedAt = &now
	if err := d.DB.Save(session).Error; err != nil {
		log.Printf("Failed to update import session %d: %v", session.ID, err)
	}
}

func (d *Database) saveBook(book *clippings.Book) error {
	record := entities.Book{
		Title:    book.Title,
		Author:   book.Author,
		PageName: zim.MakeValidPageName(book.Title),
	}

	err := d.DB.Where("title = ?", book.Title).FirstOrCreate(&record).Error
	if err != nil {
		return err
	}

	for _, entry := range book.Entries {
		row := entities.Entry{
			BookID:   record.ID,
			Kind:     string(entry.Kind),
			RawKind:  entry.RawKind,
			Page:     entry.Page,
			Location: entry.Location,
			Text:     entry.Text,
			AddedAt:  entry.AddedAt,
		}
		if err := d.DB.Create(&row).Error; err != nil {
			return err
		}
	}

	return nil
}

// GetAllBooks returns all books with their entries, ordered by insertion.
func (d *Database) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := d.DB.Preload("Entries", func(db *gorm.DB) *gorm.DB {
		return db.Order("entries.id ASC")
	}).Order("books.id ASC").Find(&books).Error
	return books, err
}

// GetBookByID returns one book with its entries.
func (d *Database) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := d.DB.Preload("Entries", func(db *gorm.DB) *gorm.DB {
		return db.Order("entries.id ASC")
	}).First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetBookByTitle returns one book matched by canonical title.
func (d *Database) GetBookByTitle(title string) (*entities.Book, error) {
	var book entities.Book
	err := d.DB.Preload("Entries").Where("title = ?", title).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// CountEntries returns the total number of persisted entries.
func (d *Database) CountEntries() (int64, error) {
	var count int64
	err := d.DB.Model(&entities.Entry{}).Count(&count).Error
	return count, err
}

// GetRecentSessions returns the most recent import sessions, newest first.
func (d *Database) GetRecentSessions(limit int) ([]entities.ImportSession, error) {
	var sessions []entities.ImportSession
	err := d.DB.Order("id DESC").Limit(limit).Find(&sessions).Error
	return sessions, err
}
