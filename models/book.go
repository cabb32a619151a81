// models/book.go
package models

import "time"

const BookTable = "lib_books"

type BookStatus string

const (
	BookAvailable BookStatus = "available"
	BookIssued    BookStatus = "issued"
	BookRecycled  BookStatus = "recycled" // terminal, barred from lending
)

type Book struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	BookID string `gorm:"size:64;uniqueIndex;not null" json:"bookId"` // catalog/accession number
	Title  string `gorm:"size:200;not null" json:"title"`
	Author string `gorm:"size:150;not null" json:"author"`

	Status        BookStatus `gorm:"size:20;not null;default:'available'" json:"status"`
	AccessCount   int64      `gorm:"not null;default:0" json:"accessCount"`
	RecycleStatus string     `gorm:"size:100;not null;default:'Not Recycled'" json:"recycleStatus"`

	LastAccessedAt *time.Time `gorm:"index" json:"lastAccessedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (Book) TableName() string { return BookTable }

// Lendable reports whether the book can be handed to a student right now.
func (b *Book) Lendable() bool { return b.Status == BookAvailable }
