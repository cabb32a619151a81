package db

import (
	"context"
	"strings"

	"Gin_postgres_redis_library_tool/circulation"
	"Gin_postgres_redis_library_tool/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Books

func (r *Repo) CreateBook(ctx context.Context, b *models.Book) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *Repo) FindBookByID(ctx context.Context, id string) (*models.Book, error) {
	var b models.Book
	if err := r.DB.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

type BooksQuery struct {
	Q      string // matches title / author / catalog number
	Status string // "", "available", "issued", "recycled"
	Page   int
	Size   int
}

type ListBooksResult struct {
	Books []models.Book `json:"books"`
	Total int64         `json:"total"`
}

func (r *Repo) ListBooks(ctx context.Context, q BooksQuery) (ListBooksResult, error) {
	q.Page, q.Size = clampPage(q.Page, q.Size)

	tx := r.DB.WithContext(ctx).Model(&models.Book{})
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(book_id) LIKE ?", like, like, like)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListBooksResult{}, err
	}

	var books []models.Book
	if err := tx.
		Order("created_at DESC").
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&books).Error; err != nil {
		return ListBooksResult{}, err
	}
	return ListBooksResult{Books: books, Total: total}, nil
}

// RecycleBook pulls a book out of circulation for good. Locks the row so
// a concurrent issue cannot slip in between the check and the update.
func (r *Repo) RecycleBook(ctx context.Context, actor Actor, bookID, note string) (*models.Book, error) {
	var b models.Book
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", bookID).Error; err != nil {
			return err
		}
		if err := circulation.Recycle(&b, note); err != nil {
			return err
		}
		if err := tx.Save(&b).Error; err != nil {
			return err
		}
		return logAction(tx, actor, "recycle", &b.ID, nil, strPtr(note))
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
