package db

import (
	"context"
	"fmt"
	"time"

	"Gin_postgres_redis_library_tool/circulation"
	"Gin_postgres_redis_library_tool/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Issues (the circulation records)

// IssueBook lends a book to a student. One transaction: lock the book
// row, verify it is lendable and has no open issue, create the issue and
// flip the book in the same commit. Two concurrent issues for the same
// book cannot both succeed.
func (r *Repo) IssueBook(ctx context.Context, actor Actor, bookID, studentID string, dueDate time.Time) (*models.Issue, error) {
	var issue *models.Issue
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		issue, err = issueBookTx(tx, actor, bookID, studentID, dueDate)
		return err
	})
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// lockBookForIssue locks the book row and verifies no issue is still
// open against it. Belt and braces next to the status check: an open
// issue means the status column is stale, refuse either way.
func lockBookForIssue(tx *gorm.DB, bookID string) (*models.Book, error) {
	var b models.Book
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, "id = ?", bookID).Error; err != nil {
		return nil, err
	}

	var n int64
	if err := tx.Model(&models.Issue{}).
		Where("book_id = ? AND returned_at IS NULL", bookID).
		Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, circulation.ErrBookNotAvailable
	}
	return &b, nil
}

// issueBookTx runs the issue transition inside an existing transaction so
// request approval can reuse it.
func issueBookTx(tx *gorm.DB, actor Actor, bookID, studentID string, dueDate time.Time) (*models.Issue, error) {
	b, err := lockBookForIssue(tx, bookID)
	if err != nil {
		return nil, err
	}

	var s models.Student
	if err := tx.First(&s, "id = ?", studentID).Error; err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	issue, err := circulation.Issue(b, s.ID, dueDate, now)
	if err != nil {
		return nil, err
	}
	issue.ID = uuid.NewString()

	if err := tx.Create(issue).Error; err != nil {
		return nil, err
	}
	if err := tx.Save(b).Error; err != nil {
		return nil, err
	}
	if err := logAction(tx, actor, "issue", &b.ID, &issue.ID, nil); err != nil {
		return nil, err
	}
	return issue, nil
}

// ReturnIssue closes an open issue, finalizes the fine and frees the
// book. Returning an already-returned issue is a no-op with zero fine.
func (r *Repo) ReturnIssue(ctx context.Context, actor Actor, issueID string, rate float64) (*models.Issue, float64, error) {
	var (
		issue models.Issue
		fine  float64
	)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&issue, "id = ?", issueID).Error; err != nil {
			return err
		}
		if !issue.Open() {
			fine = 0
			return nil
		}

		var b models.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", issue.BookID).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		f, err := circulation.Return(&issue, &b, now, rate)
		if err != nil {
			return err
		}
		fine = f

		if err := tx.Save(&issue).Error; err != nil {
			return err
		}
		if err := tx.Save(&b).Error; err != nil {
			return err
		}
		detail := fmt.Sprintf("fine=%.2f", fine)
		return logAction(tx, actor, "return", &b.ID, &issue.ID, &detail)
	})
	if err != nil {
		return nil, 0, err
	}
	return &issue, fine, nil
}

func (r *Repo) FindIssueByID(ctx context.Context, id string) (*models.Issue, error) {
	var i models.Issue
	if err := r.DB.WithContext(ctx).First(&i, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

type IssuesQuery struct {
	StudentID string
	BookID    string
	Status    string // "", "open", "returned"
	Page      int
	Size      int
}

type ListIssuesResult struct {
	Issues []models.Issue `json:"issues"`
	Total  int64          `json:"total"`
}

func (r *Repo) ListIssues(ctx context.Context, q IssuesQuery) (ListIssuesResult, error) {
	q.Page, q.Size = clampPage(q.Page, q.Size)

	tx := r.DB.WithContext(ctx).Model(&models.Issue{})
	if q.StudentID != "" {
		tx = tx.Where("student_id = ?", q.StudentID)
	}
	if q.BookID != "" {
		tx = tx.Where("book_id = ?", q.BookID)
	}
	switch q.Status {
	case "open":
		tx = tx.Where("returned_at IS NULL")
	case "returned":
		tx = tx.Where("returned_at IS NOT NULL")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListIssuesResult{}, err
	}

	var issues []models.Issue
	if err := tx.
		Order("issued_at DESC").
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&issues).Error; err != nil {
		return ListIssuesResult{}, err
	}
	return ListIssuesResult{Issues: issues, Total: total}, nil
}

// SettleIssueFine marks the finalized fine on a returned issue as paid.
func (r *Repo) SettleIssueFine(ctx context.Context, actor Actor, issueID string) (*models.Issue, error) {
	var issue models.Issue
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&issue, "id = ?", issueID).Error; err != nil {
			return err
		}
		if err := circulation.SettleFine(&issue); err != nil {
			return err
		}
		if err := tx.Save(&issue).Error; err != nil {
			return err
		}
		detail := fmt.Sprintf("fine=%.2f", issue.FineAmount)
		return logAction(tx, actor, "settle_fine", &issue.BookID, &issue.ID, &detail)
	})
	if err != nil {
		return nil, err
	}
	return &issue, nil
}
