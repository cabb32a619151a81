package db

import (
	"context"
	"time"

	"Gin_postgres_redis_library_tool/circulation"
	"Gin_postgres_redis_library_tool/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Book requests

// CreateRequest files a student's borrowing proposal. The book row is
// locked so availability cannot change under the duplicate check; the
// partial unique index catches any race the lock misses.
func (r *Repo) CreateRequest(ctx context.Context, studentID, bookID string) (*models.BookRequest, error) {
	var req *models.BookRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", bookID).Error; err != nil {
			return err
		}

		var s models.Student
		if err := tx.First(&s, "id = ?", studentID).Error; err != nil {
			return err
		}

		var pending int64
		if err := tx.Model(&models.BookRequest{}).
			Where("student_id = ? AND book_id = ? AND status = ?", studentID, bookID, models.RequestPending).
			Count(&pending).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		created, err := circulation.NewRequest(&b, s.ID, pending > 0, now)
		if err != nil {
			return err
		}
		created.ID = uuid.NewString()
		if err := tx.Create(created).Error; err != nil {
			return err
		}
		req = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// DecideRequest approves or rejects a pending request. Approval
// re-validates the book under lock and opens the issue in the same
// transaction; on conflict everything rolls back and the request stays
// pending. A processed request reports a conflict rather than silently
// ignoring the second decision.
func (r *Repo) DecideRequest(ctx context.Context, actor Actor, requestID string, approve bool, reason string, dueDate time.Time) (*models.BookRequest, *models.Issue, error) {
	var (
		req   models.BookRequest
		issue *models.Issue
	)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&req, "id = ?", requestID).Error; err != nil {
			return err
		}
		if !req.Pending() {
			return circulation.ErrRequestDecided
		}

		now := time.Now().UTC()
		if !approve {
			if err := circulation.Reject(&req, reason, now); err != nil {
				return err
			}
			if err := tx.Save(&req).Error; err != nil {
				return err
			}
			return logAction(tx, actor, "reject", &req.BookID, nil, strPtr(reason))
		}

		b, err := lockBookForIssue(tx, req.BookID)
		if err != nil {
			return err
		}
		created, err := circulation.Approve(&req, b, dueDate, now)
		if err != nil {
			return err
		}
		created.ID = uuid.NewString()

		if err := tx.Create(created).Error; err != nil {
			return err
		}
		if err := tx.Save(b).Error; err != nil {
			return err
		}
		if err := tx.Save(&req).Error; err != nil {
			return err
		}
		issue = created
		return logAction(tx, actor, "approve", &req.BookID, &created.ID, nil)
	})
	if err != nil {
		return nil, nil, err
	}
	return &req, issue, nil
}

func (r *Repo) FindRequestByID(ctx context.Context, id string) (*models.BookRequest, error) {
	var req models.BookRequest
	if err := r.DB.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

type RequestsQuery struct {
	StudentID string
	Status    string // "", "pending", "approved", "rejected"
	Page      int
	Size      int
}

type ListRequestsResult struct {
	Requests []models.BookRequest `json:"requests"`
	Total    int64                `json:"total"`
}

func (r *Repo) ListRequests(ctx context.Context, q RequestsQuery) (ListRequestsResult, error) {
	q.Page, q.Size = clampPage(q.Page, q.Size)

	tx := r.DB.WithContext(ctx).Model(&models.BookRequest{})
	if q.StudentID != "" {
		tx = tx.Where("student_id = ?", q.StudentID)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListRequestsResult{}, err
	}

	var reqs []models.BookRequest
	if err := tx.
		Order("request_date DESC").
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&reqs).Error; err != nil {
		return ListRequestsResult{}, err
	}
	return ListRequestsResult{Requests: reqs, Total: total}, nil
}
