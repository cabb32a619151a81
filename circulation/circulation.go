// Package circulation holds the issue/return/fine lifecycle and the
// request-decision rules. Functions here mutate already-loaded records
// and never touch the database; db.Repo calls them inside row-locked
// transactions so every multi-entity transition commits atomically.
package circulation

import (
	"time"

	"Gin_postgres_redis_library_tool/models"
)

// DefaultFineRate is the flat daily fine in currency units. Deployments
// override it via FINE_RATE_PER_DAY; there is no per-book or per-student
// schedule.
const DefaultFineRate = 1.0

// Issue opens a loan: the book must be available (a recycled book can
// never be issued again). Mutates the book (status, access bookkeeping)
// and returns the new open Issue. The caller assigns the record ID and
// persists both rows together.
func Issue(book *models.Book, studentID string, dueDate, now time.Time) (*models.Issue, error) {
	if book.Status == models.BookRecycled {
		return nil, ErrBookRecycled
	}
	if book.Status != models.BookAvailable {
		return nil, ErrBookNotAvailable
	}

	book.Status = models.BookIssued
	book.AccessCount++
	book.LastAccessedAt = &now

	return &models.Issue{
		BookID:    book.ID,
		StudentID: studentID,
		IssuedAt:  now,
		DueDate:   dueDate,
	}, nil
}

// Return closes an open issue and frees the book. Calling it on an
// already-returned issue is a no-op that reports zero fine; a second
// return must never double-charge.
func Return(issue *models.Issue, book *models.Book, now time.Time, rate float64) (float64, error) {
	if !issue.Open() {
		return 0, nil
	}

	fine := Fine(issue.DueDate, now, rate)
	issue.ReturnedAt = &now
	issue.FineAmount = fine
	book.Status = models.BookAvailable
	return fine, nil
}

// Fine is the flat-rate overdue charge for a loan due on dueDate and
// handed back on asOf. Pure; both arguments are truncated to dates.
func Fine(dueDate, asOf time.Time, rate float64) float64 {
	return float64(DaysOverdue(dueDate, asOf)) * rate
}

// FineForIssue projects the fine without mutating anything: the recorded
// return date wins, otherwise asOf stands in for it (preview screens ask
// "what would the student owe today?").
func FineForIssue(issue *models.Issue, asOf time.Time, rate float64) float64 {
	effective := asOf
	if issue.ReturnedAt != nil {
		effective = *issue.ReturnedAt
	}
	return Fine(issue.DueDate, effective, rate)
}

// DaysOverdue counts whole calendar days past the due date, never negative.
func DaysOverdue(dueDate, asOf time.Time) int {
	due := truncateToDate(dueDate)
	ret := truncateToDate(asOf)
	days := int(ret.Sub(due).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Recycle permanently removes a book from lending. Only an available
// book can be recycled; an issued copy has to come back first.
func Recycle(book *models.Book, note string) error {
	if book.Status == models.BookRecycled {
		return ErrBookRecycled
	}
	if book.Status != models.BookAvailable {
		return ErrBookNotAvailable
	}
	book.Status = models.BookRecycled
	if note == "" {
		note = "Recycled"
	}
	book.RecycleStatus = note
	return nil
}

// NewRequest files a borrowing proposal. The book must be lendable right
// now and the student may hold at most one pending request per book;
// hasPending is the caller's duplicate lookup result.
func NewRequest(book *models.Book, studentID string, hasPending bool, now time.Time) (*models.BookRequest, error) {
	if book.Status == models.BookRecycled {
		return nil, ErrBookRecycled
	}
	if book.Status != models.BookAvailable {
		return nil, ErrBookNotAvailable
	}
	if hasPending {
		return nil, ErrDuplicateRequest
	}
	return &models.BookRequest{
		StudentID:   studentID,
		BookID:      book.ID,
		Status:      models.RequestPending,
		RequestDate: now,
	}, nil
}

// Approve re-validates availability (the book may have been issued or
// recycled since the request was filed) and opens the issue. On conflict
// the request stays pending so the librarian can retry or reject later.
func Approve(req *models.BookRequest, book *models.Book, dueDate, now time.Time) (*models.Issue, error) {
	if !req.Pending() {
		return nil, ErrRequestDecided
	}
	issue, err := Issue(book, req.StudentID, dueDate, now)
	if err != nil {
		return nil, err
	}
	req.Status = models.RequestApproved
	req.DecidedAt = &now
	return issue, nil
}

// Reject terminally declines a pending request, recording the reason.
func Reject(req *models.BookRequest, reason string, now time.Time) error {
	if !req.Pending() {
		return ErrRequestDecided
	}
	req.Status = models.RequestRejected
	req.DecidedAt = &now
	if reason != "" {
		req.RejectReason = &reason
	}
	return nil
}

// SettleFine marks a finalized fine as collected.
func SettleFine(issue *models.Issue) error {
	if issue.Open() {
		return ErrFineNotDue
	}
	if issue.FinePaid {
		return ErrFineAlreadyPaid
	}
	issue.FinePaid = true
	return nil
}
