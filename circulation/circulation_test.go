package circulation_test

import (
	"testing"
	"time"

	"Gin_postgres_redis_library_tool/circulation"
	"Gin_postgres_redis_library_tool/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func availableBook() *models.Book {
	return &models.Book{
		ID:     "book-1",
		BookID: "ACC-001",
		Title:  "The Go Programming Language",
		Author: "Donovan & Kernighan",
		Status: models.BookAvailable,
	}
}

func TestIssue_OpensLoanAndMarksAccess(t *testing.T) {
	b := availableBook()
	due := base.AddDate(0, 0, 14)

	issue, err := circulation.Issue(b, "student-1", due, base)
	require.NoError(t, err)

	assert.Equal(t, models.BookIssued, b.Status)
	assert.Equal(t, int64(1), b.AccessCount)
	require.NotNil(t, b.LastAccessedAt)
	assert.Equal(t, base, *b.LastAccessedAt)

	assert.Equal(t, b.ID, issue.BookID)
	assert.Equal(t, "student-1", issue.StudentID)
	assert.Equal(t, base, issue.IssuedAt)
	assert.Equal(t, due, issue.DueDate)
	assert.True(t, issue.Open())
	assert.Zero(t, issue.FineAmount)
}

func TestIssue_RejectsNonAvailableBook(t *testing.T) {
	issued := availableBook()
	issued.Status = models.BookIssued
	_, err := circulation.Issue(issued, "student-1", base, base)
	assert.ErrorIs(t, err, circulation.ErrBookNotAvailable)

	recycled := availableBook()
	recycled.Status = models.BookRecycled
	recycled.AccessCount = 42 // access history must not matter
	_, err = circulation.Issue(recycled, "student-1", base, base)
	assert.ErrorIs(t, err, circulation.ErrBookRecycled)
	assert.Equal(t, int64(42), recycled.AccessCount)
}

func TestReturn_OnTimeHasNoFine(t *testing.T) {
	b := availableBook()
	issue, err := circulation.Issue(b, "student-1", base.AddDate(0, 0, 14), base)
	require.NoError(t, err)

	fine, err := circulation.Return(issue, b, base.AddDate(0, 0, 7), 1.0)
	require.NoError(t, err)

	assert.Zero(t, fine)
	assert.Equal(t, models.BookAvailable, b.Status)
	assert.False(t, issue.Open())
}

func TestReturn_FiveDaysLateChargesFiveTimesRate(t *testing.T) {
	const rate = 2.5
	b := availableBook()
	issue, err := circulation.Issue(b, "student-1", base, base) // due today
	require.NoError(t, err)

	fine, err := circulation.Return(issue, b, base.AddDate(0, 0, 5), rate)
	require.NoError(t, err)

	assert.Equal(t, 5*rate, fine)
	assert.Equal(t, 5*rate, issue.FineAmount)
	assert.Equal(t, models.BookAvailable, b.Status)
}

func TestReturn_DoubleReturnIsNoOp(t *testing.T) {
	b := availableBook()
	issue, err := circulation.Issue(b, "student-1", base, base)
	require.NoError(t, err)

	first, err := circulation.Return(issue, b, base.AddDate(0, 0, 3), 1.0)
	require.NoError(t, err)
	require.Equal(t, 3.0, first)

	returnedAt := *issue.ReturnedAt
	again, err := circulation.Return(issue, b, base.AddDate(0, 0, 30), 1.0)
	require.NoError(t, err)

	assert.Zero(t, again, "second return must not charge again")
	assert.Equal(t, 3.0, issue.FineAmount, "fine unchanged")
	assert.Equal(t, returnedAt, *issue.ReturnedAt, "return timestamp unchanged")
	assert.Equal(t, models.BookAvailable, b.Status)
}

func TestFine_PureAndDateTruncated(t *testing.T) {
	due := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	// Same calendar day, different clock times: no fine.
	assert.Zero(t, circulation.Fine(due, due.Add(23*time.Hour), 1.0))
	// Early return never goes negative.
	assert.Zero(t, circulation.Fine(due, due.AddDate(0, 0, -3), 1.0))
	// Whole days late.
	assert.Equal(t, 4.0, circulation.Fine(due, due.AddDate(0, 0, 4), 1.0))

	// Identical inputs, identical outputs.
	a := circulation.Fine(due, due.AddDate(0, 0, 9), 1.5)
	b := circulation.Fine(due, due.AddDate(0, 0, 9), 1.5)
	assert.Equal(t, a, b)
}

func TestFineForIssue_DoesNotMutate(t *testing.T) {
	issue := &models.Issue{
		BookID:    "book-1",
		StudentID: "student-1",
		IssuedAt:  base,
		DueDate:   base,
	}

	fine := circulation.FineForIssue(issue, base.AddDate(0, 0, 2), 1.0)
	assert.Equal(t, 2.0, fine)
	assert.True(t, issue.Open(), "preview must not close the issue")
	assert.Zero(t, issue.FineAmount, "preview must not record a fine")

	// Once returned, the recorded return date wins over asOf.
	ret := base.AddDate(0, 0, 1)
	issue.ReturnedAt = &ret
	issue.FineAmount = 1.0
	assert.Equal(t, 1.0, circulation.FineForIssue(issue, base.AddDate(0, 0, 100), 1.0))
}

func TestRecycle_TerminalState(t *testing.T) {
	b := availableBook()
	require.NoError(t, circulation.Recycle(b, "water damage"))
	assert.Equal(t, models.BookRecycled, b.Status)
	assert.Equal(t, "water damage", b.RecycleStatus)

	assert.ErrorIs(t, circulation.Recycle(b, "again"), circulation.ErrBookRecycled)

	issued := availableBook()
	issued.Status = models.BookIssued
	assert.ErrorIs(t, circulation.Recycle(issued, ""), circulation.ErrBookNotAvailable)
}

func TestNewRequest_Conflicts(t *testing.T) {
	b := availableBook()

	req, err := circulation.NewRequest(b, "student-1", false, base)
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, req.Status)
	assert.Equal(t, base, req.RequestDate)

	_, err = circulation.NewRequest(b, "student-1", true, base)
	assert.ErrorIs(t, err, circulation.ErrDuplicateRequest)

	b.Status = models.BookIssued
	_, err = circulation.NewRequest(b, "student-2", false, base)
	assert.ErrorIs(t, err, circulation.ErrBookNotAvailable)
}

func TestApprove_BookTakenSinceRequestLeavesPending(t *testing.T) {
	b := availableBook()
	req, err := circulation.NewRequest(b, "student-1", false, base)
	require.NoError(t, err)

	// A librarian issues the book to someone else before the decision.
	_, err = circulation.Issue(b, "student-2", base.AddDate(0, 0, 14), base)
	require.NoError(t, err)

	_, err = circulation.Approve(req, b, base.AddDate(0, 0, 14), base)
	assert.ErrorIs(t, err, circulation.ErrBookNotAvailable)
	assert.Equal(t, models.RequestPending, req.Status, "failed approval must leave the request pending")
}

func TestApprove_SpawnsIssue(t *testing.T) {
	b := availableBook()
	req, err := circulation.NewRequest(b, "student-1", false, base)
	require.NoError(t, err)

	due := base.AddDate(0, 0, 14)
	issue, err := circulation.Approve(req, b, due, base)
	require.NoError(t, err)

	assert.Equal(t, models.RequestApproved, req.Status)
	require.NotNil(t, req.DecidedAt)
	assert.Equal(t, "student-1", issue.StudentID)
	assert.Equal(t, models.BookIssued, b.Status)

	// Terminal: no second decision.
	_, err = circulation.Approve(req, b, due, base)
	assert.ErrorIs(t, err, circulation.ErrRequestDecided)
	assert.ErrorIs(t, circulation.Reject(req, "late", base), circulation.ErrRequestDecided)
}

func TestReject_RecordsReason(t *testing.T) {
	b := availableBook()
	req, err := circulation.NewRequest(b, "student-1", false, base)
	require.NoError(t, err)

	require.NoError(t, circulation.Reject(req, "reference-only copy", base))
	assert.Equal(t, models.RequestRejected, req.Status)
	require.NotNil(t, req.RejectReason)
	assert.Equal(t, "reference-only copy", *req.RejectReason)

	assert.ErrorIs(t, circulation.Reject(req, "again", base), circulation.ErrRequestDecided)
}

func TestSettleFine(t *testing.T) {
	issue := &models.Issue{DueDate: base}
	assert.ErrorIs(t, circulation.SettleFine(issue), circulation.ErrFineNotDue)

	ret := base.AddDate(0, 0, 2)
	issue.ReturnedAt = &ret
	issue.FineAmount = 2.0

	require.NoError(t, circulation.SettleFine(issue))
	assert.True(t, issue.FinePaid)
	assert.ErrorIs(t, circulation.SettleFine(issue), circulation.ErrFineAlreadyPaid)
}

func TestLifecycle_IssueReturnRoundTrip(t *testing.T) {
	const rate = circulation.DefaultFineRate
	b := availableBook()

	issue, err := circulation.Issue(b, "student-1", base, base) // due today
	require.NoError(t, err)
	assert.Equal(t, models.BookIssued, b.Status)

	// Clock advances five days before the student shows up.
	fine, err := circulation.Return(issue, b, base.AddDate(0, 0, 5), rate)
	require.NoError(t, err)

	assert.Equal(t, 5*rate, fine)
	assert.Equal(t, models.BookAvailable, b.Status)
	assert.False(t, issue.Open())

	// The freed copy can circulate again.
	_, err = circulation.Issue(b, "student-2", base.AddDate(0, 0, 19), base.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, int64(2), b.AccessCount)
}
