// controllers/issue_controller.go
package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"Gin_postgres_redis_library_tool/app"
	"Gin_postgres_redis_library_tool/circulation"
	"Gin_postgres_redis_library_tool/db"
	"Gin_postgres_redis_library_tool/metrics"
	"Gin_postgres_redis_library_tool/models"

	"github.com/gin-gonic/gin"
)

type IssueStore interface {
	IssueBook(ctx context.Context, actor db.Actor, bookID, studentID string, dueDate time.Time) (*models.Issue, error)
	ReturnIssue(ctx context.Context, actor db.Actor, issueID string, rate float64) (*models.Issue, float64, error)
	FindIssueByID(ctx context.Context, id string) (*models.Issue, error)
	ListIssues(ctx context.Context, q db.IssuesQuery) (db.ListIssuesResult, error)
	SettleIssueFine(ctx context.Context, actor db.Actor, issueID string) (*models.Issue, error)
}

type IssueController struct {
	store IssueStore
	cfg   app.Config
}

func NewIssueController(store IssueStore, cfg app.Config) *IssueController {
	return &IssueController{store: store, cfg: cfg}
}

// IssueBook lends a book directly from the front desk.
func (ic *IssueController) IssueBook(c *gin.Context) {
	var in struct {
		BookID    string `json:"bookId" binding:"required"`
		StudentID string `json:"studentId" binding:"required"`
		DueDate   string `json:"dueDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	due, ok := parseDate(in.DueDate)
	if !ok {
		c.JSON(http.StatusBadRequest, app.H{"error": "dueDate must be YYYY-MM-DD"})
		return
	}

	issue, err := ic.store.IssueBook(c.Request.Context(), actorFrom(c), in.BookID, in.StudentID, due)
	if err != nil {
		respondErr(c, err)
		return
	}
	metrics.IssuesTotal.Inc()
	c.JSON(http.StatusCreated, issue)
}

// ReturnIssue closes an open issue. A repeated return is a no-op that
// reports zero fine.
func (ic *IssueController) ReturnIssue(c *gin.Context) {
	issue, fine, err := ic.store.ReturnIssue(c.Request.Context(), actorFrom(c), c.Param("id"), ic.cfg.FineRatePerDay)
	if err != nil {
		respondErr(c, err)
		return
	}
	metrics.ReturnsTotal.Inc()
	if fine > 0 {
		metrics.FinesAssessed.Add(fine)
	}
	c.JSON(http.StatusOK, app.H{"issue": issue, "fine": fine})
}

func (ic *IssueController) GetIssue(c *gin.Context) {
	issue, err := ic.store.FindIssueByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// PreviewFine shows what the student would owe, without committing a
// return. asOf defaults to today.
func (ic *IssueController) PreviewFine(c *gin.Context) {
	issue, err := ic.store.FindIssueByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	asOf := time.Now().UTC()
	if s := c.Query("asOf"); s != "" {
		t, ok := parseDate(s)
		if !ok {
			c.JSON(http.StatusBadRequest, app.H{"error": "asOf must be YYYY-MM-DD"})
			return
		}
		asOf = t
	}

	fine := circulation.FineForIssue(issue, asOf, ic.cfg.FineRatePerDay)
	c.JSON(http.StatusOK, app.H{
		"issueId":     issue.ID,
		"dueDate":     issue.DueDate.Format(dateLayout),
		"daysOverdue": circulation.DaysOverdue(issue.DueDate, effectiveDate(issue, asOf)),
		"fine":        fine,
		"finalized":   issue.ReturnedAt != nil,
	})
}

func effectiveDate(issue *models.Issue, asOf time.Time) time.Time {
	if issue.ReturnedAt != nil {
		return *issue.ReturnedAt
	}
	return asOf
}

func (ic *IssueController) ListIssues(c *gin.Context) {
	q := db.IssuesQuery{
		StudentID: c.Query("studentId"),
		BookID:    c.Query("bookId"),
		Status:    c.Query("status"),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := ic.store.ListIssues(c.Request.Context(), q)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// SettleFine records that the student paid the finalized fine.
func (ic *IssueController) SettleFine(c *gin.Context) {
	issue, err := ic.store.SettleIssueFine(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}
