// controllers/request_controller.go
package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"Gin_postgres_redis_library_tool/app"
	"Gin_postgres_redis_library_tool/db"
	"Gin_postgres_redis_library_tool/metrics"
	"Gin_postgres_redis_library_tool/models"

	"github.com/gin-gonic/gin"
)

type RequestStore interface {
	CreateRequest(ctx context.Context, studentID, bookID string) (*models.BookRequest, error)
	DecideRequest(ctx context.Context, actor db.Actor, requestID string, approve bool, reason string, dueDate time.Time) (*models.BookRequest, *models.Issue, error)
	FindRequestByID(ctx context.Context, id string) (*models.BookRequest, error)
	ListRequests(ctx context.Context, q db.RequestsQuery) (db.ListRequestsResult, error)
	FindStudentByUserID(ctx context.Context, userID string) (*models.Student, error)
}

type RequestController struct {
	store RequestStore
	cfg   app.Config
}

func NewRequestController(store RequestStore, cfg app.Config) *RequestController {
	return &RequestController{store: store, cfg: cfg}
}

// RequestBook files a borrowing proposal for the logged-in student.
func (rc *RequestController) RequestBook(c *gin.Context) {
	actor := actorFrom(c)
	student, err := rc.store.FindStudentByUserID(c.Request.Context(), actor.ID)
	if err != nil {
		if db.IsNotFound(err) {
			c.JSON(http.StatusForbidden, app.H{"error": "no student record linked to this account"})
			return
		}
		respondErr(c, err)
		return
	}

	req, err := rc.store.CreateRequest(c.Request.Context(), student.ID, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// DecideRequest approves or rejects a pending request. Approval issues
// the book with the deployment default loan period.
func (rc *RequestController) DecideRequest(c *gin.Context) {
	var in struct {
		Action string `json:"action" binding:"required"` // approve | reject
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.Action != "approve" && in.Action != "reject" {
		c.JSON(http.StatusBadRequest, app.H{"error": "action must be approve or reject"})
		return
	}

	due := time.Now().UTC().AddDate(0, 0, rc.cfg.DefaultLoanDays)
	req, issue, err := rc.store.DecideRequest(c.Request.Context(), actorFrom(c), c.Param("id"), in.Action == "approve", in.Reason, due)
	if err != nil {
		respondErr(c, err)
		return
	}
	if issue != nil {
		metrics.IssuesTotal.Inc()
	}
	c.JSON(http.StatusOK, app.H{"request": req, "issue": issue})
}

// ListRequests shows all requests to librarians; students only see
// their own.
func (rc *RequestController) ListRequests(c *gin.Context) {
	q := db.RequestsQuery{Status: c.Query("status")}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))

	actor := actorFrom(c)
	if actor.Role == models.RoleStudent {
		student, err := rc.store.FindStudentByUserID(c.Request.Context(), actor.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
		q.StudentID = student.ID
	} else if sid := c.Query("studentId"); sid != "" {
		q.StudentID = sid
	}

	res, err := rc.store.ListRequests(c.Request.Context(), q)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (rc *RequestController) GetRequest(c *gin.Context) {
	req, err := rc.store.FindRequestByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
