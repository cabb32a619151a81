package controllers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"Gin_postgres_redis_library_tool/app"
	"Gin_postgres_redis_library_tool/circulation"
	"Gin_postgres_redis_library_tool/controllers"
	"Gin_postgres_redis_library_tool/db"
	"Gin_postgres_redis_library_tool/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRequestStore struct {
	createFn      func(ctx context.Context, studentID, bookID string) (*models.BookRequest, error)
	decideFn      func(ctx context.Context, actor db.Actor, requestID string, approve bool, reason string, dueDate time.Time) (*models.BookRequest, *models.Issue, error)
	findFn        func(ctx context.Context, id string) (*models.BookRequest, error)
	listFn        func(ctx context.Context, q db.RequestsQuery) (db.ListRequestsResult, error)
	findStudentFn func(ctx context.Context, userID string) (*models.Student, error)
}

func (f *fakeRequestStore) CreateRequest(ctx context.Context, studentID, bookID string) (*models.BookRequest, error) {
	return f.createFn(ctx, studentID, bookID)
}
func (f *fakeRequestStore) DecideRequest(ctx context.Context, actor db.Actor, requestID string, approve bool, reason string, dueDate time.Time) (*models.BookRequest, *models.Issue, error) {
	return f.decideFn(ctx, actor, requestID, approve, reason, dueDate)
}
func (f *fakeRequestStore) FindRequestByID(ctx context.Context, id string) (*models.BookRequest, error) {
	return f.findFn(ctx, id)
}
func (f *fakeRequestStore) ListRequests(ctx context.Context, q db.RequestsQuery) (db.ListRequestsResult, error) {
	return f.listFn(ctx, q)
}
func (f *fakeRequestStore) FindStudentByUserID(ctx context.Context, userID string) (*models.Student, error) {
	return f.findStudentFn(ctx, userID)
}

func requestRouter(store controllers.RequestStore, role models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := app.Config{FineRatePerDay: 1.0, DefaultLoanDays: 14}
	rc := controllers.NewRequestController(store, cfg)

	r := gin.New()
	g := r.Group("", asRole(role))
	g.POST("/books/:id/request", rc.RequestBook)
	g.POST("/requests/:id/decide", rc.DecideRequest)
	g.GET("/requests", rc.ListRequests)
	return r
}

func TestRequestBook_Created(t *testing.T) {
	store := &fakeRequestStore{
		findStudentFn: func(_ context.Context, userID string) (*models.Student, error) {
			require.Equal(t, "user-1", userID)
			return &models.Student{ID: "student-1", UserID: &userID}, nil
		},
		createFn: func(_ context.Context, studentID, bookID string) (*models.BookRequest, error) {
			require.Equal(t, "student-1", studentID)
			require.Equal(t, "book-1", bookID)
			return &models.BookRequest{ID: "req-1", StudentID: studentID, BookID: bookID, Status: models.RequestPending}, nil
		},
	}

	w := doJSON(t, requestRouter(store, models.RoleStudent), http.MethodPost, "/books/book-1/request", "")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRequestBook_NoStudentRecord(t *testing.T) {
	store := &fakeRequestStore{
		findStudentFn: func(context.Context, string) (*models.Student, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	w := doJSON(t, requestRouter(store, models.RoleStudent), http.MethodPost, "/books/book-1/request", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestBook_DuplicatePendingConflicts(t *testing.T) {
	store := &fakeRequestStore{
		findStudentFn: func(_ context.Context, userID string) (*models.Student, error) {
			return &models.Student{ID: "student-1"}, nil
		},
		createFn: func(context.Context, string, string) (*models.BookRequest, error) {
			return nil, circulation.ErrDuplicateRequest
		},
	}
	w := doJSON(t, requestRouter(store, models.RoleStudent), http.MethodPost, "/books/book-1/request", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDecideRequest_BadAction(t *testing.T) {
	w := doJSON(t, requestRouter(&fakeRequestStore{}, models.RoleLibrarian),
		http.MethodPost, "/requests/req-1/decide", `{"action":"maybe"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDecideRequest_ApproveConflictWhenBookTaken(t *testing.T) {
	store := &fakeRequestStore{
		decideFn: func(_ context.Context, _ db.Actor, _ string, approve bool, _ string, due time.Time) (*models.BookRequest, *models.Issue, error) {
			require.True(t, approve)
			require.False(t, due.IsZero())
			return nil, nil, circulation.ErrBookNotAvailable
		},
	}
	w := doJSON(t, requestRouter(store, models.RoleLibrarian),
		http.MethodPost, "/requests/req-1/decide", `{"action":"approve"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDecideRequest_AlreadyProcessedConflicts(t *testing.T) {
	store := &fakeRequestStore{
		decideFn: func(context.Context, db.Actor, string, bool, string, time.Time) (*models.BookRequest, *models.Issue, error) {
			return nil, nil, circulation.ErrRequestDecided
		},
	}
	w := doJSON(t, requestRouter(store, models.RoleLibrarian),
		http.MethodPost, "/requests/req-1/decide", `{"action":"reject","reason":"late"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDecideRequest_Reject(t *testing.T) {
	store := &fakeRequestStore{
		decideFn: func(_ context.Context, actor db.Actor, requestID string, approve bool, reason string, _ time.Time) (*models.BookRequest, *models.Issue, error) {
			require.Equal(t, "req-1", requestID)
			require.False(t, approve)
			require.Equal(t, "reference-only copy", reason)
			require.Equal(t, models.RoleLibrarian, actor.Role)
			return &models.BookRequest{ID: requestID, Status: models.RequestRejected, RejectReason: &reason}, nil, nil
		},
	}
	w := doJSON(t, requestRouter(store, models.RoleLibrarian),
		http.MethodPost, "/requests/req-1/decide", `{"action":"reject","reason":"reference-only copy"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListRequests_StudentScopedToOwnRecords(t *testing.T) {
	store := &fakeRequestStore{
		findStudentFn: func(context.Context, string) (*models.Student, error) {
			return &models.Student{ID: "student-1"}, nil
		},
		listFn: func(_ context.Context, q db.RequestsQuery) (db.ListRequestsResult, error) {
			require.Equal(t, "student-1", q.StudentID, "students must only see their own requests")
			return db.ListRequestsResult{}, nil
		},
	}
	w := doJSON(t, requestRouter(store, models.RoleStudent),
		http.MethodGet, "/requests?studentId=student-2", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
