package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"Gin_postgres_redis_library_tool/circulation"
	"Gin_postgres_redis_library_tool/controllers"
	"Gin_postgres_redis_library_tool/db"
	"Gin_postgres_redis_library_tool/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookStore struct {
	createFn  func(ctx context.Context, b *models.Book) error
	findFn    func(ctx context.Context, id string) (*models.Book, error)
	listFn    func(ctx context.Context, q db.BooksQuery) (db.ListBooksResult, error)
	recycleFn func(ctx context.Context, actor db.Actor, bookID, note string) (*models.Book, error)
}

func (f *fakeBookStore) CreateBook(ctx context.Context, b *models.Book) error { return f.createFn(ctx, b) }
func (f *fakeBookStore) FindBookByID(ctx context.Context, id string) (*models.Book, error) {
	return f.findFn(ctx, id)
}
func (f *fakeBookStore) ListBooks(ctx context.Context, q db.BooksQuery) (db.ListBooksResult, error) {
	return f.listFn(ctx, q)
}
func (f *fakeBookStore) RecycleBook(ctx context.Context, actor db.Actor, bookID, note string) (*models.Book, error) {
	return f.recycleFn(ctx, actor, bookID, note)
}

func bookRouter(store controllers.BookStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	bc := controllers.NewBookController(store)

	r := gin.New()
	g := r.Group("", asRole(models.RoleLibrarian))
	g.POST("/books", bc.CreateBook)
	g.GET("/books", bc.ListBooks)
	g.POST("/books/:id/recycle", bc.RecycleBook)
	return r
}

func TestCreateBook_AssignsIDAndDefaults(t *testing.T) {
	var created *models.Book
	store := &fakeBookStore{
		createFn: func(_ context.Context, b *models.Book) error {
			created = b
			return nil
		},
	}

	w := doJSON(t, bookRouter(store), http.MethodPost, "/books",
		`{"bookId":"ACC-001","title":"Dune","author":"Frank Herbert"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.BookAvailable, created.Status)
	assert.Zero(t, created.AccessCount)
}

func TestCreateBook_MissingFields(t *testing.T) {
	w := doJSON(t, bookRouter(&fakeBookStore{}), http.MethodPost, "/books", `{"title":"Dune"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListBooks_PassesFilters(t *testing.T) {
	store := &fakeBookStore{
		listFn: func(_ context.Context, q db.BooksQuery) (db.ListBooksResult, error) {
			require.Equal(t, "herbert", q.Q)
			require.Equal(t, "available", q.Status)
			require.Equal(t, 2, q.Page)
			return db.ListBooksResult{Total: 0}, nil
		},
	}
	w := doJSON(t, bookRouter(store), http.MethodGet, "/books?q=herbert&status=available&page=2", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecycleBook_ConflictWhenIssued(t *testing.T) {
	store := &fakeBookStore{
		recycleFn: func(context.Context, db.Actor, string, string) (*models.Book, error) {
			return nil, circulation.ErrBookNotAvailable
		},
	}
	w := doJSON(t, bookRouter(store), http.MethodPost, "/books/book-1/recycle", `{"note":"damaged"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Contains(t, out["error"], "not available")
}
