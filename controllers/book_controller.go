// controllers/book_controller.go
package controllers

import (
	"context"
	"net/http"
	"strconv"

	"Gin_postgres_redis_library_tool/app"
	"Gin_postgres_redis_library_tool/db"
	"Gin_postgres_redis_library_tool/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookStore is the slice of db.Repo the catalog handlers need; tests
// swap in an in-memory fake.
type BookStore interface {
	CreateBook(ctx context.Context, b *models.Book) error
	FindBookByID(ctx context.Context, id string) (*models.Book, error)
	ListBooks(ctx context.Context, q db.BooksQuery) (db.ListBooksResult, error)
	RecycleBook(ctx context.Context, actor db.Actor, bookID, note string) (*models.Book, error)
}

type BookController struct{ store BookStore }

func NewBookController(store BookStore) *BookController { return &BookController{store: store} }

func (bc *BookController) CreateBook(c *gin.Context) {
	var in struct {
		BookID string `json:"bookId" binding:"required"`
		Title  string `json:"title" binding:"required"`
		Author string `json:"author" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	b := &models.Book{
		ID:     uuid.NewString(),
		BookID: in.BookID,
		Title:  in.Title,
		Author: in.Author,
		Status: models.BookAvailable,
	}
	if err := bc.store.CreateBook(c.Request.Context(), b); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (bc *BookController) GetBook(c *gin.Context) {
	b, err := bc.store.FindBookByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBooks supports q (title/author/catalog number) and status filters.
func (bc *BookController) ListBooks(c *gin.Context) {
	q := db.BooksQuery{
		Q:      c.Query("q"),
		Status: c.Query("status"),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := bc.store.ListBooks(c.Request.Context(), q)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RecycleBook permanently removes a book from circulation.
func (bc *BookController) RecycleBook(c *gin.Context) {
	var in struct {
		Note string `json:"note"`
	}
	_ = c.ShouldBindJSON(&in)

	b, err := bc.store.RecycleBook(c.Request.Context(), actorFrom(c), c.Param("id"), in.Note)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
