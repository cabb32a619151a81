// controllers/user_controller.go
package controllers

import (
	"context"
	"net/http"
	"strconv"

	"Gin_postgres_redis_library_tool/db"

	"github.com/gin-gonic/gin"
)

type UserStore interface {
	ListUsers(ctx context.Context, q string, page, size int) (db.ListUsersResult, error)
}

type UserController struct{ store UserStore }

func NewUserController(store UserStore) *UserController { return &UserController{store: store} }

// ListUsers is the librarian account-management listing.
func (uc *UserController) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := uc.store.ListUsers(c.Request.Context(), c.Query("q"), page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
