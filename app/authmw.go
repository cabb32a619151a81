package app

import (
	"context"
	"net/http"

	"Gin_postgres_redis_library_tool/models"
	"Gin_postgres_redis_library_tool/session"

	"github.com/gin-gonic/gin"
)

const AppSessionCookie = "app_session"

// Context keys set by AuthRequired.
const (
	CtxUserID   = "userID"
	CtxUsername = "username"
	CtxRole     = "role"
)

type userFinder interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

func AuthRequired(appSess *session.AppSessionStore, repo userFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		as, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		// Confirm the user still exists; a deleted account must not ride
		// on a stale session.
		u, err := repo.FindUserByID(c.Request.Context(), as.UserID)
		if err != nil {
			_ = appSess.Delete(c.Request.Context(), ck.Value)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}

		c.Set(CtxUserID, u.ID)
		c.Set(CtxUsername, u.Username)
		c.Set(CtxRole, u.Role)
		c.Next()
	}
}

// RoleRequired gates a route group on the session role. Issue, return,
// decide and catalog mutation are librarian-only; filing a request is
// student-only.
func RoleRequired(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(CtxRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		if r, _ := v.(models.Role); r != role {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func LibrarianOnly() gin.HandlerFunc { return RoleRequired(models.RoleLibrarian) }
func StudentOnly() gin.HandlerFunc   { return RoleRequired(models.RoleStudent) }
