package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"Gin_postgres_redis_library_tool/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func roleTestRouter(sessionRole *models.Role, required models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded",
		func(c *gin.Context) {
			if sessionRole != nil {
				c.Set(CtxRole, *sessionRole)
			}
			c.Next()
		},
		RoleRequired(required),
		func(c *gin.Context) { c.JSON(http.StatusOK, H{"ok": true}) },
	)
	return r
}

func getGuarded(r *gin.Engine) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	return w.Code
}

func TestRoleRequired(t *testing.T) {
	librarian := models.RoleLibrarian
	student := models.RoleStudent

	assert.Equal(t, http.StatusOK, getGuarded(roleTestRouter(&librarian, models.RoleLibrarian)))
	assert.Equal(t, http.StatusForbidden, getGuarded(roleTestRouter(&student, models.RoleLibrarian)),
		"a student must not reach librarian operations")
	assert.Equal(t, http.StatusForbidden, getGuarded(roleTestRouter(&librarian, models.RoleStudent)),
		"filing requests is a student action")
	assert.Equal(t, http.StatusUnauthorized, getGuarded(roleTestRouter(nil, models.RoleLibrarian)))
}
