// controllers/srv.go
package controllers

import (
	"net/http"
	"strings"
	"time"

	"Gin_postgres_redis_library_tool/app"
	"Gin_postgres_redis_library_tool/circulation"
	"Gin_postgres_redis_library_tool/db"
	"Gin_postgres_redis_library_tool/models"
	"Gin_postgres_redis_library_tool/session"

	"github.com/gin-gonic/gin"
)

// Srv bundles the dependencies controllers share.
type Srv struct {
	Repo      *db.Repo
	AppSess   *session.AppSessionStore
	WebOrigin string
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:      db.NewRepo(a.DB),
		AppSess:   a.AppSessions(),
		WebOrigin: a.Config.WebOrigin,
		Cfg:       a.Config,
	}
}

func (s *Srv) GetAppSess() *session.AppSessionStore { return s.AppSess }

// setAppCookie sets or clears the session cookie.
func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

// actorFrom reads the identity AuthRequired stored on the context. The
// repo never looks at ambient request state; it only sees this value.
func actorFrom(c *gin.Context) db.Actor {
	id, _ := c.Get(app.CtxUserID)
	name, _ := c.Get(app.CtxUsername)
	role, _ := c.Get(app.CtxRole)
	a := db.Actor{}
	a.ID, _ = id.(string)
	a.Username, _ = name.(string)
	a.Role, _ = role.(models.Role)
	return a
}

// respondErr maps domain failures to status codes in one place. The
// repo and circulation layers never see HTTP.
func respondErr(c *gin.Context, err error) {
	switch {
	case db.IsNotFound(err):
		c.JSON(http.StatusNotFound, app.H{"error": "not found"})
	case circulation.Conflict(err):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	return t, err == nil
}
