// controllers/auth_controller.go
package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"Gin_postgres_redis_library_tool/app"
	"Gin_postgres_redis_library_tool/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthStore interface {
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	TouchUserLogin(ctx context.Context, userID, ip, ua string) error
	GetInviteByToken(ctx context.Context, token string) (*models.Invite, error)
	MarkInviteUsed(ctx context.Context, token string) error
	CreateStudent(ctx context.Context, s *models.Student) error
}

type AuthController struct {
	*Srv
	store AuthStore
}

func NewAuthController(s *Srv, store AuthStore) *AuthController {
	return &AuthController{Srv: s, store: store}
}

func (ac *AuthController) Login(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	u, err := ac.store.FindUserByUsername(c.Request.Context(), strings.ToLower(in.Username))
	if err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}

	// Login snapshot is best effort, never blocks the login.
	_ = ac.store.TouchUserLogin(c.Request.Context(), u.ID, c.ClientIP(), c.Request.UserAgent())

	sid := uuid.NewString()
	if err := ac.AppSess.Create(c.Request.Context(), sid, u.ID, string(u.Role)); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": "session create failed"})
		return
	}
	ac.setAppCookie(c.Writer, sid, ac.Cfg.SessionTTL)

	c.JSON(http.StatusOK, app.H{"user": u})
}

func (ac *AuthController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.AppSess.Delete(c.Request.Context(), ck.Value)
	}
	ac.setAppCookie(c.Writer, "", -time.Second)
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// Signup registers a user against an unexpired invite token. The invite
// carries the role; a student invite also creates the student record.
func (ac *AuthController) Signup(c *gin.Context) {
	var in struct {
		InviteToken string `json:"inviteToken" binding:"required"`
		DisplayName string `json:"displayName" binding:"required"`
		Password    string `json:"password" binding:"required,min=8"`
		RollNo      string `json:"rollNo"`
		Department  string `json:"department"`
		Phone       string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	inv, err := ac.store.GetInviteByToken(c.Request.Context(), in.InviteToken)
	if err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": "invite not found"})
		return
	}
	if inv.UsedAt != nil || time.Now().After(inv.ExpiresAt) {
		c.JSON(http.StatusConflict, app.H{"error": "invite expired or already used"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": "hash failed"})
		return
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Username:     strings.ToLower(inv.Email),
		DisplayName:  in.DisplayName,
		PasswordHash: string(hash),
		Role:         inv.Role,
	}
	if err := ac.store.CreateUser(c.Request.Context(), u); err != nil {
		c.JSON(http.StatusConflict, app.H{"error": "username already registered"})
		return
	}
	if err := ac.store.MarkInviteUsed(c.Request.Context(), in.InviteToken); err != nil {
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
		return
	}

	if inv.Role == models.RoleStudent {
		rollNo := in.RollNo
		if rollNo == "" {
			rollNo = "UNASSIGNED-" + u.ID[:8]
		}
		dept := in.Department
		if dept == "" {
			dept = "General"
		}
		student := &models.Student{
			ID:         uuid.NewString(),
			RollNo:     rollNo,
			Name:       in.DisplayName,
			Department: dept,
			Email:      u.Username,
			Phone:      in.Phone,
			UserID:     &u.ID,
		}
		if err := ac.store.CreateStudent(c.Request.Context(), student); err != nil {
			c.JSON(http.StatusConflict, app.H{"error": "student record conflict: " + err.Error()})
			return
		}
	}

	c.JSON(http.StatusCreated, app.H{"user": u})
}

// Whoami echoes the identity resolved by the auth middleware.
func (ac *AuthController) Whoami(c *gin.Context) {
	actor := actorFrom(c)
	c.JSON(http.StatusOK, app.H{
		"userID":   actor.ID,
		"username": actor.Username,
		"role":     actor.Role,
	})
}
