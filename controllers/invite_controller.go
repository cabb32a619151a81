// controllers/invite_controller.go
package controllers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"Gin_postgres_redis_library_tool/app"
	"Gin_postgres_redis_library_tool/models"

	"github.com/gin-gonic/gin"
)

type InviteStore interface {
	CreateInvite(ctx context.Context, email string, role models.Role, token string, expiresAt time.Time, createdBy string) (*models.Invite, error)
	ListInvites(ctx context.Context, page, size int) ([]models.Invite, error)
}

type InviteController struct {
	store     InviteStore
	webOrigin string
}

func NewInviteController(store InviteStore, webOrigin string) *InviteController {
	return &InviteController{store: store, webOrigin: webOrigin}
}

// CreateInvite lets a librarian invite an email address with a role.
func (ic *InviteController) CreateInvite(c *gin.Context) {
	var in struct {
		Email string      `json:"email" binding:"required,email"`
		Role  models.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.Role == "" {
		in.Role = models.RoleStudent
	}
	if !models.ValidRole(in.Role) {
		c.JSON(http.StatusBadRequest, app.H{"error": "role must be librarian or student"})
		return
	}

	buf := make([]byte, 16)
	rand.Read(buf)
	token := hex.EncodeToString(buf)

	actor := actorFrom(c)
	inv, err := ic.store.CreateInvite(c.Request.Context(), strings.ToLower(in.Email), in.Role, token, time.Now().Add(7*24*time.Hour), actor.Username)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, app.H{
		"invite": inv,
		"link":   fmt.Sprintf("%s/signup?inviteToken=%s", ic.webOrigin, token),
	})
}

func (ic *InviteController) ListInvites(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	invs, err := ic.store.ListInvites(c.Request.Context(), page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"invites": invs})
}
