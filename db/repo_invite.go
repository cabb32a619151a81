package db

import (
	"context"
	"errors"
	"time"

	"Gin_postgres_redis_library_tool/models"
)

func (r *Repo) CreateInvite(ctx context.Context, email string, role models.Role, token string, expiresAt time.Time, createdBy string) (*models.Invite, error) {
	inv := &models.Invite{Email: email, Role: role, Token: token, ExpiresAt: expiresAt, CreatedBy: createdBy}
	return inv, r.DB.WithContext(ctx).Create(inv).Error
}

func (r *Repo) GetInviteByToken(ctx context.Context, token string) (*models.Invite, error) {
	var inv models.Invite
	if err := r.DB.WithContext(ctx).Where("token = ?", token).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// MarkInviteUsed consumes the token exactly once.
func (r *Repo) MarkInviteUsed(ctx context.Context, token string) error {
	now := time.Now()
	res := r.DB.WithContext(ctx).Model(&models.Invite{}).
		Where("token = ? AND used_at IS NULL", token).
		Update("used_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("invite already used or not found")
	}
	return nil
}

func (r *Repo) ListInvites(ctx context.Context, page, size int) ([]models.Invite, error) {
	page, size = clampPage(page, size)
	var invs []models.Invite
	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&invs).Error
	return invs, err
}
