package db

import (
	"context"

	"Gin_postgres_redis_library_tool/models"

	"gorm.io/gorm"
)

// Audit log

// logAction writes an audit row inside the caller's transaction so the
// record commits or rolls back with the action it describes.
func logAction(tx *gorm.DB, actor Actor, action string, bookID, issueID, detail *string) error {
	return tx.Create(&models.AuditLog{
		Action:        action,
		ActorID:       actor.ID,
		ActorUsername: actor.Username,
		BookID:        bookID,
		IssueID:       issueID,
		Detail:        detail,
	}).Error
}

func (r *Repo) ListAuditLog(ctx context.Context, page, size int) ([]models.AuditLog, error) {
	page, size = clampPage(page, size)
	var logs []models.AuditLog
	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&logs).Error
	return logs, err
}
