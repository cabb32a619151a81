// models/audit_log.go
package models

import "time"

const AuditLogTable = "lib_audit_log"

// AuditLog records who performed each circulation action.
type AuditLog struct {
	ID            string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Action        string    `gorm:"size:40;not null;index" json:"action"` // issue / return / approve / reject / recycle / settle_fine
	ActorID       string    `gorm:"type:uuid" json:"actorId"`
	ActorUsername string    `json:"actorUsername"`
	BookID        *string   `gorm:"type:uuid;index" json:"bookId,omitempty"`
	IssueID       *string   `gorm:"type:uuid;index" json:"issueId,omitempty"`
	Detail        *string   `json:"detail,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (AuditLog) TableName() string { return AuditLogTable }
