// models/invite.go
package models

import "time"

const InviteTable = "lib_invites"

// Invite gates signup: a librarian invites an email address with a role,
// the invitee registers with the one-time token.
type Invite struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Email     string     `gorm:"index;size:255;not null" json:"email"`
	Role      Role       `gorm:"size:20;not null;default:'student'" json:"role"`
	Token     string     `gorm:"uniqueIndex;size:64;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"index;not null" json:"expiresAt"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
	CreatedBy string     `gorm:"size:255" json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (Invite) TableName() string { return InviteTable }
