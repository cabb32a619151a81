// models/user.go
package models

import "time"

const UserTable = "lib_users"

type Role string

const (
	RoleLibrarian Role = "librarian"
	RoleStudent   Role = "student"
)

func ValidRole(r Role) bool { return r == RoleLibrarian || r == RoleStudent }

type User struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Username    string `gorm:"uniqueIndex;size:255;not null" json:"username"` // email address
	DisplayName string `gorm:"size:255;not null" json:"displayName"`

	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         Role   `gorm:"size:20;not null;default:'student'" json:"role"`

	LastLoginAt *time.Time `gorm:"index" json:"lastLoginAt,omitempty"`
	LastSeenAt  *time.Time `gorm:"index" json:"lastSeenAt,omitempty"`
	LoginCount  int64      `gorm:"not null;default:0" json:"loginCount"`
	LastLoginIP string     `gorm:"size:45" json:"-"`
	LastLoginUA string     `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return UserTable }
