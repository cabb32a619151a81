// models/issue.go
package models

import "time"

const IssueTable = "lib_issues"

// Issue records one book lent to one student. It stays open until
// ReturnedAt is set; the fine is finalized once, at return time.
// Issues are never deleted, they are the circulation history.
type Issue struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	BookID    string `gorm:"type:uuid;index;not null" json:"bookId"`
	StudentID string `gorm:"type:uuid;index;not null" json:"studentId"`

	IssuedAt time.Time `gorm:"index;not null" json:"issuedAt"`
	DueDate  time.Time `gorm:"type:date;not null" json:"dueDate"`

	ReturnedAt *time.Time `gorm:"index" json:"returnedAt,omitempty"`
	FineAmount float64    `gorm:"not null;default:0" json:"fineAmount"`
	FinePaid   bool       `gorm:"not null;default:false" json:"finePaid"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Issue) TableName() string { return IssueTable }

func (i *Issue) Open() bool { return i.ReturnedAt == nil }
