// models/book_request.go
package models

import "time"

const BookRequestTable = "lib_book_requests"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// BookRequest is a student's borrowing proposal. A librarian decides it
// exactly once; approval spawns an Issue.
type BookRequest struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID string `gorm:"type:uuid;index;not null" json:"studentId"`
	BookID    string `gorm:"type:uuid;index;not null" json:"bookId"`

	Status       RequestStatus `gorm:"size:10;not null;default:'pending'" json:"status"`
	RequestDate  time.Time     `gorm:"index;not null" json:"requestDate"`
	DecidedAt    *time.Time    `json:"decidedAt,omitempty"`
	RejectReason *string       `gorm:"type:text" json:"rejectReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (BookRequest) TableName() string { return BookRequestTable }

func (r *BookRequest) Pending() bool { return r.Status == RequestPending }
