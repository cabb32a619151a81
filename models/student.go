// models/student.go
package models

import "time"

const StudentTable = "lib_students"

type Student struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	RollNo     string `gorm:"size:20;uniqueIndex;not null" json:"rollNo"`
	Name       string `gorm:"size:150;not null" json:"name"`
	Department string `gorm:"size:100;not null;default:'General'" json:"department"`
	Email      string `gorm:"size:255;index" json:"email"`
	Phone      string `gorm:"size:20" json:"phone,omitempty"`

	// Set when the student has a login; records created by a librarian
	// at the front desk have no account yet.
	UserID *string `gorm:"type:uuid;uniqueIndex" json:"userId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Student) TableName() string { return StudentTable }
