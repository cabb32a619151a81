package db

import (
	"context"
	"strings"

	"Gin_postgres_redis_library_tool/models"
)

// Students

func (r *Repo) CreateStudent(ctx context.Context, s *models.Student) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *Repo) FindStudentByID(ctx context.Context, id string) (*models.Student, error) {
	var s models.Student
	if err := r.DB.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// FindStudentByUserID resolves the student record behind a login, used
// when a student files a book request for themselves.
func (r *Repo) FindStudentByUserID(ctx context.Context, userID string) (*models.Student, error) {
	var s models.Student
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

type ListStudentsResult struct {
	Students []models.Student `json:"students"`
	Total    int64            `json:"total"`
}

func (r *Repo) ListStudents(ctx context.Context, q string, page, size int) (ListStudentsResult, error) {
	page, size = clampPage(page, size)

	tx := r.DB.WithContext(ctx).Model(&models.Student{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(roll_no) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListStudentsResult{}, err
	}

	var students []models.Student
	if err := tx.
		Order("roll_no ASC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&students).Error; err != nil {
		return ListStudentsResult{}, err
	}
	return ListStudentsResult{Students: students, Total: total}, nil
}

func (r *Repo) CountStudents(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Student{}).Count(&n).Error
	return n, err
}
