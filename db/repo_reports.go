package db

import (
	"context"

	"Gin_postgres_redis_library_tool/models"
)

// Reporting queries for the dashboard and reports screens.

type DashboardStats struct {
	TotalBooks      int64          `json:"totalBooks"`
	IssuedBooks     int64          `json:"issuedBooks"`
	TotalStudents   int64          `json:"totalStudents"`
	UnusedBooks     int64          `json:"unusedBooks"` // never issued, access_count = 0
	PendingRequests int64          `json:"pendingRequests"`
	RecentIssues    []models.Issue `json:"recentIssues"`
}

func (r *Repo) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var st DashboardStats

	if err := r.DB.WithContext(ctx).Model(&models.Book{}).Count(&st.TotalBooks).Error; err != nil {
		return st, err
	}
	if err := r.DB.WithContext(ctx).Model(&models.Book{}).
		Where("status = ?", models.BookIssued).Count(&st.IssuedBooks).Error; err != nil {
		return st, err
	}
	if err := r.DB.WithContext(ctx).Model(&models.Student{}).Count(&st.TotalStudents).Error; err != nil {
		return st, err
	}
	if err := r.DB.WithContext(ctx).Model(&models.Book{}).
		Where("access_count = 0").Count(&st.UnusedBooks).Error; err != nil {
		return st, err
	}
	if err := r.DB.WithContext(ctx).Model(&models.BookRequest{}).
		Where("status = ?", models.RequestPending).Count(&st.PendingRequests).Error; err != nil {
		return st, err
	}
	if err := r.DB.WithContext(ctx).
		Order("issued_at DESC").Limit(10).
		Find(&st.RecentIssues).Error; err != nil {
		return st, err
	}
	return st, nil
}

func (r *Repo) TopBooks(ctx context.Context, limit int) ([]models.Book, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	var books []models.Book
	err := r.DB.WithContext(ctx).
		Order("access_count DESC").
		Limit(limit).
		Find(&books).Error
	return books, err
}

func (r *Repo) UnusedBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	err := r.DB.WithContext(ctx).
		Where("access_count = 0").
		Order("created_at DESC").
		Find(&books).Error
	return books, err
}

type FineTotals struct {
	Assessed  float64 `json:"assessed"`  // all finalized fines
	Collected float64 `json:"collected"` // fines marked paid
}

func (r *Repo) FineTotals(ctx context.Context) (FineTotals, error) {
	var t FineTotals
	if err := r.DB.WithContext(ctx).Model(&models.Issue{}).
		Select("COALESCE(SUM(fine_amount), 0)").
		Where("returned_at IS NOT NULL").
		Scan(&t.Assessed).Error; err != nil {
		return t, err
	}
	if err := r.DB.WithContext(ctx).Model(&models.Issue{}).
		Select("COALESCE(SUM(fine_amount), 0)").
		Where("fine_paid = TRUE").
		Scan(&t.Collected).Error; err != nil {
		return t, err
	}
	return t, nil
}
