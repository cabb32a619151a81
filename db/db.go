package db

import (
	"fmt"
	"log"
	"os"

	"Gin_postgres_redis_library_tool/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Invite{},
		&models.Book{},
		&models.Student{},
		&models.Issue{},
		&models.BookRequest{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// At most one open issue per book. The row lock in IssueBook is the
	// primary guard; this index is the backstop if two transactions race.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_open_per_book
	  ON %s (book_id)
	  WHERE returned_at IS NULL;
	`, models.IssueTable, models.IssueTable)).Error; err != nil {
		return err
	}

	// At most one pending request per (student, book) pair.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_pending_per_student_book
	  ON %s (student_id, book_id)
	  WHERE status = 'pending';
	`, models.BookRequestTable, models.BookRequestTable)).Error; err != nil {
		return err
	}

	// Faster open-issue lookups.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_open_book_issuedat_desc
	  ON %s (book_id, issued_at DESC)
	  WHERE returned_at IS NULL;
	`, models.IssueTable, models.IssueTable)).Error; err != nil {
		return err
	}

	return nil
}
