// controllers/student_controller.go
package controllers

import (
	"context"
	"net/http"
	"strconv"

	"Gin_postgres_redis_library_tool/app"
	"Gin_postgres_redis_library_tool/db"
	"Gin_postgres_redis_library_tool/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StudentStore interface {
	CreateStudent(ctx context.Context, s *models.Student) error
	FindStudentByID(ctx context.Context, id string) (*models.Student, error)
	ListStudents(ctx context.Context, q string, page, size int) (db.ListStudentsResult, error)
}

type StudentController struct{ store StudentStore }

func NewStudentController(store StudentStore) *StudentController {
	return &StudentController{store: store}
}

func (sc *StudentController) CreateStudent(c *gin.Context) {
	var in struct {
		RollNo     string `json:"rollNo" binding:"required"`
		Name       string `json:"name" binding:"required"`
		Department string `json:"department"`
		Email      string `json:"email"`
		Phone      string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.Department == "" {
		in.Department = "General"
	}
	s := &models.Student{
		ID:         uuid.NewString(),
		RollNo:     in.RollNo,
		Name:       in.Name,
		Department: in.Department,
		Email:      in.Email,
		Phone:      in.Phone,
	}
	if err := sc.store.CreateStudent(c.Request.Context(), s); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (sc *StudentController) GetStudent(c *gin.Context) {
	s, err := sc.store.FindStudentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (sc *StudentController) ListStudents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := sc.store.ListStudents(c.Request.Context(), c.Query("q"), page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
