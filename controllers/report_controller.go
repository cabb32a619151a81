// controllers/report_controller.go
package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"Gin_postgres_redis_library_tool/app"
	"Gin_postgres_redis_library_tool/db"
	"Gin_postgres_redis_library_tool/models"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type ReportStore interface {
	DashboardStats(ctx context.Context) (db.DashboardStats, error)
	TopBooks(ctx context.Context, limit int) ([]models.Book, error)
	UnusedBooks(ctx context.Context) ([]models.Book, error)
	FineTotals(ctx context.Context) (db.FineTotals, error)
	ListAuditLog(ctx context.Context, page, size int) ([]models.AuditLog, error)
}

type ReportController struct {
	store ReportStore
	rdb   *redis.Client
}

func NewReportController(store ReportStore, rdb *redis.Client) *ReportController {
	return &ReportController{store: store, rdb: rdb}
}

const dashboardCacheKey = "cache:dashboard"
const dashboardCacheTTL = 30 * time.Second

// Dashboard serves the landing-page counters, cached briefly in Redis
// since every user hits it after login.
func (rc *ReportController) Dashboard(c *gin.Context) {
	if rc.rdb != nil {
		if b, err := rc.rdb.Get(c.Request.Context(), dashboardCacheKey).Bytes(); err == nil {
			var st db.DashboardStats
			if json.Unmarshal(b, &st) == nil {
				c.JSON(http.StatusOK, st)
				return
			}
		}
	}

	st, err := rc.store.DashboardStats(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	if rc.rdb != nil {
		if b, err := json.Marshal(st); err == nil {
			_ = rc.rdb.Set(c.Request.Context(), dashboardCacheKey, b, dashboardCacheTTL).Err()
		}
	}
	c.JSON(http.StatusOK, st)
}

// Reports serves the librarian report screen: most-accessed books,
// never-issued books and fine totals.
func (rc *ReportController) Reports(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("top", "10"))

	top, err := rc.store.TopBooks(c.Request.Context(), limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	unused, err := rc.store.UnusedBooks(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	fines, err := rc.store.FineTotals(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, app.H{
		"topBooks":    top,
		"unusedBooks": unused,
		"fines":       fines,
	})
}

func (rc *ReportController) AuditLog(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	logs, err := rc.store.ListAuditLog(c.Request.Context(), page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"entries": logs})
}
