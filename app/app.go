package app

import (
	"context"
	"log"
	"time"

	"Gin_postgres_redis_library_tool/circulation"
	"Gin_postgres_redis_library_tool/config"
	"Gin_postgres_redis_library_tool/db"
	"Gin_postgres_redis_library_tool/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Aliases so handlers read a little shorter.
type Ctx = gin.Context
type H = gin.H

// App aggregates the process-wide dependencies.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config Config

	appSess *session.AppSessionStore
}

type Config struct {
	Port            string
	RedisAddr       string
	RedisPwd        string
	WebOrigin       string
	SessionTTL      time.Duration
	FineRatePerDay  float64
	DefaultLoanDays int
	BootstrapEmail  string
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }

func MustNew() *App {
	cfg := loadConfig()

	dbConn := db.ConnectDB()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	useCORS(r, cfg.WebOrigin)

	return &App{
		Router:  r,
		DB:      dbConn,
		RDB:     rdb,
		Config:  cfg,
		appSess: session.NewAppSessionStore(rdb, cfg.SessionTTL),
	}
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	return Config{
		Port:            config.Get("PORT", "3001"),
		RedisAddr:       config.Get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:        config.Get("REDIS_PASSWORD", ""),
		WebOrigin:       config.Get("WEB_ORIGIN", "http://localhost:5173"),
		SessionTTL:      config.GetSeconds("SESSION_TTL_SECONDS", 24*time.Hour),
		FineRatePerDay:  config.GetFloat("FINE_RATE_PER_DAY", circulation.DefaultFineRate),
		DefaultLoanDays: config.GetInt("DEFAULT_LOAN_DAYS", 14),
		BootstrapEmail:  config.Get("BOOTSTRAP_EMAIL", ""),
	}
}
