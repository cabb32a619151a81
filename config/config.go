package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads .env if present; real deployments set env vars directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
}

func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using fallback %d", key, err, fallback)
			return fallback
		}
		return n
	}
	return fallback
}

func GetFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Printf("invalid float for %s: %v, using fallback %v", key, err, fallback)
			return fallback
		}
		return f
	}
	return fallback
}

func GetSeconds(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid seconds for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return time.Duration(n) * time.Second
	}
	return fallback
}
