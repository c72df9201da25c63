package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	// CommissionRate is the default agency commission percentage applied
	// when an agency row carries no rate of its own.
	CommissionRate float64

	// PaymentDeadlineDays is how many days before departure the full
	// balance is due.
	PaymentDeadlineDays int

	UploadDir string
}

func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env: %v", err)
	}

	return Env{
		AppAddr:             envOr("APP_ADDR", ":8080"),
		GinMode:             strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:              envOr("DB_USER", "root"),
		DBPass:              strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost:              envOr("DB_HOST", "127.0.0.1:3306"),
		DBName:              envOr("DB_NAME", "agency_portal"),
		JWTSecret:           envOr("JWT_SECRET", "super-secret-key-change-me"),
		CommissionRate:      envFloatOr("AGENCY_COMMISSION_RATE", 10),
		PaymentDeadlineDays: envIntOr("PAYMENT_DEADLINE_DAYS", 45),
		UploadDir:           envOr("UPLOAD_DIR", "uploads"),
	}
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envIntOr(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("warning: %s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func envFloatOr(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f > 100 {
		log.Printf("warning: %s=%q is not a valid percentage, using %v", key, v, fallback)
		return fallback
	}
	return f
}
