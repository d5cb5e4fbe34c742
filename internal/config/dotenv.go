package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	Addr                     string
	CatalogURL               string
	CatalogCookie            string
	CatalogTimeoutSeconds    int
	CatalogCSRFToken         string
	CatalogTokenPath         string
	ActionBaseURL            string
	ImageBasePath            string
	RatingMax                int
	RatingZeroUnset          bool
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
}

func Default() Config {
	return Config{
		Addr:                     ":8080",
		CatalogURL:               "http://localhost:5000",
		CatalogTimeoutSeconds:    0,
		CatalogTokenPath:         "/library",
		ImageBasePath:            "/static/images/",
		RatingMax:                100,
		RatingZeroUnset:          false,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
	}
}

func Load() Config {
	cfg := Default()
	if raw := strings.TrimSpace(os.Getenv("PORT")); raw != "" {
		cfg.Addr = ":" + raw
	}
	if raw := os.Getenv("CATALOG_URL"); raw != "" {
		cfg.CatalogURL = raw
	}
	if raw := os.Getenv("CATALOG_COOKIE"); raw != "" {
		cfg.CatalogCookie = raw
	}
	if raw := os.Getenv("CATALOG_TIMEOUT_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.CatalogTimeoutSeconds = value
		}
	}
	if raw := strings.TrimSpace(os.Getenv("CATALOG_CSRF_TOKEN")); raw != "" {
		cfg.CatalogCSRFToken = raw
	}
	if raw := strings.TrimSpace(os.Getenv("CATALOG_TOKEN_PATH")); raw != "" {
		cfg.CatalogTokenPath = raw
	}
	if raw := os.Getenv("ACTION_BASE_URL"); raw != "" {
		cfg.ActionBaseURL = raw
	}
	if raw := os.Getenv("IMAGE_BASE_PATH"); raw != "" {
		cfg.ImageBasePath = raw
	}
	if raw := os.Getenv("RATING_MAX"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.RatingMax = value
		}
	}
	if raw := os.Getenv("RATING_ZERO_UNSET"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.RatingZeroUnset = value
		}
	}
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	if raw := os.Getenv("DB_MAX_IDLE_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxIdleConns = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_LIFETIME_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxLifetimeSeconds = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_IDLE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxIdleTimeSeconds = value
		}
	}
	return cfg
}
