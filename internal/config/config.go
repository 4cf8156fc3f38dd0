package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/grampanchayat/tax_collection/internal/models"
)

type Config struct {
	PORT        string
	LOG_LEVEL   string
	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string
	ES_URL      string
	ES_USER     string
	ES_PASSWORD string

	KAFKA_ADDRESS string

	ACCESS_SECRET  string
	REFRESH_SECRET string
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
}

const (
	defaultAccessTTLMinutes = 30
	defaultRefreshTTLDays   = 7
)

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		PORT:           os.Getenv("PORT"),
		LOG_LEVEL:      os.Getenv("LOG_LEVEL"),
		DB_HOST:        os.Getenv("DB_HOST"),
		DB_PORT:        os.Getenv("DB_PORT"),
		DB_USER:        os.Getenv("DB_USER"),
		DB_PASSWORD:    os.Getenv("DB_PASSWORD"),
		DB_NAME:        os.Getenv("DB_NAME"),
		ES_URL:         os.Getenv("ES_URL"),
		ES_USER:        os.Getenv("ES_USER"),
		ES_PASSWORD:    os.Getenv("ES_PASSWORD"),
		KAFKA_ADDRESS:  os.Getenv("KAFKA_ADDRESS"),
		ACCESS_SECRET:  os.Getenv("ACCESS_SECRET"),
		REFRESH_SECRET: os.Getenv("REFRESH_SECRET"),
	}

	if config.PORT == "" {
		config.PORT = "8080"
	}

	accessMinutes := envInt("ACCESS_TOKEN_TTL_MIN", defaultAccessTTLMinutes)
	refreshDays := envInt("REFRESH_TOKEN_TTL_DAYS", defaultRefreshTTLDays)
	config.AccessTTL = time.Duration(accessMinutes) * time.Minute
	config.RefreshTTL = time.Duration(refreshDays) * 24 * time.Hour

	if config.ACCESS_SECRET == "" || config.REFRESH_SECRET == "" {
		return nil, fmt.Errorf("ACCESS_SECRET and REFRESH_SECRET must be set")
	}

	return config, nil
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("Notice: invalid %s=%q, using default %d", key, raw, fallback)
		return fallback
	}
	return v
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.House{},
		&models.Assignment{},
		&models.TaxRecord{},
		&models.RevokedToken{},
	); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
