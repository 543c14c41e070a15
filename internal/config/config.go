package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DatabaseMongo  = "mongo"
	DatabaseMemory = "memory"
)

type Config struct {
	Port         int
	DatabaseType string
	MongoURI     string
	MongoDB      string
	JWTSecret    string
	MaxUploadMB  int64
	SMS          SMSConfig
}

type SMSConfig struct {
	AccountSID string
	AuthToken  string
	From       string
}

// Enabled reports whether all Twilio credentials are present.
func (s SMSConfig) Enabled() bool {
	return s.AccountSID != "" && s.AuthToken != "" && s.From != ""
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:         3000,
		DatabaseType: getenvDefault("DATABASE_TYPE", DatabaseMongo),
		MongoURI:     os.Getenv("MONGO_URI"),
		MongoDB:      getenvDefault("MONGO_DB", "surveyforms"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		MaxUploadMB:  32,
		SMS: SMSConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			From:       os.Getenv("TWILIO_PHONE_NUMBER"),
		},
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			return Config{}, fmt.Errorf("invalid PORT %q", portStr)
		}
		cfg.Port = port
	}

	if s := os.Getenv("MAX_UPLOAD_MB"); s != "" {
		mb, err := strconv.ParseInt(s, 10, 64)
		if err != nil || mb <= 0 {
			return Config{}, fmt.Errorf("invalid MAX_UPLOAD_MB %q", s)
		}
		cfg.MaxUploadMB = mb
	}

	switch cfg.DatabaseType {
	case DatabaseMongo:
		if cfg.MongoURI == "" {
			return Config{}, errors.New("MONGO_URI required")
		}
	case DatabaseMemory:
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_TYPE %q", cfg.DatabaseType)
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	sms := cfg.SMS
	if !sms.Enabled() && (sms.AccountSID != "" || sms.AuthToken != "" || sms.From != "") {
		return Config{}, errors.New("TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_PHONE_NUMBER must be set together")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
