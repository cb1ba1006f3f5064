package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port           string
	DatabaseURL    string
	JWTSecret      string
	Environment    string
	AllowedOrigins []string

	SendGridAPIKey string
	MailFrom       string
	MailFromName   string

	GCPProjectID       string
	GCSBucketName      string
	GCSCredentialsFile string

	MeilisearchHost   string
	MeilisearchAPIKey string

	// EnvFileLoaded is false when no .env file was found.
	EnvFileLoaded bool
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	envFileLoaded := godotenv.Load() == nil

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("MAIL_FROM", "no-reply@example.com")
	v.SetDefault("MAIL_FROM_NAME", "Forum")

	cfg := &Config{
		Port:               v.GetString("PORT"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		Environment:        v.GetString("ENVIRONMENT"),
		AllowedOrigins:     splitList(v.GetString("ALLOWED_ORIGINS")),
		SendGridAPIKey:     v.GetString("SENDGRID_API_KEY"),
		MailFrom:           v.GetString("MAIL_FROM"),
		MailFromName:       v.GetString("MAIL_FROM_NAME"),
		GCPProjectID:       v.GetString("GCP_PROJECT_ID"),
		GCSBucketName:      v.GetString("GCS_BUCKET_NAME"),
		GCSCredentialsFile: v.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
		MeilisearchHost:    v.GetString("MEILISEARCH_HOST"),
		MeilisearchAPIKey:  v.GetString("MEILISEARCH_API_KEY"),
		EnvFileLoaded:      envFileLoaded,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
