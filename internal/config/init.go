package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/appcontext"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/services"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func InitContext(cfg *Config) (*appcontext.Context, error) {
	logger, err := InitLogger(cfg)
	if err != nil {
		return nil, err
	}
	logConfigSource(logger, cfg)

	db, err := InitDB(cfg)
	if err != nil {
		return nil, err
	}

	deps := appcontext.Dependencies{
		Mailer: InitMailer(cfg, logger),
		Index:  services.DisabledIndex{},
		Logos:  services.DisabledStore{},
	}

	if cfg.GCSBucketName != "" {
		gcsClient, err := InitGCSClient(cfg)
		if err != nil {
			return nil, err
		}
		deps.Logos = services.NewGCSStore(gcsClient, cfg.GCSBucketName)
	} else {
		logger.Warn("GCS_BUCKET_NAME is not set, logo uploads are disabled")
	}

	if cfg.MeilisearchHost != "" {
		meilisearchClient, err := InitMeilisearch(cfg)
		if err != nil {
			return nil, err
		}
		deps.Index = services.NewMeiliCompanyIndex(meilisearchClient)
	} else {
		logger.Warn("MEILISEARCH_HOST is not set, company search is disabled")
	}

	ctx := appcontext.New(db, logger, deps)
	ctx.JWTSecret = []byte(cfg.JWTSecret)
	ctx.AllowedOrigins = cfg.AllowedOrigins
	ctx.Production = cfg.IsProduction()
	return ctx, nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	level := gormlogger.Warn
	if !cfg.IsProduction() {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate creates or updates the schema and seeds the notification types.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(entity.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := services.NewTypeCache(db).Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed notification types: %w", err)
	}
	return nil
}

func logConfigSource(logger *zap.Logger, cfg *Config) {
	if !cfg.EnvFileLoaded {
		logger.Warn("No .env file found, using environment variables")
	}
}

func InitLogger(cfg *Config) (*zap.Logger, error) {
	build := zap.NewProduction
	if cfg.Environment == "development" {
		build = zap.NewDevelopment
	}

	logger, err := build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func InitMailer(cfg *Config, logger *zap.Logger) services.Mailer {
	if cfg.SendGridAPIKey == "" {
		logger.Warn("SENDGRID_API_KEY is not set, emails will only be logged")
		return services.LogMailer{Logger: logger}
	}
	return services.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName)
}

func InitGCSClient(cfg *Config) (*storage.Client, error) {
	var opts []option.ClientOption
	if cfg.GCSCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCSCredentialsFile))
	}

	ctx := context.Background()
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
	}
	return client, nil
}

func InitMeilisearch(cfg *Config) (*meilisearch.Client, error) {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   cfg.MeilisearchHost,
		APIKey: cfg.MeilisearchAPIKey,
	})

	_, err := client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        services.CompaniesIndex,
		PrimaryKey: "id",
	})
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	task, err := client.Index(services.CompaniesIndex).UpdateFilterableAttributes(&[]string{
		"type",
		"industry",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update filterable attributes: %w", err)
	}
	if _, err = client.WaitForTask(task.TaskUID); err != nil {
		return nil, fmt.Errorf("failed to wait for filterable attributes update: %w", err)
	}

	task, err = client.Index(services.CompaniesIndex).UpdateSearchableAttributes(&[]string{
		"company_name",
		"description",
		"industry",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update searchable attributes: %w", err)
	}
	if _, err = client.WaitForTask(task.TaskUID); err != nil {
		return nil, fmt.Errorf("failed to wait for searchable attributes update: %w", err)
	}

	return client, nil
}
