package main

import (
	"context"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"schedparse/adapters/api"
	"schedparse/adapters/llm"
	"schedparse/adapters/postgres"
	"schedparse/app"
	"schedparse/internal/config"
	"schedparse/internal/errors"
	"schedparse/internal/extract"
	"schedparse/ports"
)

// initDatabase connects to PostgreSQL and ensures the schema. Returns a
// nil repository when no DATABASE_URL is configured.
func initDatabase(appConfig *config.Config) (*sqlx.DB, ports.ScheduleRepository, error) {
	if appConfig.Database.URL == "" {
		log.Println("DATABASE_URL not set, parse runs will not be persisted")
		return nil, nil, nil
	}

	dsn := appConfig.Database.URL
	if appConfig.Database.SSLMode != "" && !strings.Contains(dsn, "sslmode=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "sslmode=" + appConfig.Database.SSLMode
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "failed to ping database")
	}

	repo := postgres.NewScheduleRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "failed to ensure schema")
	}
	return db, repo, nil
}

// initEnhancer builds the LLM enhancer when enabled.
func initEnhancer(appConfig *config.Config) (ports.EnhancerPort, error) {
	if !appConfig.Enhancer.Enabled {
		return nil, nil
	}
	client, err := llm.NewOpenAIClient(appConfig.Enhancer.APIKey, appConfig.Enhancer.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build LLM client")
	}
	return llm.NewEnhancer(client, appConfig.Enhancer.Model)
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, repo, err := initDatabase(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	enhancer, err := initEnhancer(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize enhancer: %v", err)
	}

	parser := extract.NewParser(nil, extract.Options{
		HeaderScanRows:     appConfig.Parser.HeaderScanRows,
		LayoutSampleRows:   appConfig.Parser.LayoutSampleRows,
		DetailKeyThreshold: appConfig.Parser.DetailKeyThreshold,
		FuzzyThreshold:     appConfig.Parser.FuzzyThreshold,
		DisableFuzzy:       appConfig.Parser.DisableFuzzy,
	})
	parseService := app.NewParseService(parser, enhancer, repo, appConfig.Enhancer)

	server := api.NewApp(parseService, appConfig.Upload.MaxFileBytes)
	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
