package main

import (
	"context"
	"log"
	"os"

	"licitaciones-ai-be/internal/config"
	"licitaciones-ai-be/internal/model"
	"licitaciones-ai-be/pkg/database"
	"licitaciones-ai-be/pkg/storage"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: things AutoMigrate doesn't handle
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	models := []interface{}{
		&model.Tender{},
		&model.BusinessRules{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}
	log.Println("Tables migrated.")

	// 5. Ensure the document bucket exists
	cfg := config.Load()
	store, err := storage.NewObjectStore(storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		log.Printf("Warn: object storage not reachable: %v", err)
	} else if err := store.EnsureBucket(context.Background()); err != nil {
		log.Printf("Warn: could not ensure bucket: %v", err)
	} else {
		log.Println("Bucket ready.")
	}

	log.Println("Migration complete.")
}
