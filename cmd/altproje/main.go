package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/altproje-dev/altproje/db"
	"github.com/altproje-dev/altproje/internal/auth"
	"github.com/altproje-dev/altproje/internal/handlers"
	"github.com/altproje-dev/altproje/internal/router"
	"github.com/altproje-dev/altproje/internal/scheduler"
	"github.com/altproje-dev/altproje/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	if err := db.ConnectDatabase(os.Getenv("DATABASE_URL")); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	store, err := newBlobStore()

	if err != nil {
		log.Fatalf("Failed to initialize blob storage: %v", err)
	}

	handlers.Blobs = store

	reaper := scheduler.NewReaper(store, reaperInterval())
	reaper.Start()
	defer reaper.Stop()

	r := router.NewRouter()

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newBlobStore() (storage.BlobStore, error) {
	if os.Getenv("STORAGE_DRIVER") == "b2" {
		return storage.NewB2Store(
			context.Background(),
			os.Getenv("B2_KEY_ID"),
			os.Getenv("B2_APP_KEY"),
			os.Getenv("B2_BUCKET"),
		)
	}

	dir := os.Getenv("UPLOADS_DIR")

	if dir == "" {
		dir = "uploads"
	}

	return storage.NewLocalStore(dir)
}

func reaperInterval() time.Duration {
	if value := os.Getenv("REAPER_INTERVAL"); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid REAPER_INTERVAL %q, using default", value)
	}
	return time.Hour
}
