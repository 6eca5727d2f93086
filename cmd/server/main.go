package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wealthware/backend/internal/billing"
	"github.com/wealthware/backend/internal/blob"
	"github.com/wealthware/backend/internal/config"
	"github.com/wealthware/backend/internal/db"
	"github.com/wealthware/backend/internal/pdf"
	"github.com/wealthware/backend/internal/server"
	"github.com/wealthware/backend/internal/store"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	if *migrateOnlyFlag {
		if _, err := db.ConnectAndMigrate(cfg.DatabaseDSN); err != nil {
			log.Fatalf("migrate-only failed: %v", err)
		}
		log.Println("migrations completed; exiting as requested")
		return
	}

	dbConn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db connection failed: %v", err)
	}

	var blobs blob.Store
	switch cfg.BlobBackend {
	case "s3":
		s3, err := blob.NewS3(cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			log.Fatalf("s3 blob store: %v", err)
		}
		blobs = s3
	default:
		blobs = blob.NewLocal(cfg.BlobDir, cfg.BaseURL)
	}

	st := store.NewGorm(dbConn)
	svc := billing.NewService(st, blobs, pdf.NewRenderer())
	handler := server.New(cfg, st, svc)

	log.Printf("Starting server env=%s port=%s blob=%s", cfg.Env, cfg.Port, cfg.BlobBackend)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
