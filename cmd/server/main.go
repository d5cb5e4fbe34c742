package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"library-browser/internal/catalog"
	"library-browser/internal/config"
	"library-browser/internal/db"
	"library-browser/internal/server"

	"gorm.io/gorm"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	var conn *gorm.DB
	if os.Getenv("DATABASE_URL") != "" {
		var err error
		conn, err = db.Open()
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		if err := db.ConfigurePool(conn, cfg); err != nil {
			log.Fatalf("database pool setup failed: %v", err)
		}
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
	} else {
		log.Printf("DATABASE_URL not set; sessions kept in memory")
	}

	client := catalog.New(catalog.Options{
		BaseURL:   cfg.CatalogURL,
		Cookie:    cfg.CatalogCookie,
		Timeout:   time.Duration(cfg.CatalogTimeoutSeconds) * time.Second,
		CSRFToken: cfg.CatalogCSRFToken,
		TokenPath: cfg.CatalogTokenPath,
	})
	srv := server.New(conn, cfg, client)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("library browser listening on %s catalog=%s", cfg.Addr, cfg.CatalogURL)
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
