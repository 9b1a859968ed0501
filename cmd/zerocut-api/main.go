// ZeroCut API — HTTP front end for the pattern generator.
//
// Accepts body measurements as JSON, returns the derived pattern analysis
// (optionally with an SVG drawing), and archives every result in a sqlite
// database.
//
// Build:
//   go build -o zerocut-api ./cmd/zerocut-api

package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/almare/zerocut/internal/project"
	"github.com/almare/zerocut/internal/store"
)

const (
	defaultDBPath = "./zerocut.db"
	defaultPort   = "8080"
)

// config holds server configuration sourced from environment variables.
type config struct {
	DBPath     string
	Port       string
	ConfigPath string
}

func loadConfig() config {
	cfg := config{
		DBPath:     os.Getenv("DB_PATH"),
		Port:       os.Getenv("PORT"),
		ConfigPath: os.Getenv("CONFIG_PATH"),
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = project.DefaultConfigPath()
	}
	return cfg
}

func main() {
	cfg := loadConfig()

	pattern, err := project.LoadConfig(cfg.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load tailoring config: %v", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	srv := &server{cfg: pattern, store: db}

	r := chi.NewRouter()
	r.Get("/healthz", srv.handleHealth)
	r.Post("/api/v1/patterns", srv.handlePattern)
	r.Get("/api/v1/analyses", srv.handleAnalysesList)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
