package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/PrAyAg9/diivido-sub000/internal/config"
	"github.com/PrAyAg9/diivido-sub000/internal/server"
	"github.com/PrAyAg9/diivido-sub000/internal/storage/sqlite"
	"github.com/PrAyAg9/diivido-sub000/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	handler := server.New(store, cfg).Router()

	addr := cfg.Addr()
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
