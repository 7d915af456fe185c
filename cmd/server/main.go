// Package main - Entry point for the gold-calc API server
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"gold-calc/api"
	"gold-calc/internal/config"
	"gold-calc/internal/logging"
	"gold-calc/internal/session"
)

const version = "0.1.0"

func main() {
	cfgFile := flag.String("config", "", "Config file (JSON or YAML)")
	addr := flag.String("addr", "", "Server address (default from config)")
	flag.Parse()

	cfg := config.Default()
	if *cfgFile != "" {
		loaded, err := config.Load(*cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	if *addr == "" {
		*addr = cfg.Server.Addr
	}

	var store session.Store = session.NewMemoryStore()
	if cfg.Session.Enabled {
		store = session.NewFileStore(cfg.Session.Path)
	}

	apiServer := api.NewServer(version, api.Options{
		Store:            store,
		Language:         cfg.Output.Language,
		AddedMetalPurity: cfg.Rates.AddedMetalPurity,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiServer))

	fmt.Printf("gold-calc API server v%s\n", version)
	fmt.Printf("   API: http://localhost%s/api\n", *addr)

	logging.Info("listening", zap.String("addr", *addr))
	if err := http.ListenAndServe(*addr, mux); err != nil {
		logging.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
