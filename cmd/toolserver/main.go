package main

import (
	"log"
	"os"

	"analyzer-backend/internal/shared/config"
	"analyzer-backend/internal/toolserver"
)

func main() {
	cfg := config.Load()

	if cfg.DocumentRoot != "" {
		if err := os.MkdirAll(cfg.DocumentRoot, 0o755); err != nil {
			log.Fatalf("create document root: %v", err)
		}
	}

	r := toolserver.NewRouter(cfg)
	addr := toolserver.Addr(cfg.Port)
	log.Printf("Starting tool server on %s (root=%s)", addr, cfg.DocumentRoot)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
