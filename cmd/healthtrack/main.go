package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"

	"github.com/soumyachk101/HealthTrack-Server/internal/app"
	"github.com/soumyachk101/HealthTrack-Server/internal/config"
	"github.com/soumyachk101/HealthTrack-Server/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
