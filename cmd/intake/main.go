package main

import (
	"context"
	"flag"
	"log"

	"github.com/nastyazhadan/order-intake/internal/application/intake"
	"github.com/nastyazhadan/order-intake/internal/config"
	zapLogger "github.com/nastyazhadan/order-intake/internal/interceptors/logger/zap"
)

func main() {
	envPath := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

	cfg, err := config.Load(*envPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := zapLogger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("init logger: %v", err)
	}

	intake.Run(context.Background(), cfg)
}
