package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ptalk-server/config"
	"ptalk-server/di"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container := di.NewContainer(config.Load())
	cfg := container.Config

	if cfg.UseMockStore() {
		log.Println("[MAIN] Seeding demo data")
		if err := container.MockDataSeederService.SeedAll(); err != nil {
			log.Fatalf("[MAIN] Failed to seed demo data: %v", err)
		}
		if cfg.Env == config.ENV_DEMO {
			log.Printf("[MAIN] Resetting demo data every %s", cfg.DemoResetEvery)
			container.MockDataSeederService.StartPeriodicJob(ctx, cfg.DemoResetEvery)
		}
	}

	log.Printf("[MAIN] Starting server on %s", cfg.HTTPAddress)
	if err := container.PTalkHttpServer.Run(ctx); err != nil {
		log.Fatalf("[MAIN] Server failed: %v", err)
	}
	log.Println("[MAIN] Server exiting")
}
