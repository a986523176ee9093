package main

import (
	"context"
	"log"

	"weather-dashboard/config"
	"weather-dashboard/di"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[MAIN] Failed to load config: %v", err)
	}

	container, err := di.NewContainer(cfg)
	if err != nil {
		log.Fatalf("[MAIN] Failed to initialize container: %v", err)
	}

	// Nothing can be in flight yet, so any stored Loading flag is stale.
	if cleared, err := container.SessionSweeperService.SweepStaleSessions(); err != nil {
		log.Printf("[MAIN] Initial session sweep failed: %v", err)
	} else {
		log.Printf("[MAIN] Initial session sweep cleared %d sessions", cleared)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	container.SessionSweeperService.StartPeriodicJob(ctx, cfg.SessionSweepInterval)

	log.Println("[MAIN] Starting server")
	if err := container.DashboardHttpServer.Start(); err != nil {
		log.Fatalf("[MAIN] Server failed: %v", err)
	}
}
