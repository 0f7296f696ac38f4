package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"auramind"
	"auramind/internal/logging"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging (JSON in production, text in dev)
	logging.Init()

	log.Println("🚀 Starting Auramind core...")

	ctx := context.Background()
	core, err := auramind.New(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to start: %v", err)
	}
	defer core.Close(context.Background())

	core.Start()
	log.Println("✅ Auramind core running, waiting for shutdown signal")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down...")
}
