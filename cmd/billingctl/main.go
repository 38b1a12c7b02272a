package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/fabianodasilvalira/tatystore-billing/internal/cli"
	"github.com/fabianodasilvalira/tatystore-billing/internal/logger"
)

func main() {
	// Load environment variables before config reads them
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	format := os.Getenv("LOG_FORMAT")
	if format == "" {
		format = "console"
	}
	if err := logger.Setup(level, format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cli.Execute()
}
