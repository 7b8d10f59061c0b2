package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"gofarma/internal/config"
	"gofarma/internal/container"
	"gofarma/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	app := ui.NewApp(
		ui.Config{Port: appConfig.Server.Port},
		appContainer.Data,
		appContainer.Render,
		appContainer.Tracker,
	)

	if err := app.Start(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
