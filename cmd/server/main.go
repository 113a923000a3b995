package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"rokufun-core/internal/adapter/api"
	"rokufun-core/internal/adapter/client"
	"rokufun-core/internal/config"
	"rokufun-core/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	ctx := context.Background()

	sink := client.NewDriveLogger(cfg.Logger.URL, cfg.Logger.AuthToken, cfg.Logger.AppName, cfg.Logger.QueueSize)
	defer sink.Close()

	// The credential is checked per request, not at startup: a missing key
	// means every AI request answers 500 while the rest of the gateway
	// (health, content archival) keeps working.
	var dispatcher api.Dispatcher
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		invoker, err := client.NewGeminiInvoker(ctx, apiKey)
		if err != nil {
			log.Fatalf("failed to init genai client: %v", err)
		}
		dispatcher = usecase.NewDispatcher(invoker, sink, usecase.Policy{
			DefaultModel: cfg.Gemini.DefaultModel,
			Fallbacks:    cfg.Gemini.Fallbacks,
			MaxAttempts:  cfg.Retry.MaxAttempts,
			BaseDelay:    cfg.Retry.BaseDelay,
		})
	} else {
		log.Println("Warning: GEMINI_API_KEY is not set; AI requests will fail with 500")
	}

	app := fiber.New(fiber.Config{
		AppName:      "Rokufun Journal Gateway",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	handler := api.NewGeminiHandler(dispatcher, sink)
	api.SetupRouter(app, handler)

	log.Printf("Rokufun Journal Gateway running on port %d", cfg.Server.Port)
	log.Fatal(app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)))
}
