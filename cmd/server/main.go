package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"deepread-backend/internal/config"
	"deepread-backend/internal/handlers"
	"deepread-backend/internal/llm"
	"deepread-backend/internal/router"
	"deepread-backend/internal/services"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	log.Info("Starting DeepRead Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Info("✓ Environment variables loaded")
	if cfg.DeepSeekAPIKey == "" {
		log.Warn("DEEPSEEK_API_KEY is not set; requests must carry X-User-API-Key")
	}

	// ──── Step 2: Initialize Completion Gateway ────
	llmClient := llm.NewClient(llm.Config{
		BaseURL:       cfg.DeepSeekBaseURL,
		DefaultAPIKey: cfg.DeepSeekAPIKey,
		Logger:        log,
	})
	log.Info("✓ DeepSeek completion gateway initialized")

	// ──── Step 3: Initialize Services & Handlers ────
	fileExtractService := services.NewFileExtractService()

	pdfHandler := handlers.NewPDFHandler(fileExtractService, cfg.MaxUploadBytes())
	llmHandler := handlers.NewLLMHandler(llmClient, cfg.ChatModel, cfg.ReasonerModel)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(pdfHandler, llmHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// No write timeout: completion calls (and streams) legitimately
		// outlive any fixed budget; callers impose their own deadlines.
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Infof("✓ DeepRead Backend ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
