package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/ats-resume-expert/internal/config"
	"alfredoptarigan/ats-resume-expert/internal/handlers"
	"alfredoptarigan/ats-resume-expert/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	setupLogging(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	log.Info().Str("env", cfg.Server.Env).Str("model", cfg.Gemini.Model).Msg("Config loaded")

	// Initialize services
	ctx := context.Background()
	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Gemini client")
	}

	rasterizer := services.NewPDFRasterizer(
		services.NewPdftoppmRenderer(cfg.Rasterizer.PdftoppmPath, cfg.Rasterizer.DPI),
		cfg.Rasterizer.JPEGQuality,
	)

	wordCloudService, err := services.NewWordCloudService(cfg.WordCloud)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize word cloud renderer")
	}

	dispatcher := services.NewDispatcher(rasterizer, geminiService, wordCloudService)
	log.Info().Msg("Services initialized")

	app := handlers.NewApp(dispatcher, cfg.Upload.MaxFileSize)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msgf("Open http://localhost%s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

func setupLogging(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.IsDevelopment() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
