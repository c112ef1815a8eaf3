package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/voyagent/voyagent/agents"
	"github.com/voyagent/voyagent/components"
	"github.com/voyagent/voyagent/config"
	"github.com/voyagent/voyagent/serpapi"
	"github.com/voyagent/voyagent/server"
	"github.com/voyagent/voyagent/tools/flights"
	"github.com/voyagent/voyagent/tools/hotels"
	"github.com/voyagent/voyagent/travel"
)

func serve(ctx context.Context) error {
	logger := newLogger()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Listen = listen
	}
	// Refuse to start on missing credentials instead of failing on the
	// first chat turn.
	if err := cfg.Validate(); err != nil {
		return err
	}
	clientCfg := agents.ClientConfig{
		Provider: cfg.Provider,
		APIKey:   cfg.LLMAPIKey(),
	}
	if cfg.Provider == "openai" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}
	clt, err := agents.NewInstructor(clientCfg)
	if err != nil {
		return err
	}
	serpOpts := make([]serpapi.Option, 0, 1)
	if cfg.SerpAPIBaseURL != "" {
		serpOpts = append(serpOpts, serpapi.WithBaseURL(cfg.SerpAPIBaseURL))
	}
	searchClient := serpapi.New(cfg.SerpAPIKey, serpOpts...)
	flightsTool := flights.New(searchClient)
	hotelsTool := hotels.New(searchClient)
	counter := newTokenCounter(logger)

	store := server.NewStore(func() server.Delegate {
		return travel.New(
			travel.WithClient(clt),
			travel.WithMemory(components.NewMemory(cfg.MaxHistory)),
			travel.WithFlightsTool(flightsTool),
			travel.WithHotelsTool(hotelsTool),
			travel.WithModel(cfg.Model),
			travel.WithTemperature(cfg.Temperature),
			travel.WithMaxTokens(cfg.MaxTokens),
			travel.WithTokenCounter(counter),
			travel.WithLogger(logger),
		)
	})
	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: server.New(store, server.WithLogger(logger)).Handler(),
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("listen", cfg.Listen).
			Str("provider", cfg.Provider).
			Str("model", cfg.Model).
			Msg("serving chat UI")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newTokenCounter prefers the exact tiktoken encoding and falls back to
// word counting when the encoding data is unavailable, e.g. offline.
func newTokenCounter(logger zerolog.Logger) components.TokenCounter {
	counter, err := components.NewTikTokenCounter("cl100k_base")
	if err != nil {
		logger.Warn().Err(err).Msg("tiktoken unavailable, falling back to word counting")
		return components.WordTokenCounter{}
	}
	return counter
}
