package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hireoo/extraction-service/internal/config"
	"github.com/hireoo/extraction-service/internal/heuristics"
	"github.com/hireoo/extraction-service/internal/llm"
	"github.com/hireoo/extraction-service/internal/normalize"
	"github.com/hireoo/extraction-service/internal/observability"
	"github.com/hireoo/extraction-service/internal/pipeline"
	"github.com/hireoo/extraction-service/internal/provider"
	"github.com/hireoo/extraction-service/internal/server"
)

var (
	servePort   int
	servePretty bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the extraction REST API server",
	Long:  `Start an HTTP server exposing /api/v1/extract, /api/v1/extract/batch and health endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides API_PORT)")
	serveCmd.Flags().BoolVar(&servePretty, "pretty-logs", false, "Human-readable log output")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	observability.Setup(cfg.LogLevel, servePretty)

	client, err := llm.NewClient(context.Background(), cfg.Provider, cfg.APIKey, cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	normalizer := normalize.New(nil)
	extractor := heuristics.New(nil)
	pipe := pipeline.New(normalizer, extractor, provider.New(client))

	capabilities := []string{
		normalizer.Stripper().Name(),
		extractor.Recognizer().Name(),
		client.Model(),
	}

	return server.New(cfg, pipe, capabilities).Start()
}
