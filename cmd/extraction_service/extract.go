package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hireoo/extraction-service/internal/config"
	"github.com/hireoo/extraction-service/internal/heuristics"
	"github.com/hireoo/extraction-service/internal/jobinfo"
	"github.com/hireoo/extraction-service/internal/llm"
	"github.com/hireoo/extraction-service/internal/normalize"
	"github.com/hireoo/extraction-service/internal/observability"
	"github.com/hireoo/extraction-service/internal/pipeline"
	"github.com/hireoo/extraction-service/internal/provider"
)

var (
	extractHTMLPath string
	extractTextPath string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Run one extraction from files and print the result JSON",
	Long:  `Run the extraction pipeline once against local post content. Useful for prompt and heuristics debugging without the server.`,
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractHTMLPath, "html", "", "Path to raw HTML file (optional)")
	extractCmd.Flags().StringVar(&extractTextPath, "text", "", "Path to raw text file (required)")
	_ = extractCmd.MarkFlagRequired("text")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	observability.Setup(cfg.LogLevel, true)

	rawText, err := os.ReadFile(extractTextPath)
	if err != nil {
		return fmt.Errorf("failed to read text file: %w", err)
	}
	var rawHTML []byte
	if extractHTMLPath != "" {
		rawHTML, err = os.ReadFile(extractHTMLPath)
		if err != nil {
			return fmt.Errorf("failed to read HTML file: %w", err)
		}
	}

	client, err := llm.NewClient(cmd.Context(), cfg.Provider, cfg.APIKey, cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	pipe := pipeline.New(normalize.New(nil), heuristics.New(nil), provider.New(client))

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()

	info := pipe.Run(ctx, jobinfo.Post{HTML: string(rawHTML), Text: string(rawText)})

	out, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
