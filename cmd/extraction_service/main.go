// Package main provides the entry point for the job-posting extraction service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "extraction_service",
	Short: "AI job-posting extraction service",
	Long:  "Extracts structured job information (title, company, skills, contact, salary) from noisy social-media post content via heuristics and an LLM, served over a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
