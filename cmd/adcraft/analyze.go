// cmd/adcraft/analyze.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"adcraft/internal/ai"
	"adcraft/internal/common/config"
	"adcraft/internal/common/logger"
	"adcraft/internal/exporter"
	"adcraft/internal/models"
	"adcraft/internal/pipeline"
	"adcraft/internal/scraper"
	"adcraft/internal/validation"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	keywordsOnly bool
	outputFile   string
	adContext    string
)

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

func buildRunner(cfg *config.Config, log logger.Logger) (*pipeline.Runner, error) {
	generator, err := ai.NewGenerator(cfg.AI, cfg.Limits, log)
	if err != nil {
		return nil, err
	}

	exp, err := exporter.New(cfg.Export.OutputDir, log)
	if err != nil {
		return nil, err
	}

	return pipeline.NewRunner(
		scraper.NewFetcher(cfg.Scraper, log),
		generator,
		validation.New(cfg.Limits),
		exp,
		log,
	), nil
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze URL",
		Short: "Run the full pipeline for a website",
		Long: `Fetch a website, analyze it, generate keywords and ad copy,
and export the complete report.

Examples:
  # Full report
  adcraft analyze https://example.com

  # Keywords only
  adcraft analyze https://example.com --keywords-only

  # Custom output filename
  adcraft analyze https://example.com -o report.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().BoolVar(&keywordsOnly, "keywords-only", false, "Stop after keyword generation")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output filename")
	cmd.Flags().StringVar(&adContext, "context", "", "Additional context for generation")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	url := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level)
	defer log.Sync()

	runner, err := buildRunner(cfg, log)
	if err != nil {
		return err
	}

	printStep(fmt.Sprintf("Analyzing %s with %s", url, cfg.AI.Provider))

	report, err := runner.Run(context.Background(), url, pipeline.Options{
		KeywordsOnly:      keywordsOnly,
		AdditionalContext: adContext,
		AdRequirements:    adContext,
		OutputFilename:    outputFile,
	})
	if err != nil {
		printError(err.Error())
		return err
	}

	printAnalysis(report.Analysis)
	printSuccess(fmt.Sprintf("%d keywords generated", len(report.Keywords)))
	if !keywordsOnly {
		printSuccess(fmt.Sprintf("%d ad variants generated", len(report.Ads)))
	}
	printSuccess(fmt.Sprintf("Report saved to %s", report.OutputPath))

	return nil
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse URL",
		Short: "Fetch and parse a website without running generation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			log := logger.New(cfg.Logging.Level)
			defer log.Sync()

			printStep("Fetching " + args[0])

			fetcher := scraper.NewFetcher(cfg.Scraper, log)
			content, err := fetcher.Fetch(context.Background(), args[0])
			if err != nil {
				printError(err.Error())
				return err
			}

			encoded, err := json.MarshalIndent(content, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(encoded))
			return nil
		},
	}
}

func printStep(msg string) {
	color.New(color.FgCyan).Fprintln(os.Stderr, msg)
}

func printSuccess(msg string) {
	color.New(color.FgGreen).Fprintf(os.Stderr, "✓ %s\n", msg)
}

func printError(msg string) {
	color.New(color.FgRed).Fprintf(os.Stderr, "✗ %s\n", msg)
}

func printAnalysis(analysis *models.Analysis) {
	if analysis == nil {
		return
	}

	bold := color.New(color.Bold)
	bold.Fprintf(os.Stderr, "\nProduct: %s\n", analysis.ProductName)
	fmt.Fprintf(os.Stderr, "Audience: %s\n", analysis.TargetAudience)
	fmt.Fprintf(os.Stderr, "Value proposition: %s\n\n", analysis.UniqueValueProposition)

	for i, statement := range analysis.FABStatements {
		fmt.Fprintf(os.Stderr, "%d. %s\n", i+1, statement.BAB())
	}
	fmt.Fprintln(os.Stderr)
}
