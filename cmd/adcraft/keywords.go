// cmd/adcraft/keywords.go
package main

import (
	"context"
	"fmt"

	"adcraft/internal/common/logger"
	"adcraft/internal/pipeline"

	"github.com/spf13/cobra"
)

func newKeywordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keywords URL",
		Short: "Generate and export only the keyword list for a website",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			printStep("Generating keywords for " + args[0])

			report, err := runner.Run(context.Background(), args[0], pipeline.Options{
				KeywordsOnly:      true,
				AdditionalContext: adContext,
				OutputFilename:    outputFile,
			})
			if err != nil {
				printError(err.Error())
				return err
			}

			printSuccess(fmt.Sprintf("%d keywords saved to %s", len(report.Keywords), report.OutputPath))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output filename")
	cmd.Flags().StringVar(&adContext, "context", "", "Additional context for generation")

	return cmd
}
