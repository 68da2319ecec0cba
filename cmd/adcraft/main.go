// cmd/adcraft/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "adcraft",
		Short: "Generate search ad campaigns from website content",
		Long: `adcraft analyzes a website, breaks its offering down into
feature/advantage/benefit statements, and generates search keywords and
ad copy, exporting everything to an Excel workbook.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newKeywordsCmd())
	root.AddCommand(newAdsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
