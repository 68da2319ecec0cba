// cmd/adcraft/adsquery.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"adcraft/internal/ads"
	"adcraft/internal/common/logger"

	"github.com/spf13/cobra"
)

var adsQuery string

func newAdsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ads REQUEST",
		Short: "Query the ad platform account in natural language",
		Long: `Route a natural language request onto the ad platform reporting
tools and print the result.

Examples:
  adcraft ads "show me all campaigns"
  adcraft ads "keywords with low quality scores"
  adcraft ads --query "SELECT campaign.id FROM campaign"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAdsQuery,
	}

	cmd.Flags().StringVar(&adsQuery, "query", "", "Raw GAQL query instead of a natural language request")

	return cmd
}

func runAdsQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level)
	defer log.Sync()

	client, err := ads.NewClient(cfg.Ads.CredentialsPath, log)
	if err != nil {
		printError(err.Error())
		return err
	}
	service := ads.NewService(client, cfg.Ads, log)

	var result ads.ToolResult
	switch {
	case adsQuery != "":
		result = service.RunCustomQuery(context.Background(), adsQuery, "")
	case len(args) == 1:
		result = service.Route(context.Background(), args[0])
	default:
		return fmt.Errorf("provide a natural language request or --query")
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(encoded))

	if success, ok := result["success"].(bool); ok && !success {
		os.Exit(1)
	}
	return nil
}
