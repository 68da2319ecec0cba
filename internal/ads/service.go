// internal/ads/service.go
package ads

import (
	"context"
	"strconv"

	"adcraft/internal/common/config"
	"adcraft/internal/common/logger"
	"adcraft/internal/common/metrics"
)

// ToolResult is the envelope every tool returns. Successful results carry
// success=true, a count and a named collection; failures carry
// success=false and an error string.
type ToolResult map[string]interface{}

func ok(fields map[string]interface{}) ToolResult {
	result := ToolResult{"success": true}
	for k, v := range fields {
		result[k] = v
	}
	return result
}

func fail(tool string, err error) ToolResult {
	metrics.AdsToolCalls.WithLabelValues(tool, "error").Inc()
	return ToolResult{"success": false, "error": err.Error()}
}

// ToolDescription documents one tool for discovery and error responses.
type ToolDescription struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters"`
}

// Service exposes the reporting tools over a Searcher.
type Service struct {
	client Searcher
	config config.AdsConfig
	logger logger.Logger
}

// NewService builds the tool service. The customer ID from config wins
// over the one in the credentials file when both are set.
func NewService(client Searcher, cfg config.AdsConfig, log logger.Logger) *Service {
	return &Service{
		client: client,
		config: cfg,
		logger: log,
	}
}

func (s *Service) customerID() string {
	if s.config.CustomerID != "" {
		return s.config.CustomerID
	}
	return s.client.CustomerID()
}

func (s *Service) search(ctx context.Context, tool, query string) ([]Row, error) {
	rows, err := s.client.Search(ctx, s.customerID(), query)
	if err != nil {
		s.logger.Error("tool query failed", map[string]interface{}{
			"tool":  tool,
			"error": err.Error(),
		})
		return nil, err
	}
	metrics.AdsToolCalls.WithLabelValues(tool, "ok").Inc()
	return rows, nil
}

// ListAccounts lists all accessible accounts.
func (s *Service) ListAccounts(ctx context.Context) ToolResult {
	accounts, err := s.client.ListAccessibleCustomers(ctx)
	if err != nil {
		return fail("list_accounts", err)
	}
	metrics.AdsToolCalls.WithLabelValues("list_accounts", "ok").Inc()
	return ok(map[string]interface{}{
		"count":    len(accounts),
		"accounts": accounts,
	})
}

// GetAccountInfo returns account details for one customer.
func (s *Service) GetAccountInfo(ctx context.Context, customerID string) ToolResult {
	cid := customerID
	if cid == "" {
		cid = s.customerID()
	}
	if cid == "" {
		return ToolResult{"success": false, "error": "No customer ID provided"}
	}

	rows, err := s.search(ctx, "get_account_info", CustomerInfoQuery(cid))
	if err != nil {
		return fail("get_account_info", err)
	}

	var account Row
	if len(rows) > 0 {
		account = rows[0]
	}
	return ok(map[string]interface{}{"account": account})
}

// GetAccountSummary returns the high-level performance rollup.
func (s *Service) GetAccountSummary(ctx context.Context, dateRange string) ToolResult {
	dateRange = s.defaultDateRange(dateRange)

	rows, err := s.search(ctx, "get_account_summary", AccountSummaryQuery(dateRange))
	if err != nil {
		return fail("get_account_summary", err)
	}

	var summary Row
	if len(rows) > 0 {
		summary = rows[0]
	}
	return ok(map[string]interface{}{
		"summary":    summary,
		"date_range": dateRange,
	})
}

// GetCampaigns lists campaigns with metrics.
func (s *Service) GetCampaigns(ctx context.Context, dateRange, statusFilter string) ToolResult {
	dateRange = s.defaultDateRange(dateRange)

	rows, err := s.search(ctx, "get_campaigns", CampaignsOverviewQuery(dateRange, statusFilter))
	if err != nil {
		return fail("get_campaigns", err)
	}
	return ok(map[string]interface{}{
		"count":      len(rows),
		"campaigns":  rows,
		"date_range": dateRange,
	})
}

// GetCampaignPerformance returns the overview row for one campaign.
func (s *Service) GetCampaignPerformance(ctx context.Context, campaignID, dateRange string) ToolResult {
	dateRange = s.defaultDateRange(dateRange)

	rows, err := s.search(ctx, "get_campaign_performance", CampaignsOverviewQuery(dateRange, ""))
	if err != nil {
		return fail("get_campaign_performance", err)
	}

	var match Row
	for _, row := range rows {
		if campaign, hasCampaign := row["campaign"].(map[string]interface{}); hasCampaign {
			if idString(campaign["id"]) == campaignID {
				match = row
				break
			}
		}
	}

	return ok(map[string]interface{}{
		"campaign":   match,
		"date_range": dateRange,
	})
}

// GetCampaignBudget returns budget settings.
func (s *Service) GetCampaignBudget(ctx context.Context, campaignID string) ToolResult {
	rows, err := s.search(ctx, "get_campaign_budget", CampaignBudgetQuery(campaignID))
	if err != nil {
		return fail("get_campaign_budget", err)
	}
	return ok(map[string]interface{}{
		"count":   len(rows),
		"budgets": rows,
	})
}

// GetAdGroups lists ad groups with metrics.
func (s *Service) GetAdGroups(ctx context.Context, campaignID, dateRange string) ToolResult {
	dateRange = s.defaultDateRange(dateRange)

	rows, err := s.search(ctx, "get_ad_groups", AdGroupsPerformanceQuery(campaignID, dateRange))
	if err != nil {
		return fail("get_ad_groups", err)
	}
	return ok(map[string]interface{}{
		"count":      len(rows),
		"ad_groups":  rows,
		"date_range": dateRange,
	})
}

// GetKeywords lists keyword performance.
func (s *Service) GetKeywords(ctx context.Context, campaignID, dateRange string, minImpressions int) ToolResult {
	dateRange = s.defaultDateRange(dateRange)

	rows, err := s.search(ctx, "get_keywords", KeywordsPerformanceQuery(campaignID, dateRange, minImpressions))
	if err != nil {
		return fail("get_keywords", err)
	}
	return ok(map[string]interface{}{
		"count":      len(rows),
		"keywords":   rows,
		"date_range": dateRange,
	})
}

// GetSearchTerms lists the search terms report.
func (s *Service) GetSearchTerms(ctx context.Context, campaignID, dateRange string) ToolResult {
	if dateRange == "" {
		dateRange = "LAST_7_DAYS"
	}

	rows, err := s.search(ctx, "get_search_terms", SearchTermsReportQuery(campaignID, dateRange))
	if err != nil {
		return fail("get_search_terms", err)
	}
	return ok(map[string]interface{}{
		"count":        len(rows),
		"search_terms": rows,
		"date_range":   dateRange,
	})
}

// GetNegativeKeywords lists campaign-level negatives.
func (s *Service) GetNegativeKeywords(ctx context.Context, campaignID string) ToolResult {
	rows, err := s.search(ctx, "get_negative_keywords", NegativeKeywordsQuery(campaignID))
	if err != nil {
		return fail("get_negative_keywords", err)
	}
	return ok(map[string]interface{}{
		"count":             len(rows),
		"negative_keywords": rows,
	})
}

// GetAds lists ads with performance.
func (s *Service) GetAds(ctx context.Context, campaignID, adGroupID, dateRange string) ToolResult {
	dateRange = s.defaultDateRange(dateRange)

	rows, err := s.search(ctx, "get_ads", AdsPerformanceQuery(campaignID, adGroupID, dateRange))
	if err != nil {
		return fail("get_ads", err)
	}
	return ok(map[string]interface{}{
		"count":      len(rows),
		"ads":        rows,
		"date_range": dateRange,
	})
}

// GetGeographicPerformance breaks metrics down by location.
func (s *Service) GetGeographicPerformance(ctx context.Context, campaignID, dateRange string) ToolResult {
	dateRange = s.defaultDateRange(dateRange)

	rows, err := s.search(ctx, "get_geographic_performance", GeographicPerformanceQuery(campaignID, dateRange))
	if err != nil {
		return fail("get_geographic_performance", err)
	}
	return ok(map[string]interface{}{
		"count":           len(rows),
		"geographic_data": rows,
		"date_range":      dateRange,
	})
}

// GetDevicePerformance breaks metrics down by device.
func (s *Service) GetDevicePerformance(ctx context.Context, campaignID, dateRange string) ToolResult {
	dateRange = s.defaultDateRange(dateRange)

	rows, err := s.search(ctx, "get_device_performance", DevicePerformanceQuery(campaignID, dateRange))
	if err != nil {
		return fail("get_device_performance", err)
	}
	return ok(map[string]interface{}{
		"count":       len(rows),
		"device_data": rows,
		"date_range":  dateRange,
	})
}

// DiagnoseLowQualityScores finds keywords with quality scores below 5.
func (s *Service) DiagnoseLowQualityScores(ctx context.Context, minImpressions int) ToolResult {
	if minImpressions == 0 {
		minImpressions = s.config.MinImpressions
	}

	rows, err := s.search(ctx, "diagnose_low_quality_scores", LowQualityScoreQuery(minImpressions))
	if err != nil {
		return fail("diagnose_low_quality_scores", err)
	}
	return ok(map[string]interface{}{
		"count":                len(rows),
		"low_quality_keywords": rows,
		"recommendation":       "Review ad relevance, landing pages, and expected CTR",
	})
}

// DiagnoseHighCostCampaigns finds campaigns with high spend and few
// conversions.
func (s *Service) DiagnoseHighCostCampaigns(ctx context.Context) ToolResult {
	rows, err := s.search(ctx, "diagnose_high_cost_campaigns", HighCostLowConversionQuery())
	if err != nil {
		return fail("diagnose_high_cost_campaigns", err)
	}
	return ok(map[string]interface{}{
		"count":          len(rows),
		"campaigns":      rows,
		"recommendation": "Review targeting, ad copy, and landing page conversion rate",
	})
}

// FindDisapprovedAds finds ads blocked by policy review.
func (s *Service) FindDisapprovedAds(ctx context.Context) ToolResult {
	rows, err := s.search(ctx, "find_disapproved_ads", DisapprovedAdsQuery())
	if err != nil {
		return fail("find_disapproved_ads", err)
	}
	return ok(map[string]interface{}{
		"count":           len(rows),
		"disapproved_ads": rows,
		"recommendation":  "Review policy violations and update ad copy",
	})
}

// RunCustomQuery executes an arbitrary GAQL query.
func (s *Service) RunCustomQuery(ctx context.Context, query, customerID string) ToolResult {
	cid := customerID
	if cid == "" {
		cid = s.customerID()
	}

	rows, err := s.client.Search(ctx, cid, query)
	if err != nil {
		return fail("run_custom_query", err)
	}
	metrics.AdsToolCalls.WithLabelValues("run_custom_query", "ok").Inc()
	return ok(map[string]interface{}{
		"count":   len(rows),
		"results": rows,
	})
}

func (s *Service) defaultDateRange(dateRange string) string {
	if dateRange != "" {
		return dateRange
	}
	return "LAST_30_DAYS"
}

func idString(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return ""
	}
}

// AvailableTools documents the tool surface.
func (s *Service) AvailableTools() []ToolDescription {
	return []ToolDescription{
		{
			Name:        "list_accounts",
			Description: "List all accessible Google Ads accounts",
			Parameters:  map[string]string{},
		},
		{
			Name:        "get_account_info",
			Description: "Get detailed information about a specific account",
			Parameters:  map[string]string{"customer_id": "string (optional)"},
		},
		{
			Name:        "get_account_summary",
			Description: "Get high-level performance summary for the account",
			Parameters:  map[string]string{"date_range": "string (default: LAST_30_DAYS)"},
		},
		{
			Name:        "get_campaigns",
			Description: "Get all campaigns with performance metrics",
			Parameters: map[string]string{
				"date_range":    "string (default: LAST_30_DAYS)",
				"status_filter": "string (optional: ENABLED, PAUSED, REMOVED)",
			},
		},
		{
			Name:        "get_campaign_performance",
			Description: "Get detailed performance for a specific campaign",
			Parameters: map[string]string{
				"campaign_id": "string (required)",
				"date_range":  "string (default: LAST_30_DAYS)",
			},
		},
		{
			Name:        "get_keywords",
			Description: "Get keyword performance data",
			Parameters: map[string]string{
				"campaign_id":     "string (optional)",
				"date_range":      "string (default: LAST_30_DAYS)",
				"min_impressions": "int (default: 0)",
			},
		},
		{
			Name:        "get_search_terms",
			Description: "Get search terms report (actual searches)",
			Parameters: map[string]string{
				"campaign_id": "string (optional)",
				"date_range":  "string (default: LAST_7_DAYS)",
			},
		},
		{
			Name:        "diagnose_low_quality_scores",
			Description: "Find keywords with quality scores below 5",
			Parameters:  map[string]string{"min_impressions": "int (default: 100)"},
		},
		{
			Name:        "diagnose_high_cost_campaigns",
			Description: "Find campaigns with high spend but low conversions",
			Parameters:  map[string]string{},
		},
		{
			Name:        "run_custom_query",
			Description: "Execute a custom GAQL query",
			Parameters: map[string]string{
				"query":       "string (required)",
				"customer_id": "string (optional)",
			},
		},
	}
}
