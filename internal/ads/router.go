// internal/ads/router.go
package ads

import (
	"context"
	"strings"
)

// Route maps a natural language request onto a tool by keyword matching.
// Rules are checked in a fixed order; the first match wins.
func (s *Service) Route(ctx context.Context, request string) ToolResult {
	lower := strings.ToLower(request)

	// Account queries
	if strings.Contains(lower, "accounts") {
		return s.ListAccounts(ctx)
	}
	if strings.Contains(lower, "account summary") || strings.Contains(lower, "overview") {
		return s.GetAccountSummary(ctx, "")
	}

	// Campaign queries
	if strings.Contains(lower, "campaigns") && !strings.Contains(lower, "performance") {
		return s.GetCampaigns(ctx, "", "")
	}

	// Keyword queries
	if strings.Contains(lower, "keywords") {
		if strings.Contains(lower, "low quality") || strings.Contains(lower, "quality score") {
			return s.DiagnoseLowQualityScores(ctx, 0)
		}
		if strings.Contains(lower, "negative") {
			return s.GetNegativeKeywords(ctx, "")
		}
		return s.GetKeywords(ctx, "", "", 0)
	}

	// Search terms
	if strings.Contains(lower, "search terms") || strings.Contains(lower, "search queries") {
		return s.GetSearchTerms(ctx, "", "")
	}

	// Diagnostics
	if strings.Contains(lower, "high cost") || strings.Contains(lower, "expensive") {
		return s.DiagnoseHighCostCampaigns(ctx)
	}
	if strings.Contains(lower, "disapproved") || strings.Contains(lower, "rejected") {
		return s.FindDisapprovedAds(ctx)
	}

	// Performance by dimension
	if strings.Contains(lower, "geographic") || strings.Contains(lower, "location") {
		return s.GetGeographicPerformance(ctx, "", "")
	}
	if strings.Contains(lower, "device") {
		return s.GetDevicePerformance(ctx, "", "")
	}

	return ToolResult{
		"success":         false,
		"error":           "Could not understand request. Please use one of the available tools.",
		"available_tools": s.AvailableTools(),
	}
}
