// internal/ads/router_test.go
package ads

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Route(t *testing.T) {
	tests := []struct {
		name      string
		request   string
		wantQuery string
	}{
		{
			name:      "campaigns",
			request:   "Show me all campaigns",
			wantQuery: "FROM campaign",
		},
		{
			name:      "account summary",
			request:   "give me an account summary",
			wantQuery: "FROM customer",
		},
		{
			name:      "overview",
			request:   "performance overview please",
			wantQuery: "FROM customer",
		},
		{
			name:      "keywords",
			request:   "list my keywords",
			wantQuery: "FROM keyword_view",
		},
		{
			name:      "low quality keywords",
			request:   "keywords with low quality scores",
			wantQuery: "metrics.quality_score < 5",
		},
		{
			name:      "negative keywords",
			request:   "show negative keywords",
			wantQuery: "campaign_criterion.negative = TRUE",
		},
		{
			name:      "search terms",
			request:   "what search terms triggered my ads",
			wantQuery: "FROM search_term_view",
		},
		{
			name:      "expensive",
			request:   "what is getting expensive",
			wantQuery: "metrics.cost_micros > 100000000",
		},
		{
			name:      "disapproved",
			request:   "any disapproved ads?",
			wantQuery: "DISAPPROVED",
		},
		{
			name:      "geographic",
			request:   "performance by location",
			wantQuery: "FROM geographic_view",
		},
		{
			name:      "device",
			request:   "break it down by device",
			wantQuery: "segments.device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &fakeSearcher{}
			service := newTestService(t, searcher)

			result := service.Route(context.Background(), tt.request)

			assert.Equal(t, true, result["success"])
			require.Len(t, searcher.queries, 1)
			assert.Contains(t, searcher.queries[0], tt.wantQuery)
		})
	}
}

func TestService_Route_Accounts(t *testing.T) {
	searcher := &fakeSearcher{}
	service := newTestService(t, searcher)

	result := service.Route(context.Background(), "list my accounts")

	assert.Equal(t, true, result["success"])
	assert.Equal(t, 1, searcher.listAccounts)
	assert.Empty(t, searcher.queries)
}

func TestService_Route_CampaignsRuleSkipsPerformanceRequests(t *testing.T) {
	searcher := &fakeSearcher{}
	service := newTestService(t, searcher)

	result := service.Route(context.Background(), "campaigns performance this month")

	// "campaigns" plus "performance" skips the plain campaigns rule and
	// no later rule matches either.
	assert.Equal(t, false, result["success"])
	assert.Empty(t, searcher.queries)
}

func TestService_Route_HighCostCampaignsHitsCampaignRule(t *testing.T) {
	searcher := &fakeSearcher{}
	service := newTestService(t, searcher)

	service.Route(context.Background(), "find high cost campaigns")

	// The campaigns rule fires before the diagnostics rule.
	require.Len(t, searcher.queries, 1)
	assert.Contains(t, searcher.queries[0], "FROM campaign")
	assert.NotContains(t, searcher.queries[0], "metrics.cost_micros > 100000000")
}

func TestService_Route_Unrecognized(t *testing.T) {
	service := newTestService(t, &fakeSearcher{})

	result := service.Route(context.Background(), "sing me a song")

	assert.Equal(t, false, result["success"])
	assert.Equal(t, "Could not understand request. Please use one of the available tools.", result["error"])
	tools := result["available_tools"].([]ToolDescription)
	assert.Len(t, tools, 10)
}

func TestService_Route_CaseInsensitive(t *testing.T) {
	searcher := &fakeSearcher{}
	service := newTestService(t, searcher)

	result := service.Route(context.Background(), "SHOW ME ALL CAMPAIGNS")

	assert.Equal(t, true, result["success"])
	require.Len(t, searcher.queries, 1)
	assert.True(t, strings.Contains(searcher.queries[0], "FROM campaign"))
}
