// internal/pipeline/runner_test.go
package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"adcraft/internal/ai"
	"adcraft/internal/common/config"
	"adcraft/internal/common/logger"
	"adcraft/internal/common/metrics"
	"adcraft/internal/common/observability"
	"adcraft/internal/exporter"
	"adcraft/internal/scraper"
	"adcraft/internal/validation"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

// scriptedProvider replays one canned reply per generation call.
type scriptedProvider struct {
	replies []string
	calls   int
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Generate(_ context.Context, _ ai.GenerationRequest) (string, error) {
	reply := p.replies[p.calls%len(p.replies)]
	p.calls++
	return reply, nil
}

const analysisReply = `{
	"product_name": "Acme Cloud Hosting",
	"target_audience": "small online businesses",
	"unique_value_proposition": "hosting that scales",
	"fab_statements": [
		{"feature": "one-click deploy", "advantage": "no devops needed", "benefit": "online in minutes"}
	]
}`

const keywordsReply = `{
	"keywords": [
		{"keyword": "cloud hosting", "match_type": "exact", "search_volume": "high", "commercial_intent": "high", "category": "transactional"}
	]
}`

const adsReply = `{
	"ads": [
		{
			"type": "emotional",
			"headlines": ["Online in Minutes", "This headline is way too long for the thirty character limit"],
			"descriptions": ["Launch your store today."],
			"paths": ["hosting"],
			"keywords": ["cloud hosting"]
		}
	]
}`

func newTestRunner(t *testing.T, provider ai.Provider) *Runner {
	log := logger.NewTestLogger(t)
	limits := config.LimitsConfig{HeadlineMax: 30, DescriptionMax: 90, PathMax: 15}
	generator := ai.NewGeneratorWithProvider(provider, config.AIConfig{Provider: "scripted"}, limits, log)

	exp, err := exporter.New(t.TempDir(), log)
	require.NoError(t, err)

	fetcher := scraper.NewFetcher(config.ScraperConfig{TimeoutSeconds: 5, UserAgent: "test-agent"}, log)

	return NewRunner(fetcher, generator, validation.New(limits), exp, log)
}

func newTestSite(t *testing.T) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Acme</title></head><body><p>Acme hosts stores.</p></body></html>`))
	}))
	t.Cleanup(server.Close)
	return server
}

// ==========================
// Run
// ==========================

func TestRunner_Run(t *testing.T) {
	provider := &scriptedProvider{replies: []string{analysisReply, keywordsReply, adsReply}}
	runner := newTestRunner(t, provider)
	site := newTestSite(t)

	report, err := runner.Run(context.Background(), site.URL, Options{OutputFilename: "report.xlsx"})

	require.NoError(t, err)
	assert.Equal(t, 3, provider.calls)
	assert.Equal(t, "Acme", report.Website.Title)
	assert.Equal(t, "Acme Cloud Hosting", report.Analysis.ProductName)
	require.Len(t, report.Keywords, 1)
	require.Len(t, report.Ads, 1)
	assert.Contains(t, report.OutputPath, "report.xlsx")
	assert.FileExists(t, report.OutputPath)
}

func TestRunner_Run_RepairsOverlongAdCopy(t *testing.T) {
	provider := &scriptedProvider{replies: []string{analysisReply, keywordsReply, adsReply}}
	runner := newTestRunner(t, provider)
	site := newTestSite(t)

	report, err := runner.Run(context.Background(), site.URL, Options{OutputFilename: "report.xlsx"})

	require.NoError(t, err)
	for _, headline := range report.Ads[0].Headlines {
		assert.LessOrEqual(t, len([]rune(headline)), 30)
	}
	assert.Contains(t, report.Ads[0].Headlines[1], "...")
}

func TestRunner_Run_KeywordsOnly(t *testing.T) {
	provider := &scriptedProvider{replies: []string{analysisReply, keywordsReply}}
	runner := newTestRunner(t, provider)
	site := newTestSite(t)

	report, err := runner.Run(context.Background(), site.URL, Options{
		KeywordsOnly:   true,
		OutputFilename: "keywords.xlsx",
	})

	require.NoError(t, err)
	// Fetch, analyze and keywords only; the ads stage never runs.
	assert.Equal(t, 2, provider.calls)
	assert.Empty(t, report.Ads)
	require.Len(t, report.Keywords, 1)
	assert.Contains(t, report.OutputPath, "keywords.xlsx")
	assert.FileExists(t, report.OutputPath)
}

func TestRunner_Run_FetchFailureAborts(t *testing.T) {
	provider := &scriptedProvider{replies: []string{analysisReply}}
	runner := newTestRunner(t, provider)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	before := testutil.ToFloat64(metrics.PipelineFailures.WithLabelValues("network"))

	_, err := runner.Run(context.Background(), server.URL, Options{})

	require.Error(t, err)
	assert.Equal(t, 0, provider.calls)
	after := testutil.ToFloat64(metrics.PipelineFailures.WithLabelValues("network"))
	assert.Equal(t, before+1, after)
}

func TestRunner_Run_WithObservability(t *testing.T) {
	provider := &scriptedProvider{replies: []string{analysisReply, keywordsReply, adsReply}}
	obs := observability.New("pipeline-test")
	t.Cleanup(obs.Shutdown)
	runner := newTestRunner(t, provider).WithObservability(obs)
	site := newTestSite(t)

	report, err := runner.Run(context.Background(), site.URL, Options{OutputFilename: "report.xlsx"})

	require.NoError(t, err)
	assert.FileExists(t, report.OutputPath)
}
