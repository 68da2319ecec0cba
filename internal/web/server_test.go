// internal/web/server_test.go
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"adcraft/internal/ads"
	"adcraft/internal/ai"
	"adcraft/internal/common/config"
	"adcraft/internal/common/database"
	"adcraft/internal/common/logger"
	"adcraft/internal/exporter"
	"adcraft/internal/pipeline"
	"adcraft/internal/scraper"
	"adcraft/internal/validation"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==========================
// Test Helper Functions
// ==========================

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

const keywordsReply = `{"keywords": [{"keyword": "cloud hosting"}]}`

const adsReply = `{
	"ads": [
		{"type": "emotional", "headlines": ["Online in Minutes"], "descriptions": ["Launch today."], "paths": ["hosting"], "keywords": ["cloud hosting"]}
	]
}`

type fakeSearcher struct {
	rows []ads.Row
	err  error
}

func (f *fakeSearcher) Search(_ context.Context, _, _ string) ([]ads.Row, error) {
	return f.rows, f.err
}

func (f *fakeSearcher) ListAccessibleCustomers(_ context.Context) ([]ads.Account, error) {
	return []ads.Account{{ID: "1112223333", ResourceName: "customers/1112223333"}}, f.err
}

func (f *fakeSearcher) CustomerID() string { return "1112223333" }

type serverOptions struct {
	webConfig  config.WebConfig
	adsService *ads.Service
	sessions   *SessionStore
}

func newTestServer(t *testing.T, opts serverOptions) *Server {
	log := logger.NewTestLogger(t)
	limits := config.LimitsConfig{HeadlineMax: 30, DescriptionMax: 90, PathMax: 15}

	provider := &scriptedProvider{replies: []string{analysisReply, keywordsReply, adsReply}}
	generator := ai.NewGeneratorWithProvider(provider, config.AIConfig{Provider: "scripted"}, limits, log)

	outputDir := t.TempDir()
	exp, err := exporter.New(outputDir, log)
	require.NoError(t, err)

	fetcher := scraper.NewFetcher(config.ScraperConfig{TimeoutSeconds: 5, UserAgent: "test-agent"}, log)
	runner := pipeline.NewRunner(fetcher, generator, validation.New(limits), exp, log)

	cfg := config.Config{}
	cfg.AI.Provider = "scripted"
	cfg.Web = opts.webConfig
	cfg.Export.OutputDir = outputDir

	return NewServer(cfg, runner, opts.adsService, opts.sessions, log)
}

func newAdsService(t *testing.T, searcher *fakeSearcher) *ads.Service {
	return ads.NewService(searcher, config.AdsConfig{CustomerID: "1112223333", MinImpressions: 100}, logger.NewTestLogger(t))
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var payload *bytes.Buffer
	if body != nil {
		raw, _ := json.Marshal(body)
		payload = bytes.NewBuffer(raw)
	} else {
		payload = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// ==========================
// Core Routes
// ==========================

func TestServer_Health(t *testing.T) {
	server := newTestServer(t, serverOptions{})

	w := doJSON(server.Router(), http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "scripted", body["ai_provider"])
}

func TestServer_Analyze(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Acme</title></head><body><p>Acme hosts stores.</p></body></html>`))
	}))
	defer site.Close()

	server := newTestServer(t, serverOptions{})

	w := doJSON(server.Router(), http.MethodPost, "/api/analyze", map[string]interface{}{"url": site.URL})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "complete", body["type"])
	assert.NotNil(t, body["website_data"])
	assert.NotNil(t, body["fab_analysis"])
	assert.NotNil(t, body["ads_data"])
	assert.Contains(t, body["download_file"], ".xlsx")
}

func TestServer_Analyze_KeywordsOnly(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Acme</title></head><body><p>Acme hosts stores.</p></body></html>`))
	}))
	defer site.Close()

	server := newTestServer(t, serverOptions{})

	w := doJSON(server.Router(), http.MethodPost, "/api/analyze", map[string]interface{}{
		"url":           site.URL,
		"keywords_only": true,
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	assert.Equal(t, "keywords_only", body["type"])
	assert.NotContains(t, body, "ads_data")
}

func TestServer_Analyze_MissingURL(t *testing.T) {
	server := newTestServer(t, serverOptions{})

	w := doJSON(server.Router(), http.MethodPost, "/api/analyze", map[string]interface{}{})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeResponse(t, w)
	assert.Equal(t, "URL is required", body["error"])
}

// ==========================
// Sessions
// ==========================

func newTestSessions(t *testing.T) *SessionStore {
	mr := miniredis.RunT(t)
	rdb, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })
	return NewSessionStore(rdb, time.Hour)
}

func TestServer_AnalyzeAndFetchResults(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Acme</title></head><body><p>Acme hosts stores.</p></body></html>`))
	}))
	defer site.Close()

	server := newTestServer(t, serverOptions{sessions: newTestSessions(t)})
	router := server.Router()

	w := doJSON(router, http.MethodPost, "/api/analyze", map[string]interface{}{"url": site.URL})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	sessionID, ok := body["session_id"].(string)
	require.True(t, ok)

	w = doJSON(router, http.MethodGet, "/api/results/"+sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	results := decodeResponse(t, w)
	assert.Equal(t, true, results["success"])
	assert.NotNil(t, results["fab_analysis"])
}

func TestServer_Results_UnknownSession(t *testing.T) {
	server := newTestServer(t, serverOptions{sessions: newTestSessions(t)})

	w := doJSON(server.Router(), http.MethodGet, "/api/results/nope", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_Results_NoSessionStore(t *testing.T) {
	server := newTestServer(t, serverOptions{})

	w := doJSON(server.Router(), http.MethodGet, "/api/results/nope", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
}

// ==========================
// Basic Auth
// ==========================

func TestServer_BasicAuth(t *testing.T) {
	server := newTestServer(t, serverOptions{
		webConfig: config.WebConfig{AuthUser: "admin", AuthPassword: "secret"},
	})
	router := server.Router()

	// Health stays open.
	w := doJSON(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// API routes reject missing credentials.
	w = doJSON(router, http.MethodPost, "/api/analyze", map[string]interface{}{"url": "https://acme.example"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic")

	// Wrong password rejected.
	req := httptest.NewRequest(http.MethodGet, "/api/google-ads/status", nil)
	req.SetBasicAuth("admin", "wrong")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Correct credentials pass.
	req = httptest.NewRequest(http.MethodGet, "/api/google-ads/status", nil)
	req.SetBasicAuth("admin", "secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_NoPasswordDisablesAuth(t *testing.T) {
	server := newTestServer(t, serverOptions{})

	w := doJSON(server.Router(), http.MethodGet, "/api/google-ads/status", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

// ==========================
// Ads Routes
// ==========================

func TestServer_AdsStatus(t *testing.T) {
	tests := []struct {
		name       string
		service    *ads.Service
		configured bool
	}{
		{name: "not configured", service: nil, configured: false},
		{name: "configured", service: nil, configured: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := serverOptions{}
			if tt.configured {
				opts.adsService = newAdsService(t, &fakeSearcher{})
			}
			server := newTestServer(t, opts)

			w := doJSON(server.Router(), http.MethodGet, "/api/google-ads/status", nil)

			require.Equal(t, http.StatusOK, w.Code)
			body := decodeResponse(t, w)
			assert.Equal(t, tt.configured, body["configured"])
		})
	}
}

func TestServer_AdsRoutes_UnconfiguredReturn503(t *testing.T) {
	server := newTestServer(t, serverOptions{})
	router := server.Router()

	for _, path := range []string{
		"/api/google-ads/accounts",
		"/api/google-ads/campaigns",
		"/api/google-ads/keywords",
		"/api/google-ads/tools",
	} {
		w := doJSON(router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
}

func TestServer_AdsCampaigns(t *testing.T) {
	searcher := &fakeSearcher{rows: []ads.Row{{"campaign": map[string]interface{}{"id": "1"}}}}
	server := newTestServer(t, serverOptions{adsService: newAdsService(t, searcher)})

	w := doJSON(server.Router(), http.MethodGet, "/api/google-ads/campaigns", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, "LAST_30_DAYS", body["date_range"])
}

func TestServer_AdsCampaigns_WithID(t *testing.T) {
	searcher := &fakeSearcher{rows: []ads.Row{{"campaign": map[string]interface{}{"id": "7", "name": "Brand"}}}}
	server := newTestServer(t, serverOptions{adsService: newAdsService(t, searcher)})

	w := doJSON(server.Router(), http.MethodGet, "/api/google-ads/campaigns?campaign_id=7", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	campaign := body["campaign"].(map[string]interface{})
	assert.Equal(t, "Brand", campaign["campaign"].(map[string]interface{})["name"])
}

func TestServer_AdsToolFailureReturns500(t *testing.T) {
	searcher := &fakeSearcher{err: context.DeadlineExceeded}
	server := newTestServer(t, serverOptions{adsService: newAdsService(t, searcher)})

	w := doJSON(server.Router(), http.MethodGet, "/api/google-ads/accounts", nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeResponse(t, w)
	assert.Equal(t, false, body["success"])
}

func TestServer_CustomQuery(t *testing.T) {
	searcher := &fakeSearcher{rows: []ads.Row{{"campaign": map[string]interface{}{"id": "1"}}}}
	server := newTestServer(t, serverOptions{adsService: newAdsService(t, searcher)})

	w := doJSON(server.Router(), http.MethodPost, "/api/google-ads/query", map[string]interface{}{
		"query": "SELECT campaign.id FROM campaign",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["count"])
}

func TestServer_CustomQuery_MissingQuery(t *testing.T) {
	server := newTestServer(t, serverOptions{adsService: newAdsService(t, &fakeSearcher{})})

	w := doJSON(server.Router(), http.MethodPost, "/api/google-ads/query", map[string]interface{}{})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeResponse(t, w)
	assert.Equal(t, "Query is required", body["error"])
}

func TestServer_NaturalLanguage(t *testing.T) {
	searcher := &fakeSearcher{rows: []ads.Row{{"campaign": map[string]interface{}{"id": "1"}}}}
	server := newTestServer(t, serverOptions{adsService: newAdsService(t, searcher)})

	w := doJSON(server.Router(), http.MethodPost, "/api/google-ads/nlp", map[string]interface{}{
		"request": "show me all campaigns",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotNil(t, body["campaigns"])
}

func TestServer_NaturalLanguage_UnrecognizedStays200(t *testing.T) {
	server := newTestServer(t, serverOptions{adsService: newAdsService(t, &fakeSearcher{})})

	w := doJSON(server.Router(), http.MethodPost, "/api/google-ads/nlp", map[string]interface{}{
		"request": "sing me a song",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	assert.Equal(t, false, body["success"])
	assert.NotNil(t, body["available_tools"])
}

func TestServer_Tools(t *testing.T) {
	server := newTestServer(t, serverOptions{adsService: newAdsService(t, &fakeSearcher{})})

	w := doJSON(server.Router(), http.MethodGet, "/api/google-ads/tools", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	assert.Len(t, body["tools"], 10)
}
