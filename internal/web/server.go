// Package web serves the HTTP API over the report pipeline and the ad
// platform tools.
package web

import (
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"adcraft/internal/ads"
	"adcraft/internal/common/config"
	"adcraft/internal/common/logger"
	"adcraft/internal/pipeline"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the HTTP handlers and their dependencies. adsService may
// be nil when the platform credentials are not configured; its routes
// then report that state instead of failing.
type Server struct {
	config     config.Config
	runner     *pipeline.Runner
	adsService *ads.Service
	sessions   *SessionStore
	logger     logger.Logger
}

// NewServer wires the handlers. sessions may be nil; results are then
// only returned inline.
func NewServer(cfg config.Config, runner *pipeline.Runner, adsService *ads.Service, sessions *SessionStore, log logger.Logger) *Server {
	return &Server{
		config:     cfg,
		runner:     runner,
		adsService: adsService,
		sessions:   sessions,
		logger:     log,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api", basicAuth(s.config.Web))
	{
		api.POST("/analyze", s.handleAnalyze)
		api.GET("/results/:id", s.handleResults)
		api.GET("/download/:filename", s.handleDownload)

		gads := api.Group("/google-ads")
		{
			gads.GET("/status", s.handleAdsStatus)
			gads.GET("/accounts", s.withAds(func(c *gin.Context) ads.ToolResult {
				return s.adsService.ListAccounts(c.Request.Context())
			}))
			gads.GET("/account/summary", s.withAds(func(c *gin.Context) ads.ToolResult {
				return s.adsService.GetAccountSummary(c.Request.Context(), c.Query("date_range"))
			}))
			gads.GET("/campaigns", s.withAds(func(c *gin.Context) ads.ToolResult {
				if campaignID := c.Query("campaign_id"); campaignID != "" {
					return s.adsService.GetCampaignPerformance(c.Request.Context(), campaignID, c.Query("date_range"))
				}
				return s.adsService.GetCampaigns(c.Request.Context(), c.Query("date_range"), c.Query("status"))
			}))
			gads.GET("/ad-groups", s.withAds(func(c *gin.Context) ads.ToolResult {
				return s.adsService.GetAdGroups(c.Request.Context(), c.Query("campaign_id"), c.Query("date_range"))
			}))
			gads.GET("/keywords", s.withAds(func(c *gin.Context) ads.ToolResult {
				minImpressions, _ := strconv.Atoi(c.Query("min_impressions"))
				return s.adsService.GetKeywords(c.Request.Context(), c.Query("campaign_id"), c.Query("date_range"), minImpressions)
			}))
			gads.GET("/search-terms", s.withAds(func(c *gin.Context) ads.ToolResult {
				return s.adsService.GetSearchTerms(c.Request.Context(), c.Query("campaign_id"), c.Query("date_range"))
			}))
			gads.GET("/ads", s.withAds(func(c *gin.Context) ads.ToolResult {
				return s.adsService.GetAds(c.Request.Context(), c.Query("campaign_id"), c.Query("ad_group_id"), c.Query("date_range"))
			}))
			gads.GET("/performance/geographic", s.withAds(func(c *gin.Context) ads.ToolResult {
				return s.adsService.GetGeographicPerformance(c.Request.Context(), c.Query("campaign_id"), c.Query("date_range"))
			}))
			gads.GET("/performance/device", s.withAds(func(c *gin.Context) ads.ToolResult {
				return s.adsService.GetDevicePerformance(c.Request.Context(), c.Query("campaign_id"), c.Query("date_range"))
			}))
			gads.GET("/diagnose/quality-score", s.withAds(func(c *gin.Context) ads.ToolResult {
				minImpressions, _ := strconv.Atoi(c.Query("min_impressions"))
				return s.adsService.DiagnoseLowQualityScores(c.Request.Context(), minImpressions)
			}))
			gads.GET("/diagnose/high-cost", s.withAds(func(c *gin.Context) ads.ToolResult {
				return s.adsService.DiagnoseHighCostCampaigns(c.Request.Context())
			}))
			gads.GET("/diagnose/disapproved-ads", s.withAds(func(c *gin.Context) ads.ToolResult {
				return s.adsService.FindDisapprovedAds(c.Request.Context())
			}))
			gads.POST("/query", s.handleCustomQuery)
			gads.POST("/nlp", s.handleNaturalLanguage)
			gads.GET("/tools", s.handleTools)
		}
	}

	return router
}

// Run starts the server on the configured listen address.
func (s *Server) Run() error {
	s.logger.Info("http server starting", map[string]interface{}{
		"address": s.config.Web.ListenAddress,
	})
	return s.Router().Run(s.config.Web.ListenAddress)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().Format(time.RFC3339),
		"ai_provider": s.config.AI.Provider,
	})
}

type analyzeRequest struct {
	URL          string `json:"url" binding:"required"`
	KeywordsOnly bool   `json:"keywords_only"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	report, err := s.runner.Run(c.Request.Context(), req.URL, pipeline.Options{
		KeywordsOnly: req.KeywordsOnly,
	})
	if err != nil {
		s.logger.Error("analysis failed", map[string]interface{}{
			"url":   req.URL,
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := gin.H{
		"success":       true,
		"website_data":  report.Website,
		"fab_analysis":  report.Analysis,
		"keywords_data": gin.H{"keywords": report.Keywords},
		"download_file": filepath.Base(report.OutputPath),
	}

	if req.KeywordsOnly {
		response["type"] = "keywords_only"
	} else {
		response["type"] = "complete"
		response["ads_data"] = gin.H{"ads": report.Ads}
	}

	if s.sessions != nil {
		sessionID, err := s.sessions.Save(c.Request.Context(), report)
		if err != nil {
			s.logger.Warn("could not persist session", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			response["session_id"] = sessionID
		}
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) handleResults(c *gin.Context) {
	if s.sessions == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session storage not configured"})
		return
	}

	report, err := s.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"website_data":  report.Website,
		"fab_analysis":  report.Analysis,
		"keywords_data": gin.H{"keywords": report.Keywords},
		"ads_data":      gin.H{"ads": report.Ads},
		"download_file": filepath.Base(report.OutputPath),
	})
}

func (s *Server) handleDownload(c *gin.Context) {
	// filepath.Base guards against traversal outside the output dir.
	filename := filepath.Base(c.Param("filename"))
	c.FileAttachment(filepath.Join(s.config.Export.OutputDir, filename), filename)
}

func (s *Server) handleAdsStatus(c *gin.Context) {
	if s.adsService == nil {
		c.JSON(http.StatusOK, gin.H{
			"available":  true,
			"configured": false,
			"message":    "google-ads.yaml not found. Please configure API credentials.",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"available":  true,
		"configured": true,
	})
}

// withAds adapts a tool call into a handler, returning 503 when the
// platform is not configured and 500 on tool failure.
func (s *Server) withAds(fn func(*gin.Context) ads.ToolResult) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.adsService == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error":   "Google Ads integration is not configured",
			})
			return
		}

		result := fn(c)
		status := http.StatusOK
		if success, ok := result["success"].(bool); ok && !success {
			status = http.StatusInternalServerError
		}
		c.JSON(status, result)
	}
}

type customQueryRequest struct {
	Query      string `json:"query" binding:"required"`
	CustomerID string `json:"customer_id"`
}

func (s *Server) handleCustomQuery(c *gin.Context) {
	if s.adsService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "Google Ads integration is not configured",
		})
		return
	}

	var req customQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Query is required"})
		return
	}

	result := s.adsService.RunCustomQuery(c.Request.Context(), req.Query, req.CustomerID)
	status := http.StatusOK
	if success, ok := result["success"].(bool); ok && !success {
		status = http.StatusInternalServerError
	}
	c.JSON(status, result)
}

type nlpRequest struct {
	Request string `json:"request" binding:"required"`
}

func (s *Server) handleNaturalLanguage(c *gin.Context) {
	if s.adsService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "Google Ads integration is not configured",
		})
		return
	}

	var req nlpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Request text is required"})
		return
	}

	// The router's failure envelope carries available_tools, not an
	// execution error, so it stays a 200.
	result := s.adsService.Route(c.Request.Context(), req.Request)
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleTools(c *gin.Context) {
	if s.adsService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "Google Ads integration is not configured",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tools":   s.adsService.AvailableTools(),
	})
}
