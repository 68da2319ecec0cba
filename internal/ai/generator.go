package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"adcraft/internal/common/config"
	"adcraft/internal/common/errors"
	"adcraft/internal/common/logger"
	"adcraft/internal/common/metrics"
	"adcraft/internal/fab"
	"adcraft/internal/models"
)

// jsonInstruction is appended to every structured-output prompt.
const jsonInstruction = "\n\nReturn the result ONLY in JSON format, without additional text."

// Generator wraps a Provider with the structured generation operations
// the report pipeline needs.
type Generator struct {
	provider Provider
	config   config.AIConfig
	limits   config.LimitsConfig
	logger   logger.Logger
}

// NewGenerator builds a Generator for the configured backend.
func NewGenerator(cfg config.AIConfig, limits config.LimitsConfig, log logger.Logger) (*Generator, error) {
	provider, err := NewProvider(cfg, log)
	if err != nil {
		return nil, err
	}
	return NewGeneratorWithProvider(provider, cfg, limits, log), nil
}

// NewGeneratorWithProvider is the injection point used by tests and the
// web layer.
func NewGeneratorWithProvider(provider Provider, cfg config.AIConfig, limits config.LimitsConfig, log logger.Logger) *Generator {
	return &Generator{
		provider: provider,
		config:   cfg,
		limits:   limits,
		logger:   log,
	}
}

// Provider returns the name of the active backend.
func (g *Generator) Provider() string {
	return g.provider.Name()
}

// Generate runs one free-form generation.
func (g *Generator) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	metrics.GenerationRequests.WithLabelValues(g.provider.Name(), "generate").Inc()

	text, err := g.provider.Generate(ctx, GenerationRequest{
		Prompt:       prompt,
		SystemPrompt: systemPrompt,
		Temperature:  g.config.Temperature,
	})
	if err != nil {
		metrics.GenerationFailures.WithLabelValues(g.provider.Name(), string(errors.CodeOf(err))).Inc()
		return "", err
	}
	return text, nil
}

// GenerateJSON asks for structured output and recovers the JSON object
// from the reply. When the JSON-mode call fails with a retryable error
// it is retried once without JSON mode, since not every backend
// supports it.
func (g *Generator) GenerateJSON(ctx context.Context, prompt, systemPrompt string) ([]byte, error) {
	metrics.GenerationRequests.WithLabelValues(g.provider.Name(), "generate_json").Inc()

	fullPrompt := prompt + jsonInstruction

	text, err := g.provider.Generate(ctx, GenerationRequest{
		Prompt:       fullPrompt,
		SystemPrompt: systemPrompt,
		Temperature:  g.config.Temperature,
		JSONMode:     true,
	})
	if err != nil {
		if errors.GetRetryCount(errors.CodeOf(err)) > 0 {
			g.logger.Warn("json mode generation failed, retrying without", map[string]interface{}{
				"provider": g.provider.Name(),
				"error":    err.Error(),
			})
			text, err = g.provider.Generate(ctx, GenerationRequest{
				Prompt:       fullPrompt,
				SystemPrompt: systemPrompt,
				Temperature:  g.config.Temperature,
			})
		}
		if err != nil {
			metrics.GenerationFailures.WithLabelValues(g.provider.Name(), string(errors.CodeOf(err))).Inc()
			return nil, err
		}
	}

	document, err := ExtractJSON(text)
	if err != nil {
		metrics.GenerationFailures.WithLabelValues(g.provider.Name(), string(errors.CodeOf(err))).Inc()
		return nil, err
	}
	return document, nil
}

// Analyze runs the methodology analysis over fetched page content.
func (g *Generator) Analyze(ctx context.Context, content *models.WebsiteContent) (*models.Analysis, error) {
	document, err := g.GenerateJSON(ctx, fab.AnalysisPrompt(content), fab.SystemPrompt())
	if err != nil {
		return nil, err
	}

	if err := validateDocument(analysisSchema, document); err != nil {
		return nil, errors.NewJSONExtractionFailedError(err.Error())
	}

	var analysis models.Analysis
	if err := json.Unmarshal(document, &analysis); err != nil {
		return nil, errors.NewJSONExtractionFailedError(err.Error())
	}

	g.logger.Info("analysis complete", map[string]interface{}{
		"product":    analysis.ProductName,
		"statements": len(analysis.FABStatements),
	})

	return &analysis, nil
}

// GenerateKeywords produces search keywords from an analysis. A failed
// generation degrades to deterministic fallback keywords instead of
// failing the pipeline.
func (g *Generator) GenerateKeywords(ctx context.Context, analysis *models.Analysis, additionalContext string) ([]models.KeywordRecord, error) {
	prompt := fab.KeywordPrompt(analysis)
	if additionalContext != "" {
		prompt += fmt.Sprintf("\n\n**Additional context:**\n%s", additionalContext)
	}

	document, err := g.GenerateJSON(ctx, prompt, fab.KeywordSystemPrompt())
	if err == nil {
		if verr := validateDocument(keywordsSchema, document); verr == nil {
			var envelope struct {
				Keywords []models.KeywordRecord `json:"keywords"`
			}
			if uerr := json.Unmarshal(document, &envelope); uerr == nil {
				return envelope.Keywords, nil
			}
		}
	}

	g.logger.Warn("keyword generation failed, using fallback keywords", map[string]interface{}{
		"provider": g.provider.Name(),
	})

	return FallbackKeywords(analysis), nil
}

// FallbackKeywords derives keywords from the product name when the
// backend cannot produce them. Name tokens longer than three characters
// become broad-match terms, followed by a fixed set of generic
// transactional terms.
func FallbackKeywords(analysis *models.Analysis) []models.KeywordRecord {
	var keywords []models.KeywordRecord

	for _, word := range strings.Fields(strings.ToLower(analysis.ProductName)) {
		if len(word) > 3 {
			keywords = append(keywords, models.KeywordRecord{
				Keyword:          word,
				MatchType:        models.MatchBroad,
				SearchVolume:     models.VolumeMedium,
				CommercialIntent: models.IntentHigh,
				Category:         models.CategoryTransactional,
			})
		}
	}

	keywords = append(keywords,
		models.KeywordRecord{Keyword: "buy", MatchType: models.MatchPhrase, SearchVolume: models.VolumeHigh, CommercialIntent: models.IntentHigh, Category: models.CategoryTransactional},
		models.KeywordRecord{Keyword: "price", MatchType: models.MatchPhrase, SearchVolume: models.VolumeHigh, CommercialIntent: models.IntentHigh, Category: models.CategoryTransactional},
		models.KeywordRecord{Keyword: "order", MatchType: models.MatchPhrase, SearchVolume: models.VolumeMedium, CommercialIntent: models.IntentHigh, Category: models.CategoryTransactional},
		models.KeywordRecord{Keyword: "services", MatchType: models.MatchBroad, SearchVolume: models.VolumeHigh, CommercialIntent: models.IntentMedium, Category: models.CategoryInformational},
	)

	return keywords
}

// GenerateAds produces ad copy variations from the analysis and keywords.
func (g *Generator) GenerateAds(ctx context.Context, analysis *models.Analysis, keywords []string, additionalRequirements string) ([]models.AdVariant, error) {
	prompt := fab.AdsPrompt(analysis, keywords, g.limits, additionalRequirements)

	document, err := g.GenerateJSON(ctx, prompt, fab.AdsSystemPrompt())
	if err != nil {
		return nil, err
	}

	if err := validateDocument(adsSchema, document); err != nil {
		return nil, errors.NewJSONExtractionFailedError(err.Error())
	}

	var envelope struct {
		Ads []models.AdVariant `json:"ads"`
	}
	if err := json.Unmarshal(document, &envelope); err != nil {
		return nil, errors.NewJSONExtractionFailedError(err.Error())
	}

	g.logger.Info("ads generated", map[string]interface{}{
		"variants": len(envelope.Ads),
	})

	return envelope.Ads, nil
}
