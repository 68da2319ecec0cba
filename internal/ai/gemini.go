package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"adcraft/internal/common/errors"
	commonhttp "adcraft/internal/common/http"
	"adcraft/internal/common/logger"
)

// geminiFallbackModel is retried once when the primary model errors.
const geminiFallbackModel = "gemini-1.5-pro"

type geminiProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *commonhttp.Client
	logger  logger.Logger
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newGeminiProvider(apiKey, model string, client *commonhttp.Client, log logger.Logger) *geminiProvider {
	return &geminiProvider{
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		apiKey:  apiKey,
		model:   resolveGeminiModel(model),
		client:  client,
		logger:  log,
	}
}

// resolveGeminiModel maps loose model names onto models the v1beta API
// actually serves.
func resolveGeminiModel(model string) string {
	lower := strings.ToLower(model)
	switch {
	case strings.Contains(lower, "flash"):
		return "gemini-2.0-flash"
	case strings.Contains(lower, "pro"):
		return "gemini-2.5-pro"
	default:
		return "gemini-2.0-flash"
	}
}

func (p *geminiProvider) Name() string {
	return "gemini"
}

// Generate folds the system prompt into the user prompt since the
// generateContent endpoint takes a single content stream. A failed call is
// retried once against the fallback model with a plain request.
func (p *geminiProvider) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	fullPrompt := req.Prompt
	if req.SystemPrompt != "" {
		fullPrompt = req.SystemPrompt + "\n\n" + req.Prompt
	}
	if req.JSONMode {
		fullPrompt += "\n\nImportant: Reply ONLY in JSON format, without additional text."
	}

	text, err := p.call(ctx, p.model, fullPrompt, &geminiGenerationConfig{
		Temperature:     req.Temperature,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 8192,
	})
	if err == nil {
		return text, nil
	}

	p.logger.Warn("gemini call failed, retrying with fallback model", map[string]interface{}{
		"model":          p.model,
		"fallback_model": geminiFallbackModel,
		"error":          err.Error(),
	})

	text, fallbackErr := p.call(ctx, geminiFallbackModel, fullPrompt, nil)
	if fallbackErr != nil {
		return "", err
	}
	return text, nil
}

func (p *geminiProvider) call(ctx context.Context, model, prompt string, cfg *geminiGenerationConfig) (string, error) {
	body := geminiRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: cfg,
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, model, p.apiKey)

	resp, err := p.client.PostJSON(ctx, url, nil, body)
	if err != nil {
		return "", errors.NewProviderCallFailedError(p.Name(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewProviderCallFailedError(p.Name(), err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", errors.NewProviderCallFailedError(p.Name(), fmt.Errorf("malformed response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		msg := string(raw)
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", errors.NewProviderCallFailedError(p.Name(), fmt.Errorf("status %d: %s", resp.StatusCode, msg))
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.NewProviderCallFailedError(p.Name(), fmt.Errorf("response contained no candidates"))
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
