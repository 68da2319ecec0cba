package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"adcraft/internal/common/errors"
	commonhttp "adcraft/internal/common/http"
	"adcraft/internal/common/logger"
)

const anthropicVersion = "2023-06-01"

type anthropicProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *commonhttp.Client
	logger  logger.Logger
}

type anthropicRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	System      string        `json:"system,omitempty"`
	Messages    []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func newAnthropicProvider(apiKey, model string, client *commonhttp.Client, log logger.Logger) *anthropicProvider {
	if model == "" {
		model = "claude-3-5-sonnet-20241022"
	}
	return &anthropicProvider{
		baseURL: "https://api.anthropic.com",
		apiKey:  apiKey,
		model:   model,
		client:  client,
		logger:  log,
	}
}

func (p *anthropicProvider) Name() string {
	return "anthropic"
}

// Generate posts one message to the messages endpoint. The backend has no
// native JSON mode; the generator compensates through the prompt.
func (p *anthropicProvider) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	body := anthropicRequest{
		Model:       p.model,
		MaxTokens:   4096,
		Temperature: req.Temperature,
		System:      req.SystemPrompt,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
	}

	headers := map[string]string{
		"x-api-key":         p.apiKey,
		"anthropic-version": anthropicVersion,
	}

	resp, err := p.client.PostJSON(ctx, p.baseURL+"/v1/messages", headers, body)
	if err != nil {
		return "", errors.NewProviderCallFailedError(p.Name(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewProviderCallFailedError(p.Name(), err)
	}

	var parsed anthropicResponse
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

	if len(parsed.Content) == 0 {
		return "", errors.NewProviderCallFailedError(p.Name(), fmt.Errorf("response contained no content blocks"))
	}

	return parsed.Content[0].Text, nil
}
