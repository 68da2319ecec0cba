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

type ollamaProvider struct {
	baseURL string
	model   string
	client  *commonhttp.Client
	logger  logger.Logger
}

type ollamaRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  struct {
		Temperature float64 `json:"temperature"`
	} `json:"options"`
}

type ollamaResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Error string `json:"error"`
}

func newOllamaProvider(baseURL, model string, client *commonhttp.Client, log logger.Logger) *ollamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.2"
	}
	return &ollamaProvider{
		baseURL: baseURL,
		model:   model,
		client:  client,
		logger:  log,
	}
}

func (p *ollamaProvider) Name() string {
	return "ollama"
}

func (p *ollamaProvider) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	var messages []chatMessage
	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body := ollamaRequest{
		Model:    p.model,
		Messages: messages,
		Stream:   false,
	}
	body.Options.Temperature = req.Temperature

	resp, err := p.client.PostJSON(ctx, p.baseURL+"/api/chat", nil, body)
	if err != nil {
		return "", errors.NewProviderCallFailedError(p.Name(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewProviderCallFailedError(p.Name(), err)
	}

	var parsed ollamaResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", errors.NewProviderCallFailedError(p.Name(), fmt.Errorf("malformed response: %w", err))
	}

	if resp.StatusCode != http.StatusOK || parsed.Error != "" {
		msg := parsed.Error
		if msg == "" {
			msg = string(raw)
		}
		return "", errors.NewProviderCallFailedError(p.Name(), fmt.Errorf("status %d: %s", resp.StatusCode, msg))
	}

	return parsed.Message.Content, nil
}
