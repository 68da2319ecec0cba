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

// chatMessage is the OpenAI-style chat message shared by the
// chat-completion compatible backends.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// chatCompletionProvider implements Provider against any
// chat-completions compatible endpoint. OpenAI and Groq differ only in
// base URL and credentials.
type chatCompletionProvider struct {
	name    string
	baseURL string
	apiKey  string
	model   string
	client  *commonhttp.Client
	logger  logger.Logger
}

func newOpenAIProvider(apiKey, model string, client *commonhttp.Client, log logger.Logger) *chatCompletionProvider {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &chatCompletionProvider{
		name:    "openai",
		baseURL: "https://api.openai.com/v1",
		apiKey:  apiKey,
		model:   model,
		client:  client,
		logger:  log,
	}
}

func newGroqProvider(apiKey, model string, client *commonhttp.Client, log logger.Logger) *chatCompletionProvider {
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return &chatCompletionProvider{
		name:    "groq",
		baseURL: "https://api.groq.com/openai/v1",
		apiKey:  apiKey,
		model:   model,
		client:  client,
		logger:  log,
	}
}

func (p *chatCompletionProvider) Name() string {
	return p.name
}

func (p *chatCompletionProvider) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	var messages []chatMessage
	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body := chatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: req.Temperature,
	}
	if req.JSONMode {
		body.ResponseFormat = &struct {
			Type string `json:"type"`
		}{Type: "json_object"}
	}

	headers := map[string]string{
		"Authorization": "Bearer " + p.apiKey,
	}

	resp, err := p.client.PostJSON(ctx, p.baseURL+"/chat/completions", headers, body)
	if err != nil {
		return "", errors.NewProviderCallFailedError(p.name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewProviderCallFailedError(p.name, err)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", errors.NewProviderCallFailedError(p.name, fmt.Errorf("malformed response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		msg := string(raw)
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", errors.NewProviderCallFailedError(p.name, fmt.Errorf("status %d: %s", resp.StatusCode, msg))
	}

	if len(parsed.Choices) == 0 {
		return "", errors.NewProviderCallFailedError(p.name, fmt.Errorf("response contained no choices"))
	}

	return parsed.Choices[0].Message.Content, nil
}
