package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"aiMarketingMsg/pkg/apperror"
	"aiMarketingMsg/pkg/config"
	"aiMarketingMsg/pkg/logger"
	"aiMarketingMsg/pkg/metrics"
)

// OpenAIRepository wraps the chat completions endpoint. Everything it
// returns is untrusted text, callers must reconcile before use.
type OpenAIRepository struct {
	cfg    config.OpenAIConfig
	client *http.Client
}

func NewOpenAIRepository(cfg config.OpenAIConfig) *OpenAIRepository {
	return &OpenAIRepository{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends one system+user prompt pair and returns the assistant text.
// Transport failures, non-2xx statuses and empty responses all surface as a
// provider error so callers can map them to a single failure mode.
func (r *OpenAIRepository) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error) {
	reqBody := chatRequest{
		Model: r.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.cfg.APIKey)

	start := time.Now()
	res, err := r.client.Do(req)
	metrics.ProviderCallLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderCalls.WithLabelValues("error").Inc()
		return "", apperror.Wrap(apperror.CodeProviderFailed, "ai provider call failed", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		metrics.ProviderCalls.WithLabelValues("error").Inc()
		return "", apperror.Wrap(apperror.CodeProviderFailed, "failed to read ai provider response", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		metrics.ProviderCalls.WithLabelValues("error").Inc()
		logger.Warn("openai returned non-2xx response", "status", res.StatusCode, "body", truncate(string(resBody), 500))
		return "", apperror.New(apperror.CodeProviderFailed, "ai provider returned an error").
			WithDetail("status", res.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(resBody, &parsed); err != nil {
		metrics.ProviderCalls.WithLabelValues("error").Inc()
		return "", apperror.Wrap(apperror.CodeProviderFailed, "failed to decode ai provider response", err)
	}

	if parsed.Error != nil {
		metrics.ProviderCalls.WithLabelValues("error").Inc()
		return "", apperror.New(apperror.CodeProviderFailed, "ai provider returned an error").
			WithDetail("providerMessage", parsed.Error.Message)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		metrics.ProviderCalls.WithLabelValues("error").Inc()
		return "", apperror.New(apperror.CodeProviderFailed, "ai provider returned no content")
	}

	metrics.ProviderCalls.WithLabelValues("success").Inc()

	return parsed.Choices[0].Message.Content, nil
}

// Model exposes the configured model name for response metadata.
func (r *OpenAIRepository) Model() string {
	return r.cfg.Model
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
