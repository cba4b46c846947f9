package textcompletion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type DeepSeekConfig struct {
	APIKey  string
	BaseURL string
}

type DeepSeekRepository struct {
	deepseekConfig DeepSeekConfig
	client         *http.Client
}

func NewDeepSeekRepository(cfg DeepSeekConfig) *DeepSeekRepository {
	return &DeepSeekRepository{
		deepseekConfig: cfg,
		client:         &http.Client{},
	}
}

type deepseekMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type deepseekRequest struct {
	Model     string            `json:"model"`
	Messages  []deepseekMessage `json:"messages"`
	MaxTokens int               `json:"max_tokens"`
}

type deepseekResponse struct {
	Choices []struct {
		Message deepseekMessage `json:"message"`
	} `json:"choices"`
}

func (r *DeepSeekRepository) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	url := r.deepseekConfig.BaseURL + "/chat/completions"

	payload := deepseekRequest{
		Model: "deepseek-chat",
		Messages: []deepseekMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens: maxTokens,
	}

	payloadByte, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal json payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadByte))
	if err != nil {
		return "", err
	}
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", "Bearer "+r.deepseekConfig.APIKey)

	res, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("deepseek returned %v: %s", res.StatusCode, string(body))
	}

	var deepseekRes deepseekResponse
	if err := json.Unmarshal(body, &deepseekRes); err != nil {
		return "", fmt.Errorf("failed to unmarshal deepseek response: %w", err)
	}

	if len(deepseekRes.Choices) == 0 {
		return "", fmt.Errorf("deepseek returned no choices")
	}

	return deepseekRes.Choices[0].Message.Content, nil
}
