package textcompletion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiConfig struct {
	APIKey string
	Model  string
}

type GeminiRepository struct {
	geminiConfig GeminiConfig
	client       *http.Client
}

func NewGeminiRepository(cfg GeminiConfig) *GeminiRepository {
	return &GeminiRepository{
		geminiConfig: cfg,
		client:       &http.Client{},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (r *GeminiRepository) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent", geminiBaseURL, r.geminiConfig.Model)

	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{MaxOutputTokens: maxTokens},
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
	req.Header.Add("x-goog-api-key", r.geminiConfig.APIKey)

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
		return "", fmt.Errorf("gemini returned %v: %s", res.StatusCode, string(body))
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(body, &geminiRes); err != nil {
		return "", fmt.Errorf("failed to unmarshal gemini response: %w", err)
	}

	if len(geminiRes.Candidates) == 0 || len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}
