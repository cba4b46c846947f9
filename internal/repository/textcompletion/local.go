package textcompletion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// LocalConfig points at an ollama-compatible server on the local network.
type LocalConfig struct {
	BaseURL string
	Model   string
}

type LocalRepository struct {
	localConfig LocalConfig
	client      *http.Client
}

func NewLocalRepository(cfg LocalConfig) *LocalRepository {
	return &LocalRepository{
		localConfig: cfg,
		client:      &http.Client{},
	}
}

type localRequest struct {
	Model   string              `json:"model"`
	Prompt  string              `json:"prompt"`
	Stream  bool                `json:"stream"`
	Options localRequestOptions `json:"options"`
}

type localRequestOptions struct {
	NumPredict int `json:"num_predict"`
}

type localResponse struct {
	Response string `json:"response"`
}

func (r *LocalRepository) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	url := r.localConfig.BaseURL + "/api/generate"

	payload := localRequest{
		Model:   r.localConfig.Model,
		Prompt:  prompt,
		Stream:  false,
		Options: localRequestOptions{NumPredict: maxTokens},
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
		return "", fmt.Errorf("local model returned %v: %s", res.StatusCode, string(body))
	}

	var localRes localResponse
	if err := json.Unmarshal(body, &localRes); err != nil {
		return "", fmt.Errorf("failed to unmarshal local model response: %w", err)
	}

	return localRes.Response, nil
}
