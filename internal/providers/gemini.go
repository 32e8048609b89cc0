package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const (
	GeminiClientName = "gemini"

	// defaultGeminiBaseURL is the REST endpoint root.
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	defaultGeminiModel = "gemini-2.0-flash"
)

// GeminiClient calls the Gemini generateContent REST endpoint.
// A client performs exactly one request per Generate call; failure
// handling (the placeholder substitution) belongs to the assembler.
type GeminiClient struct {
	baseURL string
	model   string
	apiKey  string
	cfg     GeneratorConfig
	client  *http.Client
}

// NewGeminiClient creates a Gemini client from config.
// The API key must already be resolved (no ${ENV_VAR} references).
func NewGeminiClient(cfg GeneratorConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiClient{
		baseURL: defaultGeminiBaseURL,
		model:   model,
		apiKey:  cfg.APIKey,
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout()},
	}, nil
}

// Name returns the client identifier.
func (c *GeminiClient) Name() string { return GeminiClientName }

// geminiRequest is the generateContent request body.
type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature      float64 `json:"temperature"`
	TopK             int     `json:"topK"`
	TopP             float64 `json:"topP"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
}

// geminiResponse is the subset of the response shape we read.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends one prompt and extracts the first candidate's text.
// Any transport error, non-2xx status, or malformed response shape is
// returned as an error; the request is never retried here.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: c.generationConfig(),
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var gr geminiResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidates in response")
	}

	text := gr.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("empty text in first candidate")
	}
	return text, nil
}

// generationConfig applies the fixed sampling defaults where the config
// leaves them zero.
func (c *GeminiClient) generationConfig() geminiGenConfig {
	gc := geminiGenConfig{
		Temperature:      c.cfg.Temperature,
		TopK:             c.cfg.TopK,
		TopP:             c.cfg.TopP,
		MaxOutputTokens:  c.cfg.MaxOutputTokens,
		ResponseMimeType: "text/plain",
	}
	if gc.Temperature == 0 {
		gc.Temperature = 1
	}
	if gc.TopK == 0 {
		gc.TopK = 40
	}
	if gc.TopP == 0 {
		gc.TopP = 0.95
	}
	if gc.MaxOutputTokens == 0 {
		gc.MaxOutputTokens = 8192
	}
	return gc
}
