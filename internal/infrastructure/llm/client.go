package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4"

	systemPrompt = "You are an AI designed to analyze job postings and detect potential scams or fraudulent listings."

	maxResponseBytes = 1 << 20
)

// Config configures the chat-completions client.
type Config struct {
	HTTPClient *http.Client
	BaseURL    string
	Model      string
	APIKey     string
	Timeout    time.Duration
}

// Client is an OpenAI-compatible chat-completions client implementing
// port.RemoteAnalyzer.
type Client struct {
	httpClient *http.Client
	endpoint   string
	model      string
	apiKey     string
}

var _ port.RemoteAnalyzer = (*Client)(nil)

// NewClient creates a Client. The API key is required.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions",
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Analyze asks the model to rate the posting and decodes its JSON answer.
func (c *Client) Analyze(ctx context.Context, posting model.JobPosting) (port.RemoteAnalysis, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildUserPrompt(posting)},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return port.RemoteAnalysis{}, fmt.Errorf("failed to marshal llm request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return port.RemoteAnalysis{}, fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return port.RemoteAnalysis{}, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return port.RemoteAnalysis{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return port.RemoteAnalysis{}, fmt.Errorf("llm API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return port.RemoteAnalysis{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if chatResp.Error != nil {
		return port.RemoteAnalysis{}, fmt.Errorf("llm API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return port.RemoteAnalysis{}, fmt.Errorf("no choices returned from llm API")
	}

	content := cleanMarkdownJSON(chatResp.Choices[0].Message.Content)

	var payload analysisPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return port.RemoteAnalysis{}, fmt.Errorf("failed to unmarshal analysis (raw length: %d): %w", len(content), err)
	}

	analysis := port.RemoteAnalysis{
		Analysis:        payload.Analysis,
		RedFlags:        payload.RedFlags,
		Score:           roundScore(payload.Score),
		CorrectJobTitle: strings.TrimSpace(payload.CorrectJobTitle),
	}
	if analysis.RedFlags == nil {
		analysis.RedFlags = []string{}
	}

	return analysis, nil
}

// analysisPayload is the JSON object the model answers with. Models often
// return fractional scores, so the score is decoded as a float.
type analysisPayload struct {
	Analysis        string   `json:"analysis"`
	CorrectJobTitle string   `json:"correctJobTitle"`
	RedFlags        []string `json:"redFlags"`
	Score           float64  `json:"score"`
}

// roundScore clamps to 0..100 and rounds half away from zero.
func roundScore(score float64) int {
	switch {
	case math.IsNaN(score) || score <= 0:
		return 0
	case score >= 100:
		return 100
	}
	return int(math.Round(score))
}

// BuildUserPrompt renders the posting into the analysis request.
func BuildUserPrompt(p model.JobPosting) string {
	salary := p.SalaryText()
	if salary == "" {
		salary = "Not specified"
	}

	var b strings.Builder
	b.WriteString("Please analyze this job posting for signs that it might be fake or fraudulent:\n\n")
	fmt.Fprintf(&b, "Title: %s\n", p.Title)
	fmt.Fprintf(&b, "Company: %s\n", p.Company)
	fmt.Fprintf(&b, "Location: %s\n", p.Location)
	fmt.Fprintf(&b, "Salary: %s\n\n", salary)
	b.WriteString("Description:\n")
	b.WriteString(p.Description)
	b.WriteString("\n\n")
	b.WriteString("Rate this job posting on a scale of 0-100, where 100 is definitely legitimate and 0 is definitely fake.\n")
	b.WriteString("Also provide a brief explanation of your analysis and list any red flags you identified.\n")
	b.WriteString("If the title does not match the duties described, suggest a corrected title.\n")
	b.WriteString("Format your response as a JSON object with properties: score, analysis, redFlags, and correctJobTitle (optional).")
	return b.String()
}

// cleanMarkdownJSON strips a ```json fence the model may wrap its answer in.
func cleanMarkdownJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
