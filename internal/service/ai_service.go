package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"advising_backend/internal/config"
	"advising_backend/internal/util"
	"advising_backend/pkg/logger"

	"go.uber.org/zap"
)

const defaultSystemPrompt = "You are an academic advisor AI assistant."

// TextGenerator is the narrow contract the advising core needs from a
// text-generation provider.
type TextGenerator interface {
	Name() string
	Generate(ctx context.Context, prompt, systemPrompt string) (string, error)
}

// GeminiProvider calls the Gemini generateContent endpoint. The API key
// travels as a query-string parameter.
type GeminiProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", p.endpoint, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if len(result.Candidates) > 0 && len(result.Candidates[0].Content.Parts) > 0 {
		return result.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("gemini returned no candidates")
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []AIChatMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GroqProvider speaks the OpenAI-style chat completions wire format with a
// bearer API key.
type GroqProvider struct {
	apiKey   string
	endpoint string
	model    string
	client   *http.Client
}

func (p *GroqProvider) Name() string { return "groq" }

func (p *GroqProvider) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}

	reqBody := ChatCompletionRequest{
		Model: p.model,
		Messages: []AIChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   2048,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("groq returned no choices")
}

// AIService owns provider selection: primary first, one retry against the
// secondary, then the error propagates so callers can take their rule-based
// fallback path.
type AIService struct {
	primary   TextGenerator
	secondary TextGenerator
}

const (
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"
	defaultGroqEndpoint   = "https://api.groq.com/openai/v1/chat/completions"
	defaultGroqModel      = "llama-3.1-70b-versatile"
)

func NewAIService(cfg config.AIConfig) (*AIService, error) {
	client := &http.Client{Timeout: cfg.Timeout}

	var providers []TextGenerator
	if cfg.GeminiAPIKey != "" {
		endpoint := cfg.GeminiEndpoint
		if endpoint == "" {
			endpoint = defaultGeminiEndpoint
		}
		providers = append(providers, &GeminiProvider{apiKey: cfg.GeminiAPIKey, endpoint: endpoint, client: client})
	}
	if cfg.GroqAPIKey != "" {
		endpoint := cfg.GroqEndpoint
		if endpoint == "" {
			endpoint = defaultGroqEndpoint
		}
		model := cfg.GroqModel
		if model == "" {
			model = defaultGroqModel
		}
		providers = append(providers, &GroqProvider{apiKey: cfg.GroqAPIKey, endpoint: endpoint, model: model, client: client})
	}

	if len(providers) == 0 {
		return nil, util.ErrNoAIProvider
	}

	s := &AIService{primary: providers[0]}
	if len(providers) > 1 {
		s.secondary = providers[1]
	}
	return s, nil
}

// NewAIServiceWithProviders wires explicit generators, used by tests and by
// callers that already hold a provider.
func NewAIServiceWithProviders(primary, secondary TextGenerator) *AIService {
	return &AIService{primary: primary, secondary: secondary}
}

// Generate tries the primary provider and fails over once to the secondary.
func (s *AIService) Generate(ctx context.Context, prompt, systemPrompt string) (string, string, error) {
	if s == nil || s.primary == nil {
		return "", "", util.ErrNoAIProvider
	}

	text, err := s.primary.Generate(ctx, prompt, systemPrompt)
	if err == nil {
		return text, s.primary.Name(), nil
	}

	logger.Log.Warn("primary AI provider failed",
		zap.String("provider", s.primary.Name()),
		zap.Error(err),
	)

	if s.secondary == nil {
		return "", "", err
	}

	text, err = s.secondary.Generate(ctx, prompt, systemPrompt)
	if err != nil {
		return "", "", err
	}
	return text, s.secondary.Name(), nil
}

// GenerateOnce calls only the primary provider, no failover. The resource
// suggester uses this single-shot path.
func (s *AIService) GenerateOnce(ctx context.Context, prompt, systemPrompt string) (string, string, error) {
	if s == nil || s.primary == nil {
		return "", "", util.ErrNoAIProvider
	}

	text, err := s.primary.Generate(ctx, prompt, systemPrompt)
	if err != nil {
		return "", "", err
	}
	return text, s.primary.Name(), nil
}

// CleanJSONResponse strips markdown code fences and any stray text before the
// first and after the last JSON delimiter, leaving a parseable payload.
func CleanJSONResponse(response string) string {
	cleaned := strings.ReplaceAll(response, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.IndexAny(cleaned, "{[")
	if start >= 0 {
		cleaned = cleaned[start:]
	}
	end := strings.LastIndexAny(cleaned, "}]")
	if end >= 0 {
		cleaned = cleaned[:end+1]
	}

	return strings.TrimSpace(cleaned)
}
