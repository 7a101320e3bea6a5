package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	openAIEndpoint     = "https://api.openai.com/v1/chat/completions"
	openAIMaxTokens    = 300
	openAITemperature  = 0.7
	openAIRequestLimit = 15 * time.Second
)

const storeSystemPrompt = `You are a helpful perfume shop assistant for Delux Perfumes.
Provide helpful, friendly responses about perfumes, scents, recommendations,
orders, and store information. Keep responses concise and professional.

Store Info:
- Location: Delux Perfumes Boutique, Al Wasl Street, Dubai, UAE
- Hours: Mon-Fri 10AM-9PM, Sat 10AM-10PM, Sun 11AM-8PM
- Phone: +918 4 555 7890
- Email: info@deluxperfumes.com
- Website: deluxperfumes.com

Products:
- Popular scents: Velvet Rose, Midnight Oud, Amber Horizon
- Price range: AED 79-250
- Best for gifts: Golden Essence Set

Always be polite and helpful. If you don't know something, suggest
contacting customer service.`

var errEmptyCompletion = errors.New("completion has no choices")

// OpenAIGenerator получает ответы чата через API chat completions
type OpenAIGenerator struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	return &OpenAIGenerator{
		apiKey:   apiKey,
		model:    model,
		endpoint: openAIEndpoint,
		client:   &http.Client{Timeout: openAIRequestLimit},
	}
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string              `json:"model"`
	Messages    []completionMessage `json:"messages"`
	MaxTokens   int                 `json:"max_tokens"`
	Temperature float64             `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message completionMessage `json:"message"`
	} `json:"choices"`
}

func (g *OpenAIGenerator) Generate(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model: g.model,
		Messages: []completionMessage{
			{Role: "system", Content: storeSystemPrompt},
			{Role: "user", Content: message},
		},
		MaxTokens:   openAIMaxTokens,
		Temperature: openAITemperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion request failed with status %d", resp.StatusCode)
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", errEmptyCompletion
	}

	return completion.Choices[0].Message.Content, nil
}
