package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"grafibot/clients"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// The harm categories the permissive safety mode disables blocking for.
var permissiveSafetySettings = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
}

// GeminiClient talks to the generateContent endpoint of the Gemini API.
type GeminiClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	return NewGeminiClientWithBaseURL(apiKey, model, defaultBaseURL)
}

// NewGeminiClientWithBaseURL points the client at a different endpoint.
// Tests use it to talk to a local server.
func NewGeminiClientWithBaseURL(apiKey, model, baseURL string) *GeminiClient {
	return &GeminiClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

// StartChat opens a session seeded with the given history. No network
// call happens until the first send.
func (c *GeminiClient) StartChat(ctx context.Context, history []clients.ChatTurn) (clients.ChatSession, error) {
	return &chatSession{
		client:  c,
		history: append([]clients.ChatTurn(nil), history...),
	}, nil
}

type chatSession struct {
	client  *GeminiClient
	history []clients.ChatTurn
}

func (s *chatSession) SendMessage(ctx context.Context, text string, opts clients.GenerationOptions) (string, error) {
	turns := make([]clients.ChatTurn, 0, len(s.history)+1)
	turns = append(turns, s.history...)
	turns = append(turns, clients.ChatTurn{Role: clients.RoleUser, Text: text})

	reply, err := s.client.generateContent(ctx, turns, opts)
	if err != nil {
		return "", err
	}

	s.history = append(s.history,
		clients.ChatTurn{Role: clients.RoleUser, Text: text},
		clients.ChatTurn{Role: clients.RoleModel, Text: reply},
	)
	return reply, nil
}

func (s *chatSession) History() []clients.ChatTurn {
	return append([]clients.ChatTurn(nil), s.history...)
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings,omitempty"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int64   `json:"maxOutputTokens,omitempty"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateContentResponse struct {
	Candidates     []candidate     `json:"candidates"`
	PromptFeedback *promptFeedback `json:"promptFeedback"`
}

type candidate struct {
	Content      *content `json:"content"`
	FinishReason string   `json:"finishReason"`
}

type promptFeedback struct {
	BlockReason string `json:"blockReason"`
}

func (c *GeminiClient) generateContent(
	ctx context.Context,
	turns []clients.ChatTurn,
	opts clients.GenerationOptions,
) (string, error) {
	reqBody := generateContentRequest{
		Contents: make([]content, 0, len(turns)),
		GenerationConfig: generationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxOutputTokens,
		},
	}
	for _, turn := range turns {
		reqBody.Contents = append(reqBody.Contents, content{
			Role:  turn.Role,
			Parts: []part{{Text: turn.Text}},
		})
	}
	if opts.SafetyMode == clients.SafetyModePermissive {
		reqBody.SafetySettings = permissiveSafetySettings
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generate content failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var genResp generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return extractReply(&genResp)
}

// extractReply pulls the model text out of a generateContent response,
// mapping safety blocks to clients.ErrContentBlocked.
func extractReply(genResp *generateContentResponse) (string, error) {
	if genResp.PromptFeedback != nil && genResp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", clients.ErrContentBlocked, genResp.PromptFeedback.BlockReason)
	}
	if len(genResp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	cand := genResp.Candidates[0]
	if cand.FinishReason == "SAFETY" || cand.FinishReason == "PROHIBITED_CONTENT" {
		return "", fmt.Errorf("%w: candidate finished with reason %s", clients.ErrContentBlocked, cand.FinishReason)
	}
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", fmt.Errorf("candidate has no content parts")
	}

	var reply strings.Builder
	for _, p := range cand.Content.Parts {
		reply.WriteString(p.Text)
	}
	if reply.Len() == 0 {
		return "", fmt.Errorf("candidate returned empty text")
	}
	return reply.String(), nil
}
