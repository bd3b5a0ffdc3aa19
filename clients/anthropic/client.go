package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"grafibot/clients"
)

const defaultMaxTokens = 2048

// AnthropicClient adapts the Claude Messages API to the generative client
// interface. Claude exposes no tunable safety thresholds, so the safety
// mode in GenerationOptions is ignored; refusals surface through the stop
// reason instead.
type AnthropicClient struct {
	client anthropic.Client
	model  anthropic.Model
}

func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	return &AnthropicClient{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}
}

// StartChat opens a session seeded with the given history. No network
// call happens until the first send.
func (c *AnthropicClient) StartChat(ctx context.Context, history []clients.ChatTurn) (clients.ChatSession, error) {
	return &chatSession{
		client:  c,
		history: append([]clients.ChatTurn(nil), history...),
	}, nil
}

type chatSession struct {
	client  *AnthropicClient
	history []clients.ChatTurn
}

func (s *chatSession) SendMessage(ctx context.Context, text string, opts clients.GenerationOptions) (string, error) {
	turns := make([]clients.ChatTurn, 0, len(s.history)+1)
	turns = append(turns, s.history...)
	turns = append(turns, clients.ChatTurn{Role: clients.RoleUser, Text: text})

	maxTokens := opts.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	params := anthropic.MessageNewParams{
		Model:     s.client.model,
		MaxTokens: maxTokens,
	}
	if opts.Temperature > 0 {
		params.Temperature = anthropic.Float(opts.Temperature)
	}

	// The synthetic leading pair carries the instruction prompt; Claude
	// takes instructions as a system prompt rather than a user turn.
	start := 0
	if len(turns) >= 2 && turns[0].Role == clients.RoleUser && turns[1].Role == clients.RoleModel {
		params.System = []anthropic.TextBlockParam{{Text: turns[0].Text}}
		start = 2
	}

	messages := make([]anthropic.MessageParam, 0, len(turns)-start)
	for _, turn := range turns[start:] {
		if turn.Role == clients.RoleModel {
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(turn.Text)))
			continue
		}
		messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(turn.Text)))
	}
	params.Messages = messages

	resp, err := s.client.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}
	if resp.StopReason == anthropic.StopReasonRefusal {
		return "", fmt.Errorf("%w: model refused the exchange", clients.ErrContentBlocked)
	}

	var reply strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			reply.WriteString(block.Text)
		}
	}
	if reply.Len() == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	s.history = append(s.history,
		clients.ChatTurn{Role: clients.RoleUser, Text: text},
		clients.ChatTurn{Role: clients.RoleModel, Text: reply.String()},
	)
	return reply.String(), nil
}

func (s *chatSession) History() []clients.ChatTurn {
	return append([]clients.ChatTurn(nil), s.history...)
}
