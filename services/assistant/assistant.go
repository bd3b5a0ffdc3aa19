package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"grafibot/clients"
	"grafibot/core"
	"grafibot/db"
	"grafibot/models"
	"grafibot/services"
)

// AssistantService owns the single live GrafiBot conversation. The session
// is rebuilt from a fresh order snapshot on every refresh and swapped in
// atomically, so chat requests always observe a fully-old or fully-new
// session.
type AssistantService struct {
	ordersService services.OrdersService
	client        clients.GenerativeClient
	contextLimit  int
	temperature   float64
	safetyMode    string

	// mu guards read-and-replace of current and serializes refreshes.
	mu      sync.Mutex
	current *liveSession
}

// liveSession pairs a provider session with the lock that serializes
// sends on it. Session implementations are not safe for concurrent use.
type liveSession struct {
	mu      sync.Mutex
	id      string
	session clients.ChatSession
	seedLen int
}

// liveTurns returns the turns accumulated after the synthetic seed pair.
func (l *liveSession) liveTurns() []clients.ChatTurn {
	l.mu.Lock()
	defer l.mu.Unlock()

	history := l.session.History()
	if len(history) <= l.seedLen {
		return nil
	}
	turns := make([]clients.ChatTurn, len(history)-l.seedLen)
	copy(turns, history[l.seedLen:])
	return turns
}

func NewAssistantService(
	ordersService services.OrdersService,
	client clients.GenerativeClient,
	contextLimit int,
	temperature float64,
	safetyMode string,
) *AssistantService {
	return &AssistantService{
		ordersService: ordersService,
		client:        client,
		contextLimit:  contextLimit,
		temperature:   temperature,
		safetyMode:    safetyMode,
	}
}

// RefreshContext reloads the order snapshot, rebuilds the instruction
// prompt and opens a replacement session. Live turns from the previous
// session are re-spliced after the new seed pair so an order submission
// does not wipe an ongoing conversation. The old session stays current
// when opening the replacement fails.
func (s *AssistantService) RefreshContext(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("🔄 Starting chat context refresh")

	snapshot := s.loadSnapshot(ctx)
	snapshotJSON, err := snapshot.RenderJSON()
	if err != nil {
		return fmt.Errorf("failed to render context snapshot: %w", err)
	}

	acknowledgement := GreetingMessage
	var retained []clients.ChatTurn
	if s.current != nil {
		acknowledgement = RefreshAcknowledgement
		retained = s.current.liveTurns()
	}

	seed := []clients.ChatTurn{
		{Role: clients.RoleUser, Text: BuildSystemPrompt(snapshotJSON)},
		{Role: clients.RoleModel, Text: acknowledgement},
	}

	session, err := s.client.StartChat(ctx, append(seed, retained...))
	if err != nil {
		return fmt.Errorf("failed to open chat session: %w", err)
	}

	s.current = &liveSession{
		id:      core.NewID("chat"),
		session: session,
		seedLen: len(seed),
	}
	log.Printf("✅ Chat session %s ready with %d context orders and %d retained turns",
		s.current.id, len(snapshot.Orders), len(retained))
	return nil
}

// SendMessage relays one user turn to the current session. A
// content-safety refusal from the provider turns into the fixed polite
// reply instead of an error.
func (s *AssistantService) SendMessage(ctx context.Context, userText string) (string, error) {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current == nil {
		return "", services.ErrChatUnavailable
	}

	current.mu.Lock()
	defer current.mu.Unlock()

	log.Printf("💬 User message for session %s: %s", current.id, userText)

	reply, err := current.session.SendMessage(ctx, userText, clients.GenerationOptions{
		Temperature: s.temperature,
		SafetyMode:  s.safetyMode,
	})
	if err != nil {
		if errors.Is(err, clients.ErrContentBlocked) {
			log.Printf("⚠️ Provider blocked the reply for session %s", current.id)
			return SafetyFallbackReply, nil
		}
		return "", fmt.Errorf("failed to send message to chat session: %w", err)
	}

	log.Printf("🤖 Reply for session %s: %s", current.id, previewText(reply))
	return reply, nil
}

// loadSnapshot fetches the most recent orders for the prompt. Storage
// failures never block a refresh; they degrade to an empty snapshot.
func (s *AssistantService) loadSnapshot(ctx context.Context) models.ContextSnapshot {
	rows, err := s.ordersService.ListRecentContext(ctx, s.contextLimit)
	if err != nil {
		if errors.Is(err, db.ErrOrdersTableMissing) {
			log.Printf("⚠️ Orders table not found - chat context will be empty")
		} else {
			log.Printf("❌ Failed to load orders for chat context: %v", err)
		}
		return models.ContextSnapshot{}
	}

	log.Printf("ℹ️ Loaded %d recent orders for chat context", len(rows))
	return models.ContextSnapshot{Orders: rows}
}

// previewText shortens long replies for the log.
func previewText(text string) string {
	runes := []rune(text)
	if len(runes) <= 100 {
		return text
	}
	return string(runes[:100]) + "..."
}
