package assistant

import (
	"context"

	"grafibot/services"
)

// UnconfiguredAssistantService serves when no generative credential is
// configured. Every operation reports the chat as unavailable.
type UnconfiguredAssistantService struct{}

// NewUnconfiguredAssistantService creates a new unconfigured assistant service
func NewUnconfiguredAssistantService() *UnconfiguredAssistantService {
	return &UnconfiguredAssistantService{}
}

func (u *UnconfiguredAssistantService) SendMessage(ctx context.Context, userText string) (string, error) {
	return "", services.ErrChatUnavailable
}

func (u *UnconfiguredAssistantService) RefreshContext(ctx context.Context) error {
	return services.ErrChatUnavailable
}
