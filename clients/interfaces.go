package clients

import (
	"context"
	"errors"
)

// Chat roles as the generative APIs name them.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ErrContentBlocked reports that the collaborator refused to answer for
// content-safety reasons. The assistant converts it into a polite in-band
// reply instead of failing the request.
var ErrContentBlocked = errors.New("response blocked by content safety policy")

// ChatTurn is one turn of a conversation with the generative collaborator.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Safety modes understood by providers that support threshold tuning.
const (
	SafetyModePermissive = "permissive"
	SafetyModeStandard   = "standard"
)

// GenerationOptions carries the per-send tuning the assistant forwards to
// the collaborator.
type GenerationOptions struct {
	Temperature     float64
	SafetyMode      string
	MaxOutputTokens int64
}

// GenerativeClient opens conversation sessions against a hosted
// generative-text API.
type GenerativeClient interface {
	StartChat(ctx context.Context, history []ChatTurn) (ChatSession, error)
}

// ChatSession is a stateful conversation with the collaborator. The
// session appends both sides of a successful exchange to its history.
// Implementations are not safe for concurrent use; callers serialize
// sends.
type ChatSession interface {
	SendMessage(ctx context.Context, text string, opts GenerationOptions) (string, error)
	History() []ChatTurn
}
