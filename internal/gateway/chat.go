package gateway

import (
	"context"

	"apistation/internal/upstream"
	"apistation/pkg/types"
)

// Chat defaults applied when a request omits them.
const (
	DefaultMaxTokens   = 512
	DefaultTemperature = 0.7
)

// Chat runs a chat completion and returns the first choice's message.
func (g *Gateway) Chat(ctx context.Context, req types.ChatRequest) (types.ChatMessage, error) {
	p := upstream.ChatParams{
		Model:       g.resolve(g.chats, "chat", req.ModelID),
		Messages:    req.Messages,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
	if req.MaxTokens != nil {
		p.MaxTokens = *req.MaxTokens
	}
	if req.Temperature != nil {
		p.Temperature = *req.Temperature
	}
	msg, err := g.up.ChatCompletion(ctx, p)
	if err != nil {
		return types.ChatMessage{}, upstreamFailure("chat completion", err)
	}
	return msg, nil
}
