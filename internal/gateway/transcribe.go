package gateway

import (
	"context"
	"encoding/json"
)

// Transcribe forwards raw audio to the fixed speech-recognition model.
func (g *Gateway) Transcribe(ctx context.Context, audio []byte) (json.RawMessage, error) {
	out, err := g.up.SpeechToText(ctx, g.asrModel, audio)
	if err != nil {
		return nil, upstreamFailure("speech recognition", err)
	}
	return out, nil
}
