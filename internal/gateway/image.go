package gateway

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"apistation/pkg/types"
)

// DefaultImageSize is used for width and height when a request omits them.
const DefaultImageSize = 1024

// GenerateImage renders req through the upstream and returns PNG bytes.
func (g *Gateway) GenerateImage(ctx context.Context, req types.ImageRequest) ([]byte, error) {
	model := g.resolve(g.images, "image", req.ModelID)
	width, height := req.Width, req.Height
	if width <= 0 {
		width = DefaultImageSize
	}
	if height <= 0 {
		height = DefaultImageSize
	}
	img, err := g.up.TextToImage(ctx, model, req.Prompt, width, height)
	if err != nil {
		return nil, upstreamFailure("text-to-image", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, upstreamFailure("text-to-image", fmt.Errorf("encode png: %w", err))
	}
	return buf.Bytes(), nil
}
