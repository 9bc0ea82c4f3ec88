// Package upstream talks to the managed inference provider. Text-to-image and
// speech recognition use the provider's task endpoints over resty; chat uses
// the provider's OpenAI-compatible surface through go-openai.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	openai "github.com/sashabaranov/go-openai"

	"apistation/pkg/types"
)

// ChatClient captures the subset of the go-openai client used for chat.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Options configures a Client.
type Options struct {
	// Token is sent as a bearer token on every call. Empty means anonymous.
	Token string
	// InferenceURL is the base of the task endpoints, e.g. https://router.huggingface.co/hf-inference.
	InferenceURL string
	// ChatURL is the base of the OpenAI-compatible API, e.g. https://router.huggingface.co/v1.
	ChatURL string
	// Timeout bounds each call. Zero leaves calls unbounded.
	Timeout time.Duration
	// Chat overrides the go-openai client (tests).
	Chat ChatClient
}

// Client is safe for concurrent use; it holds no per-request state.
type Client struct {
	rest    *resty.Client
	chat    ChatClient
	timeout time.Duration
}

// New constructs a Client sharing one HTTP transport between resty and go-openai.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.InferenceURL) == "" {
		return nil, errors.New("inference url is required")
	}
	if opts.Chat == nil && strings.TrimSpace(opts.ChatURL) == "" {
		return nil, errors.New("chat url is required")
	}
	hc := newHTTPClient(opts.Timeout)

	rc := resty.NewWithClient(hc).SetBaseURL(strings.TrimRight(opts.InferenceURL, "/"))
	if opts.Token != "" {
		rc.SetAuthToken(opts.Token)
	}

	chat := opts.Chat
	if chat == nil {
		cfg := openai.DefaultConfig(opts.Token)
		cfg.BaseURL = strings.TrimRight(opts.ChatURL, "/")
		cfg.HTTPClient = hc
		chat = openai.NewClientWithConfig(cfg)
	}
	return &Client{rest: rc, chat: chat, timeout: opts.Timeout}, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	// Deadlines come from the per-call context, see withTimeout.
	return &http.Client{Transport: tr, Timeout: 0}
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, func() {}
}

type textToImagePayload struct {
	Inputs     string          `json:"inputs"`
	Parameters imageParameters `json:"parameters"`
}

type imageParameters struct {
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// TextToImage asks model to render prompt and decodes the returned image.
func (c *Client) TextToImage(ctx context.Context, model, prompt string, width, height int) (image.Image, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Accept", "image/png").
		SetBody(textToImagePayload{Inputs: prompt, Parameters: imageParameters{Width: width, Height: height}}).
		Post("/models/" + model)
	if err != nil {
		return nil, transportError(ctx, "text-to-image", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("decode upstream image (%s): %w", resp.Header().Get("Content-Type"), err)
	}
	return img, nil
}

// SpeechToText sends raw audio bytes to model and returns the provider's JSON verbatim.
func (c *Client) SpeechToText(ctx context.Context, model string, audio []byte) (json.RawMessage, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", http.DetectContentType(audio)).
		SetHeader("Accept", "application/json").
		SetBody(audio).
		Post("/models/" + model)
	if err != nil {
		return nil, transportError(ctx, "speech recognition", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	body := bytes.TrimSpace(resp.Body())
	if !json.Valid(body) {
		return nil, fmt.Errorf("upstream returned non-JSON transcription: %.120q", body)
	}
	return json.RawMessage(body), nil
}

// ChatParams are the upstream parameters of one chat completion.
type ChatParams struct {
	Model       string
	Messages    []types.ChatMessage
	MaxTokens   int
	Temperature float64
}

// ChatCompletion runs a chat completion and returns the first choice's message.
func (c *Client) ChatCompletion(ctx context.Context, p ChatParams) (types.ChatMessage, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	messages := make([]openai.ChatCompletionMessage, 0, len(p.Messages))
	for _, m := range p.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	resp, err := c.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.Model,
		Messages:    messages,
		MaxTokens:   p.MaxTokens,
		Temperature: float32(p.Temperature),
	})
	if err != nil {
		return types.ChatMessage{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return types.ChatMessage{}, errors.New("chat completion: upstream returned no choices")
	}
	msg := resp.Choices[0].Message
	return types.ChatMessage{Role: msg.Role, Content: msg.Content}, nil
}
