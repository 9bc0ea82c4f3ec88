package types

// ImageRequest is the payload of POST /generate/image.
type ImageRequest struct {
	// Required prompt describing the image.
	// example: A lighthouse on a cliff at dusk
	Prompt string `json:"prompt" example:"A lighthouse on a cliff at dusk"`
	// Optional model alias. Unknown aliases fall back to the default image model.
	// example: flux-schnell
	ModelID string `json:"model_id,omitempty" example:"flux-schnell"`
	// Output width in pixels (default 1024).
	// example: 1024
	Width int `json:"width,omitempty" example:"1024"`
	// Output height in pixels (default 1024).
	// example: 1024
	Height int `json:"height,omitempty" example:"1024"`
}

// ChatRequest is the payload of POST /chat/completions.
type ChatRequest struct {
	// Ordered conversation, oldest first.
	Messages []ChatMessage `json:"messages"`
	// Optional model alias. Unknown aliases fall back to the default chat model.
	// example: qwen
	ModelID string `json:"model_id,omitempty" example:"qwen"`
	// Maximum number of tokens to generate (default 512).
	// example: 512
	MaxTokens *int `json:"max_tokens,omitempty" example:"512"`
	// Sampling temperature (default 0.7).
	// example: 0.7
	Temperature *float64 `json:"temperature,omitempty" example:"0.7"`
}

// RootResponse is returned by GET /.
type RootResponse struct {
	// example: active
	Status string `json:"status" example:"active"`
	// example: 24h API Station
	Service string `json:"service" example:"24h API Station"`
	// Alias keys accepted per route family.
	Models ModelAliases `json:"models"`
	// Location of the bundled frontend, present only when it is served.
	// example: /ui/
	UIURL string `json:"ui_url,omitempty" example:"/ui/"`
}

// ModelAliases lists the alias keys of each alias table.
type ModelAliases struct {
	Image []string `json:"image"`
	Chat  []string `json:"chat"`
}

// APIKeyResponse is returned by GET /api/key/generate. The key is not stored
// and no route checks it.
type APIKeyResponse struct {
	// example: sk-1a2b3c4d
	Key string `json:"key" example:"sk-1a2b3c4d"`
	// example: active
	Status string `json:"status" example:"active"`
	// example: unlimited
	Quota string `json:"quota" example:"unlimited"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// ValidationErrorResponse is returned with 422 when a request body fails schema validation.
type ValidationErrorResponse struct {
	// example: validation failed
	Error string `json:"error" example:"validation failed"`
	// example: 422
	Code int `json:"code" example:"422"`
	// Messages per offending field.
	Fields map[string][]string `json:"fields"`
}
