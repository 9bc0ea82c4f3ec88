package types

// ChatMessage is a single chat turn exchanged with the upstream chat model.
type ChatMessage struct {
	// example: user
	Role string `json:"role" example:"user"`
	// example: hello
	Content string `json:"content" example:"hello"`
}
