package models

// ChatMessage is a single turn in a chef-chat conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the request body for the chef chat endpoint
type ChatRequest struct {
	Persona  string        `json:"persona"`
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse carries the chef's reply. Fallback is set when the reply
// came from the canned response table instead of the model.
type ChatResponse struct {
	Persona  string `json:"persona"`
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback"`
}
