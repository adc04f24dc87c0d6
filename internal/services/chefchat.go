package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/foxxcyber/pantry-chef/internal/models"
	"github.com/foxxcyber/pantry-chef/internal/monitoring"
)

// Persona selects a chat voice for the chef assistant.
type Persona string

const (
	PersonaProfessional Persona = "professional"
	PersonaFriendly     Persona = "friendly"
	PersonaNonna        Persona = "nonna"
)

// DefaultPersona is used when a request names no persona.
const DefaultPersona = PersonaFriendly

const (
	maxChatHistory       = 5
	maxChatInventorySize = 20
)

// personaProfile holds the voice definition for one persona.
type personaProfile struct {
	systemPrompt string
	greeting     string
	recipes      string
	thanks       string
	help         string
	fallback     string
}

var personaProfiles = map[Persona]personaProfile{
	PersonaProfessional: {
		systemPrompt: "You are a professional chef consultant. You give precise, technique-focused cooking advice. Keep answers brief and practical. You know the user's pantry contents and prefer suggestions that use them.",
		greeting:     "Good day. I am at your service for any culinary questions.",
		recipes:      "Based on your pantry, I recommend checking the suggestions page. I can also walk you through a specific technique.",
		thanks:       "You are welcome. Precision and practice make the cook.",
		help:         "I can advise on techniques, ingredient substitutions and what to cook from your pantry.",
		fallback:     "Could you rephrase that? I advise on cooking techniques and what to prepare from your pantry.",
	},
	PersonaFriendly: {
		systemPrompt: "You are a friendly home cooking buddy. You are casual, encouraging and upbeat. Keep answers short. You know the user's pantry contents and prefer suggestions that use them.",
		greeting:     "Hey there! What are we cooking today?",
		recipes:      "Ooh, let's see what we can make! Check your suggestions, or tell me what you're craving.",
		thanks:       "Anytime! Happy cooking!",
		help:         "Ask me anything about cooking, or what to do with what's in your pantry!",
		fallback:     "Hmm, not sure I got that. Ask me about cooking or your pantry!",
	},
	PersonaNonna: {
		systemPrompt: "You are an Italian grandmother who loves to cook. You are warm, a little bossy, and sprinkle in Italian words. Keep answers short. You know the user's pantry contents and prefer suggestions that use them.",
		greeting:     "Ciao caro! Come, sit. Tell Nonna what you want to eat.",
		recipes:      "Mamma mia, with what you have we make something beautiful. Look at the suggestions, or Nonna decides for you.",
		thanks:       "Prego, tesoro. Now eat, you are too skinny.",
		help:         "Nonna knows everything about the kitchen. Ask about recipes, or what to do with your ingredients.",
		fallback:     "Eh? Speak up, caro. Ask Nonna about food.",
	},
}

// ParsePersona matches a string against the persona set, defaulting to
// the friendly voice.
func ParsePersona(s string) Persona {
	switch Persona(strings.ToLower(strings.TrimSpace(s))) {
	case PersonaProfessional:
		return PersonaProfessional
	case PersonaNonna:
		return PersonaNonna
	case PersonaFriendly:
		return PersonaFriendly
	}
	return DefaultPersona
}

// ChefChatService answers cooking questions in a chosen persona. With a
// configured model it chats through the LLM; without one, or when the
// model fails, it falls back to canned keyword responses so the chat is
// always available.
type ChefChatService struct {
	llm llms.Model
}

// NewChefChatService creates the chat service. An empty API key yields
// a service that only uses canned responses.
func NewChefChatService(apiKey, model string) (*ChefChatService, error) {
	if apiKey == "" {
		return &ChefChatService{}, nil
	}
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return &ChefChatService{llm: llm}, nil
}

// Chat answers the latest user message given the conversation history
// and the user's pantry. It never returns an error to the caller: any
// model failure degrades to a canned response.
func (s *ChefChatService) Chat(ctx context.Context, persona Persona, history []models.ChatMessage, pantry []models.Product) models.ChatResponse {
	latest := latestUserMessage(history)

	if s.llm != nil {
		reply, err := s.chatLLM(ctx, persona, history, pantry)
		if err == nil {
			return models.ChatResponse{Persona: string(persona), Reply: reply}
		}
		log.Printf("chef chat model error: %v", err)
	}

	monitoring.ChatFallbacks.Inc()
	return models.ChatResponse{
		Persona:  string(persona),
		Reply:    CannedReply(persona, latest),
		Fallback: true,
	}
}

func latestUserMessage(history []models.ChatMessage) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			return history[i].Content
		}
	}
	return ""
}

func (s *ChefChatService) chatLLM(ctx context.Context, persona Persona, history []models.ChatMessage, pantry []models.Product) (string, error) {
	profile, ok := personaProfiles[persona]
	if !ok {
		profile = personaProfiles[DefaultPersona]
	}

	system := profile.systemPrompt
	if len(pantry) > 0 {
		names := make([]string, 0, len(pantry))
		for _, p := range pantry {
			names = append(names, p.Name)
			if len(names) == maxChatInventorySize {
				break
			}
		}
		system += " Current pantry: " + strings.Join(names, ", ") + "."
	}

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
	}
	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}
	for _, m := range history {
		role := schema.ChatMessageTypeHuman
		if m.Role == "assistant" {
			role = schema.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, m.Content))
	}

	resp, err := s.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", errors.New("empty model reply")
	}
	return resp.Choices[0].Content, nil
}

// cannedRules maps message keywords to a profile response field, in
// evaluation order.
var cannedRules = []struct {
	keywords []string
	pick     func(personaProfile) string
}{
	{[]string{"hello", "hi", "hey", "ciao"}, func(p personaProfile) string { return p.greeting }},
	{[]string{"recipe", "cook", "make", "dinner", "lunch"}, func(p personaProfile) string { return p.recipes }},
	{[]string{"thank", "grazie"}, func(p personaProfile) string { return p.thanks }},
	{[]string{"help", "what can you"}, func(p personaProfile) string { return p.help }},
}

// CannedReply answers a message from the persona's fixed response table.
func CannedReply(persona Persona, message string) string {
	profile, ok := personaProfiles[persona]
	if !ok {
		profile = personaProfiles[DefaultPersona]
	}

	message = strings.ToLower(message)
	for _, rule := range cannedRules {
		for _, kw := range rule.keywords {
			if strings.Contains(message, kw) {
				return rule.pick(profile)
			}
		}
	}
	return profile.fallback
}
