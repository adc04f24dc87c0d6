package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxxcyber/pantry-chef/internal/models"
)

func TestParsePersona(t *testing.T) {
	assert.Equal(t, PersonaProfessional, ParsePersona("professional"))
	assert.Equal(t, PersonaNonna, ParsePersona(" NONNA "))
	assert.Equal(t, PersonaFriendly, ParsePersona("friendly"))
	assert.Equal(t, DefaultPersona, ParsePersona(""))
	assert.Equal(t, DefaultPersona, ParsePersona("pirate"))
}

func TestCannedReplyKeywordDispatch(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"Hello there", personaProfiles[PersonaNonna].greeting},
		{"what should I cook tonight?", personaProfiles[PersonaNonna].recipes},
		{"thank you so much", personaProfiles[PersonaNonna].thanks},
		{"help", personaProfiles[PersonaNonna].help},
		{"what is the meaning of life", personaProfiles[PersonaNonna].fallback},
		{"", personaProfiles[PersonaNonna].fallback},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CannedReply(PersonaNonna, tt.message), "message %q", tt.message)
	}
}

func TestCannedReplyGreetingBeatsRecipe(t *testing.T) {
	// "hi" appears before the recipe keywords in the rule table.
	reply := CannedReply(PersonaFriendly, "hi, what can I make for dinner?")
	assert.Equal(t, personaProfiles[PersonaFriendly].greeting, reply)
}

func TestCannedReplyUnknownPersonaUsesDefault(t *testing.T) {
	reply := CannedReply(Persona("pirate"), "hello")
	assert.Equal(t, personaProfiles[DefaultPersona].greeting, reply)
}

func TestChatWithoutModelFallsBack(t *testing.T) {
	svc, err := NewChefChatService("", "gpt-4o-mini")
	require.NoError(t, err)

	resp := svc.Chat(context.Background(), PersonaProfessional, []models.ChatMessage{
		{Role: "user", Content: "hello"},
	}, nil)

	assert.True(t, resp.Fallback)
	assert.Equal(t, string(PersonaProfessional), resp.Persona)
	assert.Equal(t, personaProfiles[PersonaProfessional].greeting, resp.Reply)
}

func TestChatUsesLatestUserMessage(t *testing.T) {
	svc, err := NewChefChatService("", "gpt-4o-mini")
	require.NoError(t, err)

	resp := svc.Chat(context.Background(), PersonaFriendly, []models.ChatMessage{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "Hey there!"},
		{Role: "user", Content: "thanks for the tips"},
	}, nil)

	assert.Equal(t, personaProfiles[PersonaFriendly].thanks, resp.Reply)
}
