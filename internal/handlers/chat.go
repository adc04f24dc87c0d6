package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/pantry-chef/internal/middleware"
	"github.com/foxxcyber/pantry-chef/internal/models"
	"github.com/foxxcyber/pantry-chef/internal/pantry"
	"github.com/foxxcyber/pantry-chef/internal/services"
)

// Chat answers a cooking question in the requested persona. The chef
// knows the user's current pantry contents.
func (h *Handler) Chat(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Messages) == 0 {
		return Error(c, fiber.StatusBadRequest, "messages are required")
	}
	for _, m := range req.Messages {
		if strings.TrimSpace(m.Content) == "" {
			return Error(c, fiber.StatusBadRequest, "empty message content")
		}
	}

	// The chat degrades gracefully: a pantry load failure just means the
	// chef answers without inventory context.
	products, _, _ := h.db.GetProducts(c.Context(), pantry.StorageKey(userID))

	persona := services.ParsePersona(req.Persona)
	resp := h.chat.Chat(c.Context(), persona, req.Messages, products)

	return Success(c, resp)
}
