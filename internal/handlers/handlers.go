package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/pantry-chef/internal/config"
	"github.com/foxxcyber/pantry-chef/internal/database"
	"github.com/foxxcyber/pantry-chef/internal/pantry"
	"github.com/foxxcyber/pantry-chef/internal/services"
)

// Handler holds all handler dependencies
type Handler struct {
	db      *database.DB
	cfg     *config.Config
	pantry  *pantry.Service
	barcode *services.OpenFoodFactsService
	chat    *services.ChefChatService
	storage *services.StorageService
}

// New creates a new Handler instance. storage may be nil when no S3
// credentials are configured; the image endpoint reports 503 then.
func New(db *database.DB, cfg *config.Config, pantrySvc *pantry.Service, chat *services.ChefChatService, storage *services.StorageService) *Handler {
	return &Handler{
		db:      db,
		cfg:     cfg,
		pantry:  pantrySvc,
		barcode: services.NewOpenFoodFactsService(),
		chat:    chat,
		storage: storage,
	}
}

// ErrorHandler is a custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Default to 500
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

// APIResponse is a standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta contains list metadata
type Meta struct {
	Total int `json:"total"`
}

// Success returns a successful response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(APIResponse{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMeta returns a successful response with list metadata
func SuccessWithMeta(c *fiber.Ctx, data interface{}, total int) error {
	return c.JSON(APIResponse{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Total: total,
		},
	})
}

// Error returns an error response
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(APIResponse{
		Success: false,
		Error:   message,
	})
}
