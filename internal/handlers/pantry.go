package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/pantry-chef/internal/middleware"
	"github.com/foxxcyber/pantry-chef/internal/models"
	"github.com/foxxcyber/pantry-chef/internal/services"
)

// ListProducts returns the user's pantry with freshness annotations.
// Supports optional category and search query filters.
func (h *Handler) ListProducts(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	params := models.ProductListParams{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	products, err := h.pantry.List(c.Context(), userID, params)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, err.Error())
	}

	return SuccessWithMeta(c, products, len(products))
}

// CreateProduct adds a product to the user's pantry
func (h *Handler) CreateProduct(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	product, err := h.pantry.Add(c.Context(), userID, req)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    product,
	})
}

// DeleteProduct removes a product from the user's pantry
func (h *Handler) DeleteProduct(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	productID := c.Params("id")
	if productID == "" {
		return Error(c, fiber.StatusBadRequest, "product id is required")
	}

	if err := h.pantry.Delete(c.Context(), userID, productID); err != nil {
		return Error(c, fiber.StatusNotFound, err.Error())
	}

	return Success(c, fiber.Map{"deleted": productID})
}

// GetPantrySummary returns aggregate freshness and category counts
func (h *Handler) GetPantrySummary(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	summary, err := h.pantry.Summary(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to build summary")
	}

	return Success(c, summary)
}

// GetRecipes returns the current recipe suggestions for the user
func (h *Handler) GetRecipes(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	set, err := h.pantry.Recipes(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load recipes")
	}

	return Success(c, set)
}

// ResetRecipes discards AI suggestions and returns the rule-based set
func (h *Handler) ResetRecipes(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	set, err := h.pantry.ResetRecipes(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to reset recipes")
	}

	return Success(c, set)
}

// CookRecipe consumes matched ingredients from the user's pantry
func (h *Handler) CookRecipe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CookRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Ingredients) == 0 {
		return Error(c, fiber.StatusBadRequest, "ingredients are required")
	}

	result, err := h.pantry.Cook(c.Context(), userID, req)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to cook recipe")
	}

	return Success(c, result)
}

// LookupBarcode fetches product metadata from OpenFoodFacts
func (h *Handler) LookupBarcode(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("code"))
	if code == "" {
		return Error(c, fiber.StatusBadRequest, "barcode is required")
	}

	result, err := h.barcode.Lookup(c.Context(), code)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return Error(c, fiber.StatusNotFound, "product not found")
		}
		return Error(c, fiber.StatusBadGateway, "barcode lookup failed")
	}

	return Success(c, result)
}

// UploadProductImage stores a product image and returns its URL. The
// URL can then be passed to the product create endpoint; stored
// products themselves are never modified.
func (h *Handler) UploadProductImage(c *fiber.Ctx) error {
	if h.storage == nil {
		return Error(c, fiber.StatusServiceUnavailable, "image storage not configured")
	}

	userID := middleware.GetUserID(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "failed to read image")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return Error(c, fiber.StatusBadRequest, "file must be an image")
	}

	result, err := h.storage.UploadProductImage(c.Context(), userID, fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to store image")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    result,
	})
}
