package server

import (
	"strings"

	"gymflick/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateFlick handles POST /api/flicks
// @Summary Post a flick
// @Description Create a new flick with text and an optional image URL
// @Tags flicks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{text=string,image_url=string} true "Flick content"
// @Success 201 {object} models.Flick
// @Failure 400 {object} object{error=string}
// @Router /flicks [post]
func (s *Server) CreateFlick(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Text     string `json:"text"`
		ImageURL string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	flick, err := s.flickService.CreateFlick(c.Context(), userID, strings.TrimSpace(req.Text), req.ImageURL)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(flick)
}

// GetFeed handles GET /api/flicks/feed
// @Summary Get the friend feed
// @Description Flicks from the caller and their friends, newest first
// @Tags flicks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Flick
// @Router /flicks/feed [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	feed, err := s.flickService.GetFeed(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if feed == nil {
		feed = []*models.Flick{}
	}

	return c.JSON(feed)
}

// GetFlick handles GET /api/flicks/:id
// @Summary Get a single flick
// @Tags flicks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Flick ID"
// @Success 200 {object} models.Flick
// @Failure 404 {object} object{error=string}
// @Router /flicks/{id} [get]
func (s *Server) GetFlick(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	flickID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	flick, err := s.flickService.GetFlick(c.Context(), userID, flickID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(flick)
}

// DeleteFlick handles DELETE /api/flicks/:id
// @Summary Delete own flick
// @Description Deletes the flick and its stored image, image first
// @Tags flicks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Flick ID"
// @Success 200 {object} object{message=string}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /flicks/{id} [delete]
func (s *Server) DeleteFlick(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	flickID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.flickService.DeleteFlick(c.Context(), userID, flickID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Flick deleted"})
}

// ToggleUpvote handles POST /api/flicks/:id/upvote
// @Summary Toggle an upvote
// @Description Adds the caller's upvote if absent, removes it if present
// @Tags flicks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Flick ID"
// @Success 200 {object} models.Flick
// @Failure 404 {object} object{error=string}
// @Router /flicks/{id}/upvote [post]
func (s *Server) ToggleUpvote(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	flickID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	flick, err := s.flickService.ToggleUpvote(c.Context(), userID, flickID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(flick)
}
