package server

import (
	"strings"

	"gymflick/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendFriendRequest handles POST /api/friends/requests
// @Summary Send a friend request
// @Description Send a friend request to a user by username
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{username=string} true "Target username"
// @Success 201 {object} models.Friendship
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /friends/requests [post]
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	friendship, err := s.friendService.SendFriendRequest(c.Context(), userID, req.Username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(friendship)
}

// GetIncomingRequests handles GET /api/friends/requests
// @Summary List incoming friend requests
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.IncomingRequest
// @Router /friends/requests [get]
func (s *Server) GetIncomingRequests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	requests, err := s.friendService.GetIncomingRequests(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(requests)
}

// AcceptFriendRequest handles POST /api/friends/requests/:requestId/accept
// @Summary Accept a friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param requestId path int true "Friend request ID"
// @Success 200 {object} models.Friendship
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /friends/requests/{requestId}/accept [post]
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	friendship, err := s.friendService.AcceptFriendRequest(c.Context(), userID, requestID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(friendship)
}

// RejectFriendRequest handles POST /api/friends/requests/:requestId/reject
// @Summary Reject or cancel a friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param requestId path int true "Friend request ID"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /friends/requests/{requestId}/reject [post]
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	if err := s.friendService.RejectFriendRequest(c.Context(), userID, requestID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Friend request rejected"})
}

// GetFriends handles GET /api/friends
// @Summary List friends
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Router /friends [get]
func (s *Server) GetFriends(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	friends, err := s.friendService.GetFriends(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if friends == nil {
		friends = []models.User{}
	}

	return c.JSON(friends)
}

// RemoveFriend handles DELETE /api/friends/:userId
// @Summary Remove a friend
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Friend's user ID"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /friends/{userId} [delete]
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.friendService.RemoveFriend(c.Context(), userID, targetID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Friend removed"})
}
