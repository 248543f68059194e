package server

import (
	"gymflick/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GenerateWorkout handles POST /api/coach/workout
// @Summary Generate a workout plan
// @Description Generate a workout from the caller's preferences; degrades to a static plan when generation is unavailable
// @Tags coach
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.WorkoutPreferences false "Workout preferences"
// @Success 200 {object} models.WorkoutPlan
// @Failure 400 {object} object{error=string}
// @Router /coach/workout [post]
func (s *Server) GenerateWorkout(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var prefs models.WorkoutPreferences
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&prefs); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
	}

	plan, err := s.coachService.GenerateWorkout(c.Context(), userID, prefs)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(plan)
}

// GetQuote handles GET /api/coach/quote
// @Summary Get a motivational quote
// @Tags coach
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{quote=string}
// @Router /coach/quote [get]
func (s *Server) GetQuote(c *fiber.Ctx) error {
	quote := s.coachService.GenerateQuote(c.Context())
	return c.JSON(fiber.Map{"quote": quote})
}

// GetWorkoutPlans handles GET /api/coach/plans
// @Summary List saved workout plans
// @Tags coach
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.WorkoutPlan
// @Router /coach/plans [get]
func (s *Server) GetWorkoutPlans(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	plans, err := s.coachService.ListWorkoutPlans(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if plans == nil {
		plans = []*models.WorkoutPlan{}
	}

	return c.JSON(plans)
}
