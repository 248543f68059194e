package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gymflick/internal/middleware"
	"gymflick/internal/models"
	"gymflick/internal/repository"
)

const (
	workoutFallback = "Failed to generate a workout. Try a full-body session: Squats 3x10, Push-ups 3xMax, Rows 3x10, Plank 3x30s."
	quoteFallback   = "Keep pushing! The only bad workout is the one that didn't happen."

	quotePrompt = "Generate a short, impactful, and motivating quote for someone at the gym. Focus on effort, progress, and strength. Make it inspiring and direct. Only provide the quote, no extra text."
)

// CoachService generates workouts and motivational quotes through an
// external text-generation endpoint. Generation never fails the caller: any
// upstream problem degrades to a static fallback.
type CoachService struct {
	workoutRepo repository.WorkoutRepository
	endpoint    string
	apiKey      string
	client      *http.Client
}

// NewCoachService returns a CoachService talking to the given endpoint. An
// empty endpoint means every request resolves to the fallback.
func NewCoachService(workoutRepo repository.WorkoutRepository, endpoint, apiKey string) *CoachService {
	return &CoachService{
		workoutRepo: workoutRepo,
		endpoint:    endpoint,
		apiKey:      apiKey,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// generate posts the prompt upstream and returns the generated text, or an
// error for the caller to translate into a fallback.
func (s *CoachService) generate(ctx context.Context, prompt string) (string, error) {
	if s.endpoint == "" {
		return "", fmt.Errorf("no generation endpoint configured")
	}

	body, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation endpoint returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", err
	}
	text := strings.TrimSpace(parsed.Text)
	if text == "" {
		return "", fmt.Errorf("generation endpoint returned empty text")
	}
	return text, nil
}

// buildWorkoutPrompt assembles the generation prompt from the user's
// preferences.
func buildWorkoutPrompt(prefs models.WorkoutPreferences) string {
	var b strings.Builder
	b.WriteString("Generate a gym workout session. Provide exercises, sets, and reps. Make it easy to follow.")
	if prefs.Level != "" {
		fmt.Fprintf(&b, " The user is a %s level.", prefs.Level)
	}
	if prefs.DurationMinutes > 0 {
		fmt.Fprintf(&b, " The workout should take approximately %d minutes.", prefs.DurationMinutes)
	}
	if len(prefs.FocusAreas) > 0 {
		fmt.Fprintf(&b, " Focus on %s.", strings.Join(prefs.FocusAreas, ", "))
	}
	b.WriteString(" Format the response as follows:\n")
	b.WriteString("Workout Title\n")
	b.WriteString("Warm-up: ...\n")
	b.WriteString("Workout:\n1. ...\n2. ...\n")
	b.WriteString("Cool-down: ...")
	return b.String()
}

// GenerateWorkout produces a workout plan for the user and saves it. The
// fallback plan is returned on any generation failure but is not persisted.
func (s *CoachService) GenerateWorkout(ctx context.Context, userID uint, prefs models.WorkoutPreferences) (*models.WorkoutPlan, error) {
	if prefs.Level != "" {
		switch prefs.Level {
		case models.WorkoutLevelLow, models.WorkoutLevelMedium, models.WorkoutLevelHigh:
		default:
			return nil, models.NewValidationError("Unknown workout level")
		}
	}
	if prefs.DurationMinutes < 0 {
		return nil, models.NewValidationError("Duration must be positive")
	}

	text, err := s.generate(ctx, buildWorkoutPrompt(prefs))
	if err != nil {
		middleware.Logger.WarnContext(ctx, "workout generation failed, using fallback", "error", err)
		middleware.CoachFallbacks.WithLabelValues("workout").Inc()
		return &models.WorkoutPlan{
			UserID:          userID,
			Level:           prefs.Level,
			DurationMinutes: prefs.DurationMinutes,
			FocusAreas:      strings.Join(prefs.FocusAreas, ", "),
			PlanText:        workoutFallback,
		}, nil
	}

	plan := &models.WorkoutPlan{
		UserID:          userID,
		Level:           prefs.Level,
		DurationMinutes: prefs.DurationMinutes,
		FocusAreas:      strings.Join(prefs.FocusAreas, ", "),
		PlanText:        text,
	}
	if err := s.workoutRepo.Create(ctx, plan); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to save generated workout", "error", err)
	}
	return plan, nil
}

// GenerateQuote produces a motivational quote, falling back to a static one.
func (s *CoachService) GenerateQuote(ctx context.Context) string {
	text, err := s.generate(ctx, quotePrompt)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "quote generation failed, using fallback", "error", err)
		middleware.CoachFallbacks.WithLabelValues("quote").Inc()
		return quoteFallback
	}
	return text
}

// ListWorkoutPlans returns the user's saved plans, newest first.
func (s *CoachService) ListWorkoutPlans(ctx context.Context, userID uint) ([]*models.WorkoutPlan, error) {
	return s.workoutRepo.ListByUser(ctx, userID)
}
