package models

import "time"

// Workout difficulty levels accepted by the coach.
const (
	WorkoutLevelLow    = "low"
	WorkoutLevelMedium = "medium"
	WorkoutLevelHigh   = "high"
)

// WorkoutPreferences is the structured input for plan generation. All fields
// are optional; zero values mean "let the model decide".
type WorkoutPreferences struct {
	Level           string   `json:"level,omitempty"`
	DurationMinutes int      `json:"duration_minutes,omitempty"`
	FocusAreas      []string `json:"focus_areas,omitempty"`
}

// WorkoutPlan is a generated workout saved for a user.
type WorkoutPlan struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	Level           string    `json:"level,omitempty"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	FocusAreas      string    `json:"focus_areas,omitempty"`
	PlanText        string    `gorm:"type:text;not null" json:"plan_text"`
	CreatedAt       time.Time `json:"created_at"`
}
