package repository

import (
	"context"

	"gymflick/internal/models"

	"gorm.io/gorm"
)

// WorkoutRepository defines the interface for persisted workout plans
type WorkoutRepository interface {
	Create(ctx context.Context, plan *models.WorkoutPlan) error
	ListByUser(ctx context.Context, userID uint) ([]*models.WorkoutPlan, error)
}

type workoutRepository struct {
	db *gorm.DB
}

// NewWorkoutRepository creates a new workout repository
func NewWorkoutRepository(db *gorm.DB) WorkoutRepository {
	return &workoutRepository{db: db}
}

func (r *workoutRepository) Create(ctx context.Context, plan *models.WorkoutPlan) error {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *workoutRepository) ListByUser(ctx context.Context, userID uint) ([]*models.WorkoutPlan, error) {
	var plans []*models.WorkoutPlan
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&plans).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return plans, nil
}
