package repository

import (
	"context"
	"errors"

	"gymflick/internal/models"

	"gorm.io/gorm"
)

// MaxFeedAuthors caps how many author ids a single feed query considers.
// This is a documented scaling boundary: authors past the cap are not
// queried. Callers are expected to surface this (the feed service logs it).
const MaxFeedAuthors = 10

// FlickRepository defines the interface for flick data operations
type FlickRepository interface {
	Create(ctx context.Context, flick *models.Flick) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Flick, error)
	GetByAuthors(ctx context.Context, authorIDs []uint, currentUserID uint) ([]*models.Flick, error)
	Delete(ctx context.Context, id uint) error
	ToggleUpvote(ctx context.Context, flickID, userID uint) (upvoted bool, err error)
	UpvoterIDs(ctx context.Context, flickID uint) ([]uint, error)
}

type flickRepository struct {
	db *gorm.DB
}

// NewFlickRepository creates a new flick repository
func NewFlickRepository(db *gorm.DB) FlickRepository {
	return &flickRepository{db: db}
}

func (r *flickRepository) Create(ctx context.Context, flick *models.Flick) error {
	if err := r.db.WithContext(ctx).Create(flick).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *flickRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Flick, error) {
	var flick models.Flick
	if err := r.applyUpvoted(r.db.WithContext(ctx), currentUserID).First(&flick, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Flick", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &flick, nil
}

// GetByAuthors returns flicks from the first MaxFeedAuthors entries of
// authorIDs, newest first. Authors past the cap are silently excluded; the
// caller decides whether to log or reject oversized allowlists.
func (r *flickRepository) GetByAuthors(ctx context.Context, authorIDs []uint, currentUserID uint) ([]*models.Flick, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	if len(authorIDs) > MaxFeedAuthors {
		authorIDs = authorIDs[:MaxFeedAuthors]
	}

	var flicks []*models.Flick
	if err := r.applyUpvoted(r.db.WithContext(ctx), currentUserID).
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC").
		Find(&flicks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return flicks, nil
}

// applyUpvoted adds a subquery computing whether currentUserID upvoted each row.
func (r *flickRepository) applyUpvoted(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select("flicks.*, EXISTS(SELECT 1 FROM flick_upvotes WHERE flick_upvotes.flick_id = flicks.id AND flick_upvotes.user_id = ?) as upvoted", currentUserID)
	}
	return db.Select("flicks.*, false as upvoted")
}

func (r *flickRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Flick{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ToggleUpvote flips the caller's membership in the flick's voter set and
// adjusts the denormalized counter in the same transaction, keeping
// upvotes == COUNT(flick_upvotes) after every mutation. The decrement floors
// at zero. Returns whether the user holds an upvote after the toggle.
func (r *flickRepository) ToggleUpvote(ctx context.Context, flickID, userID uint) (bool, error) {
	var upvoted bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var flick models.Flick
		if err := tx.First(&flick, flickID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Flick", flickID)
			}
			return models.NewInternalError(err)
		}

		var existing models.FlickUpvote
		err := tx.Where("flick_id = ? AND user_id = ?", flickID, userID).First(&existing).Error
		switch {
		case err == nil:
			// Remove the upvote.
			if err := tx.Delete(&existing).Error; err != nil {
				return models.NewInternalError(err)
			}
			next := flick.Upvotes - 1
			if next < 0 {
				next = 0
			}
			if err := tx.Model(&models.Flick{}).Where("id = ?", flickID).Update("upvotes", next).Error; err != nil {
				return models.NewInternalError(err)
			}
			upvoted = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.FlickUpvote{FlickID: flickID, UserID: userID}).Error; err != nil {
				return models.NewInternalError(err)
			}
			if err := tx.Model(&models.Flick{}).Where("id = ?", flickID).Update("upvotes", flick.Upvotes+1).Error; err != nil {
				return models.NewInternalError(err)
			}
			upvoted = true
		default:
			return models.NewInternalError(err)
		}
		return nil
	})

	return upvoted, err
}

// UpvoterIDs returns the ids of users currently upvoting the flick.
func (r *flickRepository) UpvoterIDs(ctx context.Context, flickID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.FlickUpvote{}).
		Where("flick_id = ?", flickID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
