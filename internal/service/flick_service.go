package service

import (
	"context"

	"gymflick/internal/middleware"
	"gymflick/internal/models"
	"gymflick/internal/repository"
)

// FlickService provides flick posting, feed, and upvote business logic.
type FlickService struct {
	flickRepo  repository.FlickRepository
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
	storage    ObjectStorage
}

// NewFlickService returns a new FlickService.
func NewFlickService(
	flickRepo repository.FlickRepository,
	friendRepo repository.FriendRepository,
	userRepo repository.UserRepository,
	storage ObjectStorage,
) *FlickService {
	return &FlickService{
		flickRepo:  flickRepo,
		friendRepo: friendRepo,
		userRepo:   userRepo,
		storage:    storage,
	}
}

// CreateFlick posts a new flick for the user. The author's username is
// captured on the row at write time; later username changes do not rewrite
// old flicks.
func (s *FlickService) CreateFlick(ctx context.Context, userID uint, text, imageURL string) (*models.Flick, error) {
	if text == "" {
		return nil, models.NewValidationError("Flick text is required")
	}

	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	flick := &models.Flick{
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Text:           text,
		ImageURL:       imageURL,
	}
	if err := s.flickRepo.Create(ctx, flick); err != nil {
		return nil, err
	}

	return s.flickRepo.GetByID(ctx, flick.ID, userID)
}

// GetFlick returns a single flick with the caller's upvote state.
func (s *FlickService) GetFlick(ctx context.Context, userID, flickID uint) (*models.Flick, error) {
	return s.flickRepo.GetByID(ctx, flickID, userID)
}

// GetFeed returns the user's feed: their own flicks plus their friends',
// newest first. Only the first MaxFeedAuthors authors are considered; when
// the friend list exceeds the cap the overflow is logged so the truncation
// is visible in operations.
func (s *FlickService) GetFeed(ctx context.Context, userID uint) ([]*models.Flick, error) {
	friendIDs, err := s.friendRepo.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	authorIDs := append([]uint{userID}, friendIDs...)
	if len(authorIDs) > repository.MaxFeedAuthors {
		middleware.Logger.WarnContext(ctx, "feed author list exceeds cap, truncating",
			"user_id", userID,
			"authors", len(authorIDs),
			"cap", repository.MaxFeedAuthors,
		)
	}

	return s.flickRepo.GetByAuthors(ctx, authorIDs, userID)
}

// DeleteFlick deletes the user's own flick. When the flick carries an image,
// the stored object is removed first; if that removal fails the row is left
// intact so the retry can find the image URL again.
func (s *FlickService) DeleteFlick(ctx context.Context, userID, flickID uint) error {
	flick, err := s.flickRepo.GetByID(ctx, flickID, userID)
	if err != nil {
		return err
	}
	if flick.AuthorID != userID {
		return models.NewUnauthorizedError("You can only delete your own flicks")
	}

	if flick.ImageURL != "" {
		objectPath, err := ParseObjectPath(flick.ImageURL)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "flick image URL not parseable, skipping object delete",
				"flick_id", flickID,
				"error", err,
			)
		} else if err := s.storage.Delete(ctx, objectPath); err != nil {
			return err
		}
	}

	return s.flickRepo.Delete(ctx, flickID)
}

// ToggleUpvote flips the user's upvote on a flick and returns the updated
// flick.
func (s *FlickService) ToggleUpvote(ctx context.Context, userID, flickID uint) (*models.Flick, error) {
	upvoted, err := s.flickRepo.ToggleUpvote(ctx, flickID, userID)
	if err != nil {
		return nil, err
	}

	direction := "remove"
	if upvoted {
		direction = "add"
	}
	middleware.UpvoteToggles.WithLabelValues(direction).Inc()

	return s.flickRepo.GetByID(ctx, flickID, userID)
}
