package service

import (
	"context"

	"gymflick/internal/models"
	"gymflick/internal/repository"
)

// FriendService provides friend-request and friendship business logic.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// SendFriendRequest sends a friend request to the user with the given
// username. The target is resolved before any other check so that probing
// for self-requests cannot distinguish missing users.
func (s *FriendService) SendFriendRequest(ctx context.Context, userID uint, targetUsername string) (*models.Friendship, error) {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, models.NewNotFoundError("User", 0)
	}

	if target.ID == userID {
		return nil, models.NewValidationError("Cannot send friend request to yourself")
	}

	existing, err := s.friendRepo.GetFriendshipBetweenUsers(ctx, userID, target.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case models.FriendshipStatusAccepted:
			return nil, models.NewConflictError("You are already friends")
		case models.FriendshipStatusPending:
			if existing.RequesterID == userID {
				return nil, models.NewConflictError("Friend request already sent")
			}
			return nil, models.NewConflictError("This user already sent you a friend request")
		}
	}

	friendship := &models.Friendship{
		RequesterID: userID,
		AddresseeID: target.ID,
		Status:      models.FriendshipStatusPending,
	}
	if err := s.friendRepo.Create(ctx, friendship); err != nil {
		return nil, err
	}

	return s.friendRepo.GetByID(ctx, friendship.ID)
}

// GetIncomingRequests returns pending requests addressed to the user, oldest
// first, shaped for display. A requester whose account vanished is shown as
// "Unknown" rather than dropped, so the request can still be rejected.
func (s *FriendService) GetIncomingRequests(ctx context.Context, userID uint) ([]models.IncomingRequest, error) {
	pending, err := s.friendRepo.GetPendingRequests(ctx, userID)
	if err != nil {
		return nil, err
	}

	requests := make([]models.IncomingRequest, 0, len(pending))
	for _, f := range pending {
		username := f.Requester.Username
		if username == "" {
			username = "Unknown"
		}
		requests = append(requests, models.IncomingRequest{
			ID:       f.ID,
			UID:      f.RequesterID,
			Username: username,
		})
	}
	return requests, nil
}

// AcceptFriendRequest accepts a pending friend request addressed to the user.
// The acceptance is a single status flip on the friendship row, so a
// concurrent accept and reject cannot leave the pair half-linked.
func (s *FriendService) AcceptFriendRequest(ctx context.Context, userID, requestID uint) (*models.Friendship, error) {
	friendship, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if friendship.AddresseeID != userID {
		return nil, models.NewUnauthorizedError("You can only accept friend requests sent to you")
	}
	if friendship.Status != models.FriendshipStatusPending {
		return nil, models.NewValidationError("Friend request is not pending")
	}

	if err := s.friendRepo.UpdateStatus(ctx, requestID, models.FriendshipStatusAccepted); err != nil {
		return nil, err
	}

	return s.friendRepo.GetByID(ctx, requestID)
}

// RejectFriendRequest rejects or cancels a pending friend request.
func (s *FriendService) RejectFriendRequest(ctx context.Context, userID, requestID uint) error {
	friendship, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if friendship.AddresseeID != userID && friendship.RequesterID != userID {
		return models.NewUnauthorizedError("You can only reject or cancel your own pending requests")
	}
	if friendship.Status != models.FriendshipStatusPending {
		return models.NewValidationError("Friend request is not pending")
	}

	return s.friendRepo.Delete(ctx, requestID)
}

// GetFriends returns the list of friends for the user.
func (s *FriendService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendRepo.GetFriends(ctx, userID)
}

// RemoveFriend removes the accepted friendship between two users.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, targetUserID uint) error {
	friendship, err := s.friendRepo.GetFriendshipBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return err
	}
	if friendship == nil || friendship.Status != models.FriendshipStatusAccepted {
		return models.NewNotFoundError("Friendship", 0)
	}

	return s.friendRepo.RemoveFriendship(ctx, userID, targetUserID)
}
