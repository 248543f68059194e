package service

import (
	"context"
	"errors"
	"testing"

	"gymflick/internal/models"
)

type friendRepoStub struct {
	createFn                    func(context.Context, *models.Friendship) error
	getByIDFn                   func(context.Context, uint) (*models.Friendship, error)
	getFriendshipBetweenUsersFn func(context.Context, uint, uint) (*models.Friendship, error)
	getFriendsFn                func(context.Context, uint) ([]models.User, error)
	getPendingRequestsFn        func(context.Context, uint) ([]models.Friendship, error)
	updateStatusFn              func(context.Context, uint, models.FriendshipStatus) error
	deleteFn                    func(context.Context, uint) error
	removeFriendshipFn          func(context.Context, uint, uint) error
	friendIDsFn                 func(context.Context, uint) ([]uint, error)
}

func (s *friendRepoStub) Create(ctx context.Context, friendship *models.Friendship) error {
	return s.createFn(ctx, friendship)
}
func (s *friendRepoStub) GetByID(ctx context.Context, id uint) (*models.Friendship, error) {
	return s.getByIDFn(ctx, id)
}
func (s *friendRepoStub) GetFriendshipBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	return s.getFriendshipBetweenUsersFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getFriendsFn(ctx, userID)
}
func (s *friendRepoStub) GetPendingRequests(ctx context.Context, userID uint) ([]models.Friendship, error) {
	return s.getPendingRequestsFn(ctx, userID)
}
func (s *friendRepoStub) UpdateStatus(ctx context.Context, friendshipID uint, status models.FriendshipStatus) error {
	return s.updateStatusFn(ctx, friendshipID, status)
}
func (s *friendRepoStub) Delete(ctx context.Context, friendshipID uint) error {
	return s.deleteFn(ctx, friendshipID)
}
func (s *friendRepoStub) RemoveFriendship(ctx context.Context, userID1, userID2 uint) error {
	return s.removeFriendshipFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) FriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.friendIDsFn(ctx, userID)
}

type userRepoStub struct {
	getByIDFn           func(context.Context, uint) (*models.User, error)
	getByEmailFn        func(context.Context, string) (*models.User, error)
	getByUsernameFn     func(context.Context, string) (*models.User, error)
	createFn            func(context.Context, *models.User) error
	updateFn            func(context.Context, *models.User) error
	markEmailVerifiedFn func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) MarkEmailVerified(ctx context.Context, id uint) error {
	return s.markEmailVerifiedFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:           func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:        func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn:     func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		createFn:            func(context.Context, *models.User) error { return nil },
		updateFn:            func(context.Context, *models.User) error { return nil },
		markEmailVerifiedFn: func(context.Context, uint) error { return nil },
	}
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		createFn:                    func(context.Context, *models.Friendship) error { return nil },
		getByIDFn:                   func(context.Context, uint) (*models.Friendship, error) { return &models.Friendship{}, nil },
		getFriendshipBetweenUsersFn: func(context.Context, uint, uint) (*models.Friendship, error) { return nil, nil },
		getFriendsFn:                func(context.Context, uint) ([]models.User, error) { return nil, nil },
		getPendingRequestsFn:        func(context.Context, uint) ([]models.Friendship, error) { return nil, nil },
		updateStatusFn:              func(context.Context, uint, models.FriendshipStatus) error { return nil },
		deleteFn:                    func(context.Context, uint) error { return nil },
		removeFriendshipFn:          func(context.Context, uint, uint) error { return nil },
		friendIDsFn:                 func(context.Context, uint) ([]uint, error) { return nil, nil },
	}
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != code {
		t.Fatalf("expected %s app error, got %#v", code, err)
	}
}

func TestFriendServiceSendFriendRequestUnknownUser(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(context.Context, string) (*models.User, error) { return nil, nil }

	svc := NewFriendService(noopFriendRepo(), users)
	_, err := svc.SendFriendRequest(context.Background(), 3, "nobody")
	assertAppError(t, err, "NOT_FOUND")
}

func TestFriendServiceSendFriendRequestSelf(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(context.Context, string) (*models.User, error) {
		return &models.User{ID: 3, Username: "me"}, nil
	}

	svc := NewFriendService(noopFriendRepo(), users)
	_, err := svc.SendFriendRequest(context.Background(), 3, "me")
	assertAppError(t, err, "VALIDATION_ERROR")
}

func TestFriendServiceSendFriendRequestAlreadyFriends(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(context.Context, string) (*models.User, error) {
		return &models.User{ID: 7, Username: "pal"}, nil
	}
	repo := noopFriendRepo()
	repo.getFriendshipBetweenUsersFn = func(context.Context, uint, uint) (*models.Friendship, error) {
		return &models.Friendship{ID: 1, Status: models.FriendshipStatusAccepted}, nil
	}

	svc := NewFriendService(repo, users)
	_, err := svc.SendFriendRequest(context.Background(), 3, "pal")
	assertAppError(t, err, "CONFLICT")
}

func TestFriendServiceSendFriendRequestDuplicate(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(context.Context, string) (*models.User, error) {
		return &models.User{ID: 7, Username: "pal"}, nil
	}
	repo := noopFriendRepo()
	repo.getFriendshipBetweenUsersFn = func(context.Context, uint, uint) (*models.Friendship, error) {
		return &models.Friendship{ID: 1, RequesterID: 3, AddresseeID: 7, Status: models.FriendshipStatusPending}, nil
	}

	svc := NewFriendService(repo, users)
	_, err := svc.SendFriendRequest(context.Background(), 3, "pal")
	assertAppError(t, err, "CONFLICT")
}

func TestFriendServiceSendFriendRequestCreates(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(context.Context, string) (*models.User, error) {
		return &models.User{ID: 7, Username: "pal"}, nil
	}

	var created *models.Friendship
	repo := noopFriendRepo()
	repo.createFn = func(_ context.Context, f *models.Friendship) error {
		f.ID = 42
		created = f
		return nil
	}
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Friendship, error) {
		return &models.Friendship{ID: id, RequesterID: 3, AddresseeID: 7, Status: models.FriendshipStatusPending}, nil
	}

	svc := NewFriendService(repo, users)
	friendship, err := svc.SendFriendRequest(context.Background(), 3, "pal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.RequesterID != 3 || created.AddresseeID != 7 {
		t.Fatalf("unexpected friendship created: %#v", created)
	}
	if friendship.ID != 42 {
		t.Fatalf("expected friendship 42, got %d", friendship.ID)
	}
}

func TestFriendServiceIncomingRequestsUnknownFallback(t *testing.T) {
	repo := noopFriendRepo()
	repo.getPendingRequestsFn = func(context.Context, uint) ([]models.Friendship, error) {
		return []models.Friendship{
			{ID: 1, RequesterID: 10, Requester: models.User{ID: 10, Username: "alice"}},
			{ID: 2, RequesterID: 11},
		}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	reqs, err := svc.GetIncomingRequests(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(reqs))
	}
	if reqs[0].Username != "alice" {
		t.Fatalf("expected alice, got %q", reqs[0].Username)
	}
	if reqs[1].Username != "Unknown" {
		t.Fatalf("expected Unknown fallback, got %q", reqs[1].Username)
	}
}

func TestFriendServiceAcceptUnauthorized(t *testing.T) {
	repo := noopFriendRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Friendship, error) {
		return &models.Friendship{
			ID:          5,
			RequesterID: 10,
			AddresseeID: 11,
			Status:      models.FriendshipStatusPending,
		}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	_, err := svc.AcceptFriendRequest(context.Background(), 12, 5)
	assertAppError(t, err, "UNAUTHORIZED")
}

func TestFriendServiceAcceptNotPending(t *testing.T) {
	repo := noopFriendRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Friendship, error) {
		return &models.Friendship{
			ID:          5,
			RequesterID: 10,
			AddresseeID: 11,
			Status:      models.FriendshipStatusAccepted,
		}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	_, err := svc.AcceptFriendRequest(context.Background(), 11, 5)
	assertAppError(t, err, "VALIDATION_ERROR")
}

func TestFriendServiceAcceptFlipsStatus(t *testing.T) {
	var flipped bool
	repo := noopFriendRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Friendship, error) {
		status := models.FriendshipStatusPending
		if flipped {
			status = models.FriendshipStatusAccepted
		}
		return &models.Friendship{ID: 5, RequesterID: 10, AddresseeID: 11, Status: status}, nil
	}
	repo.updateStatusFn = func(_ context.Context, id uint, status models.FriendshipStatus) error {
		if id != 5 || status != models.FriendshipStatusAccepted {
			t.Fatalf("unexpected update: id=%d status=%s", id, status)
		}
		flipped = true
		return nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	friendship, err := svc.AcceptFriendRequest(context.Background(), 11, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if friendship.Status != models.FriendshipStatusAccepted {
		t.Fatalf("expected accepted, got %s", friendship.Status)
	}
}

func TestFriendServiceRejectAllowsRequesterCancel(t *testing.T) {
	var deleted uint
	repo := noopFriendRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Friendship, error) {
		return &models.Friendship{ID: 5, RequesterID: 10, AddresseeID: 11, Status: models.FriendshipStatusPending}, nil
	}
	repo.deleteFn = func(_ context.Context, id uint) error {
		deleted = id
		return nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	if err := svc.RejectFriendRequest(context.Background(), 10, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 5 {
		t.Fatalf("expected delete of 5, got %d", deleted)
	}
}

func TestFriendServiceRemoveFriendNotAccepted(t *testing.T) {
	repo := noopFriendRepo()
	repo.getFriendshipBetweenUsersFn = func(context.Context, uint, uint) (*models.Friendship, error) {
		return &models.Friendship{ID: 9, Status: models.FriendshipStatusPending}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	err := svc.RemoveFriend(context.Background(), 1, 2)
	assertAppError(t, err, "NOT_FOUND")
}
