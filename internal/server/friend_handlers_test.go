package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gymflick/internal/models"
	"gymflick/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFriendRepository is a mock of the FriendRepository interface
type MockFriendRepository struct {
	mock.Mock
}

func (m *MockFriendRepository) Create(ctx context.Context, friendship *models.Friendship) error {
	args := m.Called(ctx, friendship)
	return args.Error(0)
}

func (m *MockFriendRepository) GetByID(ctx context.Context, id uint) (*models.Friendship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Friendship), args.Error(1)
}

func (m *MockFriendRepository) GetFriendshipBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	args := m.Called(ctx, userID1, userID2)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Friendship), args.Error(1)
}

func (m *MockFriendRepository) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockFriendRepository) GetPendingRequests(ctx context.Context, userID uint) ([]models.Friendship, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Friendship), args.Error(1)
}

func (m *MockFriendRepository) UpdateStatus(ctx context.Context, friendshipID uint, status models.FriendshipStatus) error {
	args := m.Called(ctx, friendshipID, status)
	return args.Error(0)
}

func (m *MockFriendRepository) Delete(ctx context.Context, friendshipID uint) error {
	args := m.Called(ctx, friendshipID)
	return args.Error(0)
}

func (m *MockFriendRepository) RemoveFriendship(ctx context.Context, userID1, userID2 uint) error {
	args := m.Called(ctx, userID1, userID2)
	return args.Error(0)
}

func (m *MockFriendRepository) FriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

// newFriendTestApp wires friend routes behind a stub auth layer acting as user 1.
func newFriendTestApp(friendRepo *MockFriendRepository, userRepo *MockUserRepository) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})

	s := &Server{
		config:        testConfig(),
		friendService: service.NewFriendService(friendRepo, userRepo),
	}
	app.Post("/friends/requests", s.SendFriendRequest)
	app.Get("/friends/requests", s.GetIncomingRequests)
	app.Post("/friends/requests/:requestId/accept", s.AcceptFriendRequest)
	app.Post("/friends/requests/:requestId/reject", s.RejectFriendRequest)
	app.Get("/friends", s.GetFriends)
	app.Delete("/friends/:userId", s.RemoveFriend)
	return app
}

func TestSendFriendRequestHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(f *MockFriendRepository, u *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"username": "pal"},
			mockSetup: func(f *MockFriendRepository, u *MockUserRepository) {
				u.On("GetByUsername", mock.Anything, "pal").Return(&models.User{ID: 2, Username: "pal"}, nil)
				f.On("GetFriendshipBetweenUsers", mock.Anything, uint(1), uint(2)).Return(nil, nil)
				f.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
					args.Get(1).(*models.Friendship).ID = 9
				}).Return(nil)
				f.On("GetByID", mock.Anything, uint(9)).Return(&models.Friendship{
					ID: 9, RequesterID: 1, AddresseeID: 2, Status: models.FriendshipStatusPending,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Unknown username",
			body: map[string]string{"username": "ghost"},
			mockSetup: func(f *MockFriendRepository, u *MockUserRepository) {
				u.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Self request",
			body: map[string]string{"username": "me"},
			mockSetup: func(f *MockFriendRepository, u *MockUserRepository) {
				u.On("GetByUsername", mock.Anything, "me").Return(&models.User{ID: 1, Username: "me"}, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Already friends",
			body: map[string]string{"username": "bestie"},
			mockSetup: func(f *MockFriendRepository, u *MockUserRepository) {
				u.On("GetByUsername", mock.Anything, "bestie").Return(&models.User{ID: 3, Username: "bestie"}, nil)
				f.On("GetFriendshipBetweenUsers", mock.Anything, uint(1), uint(3)).Return(&models.Friendship{
					ID: 4, Status: models.FriendshipStatusAccepted,
				}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Missing username",
			body:           map[string]string{},
			mockSetup:      func(f *MockFriendRepository, u *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			friendRepo := new(MockFriendRepository)
			userRepo := new(MockUserRepository)
			tt.mockSetup(friendRepo, userRepo)
			app := newFriendTestApp(friendRepo, userRepo)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/friends/requests", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetIncomingRequestsHandler(t *testing.T) {
	friendRepo := new(MockFriendRepository)
	userRepo := new(MockUserRepository)
	friendRepo.On("GetPendingRequests", mock.Anything, uint(1)).Return([]models.Friendship{
		{ID: 10, RequesterID: 5, Requester: models.User{ID: 5, Username: "alice"}},
		{ID: 11, RequesterID: 6},
	}, nil)

	app := newFriendTestApp(friendRepo, userRepo)
	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/friends/requests", nil))
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var requests []models.IncomingRequest
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&requests))
	require.Len(t, requests, 2)
	assert.Equal(t, "alice", requests[0].Username)
	assert.Equal(t, "Unknown", requests[1].Username)
	assert.Equal(t, uint(5), requests[0].UID)
}

func TestAcceptFriendRequestHandler(t *testing.T) {
	friendRepo := new(MockFriendRepository)
	userRepo := new(MockUserRepository)
	pending := &models.Friendship{ID: 10, RequesterID: 5, AddresseeID: 1, Status: models.FriendshipStatusPending}
	friendRepo.On("GetByID", mock.Anything, uint(10)).Return(pending, nil).Once()
	friendRepo.On("UpdateStatus", mock.Anything, uint(10), models.FriendshipStatusAccepted).Return(nil)
	friendRepo.On("GetByID", mock.Anything, uint(10)).Return(&models.Friendship{
		ID: 10, RequesterID: 5, AddresseeID: 1, Status: models.FriendshipStatusAccepted,
	}, nil)

	app := newFriendTestApp(friendRepo, userRepo)
	resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/friends/requests/10/accept", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/friends/requests/abc/accept", nil))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAcceptFriendRequestHandlerUnauthorized(t *testing.T) {
	friendRepo := new(MockFriendRepository)
	userRepo := new(MockUserRepository)
	friendRepo.On("GetByID", mock.Anything, uint(10)).Return(&models.Friendship{
		ID: 10, RequesterID: 5, AddresseeID: 9, Status: models.FriendshipStatusPending,
	}, nil)

	app := newFriendTestApp(friendRepo, userRepo)
	resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/friends/requests/10/accept", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRemoveFriendHandler(t *testing.T) {
	friendRepo := new(MockFriendRepository)
	userRepo := new(MockUserRepository)
	friendRepo.On("GetFriendshipBetweenUsers", mock.Anything, uint(1), uint(2)).Return(&models.Friendship{
		ID: 3, Status: models.FriendshipStatusAccepted,
	}, nil)
	friendRepo.On("RemoveFriendship", mock.Anything, uint(1), uint(2)).Return(nil)
	friendRepo.On("GetFriendshipBetweenUsers", mock.Anything, uint(1), uint(4)).Return(nil, nil)

	app := newFriendTestApp(friendRepo, userRepo)

	resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/friends/2", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest(http.MethodDelete, "/friends/4", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
