// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"gymflick/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and by integration tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak random is fine for seeding
	return &Factory{db: db, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample user. All seed users share the
// password "password123" and arrive already verified so they can log in.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Username:      gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:         gofakeit.Email(),
		Password:      string(hashedPassword),
		EmailVerified: true,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateFriendship persists a friendship between two users with the given status.
func (f *Factory) CreateFriendship(requester, addressee *models.User, status models.FriendshipStatus) error {
	friendship := &models.Friendship{
		RequesterID: requester.ID,
		AddresseeID: addressee.ID,
		Status:      status,
	}
	return f.db.Create(friendship).Error
}

// CreateFlick constructs and persists a flick for the given user with a
// realistic created_at spread over the past maxDays days.
func (f *Factory) CreateFlick(author *models.User, maxDays int, overrides ...func(*models.Flick)) (*models.Flick, error) {
	if maxDays <= 0 {
		maxDays = 30
	}
	flick := &models.Flick{
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Text:           flickText(f.rand),
	}
	// roughly a third of flicks carry an image
	if f.rand.Intn(3) == 0 {
		flick.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}

	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	minsBack := f.rand.Intn(60)
	flick.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(flick)
	}

	if err := f.db.Create(flick).Error; err != nil {
		return nil, err
	}
	return flick, nil
}

// CreateUpvote persists an upvote from user on flick and bumps the
// denormalized counter in the same transaction.
func (f *Factory) CreateUpvote(user *models.User, flick *models.Flick) error {
	return f.db.Transaction(func(tx *gorm.DB) error {
		upvote := &models.FlickUpvote{FlickID: flick.ID, UserID: user.ID}
		if err := tx.Create(upvote).Error; err != nil {
			return err
		}
		return tx.Model(&models.Flick{}).
			Where("id = ?", flick.ID).
			Update("upvotes", gorm.Expr("upvotes + 1")).Error
	})
}

// CreateWorkoutPlan persists a sample saved workout for the given user.
func (f *Factory) CreateWorkoutPlan(user *models.User, overrides ...func(*models.WorkoutPlan)) (*models.WorkoutPlan, error) {
	levels := []string{models.WorkoutLevelLow, models.WorkoutLevelMedium, models.WorkoutLevelHigh}
	plan := &models.WorkoutPlan{
		UserID:          user.ID,
		Level:           levels[f.rand.Intn(len(levels))],
		DurationMinutes: 15 * (1 + f.rand.Intn(4)),
		PlanText:        workoutText(f.rand),
	}

	for _, override := range overrides {
		override(plan)
	}

	if err := f.db.Create(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

var (
	flickOpeners = []string{
		"New PR on %s today: %s.",
		"Crushed %s this morning. %s never felt better.",
		"Rest day thoughts: missing %s already. %s tomorrow.",
		"Finally hit %s. Next stop: %s.",
		"Gym was empty at 6am. Perfect %s session, heavy %s.",
	}
	lifts = []string{
		"deadlifts", "squats", "bench", "overhead press", "pull-ups",
		"rows", "lunges", "hip thrusts", "dips", "farmer carries",
	}
)

func flickText(r *rand.Rand) string {
	opener := flickOpeners[r.Intn(len(flickOpeners))]
	return fmt.Sprintf(opener, lifts[r.Intn(len(lifts))], lifts[r.Intn(len(lifts))])
}

func workoutText(r *rand.Rand) string {
	a := lifts[r.Intn(len(lifts))]
	b := lifts[r.Intn(len(lifts))]
	return fmt.Sprintf("1. %s - 3x8\n2. %s - 3x10\n3. Plank - 3x45s", a, b)
}
