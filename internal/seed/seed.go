package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"gymflick/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumFlicks   int
	ShouldClean bool
}

// Seed populates the database with test data: a mesh of verified users with
// accepted and pending friendships, a flick timeline with upvotes, and a few
// saved workouts per user.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d flicks...", opts.NumUsers, opts.NumFlicks)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	friendships, err := createFriendMesh(factory, users)
	if err != nil {
		return fmt.Errorf("failed to create friendships: %w", err)
	}
	log.Printf("created %d friendships", friendships)

	flicks, err := createFlicks(factory, users, opts.NumFlicks)
	if err != nil {
		return fmt.Errorf("failed to create flicks: %w", err)
	}
	log.Printf("created %d flicks", len(flicks))

	upvotes, err := createUpvotes(factory, users, flicks)
	if err != nil {
		return fmt.Errorf("failed to create upvotes: %w", err)
	}
	log.Printf("created %d upvotes", upvotes)

	if err := createWorkouts(factory, users); err != nil {
		return fmt.Errorf("failed to create workouts: %w", err)
	}

	log.Println("Database seeding completed.")
	log.Println("All seed users have the password: password123")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	tables := []string{"flick_upvotes", "flicks", "friendships", "workout_plans", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include fixed accounts so logging in during development is easy.
	if count >= 2 {
		for _, name := range []string{"demo", "test"} {
			n := name
			user, err := factory.CreateUser(func(u *models.User) {
				u.Username = n
				u.Email = fmt.Sprintf("%s@example.com", n)
			})
			if err != nil {
				return nil, err
			}
			users = append(users, user)
		}
	}

	for len(users) < count {
		user, err := factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// createFriendMesh links each user to a handful of later users, mostly
// accepted with a sprinkle of pendings so the requests inbox has content.
func createFriendMesh(factory *Factory, users []*models.User) (int, error) {
	//nolint:gosec // weak random is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := 0

	for i, requester := range users {
		links := 2 + r.Intn(4)
		for j := 1; j <= links && i+j < len(users); j++ {
			status := models.FriendshipStatusAccepted
			if r.Intn(5) == 0 {
				status = models.FriendshipStatusPending
			}
			if err := factory.CreateFriendship(requester, users[i+j], status); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func createFlicks(factory *Factory, users []*models.User, count int) ([]*models.Flick, error) {
	//nolint:gosec // weak random is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	flicks := make([]*models.Flick, 0, count)

	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		flick, err := factory.CreateFlick(author, 30)
		if err != nil {
			return nil, err
		}
		flicks = append(flicks, flick)
	}
	return flicks, nil
}

func createUpvotes(factory *Factory, users []*models.User, flicks []*models.Flick) (int, error) {
	//nolint:gosec // weak random is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := 0

	for _, flick := range flicks {
		voters := r.Intn(len(users)/2 + 1)
		seen := map[uint]bool{}
		for v := 0; v < voters; v++ {
			voter := users[r.Intn(len(users))]
			if voter.ID == flick.AuthorID || seen[voter.ID] {
				continue
			}
			seen[voter.ID] = true
			if err := factory.CreateUpvote(voter, flick); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func createWorkouts(factory *Factory, users []*models.User) error {
	//nolint:gosec // weak random is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, user := range users {
		for i := 0; i < 1+r.Intn(3); i++ {
			if _, err := factory.CreateWorkoutPlan(user); err != nil {
				return err
			}
		}
	}
	return nil
}
