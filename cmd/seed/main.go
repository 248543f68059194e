// Command seed populates the database with demo users, friendships, flicks,
// and workouts for local development.
package main

import (
	"flag"
	"log"

	"gymflick/internal/config"
	"gymflick/internal/database"
	"gymflick/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numFlicks := flag.Int("flicks", 150, "Number of flicks to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumFlicks:   *numFlicks,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
