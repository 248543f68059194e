package database

import (
	"testing"

	"gymflick/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrateCreatesDomainTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	assert.NoError(t, Migrate(db))

	for _, table := range []string{"users", "friendships", "flicks", "flick_upvotes", "workout_plans"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}

	// Unique voter constraint backs the upvote toggle.
	assert.NoError(t, db.Create(&models.FlickUpvote{FlickID: 1, UserID: 1}).Error)
	assert.Error(t, db.Create(&models.FlickUpvote{FlickID: 1, UserID: 1}).Error)
}
