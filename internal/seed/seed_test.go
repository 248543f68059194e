package seed

import (
	"testing"

	"gymflick/internal/database"
	"gymflick/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func seedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeedPopulatesAllTables(t *testing.T) {
	db := seedTestDB(t)

	err := Seed(db, Options{NumUsers: 8, NumFlicks: 20, ShouldClean: false})
	require.NoError(t, err)

	var userCount, flickCount, friendshipCount, workoutCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Flick{}).Count(&flickCount)
	db.Model(&models.Friendship{}).Count(&friendshipCount)
	db.Model(&models.WorkoutPlan{}).Count(&workoutCount)

	assert.Equal(t, int64(8), userCount)
	assert.Equal(t, int64(20), flickCount)
	assert.Greater(t, friendshipCount, int64(0))
	assert.GreaterOrEqual(t, workoutCount, int64(8))
}

func TestSeedCreatesFixedAccounts(t *testing.T) {
	db := seedTestDB(t)
	require.NoError(t, Seed(db, Options{NumUsers: 4, NumFlicks: 5}))

	var demo models.User
	require.NoError(t, db.Where("username = ?", "demo").First(&demo).Error)
	assert.True(t, demo.EmailVerified)
}

func TestUpvoteCounterStaysConsistent(t *testing.T) {
	db := seedTestDB(t)
	factory := NewFactory(db)

	author, err := factory.CreateUser()
	require.NoError(t, err)
	voter, err := factory.CreateUser()
	require.NoError(t, err)
	flick, err := factory.CreateFlick(author, 1)
	require.NoError(t, err)

	require.NoError(t, factory.CreateUpvote(voter, flick))

	var got models.Flick
	require.NoError(t, db.First(&got, flick.ID).Error)
	var upvoteRows int64
	db.Model(&models.FlickUpvote{}).Where("flick_id = ?", flick.ID).Count(&upvoteRows)
	assert.Equal(t, int64(got.Upvotes), upvoteRows)
}
