package seed

import (
	"testing"

	"devvault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Submission{}))
	return db
}

func TestSeedUsers(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)
	s := NewSeeder(db)

	users, err := s.SeedUsers(5)
	require.NoError(t, err)
	assert.Len(t, users, 6)

	var adminCount int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount).Error)
	assert.EqualValues(t, 1, adminCount)

	// Passwords are stored hashed
	var admin models.User
	require.NoError(t, db.Where("email = ?", "admin@devvault.local").First(&admin).Error)
	assert.NotEqual(t, DefaultPassword, admin.Password)
}

func TestSeedSubmissionsInvariants(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)
	s := NewSeeder(db)

	users, err := s.SeedUsers(4)
	require.NoError(t, err)
	require.NoError(t, s.SeedSubmissions(users, 60))

	var subs []models.Submission
	require.NoError(t, db.Find(&subs).Error)
	require.Len(t, subs, 60)

	for _, sub := range subs {
		require.True(t, sub.Kind.Valid(), "kind %s", sub.Kind)
		if sub.Status == models.StatusPending {
			assert.Nil(t, sub.DecidedAt)
			assert.Nil(t, sub.DecidedByUserID)
		} else {
			assert.NotNil(t, sub.DecidedAt)
			assert.NotNil(t, sub.DecidedByUserID)
		}
		if sub.Kind.TwoState() {
			assert.NotEqual(t, models.StatusRejected, sub.Status)
		}
		if sub.Kind.RequiresLink() {
			assert.NotEmpty(t, sub.Link)
		}
	}
}

func TestClearAll(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)
	s := NewSeeder(db)

	users, err := s.SeedUsers(2)
	require.NoError(t, err)
	require.NoError(t, s.SeedSubmissions(users, 10))
	require.NoError(t, s.ClearAll())

	var userCount, subCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Submission{}).Count(&subCount).Error)
	assert.Zero(t, userCount)
	assert.Zero(t, subCount)
}
