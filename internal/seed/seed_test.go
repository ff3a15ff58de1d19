package seed

import (
	"testing"

	"tripcards/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Destination{},
		&models.Category{},
		&models.Business{},
		&models.Tripcard{},
		&models.TripcardBusiness{},
		&models.Review{},
		&models.Follow{},
	))
	return db
}

func TestFactoryCreatesValidRows(t *testing.T) {
	db := setupTestDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, user.Username)
	assert.NotEmpty(t, user.Email)

	dest, err := f.CreateDestination()
	require.NoError(t, err)
	assert.NotEmpty(t, dest.City)

	cat, err := f.CreateCategory("Parks")
	require.NoError(t, err)

	biz, err := f.CreateBusiness(cat, dest)
	require.NoError(t, err)
	assert.Equal(t, dest.ID, biz.DestinationID)
	assert.Equal(t, cat.CategoryName, biz.CategoryName)
	assert.GreaterOrEqual(t, biz.Rating, 1.0)
	assert.LessOrEqual(t, biz.Rating, 5.0)

	card, err := f.CreateTripcard(user, dest)
	require.NoError(t, err)
	assert.Equal(t, user.Username, card.Username)
	assert.Equal(t, dest.City, card.City)

	review, err := f.CreateReview(user, biz)
	require.NoError(t, err)
	assert.Equal(t, biz.Name, review.BusinessName)
	assert.GreaterOrEqual(t, review.Rating, 1.0)
	assert.LessOrEqual(t, review.Rating, 5.0)
}

func TestSeedPopulatesEverything(t *testing.T) {
	db := setupTestDB(t)

	err := Seed(db, Options{NumUsers: 8, NumBusinesses: 20, ShouldClean: true})
	require.NoError(t, err)

	var users, destinations, categories, businesses, tripcards int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Destination{}).Count(&destinations)
	db.Model(&models.Category{}).Count(&categories)
	db.Model(&models.Business{}).Count(&businesses)
	db.Model(&models.Tripcard{}).Count(&tripcards)

	assert.Equal(t, int64(8), users)
	assert.Equal(t, int64(len(destinationSpots)), destinations)
	assert.Equal(t, int64(len(categoryNames)), categories)
	assert.Equal(t, int64(20), businesses)
	assert.NotZero(t, tripcards)
}

func TestSeedCleanIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 3, NumBusinesses: 5, ShouldClean: true}))
	require.NoError(t, Seed(db, Options{NumUsers: 3, NumBusinesses: 5, ShouldClean: true}))

	var users int64
	db.Model(&models.User{}).Count(&users)
	assert.Equal(t, int64(3), users)
}
