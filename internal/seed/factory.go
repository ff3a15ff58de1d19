// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"tripcards/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and by tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		Password:  string(hashedPassword),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Bio:       gofakeit.Sentence(10),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateDestination constructs and persists a sample destination.
func (f *Factory) CreateDestination(overrides ...func(*models.Destination)) (*models.Destination, error) {
	destination := &models.Destination{
		City:      gofakeit.City(),
		State:     gofakeit.State(),
		Country:   gofakeit.Country(),
		Latitude:  gofakeit.Latitude(),
		Longitude: gofakeit.Longitude(),
	}

	for _, override := range overrides {
		override(destination)
	}

	if err := f.db.Create(destination).Error; err != nil {
		return nil, err
	}
	return destination, nil
}

// CreateCategory constructs and persists a sample category.
func (f *Factory) CreateCategory(name string) (*models.Category, error) {
	category := &models.Category{CategoryName: name}
	if err := f.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// CreateBusiness constructs and persists a sample business tied to a
// category and destination.
func (f *Factory) CreateBusiness(category *models.Category, destination *models.Destination, overrides ...func(*models.Business)) (*models.Business, error) {
	business := &models.Business{
		ExternalID:          gofakeit.UUID(),
		Name:                gofakeit.Company(),
		Address1:            gofakeit.Street(),
		City:                destination.City,
		State:               destination.State,
		Country:             destination.Country,
		ZipCode:             gofakeit.Zip(),
		Phone:               gofakeit.Phone(),
		URL:                 gofakeit.URL(),
		ImageURL:            fmt.Sprintf("https://picsum.photos/seed/%s/600/400", gofakeit.UUID()),
		Latitude:            destination.Latitude + f.r.Float64()*0.1,
		Longitude:           destination.Longitude + f.r.Float64()*0.1,
		Rating:              float64(f.r.Intn(9)+2) / 2, // 1.0 .. 5.0 in half steps
		ExternalReviewCount: f.r.Intn(2000),
		SubCategory:         gofakeit.BuzzWord(),
		CategoryName:        category.CategoryName,
		CategoryID:          category.ID,
		DestinationID:       destination.ID,
	}

	for _, override := range overrides {
		override(business)
	}

	if err := f.db.Create(business).Error; err != nil {
		return nil, err
	}
	return business, nil
}

// CreateTripcard constructs and persists a tripcard for a user at a
// destination, with the snapshot columns filled the way the service fills
// them.
func (f *Factory) CreateTripcard(user *models.User, destination *models.Destination, overrides ...func(*models.Tripcard)) (*models.Tripcard, error) {
	tripcard := &models.Tripcard{
		UserID:        user.ID,
		DestinationID: destination.ID,
		Username:      user.Username,
		City:          destination.City,
		State:         destination.State,
		Country:       destination.Country,
		CreatedOn:     time.Now().Add(-time.Duration(f.r.Intn(90*24)) * time.Hour),
		KeepPrivate:   f.r.Intn(5) == 0,
		HasVisited:    f.r.Intn(2) == 0,
	}

	for _, override := range overrides {
		override(tripcard)
	}

	if err := f.db.Create(tripcard).Error; err != nil {
		return nil, err
	}
	return tripcard, nil
}

// CreateReview constructs and persists a review of a business by a user,
// with the snapshot columns filled the way the service fills them.
func (f *Factory) CreateReview(user *models.User, business *models.Business, overrides ...func(*models.Review)) (*models.Review, error) {
	review := &models.Review{
		BusinessID:   business.ID,
		BusinessName: business.Name,
		UserID:       user.ID,
		Username:     user.Username,
		Text:         gofakeit.Paragraph(1, 3, 8, " "),
		Rating:       float64(f.r.Intn(5) + 1),
		CreatedOn:    time.Now().Add(-time.Duration(f.r.Intn(60*24)) * time.Hour),
	}
	if f.r.Intn(3) == 0 {
		review.ImageURL = fmt.Sprintf("https://picsum.photos/seed/review-%s/600/400", gofakeit.UUID())
	}

	for _, override := range overrides {
		override(review)
	}

	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// CreateFollow persists a follow edge between two users.
func (f *Factory) CreateFollow(followed, follower *models.User) (*models.Follow, error) {
	follow := &models.Follow{
		FollowedID: followed.ID,
		FollowerID: follower.ID,
	}
	if err := f.db.Create(follow).Error; err != nil {
		return nil, err
	}
	return follow, nil
}
