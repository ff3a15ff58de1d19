package seed

import (
	"fmt"
	"log"

	"tripcards/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers      int
	NumBusinesses int
	ShouldClean   bool
}

var categoryNames = []string{
	"Restaurants", "Coffee & Tea", "Bars", "Museums", "Parks",
	"Hotels", "Shopping", "Nightlife", "Tours", "Beaches",
}

var destinationSpots = []struct {
	City, State, Country string
	Lat, Lng             float64
}{
	{"New York", "NY", "United States", 40.7128, -74.0060},
	{"San Francisco", "CA", "United States", 37.7749, -122.4194},
	{"Austin", "TX", "United States", 30.2672, -97.7431},
	{"Chicago", "IL", "United States", 41.8781, -87.6298},
	{"New Orleans", "LA", "United States", 29.9511, -90.0715},
	{"Seattle", "WA", "United States", 47.6062, -122.3321},
	{"Denver", "CO", "United States", 39.7392, -104.9903},
	{"Miami", "FL", "United States", 25.7617, -80.1918},
	{"Lisbon", "Lisbon", "Portugal", 38.7223, -9.1393},
	{"Tokyo", "Tokyo", "Japan", 35.6762, 139.6503},
	{"Mexico City", "CDMX", "Mexico", 19.4326, -99.1332},
	{"Barcelona", "Catalonia", "Spain", 41.3874, 2.1686},
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d businesses...", opts.NumUsers, opts.NumBusinesses)

	if opts.ShouldClean {
		if err := ClearAll(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db)

	categories := make([]*models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		category, err := f.CreateCategory(name)
		if err != nil {
			return fmt.Errorf("failed to create category %q: %w", name, err)
		}
		categories = append(categories, category)
	}
	log.Printf("✓ %d categories created", len(categories))

	destinations := make([]*models.Destination, 0, len(destinationSpots))
	for _, spot := range destinationSpots {
		spot := spot
		destination, err := f.CreateDestination(func(d *models.Destination) {
			d.City = spot.City
			d.State = spot.State
			d.Country = spot.Country
			d.Latitude = spot.Lat
			d.Longitude = spot.Lng
		})
		if err != nil {
			return fmt.Errorf("failed to create destination %q: %w", spot.City, err)
		}
		destinations = append(destinations, destination)
	}
	log.Printf("✓ %d destinations created", len(destinations))

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("✓ %d test users created", len(users))

	businesses := make([]*models.Business, 0, opts.NumBusinesses)
	for i := 0; i < opts.NumBusinesses; i++ {
		category := categories[f.r.Intn(len(categories))]
		destination := destinations[f.r.Intn(len(destinations))]
		business, err := f.CreateBusiness(category, destination)
		if err != nil {
			return fmt.Errorf("failed to create business: %w", err)
		}
		businesses = append(businesses, business)
	}
	log.Printf("✓ %d businesses created", len(businesses))

	tripcardCount, linkCount := 0, 0
	for _, user := range users {
		// each user keeps tripcards for a few destinations
		n := 1 + f.r.Intn(3)
		seen := make(map[uint]bool)
		for i := 0; i < n; i++ {
			destination := destinations[f.r.Intn(len(destinations))]
			if seen[destination.ID] {
				continue
			}
			seen[destination.ID] = true

			tripcard, err := f.CreateTripcard(user, destination)
			if err != nil {
				return fmt.Errorf("failed to create tripcard: %w", err)
			}
			tripcardCount++

			for _, business := range businesses {
				if business.DestinationID != destination.ID || f.r.Intn(3) != 0 {
					continue
				}
				link := &models.TripcardBusiness{TripcardID: tripcard.ID, BusinessID: business.ID}
				if err := db.Create(link).Error; err != nil {
					return fmt.Errorf("failed to link business to tripcard: %w", err)
				}
				linkCount++
			}
		}
	}
	log.Printf("✓ %d tripcards created with %d saved businesses", tripcardCount, linkCount)

	reviewCount := 0
	for _, user := range users {
		n := f.r.Intn(4)
		for i := 0; i < n; i++ {
			business := businesses[f.r.Intn(len(businesses))]
			if _, err := f.CreateReview(user, business); err != nil {
				return fmt.Errorf("failed to create review: %w", err)
			}
			reviewCount++
		}
	}
	log.Printf("✓ %d reviews created", reviewCount)

	followCount := 0
	for _, follower := range users {
		n := f.r.Intn(5)
		seen := make(map[uint]bool)
		for i := 0; i < n; i++ {
			followed := users[f.r.Intn(len(users))]
			if followed.ID == follower.ID || seen[followed.ID] {
				continue
			}
			seen[followed.ID] = true
			if _, err := f.CreateFollow(followed, follower); err != nil {
				return fmt.Errorf("failed to create follow: %w", err)
			}
			followCount++
		}
	}
	log.Printf("✓ %d follow edges created", followCount)

	return nil
}

// ClearAll removes all seeded rows in dependency order.
func ClearAll(db *gorm.DB) error {
	log.Println("🧹 Clearing existing data...")
	tables := []string{
		"tripcard_businesses", "reviews", "follows", "tripcards",
		"businesses", "categories", "destinations", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}
