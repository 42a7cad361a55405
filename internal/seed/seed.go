// Package seed loads the demo property set that used to live in the
// client. Tests and the seed command share it so the fixture stays in
// the persistence layer, not in process-wide state.
package seed

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentnest/rentnest/internal/models"
)

func Properties(owner *models.User) []models.Property {
	now := time.Now().Unix()
	return []models.Property{
		{
			ID:          uuid.NewString(),
			OwnerID:     owner.ID,
			OwnerName:   owner.Name,
			Title:       "Modern Downtown Apartment",
			Description: "Beautiful 2-bedroom apartment in the heart of downtown with stunning city views.",
			Address:     "Downtown, New York",
			Price:       2500,
			Bedrooms:    2,
			Bathrooms:   2,
			Area:        1200,
			Images:      []string{"https://images.pexels.com/photos/1571460/pexels-photo-1571460.jpeg"},
			Amenities:   []string{"WiFi", "Air Conditioning", "Parking", "Gym"},
			Available:   true,
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			OwnerID:     owner.ID,
			OwnerName:   owner.Name,
			Title:       "Cozy Suburban House",
			Description: "Perfect family home with a beautiful garden and quiet neighborhood.",
			Address:     "Suburbs, California",
			Price:       3200,
			Bedrooms:    3,
			Bathrooms:   2,
			Area:        1800,
			Images:      []string{"https://images.pexels.com/photos/106399/pexels-photo-106399.jpeg"},
			Amenities:   []string{"Garden", "Garage", "WiFi", "Pet Friendly"},
			Available:   true,
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			OwnerID:     owner.ID,
			OwnerName:   owner.Name,
			Title:       "Luxury Beachfront Villa",
			Description: "Stunning villa overlooking the ocean with private pool and modern interiors.",
			Address:     "Malibu, California",
			Price:       8500,
			Bedrooms:    5,
			Bathrooms:   4,
			Area:        3500,
			Images:      []string{"https://images.pexels.com/photos/32870/pexels-photo.jpg"},
			Amenities:   []string{"Pool", "Ocean View", "WiFi", "Parking"},
			Available:   true,
			CreatedAt:   now,
		},
	}
}

func Load(db *gorm.DB, owner *models.User) error {
	for _, p := range Properties(owner) {
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}
