// Loads the demo owner and sample properties into the configured
// database. Safe to run more than once: the owner account is reused and
// properties are only inserted when the table is empty.
package main

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentnest/rentnest/internal/config"
	"github.com/rentnest/rentnest/internal/hash"
	"github.com/rentnest/rentnest/internal/models"
	"github.com/rentnest/rentnest/internal/seed"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	var owner models.User
	err = db.Where("email = ?", "demo-owner@rentnest.local").First(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pwHash, err := hash.HashPassword("demo-owner")
		if err != nil {
			log.Fatal(err)
		}
		owner = models.User{
			ID:           uuid.NewString(),
			Email:        "demo-owner@rentnest.local",
			Name:         "Demo Owner",
			PasswordHash: pwHash,
			Role:         models.RoleOwner,
			Granted:      true,
		}
		if err := db.Create(&owner).Error; err != nil {
			log.Fatal(err)
		}
	} else if err != nil {
		log.Fatal(err)
	}

	var count int64
	if err := db.Model(&models.Property{}).Count(&count).Error; err != nil {
		log.Fatal(err)
	}
	if count > 0 {
		log.Printf("properties already present (%d), nothing to do", count)
		return
	}

	if err := seed.Load(db, &owner); err != nil {
		log.Fatal(err)
	}
	log.Printf("seeded %d properties for %s", len(seed.Properties(&owner)), owner.Email)
}
