// Command seed loads the pack catalog, commission rates and platform
// settings used by a fresh deployment.
package main

import (
	"log"

	"sprpay/internal/config"
	"sprpay/internal/models"
	"sprpay/internal/repositories"

	"gorm.io/gorm/clause"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	db := repositories.DB

	packs := []models.Pack{
		{Name: "Starter", Price: 50, Cadence: models.CadenceQuarterly, Active: true},
		{Name: "Business", Price: 100, Cadence: models.CadenceMonthly, Active: true},
		{Name: "Premium", Price: 500, Cadence: models.CadenceAnnual, Active: true},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&packs).Error; err != nil {
		log.Fatalf("Failed to seed packs: %v", err)
	}

	// Default four-level commission schedule per pack.
	levels := []float64{10, 5, 2, 1}
	for _, pack := range packs {
		for i, pct := range levels {
			rate := models.CommissionRate{PackID: pack.ID, Level: i + 1, Percentage: pct}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rate).Error; err != nil {
				log.Fatalf("Failed to seed commission rates: %v", err)
			}
		}
	}

	setting := models.Setting{Key: models.SettingPurchaseFeePercentage, Value: "2"}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&setting).Error; err != nil {
		log.Fatalf("Failed to seed settings: %v", err)
	}

	log.Println("seed data loaded")
}
