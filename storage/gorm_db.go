package storage

import (
	"fmt"
	"log"
	"os"
	"time"

	"poolcalc/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var gormDB *gorm.DB

// InitGormDB initializes GORM database connection and migrates the price
// override table.
func InitGormDB() *gorm.DB {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Europe/Moscow",
		host, user, password, dbname, port)

	var err error
	gormDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database with GORM:", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB:", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := gormDB.AutoMigrate(&models.PriceOverride{}); err != nil {
		log.Fatal("Failed to migrate price overrides:", err)
	}

	return gormDB
}

// GetGormDB returns the GORM database instance
func GetGormDB() *gorm.DB {
	return gormDB
}

// UpsertPriceOverride inserts or updates a unit price override for a
// profile.
func UpsertPriceOverride(override *models.PriceOverride) error {
	return gormDB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}, {Name: "category"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "updated_by", "updated_at"}),
	}).Create(override).Error
}

// DeletePriceOverride removes an override, restoring the built-in price.
func DeletePriceOverride(profileID, category, key string) error {
	result := gormDB.Where("profile_id = ? AND category = ? AND key = ?", profileID, category, key).
		Delete(&models.PriceOverride{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListPriceOverrides returns all overrides for a profile.
func ListPriceOverrides(profileID string) ([]models.PriceOverride, error) {
	var overrides []models.PriceOverride
	err := gormDB.Where("profile_id = ?", profileID).
		Order("category, key").
		Find(&overrides).Error
	return overrides, err
}

// ApplyPriceOverrides merges stored overrides into a built-in price table.
// The table itself is never mutated. When the override store is not
// reachable the built-in prices are returned as is.
func ApplyPriceOverrides(profileID, category string, prices map[string]float64) map[string]float64 {
	merged := make(map[string]float64, len(prices))
	for k, v := range prices {
		merged[k] = v
	}
	if gormDB == nil {
		return merged
	}

	var overrides []models.PriceOverride
	if err := gormDB.Where("profile_id = ? AND category = ?", profileID, category).
		Find(&overrides).Error; err != nil {
		log.Printf("price overrides unavailable for %s/%s: %v", profileID, category, err)
		return merged
	}
	for _, o := range overrides {
		merged[o.Key] = o.Price
	}
	return merged
}
