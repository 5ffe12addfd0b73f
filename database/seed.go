package database

import (
	"storefront/logger"
	"storefront/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed bootstraps the store on first run: one admin account and a
// handful of sample products. Both checks are count-guarded so a
// restart never duplicates rows.
func Seed(db *gorm.DB, adminPassword string) error {
	var admins int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins).Error; err != nil {
		return err
	}

	if admins == 0 {
		if adminPassword == "" {
			adminPassword = "admin123"
			logger.Log.Warn("ADMIN_PASSWORD not set, bootstrapping admin with the default password")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := models.User{Username: "admin", Password: string(hashed), Role: models.RoleAdmin}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		logger.Log.Info("Default admin created", zap.String("username", "admin"))
	}

	var products int64
	if err := db.Model(&models.Product{}).Count(&products).Error; err != nil {
		return err
	}

	if products == 0 {
		samples := []models.Product{
			{Name: "Bluetooth Speaker", Price: 799.99, Category: "Electronics", Stock: 10},
			{Name: "Digital Camera", Price: 1499.99, Category: "Electronics", Stock: 5},
			{Name: "Leather Jacket", Price: 79.99, Category: "Clothing", Stock: 20},
			{Name: "Water Bottle", Price: 19.99, Category: "Kitchenware", Stock: 30},
			{Name: "Travelling bagpack", Price: 9.99, Category: "Travel", Stock: 25},
		}
		if err := db.Create(&samples).Error; err != nil {
			return err
		}
		logger.Log.Info("Sample products added", zap.Int("count", len(samples)))
	}

	return nil
}
