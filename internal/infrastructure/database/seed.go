package database

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kapehan/pos-api/internal/domain/entity"
	"github.com/kapehan/pos-api/internal/domain/enum"
	"github.com/spf13/viper"
)

// SeedDefaultData seeds a first branch and an admin user when configured via
// environment variables. Safe to run repeatedly.
func SeedDefaultData(db *gorm.DB) error {
	var branch entity.Branch
	if err := db.Where("code = ?", "MAIN").First(&branch).Error; err != nil {
		branch = entity.Branch{Name: "Main Branch", Code: "MAIN"}
		if err := db.Create(&branch).Error; err != nil {
			log.Printf("Warning: failed to create default branch: %v", err)
		}
	}

	adminUser := viper.GetString("ADMIN_USERNAME")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	if adminUser == "" || adminPassword == "" {
		return nil
	}

	var existing entity.User
	if err := db.Where("username = ?", adminUser).First(&existing).Error; err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := entity.User{
		Username:     adminUser,
		PasswordHash: string(hash),
		Role:         enum.RoleAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("Warning: failed to create admin user: %v", err)
	}

	return nil
}
