package database

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/tagboard/tagboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func TestSeedPopulatesEmptyDatabase(t *testing.T) {
	db := setupTestDB(t)

	if err := Seed(db); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	var userCount, tagCount, activityCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Tag{}).Count(&tagCount)
	db.Model(&models.Activity{}).Count(&activityCount)

	if userCount != 3 {
		t.Errorf("Expected 3 seed users, got %d", userCount)
	}
	if tagCount != 5 {
		t.Errorf("Expected 5 seed tags, got %d", tagCount)
	}
	if activityCount != 0 {
		t.Errorf("Seeding must not write activities, got %d", activityCount)
	}

	var work models.Tag
	if err := db.Where("tag_id = ?", "3").First(&work).Error; err != nil {
		t.Fatalf("Failed to load seed tag: %v", err)
	}
	if work.Name != "Work" || work.Color != models.ColorGreen || work.Count != 8 {
		t.Errorf("Unexpected seed tag: %+v", work)
	}
	if len(work.AssignedUsers) != 2 || work.AssignedUsers[0] != "1" || work.AssignedUsers[1] != "3" {
		t.Errorf("Unexpected seed assignments: %v", work.AssignedUsers)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	if err := Seed(db); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("Second Seed failed: %v", err)
	}

	var userCount, tagCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Tag{}).Count(&tagCount)
	if userCount != 3 || tagCount != 5 {
		t.Errorf("Expected seed data unchanged, got %d users and %d tags", userCount, tagCount)
	}
}

func TestSeedSkipsPartialData(t *testing.T) {
	db := setupTestDB(t)

	existing := models.User{
		UserID: "custom",
		Name:   "Existing User",
		Email:  "existing@example.com",
		Role:   models.RoleAdmin,
	}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	if err := Seed(db); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount != 1 {
		t.Errorf("Expected seed to skip non-empty users table, got %d", userCount)
	}
}
