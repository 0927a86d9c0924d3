package store_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/tagboard/tagboard/internal/database"
	"github.com/tagboard/tagboard/internal/models"
	"github.com/tagboard/tagboard/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// In-memory sqlite is per-connection; keep the pool at one
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// setupStores wires the three stores over a seeded in-memory database
func setupStores(t *testing.T) (*store.UserStore, *store.TagStore, *store.ActivityStore) {
	t.Helper()

	db := setupTestDB(t)
	if err := database.Seed(db); err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	users := store.NewUserStore(db)
	activities := store.NewActivityStore(db, users, 0)
	users.AttachAudit(activities)
	tags := store.NewTagStore(db, users, activities)

	return users, tags, activities
}

// lastActivity returns the newest log entry
func lastActivity(t *testing.T, activities *store.ActivityStore) models.Activity {
	t.Helper()

	list, err := activities.List()
	if err != nil {
		t.Fatalf("Failed to list activities: %v", err)
	}
	if len(list) == 0 {
		t.Fatal("Expected at least one activity")
	}
	return list[0]
}
