package database

import (
	"fmt"
	"log"

	"github.com/tagboard/tagboard/internal/models"
	"gorm.io/gorm"
)

// seedUsers is the fixed starting user set. Seed counts on tags are a
// manual statistic and deliberately do not track assignment list lengths.
func seedUsers() []models.User {
	return []models.User{
		{UserID: "1", Name: "John Doe", Email: "john@example.com", Role: models.RoleAdmin},
		{UserID: "2", Name: "Jane Smith", Email: "jane@example.com", Role: models.RoleEditor},
		{UserID: "3", Name: "Mike Johnson", Email: "mike@example.com", Role: models.RoleViewer},
	}
}

func seedTags() []models.Tag {
	return []models.Tag{
		{TagID: "1", Name: "Important", Color: models.ColorRed, Count: 5, AssignedUsers: models.IDList{"1"}},
		{TagID: "2", Name: "Personal", Color: models.ColorBlue, Count: 3, AssignedUsers: models.IDList{"2"}},
		{TagID: "3", Name: "Work", Color: models.ColorGreen, Count: 8, AssignedUsers: models.IDList{"1", "3"}},
		{TagID: "4", Name: "Learning", Color: models.ColorViolet, Count: 2, AssignedUsers: models.IDList{}},
		{TagID: "5", Name: "Project", Color: models.ColorOrange, Count: 4, AssignedUsers: models.IDList{"2", "3"}},
	}
}

// Seed populates the user and tag collections if they are empty. It is a
// no-op on a populated database, so persistent deployments keep their
// state while the default in-memory store is reseeded on every start.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	if userCount == 0 {
		users := seedUsers()
		if err := db.Create(&users).Error; err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}
		log.Printf("Seeded %d users", len(users))
	}

	var tagCount int64
	if err := db.Model(&models.Tag{}).Count(&tagCount).Error; err != nil {
		return fmt.Errorf("failed to count tags: %w", err)
	}

	if tagCount == 0 {
		tags := seedTags()
		if err := db.Create(&tags).Error; err != nil {
			return fmt.Errorf("failed to seed tags: %w", err)
		}
		log.Printf("Seeded %d tags", len(tags))
	}

	return nil
}
