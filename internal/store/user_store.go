// user_store.go
//
// An administrative data service for tags, users and activity tracking
// Copyright (c) 2026 Tagboard Authors
//
// This file is part of tagboard.
// tagboard is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// tagboard is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with tagboard.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Tagboard Authors"
//    in this material, copies, or source code of derived works.

package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tagboard/tagboard/internal/models"
	"github.com/tagboard/tagboard/internal/types"
	"gorm.io/gorm"
)

// User-facing notification strings.
const (
	msgUserEmptyFields = "User name and email cannot be empty"
	msgUserEmailExists = "A user with this email already exists"
	msgUserInvalidRole = "Invalid user role"
)

// UserStore owns the user collection and the transient user selection
// set. It has no dependencies on the other stores; they depend on it
// read-only through the UserSource interface.
type UserStore struct {
	db    *gorm.DB
	audit *ActivityStore

	mu       sync.Mutex
	selected []string
}

// NewUserStore creates the user store.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// AttachAudit wires the activity store for audit recording. It is
// attached after construction because the activity store itself reads
// this store for actor resolution.
func (s *UserStore) AttachAudit(audit *ActivityStore) {
	s.audit = audit
}

// List returns all users in insertion order.
func (s *UserStore) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("seq ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID returns the matching user, or a not-found error. Read-only.
func (s *UserStore) GetByID(id string) (*models.User, error) {
	var user models.User
	err := s.db.Where("user_id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound()
		}
		return nil, err
	}
	return &user, nil
}

// FirstUser implements UserSource.
func (s *UserStore) FirstUser() (models.User, bool) {
	var user models.User
	err := s.db.Order("seq ASC").First(&user).Error
	if err != nil {
		return models.User{}, false
	}
	return user, true
}

// Add creates a user. The email is normalized to lowercase and must be
// unique case-insensitively. Returns the user and the notice string.
func (s *UserStore) Add(name, email string, role models.UserRole, avatar string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" {
		return nil, "", types.Validation(msgUserEmptyFields)
	}
	if !role.Valid() {
		return nil, "", types.Validation(msgUserInvalidRole)
	}

	taken, err := s.emailTaken(email, "")
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", types.Conflict(msgUserEmailExists)
	}

	user := models.User{
		UserID: uuid.NewString(),
		Name:   name,
		Email:  email,
		Role:   role,
		Avatar: avatar,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.record(models.ActionCreate, user.UserID, user.Name); err != nil {
		return nil, "", err
	}

	return &user, fmt.Sprintf("User %q added successfully", name), nil
}

// Update replaces name, email and role in place, preserving id and
// avatar. A missing id is a silent no-op.
func (s *UserStore) Update(id, name, email string, role models.UserRole) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" {
		return nil, "", types.Validation(msgUserEmptyFields)
	}
	if !role.Valid() {
		return nil, "", types.Validation(msgUserInvalidRole)
	}

	user, err := s.GetByID(id)
	if err != nil {
		return nil, "", err
	}

	taken, err := s.emailTaken(email, id)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", types.Conflict(msgUserEmailExists)
	}

	user.Name = name
	user.Email = email
	user.Role = role
	if err := s.db.Model(user).
		Updates(map[string]interface{}{"name": name, "email": email, "role": role}).Error; err != nil {
		return nil, "", fmt.Errorf("failed to update user: %w", err)
	}

	if err := s.record(models.ActionUpdate, user.UserID, user.Name); err != nil {
		return nil, "", err
	}

	return user, fmt.Sprintf("User %q updated successfully", name), nil
}

// Delete removes the user, purges its id from the user selection set and
// from every tag's assignment list. A missing id is a silent no-op.
func (s *UserStore) Delete(id string) (string, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return "", err
	}

	// Resolve the actor before deleting: removing the first user changes
	// the resolution result, and the action is attributed to whoever
	// performed it.
	actor := ResolveCurrentActor(s)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.User{}).Error; err != nil {
			return err
		}

		// Cascade: drop the id from every tag's assignment list.
		var tags []models.Tag
		if err := tx.Find(&tags).Error; err != nil {
			return err
		}
		for i := range tags {
			if !tags[i].AssignedUsers.Contains(id) {
				continue
			}
			cleaned := tags[i].AssignedUsers.Without(id)
			if err := tx.Model(&tags[i]).Update("assigned_users", cleaned).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to delete user: %w", err)
	}

	s.mu.Lock()
	s.selected = removeID(s.selected, id)
	s.mu.Unlock()

	if s.audit != nil {
		if _, err := s.audit.Record(models.ActionDelete, models.EntityUser, user.UserID, user.Name, &actor, nil); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("User %q deleted successfully", user.Name), nil
}

// ToggleSelection flips membership of id in the selection set and
// returns the updated set. Toggling twice restores the prior state.
func (s *UserStore) ToggleSelection(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = toggleID(s.selected, id)
	return append([]string(nil), s.selected...)
}

// Selected returns a copy of the selection set.
func (s *UserStore) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.selected...)
}

// ClearSelected empties the selection set.
func (s *UserStore) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// emailTaken reports whether another user already holds the normalized
// email. excludeID skips the update target itself.
func (s *UserStore) emailTaken(email, excludeID string) (bool, error) {
	query := s.db.Model(&models.User{}).Where("LOWER(email) = ?", email)
	if excludeID != "" {
		query = query.Where("user_id <> ?", excludeID)
	}
	var n int64
	if err := query.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// record writes a user audit entry attributed to the current actor.
func (s *UserStore) record(action models.ActivityAction, entityID, entityName string) error {
	if s.audit == nil {
		return nil
	}
	actor := ResolveCurrentActor(s)
	_, err := s.audit.Record(action, models.EntityUser, entityID, entityName, &actor, nil)
	return err
}

// toggleID flips membership of id in a selection list, preserving order.
func toggleID(list []string, id string) []string {
	for i, v := range list {
		if v == id {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return append(list, id)
}

// removeID drops id from a selection list if present.
func removeID(list []string, id string) []string {
	for i, v := range list {
		if v == id {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
