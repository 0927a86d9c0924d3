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
	msgTagEmptyName    = "Tag name cannot be empty"
	msgTagNameExists   = "A tag with this name already exists"
	msgTagInvalidColor = "Invalid tag color"
	msgUsersAssigned   = "Users assigned to tag successfully"
	msgUserUnassigned  = "User removed from tag successfully"
)

// TagStore owns the tag collection and the transient tag selection set.
// It reads the user collection only to attribute recorded actions.
type TagStore struct {
	db    *gorm.DB
	users UserSource
	audit *ActivityStore

	mu       sync.Mutex
	selected []string
}

// NewTagStore creates the tag store with its read-only user view and the
// activity store for audit recording.
func NewTagStore(db *gorm.DB, users UserSource, audit *ActivityStore) *TagStore {
	return &TagStore{db: db, users: users, audit: audit}
}

// List returns all tags in insertion order.
func (s *TagStore) List() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Order("seq ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetByID returns the matching tag, or a not-found error. Read-only.
func (s *TagStore) GetByID(id string) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.Where("tag_id = ?", id).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound()
		}
		return nil, err
	}
	return &tag, nil
}

// Add creates a tag with an empty assignment list. The name must be
// unique case-insensitively.
func (s *TagStore) Add(name string, color models.TagColor, count uint64) (*models.Tag, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", types.Validation(msgTagEmptyName)
	}
	if !color.Valid() {
		return nil, "", types.Validation(msgTagInvalidColor)
	}

	taken, err := s.nameTaken(name, "")
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", types.Conflict(msgTagNameExists)
	}

	tag := models.Tag{
		TagID:         uuid.NewString(),
		Name:          name,
		Color:         color,
		Count:         count,
		AssignedUsers: models.IDList{},
	}
	if err := s.db.Create(&tag).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create tag: %w", err)
	}

	if err := s.record(models.ActionCreate, tag.TagID, tag.Name, nil); err != nil {
		return nil, "", err
	}

	return &tag, fmt.Sprintf("Tag %q created successfully", name), nil
}

// Update replaces name and color, and optionally replaces the assignment
// list wholesale and the usage count. A missing id is a silent no-op.
func (s *TagStore) Update(id, name string, color models.TagColor, assignedUsers []string, count *uint64) (*models.Tag, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", types.Validation(msgTagEmptyName)
	}
	if !color.Valid() {
		return nil, "", types.Validation(msgTagInvalidColor)
	}

	tag, err := s.GetByID(id)
	if err != nil {
		return nil, "", err
	}

	taken, err := s.nameTaken(name, id)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", types.Conflict(msgTagNameExists)
	}

	updates := map[string]interface{}{
		"name":  name,
		"color": color,
	}
	if assignedUsers != nil {
		updates["assigned_users"] = models.IDList(dedupe(assignedUsers))
	}
	if count != nil {
		updates["count"] = *count
	}
	if err := s.db.Model(tag).Updates(updates).Error; err != nil {
		return nil, "", fmt.Errorf("failed to update tag: %w", err)
	}

	tag.Name = name
	tag.Color = color
	if assignedUsers != nil {
		tag.AssignedUsers = models.IDList(dedupe(assignedUsers))
	}
	if count != nil {
		tag.Count = *count
	}

	if err := s.record(models.ActionUpdate, tag.TagID, name, nil); err != nil {
		return nil, "", err
	}

	return tag, fmt.Sprintf("Tag %q updated successfully", name), nil
}

// Delete removes the tag and purges its id from the tag selection set.
// A missing id is a silent no-op.
func (s *TagStore) Delete(id string) (string, error) {
	tag, err := s.GetByID(id)
	if err != nil {
		return "", err
	}

	if err := s.db.Where("tag_id = ?", id).Delete(&models.Tag{}).Error; err != nil {
		return "", fmt.Errorf("failed to delete tag: %w", err)
	}

	s.mu.Lock()
	s.selected = removeID(s.selected, id)
	s.mu.Unlock()

	if err := s.record(models.ActionDelete, tag.TagID, tag.Name, nil); err != nil {
		return "", err
	}

	return fmt.Sprintf("Tag %q deleted successfully", tag.Name), nil
}

// AssignUsers replaces the tag's assignment list wholesale with userIDs
// (deduplicated, order preserved). One assign activity is recorded per
// id that was not previously assigned; ids that stay assigned or drop
// out of the list produce none.
func (s *TagStore) AssignUsers(tagID string, userIDs []string) (string, error) {
	tag, err := s.GetByID(tagID)
	if err != nil {
		return "", err
	}

	next := models.IDList(dedupe(userIDs))

	var newlyAssigned []string
	for _, id := range next {
		if !tag.AssignedUsers.Contains(id) {
			newlyAssigned = append(newlyAssigned, id)
		}
	}

	if err := s.db.Model(tag).Update("assigned_users", next).Error; err != nil {
		return "", fmt.Errorf("failed to assign users to tag: %w", err)
	}

	for _, userID := range newlyAssigned {
		if err := s.record(models.ActionAssign, tag.TagID, tag.Name, map[string]interface{}{"userId": userID}); err != nil {
			return "", err
		}
	}

	return msgUsersAssigned, nil
}

// RemoveUser removes userID from the tag's assignment list if present
// and records one unassign activity. A missing tag is a silent no-op; a
// userID that was not assigned is not an error.
func (s *TagStore) RemoveUser(tagID, userID string) (string, error) {
	tag, err := s.GetByID(tagID)
	if err != nil {
		return "", err
	}

	updated := tag.AssignedUsers.Without(userID)
	if err := s.db.Model(tag).Update("assigned_users", updated).Error; err != nil {
		return "", fmt.Errorf("failed to remove user from tag: %w", err)
	}

	if err := s.record(models.ActionUnassign, tag.TagID, tag.Name, map[string]interface{}{"userId": userID}); err != nil {
		return "", err
	}

	return msgUserUnassigned, nil
}

// ToggleSelection flips membership of id in the selection set and
// returns the updated set.
func (s *TagStore) ToggleSelection(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = toggleID(s.selected, id)
	return append([]string(nil), s.selected...)
}

// Selected returns a copy of the selection set.
func (s *TagStore) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.selected...)
}

// ClearSelected empties the selection set.
func (s *TagStore) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// nameTaken reports whether another tag already holds the name,
// case-insensitively. excludeID skips the update target itself.
func (s *TagStore) nameTaken(name, excludeID string) (bool, error) {
	query := s.db.Model(&models.Tag{}).Where("LOWER(name) = ?", strings.ToLower(name))
	if excludeID != "" {
		query = query.Where("tag_id <> ?", excludeID)
	}
	var n int64
	if err := query.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// record writes a tag audit entry attributed to the current actor.
func (s *TagStore) record(action models.ActivityAction, entityID, entityName string, details map[string]interface{}) error {
	actor := ResolveCurrentActor(s.users)
	_, err := s.audit.Record(action, models.EntityTag, entityID, entityName, &actor, details)
	return err
}

// dedupe removes duplicate ids, preserving first-occurrence order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
