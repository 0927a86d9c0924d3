package store

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/tagboard/tagboard/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// DefaultActivityLimit is the retained log size when none is configured.
const DefaultActivityLimit = 100

// ActivityStore owns the append-only activity log. The log is bounded:
// after every record the oldest entries beyond the limit are evicted
// (FIFO by insertion order).
type ActivityStore struct {
	db    *gorm.DB
	users UserSource
	limit int

	mu     sync.Mutex
	lastID int64
}

// NewActivityStore creates the activity store. users is the read-only
// user view for default actor resolution.
func NewActivityStore(db *gorm.DB, users UserSource, limit int) *ActivityStore {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	return &ActivityStore{db: db, users: users, limit: limit}
}

// nextID issues a time-derived id that is strictly monotonic even under
// burst writes within one millisecond.
func (s *ActivityStore) nextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixMilli()
	if now <= s.lastID {
		now = s.lastID + 1
	}
	s.lastID = now
	return strconv.FormatInt(now, 10)
}

// Record appends one activity. When actor is nil the current actor is
// resolved from the user collection. details may be nil.
func (s *ActivityStore) Record(
	action models.ActivityAction,
	entityType models.EntityType,
	entityID, entityName string,
	actor *Actor,
	details map[string]interface{},
) (*models.Activity, error) {
	who := Actor{}
	if actor != nil {
		who = *actor
	} else {
		who = ResolveCurrentActor(s.users)
	}

	activity := models.Activity{
		ActivityID: s.nextID(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		EntityName: entityName,
		UserID:     who.ID,
		UserName:   who.Name,
		Timestamp:  time.Now().UTC(),
	}
	if details != nil {
		activity.Details = datatypes.JSONMap(details)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}
		return s.evict(tx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record activity: %w", err)
	}

	return &activity, nil
}

// evict truncates the log to the newest limit entries. Plucking the
// cutoff first keeps the delete portable: mysql rejects LIMIT inside an
// IN subquery.
func (s *ActivityStore) evict(tx *gorm.DB) error {
	var seqs []uint64
	if err := tx.Model(&models.Activity{}).
		Order("seq DESC").
		Limit(s.limit).
		Pluck("seq", &seqs).Error; err != nil {
		return err
	}
	if len(seqs) < s.limit {
		return nil
	}
	cutoff := seqs[len(seqs)-1]
	return tx.Where("seq < ?", cutoff).Delete(&models.Activity{}).Error
}

// List returns the full log, newest first.
func (s *ActivityStore) List() ([]models.Activity, error) {
	var activities []models.Activity
	err := s.db.
		Clauses(hints.CommentBefore("select", "activity_feed")).
		Order("seq DESC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// Count returns the current log length.
func (s *ActivityStore) Count() (int64, error) {
	var n int64
	err := s.db.Model(&models.Activity{}).Count(&n).Error
	return n, err
}

// Clear empties the log unconditionally.
func (s *ActivityStore) Clear() error {
	return s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Activity{}).Error
}
