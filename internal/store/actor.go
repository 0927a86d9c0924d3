package store

import (
	"github.com/tagboard/tagboard/internal/models"
)

// Actor identifies who is attributed with a recorded mutation.
type Actor struct {
	ID   string
	Name string
}

// systemActor is attributed when no users exist.
var systemActor = Actor{ID: "system", Name: "System"}

// UserSource is the read-only view of the user collection that the tag
// and activity stores depend on. It must never allow mutation.
type UserSource interface {
	// FirstUser returns the first user in insertion order, if any.
	FirstUser() (models.User, bool)
}

// ResolveCurrentActor returns the acting user for audit attribution:
// the first user in the collection, or the system sentinel when the
// collection is empty. There is no authenticated-session concept; this
// is the single place to replace when one arrives.
func ResolveCurrentActor(src UserSource) Actor {
	if u, ok := src.FirstUser(); ok {
		return Actor{ID: u.UserID, Name: u.Name}
	}
	return systemActor
}
