package domain

import (
	"context"
	"fmt"
	"time"
)

// State is a US state, referenced by locations through its abbreviation.
type State struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// Location is a venue that hosts conferences.
type Location struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	City       string    `json:"city"`
	RoomCount  int       `json:"room_count"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
	PictureURL *string   `json:"picture_url"`
	StateID    int64     `json:"-"`
	State      *State    `json:"-"`
}

// Href returns the canonical API URL of the location.
func (l *Location) Href() string {
	return fmt.Sprintf("/api/locations/%d/", l.ID)
}

// Field returns the named attribute for encoding.
func (l *Location) Field(name string) (any, bool) {
	switch name {
	case "id":
		return l.ID, true
	case "href":
		return l.Href(), true
	case "name":
		return l.Name, true
	case "city":
		return l.City, true
	case "room_count":
		return l.RoomCount, true
	case "created":
		return l.Created, true
	case "updated":
		return l.Updated, true
	case "picture_url":
		return l.PictureURL, true
	case "state":
		if l.State == nil {
			return nil, true
		}
		return l.State.Abbreviation, true
	}
	return nil, false
}

// LocationChanges carries a partial update. State is an abbreviation.
type LocationChanges struct {
	Name       *string
	City       *string
	RoomCount  *int
	PictureURL *string
	State      *string
}

// LocationUpdate is a resolved partial update handed to the repository.
type LocationUpdate struct {
	Name       *string
	City       *string
	RoomCount  *int
	PictureURL *string
	StateID    *int64
}

// LocationRepository defines storage for locations.
type LocationRepository interface {
	Create(ctx context.Context, l *Location) error
	GetByID(ctx context.Context, id int64) (*Location, error)
	List(ctx context.Context) ([]*Location, error)
	Update(ctx context.Context, id int64, u LocationUpdate) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// StateRepository defines read access to states.
type StateRepository interface {
	GetByAbbreviation(ctx context.Context, abbreviation string) (*State, error)
}

// LocationService defines location use cases.
type LocationService interface {
	List(ctx context.Context) ([]*Location, error)
	// Create resolves stateAbbreviation, looks up a picture for the city and stores the location.
	Create(ctx context.Context, l *Location, stateAbbreviation string) error
	Get(ctx context.Context, id int64) (*Location, error)
	Update(ctx context.Context, id int64, ch LocationChanges) (*Location, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
