package domain

import (
	"context"
	"fmt"
	"time"
)

// Attendee is registered for a conference through its local mirror.
type Attendee struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email"`
	Name         string        `json:"name"`
	CompanyName  *string       `json:"company_name"`
	Created      time.Time     `json:"created"`
	ConferenceID int64         `json:"-"`
	Conference   *ConferenceVO `json:"-"`
}

// Href returns the canonical API URL of the attendee.
func (a *Attendee) Href() string {
	return fmt.Sprintf("/api/attendees/%d/", a.ID)
}

// Field returns the named attribute for encoding.
func (a *Attendee) Field(name string) (any, bool) {
	switch name {
	case "id":
		return a.ID, true
	case "href":
		return a.Href(), true
	case "email":
		return a.Email, true
	case "name":
		return a.Name, true
	case "company_name":
		return a.CompanyName, true
	case "created":
		return a.Created, true
	case "conference":
		if a.Conference == nil {
			return nil, true
		}
		return a.Conference, true
	}
	return nil, false
}

// AttendeeChanges carries a partial update as supplied by a client.
// ConferenceID is the monolith conference id; it is resolved to the local mirror.
type AttendeeChanges struct {
	Email        *string
	Name         *string
	CompanyName  *string
	ConferenceID *int64
}

// AttendeeUpdate is a resolved partial update handed to the repository.
type AttendeeUpdate struct {
	Email          *string
	Name           *string
	CompanyName    *string
	ConferenceVOID *int64
}

// AttendeeRepository defines storage for attendees.
type AttendeeRepository interface {
	Create(ctx context.Context, a *Attendee) error
	GetByID(ctx context.Context, id int64) (*Attendee, error)
	ListByConferenceVOID(ctx context.Context, conferenceVOID int64) ([]*Attendee, error)
	Update(ctx context.Context, id int64, u AttendeeUpdate) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// AttendeeService defines attendee use cases.
type AttendeeService interface {
	// ListByConference returns the attendees of the conference with the given monolith id.
	ListByConference(ctx context.Context, conferenceID int64) ([]*Attendee, error)
	Create(ctx context.Context, conferenceID int64, a *Attendee) error
	Get(ctx context.Context, id int64) (*Attendee, error)
	Update(ctx context.Context, id int64, ch AttendeeChanges) (*Attendee, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
