package domain

import (
	"context"
	"fmt"
	"time"
)

// Status names seeded by the schema.
const (
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
)

// Status is the review state of a presentation, looked up by name.
type Status struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Presentation is a talk submitted to a conference.
type Presentation struct {
	ID             int64       `json:"id"`
	PresenterName  string      `json:"presenter_name"`
	CompanyName    *string     `json:"company_name"`
	PresenterEmail string      `json:"presenter_email"`
	Title          string      `json:"title"`
	Synopsis       string      `json:"synopsis"`
	Created        time.Time   `json:"created"`
	StatusID       int64       `json:"-"`
	Status         *Status     `json:"-"`
	ConferenceID   int64       `json:"-"`
	Conference     *Conference `json:"-"`
}

// Href returns the canonical API URL of the presentation.
func (p *Presentation) Href() string {
	return fmt.Sprintf("/api/presentations/%d/", p.ID)
}

// StatusName returns the name of the presentation's status, or "" if it is not loaded.
func (p *Presentation) StatusName() string {
	if p.Status == nil {
		return ""
	}
	return p.Status.Name
}

// Field returns the named attribute for encoding.
func (p *Presentation) Field(name string) (any, bool) {
	switch name {
	case "id":
		return p.ID, true
	case "href":
		return p.Href(), true
	case "presenter_name":
		return p.PresenterName, true
	case "company_name":
		return p.CompanyName, true
	case "presenter_email":
		return p.PresenterEmail, true
	case "title":
		return p.Title, true
	case "synopsis":
		return p.Synopsis, true
	case "created":
		return p.Created, true
	case "status":
		return p.StatusName(), true
	case "conference":
		if p.Conference == nil {
			return nil, true
		}
		return p.Conference, true
	}
	return nil, false
}

// PresentationChanges carries a partial update as supplied by a client.
// Status is looked up by name and ConferenceID by conference id.
type PresentationChanges struct {
	PresenterName  *string
	CompanyName    *string
	PresenterEmail *string
	Title          *string
	Synopsis       *string
	Status         *string
	ConferenceID   *int64
}

// PresentationUpdate is a resolved partial update handed to the repository.
type PresentationUpdate struct {
	PresenterName  *string
	CompanyName    *string
	PresenterEmail *string
	Title          *string
	Synopsis       *string
	StatusID       *int64
	ConferenceID   *int64
}

// PresentationRepository defines storage for presentations.
type PresentationRepository interface {
	Create(ctx context.Context, p *Presentation) error
	GetByID(ctx context.Context, id int64) (*Presentation, error)
	ListByConferenceID(ctx context.Context, conferenceID int64) ([]*Presentation, error)
	Update(ctx context.Context, id int64, u PresentationUpdate) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// StatusRepository defines read access to statuses.
type StatusRepository interface {
	GetByName(ctx context.Context, name string) (*Status, error)
}

// PresentationService defines presentation use cases.
type PresentationService interface {
	ListByConference(ctx context.Context, conferenceID int64) ([]*Presentation, error)
	Create(ctx context.Context, conferenceID int64, p *Presentation) error
	Get(ctx context.Context, id int64) (*Presentation, error)
	Update(ctx context.Context, id int64, ch PresentationChanges) (*Presentation, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Approve(ctx context.Context, id int64) (*Presentation, error)
	Reject(ctx context.Context, id int64) (*Presentation, error)
}
