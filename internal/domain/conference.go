package domain

import (
	"context"
	"fmt"
	"time"
)

// ConferenceHref returns the canonical API URL of the conference with the given id.
// Mirrors on the attendees side are keyed by this value.
func ConferenceHref(id int64) string {
	return fmt.Sprintf("/api/conferences/%d/", id)
}

// Conference is owned by the monolith.
type Conference struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	MaxPresentations int       `json:"max_presentations"`
	MaxAttendees     int       `json:"max_attendees"`
	Starts           time.Time `json:"starts"`
	Ends             time.Time `json:"ends"`
	Created          time.Time `json:"created"`
	Updated          time.Time `json:"updated"`
	LocationID       int64     `json:"-"`
	Location         *Location `json:"-"`
}

// Href returns the canonical API URL of the conference.
func (c *Conference) Href() string {
	return ConferenceHref(c.ID)
}

// Field returns the named attribute for encoding.
func (c *Conference) Field(name string) (any, bool) {
	switch name {
	case "id":
		return c.ID, true
	case "href":
		return c.Href(), true
	case "name":
		return c.Name, true
	case "description":
		return c.Description, true
	case "max_presentations":
		return c.MaxPresentations, true
	case "max_attendees":
		return c.MaxAttendees, true
	case "starts":
		return c.Starts, true
	case "ends":
		return c.Ends, true
	case "created":
		return c.Created, true
	case "updated":
		return c.Updated, true
	case "location":
		if c.Location == nil {
			return nil, true
		}
		return c.Location, true
	}
	return nil, false
}

// ConferenceUpdate carries a partial update of a conference.
type ConferenceUpdate struct {
	Name             *string
	Description      *string
	MaxPresentations *int
	MaxAttendees     *int
	Starts           *time.Time
	Ends             *time.Time
	LocationID       *int64
}

// ConferenceVO is the attendees-side mirror of a monolith conference, keyed by ImportHref.
type ConferenceVO struct {
	ID         int64  `json:"id"`
	ImportHref string `json:"import_href"`
	Name       string `json:"name"`
}

// Href returns the URL the mirror was imported from.
func (vo *ConferenceVO) Href() string {
	return vo.ImportHref
}

// Field returns the named attribute for encoding.
func (vo *ConferenceVO) Field(name string) (any, bool) {
	switch name {
	case "id":
		return vo.ID, true
	case "href":
		return vo.Href(), true
	case "name":
		return vo.Name, true
	case "import_href":
		return vo.ImportHref, true
	}
	return nil, false
}

// Weather is the current weather at a conference's location.
type Weather struct {
	Temp        float64 `json:"temp"`
	Description string  `json:"description"`
}

// ConferenceDetail bundles a conference with the weather at its location.
// Weather is nil when no lookup is configured or the lookup failed.
type ConferenceDetail struct {
	Conference *Conference
	Weather    *Weather
}

// ConferenceRepository defines storage for conferences.
type ConferenceRepository interface {
	Create(ctx context.Context, c *Conference) error
	GetByID(ctx context.Context, id int64) (*Conference, error)
	List(ctx context.Context) ([]*Conference, error)
	ListByLocationID(ctx context.Context, locationID int64) ([]*Conference, error)
	Update(ctx context.Context, id int64, u ConferenceUpdate) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// ConferenceVORepository defines storage for conference mirrors.
type ConferenceVORepository interface {
	GetByID(ctx context.Context, id int64) (*ConferenceVO, error)
	GetByImportHref(ctx context.Context, href string) (*ConferenceVO, error)
	// Upsert inserts the mirror or refreshes its name when ImportHref already exists, and sets vo.ID.
	Upsert(ctx context.Context, vo *ConferenceVO) error
	// DeleteByImportHref removes the mirrors of the given hrefs and the attendees registered to them.
	DeleteByImportHref(ctx context.Context, hrefs ...string) (int64, error)
}

// ConferenceService defines conference use cases.
type ConferenceService interface {
	List(ctx context.Context) ([]*Conference, error)
	Create(ctx context.Context, c *Conference) error
	Get(ctx context.Context, id int64) (*Conference, error)
	GetDetail(ctx context.Context, id int64) (*ConferenceDetail, error)
	Update(ctx context.Context, id int64, u ConferenceUpdate) (*Conference, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ConferenceSummary is one entry of a remote conference listing.
type ConferenceSummary struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// ConferenceFetcher lists conferences from the monolith.
type ConferenceFetcher interface {
	FetchConferences(ctx context.Context) ([]ConferenceSummary, error)
}

// ConferenceSyncService refreshes local conference mirrors from the monolith.
type ConferenceSyncService interface {
	Sync(ctx context.Context) (int, error)
}
