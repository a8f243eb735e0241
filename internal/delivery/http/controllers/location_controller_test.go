package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"conferencego/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLocationService implements domain.LocationService for handler tests.
type fakeLocationService struct {
	locations   []*domain.Location
	location    *domain.Location
	deleted     bool
	err         error
	lastState   string
	lastChanges domain.LocationChanges
}

func (f *fakeLocationService) List(ctx context.Context) ([]*domain.Location, error) {
	return f.locations, f.err
}

func (f *fakeLocationService) Create(ctx context.Context, l *domain.Location, stateAbbreviation string) error {
	f.lastState = stateAbbreviation
	if f.err != nil {
		return f.err
	}
	l.ID = 3
	l.Created = time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	l.Updated = l.Created
	l.PictureURL = ptr("https://images.pexels.com/photos/1.jpeg")
	l.State = &domain.State{ID: 6, Name: "Colorado", Abbreviation: stateAbbreviation}
	return nil
}

func (f *fakeLocationService) Get(ctx context.Context, id int64) (*domain.Location, error) {
	return f.location, f.err
}

func (f *fakeLocationService) Update(ctx context.Context, id int64, ch domain.LocationChanges) (*domain.Location, error) {
	f.lastChanges = ch
	return f.location, f.err
}

func (f *fakeLocationService) Delete(ctx context.Context, id int64) (bool, error) {
	return f.deleted, f.err
}

func TestLocationController_ListLocations(t *testing.T) {
	ctrl := NewLocationController(testLogger, &fakeLocationService{locations: []*domain.Location{
		{ID: 3, Name: "Convention Center"},
	}})
	rr := call(ctrl.ListLocations, http.MethodGet, "/api/locations/", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"locations":[{"name":"Convention Center","href":"/api/locations/3/"}]}`, rr.Body.String())
}

func TestLocationController_CreateLocation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success",
			body:       `{"name":"Convention Center","city":"Denver","room_count":12,"state":"CO"}`,
			wantStatus: http.StatusOK,
			wantBody: `{"name":"Convention Center","city":"Denver","room_count":12,"created":"2025-01-02T00:00:00Z",` +
				`"updated":"2025-01-02T00:00:00Z","picture_url":"https://images.pexels.com/photos/1.jpeg","state":"CO"}`,
		},
		{
			name:       "unknown state",
			body:       `{"name":"Convention Center","city":"Denver","room_count":12,"state":"ZZ"}`,
			fakeErr:    domain.ErrInvalidState,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"Invalid state abbreviation"}`,
		},
		{
			name:       "state must be an abbreviation",
			body:       `{"name":"Convention Center","city":"Denver","state":"Colorado"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"state must be 2 characters"}`,
		},
		{
			name:       "picture lookup failed",
			body:       `{"name":"Convention Center","city":"Denver","state":"CO"}`,
			fakeErr:    errors.New("pexels: status 503"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewLocationController(testLogger, &fakeLocationService{err: tt.fakeErr})
			rr := call(ctrl.CreateLocation, http.MethodPost, "/api/locations/", tt.body, nil)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestLocationController_UpdateLocation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		fakeErr     error
		wantStatus  int
		wantMessage string
	}{
		{name: "success", body: `{"state":"TX","room_count":8}`, wantStatus: http.StatusOK},
		{name: "unknown location", body: `{"name":"x"}`, fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantMessage: "Invalid location id"},
		{name: "unknown state", body: `{"state":"ZZ"}`, fakeErr: domain.ErrInvalidState, wantStatus: http.StatusNotFound, wantMessage: "Invalid state abbreviation"},
		{name: "bad picture url", body: `{"picture_url":"not a url"}`, wantStatus: http.StatusBadRequest, wantMessage: "picture_url failed url validation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeLocationService{
				err:      tt.fakeErr,
				location: &domain.Location{ID: 3, Name: "Convention Center", RoomCount: 8, State: &domain.State{Abbreviation: "TX"}},
			}
			ctrl := NewLocationController(testLogger, fake)
			rr := call(ctrl.UpdateLocation, http.MethodPut, "/api/locations/3/", tt.body, map[string]string{"id": "3"})

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeMessage(t, rr))
				return
			}
			assert.Equal(t, ptr("TX"), fake.lastChanges.State)
			assert.Equal(t, ptr(8), fake.lastChanges.RoomCount)
			assert.Contains(t, rr.Body.String(), `"state":"TX"`)
		})
	}
}

func TestLocationController_GetAndDeleteLocation(t *testing.T) {
	ctrl := NewLocationController(testLogger, &fakeLocationService{err: domain.ErrNotFound})
	rr := call(ctrl.GetLocation, http.MethodGet, "/api/locations/3/", "", map[string]string{"id": "3"})
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Invalid location id", decodeMessage(t, rr))

	rr = call(ctrl.DeleteLocation, http.MethodDelete, "/api/locations/3/", "", map[string]string{"id": "3"})
	require.Equal(t, http.StatusNotFound, rr.Code)

	ctrl = NewLocationController(testLogger, &fakeLocationService{deleted: true})
	rr = call(ctrl.DeleteLocation, http.MethodDelete, "/api/locations/3/", "", map[string]string{"id": "3"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"deleted":true}`, rr.Body.String())
}
