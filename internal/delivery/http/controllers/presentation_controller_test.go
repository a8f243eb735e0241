package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"conferencego/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePresentationService implements domain.PresentationService for handler tests.
type fakePresentationService struct {
	presentations []*domain.Presentation
	presentation  *domain.Presentation
	deleted       bool
	err           error
	approved      []int64
	rejected      []int64
	lastChanges   domain.PresentationChanges
}

func (f *fakePresentationService) ListByConference(ctx context.Context, conferenceID int64) ([]*domain.Presentation, error) {
	return f.presentations, f.err
}

func (f *fakePresentationService) Create(ctx context.Context, conferenceID int64, p *domain.Presentation) error {
	if f.err != nil {
		return f.err
	}
	p.ID = 4
	p.Created = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	p.Status = &domain.Status{ID: 1, Name: domain.StatusSubmitted}
	p.Conference = &domain.Conference{ID: conferenceID, Name: "GopherCon"}
	return nil
}

func (f *fakePresentationService) Get(ctx context.Context, id int64) (*domain.Presentation, error) {
	return f.presentation, f.err
}

func (f *fakePresentationService) Update(ctx context.Context, id int64, ch domain.PresentationChanges) (*domain.Presentation, error) {
	f.lastChanges = ch
	return f.presentation, f.err
}

func (f *fakePresentationService) Delete(ctx context.Context, id int64) (bool, error) {
	return f.deleted, f.err
}

func (f *fakePresentationService) Approve(ctx context.Context, id int64) (*domain.Presentation, error) {
	f.approved = append(f.approved, id)
	return f.presentation, f.err
}

func (f *fakePresentationService) Reject(ctx context.Context, id int64) (*domain.Presentation, error) {
	f.rejected = append(f.rejected, id)
	return f.presentation, f.err
}

func TestPresentationController_ListPresentations(t *testing.T) {
	fake := &fakePresentationService{presentations: []*domain.Presentation{
		{ID: 2, Title: "Channels", Status: &domain.Status{Name: domain.StatusApproved}},
	}}
	ctrl := NewPresentationController(testLogger, fake)

	rr := call(ctrl.ListPresentations, http.MethodGet, "/api/conferences/7/presentations/", "",
		map[string]string{"conferenceID": "7"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t,
		`{"presentations":[{"title":"Channels","status":"APPROVED","href":"/api/presentations/2/"}]}`,
		rr.Body.String())

	rr = call(ctrl.ListPresentations, http.MethodGet, "/api/presentations/?conference=x", "", nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid conference id", decodeMessage(t, rr))
}

func TestPresentationController_CreatePresentation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success is submitted",
			body:       `{"presenter_name":"Rob","presenter_email":"rob@example.com","title":"Go","synopsis":"All about Go"}`,
			wantStatus: http.StatusOK,
			wantBody: `{"presenter_name":"Rob","company_name":null,"presenter_email":"rob@example.com","title":"Go",` +
				`"synopsis":"All about Go","created":"2025-04-01T09:00:00Z","status":"SUBMITTED",` +
				`"conference":{"name":"GopherCon","href":"/api/conferences/7/"}}`,
		},
		{
			name:       "status cannot be supplied",
			body:       `{"presenter_name":"Rob","presenter_email":"rob@example.com","title":"Go","synopsis":"x","status":"APPROVED"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"json: unknown field \"status\""}`,
		},
		{
			name:       "missing title",
			body:       `{"presenter_name":"Rob","presenter_email":"rob@example.com","synopsis":"x"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"title is required"}`,
		},
		{
			name:       "unknown conference",
			body:       `{"presenter_name":"Rob","presenter_email":"rob@example.com","title":"Go","synopsis":"x"}`,
			fakeErr:    domain.ErrInvalidConference,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"Invalid conference id"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewPresentationController(testLogger, &fakePresentationService{err: tt.fakeErr})
			rr := call(ctrl.CreatePresentation, http.MethodPost, "/api/conferences/7/presentations/", tt.body,
				map[string]string{"conferenceID": "7"})

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestPresentationController_CreatePresentation_ConferenceInBody(t *testing.T) {
	const fields = `"presenter_name":"Rob","presenter_email":"rob@example.com","title":"Go","synopsis":"x"`

	tests := []struct {
		name       string
		target     string
		pathValues map[string]string
		body       string
		wantStatus int
		wantHref   string
	}{
		{
			name:       "body only",
			target:     "/api/presentations/",
			body:       `{` + fields + `,"conference":7}`,
			wantStatus: http.StatusOK,
			wantHref:   "/api/conferences/7/",
		},
		{
			name:       "body matches path",
			target:     "/api/conferences/7/presentations/",
			pathValues: map[string]string{"conferenceID": "7"},
			body:       `{` + fields + `,"conference":7}`,
			wantStatus: http.StatusOK,
			wantHref:   "/api/conferences/7/",
		},
		{
			name:       "body conflicts with query",
			target:     "/api/presentations/?conference=7",
			body:       `{` + fields + `,"conference":9}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewPresentationController(testLogger, &fakePresentationService{})
			rr := call(ctrl.CreatePresentation, http.MethodPost, tt.target, tt.body, tt.pathValues)

			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantHref == "" {
				assert.Equal(t, "Invalid conference id", decodeMessage(t, rr))
				return
			}
			var got struct {
				Conference struct {
					Href string `json:"href"`
				} `json:"conference"`
			}
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
			assert.Equal(t, tt.wantHref, got.Conference.Href)
		})
	}
}

func TestPresentationController_UpdatePresentation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		fakeErr     error
		wantStatus  int
		wantMessage string
	}{
		{name: "success", body: `{"status":"APPROVED","conference":3}`, wantStatus: http.StatusOK},
		{name: "unknown presentation", body: `{"title":"x"}`, fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantMessage: "Invalid Presentation id"},
		{name: "unknown status", body: `{"status":"PENDING"}`, fakeErr: domain.ErrInvalidStatus, wantStatus: http.StatusNotFound, wantMessage: "Invalid Status"},
		{name: "unknown conference", body: `{"conference":99}`, fakeErr: domain.ErrInvalidConference, wantStatus: http.StatusNotFound, wantMessage: "Invalid Conference ID"},
		{name: "wrapped store error", body: `{"title":"x"}`, fakeErr: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantMessage: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakePresentationService{
				err: tt.fakeErr,
				presentation: &domain.Presentation{
					ID: 4, Title: "Go", Status: &domain.Status{Name: domain.StatusApproved},
					Conference: &domain.Conference{ID: 3, Name: "GopherCon"},
				},
			}
			ctrl := NewPresentationController(testLogger, fake)
			rr := call(ctrl.UpdatePresentation, http.MethodPut, "/api/presentations/4/", tt.body, map[string]string{"id": "4"})

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeMessage(t, rr))
				return
			}
			assert.Equal(t, ptr("APPROVED"), fake.lastChanges.Status)
			assert.Equal(t, ptr(int64(3)), fake.lastChanges.ConferenceID)
			assert.Contains(t, rr.Body.String(), `"status":"APPROVED"`)
		})
	}
}

func TestPresentationController_ApproveReject(t *testing.T) {
	fake := &fakePresentationService{presentation: &domain.Presentation{
		ID: 4, Title: "Go", Status: &domain.Status{Name: domain.StatusRejected},
	}}
	ctrl := NewPresentationController(testLogger, fake)

	rr := call(ctrl.RejectPresentation, http.MethodPut, "/api/presentations/4/rejection/", "", map[string]string{"id": "4"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"REJECTED"`)
	assert.Equal(t, []int64{4}, fake.rejected)
	assert.Empty(t, fake.approved)

	rr = call(ctrl.ApprovePresentation, http.MethodPut, "/api/presentations/4/approval/", "", map[string]string{"id": "4"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []int64{4}, fake.approved)

	fake.err = domain.ErrNotFound
	rr = call(ctrl.ApprovePresentation, http.MethodPut, "/api/presentations/9/approval/", "", map[string]string{"id": "9"})
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Invalid Presentation id", decodeMessage(t, rr))

	rr = call(ctrl.ApprovePresentation, http.MethodPut, "/api/presentations/0/approval/", "", map[string]string{"id": "0"})
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, []int64{4, 9}, fake.approved, "an unparsable id never reaches the service")
}

func TestPresentationController_DeletePresentation(t *testing.T) {
	ctrl := NewPresentationController(testLogger, &fakePresentationService{deleted: true})
	rr := call(ctrl.DeletePresentation, http.MethodDelete, "/api/presentations/4/", "", map[string]string{"id": "4"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"deleted":true}`, rr.Body.String())

	ctrl = NewPresentationController(testLogger, &fakePresentationService{err: domain.ErrNotFound})
	rr = call(ctrl.GetPresentation, http.MethodGet, "/api/presentations/4/", "", map[string]string{"id": "4"})
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Invalid Presentation id", decodeMessage(t, rr))
}
