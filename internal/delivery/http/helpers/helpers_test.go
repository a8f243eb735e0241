package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,max=5"`
	Seats int    `json:"seats"`
}

func (s signupRequest) Validate() []string {
	if s.Seats < 0 {
		return []string{"seats cannot be negative"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantOK      bool
		wantMessage string
	}{
		{name: "valid", body: `{"email":"a@b.co","name":"Ann"}`, wantOK: true},
		{name: "empty body", body: ``, wantMessage: "request body is empty"},
		{name: "malformed", body: `{"email":`, wantMessage: "unexpected EOF"},
		{name: "unknown field", body: `{"email":"a@b.co","name":"Ann","id":3}`, wantMessage: `unknown field "id"`},
		{name: "tag rules use json names", body: `{"email":"nope","name":"Annabel"}`, wantMessage: "email must be a valid email address; name must be at most 5 characters"},
		{name: "missing field", body: `{"name":"Ann"}`, wantMessage: "email is required"},
		{name: "cross-field rule", body: `{"email":"a@b.co","name":"Ann","seats":-1}`, wantMessage: "seats cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			var dest signupRequest
			ok := DecodeAndValidate(rr, req, &dest)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, "Ann", dest.Name)
				return
			}
			require.Equal(t, http.StatusBadRequest, rr.Code)
			var body MessageResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Contains(t, body.Message, tt.wantMessage)
		})
	}
}

func TestParentID(t *testing.T) {
	mux := http.NewServeMux()
	var got int64
	var ok bool
	handler := func(w http.ResponseWriter, r *http.Request) {
		got, ok = ParentID(r, "conferenceID", "conference", nil)
	}
	mux.HandleFunc("GET /api/conferences/{conferenceID}/attendees/", handler)
	mux.HandleFunc("GET /api/attendees/", handler)

	tests := []struct {
		url    string
		want   int64
		wantOK bool
	}{
		{"/api/conferences/7/attendees/", 7, true},
		{"/api/attendees/?conference=9", 9, true},
		{"/api/attendees/", 0, false},
		{"/api/attendees/?conference=abc", 0, false},
		{"/api/conferences/-1/attendees/", 0, false},
		{"/api/conferences/7/attendees/?conference=7", 7, true},
		{"/api/conferences/7/attendees/?conference=9", 0, false},
	}
	for _, tt := range tests {
		mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.url, nil))
		assert.Equal(t, tt.wantOK, ok, tt.url)
		assert.Equal(t, tt.want, got, tt.url)
	}
}

func TestParentID_Body(t *testing.T) {
	id := func(v int64) *int64 { return &v }

	tests := []struct {
		name   string
		url    string
		body   *int64
		want   int64
		wantOK bool
	}{
		{name: "body only", url: "/api/attendees/", body: id(7), want: 7, wantOK: true},
		{name: "body agrees with path", url: "/api/conferences/7/attendees/", body: id(7), want: 7, wantOK: true},
		{name: "body agrees with query", url: "/api/attendees/?conference=7", body: id(7), want: 7, wantOK: true},
		{name: "body disagrees with path", url: "/api/conferences/7/attendees/", body: id(8)},
		{name: "body disagrees with query", url: "/api/attendees/?conference=7", body: id(8)},
		{name: "non-positive body", url: "/api/attendees/", body: id(0)},
		{name: "invalid query beside valid body", url: "/api/attendees/?conference=x", body: id(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			var got int64
			var ok bool
			handler := func(w http.ResponseWriter, r *http.Request) {
				got, ok = ParentID(r, "conferenceID", "conference", tt.body)
			}
			mux.HandleFunc("POST /api/conferences/{conferenceID}/attendees/", handler)
			mux.HandleFunc("POST /api/attendees/", handler)

			mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, tt.url, nil))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteDeleted(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteDeleted(rr, true)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"deleted":true}`, rr.Body.String())
}
