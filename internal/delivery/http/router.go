package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"conferencego/internal/delivery/http/controllers"
	"conferencego/internal/delivery/http/helpers"
	"conferencego/internal/delivery/http/middleware"
	"conferencego/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger reports whether the backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterConfig carries the controllers and optional infrastructure served by NewRouter.
type RouterConfig struct {
	Logger        *slog.Logger
	Attendees     *controllers.AttendeeController
	Presentations *controllers.PresentationController
	Conferences   *controllers.ConferenceController
	Locations     *controllers.LocationController

	// Verifier guards every write route when set; nil leaves the API open.
	Verifier domain.TokenVerifier
	// Metrics is served on /metrics when set.
	Metrics http.Handler
	// DB is pinged by /healthz when set.
	DB Pinger
}

// NewRouter initializes the HTTP router with all application routes.
// Every resource path is served with and without its trailing slash.
func NewRouter(cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	open := func(h http.HandlerFunc) http.HandlerFunc { return h }
	protect := open
	if cfg.Verifier != nil {
		protect = middleware.RequireAuth(cfg.Verifier, cfg.Logger)
	}
	route := func(method, path string, h http.HandlerFunc) {
		mux.HandleFunc(method+" "+path+"{$}", h)
		mux.HandleFunc(method+" "+strings.TrimSuffix(path, "/"), h)
	}

	// Locations
	route("GET", "/api/locations/", cfg.Locations.ListLocations)
	route("POST", "/api/locations/", protect(cfg.Locations.CreateLocation))
	route("GET", "/api/locations/{id}/", cfg.Locations.GetLocation)
	route("PUT", "/api/locations/{id}/", protect(cfg.Locations.UpdateLocation))
	route("DELETE", "/api/locations/{id}/", protect(cfg.Locations.DeleteLocation))

	// Conferences
	route("GET", "/api/conferences/", cfg.Conferences.ListConferences)
	route("POST", "/api/conferences/", protect(cfg.Conferences.CreateConference))
	route("GET", "/api/conferences/{id}/", cfg.Conferences.GetConference)
	route("PUT", "/api/conferences/{id}/", protect(cfg.Conferences.UpdateConference))
	route("DELETE", "/api/conferences/{id}/", protect(cfg.Conferences.DeleteConference))

	// Presentations
	route("GET", "/api/conferences/{conferenceID}/presentations/", cfg.Presentations.ListPresentations)
	route("POST", "/api/conferences/{conferenceID}/presentations/", protect(cfg.Presentations.CreatePresentation))
	route("GET", "/api/presentations/", cfg.Presentations.ListPresentations)
	route("POST", "/api/presentations/", protect(cfg.Presentations.CreatePresentation))
	route("GET", "/api/presentations/{id}/", cfg.Presentations.GetPresentation)
	route("PUT", "/api/presentations/{id}/", protect(cfg.Presentations.UpdatePresentation))
	route("DELETE", "/api/presentations/{id}/", protect(cfg.Presentations.DeletePresentation))
	route("PUT", "/api/presentations/{id}/approval/", protect(cfg.Presentations.ApprovePresentation))
	route("PUT", "/api/presentations/{id}/rejection/", protect(cfg.Presentations.RejectPresentation))

	// Attendees
	route("GET", "/api/conferences/{conferenceID}/attendees/", cfg.Attendees.ListAttendees)
	route("POST", "/api/conferences/{conferenceID}/attendees/", protect(cfg.Attendees.CreateAttendee))
	route("GET", "/api/attendees/", cfg.Attendees.ListAttendees)
	route("POST", "/api/attendees/", protect(cfg.Attendees.CreateAttendee))
	route("GET", "/api/attendees/{id}/", cfg.Attendees.GetAttendee)
	route("PUT", "/api/attendees/{id}/", protect(cfg.Attendees.UpdateAttendee))
	route("DELETE", "/api/attendees/{id}/", protect(cfg.Attendees.DeleteAttendee))

	// Operations
	mux.HandleFunc("GET /healthz", healthz(cfg.DB))
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				helpers.WriteMessage(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		helpers.WriteMessage(w, http.StatusOK, "ok")
	}
}
