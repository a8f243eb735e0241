package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"conferencego/internal/delivery/http/encoders"
	"conferencego/internal/delivery/http/helpers"
	"conferencego/internal/domain"
	"conferencego/internal/encoding"
)

// CreateConferenceRequest is the request body for creating a conference. Location is a location id.
type CreateConferenceRequest struct {
	Name             string    `json:"name" validate:"required,max=200"`
	Description      string    `json:"description"`
	MaxPresentations int       `json:"max_presentations" validate:"gte=0"`
	MaxAttendees     int       `json:"max_attendees" validate:"gte=0"`
	Starts           time.Time `json:"starts" validate:"required"`
	Ends             time.Time `json:"ends" validate:"required"`
	Location         int64     `json:"location" validate:"required,gt=0"`
}

// Validate implements helpers.Validator.
func (c CreateConferenceRequest) Validate() []string {
	if c.Ends.Before(c.Starts) {
		return []string{"ends must not be before starts"}
	}
	return nil
}

// UpdateConferenceRequest is the request body for PUT /api/conferences/{id}/. Omitted fields are unchanged.
type UpdateConferenceRequest struct {
	Name             *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Description      *string    `json:"description"`
	MaxPresentations *int       `json:"max_presentations" validate:"omitempty,gte=0"`
	MaxAttendees     *int       `json:"max_attendees" validate:"omitempty,gte=0"`
	Starts           *time.Time `json:"starts"`
	Ends             *time.Time `json:"ends"`
	Location         *int64     `json:"location" validate:"omitempty,gt=0"`
}

// Validate implements helpers.Validator.
func (c UpdateConferenceRequest) Validate() []string {
	if c.Starts != nil && c.Ends != nil && c.Ends.Before(*c.Starts) {
		return []string{"ends must not be before starts"}
	}
	return nil
}

// ConferenceListResponse is the body of the conference listing.
type ConferenceListResponse struct {
	Conferences []*encoding.Object `json:"conferences"`
}

// ConferenceDetailResponse is the body of GET /api/conferences/{id}/.
// Weather is null when no lookup is configured or it failed.
type ConferenceDetailResponse struct {
	Conference *encoding.Object `json:"conference"`
	Weather    *domain.Weather  `json:"weather"`
}

type ConferenceController struct {
	Logger  *slog.Logger
	Service domain.ConferenceService
}

func NewConferenceController(logger *slog.Logger, svc domain.ConferenceService) *ConferenceController {
	return &ConferenceController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *ConferenceController) writeDetail(w http.ResponseWriter, r *http.Request, conf *domain.Conference) {
	obj, err := encoders.ConferenceDetail.Encode(conf)
	if err != nil {
		serverError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, obj)
}

// ListConferences godoc
// @Summary List conferences
// @Tags conferences
// @Produce json
// @Success 200 {object} controllers.ConferenceListResponse
// @Router /conferences/ [get]
func (c *ConferenceController) ListConferences(w http.ResponseWriter, r *http.Request) {
	conferences, err := c.Service.List(r.Context())
	if err != nil {
		serverError(c.Logger, w, r, err)
		return
	}
	objs, err := encoding.EncodeList(encoders.ConferenceList, conferences)
	if err != nil {
		serverError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ConferenceListResponse{Conferences: objs})
}

// CreateConference godoc
// @Summary Create a conference
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conference body CreateConferenceRequest true "Conference"
// @Success 200 {object} map[string]any "conference detail"
// @Failure 400 {object} helpers.MessageResponse "Invalid location id, or a malformed body"
// @Router /conferences/ [post]
func (c *ConferenceController) CreateConference(w http.ResponseWriter, r *http.Request) {
	var req CreateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	conf := &domain.Conference{
		Name:             req.Name,
		Description:      req.Description,
		MaxPresentations: req.MaxPresentations,
		MaxAttendees:     req.MaxAttendees,
		Starts:           req.Starts,
		Ends:             req.Ends,
		LocationID:       req.Location,
	}
	if err := c.Service.Create(r.Context(), conf); err != nil {
		if errors.Is(err, domain.ErrInvalidLocation) {
			helpers.WriteMessage(w, http.StatusBadRequest, msgInvalidLocationID)
			return
		}
		serverError(c.Logger, w, r, err)
		return
	}
	c.writeDetail(w, r, conf)
}

// GetConference godoc
// @Summary Get a conference with the current weather at its location
// @Tags conferences
// @Produce json
// @Param id path int true "Conference ID"
// @Success 200 {object} controllers.ConferenceDetailResponse
// @Failure 404 {object} helpers.MessageResponse "Invalid conference id"
// @Router /conferences/{id}/ [get]
func (c *ConferenceController) GetConference(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteMessage(w, http.StatusNotFound, msgInvalidConferenceID)
		return
	}
	detail, err := c.Service.GetDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteMessage(w, http.StatusNotFound, msgInvalidConferenceID)
			return
		}
		serverError(c.Logger, w, r, err)
		return
	}
	obj, err := encoders.ConferenceDetail.Encode(detail.Conference)
	if err != nil {
		serverError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ConferenceDetailResponse{Conference: obj, Weather: detail.Weather})
}

// UpdateConference godoc
// @Summary Update a conference
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conference ID"
// @Param conference body UpdateConferenceRequest true "Fields to change"
// @Success 200 {object} map[string]any "conference detail"
// @Failure 404 {object} helpers.MessageResponse "Invalid conference id or Invalid location id"
// @Router /conferences/{id}/ [put]
func (c *ConferenceController) UpdateConference(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteMessage(w, http.StatusNotFound, msgInvalidConferenceID)
		return
	}
	var req UpdateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	conf, err := c.Service.Update(r.Context(), id, domain.ConferenceUpdate{
		Name:             req.Name,
		Description:      req.Description,
		MaxPresentations: req.MaxPresentations,
		MaxAttendees:     req.MaxAttendees,
		Starts:           req.Starts,
		Ends:             req.Ends,
		LocationID:       req.Location,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteMessage(w, http.StatusNotFound, msgInvalidConferenceID)
		case errors.Is(err, domain.ErrInvalidLocation):
			helpers.WriteMessage(w, http.StatusNotFound, msgInvalidLocationID)
		default:
			serverError(c.Logger, w, r, err)
		}
		return
	}
	c.writeDetail(w, r, conf)
}

// DeleteConference godoc
// @Summary Delete a conference
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conference ID"
// @Success 200 {object} helpers.DeleteResponse
// @Failure 404 {object} helpers.MessageResponse "Invalid conference id"
// @Router /conferences/{id}/ [delete]
func (c *ConferenceController) DeleteConference(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteMessage(w, http.StatusNotFound, msgInvalidConferenceID)
		return
	}
	deleted, err := c.Service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteMessage(w, http.StatusNotFound, msgInvalidConferenceID)
			return
		}
		serverError(c.Logger, w, r, err)
		return
	}
	helpers.WriteDeleted(w, deleted)
}
