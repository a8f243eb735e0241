package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"conferencego/internal/delivery/http/encoders"
	"conferencego/internal/delivery/http/helpers"
	"conferencego/internal/domain"
	"conferencego/internal/encoding"
)

// CreateAttendeeRequest is the request body for creating an attendee.
// Conference may name the conference instead of the path or query; when both
// are sent they must agree.
type CreateAttendeeRequest struct {
	Email       string  `json:"email" validate:"required,email,max=254"`
	Name        string  `json:"name" validate:"required,max=200"`
	CompanyName *string `json:"company_name" validate:"omitempty,max=200"`
	Conference  *int64  `json:"conference" validate:"omitempty,gt=0"`
}

// UpdateAttendeeRequest is the request body for PUT /api/attendees/{id}/. Omitted fields are unchanged.
// Conference is the id of the conference to move the attendee to.
type UpdateAttendeeRequest struct {
	Email       *string `json:"email" validate:"omitempty,email,max=254"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	CompanyName *string `json:"company_name" validate:"omitempty,max=200"`
	Conference  *int64  `json:"conference" validate:"omitempty,gt=0"`
}

// AttendeeListResponse is the body of an attendee listing.
type AttendeeListResponse struct {
	Attendees []*encoding.Object `json:"attendees"`
}

type AttendeeController struct {
	Logger  *slog.Logger
	Service domain.AttendeeService
}

func NewAttendeeController(logger *slog.Logger, svc domain.AttendeeService) *AttendeeController {
	return &AttendeeController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *AttendeeController) writeDetail(w http.ResponseWriter, r *http.Request, a *domain.Attendee) {
	obj, err := encoders.AttendeeDetail.Encode(a)
	if err != nil {
		serverError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, obj)
}

// ListAttendees godoc
// @Summary List attendees of a conference
// @Tags attendees
// @Produce json
// @Param conferenceID path int false "Conference ID (path form)"
// @Param conference query int false "Conference ID (query form)"
// @Success 200 {object} controllers.AttendeeListResponse
// @Failure 400 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.MessageResponse
// @Router /conferences/{conferenceID}/attendees/ [get]
// @Router /attendees/ [get]
func (c *AttendeeController) ListAttendees(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.ParentID(r, "conferenceID", "conference", nil)
	if !ok {
		helpers.WriteMessage(w, http.StatusBadRequest, msgInvalidConferenceID)
		return
	}
	attendees, err := c.Service.ListByConference(r.Context(), conferenceID)
	if err != nil {
		serverError(c.Logger, w, r, err)
		return
	}
	objs, err := encoding.EncodeList(encoders.AttendeeList, attendees)
	if err != nil {
		serverError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, AttendeeListResponse{Attendees: objs})
}

// CreateAttendee godoc
// @Summary Register an attendee for a conference
// @Description The conference must already be mirrored on this service. Answers 200 with the attendee detail.
// @Tags attendees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path int false "Conference ID (path form)"
// @Param conference query int false "Conference ID (query form)"
// @Param attendee body CreateAttendeeRequest true "Attendee"
// @Success 200 {object} map[string]any "attendee detail"
// @Failure 400 {object} helpers.MessageResponse "Invalid conference id, or a malformed body"
// @Failure 500 {object} helpers.MessageResponse
// @Router /conferences/{conferenceID}/attendees/ [post]
// @Router /attendees/ [post]
func (c *AttendeeController) CreateAttendee(w http.ResponseWriter, r *http.Request) {
	var req CreateAttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	conferenceID, ok := helpers.ParentID(r, "conferenceID", "conference", req.Conference)
	if !ok {
		helpers.WriteMessage(w, http.StatusBadRequest, msgInvalidConferenceID)
		return
	}
	a := &domain.Attendee{Email: req.Email, Name: req.Name, CompanyName: req.CompanyName}
	if err := c.Service.Create(r.Context(), conferenceID, a); err != nil {
		if errors.Is(err, domain.ErrInvalidConference) {
			helpers.WriteMessage(w, http.StatusBadRequest, msgInvalidConferenceID)
			return
		}
		serverError(c.Logger, w, r, err)
		return
	}
	c.writeDetail(w, r, a)
}

// GetAttendee godoc
// @Summary Get an attendee
// @Tags attendees
// @Produce json
// @Param id path int true "Attendee ID"
// @Success 200 {object} map[string]any "attendee detail"
// @Failure 404 {object} helpers.MessageResponse "Invalid attendee id"
// @Router /attendees/{id}/ [get]
func (c *AttendeeController) GetAttendee(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteMessage(w, http.StatusNotFound, msgInvalidAttendeeID)
		return
	}
	a, err := c.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteMessage(w, http.StatusNotFound, msgInvalidAttendeeID)
			return
		}
		serverError(c.Logger, w, r, err)
		return
	}
	c.writeDetail(w, r, a)
}

// UpdateAttendee godoc
// @Summary Update an attendee
// @Tags attendees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendee ID"
// @Param attendee body UpdateAttendeeRequest true "Fields to change"
// @Success 200 {object} map[string]any "attendee detail"
// @Failure 400 {object} helpers.MessageResponse
// @Failure 404 {object} helpers.MessageResponse "Invalid attendee id or Invalid conference id"
// @Router /attendees/{id}/ [put]
func (c *AttendeeController) UpdateAttendee(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteMessage(w, http.StatusNotFound, msgInvalidAttendeeID)
		return
	}
	var req UpdateAttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	a, err := c.Service.Update(r.Context(), id, domain.AttendeeChanges{
		Email:        req.Email,
		Name:         req.Name,
		CompanyName:  req.CompanyName,
		ConferenceID: req.Conference,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteMessage(w, http.StatusNotFound, msgInvalidAttendeeID)
		case errors.Is(err, domain.ErrInvalidConference):
			helpers.WriteMessage(w, http.StatusNotFound, msgInvalidConferenceID)
		default:
			serverError(c.Logger, w, r, err)
		}
		return
	}
	c.writeDetail(w, r, a)
}

// DeleteAttendee godoc
// @Summary Delete an attendee
// @Tags attendees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendee ID"
// @Success 200 {object} helpers.DeleteResponse
// @Failure 404 {object} helpers.MessageResponse "Invalid attendee id"
// @Router /attendees/{id}/ [delete]
func (c *AttendeeController) DeleteAttendee(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteMessage(w, http.StatusNotFound, msgInvalidAttendeeID)
		return
	}
	deleted, err := c.Service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteMessage(w, http.StatusNotFound, msgInvalidAttendeeID)
			return
		}
		serverError(c.Logger, w, r, err)
		return
	}
	helpers.WriteDeleted(w, deleted)
}
