package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"conferencego/internal/delivery/http/encoders"
	"conferencego/internal/delivery/http/helpers"
	"conferencego/internal/domain"
	"conferencego/internal/encoding"
)

// CreatePresentationRequest is the request body for submitting a presentation.
// Status is always SUBMITTED on creation and cannot be supplied. Conference
// may name the conference instead of the path or query; when both are sent
// they must agree.
type CreatePresentationRequest struct {
	PresenterName  string  `json:"presenter_name" validate:"required,max=150"`
	CompanyName    *string `json:"company_name" validate:"omitempty,max=150"`
	PresenterEmail string  `json:"presenter_email" validate:"required,email,max=254"`
	Title          string  `json:"title" validate:"required,max=200"`
	Synopsis       string  `json:"synopsis" validate:"required"`
	Conference     *int64  `json:"conference" validate:"omitempty,gt=0"`
}

// UpdatePresentationRequest is the request body for PUT /api/presentations/{id}/.
// Status is a status name; Conference is a conference id.
type UpdatePresentationRequest struct {
	PresenterName  *string `json:"presenter_name" validate:"omitempty,min=1,max=150"`
	CompanyName    *string `json:"company_name" validate:"omitempty,max=150"`
	PresenterEmail *string `json:"presenter_email" validate:"omitempty,email,max=254"`
	Title          *string `json:"title" validate:"omitempty,min=1,max=200"`
	Synopsis       *string `json:"synopsis"`
	Status         *string `json:"status"`
	Conference     *int64  `json:"conference"`
}

// PresentationListResponse is the body of a presentation listing.
type PresentationListResponse struct {
	Presentations []*encoding.Object `json:"presentations"`
}

type PresentationController struct {
	Logger  *slog.Logger
	Service domain.PresentationService
}

func NewPresentationController(logger *slog.Logger, svc domain.PresentationService) *PresentationController {
	return &PresentationController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *PresentationController) writeDetail(w http.ResponseWriter, r *http.Request, p *domain.Presentation) {
	obj, err := encoders.PresentationDetail.Encode(p)
	if err != nil {
		serverError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, obj)
}

// ListPresentations godoc
// @Summary List presentations of a conference
// @Tags presentations
// @Produce json
// @Param conferenceID path int false "Conference ID (path form)"
// @Param conference query int false "Conference ID (query form)"
// @Success 200 {object} controllers.PresentationListResponse
// @Failure 400 {object} helpers.MessageResponse
// @Router /conferences/{conferenceID}/presentations/ [get]
// @Router /presentations/ [get]
func (c *PresentationController) ListPresentations(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.ParentID(r, "conferenceID", "conference", nil)
	if !ok {
		helpers.WriteMessage(w, http.StatusBadRequest, msgInvalidConferenceID)
		return
	}
	presentations, err := c.Service.ListByConference(r.Context(), conferenceID)
	if err != nil {
		serverError(c.Logger, w, r, err)
		return
	}
	objs, err := encoding.EncodeList(encoders.PresentationList, presentations)
	if err != nil {
		serverError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, PresentationListResponse{Presentations: objs})
}

// CreatePresentation godoc
// @Summary Submit a presentation to a conference
// @Tags presentations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path int false "Conference ID (path form)"
// @Param conference query int false "Conference ID (query form)"
// @Param presentation body CreatePresentationRequest true "Presentation"
// @Success 200 {object} map[string]any "presentation detail"
// @Failure 400 {object} helpers.MessageResponse "Invalid conference id, or a malformed body"
// @Router /conferences/{conferenceID}/presentations/ [post]
// @Router /presentations/ [post]
func (c *PresentationController) CreatePresentation(w http.ResponseWriter, r *http.Request) {
	var req CreatePresentationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	conferenceID, ok := helpers.ParentID(r, "conferenceID", "conference", req.Conference)
	if !ok {
		helpers.WriteMessage(w, http.StatusBadRequest, msgInvalidConferenceID)
		return
	}
	p := &domain.Presentation{
		PresenterName:  req.PresenterName,
		CompanyName:    req.CompanyName,
		PresenterEmail: req.PresenterEmail,
		Title:          req.Title,
		Synopsis:       req.Synopsis,
	}
	if err := c.Service.Create(r.Context(), conferenceID, p); err != nil {
		if errors.Is(err, domain.ErrInvalidConference) {
			helpers.WriteMessage(w, http.StatusBadRequest, msgInvalidConferenceID)
			return
		}
		serverError(c.Logger, w, r, err)
		return
	}
	c.writeDetail(w, r, p)
}

// GetPresentation godoc
// @Summary Get a presentation
// @Tags presentations
// @Produce json
// @Param id path int true "Presentation ID"
// @Success 200 {object} map[string]any "presentation detail"
// @Failure 404 {object} helpers.MessageResponse "Invalid Presentation id"
// @Router /presentations/{id}/ [get]
func (c *PresentationController) GetPresentation(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteMessage(w, http.StatusNotFound, msgInvalidPresentationID)
		return
	}
	p, err := c.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteMessage(w, http.StatusNotFound, msgInvalidPresentationID)
			return
		}
		serverError(c.Logger, w, r, err)
		return
	}
	c.writeDetail(w, r, p)
}

// UpdatePresentation godoc
// @Summary Update a presentation
// @Description Applies the supplied fields. status is looked up by name and conference by id; an unknown one leaves the record unchanged.
// @Tags presentations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Presentation ID"
// @Param presentation body UpdatePresentationRequest true "Fields to change"
// @Success 200 {object} map[string]any "presentation detail"
// @Failure 404 {object} helpers.MessageResponse "Invalid Presentation id, Invalid Status or Invalid Conference ID"
// @Router /presentations/{id}/ [put]
func (c *PresentationController) UpdatePresentation(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteMessage(w, http.StatusNotFound, msgInvalidPresentationID)
		return
	}
	var req UpdatePresentationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, err := c.Service.Update(r.Context(), id, domain.PresentationChanges{
		PresenterName:  req.PresenterName,
		CompanyName:    req.CompanyName,
		PresenterEmail: req.PresenterEmail,
		Title:          req.Title,
		Synopsis:       req.Synopsis,
		Status:         req.Status,
		ConferenceID:   req.Conference,
	})
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	c.writeDetail(w, r, p)
}

// ApprovePresentation godoc
// @Summary Approve a presentation
// @Description Sets the status to APPROVED and emails the presenter.
// @Tags presentations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Presentation ID"
// @Success 200 {object} map[string]any "presentation detail"
// @Failure 404 {object} helpers.MessageResponse "Invalid Presentation id"
// @Router /presentations/{id}/approval/ [put]
func (c *PresentationController) ApprovePresentation(w http.ResponseWriter, r *http.Request) {
	c.decide(w, r, c.Service.Approve)
}

// RejectPresentation godoc
// @Summary Reject a presentation
// @Description Sets the status to REJECTED and emails the presenter.
// @Tags presentations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Presentation ID"
// @Success 200 {object} map[string]any "presentation detail"
// @Failure 404 {object} helpers.MessageResponse "Invalid Presentation id"
// @Router /presentations/{id}/rejection/ [put]
func (c *PresentationController) RejectPresentation(w http.ResponseWriter, r *http.Request) {
	c.decide(w, r, c.Service.Reject)
}

func (c *PresentationController) decide(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, id int64) (*domain.Presentation, error),
) {
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteMessage(w, http.StatusNotFound, msgInvalidPresentationID)
		return
	}
	p, err := fn(r.Context(), id)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	c.writeDetail(w, r, p)
}

// DeletePresentation godoc
// @Summary Delete a presentation
// @Tags presentations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Presentation ID"
// @Success 200 {object} helpers.DeleteResponse
// @Failure 404 {object} helpers.MessageResponse "Invalid Presentation id"
// @Router /presentations/{id}/ [delete]
func (c *PresentationController) DeletePresentation(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteMessage(w, http.StatusNotFound, msgInvalidPresentationID)
		return
	}
	deleted, err := c.Service.Delete(r.Context(), id)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteDeleted(w, deleted)
}

func (c *PresentationController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteMessage(w, http.StatusNotFound, msgInvalidPresentationID)
	case errors.Is(err, domain.ErrInvalidStatus):
		helpers.WriteMessage(w, http.StatusNotFound, msgInvalidStatus)
	case errors.Is(err, domain.ErrInvalidConference):
		helpers.WriteMessage(w, http.StatusNotFound, msgInvalidConference)
	default:
		serverError(c.Logger, w, r, err)
	}
}
