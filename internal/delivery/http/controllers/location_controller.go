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

// CreateLocationRequest is the request body for creating a location. State is a two-letter abbreviation.
// The picture is looked up from the city and state.
type CreateLocationRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	City      string `json:"city" validate:"required,max=200"`
	RoomCount int    `json:"room_count" validate:"gte=0"`
	State     string `json:"state" validate:"required,len=2"`
}

// UpdateLocationRequest is the request body for PUT /api/locations/{id}/. Omitted fields are unchanged.
type UpdateLocationRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	City       *string `json:"city" validate:"omitempty,min=1,max=200"`
	RoomCount  *int    `json:"room_count" validate:"omitempty,gte=0"`
	PictureURL *string `json:"picture_url" validate:"omitempty,url"`
	State      *string `json:"state" validate:"omitempty,len=2"`
}

// LocationListResponse is the body of the location listing.
type LocationListResponse struct {
	Locations []*encoding.Object `json:"locations"`
}

type LocationController struct {
	Logger  *slog.Logger
	Service domain.LocationService
}

func NewLocationController(logger *slog.Logger, svc domain.LocationService) *LocationController {
	return &LocationController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *LocationController) writeDetail(w http.ResponseWriter, r *http.Request, l *domain.Location) {
	obj, err := encoders.LocationDetail.Encode(l)
	if err != nil {
		serverError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, obj)
}

// ListLocations godoc
// @Summary List locations
// @Tags locations
// @Produce json
// @Success 200 {object} controllers.LocationListResponse
// @Router /locations/ [get]
func (c *LocationController) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := c.Service.List(r.Context())
	if err != nil {
		serverError(c.Logger, w, r, err)
		return
	}
	objs, err := encoding.EncodeList(encoders.LocationList, locations)
	if err != nil {
		serverError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, LocationListResponse{Locations: objs})
}

// CreateLocation godoc
// @Summary Create a location
// @Description Resolves the state abbreviation and stores a picture of the city when a photo key is configured.
// @Tags locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param location body CreateLocationRequest true "Location"
// @Success 200 {object} map[string]any "location detail"
// @Failure 400 {object} helpers.MessageResponse "Invalid state abbreviation, or a malformed body"
// @Failure 500 {object} helpers.MessageResponse "picture lookup failed"
// @Router /locations/ [post]
func (c *LocationController) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req CreateLocationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	l := &domain.Location{Name: req.Name, City: req.City, RoomCount: req.RoomCount}
	if err := c.Service.Create(r.Context(), l, req.State); err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			helpers.WriteMessage(w, http.StatusBadRequest, msgInvalidState)
			return
		}
		serverError(c.Logger, w, r, err)
		return
	}
	c.writeDetail(w, r, l)
}

// GetLocation godoc
// @Summary Get a location
// @Tags locations
// @Produce json
// @Param id path int true "Location ID"
// @Success 200 {object} map[string]any "location detail"
// @Failure 404 {object} helpers.MessageResponse "Invalid location id"
// @Router /locations/{id}/ [get]
func (c *LocationController) GetLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteMessage(w, http.StatusNotFound, msgInvalidLocationID)
		return
	}
	l, err := c.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteMessage(w, http.StatusNotFound, msgInvalidLocationID)
			return
		}
		serverError(c.Logger, w, r, err)
		return
	}
	c.writeDetail(w, r, l)
}

// UpdateLocation godoc
// @Summary Update a location
// @Tags locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Location ID"
// @Param location body UpdateLocationRequest true "Fields to change"
// @Success 200 {object} map[string]any "location detail"
// @Failure 404 {object} helpers.MessageResponse "Invalid location id or Invalid state abbreviation"
// @Router /locations/{id}/ [put]
func (c *LocationController) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteMessage(w, http.StatusNotFound, msgInvalidLocationID)
		return
	}
	var req UpdateLocationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	l, err := c.Service.Update(r.Context(), id, domain.LocationChanges{
		Name:       req.Name,
		City:       req.City,
		RoomCount:  req.RoomCount,
		PictureURL: req.PictureURL,
		State:      req.State,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteMessage(w, http.StatusNotFound, msgInvalidLocationID)
		case errors.Is(err, domain.ErrInvalidState):
			helpers.WriteMessage(w, http.StatusNotFound, msgInvalidState)
		default:
			serverError(c.Logger, w, r, err)
		}
		return
	}
	c.writeDetail(w, r, l)
}

// DeleteLocation godoc
// @Summary Delete a location
// @Description Conferences held at the location are deleted with it.
// @Tags locations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Location ID"
// @Success 200 {object} helpers.DeleteResponse
// @Failure 404 {object} helpers.MessageResponse "Invalid location id"
// @Router /locations/{id}/ [delete]
func (c *LocationController) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteMessage(w, http.StatusNotFound, msgInvalidLocationID)
		return
	}
	deleted, err := c.Service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteMessage(w, http.StatusNotFound, msgInvalidLocationID)
			return
		}
		serverError(c.Logger, w, r, err)
		return
	}
	helpers.WriteDeleted(w, deleted)
}
