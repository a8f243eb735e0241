package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencego/internal/domain"
)

type locationService struct {
	locationRepo   domain.LocationRepository
	stateRepo      domain.StateRepository
	conferenceRepo domain.ConferenceRepository
	mirrorRepo     domain.ConferenceVORepository
	tx             domain.Transactor
	photos         domain.PhotoFinder
	contextTimeout time.Duration
}

// NewLocationService creates a LocationService. photos may be nil, in which case
// new locations are stored without a picture. Deleting a location also removes
// the mirrors of the conferences it hosted.
func NewLocationService(
	locationRepo domain.LocationRepository,
	stateRepo domain.StateRepository,
	conferenceRepo domain.ConferenceRepository,
	mirrorRepo domain.ConferenceVORepository,
	tx domain.Transactor,
	photos domain.PhotoFinder,
	timeout time.Duration,
) domain.LocationService {
	return &locationService{
		locationRepo:   locationRepo,
		stateRepo:      stateRepo,
		conferenceRepo: conferenceRepo,
		mirrorRepo:     mirrorRepo,
		tx:             tx,
		photos:         photos,
		contextTimeout: timeout,
	}
}

func (s *locationService) getState(ctx context.Context, abbreviation string) (*domain.State, error) {
	st, err := s.stateRepo.GetByAbbreviation(ctx, abbreviation)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidState
		}
		return nil, fmt.Errorf("get state: %w", err)
	}
	return st, nil
}

func (s *locationService) List(ctx context.Context) ([]*domain.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	locations, err := s.locationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

func (s *locationService) Create(ctx context.Context, l *domain.Location, stateAbbreviation string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	st, err := s.getState(ctx, stateAbbreviation)
	if err != nil {
		return err
	}
	l.StateID, l.State = st.ID, st

	if s.photos != nil {
		url, err := s.photos.FindPhoto(ctx, l.City, st.Abbreviation)
		if err != nil {
			return fmt.Errorf("find photo: %w", err)
		}
		l.PictureURL = &url
	}
	if err := s.locationRepo.Create(ctx, l); err != nil {
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

func (s *locationService) Get(ctx context.Context, id int64) (*domain.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.locationRepo.GetByID(ctx, id)
}

func (s *locationService) Update(ctx context.Context, id int64, ch domain.LocationChanges) (*domain.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.locationRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	u := domain.LocationUpdate{Name: ch.Name, City: ch.City, RoomCount: ch.RoomCount, PictureURL: ch.PictureURL}
	if ch.State != nil {
		st, err := s.getState(ctx, *ch.State)
		if err != nil {
			return nil, err
		}
		u.StateID = &st.ID
	}
	if err := s.locationRepo.Update(ctx, id, u); err != nil {
		return nil, fmt.Errorf("update location: %w", err)
	}
	return s.locationRepo.GetByID(ctx, id)
}

// Delete removes the location. Its conferences go with it through the foreign
// key cascade; their mirrors are removed here in the same transaction.
func (s *locationService) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.locationRepo.GetByID(ctx, id); err != nil {
		return false, err
	}
	var n int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		conferences, err := s.conferenceRepo.ListByLocationID(ctx, id)
		if err != nil {
			return fmt.Errorf("list location conferences: %w", err)
		}
		hrefs := make([]string, 0, len(conferences))
		for _, c := range conferences {
			hrefs = append(hrefs, c.Href())
		}
		if _, err := s.mirrorRepo.DeleteByImportHref(ctx, hrefs...); err != nil {
			return fmt.Errorf("delete conference mirrors: %w", err)
		}
		if n, err = s.locationRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete location: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
