package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"conferencego/internal/domain"
)

type conferenceService struct {
	conferenceRepo domain.ConferenceRepository
	locationRepo   domain.LocationRepository
	mirrorRepo     domain.ConferenceVORepository
	tx             domain.Transactor
	weather        domain.WeatherFetcher
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewConferenceService creates a ConferenceService. Every create and update
// refreshes the conference's attendee-side mirror and every delete removes it,
// in the same transaction as the conference write. weather may be nil, in which
// case details carry no weather.
func NewConferenceService(
	conferenceRepo domain.ConferenceRepository,
	locationRepo domain.LocationRepository,
	mirrorRepo domain.ConferenceVORepository,
	tx domain.Transactor,
	weather domain.WeatherFetcher,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ConferenceService {
	return &conferenceService{
		conferenceRepo: conferenceRepo,
		locationRepo:   locationRepo,
		mirrorRepo:     mirrorRepo,
		tx:             tx,
		weather:        weather,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *conferenceService) checkLocation(ctx context.Context, id int64) error {
	if _, err := s.locationRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidLocation
		}
		return fmt.Errorf("get location: %w", err)
	}
	return nil
}

func (s *conferenceService) mirror(ctx context.Context, c *domain.Conference) error {
	vo := &domain.ConferenceVO{ImportHref: c.Href(), Name: c.Name}
	if err := s.mirrorRepo.Upsert(ctx, vo); err != nil {
		return fmt.Errorf("mirror conference: %w", err)
	}
	return nil
}

func (s *conferenceService) List(ctx context.Context) ([]*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conferences, err := s.conferenceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}
	return conferences, nil
}

func (s *conferenceService) Create(ctx context.Context, c *domain.Conference) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.checkLocation(ctx, c.LocationID); err != nil {
		return err
	}
	var stored *domain.Conference
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.conferenceRepo.Create(ctx, c); err != nil {
			return fmt.Errorf("create conference: %w", err)
		}
		if err := s.mirror(ctx, c); err != nil {
			return err
		}
		var err error
		if stored, err = s.conferenceRepo.GetByID(ctx, c.ID); err != nil {
			return fmt.Errorf("reload conference: %w", err)
		}
		return nil
	})
	if err != nil {
		c.ID = 0
		return err
	}
	*c = *stored
	return nil
}

func (s *conferenceService) Get(ctx context.Context, id int64) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.conferenceRepo.GetByID(ctx, id)
}

func (s *conferenceService) GetDetail(ctx context.Context, id int64) (*domain.ConferenceDetail, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &domain.ConferenceDetail{Conference: c}
	if s.weather == nil || c.Location == nil || c.Location.State == nil {
		return detail, nil
	}
	w, err := s.weather.CurrentWeather(ctx, c.Location.City, c.Location.State.Abbreviation)
	if err != nil {
		s.logger.WarnContext(ctx, "weather lookup failed",
			"conference_id", id, "city", c.Location.City, "err", err)
		return detail, nil
	}
	detail.Weather = w
	return detail, nil
}

func (s *conferenceService) Update(ctx context.Context, id int64, u domain.ConferenceUpdate) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.conferenceRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if u.LocationID != nil {
		if err := s.checkLocation(ctx, *u.LocationID); err != nil {
			return nil, err
		}
	}
	var c *domain.Conference
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.conferenceRepo.Update(ctx, id, u); err != nil {
			return fmt.Errorf("update conference: %w", err)
		}
		var err error
		if c, err = s.conferenceRepo.GetByID(ctx, id); err != nil {
			return err
		}
		return s.mirror(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the conference together with its mirror, so attendees can no
// longer register for it.
func (s *conferenceService) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := s.conferenceRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	var n int64
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.mirrorRepo.DeleteByImportHref(ctx, c.Href()); err != nil {
			return fmt.Errorf("delete conference mirror: %w", err)
		}
		var err error
		if n, err = s.conferenceRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete conference: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
