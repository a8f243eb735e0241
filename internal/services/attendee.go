package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencego/internal/domain"
)

type attendeeService struct {
	attendeeRepo   domain.AttendeeRepository
	conferenceRepo domain.ConferenceVORepository
	contextTimeout time.Duration
}

// NewAttendeeService creates an AttendeeService. Conferences are resolved through
// their local mirrors, keyed by the canonical conference href.
func NewAttendeeService(
	attendeeRepo domain.AttendeeRepository,
	conferenceRepo domain.ConferenceVORepository,
	timeout time.Duration,
) domain.AttendeeService {
	return &attendeeService{
		attendeeRepo:   attendeeRepo,
		conferenceRepo: conferenceRepo,
		contextTimeout: timeout,
	}
}

func (s *attendeeService) resolveConference(ctx context.Context, conferenceID int64) (*domain.ConferenceVO, error) {
	vo, err := s.conferenceRepo.GetByImportHref(ctx, domain.ConferenceHref(conferenceID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidConference
		}
		return nil, fmt.Errorf("get conference mirror: %w", err)
	}
	return vo, nil
}

func (s *attendeeService) ListByConference(ctx context.Context, conferenceID int64) ([]*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	vo, err := s.resolveConference(ctx, conferenceID)
	if err != nil {
		// A conference nobody has registered for yet has no mirror.
		if errors.Is(err, domain.ErrInvalidConference) {
			return []*domain.Attendee{}, nil
		}
		return nil, err
	}
	attendees, err := s.attendeeRepo.ListByConferenceVOID(ctx, vo.ID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	return attendees, nil
}

func (s *attendeeService) Create(ctx context.Context, conferenceID int64, a *domain.Attendee) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	vo, err := s.resolveConference(ctx, conferenceID)
	if err != nil {
		return err
	}
	a.ConferenceID = vo.ID
	a.Conference = vo
	if err := s.attendeeRepo.Create(ctx, a); err != nil {
		return fmt.Errorf("create attendee: %w", err)
	}
	return nil
}

func (s *attendeeService) Get(ctx context.Context, id int64) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.attendeeRepo.GetByID(ctx, id)
}

func (s *attendeeService) Update(ctx context.Context, id int64, ch domain.AttendeeChanges) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.attendeeRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	u := domain.AttendeeUpdate{Email: ch.Email, Name: ch.Name, CompanyName: ch.CompanyName}
	if ch.ConferenceID != nil {
		vo, err := s.resolveConference(ctx, *ch.ConferenceID)
		if err != nil {
			return nil, err
		}
		u.ConferenceVOID = &vo.ID
	}
	if err := s.attendeeRepo.Update(ctx, id, u); err != nil {
		return nil, fmt.Errorf("update attendee: %w", err)
	}
	return s.attendeeRepo.GetByID(ctx, id)
}

func (s *attendeeService) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.attendeeRepo.GetByID(ctx, id); err != nil {
		return false, err
	}
	n, err := s.attendeeRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete attendee: %w", err)
	}
	return n > 0, nil
}
