package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"conferencego/internal/domain"
)

type presentationService struct {
	presentationRepo domain.PresentationRepository
	conferenceRepo   domain.ConferenceRepository
	statusRepo       domain.StatusRepository
	emailService     domain.EmailService
	logger           *slog.Logger
	contextTimeout   time.Duration
}

// NewPresentationService creates a PresentationService. Approval and rejection
// notify the presenter through emailService.
func NewPresentationService(
	presentationRepo domain.PresentationRepository,
	conferenceRepo domain.ConferenceRepository,
	statusRepo domain.StatusRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.PresentationService {
	return &presentationService{
		presentationRepo: presentationRepo,
		conferenceRepo:   conferenceRepo,
		statusRepo:       statusRepo,
		emailService:     emailService,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

func (s *presentationService) getConference(ctx context.Context, id int64) (*domain.Conference, error) {
	c, err := s.conferenceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidConference
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	return c, nil
}

func (s *presentationService) getStatus(ctx context.Context, name string) (*domain.Status, error) {
	st, err := s.statusRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidStatus
		}
		return nil, fmt.Errorf("get status: %w", err)
	}
	return st, nil
}

func (s *presentationService) ListByConference(ctx context.Context, conferenceID int64) ([]*domain.Presentation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	presentations, err := s.presentationRepo.ListByConferenceID(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("list presentations: %w", err)
	}
	return presentations, nil
}

// Create stores p under the conference with status SUBMITTED, whatever the caller set.
func (s *presentationService) Create(ctx context.Context, conferenceID int64, p *domain.Presentation) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.getConference(ctx, conferenceID)
	if err != nil {
		return err
	}
	status, err := s.statusRepo.GetByName(ctx, domain.StatusSubmitted)
	if err != nil {
		return fmt.Errorf("get status %s: %w", domain.StatusSubmitted, err)
	}
	p.ConferenceID, p.Conference = conf.ID, conf
	p.StatusID, p.Status = status.ID, status
	if err := s.presentationRepo.Create(ctx, p); err != nil {
		return fmt.Errorf("create presentation: %w", err)
	}
	return nil
}

func (s *presentationService) Get(ctx context.Context, id int64) (*domain.Presentation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.presentationRepo.GetByID(ctx, id)
}

// Update resolves every reference before writing, so a bad status or
// conference leaves the record untouched.
func (s *presentationService) Update(ctx context.Context, id int64, ch domain.PresentationChanges) (*domain.Presentation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.presentationRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	u := domain.PresentationUpdate{
		PresenterName:  ch.PresenterName,
		CompanyName:    ch.CompanyName,
		PresenterEmail: ch.PresenterEmail,
		Title:          ch.Title,
		Synopsis:       ch.Synopsis,
	}
	if ch.Status != nil {
		st, err := s.getStatus(ctx, *ch.Status)
		if err != nil {
			return nil, err
		}
		u.StatusID = &st.ID
	}
	if ch.ConferenceID != nil {
		conf, err := s.getConference(ctx, *ch.ConferenceID)
		if err != nil {
			return nil, err
		}
		u.ConferenceID = &conf.ID
	}
	if err := s.presentationRepo.Update(ctx, id, u); err != nil {
		return nil, fmt.Errorf("update presentation: %w", err)
	}
	return s.presentationRepo.GetByID(ctx, id)
}

func (s *presentationService) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.presentationRepo.GetByID(ctx, id); err != nil {
		return false, err
	}
	n, err := s.presentationRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete presentation: %w", err)
	}
	return n > 0, nil
}

func (s *presentationService) Approve(ctx context.Context, id int64) (*domain.Presentation, error) {
	return s.decide(ctx, id, domain.StatusApproved, s.emailService.SendPresentationApproved)
}

func (s *presentationService) Reject(ctx context.Context, id int64) (*domain.Presentation, error) {
	return s.decide(ctx, id, domain.StatusRejected, s.emailService.SendPresentationRejected)
}

// decide moves the presentation to status and notifies the presenter.
// The status change is committed before sending; a failed send is only logged.
func (s *presentationService) decide(
	ctx context.Context,
	id int64,
	status string,
	notify func(context.Context, *domain.PresentationDecisionEmailData) error,
) (*domain.Presentation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.presentationRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	st, err := s.statusRepo.GetByName(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("get status %s: %w", status, err)
	}
	if err := s.presentationRepo.Update(ctx, id, domain.PresentationUpdate{StatusID: &st.ID}); err != nil {
		return nil, fmt.Errorf("set presentation status: %w", err)
	}
	p, err := s.presentationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data := &domain.PresentationDecisionEmailData{
		Email:         p.PresenterEmail,
		PresenterName: p.PresenterName,
		Title:         p.Title,
	}
	if p.Conference != nil {
		data.ConferenceName = p.Conference.Name
	}
	if err := notify(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "presentation decision email failed",
			"presentation_id", id, "status", status, "err", err)
	}
	return p, nil
}
