package services

import (
	"context"
	"fmt"
	"log/slog"

	"conferencego/internal/domain"
)

type conferenceSyncService struct {
	fetcher    domain.ConferenceFetcher
	mirrorRepo domain.ConferenceVORepository
	logger     *slog.Logger
}

// NewConferenceSyncService creates a service that copies the monolith's
// conference listing into the local mirrors.
func NewConferenceSyncService(fetcher domain.ConferenceFetcher, mirrorRepo domain.ConferenceVORepository, logger *slog.Logger) domain.ConferenceSyncService {
	return &conferenceSyncService{fetcher: fetcher, mirrorRepo: mirrorRepo, logger: logger}
}

// Sync upserts one mirror per remote conference and returns how many were written.
func (s *conferenceSyncService) Sync(ctx context.Context) (int, error) {
	summaries, err := s.fetcher.FetchConferences(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch conferences: %w", err)
	}
	n := 0
	for _, cs := range summaries {
		if cs.Href == "" {
			s.logger.WarnContext(ctx, "skipping conference without href", "name", cs.Name)
			continue
		}
		vo := &domain.ConferenceVO{ImportHref: cs.Href, Name: cs.Name}
		if err := s.mirrorRepo.Upsert(ctx, vo); err != nil {
			return n, fmt.Errorf("upsert mirror %s: %w", cs.Href, err)
		}
		n++
	}
	s.logger.InfoContext(ctx, "conference mirrors synced", "count", n)
	return n, nil
}
