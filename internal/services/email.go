package services

import (
	"context"
	"fmt"
	"log/slog"

	"conferencego/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendPresentationApproved sends the "presentation_approved" template to the presenter.
func (s *emailService) SendPresentationApproved(ctx context.Context, data *domain.PresentationDecisionEmailData) error {
	return s.send(ctx, "presentation_approved", data)
}

// SendPresentationRejected sends the "presentation_rejected" template to the presenter.
func (s *emailService) SendPresentationRejected(ctx context.Context, data *domain.PresentationDecisionEmailData) error {
	return s.send(ctx, "presentation_rejected", data)
}

func (s *emailService) send(ctx context.Context, template string, data *domain.PresentationDecisionEmailData) error {
	if data == nil {
		return fmt.Errorf("%s email data is nil", template)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", template, err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	s.logger.InfoContext(ctx, "email sent", "template", template, "to", data.Email)
	return nil
}
