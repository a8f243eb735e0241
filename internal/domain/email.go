package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// PresentationDecisionEmailData holds data for the approval and rejection emails.
type PresentationDecisionEmailData struct {
	Email          string
	PresenterName  string
	Title          string
	ConferenceName string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendPresentationApproved(ctx context.Context, data *PresentationDecisionEmailData) error
	SendPresentationRejected(ctx context.Context, data *PresentationDecisionEmailData) error
}
