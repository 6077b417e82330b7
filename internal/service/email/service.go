package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"volunteer-match/internal/config"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Service interface {
	SendAssignmentEmail(ctx context.Context, toEmail string, data AssignmentData) error
}

type AssignmentData struct {
	Name      string
	EventName string
	EventDate string
	Location  string
}

type service struct {
	client *resend.Client
	config *config.Config
	tmpl   *template.Template
}

func NewService(cfg *config.Config) (Service, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/assignment.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
		tmpl:   tmpl,
	}, nil
}

func (s *service) SendAssignmentEmail(ctx context.Context, toEmail string, data AssignmentData) error {
	view := struct {
		AssignmentData
		Title string
		Link  string
	}{
		AssignmentData: data,
		Title:          "Assignment confirmed",
		Link:           fmt.Sprintf("https://%s/assignments", s.config.Domain),
	}

	var body bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&body, "layout.html", view); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Volunteer Match <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: "You're confirmed for " + data.EventName,
	}

	_, err := s.client.Emails.Send(params)
	return err
}
