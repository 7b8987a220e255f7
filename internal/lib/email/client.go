// Package email provides the transactional email client.
//
// It uses Resend as the provider and renders HTML bodies from
// templates on disk.
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/stellarhost/portal/internal/config"
)

// Client wraps the Resend client, sender identity, and a logger.
type Client struct {
	client *resend.Client

	fromName    string
	fromAddress string

	logger *zerolog.Logger
}

// NewClient creates an email Client from config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		client:      resend.NewClient(cfg.Email.ResendAPIKey),
		fromName:    cfg.Email.FromName,
		fromAddress: cfg.Email.FromAddress,
		logger:      logger,
	}
}

// SendEmail renders templates/emails/<templateName>.html with data
// and sends it to the recipient through Resend.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	tmplPath := fmt.Sprintf("%s/%s.html", "templates/emails", templateName)

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	params := &resend.SendEmailRequest{
		From: fmt.Sprintf("%s <%s>", c.fromName, c.fromAddress),

		To: []string{to},

		Subject: subject,

		Html: body.String(),
	}

	_, err = c.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
