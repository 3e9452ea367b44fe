// Package notification delivers outbound mail, currently course invites.
// SendGrid does the delivery in production; with notifications disabled the
// mail is logged instead so development setups need no API key.
package notification

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/trofos-project/trofos/internal/config"
)

// Sender delivers a single mail message.
type Sender interface {
	SendInvite(email, courseName, inviteLink string) error
}

// New picks the sender for the given configuration.
func New(cfg *config.Config) Sender {
	if cfg != nil && cfg.Notification.Enabled && cfg.Notification.SendGridKey != "" {
		return &sendGridSender{
			client:      sendgrid.NewSendClient(cfg.Notification.SendGridKey),
			fromAddress: cfg.Notification.FromAddress,
			fromName:    cfg.Notification.FromName,
		}
	}

	return &consoleSender{}
}

type sendGridSender struct {
	client      *sendgrid.Client
	fromAddress string
	fromName    string
}

// SendInvite mails a course invite through SendGrid.
func (s *sendGridSender) SendInvite(email, courseName, inviteLink string) error {
	from := mail.NewEmail(s.fromName, s.fromAddress)
	to := mail.NewEmail(email, email)
	subject := fmt.Sprintf("You have been invited to %s", courseName)
	plain := fmt.Sprintf("You have been invited to join %s. Accept the invite: %s", courseName, inviteLink)
	htmlBody := fmt.Sprintf(
		`<p>You have been invited to join <strong>%s</strong>.</p><p><a href=%q>Accept the invite</a></p>`,
		courseName, inviteLink,
	)

	message := mail.NewSingleEmail(from, subject, to, plain, htmlBody)

	response, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", response.StatusCode, response.Body)
	}

	log.Info().Str("email", email).Str("course", courseName).Msg("invite mail sent")

	return nil
}

type consoleSender struct{}

// SendInvite logs the invite instead of mailing it.
func (s *consoleSender) SendInvite(email, courseName, inviteLink string) error {
	log.Info().
		Str("email", email).
		Str("course", courseName).
		Str("link", inviteLink).
		Msg("notifications disabled, invite not mailed")

	return nil
}
