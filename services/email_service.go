package services

import (
	"abbooks_server/structs"
	"abbooks_server/structs/tables"
	"fmt"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	emailClient     *resend.Client
	emailClientOnce = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	emailClientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	if !es.cfg.Email.Enabled {
		es.logger.Debug("Email sending disabled, skipping", gecho.Field("subject", subject))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendWelcomeEmail greets a freshly registered user. Callers fire this from
// a goroutine; a failure is logged, never surfaced to the registration flow.
func (es *EmailService) SendWelcomeEmail(user *tables.User) {
	if user.Email == "" {
		return
	}

	body := fmt.Sprintf(`
		<h1>Welcome to %s, %s!</h1>
		<p>Your account is ready. Your cart is waiting for its first book.</p>
	`, es.cfg.Server.AppName, user.Username)

	if err := es.SendEmail([]string{user.Email}, "Welcome to "+es.cfg.Server.AppName, body); err != nil {
		es.logger.Warn("Failed to send welcome email", gecho.Field("user_id", user.Id))
	}
}
