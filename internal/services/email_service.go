package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendWelcomeEmail(email string) error
	SendResetAlert(email, timezone string, failedTaskIDs []int64) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendWelcomeEmail(email string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to Focusboard!")

	body := `
		<h2>Welcome to Focusboard!</h2>
		<p>Your dashboard account has been created.</p>
		<p>Add your first daily task and the consistency heatmap will start filling in.</p>
	`
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) SendResetAlert(email, timezone string, failedTaskIDs []int64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Daily reset: some tasks were skipped")

	body := fmt.Sprintf(`
		<h3>Daily reset finished with skipped rows</h3>
		<p>Timezone: <strong>%s</strong></p>
		<p>%d task(s) could not be updated and were skipped: %v</p>
		<p>The server log has the underlying error for each row. Re-running the
		reset is safe and will retry the skipped tasks.</p>
	`, timezone, len(failedTaskIDs), failedTaskIDs)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reset alert email: %w", err)
	}
	return nil
}
