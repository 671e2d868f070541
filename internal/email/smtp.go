package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/booking-actions/internal/config"
)

type smtpService struct {
	dialer *gomail.Dialer
	from   string
	inbox  string
}

// NewSMTPService notifies the configured clinic inbox over SMTP.
func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		inbox:  cfg.ClinicInbox,
	}
}

func (s *smtpService) SendBookingCreated(ctx context.Context, patientName, doctorName, specialty, date, timeOfDay string) error {
	subject := fmt.Sprintf("New appointment: %s on %s", specialty, date)
	body := fmt.Sprintf(
		"A new appointment was booked.\n\nPatient: %s\nDoctor: %s\nSpecialty: %s\nDate: %s\nTime: %s\n",
		patientName, doctorName, specialty, date, timeOfDay,
	)
	return s.send(ctx, subject, body)
}

func (s *smtpService) SendBookingCanceled(ctx context.Context, patientName, specialty, date string) error {
	subject := fmt.Sprintf("Canceled appointment: %s on %s", specialty, date)
	body := fmt.Sprintf(
		"An appointment was canceled.\n\nPatient: %s\nSpecialty: %s\nDate: %s\n",
		patientName, specialty, date,
	)
	return s.send(ctx, subject, body)
}

func (s *smtpService) send(ctx context.Context, subject, body string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.inbox)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
