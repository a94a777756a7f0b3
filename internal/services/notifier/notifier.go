// Package notifier отправляет письма по событиям из брокера.
package notifier

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/careconnect/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
	"github.com/magabrotheeeer/careconnect/internal/lib/smtp"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// Transport выдает подключение к почтовому серверу.
type Transport interface {
	Connect() (smtp.Client, error)
	Sender() string
}

// Service отправляет письма-напоминания.
type Service struct {
	transport Transport
	log       *slog.Logger
}

// New создает сервис рассылки.
func New(transport Transport, log *slog.Logger) *Service {
	return &Service{transport: transport, log: log}
}

// SendReminder разбирает напоминание о приеме и отправляет письмо владельцу записи.
// Битое сообщение возвращает ошибку с rabbitmq.ErrPermanent.
func (s *Service) SendReminder(body []byte) error {
	const op = "notifier.SendReminder"

	var r models.AppointmentReminder
	if err := json.Unmarshal(body, &r); err != nil {
		return fmt.Errorf("%s: error unmarshalling message: %v: %w", op, err, rabbitmq.ErrPermanent)
	}
	if r.Email == "" {
		return fmt.Errorf("%s: reminder %d has no recipient: %w", op, r.AppointmentID, rabbitmq.ErrPermanent)
	}

	name := r.FullName
	if name == "" {
		name = r.Username
	}
	subject := "Appointment reminder: " + r.Date + " " + r.TimeSlot
	text := fmt.Sprintf("Hello, %s!\n\n"+
		"This is a reminder about your appointment with %s tomorrow, %s at %s.\n"+
		"Location: %s\n\n"+
		"If you cannot attend, please cancel or reschedule it in CareConnect.\n",
		name, r.DoctorName, r.Date, r.TimeSlot, r.Location)

	if err := s.sendEmail([]string{r.Email}, subject, text); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("reminder sent", slog.Int64("appointment_id", r.AppointmentID))
	return nil
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	from := s.transport.Sender()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			s.log.Debug("smtp client close", sl.Err(err))
		}
	}()

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("rcpt to %s: %w", addr, err)
		}
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err = wc.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}
	return client.Quit()
}
