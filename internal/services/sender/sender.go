// Package sender отправляет клиентам письма-напоминания об окончании абонемента.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/gym-admin/internal/lib/metrics"
	"github.com/magabrotheeeer/gym-admin/internal/lib/sl"
	"github.com/magabrotheeeer/gym-admin/internal/lib/smtp"
	"github.com/magabrotheeeer/gym-admin/internal/models"
)

// Transport открывает SMTP-сессии.
type Transport interface {
	Connect() (smtp.Client, error)
	From() string
}

// SenderService обрабатывает сообщения из очереди напоминаний.
type SenderService struct {
	transport Transport
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport Transport, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendExpiryReminder отправляет письмо по сообщению models.ExpiryReminder.
// Нечитаемые сообщения и клиенты без email пропускаются без ошибки,
// чтобы не возвращать их в очередь. Ошибка отправки возвращается вызывающему.
func (s *SenderService) SendExpiryReminder(body []byte) error {
	const op = "sender.SendExpiryReminder"

	var reminder models.ExpiryReminder
	if err := json.Unmarshal(body, &reminder); err != nil {
		s.log.Error("dropping malformed reminder", slog.String("op", op), sl.Err(err))
		metrics.RemindersTotal.WithLabelValues("skipped").Inc()
		return nil
	}
	log := s.log.With(slog.String("op", op), slog.String("client_id", reminder.ClientID))

	if reminder.Email == "" {
		log.Info("client has no email, reminder skipped")
		metrics.RemindersTotal.WithLabelValues("skipped").Inc()
		return nil
	}

	subject := "Your gym membership is ending soon"
	text := fmt.Sprintf("Hello, %s!\r\n\r\nYour %s membership ends on %s.\r\n\r\n"+
		"Please visit the front desk to renew it and keep training without interruption.",
		reminder.FullName, reminder.PlanType, reminder.EndDate.String())

	if err := s.sendEmail(reminder.Email, subject, text); err != nil {
		log.Error("failed to send reminder", sl.Err(err))
		metrics.RemindersTotal.WithLabelValues("send_failed").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("reminder sent", slog.String("to", reminder.Email))
	metrics.RemindersTotal.WithLabelValues("sent").Inc()
	return nil
}

func (s *SenderService) sendEmail(to, subject, text string) error {
	from := s.transport.From()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		text,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			s.log.Debug("smtp client close", sl.Err(err))
		}
	}()

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := wc.Write([]byte(msg)); err != nil {
		_ = wc.Close()
		return fmt.Errorf("write body: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}
	if err := client.Quit(); err != nil {
		return fmt.Errorf("quit: %w", err)
	}
	return nil
}
