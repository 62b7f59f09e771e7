// Package scheduler периодически переводит просроченные абонементы в Expired
// и ставит в очередь напоминания клиентам, чей абонемент скоро закончится.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-admin/internal/cache"
	"github.com/magabrotheeeer/gym-admin/internal/lib/metrics"
	"github.com/magabrotheeeer/gym-admin/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gym-admin/internal/lib/sl"
	"github.com/magabrotheeeer/gym-admin/internal/models"
)

// ExpiredDescription текст записи в журнале клиента при истечении абонемента.
const ExpiredDescription = "Membership expired"

// Repository описывает выборки и изменения, нужные планировщику.
type Repository interface {
	ExpireMemberships(ctx context.Context, today models.Date, description string) ([]string, error)
	ListClientsByEndDate(ctx context.Context, status string, from, to models.Date) ([]models.Client, error)
}

// Publisher публикует сообщение с ключом маршрутизации.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// Cache сбрасывает закешированные карточки клиентов.
type Cache interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// SchedulerService фоновый обработчик истечения абонементов.
type SchedulerService struct {
	repo         Repository
	publisher    Publisher
	cache        Cache
	reminderDays int
	log          *slog.Logger
	now          func() time.Time
}

// NewSchedulerService создает новый экземпляр SchedulerService.
// now задаёт часы; nil означает текущее время в UTC.
func NewSchedulerService(repo Repository, publisher Publisher, clientCache Cache, reminderDays int, log *slog.Logger, now func() time.Time) *SchedulerService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &SchedulerService{
		repo:         repo,
		publisher:    publisher,
		cache:        clientCache,
		reminderDays: reminderDays,
		log:          log,
		now:          now,
	}
}

// Run выполняет Tick сразу и затем каждые interval, пока не отменён ctx.
func (s *SchedulerService) Run(ctx context.Context, interval time.Duration) {
	s.runTick(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runTick(ctx)
		}
	}
}

func (s *SchedulerService) runTick(ctx context.Context) {
	if err := s.Tick(ctx); err != nil {
		s.log.Error("scheduler tick failed", sl.Err(err))
	}
}

// Tick переводит в Expired все активные абонементы с прошедшей датой окончания,
// сбрасывает их карточки в кеше и публикует напоминание каждому активному клиенту, чей абонемент
// заканчивается ровно через reminderDays дней. Ошибка публикации одного
// напоминания не прерывает остальные.
func (s *SchedulerService) Tick(ctx context.Context) error {
	const op = "scheduler.Tick"
	today := models.NewDate(s.now())

	expired, err := s.repo.ExpireMemberships(ctx, today, ExpiredDescription)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(expired) > 0 {
		s.log.Info("memberships expired", slog.Int("count", len(expired)))
		metrics.MembershipsExpiredTotal.Add(float64(len(expired)))

		keys := make([]string, len(expired))
		for i, id := range expired {
			keys[i] = cache.ClientKey(id)
		}
		if err := s.cache.Invalidate(ctx, keys...); err != nil {
			s.log.Warn("failed to invalidate expired clients in cache", slog.Any("client_ids", expired), sl.Err(err))
		}
	}

	day := today.AddDays(s.reminderDays)
	clients, err := s.repo.ListClientsByEndDate(ctx, models.StatusActive, day, day)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(clients) == 0 {
		s.log.Info("no memberships ending soon", slog.String("end_date", day.String()))
		return nil
	}

	s.log.Info("found memberships ending soon", slog.Int("count", len(clients)), slog.String("end_date", day.String()))
	for _, c := range clients {
		reminder := models.ExpiryReminder{
			ClientID: c.ID,
			FullName: c.FullName,
			Email:    c.Email,
			Phone:    c.Phone,
			PlanType: c.PlanType,
			EndDate:  c.EndDate,
		}
		if err := s.publisher.Publish(rabbitmq.ExpiringRoutingKey, reminder); err != nil {
			s.log.Error("failed to publish reminder", slog.String("client_id", c.ID), sl.Err(err))
			metrics.RemindersTotal.WithLabelValues("publish_failed").Inc()
			continue
		}
		metrics.RemindersTotal.WithLabelValues("published").Inc()
	}
	return nil
}
