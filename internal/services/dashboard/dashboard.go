// Package dashboard собирает статистику и уведомления для главной страницы панели.
// Данные запрашиваются параллельно, агрегация выполняется чистыми функциями из aggregate.go.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/gym-admin/internal/lib/metrics"
	"github.com/magabrotheeeer/gym-admin/internal/models"
)

// Repository описывает выборки, нужные дашборду.
type Repository interface {
	CountClients(ctx context.Context, status string) (int, error)
	ListPaymentsSince(ctx context.Context, from models.Date) ([]models.Payment, error)
	ListRecentClientCreations(ctx context.Context, limit int) ([]time.Time, error)
	ListPlanTypes(ctx context.Context, status string) ([]string, error)
	ListClientsByEndDate(ctx context.Context, status string, from, to models.Date) ([]models.Client, error)
}

// DashboardService строит отчёты дашборда.
type DashboardService struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// NewDashboardService создает новый экземпляр DashboardService.
// now задаёт часы; nil означает текущее время в UTC.
func NewDashboardService(repo Repository, log *slog.Logger, now func() time.Time) *DashboardService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &DashboardService{repo: repo, log: log, now: now}
}

// Stats возвращает итоговые счётчики, ряды выручки и роста за шесть месяцев
// и распределение активных клиентов по тарифам. Ошибка любой выборки
// завершает операцию целиком.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	const op = "dashboard.Stats"
	defer observe("stats", time.Now())

	now := s.now()
	var (
		total, active, expired int
		payments               []models.Payment
		createdAt              []time.Time
		planTypes              []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = s.repo.CountClients(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		active, err = s.repo.CountClients(gctx, models.StatusActive)
		return err
	})
	g.Go(func() (err error) {
		expired, err = s.repo.CountClients(gctx, models.StatusExpired)
		return err
	})
	g.Go(func() (err error) {
		payments, err = s.repo.ListPaymentsSince(gctx, WindowStart(now))
		return err
	})
	g.Go(func() (err error) {
		createdAt, err = s.repo.ListRecentClientCreations(gctx, RecentClientsLimit)
		return err
	})
	g.Go(func() (err error) {
		planTypes, err = s.repo.ListPlanTypes(gctx, models.StatusActive)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("dashboard stats fetched",
		slog.Int("payments", len(payments)), slog.Int("recent_clients", len(createdAt)))

	revenue, growth := BuildSeries(now, payments, createdAt)
	return &models.DashboardStats{
		Stats: models.StatsSummary{
			TotalClients:   total,
			ActiveClients:  active,
			ExpiredClients: expired,
			MonthlyRevenue: MonthlyRevenue(payments, now),
		},
		RevenueData:          revenue,
		ClientGrowthData:     growth,
		PlanDistributionData: PlanDistribution(planTypes),
	}, nil
}

// Notifications возвращает уведомления об абонементах, истёкших за последние
// семь дней и истекающих в ближайшие семь дней.
func (s *DashboardService) Notifications(ctx context.Context) (*models.NotificationList, error) {
	const op = "dashboard.Notifications"
	defer observe("notifications", time.Now())

	now := s.now()
	today := models.NewDate(now)
	var expired, expiring []models.Client

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		expired, err = s.repo.ListClientsByEndDate(gctx, models.StatusExpired,
			today.AddDays(-NotificationWindowDays), today)
		return err
	})
	g.Go(func() (err error) {
		expiring, err = s.repo.ListClientsByEndDate(gctx, models.StatusActive,
			today, today.AddDays(NotificationWindowDays))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	list := BuildNotifications(now, expired, expiring)
	return &list, nil
}

func observe(report string, start time.Time) {
	metrics.DashboardBuildDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
}
