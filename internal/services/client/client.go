// Package client реализует операции над клиентами зала: выборку, создание,
// изменение, продление абонемента, оплату и удаление.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/magabrotheeeer/gym-admin/internal/cache"
	"github.com/magabrotheeeer/gym-admin/internal/lib/metrics"
	"github.com/magabrotheeeer/gym-admin/internal/lib/plan"
	"github.com/magabrotheeeer/gym-admin/internal/lib/sl"
	"github.com/magabrotheeeer/gym-admin/internal/models"
	"github.com/magabrotheeeer/gym-admin/internal/storage"
)

var (
	// ErrEmptyUpdate в запросе на обновление нет ни одного поля.
	ErrEmptyUpdate = errors.New("no fields to update")
	// ErrEmptyIDs пустой список идентификаторов для массового удаления.
	ErrEmptyIDs = errors.New("empty client id list")
)

// Repository описывает хранилище клиентов. Отсутствующий клиент даёт storage.ErrNotFound.
type Repository interface {
	ListClients(ctx context.Context, filter models.ClientFilter) ([]models.Client, error)
	GetClient(ctx context.Context, id string) (*models.Client, error)
	ListPayments(ctx context.Context, clientID string) ([]models.Payment, error)
	ListHistory(ctx context.Context, clientID string) ([]models.HistoryEntry, error)
	CreateClient(ctx context.Context, client models.Client, initial models.Payment, description string) (*models.Client, error)
	UpdateClient(ctx context.Context, id string, upd models.ClientUpdate, action, description string) (*models.Client, error)
	ApplyPayment(ctx context.Context, id string, upd models.ClientUpdate, payment models.Payment, action, description string) (*models.Client, *models.Payment, error)
	DeleteClient(ctx context.Context, id string) (int, error)
	DeleteClients(ctx context.Context, ids []string) (int, error)
}

// Cache описывает кеш карточек клиентов. Invalidate увеличивает версию ключа,
// SetIfVersion пишет значение, только если версия не изменилась.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Version(ctx context.Context, key string) (int64, error)
	SetIfVersion(ctx context.Context, key string, value any, expiration time.Duration, version int64) (bool, error)
	Invalidate(ctx context.Context, keys ...string) error
}

// ClientService реализует бизнес-логику работы с клиентами.
type ClientService struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
	now   func() time.Time
}

// Option настраивает ClientService.
type Option func(*ClientService)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *ClientService) { s.now = now }
}

// NewClientService создает новый экземпляр ClientService.
func NewClientService(repo Repository, clientCache Cache, ttl time.Duration, log *slog.Logger, opts ...Option) *ClientService {
	s := &ClientService{
		repo:  repo,
		cache: clientCache,
		ttl:   ttl,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ClientService) today() models.Date {
	return models.NewDate(s.now())
}

// List возвращает клиентов по фильтру.
func (s *ClientService) List(ctx context.Context, filter models.ClientFilter) ([]models.Client, error) {
	const op = "client.List"
	clients, err := s.repo.ListClients(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return clients, nil
}

// Get возвращает карточку клиента с платежами и историей, сначала пытаясь взять её из кеша.
func (s *ClientService) Get(ctx context.Context, id string) (*models.ClientDetail, error) {
	const op = "client.Get"
	log := s.log.With(slog.String("op", op), slog.String("client_id", id))

	key := cache.ClientKey(id)
	var cached models.ClientDetail
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn("failed to read client from cache", sl.Err(err))
	} else if found {
		return &cached, nil
	}

	// Версию берём до чтения из базы: изменение клиента во время загрузки
	// поднимет её, и устаревшая карточка не попадёт в кеш.
	version, versionErr := s.cache.Version(ctx, key)
	if versionErr != nil {
		log.Warn("failed to read client cache version", sl.Err(versionErr))
	}

	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	payments, err := s.repo.ListPayments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	history, err := s.repo.ListHistory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	detail := &models.ClientDetail{Client: *c, Payments: payments, History: history}
	if versionErr == nil {
		stored, err := s.cache.SetIfVersion(ctx, key, detail, s.ttl, version)
		switch {
		case err != nil:
			log.Warn("failed to cache client", sl.Err(err))
		case !stored:
			log.Debug("client changed while loading, cache write skipped")
		}
	}
	return detail, nil
}

// Create создаёт клиента вместе с первым платежом на сумму тарифа и записью CREATED.
func (s *ClientService) Create(ctx context.Context, req models.CreateClientRequest) (*models.Client, error) {
	const op = "client.Create"

	start, err := models.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c := models.Client{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		PlanType:      req.PlanType,
		PlanAmount:    req.PlanAmount,
		StartDate:     start,
		EndDate:       models.NewDate(plan.EndDate(start.Time, req.PlanType)),
		Status:        orDefault(req.Status, models.StatusActive),
		PaymentStatus: orDefault(req.PaymentStatus, models.PaymentStatusPaid),
		Notes:         req.Notes,
	}
	initial := models.Payment{
		Amount:        req.PlanAmount,
		PaymentDate:   start,
		PaymentMethod: models.DefaultPaymentMethod,
		Notes:         "Initial payment",
	}

	created, err := s.repo.CreateClient(ctx, c, initial,
		fmt.Sprintf("Client account created with %s plan", req.PlanType))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.ClientsCreatedTotal.WithLabelValues(created.PlanType).Inc()
	metrics.PaymentsRecordedTotal.WithLabelValues("initial").Inc()
	return created, nil
}

// Update частично обновляет клиента. При смене тарифа или даты начала
// дата окончания пересчитывается.
func (s *ClientService) Update(ctx context.Context, id string, req models.UpdateClientRequest) (*models.Client, error) {
	const op = "client.Update"
	if req.IsEmpty() {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyUpdate)
	}

	upd := models.ClientUpdate{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		PlanType:      req.PlanType,
		PlanAmount:    req.PlanAmount,
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		Notes:         req.Notes,
	}
	if req.StartDate != nil {
		start, err := models.ParseDate(*req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		upd.StartDate = &start
	}

	if upd.PlanType != nil || upd.StartDate != nil {
		current, err := s.repo.GetClient(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		start, planType := current.StartDate, current.PlanType
		if upd.StartDate != nil {
			start = *upd.StartDate
		}
		if upd.PlanType != nil {
			planType = *upd.PlanType
		}
		end := models.NewDate(plan.EndDate(start.Time, planType))
		upd.EndDate = &end
	}

	updated, err := s.repo.UpdateClient(ctx, id, upd, models.ActionUpdated, "Client information updated")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, id)
	return updated, nil
}

// Renew продлевает абонемент с сегодняшнего дня и фиксирует оплату продления.
func (s *ClientService) Renew(ctx context.Context, id string, req models.RenewRequest) (*models.Client, error) {
	const op = "client.Renew"

	start := s.today()
	end := models.NewDate(plan.EndDate(start.Time, req.PlanType))
	active, paid := models.StatusActive, models.PaymentStatusPaid
	upd := models.ClientUpdate{
		PlanType:      &req.PlanType,
		PlanAmount:    &req.PlanAmount,
		StartDate:     &start,
		EndDate:       &end,
		Status:        &active,
		PaymentStatus: &paid,
	}
	payment := models.Payment{
		Amount:        req.PlanAmount,
		PaymentDate:   start,
		PaymentMethod: orDefault(req.PaymentMethod, models.DefaultPaymentMethod),
		Notes:         "Plan renewal",
	}

	renewed, _, err := s.repo.ApplyPayment(ctx, id, upd, payment, models.ActionRenewed, "Plan renewed: "+req.PlanType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.PaymentsRecordedTotal.WithLabelValues("renewal").Inc()
	s.invalidate(ctx, id)
	return renewed, nil
}

// AddPayment регистрирует платёж и отмечает абонемент оплаченным.
func (s *ClientService) AddPayment(ctx context.Context, id string, req models.PaymentRequest) (*models.Payment, error) {
	const op = "client.AddPayment"

	date := s.today()
	if req.PaymentDate != "" {
		parsed, err := models.ParseDate(req.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		date = parsed
	}
	paid := models.PaymentStatusPaid
	payment := models.Payment{
		Amount:        req.Amount,
		PaymentDate:   date,
		PaymentMethod: orDefault(req.PaymentMethod, models.DefaultPaymentMethod),
		Notes:         req.Notes,
	}

	_, stored, err := s.repo.ApplyPayment(ctx, id, models.ClientUpdate{PaymentStatus: &paid}, payment,
		models.ActionPayment, "Payment received: ₹"+formatAmount(req.Amount))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.PaymentsRecordedTotal.WithLabelValues("manual").Inc()
	s.invalidate(ctx, id)
	return stored, nil
}

// Delete удаляет клиента вместе с платежами и историей.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	const op = "client.Delete"

	n, err := s.repo.DeleteClient(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	s.invalidate(ctx, id)
	return nil
}

// BulkDelete удаляет всех клиентов из списка и возвращает число удалённых.
func (s *ClientService) BulkDelete(ctx context.Context, ids []string) (int, error) {
	const op = "client.BulkDelete"
	if len(ids) == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrEmptyIDs)
	}

	n, err := s.repo.DeleteClients(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, ids...)
	return n, nil
}

func (s *ClientService) invalidate(ctx context.Context, ids ...string) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cache.ClientKey(id)
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn("failed to invalidate client cache", slog.Any("client_ids", ids), sl.Err(err))
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// formatAmount печатает сумму без лишних нулей: 500, 1499.5.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
