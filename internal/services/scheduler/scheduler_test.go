package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-admin/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ExpireMemberships(ctx context.Context, today models.Date, description string) ([]string, error) {
	args := m.Called(ctx, today, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepository) ListClientsByEndDate(ctx context.Context, status string, from, to models.Date) ([]models.Client, error) {
	args := m.Called(ctx, status, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Client), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Invalidate(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func clock() time.Time {
	return time.Date(2026, 10, 17, 6, 0, 0, 0, time.UTC)
}

func date(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestSchedulerService_Tick(t *testing.T) {
	repo := new(MockRepository)
	pub := new(MockPublisher)
	c := new(MockCache)
	svc := NewSchedulerService(repo, pub, c, 3, newNoopLogger(), clock)

	today := date(t, "2026-10-17")
	reminderDay := date(t, "2026-10-20")
	clients := []models.Client{
		{ID: "c1", FullName: "Ann", Email: "ann@x.io", PlanType: "Monthly", EndDate: reminderDay},
		{ID: "c2", FullName: "Bob", PlanType: "Yearly", EndDate: reminderDay},
	}

	repo.On("ExpireMemberships", mock.Anything, today, ExpiredDescription).Return([]string{"old"}, nil).Once()
	c.On("Invalidate", mock.Anything, []string{"client:old"}).Return(nil).Once()
	repo.On("ListClientsByEndDate", mock.Anything, models.StatusActive, reminderDay, reminderDay).Return(clients, nil).Once()
	pub.On("Publish", "expiring", models.ExpiryReminder{
		ClientID: "c1", FullName: "Ann", Email: "ann@x.io", PlanType: "Monthly", EndDate: reminderDay,
	}).Return(nil).Once()
	pub.On("Publish", "expiring", mock.MatchedBy(func(r models.ExpiryReminder) bool {
		return r.ClientID == "c2"
	})).Return(errors.New("channel closed")).Once()

	require.NoError(t, svc.Tick(context.Background()))

	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestSchedulerService_TickInvalidatesExpiredClients(t *testing.T) {
	tests := []struct {
		name     string
		cacheErr error
		expired  []string
		wantKeys []string
	}{
		{
			name:     "keys for every expired client",
			expired:  []string{"c-1", "c-2", "c-3"},
			wantKeys: []string{"client:c-1", "client:c-2", "client:c-3"},
		},
		{
			name:     "cache failure does not stop the tick",
			cacheErr: errors.New("redis down"),
			expired:  []string{"c-1"},
			wantKeys: []string{"client:c-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			c := new(MockCache)
			svc := NewSchedulerService(repo, new(MockPublisher), c, 3, newNoopLogger(), clock)

			repo.On("ExpireMemberships", mock.Anything, mock.Anything, ExpiredDescription).Return(tt.expired, nil).Once()
			c.On("Invalidate", mock.Anything, tt.wantKeys).Return(tt.cacheErr).Once()
			repo.On("ListClientsByEndDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]models.Client{}, nil).Once()

			require.NoError(t, svc.Tick(context.Background()))
			repo.AssertExpectations(t)
			c.AssertExpectations(t)
		})
	}
}

func TestSchedulerService_TickNothingToDo(t *testing.T) {
	repo := new(MockRepository)
	pub := new(MockPublisher)
	c := new(MockCache)
	svc := NewSchedulerService(repo, pub, c, 3, newNoopLogger(), clock)

	repo.On("ExpireMemberships", mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil).Once()
	repo.On("ListClientsByEndDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]models.Client{}, nil).Once()

	require.NoError(t, svc.Tick(context.Background()))
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	c.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestSchedulerService_TickErrors(t *testing.T) {
	t.Run("expire fails", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewSchedulerService(repo, new(MockPublisher), new(MockCache), 3, newNoopLogger(), clock)
		repo.On("ExpireMemberships", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db error")).Once()

		err := svc.Tick(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scheduler.Tick")
		repo.AssertNotCalled(t, "ListClientsByEndDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("listing fails", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewSchedulerService(repo, new(MockPublisher), new(MockCache), 3, newNoopLogger(), clock)
		repo.On("ExpireMemberships", mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil).Once()
		repo.On("ListClientsByEndDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db error")).Once()

		assert.Error(t, svc.Tick(context.Background()))
	})
}

func TestSchedulerService_RunStopsOnCancel(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ExpireMemberships", mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil)
	repo.On("ListClientsByEndDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]models.Client{}, nil)
	svc := NewSchedulerService(repo, new(MockPublisher), new(MockCache), 3, newNoopLogger(), clock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	repo.AssertCalled(t, "ExpireMemberships", mock.Anything, mock.Anything, ExpiredDescription)
}
