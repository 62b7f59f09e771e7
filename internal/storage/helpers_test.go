package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/gym-admin/internal/migrations"
	"github.com/magabrotheeeer/gym-admin/internal/models"
)

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("gym"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(dsn)
	require.NoError(t, err)

	path, err := filepath.Abs(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, path))

	t.Cleanup(func() {
		_ = storage.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})
	return storage
}

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

// testClient возвращает клиента с заполненными обязательными полями.
func testClient(t *testing.T, name string) models.Client {
	return models.Client{
		FullName:      name,
		Email:         name + "@example.com",
		Phone:         "555-0100",
		PlanType:      "Monthly",
		PlanAmount:    1500,
		StartDate:     mustDate(t, "2024-01-15"),
		EndDate:       mustDate(t, "2024-02-15"),
		Status:        models.StatusActive,
		PaymentStatus: models.PaymentStatusPaid,
	}
}

func createTestClient(t *testing.T, s *Storage, c models.Client) *models.Client {
	t.Helper()
	created, err := s.CreateClient(context.Background(), c, models.Payment{
		Amount:        c.PlanAmount,
		PaymentDate:   c.StartDate,
		PaymentMethod: models.DefaultPaymentMethod,
		Notes:         "Initial payment",
	}, "Client account created with "+c.PlanType+" plan")
	require.NoError(t, err)
	return created
}
