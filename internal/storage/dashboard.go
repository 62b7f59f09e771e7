package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/gym-admin/internal/models"
)

// CountClients считает клиентов с указанным статусом, пустой статус считает всех.
func (s *Storage) CountClients(ctx context.Context, status string) (int, error) {
	const op = "storage.CountClients"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM clients WHERE $1 = '' OR status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListPaymentsSince возвращает платежи с датой не раньше from.
func (s *Storage) ListPaymentsSince(ctx context.Context, from models.Date) ([]models.Payment, error) {
	const op = "storage.ListPaymentsSince"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, client_id, amount, payment_date, payment_method, notes, created_at
			  FROM payments WHERE payment_date >= $1
			  ORDER BY payment_date`
	rows, err := s.DB.QueryContext(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	payments, err := scanPayments(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}

// ListRecentClientCreations возвращает моменты создания последних limit клиентов.
func (s *Storage) ListRecentClientCreations(ctx context.Context, limit int) ([]time.Time, error) {
	const op = "storage.ListRecentClientCreations"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT created_at FROM clients ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]time.Time, 0, limit)
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListPlanTypes возвращает тип тарифа каждого клиента с указанным статусом.
func (s *Storage) ListPlanTypes(ctx context.Context, status string) ([]string, error) {
	const op = "storage.ListPlanTypes"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT plan_type FROM clients WHERE status = $1`, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListClientsByEndDate возвращает клиентов со статусом status, у которых end_date в [from, to].
func (s *Storage) ListClientsByEndDate(ctx context.Context, status string, from, to models.Date) ([]models.Client, error) {
	const op = "storage.ListClientsByEndDate"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + clientColumns + ` FROM clients
			  WHERE status = $1 AND end_date >= $2 AND end_date <= $3
			  ORDER BY end_date`
	rows, err := s.DB.QueryContext(ctx, query, status, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	clients, err := scanClients(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return clients, nil
}
