package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/gym-admin/internal/models"
)

const clientColumns = `id, full_name, email, phone, address, plan_type, plan_amount,
	start_date, end_date, status, payment_status, notes, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.FullName, &c.Email, &c.Phone, &c.Address, &c.PlanType, &c.PlanAmount,
		&c.StartDate, &c.EndDate, &c.Status, &c.PaymentStatus, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func scanClients(rows *sql.Rows) ([]models.Client, error) {
	defer rows.Close()

	clients := make([]models.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// escapeLike экранирует спецсимволы шаблона LIKE, чтобы поиск шёл по подстроке буквально.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ListClients возвращает клиентов по фильтру, новые первыми.
func (s *Storage) ListClients(ctx context.Context, filter models.ClientFilter) ([]models.Client, error) {
	const op = "storage.ListClients"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var (
		conds []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.PlanType != "" {
		args = append(args, filter.PlanType)
		conds = append(conds, fmt.Sprintf("plan_type = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(full_name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", n, n, n))
	}

	query := `SELECT ` + clientColumns + ` FROM clients`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	clients, err := scanClients(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return clients, nil
}

// GetClient возвращает клиента по идентификатору.
func (s *Storage) GetClient(ctx context.Context, id string) (*models.Client, error) {
	const op = "storage.GetClient"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

// ListPayments возвращает платежи клиента, последние первыми.
func (s *Storage) ListPayments(ctx context.Context, clientID string) ([]models.Payment, error) {
	const op = "storage.ListPayments"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, client_id, amount, payment_date, payment_method, notes, created_at
			  FROM payments WHERE client_id = $1
			  ORDER BY payment_date DESC, created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	payments, err := scanPayments(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}

func scanPayments(rows *sql.Rows) ([]models.Payment, error) {
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Amount, &p.PaymentDate, &p.PaymentMethod,
			&p.Notes, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// ListHistory возвращает журнал действий клиента, последние первыми.
func (s *Storage) ListHistory(ctx context.Context, clientID string) ([]models.HistoryEntry, error) {
	const op = "storage.ListHistory"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, client_id, action_type, description, created_at
			  FROM client_history WHERE client_id = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	history := make([]models.HistoryEntry, 0)
	for rows.Next() {
		var h models.HistoryEntry
		if err := rows.Scan(&h.ID, &h.ClientID, &h.ActionType, &h.Description, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return history, nil
}

// CreateClient одной транзакцией сохраняет клиента, его первый платёж и запись CREATED в журнале.
func (s *Storage) CreateClient(ctx context.Context, client models.Client, initial models.Payment, description string) (*models.Client, error) {
	const op = "storage.CreateClient"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var created models.Client
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		query := `INSERT INTO clients (full_name, email, phone, address, plan_type, plan_amount,
				      start_date, end_date, status, payment_status, notes)
				  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
				  RETURNING ` + clientColumns
		row := tx.QueryRowContext(ctx, query,
			client.FullName, client.Email, client.Phone, client.Address, client.PlanType, client.PlanAmount,
			client.StartDate, client.EndDate, client.Status, client.PaymentStatus, client.Notes)
		c, err := scanClient(row)
		if err != nil {
			return err
		}
		created = c

		initial.ClientID = c.ID
		if _, err := insertPayment(ctx, tx, initial); err != nil {
			return err
		}
		return insertHistory(ctx, tx, c.ID, models.ActionCreated, description)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// UpdateClient одной транзакцией применяет изменения и добавляет запись в журнал.
func (s *Storage) UpdateClient(ctx context.Context, id string, upd models.ClientUpdate, action, description string) (*models.Client, error) {
	const op = "storage.UpdateClient"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var updated models.Client
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		c, err := updateClient(ctx, tx, id, upd)
		if err != nil {
			return err
		}
		updated = c
		return insertHistory(ctx, tx, id, action, description)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &updated, nil
}

// ApplyPayment одной транзакцией применяет изменения клиента, сохраняет платёж и пишет журнал.
// Используется при продлении абонемента и при регистрации оплаты.
func (s *Storage) ApplyPayment(ctx context.Context, id string, upd models.ClientUpdate, payment models.Payment,
	action, description string) (*models.Client, *models.Payment, error) {
	const op = "storage.ApplyPayment"
	if err := checkCtx(ctx, op); err != nil {
		return nil, nil, err
	}

	var (
		updated models.Client
		stored  models.Payment
	)
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		c, err := updateClient(ctx, tx, id, upd)
		if err != nil {
			return err
		}
		updated = c

		payment.ClientID = id
		p, err := insertPayment(ctx, tx, payment)
		if err != nil {
			return err
		}
		stored = p
		return insertHistory(ctx, tx, id, action, description)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return &updated, &stored, nil
}

// DeleteClient удаляет клиента и возвращает число удалённых строк.
// Платежи и журнал удаляются каскадно.
func (s *Storage) DeleteClient(ctx context.Context, id string) (int, error) {
	const op = "storage.DeleteClient"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteClients удаляет всех клиентов из списка ids и возвращает число удалённых строк.
func (s *Storage) DeleteClients(ctx context.Context, ids []string) (int, error) {
	const op = "storage.DeleteClients"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM clients WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

func updateClient(ctx context.Context, tx *sql.Tx, id string, upd models.ClientUpdate) (models.Client, error) {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.FullName != nil {
		set("full_name", *upd.FullName)
	}
	if upd.Email != nil {
		set("email", *upd.Email)
	}
	if upd.Phone != nil {
		set("phone", *upd.Phone)
	}
	if upd.Address != nil {
		set("address", *upd.Address)
	}
	if upd.PlanType != nil {
		set("plan_type", *upd.PlanType)
	}
	if upd.PlanAmount != nil {
		set("plan_amount", *upd.PlanAmount)
	}
	if upd.StartDate != nil {
		set("start_date", *upd.StartDate)
	}
	if upd.EndDate != nil {
		set("end_date", *upd.EndDate)
	}
	if upd.Status != nil {
		set("status", *upd.Status)
	}
	if upd.PaymentStatus != nil {
		set("payment_status", *upd.PaymentStatus)
	}
	if upd.Notes != nil {
		set("notes", *upd.Notes)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE clients SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), clientColumns)
	c, err := scanClient(tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, ErrNotFound
	}
	return c, err
}

func insertPayment(ctx context.Context, tx *sql.Tx, p models.Payment) (models.Payment, error) {
	query := `INSERT INTO payments (client_id, amount, payment_date, payment_method, notes)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, client_id, amount, payment_date, payment_method, notes, created_at`
	var out models.Payment
	err := tx.QueryRowContext(ctx, query, p.ClientID, p.Amount, p.PaymentDate, p.PaymentMethod, p.Notes).
		Scan(&out.ID, &out.ClientID, &out.Amount, &out.PaymentDate, &out.PaymentMethod, &out.Notes, &out.CreatedAt)
	return out, err
}

func insertHistory(ctx context.Context, tx *sql.Tx, clientID, action, description string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO client_history (client_id, action_type, description) VALUES ($1, $2, $3)`,
		clientID, action, description)
	return err
}
