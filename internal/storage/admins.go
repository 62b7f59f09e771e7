package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/gym-admin/internal/models"
)

// CreateAdmin сохраняет нового администратора. Занятый email даёт ErrAdminExists.
func (s *Storage) CreateAdmin(ctx context.Context, email, passwordHash, fullName string) (*models.Admin, error) {
	const op = "storage.CreateAdmin"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO admins (email, password_hash, full_name)
			  VALUES ($1, $2, $3)
			  RETURNING id, email, password_hash, full_name, created_at`
	var admin models.Admin
	err := s.DB.QueryRowContext(ctx, query, email, passwordHash, fullName).
		Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.FullName, &admin.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrAdminExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &admin, nil
}

// GetAdminByEmail ищет администратора по email.
func (s *Storage) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	const op = "storage.GetAdminByEmail"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, email, password_hash, full_name, created_at FROM admins WHERE email = $1`
	return s.scanAdmin(ctx, op, query, email)
}

// GetAdmin ищет администратора по идентификатору.
func (s *Storage) GetAdmin(ctx context.Context, id string) (*models.Admin, error) {
	const op = "storage.GetAdmin"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, email, password_hash, full_name, created_at FROM admins WHERE id = $1`
	return s.scanAdmin(ctx, op, query, id)
}

func (s *Storage) scanAdmin(ctx context.Context, op, query string, arg any) (*models.Admin, error) {
	var admin models.Admin
	err := s.DB.QueryRowContext(ctx, query, arg).
		Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.FullName, &admin.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &admin, nil
}
