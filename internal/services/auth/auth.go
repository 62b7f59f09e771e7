// Package auth регистрирует администраторов, проверяет их учётные данные и выдаёт JWT.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/gym-admin/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-admin/internal/lib/password"
	"github.com/magabrotheeeer/gym-admin/internal/models"
	"github.com/magabrotheeeer/gym-admin/internal/storage"
)

// ErrInvalidCredentials неизвестный email или неверный пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminRepository описывает хранилище администраторов.
type AdminRepository interface {
	// CreateAdmin сохраняет администратора, занятый email даёт storage.ErrAdminExists.
	CreateAdmin(ctx context.Context, email, passwordHash, fullName string) (*models.Admin, error)
	// GetAdminByEmail возвращает storage.ErrNotFound, если администратора нет.
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetAdmin(ctx context.Context, id string) (*models.Admin, error)
}

// AuthService отвечает за регистрацию, вход и профиль администратора.
type AuthService struct {
	admins   AdminRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(admins AdminRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		admins:   admins,
		jwtMaker: jwtMaker,
	}
}

// Register создаёт администратора с хешированным паролем и сразу выдаёт токен.
func (s *AuthService) Register(ctx context.Context, email, rawPassword, fullName string) (*models.AuthResult, error) {
	const op = "auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	admin, err := s.admins.CreateAdmin(ctx, email, hashed, fullName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.issue(op, *admin)
}

// Login проверяет пароль и выдаёт токен. Неизвестный email и неверный пароль
// неразличимы для вызывающего: оба дают ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.AuthResult, error) {
	const op = "auth.Login"

	admin, err := s.admins.GetAdminByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(admin.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.issue(op, *admin)
}

// Profile возвращает администратора по идентификатору из токена.
func (s *AuthService) Profile(ctx context.Context, adminID string) (*models.Admin, error) {
	const op = "auth.Profile"

	admin, err := s.admins.GetAdmin(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return admin, nil
}

func (s *AuthService) issue(op string, admin models.Admin) (*models.AuthResult, error) {
	token, err := s.jwtMaker.GenerateToken(admin)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.AuthResult{Token: token, Admin: admin.Summary()}, nil
}
