package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/magabrotheeeer/gym-admin/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-admin/internal/lib/password"
	"github.com/magabrotheeeer/gym-admin/internal/models"
	"github.com/magabrotheeeer/gym-admin/internal/services/auth"
	"github.com/magabrotheeeer/gym-admin/internal/storage"
)

// Мок для AdminRepository
type AdminRepoMock struct {
	mock.Mock
}

func (m *AdminRepoMock) CreateAdmin(ctx context.Context, email, passwordHash, fullName string) (*models.Admin, error) {
	args := m.Called(ctx, email, passwordHash, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *AdminRepoMock) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *AdminRepoMock) GetAdmin(ctx context.Context, id string) (*models.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(admin models.Admin) (string, error) {
	args := m.Called(admin)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	admin := &models.Admin{ID: "a-1", Email: "boss@gym.io", FullName: "Boss"}

	tests := []struct {
		name       string
		setupMocks func(r *AdminRepoMock, j *JwtMakerMock)
		wantErr    error
		wantToken  string
	}{
		{
			name: "successful registration",
			setupMocks: func(r *AdminRepoMock, j *JwtMakerMock) {
				r.On("CreateAdmin", mock.Anything, "boss@gym.io", mock.MatchedBy(func(hash string) bool {
					return password.CompareHash(hash, "secret123") == nil
				}), "Boss").Return(admin, nil).Once()
				j.On("GenerateToken", *admin).Return("token", nil).Once()
			},
			wantToken: "token",
		},
		{
			name: "email already registered",
			setupMocks: func(r *AdminRepoMock, _ *JwtMakerMock) {
				r.On("CreateAdmin", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, storage.ErrAdminExists).Once()
			},
			wantErr: storage.ErrAdminExists,
		},
		{
			name: "token generation fails",
			setupMocks: func(r *AdminRepoMock, j *JwtMakerMock) {
				r.On("CreateAdmin", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(admin, nil).Once()
				j.On("GenerateToken", *admin).Return("", errors.New("sign error")).Once()
			},
			wantErr: errors.New("sign error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(AdminRepoMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(repo, jwtMock)
			svc := auth.NewAuthService(repo, jwtMock)

			got, err := svc.Register(context.Background(), "boss@gym.io", "secret123", "Boss")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				if errors.Is(tt.wantErr, storage.ErrAdminExists) {
					assert.ErrorIs(t, err, storage.ErrAdminExists)
				}
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, got.Token)
				assert.Equal(t, models.AdminSummary{ID: "a-1", Email: "boss@gym.io", FullName: "Boss"}, got.Admin)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("correctpassword")
	require.NoError(t, err)
	admin := &models.Admin{ID: "a-1", Email: "boss@gym.io", FullName: "Boss", PasswordHash: hash}

	tests := []struct {
		name       string
		password   string
		setupMocks func(r *AdminRepoMock, j *JwtMakerMock)
		wantErr    error
	}{
		{
			name:     "successful login",
			password: "correctpassword",
			setupMocks: func(r *AdminRepoMock, j *JwtMakerMock) {
				r.On("GetAdminByEmail", mock.Anything, "boss@gym.io").Return(admin, nil).Once()
				j.On("GenerateToken", *admin).Return("token", nil).Once()
			},
		},
		{
			name:     "unknown email",
			password: "correctpassword",
			setupMocks: func(r *AdminRepoMock, _ *JwtMakerMock) {
				r.On("GetAdminByEmail", mock.Anything, "boss@gym.io").Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			password: "wrong",
			setupMocks: func(r *AdminRepoMock, _ *JwtMakerMock) {
				r.On("GetAdminByEmail", mock.Anything, "boss@gym.io").Return(admin, nil).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(AdminRepoMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(repo, jwtMock)
			svc := auth.NewAuthService(repo, jwtMock)

			got, err := svc.Login(context.Background(), "boss@gym.io", tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "token", got.Token)
				assert.Equal(t, "a-1", got.Admin.ID)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginRepositoryError(t *testing.T) {
	repo := new(AdminRepoMock)
	repo.On("GetAdminByEmail", mock.Anything, "boss@gym.io").Return(nil, errors.New("db down")).Once()
	svc := auth.NewAuthService(repo, new(JwtMakerMock))

	_, err := svc.Login(context.Background(), "boss@gym.io", "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Profile(t *testing.T) {
	repo := new(AdminRepoMock)
	admin := &models.Admin{ID: "a-1", Email: "boss@gym.io"}
	repo.On("GetAdmin", mock.Anything, "a-1").Return(admin, nil).Once()
	repo.On("GetAdmin", mock.Anything, "gone").Return(nil, storage.ErrNotFound).Once()
	svc := auth.NewAuthService(repo, new(JwtMakerMock))

	got, err := svc.Profile(context.Background(), "a-1")
	require.NoError(t, err)
	assert.Equal(t, admin, got)

	_, err = svc.Profile(context.Background(), "gone")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	repo.AssertExpectations(t)
}
