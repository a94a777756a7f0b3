// Package auth содержит регистрацию, вход, выход и аутентификацию запросов.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/lib/jwt"
	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// AccountRepository хранилище учетных записей.
type AccountRepository interface {
	// CreateAccount сохраняет аккаунт. Занятые поля дают apperr.ErrDuplicateAccount.
	CreateAccount(ctx context.Context, a models.Account) (*models.Account, error)
	// CreateDoctorAccount сохраняет аккаунт персонала вместе с карточкой врача.
	CreateDoctorAccount(ctx context.Context, a models.Account, specialty string) (*models.Account, error)
	// GetAccountByUsername возвращает аккаунт или apperr.ErrNotFound.
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	// GetAccountByID возвращает аккаунт или apperr.ErrNotFound.
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
	// DeactivateAccount выключает аккаунт.
	DeactivateAccount(ctx context.Context, id string) error
}

// TokenMaker выпускает и проверяет токены.
type TokenMaker interface {
	Issue(accountID, role string, ttl time.Duration) (string, error)
	Verify(token string) (*jwt.Claims, error)
}

// Hasher хеширует и проверяет пароли.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encoded string) bool
}

// Denylist список отозванных токенов.
type Denylist interface {
	RevokeToken(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Options настройки сервиса.
type Options struct {
	TokenTTL               time.Duration
	AllowStaffRegistration bool
}

// Service отвечает за регистрацию, вход и проверку токенов.
type Service struct {
	accounts AccountRepository
	tokens   TokenMaker
	hasher   Hasher
	denylist Denylist
	opts     Options
	log      *slog.Logger

	// dummyHash сверяется с паролем неизвестного пользователя, чтобы время
	// ответа не выдавало существование логина.
	dummyHash string
}

// New создает сервис аутентификации.
func New(accounts AccountRepository, tokens TokenMaker, hasher Hasher, denylist Denylist, opts Options, log *slog.Logger) *Service {
	dummy, err := hasher.Hash("careconnect-unknown-account")
	if err != nil {
		log.Warn("failed to prepare dummy hash", sl.Err(err))
	}
	return &Service{
		accounts:  accounts,
		tokens:    tokens,
		hasher:    hasher,
		denylist:  denylist,
		opts:      opts,
		log:       log,
		dummyHash: dummy,
	}
}

// Register создает учетную запись и возвращает ее публичный профиль. Токен не выдается.
func (s *Service) Register(ctx context.Context, reg models.Registration) (*models.PublicProfile, error) {
	const op = "auth.Register"

	role := reg.Role
	switch role {
	case "":
		role = models.RoleStudent
	case models.RoleStudent:
	case models.RoleStaff:
		if !s.opts.AllowStaffRegistration {
			return nil, fmt.Errorf("%s: staff self-registration disabled: %w", op, apperr.ErrForbidden)
		}
	case models.RoleAdmin:
		return nil, fmt.Errorf("%s: admin cannot self-register: %w", op, apperr.ErrForbidden)
	default:
		return nil, apperr.Validation(fmt.Sprintf("unknown role %q", role))
	}

	if reg.Specialty != "" && role != models.RoleStaff {
		return nil, apperr.Validation("specialty is allowed only for staff accounts")
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	account := models.Account{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
		FullName:     reg.FullName,
		Role:         role,
		StudentID:    reg.StudentID,
		Institution:  reg.Institution,
		Program:      reg.Program,
		Phone:        reg.Phone,
	}

	var created *models.Account
	if reg.Specialty != "" {
		created, err = s.accounts.CreateDoctorAccount(ctx, account, reg.Specialty)
	} else {
		created, err = s.accounts.CreateAccount(ctx, account)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("account registered", slog.String("account_id", created.ID), slog.String("role", string(role)))
	profile := created.Public()
	return &profile, nil
}

// Login проверяет пару логин/пароль и выдает токен. Неизвестный логин,
// выключенный аккаунт и неверный пароль неразличимы для клиента.
func (s *Service) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	const op = "auth.Login"

	account, err := s.accounts.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) || !account.IsActive {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(account.ID, string(account.Role), s.opts.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.opts.TokenTTL.Seconds()),
		User:        account.Public(),
	}, nil
}

// Authenticate проверяет токен и возвращает субъект запроса.
//
// Роль берется из учетной записи, а не из токена, поэтому смена роли
// действует сразу. Ошибка списка отзыва запрос не пропускает.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	const op = "auth.Authenticate"

	if token == "" {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrMissingCredential)
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, apperr.ErrUnauthenticated, err)
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if revoked {
		return nil, fmt.Errorf("%s: token revoked: %w", op, apperr.ErrUnauthenticated)
	}

	account, err := s.accounts.GetAccountByID(ctx, claims.AccountID())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%s: inactive: %w", op, apperr.ErrAccountNotFound)
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return &models.Identity{
		AccountID: account.ID,
		Username:  account.Username,
		FullName:  account.FullName,
		StudentID: account.StudentID,
		Role:      account.Role,
		TokenID:   claims.ID,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout отзывает текущий токен до окончания его срока.
func (s *Service) Logout(ctx context.Context, id models.Identity) error {
	const op = "auth.Logout"

	if err := s.denylist.RevokeToken(ctx, id.TokenID, id.ExpiresAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Deactivate выключает собственный аккаунт и отзывает текущий токен.
func (s *Service) Deactivate(ctx context.Context, id models.Identity) error {
	const op = "auth.Deactivate"

	if err := s.accounts.DeactivateAccount(ctx, id.AccountID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.denylist.RevokeToken(ctx, id.TokenID, id.ExpiresAt); err != nil {
		s.log.Warn("failed to revoke token of deactivated account",
			slog.String("account_id", id.AccountID), sl.Err(err))
	}
	s.log.Info("account deactivated", slog.String("account_id", id.AccountID))
	return nil
}

// EnsureAdmin создает администратора, если его еще нет. Пустой пароль ничего не делает.
func (s *Service) EnsureAdmin(ctx context.Context, username, email, password string) error {
	const op = "auth.EnsureAdmin"

	if password == "" {
		return nil
	}

	_, err := s.accounts.GetAccountByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	created, err := s.accounts.CreateAccount(ctx, models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     "System Administrator",
		Role:         models.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrDuplicateAccount) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("admin account created", slog.String("account_id", created.ID), slog.String("username", username))
	return nil
}
