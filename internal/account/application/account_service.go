package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Khangithub17/real-estate-project/internal/account/domain"
	sharedEvents "github.com/Khangithub17/real-estate-project/internal/shared/events"
	"github.com/Khangithub17/real-estate-project/internal/shared/infra/events"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

// AccountService implements registration, login and account administration.
type AccountService struct {
	repo     domain.AccountRepository
	tokens   *TokenManager
	notifier *events.Notifier
	log      *zap.Logger
}

func NewAccountService(repo domain.AccountRepository, tokens *TokenManager, notifier *events.Notifier, log *zap.Logger) *AccountService {
	return &AccountService{
		repo:     repo,
		tokens:   tokens,
		notifier: notifier,
		log:      log,
	}
}

func (s *AccountService) Register(ctx context.Context, username, email, password string, role domain.Role) (*domain.Account, string, error) {
	if role == "" {
		role = domain.RoleUser
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	a := &domain.Account{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	a.NormalizeEmail()

	if err := a.Validate(); err != nil {
		return nil, "", err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(a.ID, string(a.Role))
	if err != nil {
		return nil, "", err
	}

	s.notifier.Notify(sharedEvents.TopicAccounts, sharedEvents.AccountCreated, a.ID.String(), map[string]interface{}{
		"userId":   a.ID.String(),
		"username": a.Username,
	})

	return a, token, nil
}

// Login checks the credentials and issues a token. The same error covers an
// unknown email and a wrong password so the response never leaks which one
// failed.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	a, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, "", domain.ErrBadCredentials
		}
		return nil, "", err
	}
	if !a.Active {
		return nil, "", domain.ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrBadCredentials
	}

	now := time.Now().UTC()
	a.LastLoginAt = &now
	a.UpdatedAt = now
	if err := s.repo.Update(ctx, a); err != nil {
		s.log.Warn("last login not recorded", zap.String("id", a.ID.String()), zap.Error(err))
	}

	token, err := s.tokens.Issue(a.ID, string(a.Role))
	if err != nil {
		return nil, "", err
	}
	return a, token, nil
}

// RefreshToken issues a fresh token for an already authenticated account,
// so sessions can be extended without re-entering credentials.
func (s *AccountService) RefreshToken(a *domain.Account) (string, error) {
	return s.tokens.Issue(a.ID, string(a.Role))
}

// Authenticate resolves a bearer token to its account.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*domain.Account, error) {
	id, _, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.Active {
		return nil, domain.ErrAccountNotFound
	}
	return a, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AccountService) ListAccounts(ctx context.Context, f domain.ListFilter, p sharedQuery.Pagination, sort sharedQuery.Sort) (sharedQuery.Page[*domain.Account], error) {
	items, total, err := s.repo.List(ctx, f.Criteria(), p, sort)
	if err != nil {
		return sharedQuery.Page[*domain.Account]{}, err
	}
	return sharedQuery.NewPage(items, total, p), nil
}

// UpdateAccount persists profile changes. A non-empty password replaces the
// stored hash.
func (s *AccountService) UpdateAccount(ctx context.Context, a *domain.Account, newPassword string) error {
	if newPassword != "" {
		hash, err := hashPassword(newPassword)
		if err != nil {
			return err
		}
		a.PasswordHash = hash
	}
	a.NormalizeEmail()
	a.UpdatedAt = time.Now().UTC()

	if err := a.Validate(); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return err
	}

	s.notifier.Notify(sharedEvents.TopicAccounts, sharedEvents.AccountUpdated, a.ID.String(), map[string]interface{}{
		"userId":   a.ID.String(),
		"username": a.Username,
	})

	return nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.notifier.Notify(sharedEvents.TopicAccounts, sharedEvents.AccountDeleted, id.String(), map[string]interface{}{
		"userId": id.String(),
	})

	return nil
}

func (s *AccountService) AccountStats(ctx context.Context) (*domain.AccountStats, []domain.RoleStat, error) {
	return s.repo.Stats(ctx)
}

func hashPassword(password string) (string, error) {
	if len(password) < 6 {
		return "", fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidAccount)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	a := domain.Account{Email: email}
	a.NormalizeEmail()
	return a.Email
}
