package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Khangithub17/real-estate-project/internal/account/domain"
	sharedEvents "github.com/Khangithub17/real-estate-project/internal/shared/events"
	"github.com/Khangithub17/real-estate-project/internal/shared/infra/events"
	sharedBus "github.com/Khangithub17/real-estate-project/internal/shared/platform/bus"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
	"github.com/Khangithub17/real-estate-project/tests/mocks"
)

func newTestService(repo domain.AccountRepository) *AccountService {
	pub := mocks.NewCapturingPublisher()
	notifier := events.NewNotifier(map[string]sharedBus.EventPublisher{
		sharedEvents.TopicAccounts: pub,
	}, nil, zap.NewNop())
	tokens := NewTokenManager("test-secret", time.Hour)
	return NewAccountService(repo, tokens, notifier, zap.NewNop())
}

func TestRegisterHashesPasswordAndIssuesToken(t *testing.T) {
	repo := mocks.NewInMemoryAccountRepo()
	svc := newTestService(repo)

	a, token, err := svc.Register(context.Background(), "jane_doe", "Jane@Example.COM", "s3cret99", "")
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", a.Email)
	assert.Equal(t, domain.RoleUser, a.Role)
	assert.True(t, a.Active)
	assert.NotEqual(t, "s3cret99", a.PasswordHash)
	assert.NotEmpty(t, token)

	// the issued token resolves back to the account
	got, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}

func TestRegisterRejectsWeakPasswordAndBadUsername(t *testing.T) {
	repo := mocks.NewInMemoryAccountRepo()
	svc := newTestService(repo)

	_, _, err := svc.Register(context.Background(), "jane_doe", "jane@example.com", "short", "")
	assert.ErrorIs(t, err, domain.ErrInvalidAccount)

	_, _, err = svc.Register(context.Background(), "x", "jane@example.com", "s3cret99", "")
	assert.ErrorIs(t, err, domain.ErrInvalidAccount)

	_, _, err = svc.Register(context.Background(), "jane doe!", "jane@example.com", "s3cret99", "")
	assert.ErrorIs(t, err, domain.ErrInvalidAccount)
}

func TestRegisterDuplicate(t *testing.T) {
	repo := mocks.NewInMemoryAccountRepo()
	svc := newTestService(repo)

	_, _, err := svc.Register(context.Background(), "jane_doe", "jane@example.com", "s3cret99", "")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "jane_doe", "other@example.com", "s3cret99", "")
	assert.ErrorIs(t, err, domain.ErrAccountExists)
}

func TestLogin(t *testing.T) {
	repo := mocks.NewInMemoryAccountRepo()
	svc := newTestService(repo)

	_, _, err := svc.Register(context.Background(), "jane_doe", "jane@example.com", "s3cret99", domain.RoleAdmin)
	require.NoError(t, err)

	a, token, err := svc.Login(context.Background(), "JANE@example.com", "s3cret99")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotNil(t, a.LastLoginAt)

	// wrong password and unknown email yield the same error
	_, _, err = svc.Login(context.Background(), "jane@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "s3cret99")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := mocks.NewInMemoryAccountRepo()
	svc := newTestService(repo)

	a, _, err := svc.Register(context.Background(), "jane_doe", "jane@example.com", "s3cret99", "")
	require.NoError(t, err)

	a.Active = false
	require.NoError(t, repo.Update(context.Background(), a))

	_, _, err = svc.Login(context.Background(), "jane@example.com", "s3cret99")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
}

func TestAuthenticateRejectsGarbageToken(t *testing.T) {
	repo := mocks.NewInMemoryAccountRepo()
	svc := newTestService(repo)

	_, err := svc.Authenticate(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpiry(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)
	token, err := tm.Issue(uuid.New(), "user")
	require.NoError(t, err)

	_, _, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Issue(uuid.New(), "admin")
	require.NoError(t, err)

	_, _, err = NewTokenManager("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	id := uuid.New()

	token, err := tm.Issue(id, "admin")
	require.NoError(t, err)

	gotID, claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	assert.Equal(t, "admin", claims.Role)
}

func TestUpdateAccountChangesPassword(t *testing.T) {
	repo := mocks.NewInMemoryAccountRepo()
	svc := newTestService(repo)

	a, _, err := svc.Register(context.Background(), "jane_doe", "jane@example.com", "s3cret99", "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateAccount(context.Background(), a, "newpass123"))

	_, _, err = svc.Login(context.Background(), "jane@example.com", "s3cret99")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)

	_, _, err = svc.Login(context.Background(), "jane@example.com", "newpass123")
	assert.NoError(t, err)
}

func TestRefreshTokenAuthenticates(t *testing.T) {
	repo := mocks.NewInMemoryAccountRepo()
	svc := newTestService(repo)

	a, _, err := svc.Register(context.Background(), "jane_doe", "jane@example.com", "s3cret99", domain.RoleAdmin)
	require.NoError(t, err)

	token, err := svc.RefreshToken(a)
	require.NoError(t, err)

	got, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, domain.RoleAdmin, got.Role)
}

func TestAccountStats(t *testing.T) {
	repo := mocks.NewInMemoryAccountRepo()
	svc := newTestService(repo)

	_, _, err := svc.Register(context.Background(), "the_admin", "admin@example.com", "s3cret99", domain.RoleAdmin)
	require.NoError(t, err)
	_, _, err = svc.Register(context.Background(), "jane_doe", "jane@example.com", "s3cret99", "")
	require.NoError(t, err)
	inactive, _, err := svc.Register(context.Background(), "old_bob", "bob@example.com", "s3cret99", "")
	require.NoError(t, err)

	inactive.Active = false
	require.NoError(t, repo.Update(context.Background(), inactive))

	// one user logged in recently
	_, _, err = svc.Login(context.Background(), "jane@example.com", "s3cret99")
	require.NoError(t, err)

	overview, byRole, err := svc.AccountStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), overview.TotalUsers)
	assert.Equal(t, int64(2), overview.ActiveUsers)
	assert.Equal(t, int64(1), overview.InactiveUsers)
	assert.Equal(t, int64(1), overview.AdminUsers)
	assert.Equal(t, int64(1), overview.RecentLogins)

	assert.Len(t, byRole, 2)
}

func TestListAccountsSearchMatchesUsernameOrEmail(t *testing.T) {
	repo := mocks.NewInMemoryAccountRepo()
	svc := newTestService(repo)

	_, _, err := svc.Register(context.Background(), "jane_doe", "jane@example.com", "s3cret99", "")
	require.NoError(t, err)
	_, _, err = svc.Register(context.Background(), "bob", "bob@janes-agency.com", "s3cret99", "")
	require.NoError(t, err)
	_, _, err = svc.Register(context.Background(), "carol", "carol@example.com", "s3cret99", "")
	require.NoError(t, err)

	page, err := svc.ListAccounts(context.Background(),
		domain.ListFilter{Search: "jane"},
		sharedQuery.NewPagination(1, 10),
		sharedQuery.Sort{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Pagination.TotalRecords)
}
