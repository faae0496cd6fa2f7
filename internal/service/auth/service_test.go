package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotwise/booking-api/internal/model"
	pkgauth "github.com/slotwise/booking-api/pkg/auth"
	apperrors "github.com/slotwise/booking-api/pkg/errors"
)

type fakeAccountRepo struct {
	byEmail map[string]*model.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byEmail: make(map[string]*model.Account)}
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *model.Account) error {
	if _, exists := f.byEmail[account.Email]; exists {
		return apperrors.Conflict("email already registered", nil)
	}
	f.byEmail[account.Email] = account
	return nil
}

func (f *fakeAccountRepo) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	for _, a := range f.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperrors.NotFound("account", nil)
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.NotFound("account", nil)
	}
	return a, nil
}

type fakeProviderRepo struct {
	created []*model.Provider
}

func (f *fakeProviderRepo) Create(ctx context.Context, p *model.Provider) error {
	f.created = append(f.created, p)
	return nil
}

func (f *fakeProviderRepo) Get(ctx context.Context, id uuid.UUID) (*model.Provider, error) {
	return nil, apperrors.NotFound("provider", nil)
}

func (f *fakeProviderRepo) GetByAccount(ctx context.Context, accountID uuid.UUID) (*model.Provider, error) {
	return nil, apperrors.NotFound("provider", nil)
}

func (f *fakeProviderRepo) List(ctx context.Context) ([]*model.Provider, error) { return nil, nil }

func (f *fakeProviderRepo) Search(ctx context.Context, query string) ([]*model.Provider, error) {
	return nil, nil
}

func (f *fakeProviderRepo) Update(ctx context.Context, p *model.Provider) error { return nil }

func (f *fakeProviderRepo) UpdateAvailability(ctx context.Context, id uuid.UUID, availability model.AvailabilityMap) error {
	return nil
}

func newTestService() (*Service, *fakeAccountRepo, *fakeProviderRepo) {
	accounts := newFakeAccountRepo()
	providers := &fakeProviderRepo{}
	jwtSvc := pkgauth.NewJWTService("test-secret", time.Hour)
	return NewService(accounts, providers, jwtSvc), accounts, providers
}

func TestRegisterClient(t *testing.T) {
	svc, _, providers := newTestService()

	tokens, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "long-enough-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Empty(t, providers.created)
}

func TestRegisterProviderCreatesProfile(t *testing.T) {
	svc, _, providers := newTestService()

	tokens, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:       "Ana",
		Email:      "ana@example.com",
		Password:   "long-enough-password",
		IsProvider: true,
	})
	require.NoError(t, err)

	require.Len(t, providers.created, 1)
	assert.Equal(t, tokens.AccountID, providers.created[0].AccountID)
	assert.NotNil(t, providers.created[0].Availability)
	assert.Empty(t, providers.created[0].Availability)
}

func TestRegisterDuplicateEmailIsTypedConflict(t *testing.T) {
	svc, _, _ := newTestService()

	req := &model.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "long-enough-password",
	}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "short",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "long-enough-password",
	})
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), "ana@example.com", "long-enough-password")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	_, err = svc.Login(context.Background(), "ana@example.com", "wrong-password")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))

	_, err = svc.Login(context.Background(), "nobody@example.com", "long-enough-password")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}
