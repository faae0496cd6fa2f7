package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/slotwise/booking-api/internal/model"
	"github.com/slotwise/booking-api/internal/repository"
	"github.com/slotwise/booking-api/pkg/auth"
	apperrors "github.com/slotwise/booking-api/pkg/errors"
	"github.com/slotwise/booking-api/pkg/security"
)

const bcryptCost = 12

type Servicer interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error)
	Login(ctx context.Context, email, password string) (*model.TokenResponse, error)
	ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error)
}

type Service struct {
	accounts  repository.AccountRepository
	providers repository.ProviderRepository
	jwtSvc    auth.JWTService
	hasher    security.PasswordHasher
}

func NewService(accounts repository.AccountRepository, providers repository.ProviderRepository, jwtSvc auth.JWTService) *Service {
	return &Service{
		accounts:  accounts,
		providers: providers,
		jwtSvc:    jwtSvc,
		hasher:    security.NewBcryptHasher(bcryptCost),
	}
}

// Register creates an account and, when requested, an empty provider
// profile alongside it. A duplicate email surfaces as a conflict error
// distinct from storage failures, so callers can report it properly.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("invalid password", err)
	}

	account := &model.Account{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if apperrors.IsCode(err, apperrors.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if req.IsProvider {
		provider := &model.Provider{
			ID:           uuid.New(),
			AccountID:    account.ID,
			Name:         account.Name,
			Availability: model.AvailabilityMap{},
		}
		if err := s.providers.Create(ctx, provider); err != nil {
			return nil, fmt.Errorf("failed to create provider profile: %w", err)
		}
	}

	log.Info().
		Str("account_id", account.ID.String()).
		Bool("provider", req.IsProvider).
		Msg("account registered")

	return s.issueToken(account)
}

func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	return s.issueToken(account)
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	accountID, ok := claims["account_id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	parsedID, err := uuid.Parse(accountID)
	if err != nil {
		return nil, fmt.Errorf("invalid account ID in token: %w", err)
	}

	return &model.TokenClaims{
		AccountID: parsedID,
		Email:     email,
	}, nil
}

func (s *Service) issueToken(account *model.Account) (*model.TokenResponse, error) {
	token, expiresAt, err := s.jwtSvc.GenerateAccessToken(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &model.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		AccountID:   account.ID,
	}, nil
}
