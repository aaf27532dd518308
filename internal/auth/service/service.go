package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kycflow/kycflow-backend/internal/auth/blacklist"
	"github.com/kycflow/kycflow-backend/internal/auth/jwt"
	"github.com/kycflow/kycflow-backend/internal/identity/domain"
	"github.com/kycflow/kycflow-backend/pkg/errors"
	"github.com/kycflow/kycflow-backend/pkg/logger"
)

// UserStore is the slice of the user repository the auth flow needs.
type UserStore interface {
	GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.User, error)
	TouchLastLogin(ctx context.Context, userID string) error
}

// Service implements login and logout. Users authenticate with their
// phone number and password.
type Service struct {
	users     UserStore
	jwt       *jwt.Manager
	blacklist blacklist.Blacklist
	logger    *logger.Logger
}

// New creates the auth service.
func New(users UserStore, manager *jwt.Manager, bl blacklist.Blacklist, log *logger.Logger) *Service {
	return &Service{
		users:     users,
		jwt:       manager,
		blacklist: bl,
		logger:    log.WithComponent("auth"),
	}
}

// Login verifies the phone number and password and issues a token pair.
// Unknown numbers and wrong passwords are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, phoneNumber, password string) (*jwt.TokenPair, error) {
	user, err := s.users.GetByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.InvalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.InvalidCredentials()
	}

	pair, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, errors.Internal("failed to issue tokens")
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds; last_login is informational.
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return pair, nil
}

// Logout revokes the presented refresh token. Every failure mode maps
// to the same generic error so the endpoint leaks nothing about token
// validity.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return errors.BadRequest("An error occurred, please try again.")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
		s.logger.Error().Err(err).Msg("failed to revoke refresh token")
		return errors.BadRequest("An error occurred, please try again.")
	}

	s.logger.Info().Str("user_id", claims.UserID).Msg("user logged out")
	return nil
}

// IsRefreshTokenUsable reports whether a refresh token is valid and has
// not been revoked.
func (s *Service) IsRefreshTokenUsable(ctx context.Context, refreshToken string) (bool, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return false, nil
	}
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return false, err
	}
	return !revoked, nil
}
