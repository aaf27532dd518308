package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kycflow/kycflow-backend/internal/identity/domain"
	"github.com/kycflow/kycflow-backend/internal/storage"
	"github.com/kycflow/kycflow-backend/internal/verification/detect"
	"github.com/kycflow/kycflow-backend/pkg/errors"
	"github.com/kycflow/kycflow-backend/pkg/logger"
	"github.com/kycflow/kycflow-backend/pkg/messaging"
)

// UserStore is the slice of the user repository the identity flows
// need.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateVerificationState(ctx context.Context, userID string, state domain.VerificationState) error
}

// EventPublisher publishes domain events. Satisfied by
// *messaging.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// Service implements registration, profile access and the manual
// review operations available to administrators.
type Service struct {
	users     UserStore
	store     storage.ObjectStore
	publisher EventPublisher
	logger    *logger.Logger
}

// New creates the identity service.
func New(users UserStore, store storage.ObjectStore, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		users:     users,
		store:     store,
		publisher: publisher,
		logger:    log.WithComponent("identity"),
	}
}

// RegisterInput carries a signup request.
type RegisterInput struct {
	PhoneNumber string
	FullName    string
	Email       *string
	Password    string

	// Document is the identity document uploaded at signup, optional.
	Document []byte
}

// Register creates a new unverified account. When a document is
// attached it is classified and kept in the object store for the later
// verification run.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("failed to hash password")
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		PhoneNumber:  input.PhoneNumber,
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: string(hash),
	}

	// Classify the document before touching the database so a bad
	// upload never leaves a half-registered account behind.
	var docKind detect.Kind
	if len(input.Document) > 0 {
		docKind, err = detect.Classify(input.Document)
		if err != nil {
			return nil, err
		}
		key := storage.DocumentKey(user.ID, docKind)
		user.DocumentKey = &key
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Duplicate phone numbers are a signup validation failure,
		// not a resource conflict, on this endpoint.
		if errors.Is(err, errors.ErrConflict) {
			return nil, errors.BadRequest("a user with this phone number already exists")
		}
		return nil, err
	}

	if user.DocumentKey != nil {
		if err := s.store.Put(ctx, *user.DocumentKey, input.Document, storage.ContentType(docKind)); err != nil {
			return nil, err
		}
	}

	event := messaging.UserRegisteredEvent{
		UserID:      user.ID,
		PhoneNumber: user.PhoneNumber,
		FullName:    user.FullName,
	}
	if err := s.publisher.Publish(ctx, messaging.EventUserRegistered, event); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to publish registration event")
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Profile returns the profile of the given user.
func (s *Service) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.ToProfile(), nil
}

// KYCStatus reports whether the given user has passed verification.
func (s *Service) KYCStatus(ctx context.Context, userID string) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.VerificationState().Verified(), nil
}

// ListUsers returns every account, newest first. Admin only.
func (s *Service) ListUsers(ctx context.Context) ([]*domain.Profile, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]*domain.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.ToProfile())
	}
	return profiles, nil
}

// ApproveKYC marks a user verified and clears any rejection reason.
// Approving an already-verified user is a no-op.
func (s *Service) ApproveKYC(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	next := user.VerificationState().Approve()
	if err := s.users.UpdateVerificationState(ctx, userID, next); err != nil {
		return err
	}

	event := messaging.KYCApprovedEvent{UserID: userID}
	if err := s.publisher.Publish(ctx, messaging.EventKYCApproved, event); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to publish approval event")
	}

	s.logger.Info().Str("user_id", userID).Msg("kyc approved")
	return nil
}

// RejectKYC marks a user rejected with a reason. The reason is
// required; rejecting with the same reason twice is a no-op.
func (s *Service) RejectKYC(ctx context.Context, userID, reason string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	next, err := user.VerificationState().Reject(reason)
	if err != nil {
		return err
	}
	if err := s.users.UpdateVerificationState(ctx, userID, next); err != nil {
		return err
	}

	event := messaging.KYCRejectedEvent{UserID: userID, Reason: reason}
	if err := s.publisher.Publish(ctx, messaging.EventKYCRejected, event); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to publish rejection event")
	}

	s.logger.Info().Str("user_id", userID).Str("reason", reason).Msg("kyc rejected")
	return nil
}
