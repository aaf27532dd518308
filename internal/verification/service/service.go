package service

import (
	"context"

	"github.com/kycflow/kycflow-backend/internal/identity/domain"
	"github.com/kycflow/kycflow-backend/internal/notify"
	"github.com/kycflow/kycflow-backend/internal/storage"
	"github.com/kycflow/kycflow-backend/internal/verification/detect"
	"github.com/kycflow/kycflow-backend/internal/verification/extract"
	"github.com/kycflow/kycflow-backend/internal/verification/matcher"
	"github.com/kycflow/kycflow-backend/pkg/logger"
	"github.com/kycflow/kycflow-backend/pkg/messaging"
)

// UserStore is the slice of the user repository the verification flow
// needs.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	SetVerifiedWithPhoto(ctx context.Context, userID string, photoKey *string) error
}

// EventPublisher publishes domain events. Satisfied by
// *messaging.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// Result is the outcome of a verification attempt.
type Result struct {
	Verified bool
	Score    int
}

// Service orchestrates automated identity verification: classify the
// uploaded document, extract its text, fuzzy-match the user's stated
// name against it, and on success crop the document photo into a
// profile photo and mark the user verified.
type Service struct {
	users     UserStore
	text      *extract.TextExtractor
	face      *extract.FaceExtractor
	matcher   *matcher.Matcher
	store     storage.ObjectStore
	mailer    notify.Mailer
	publisher EventPublisher
	logger    *logger.Logger
}

// New creates the verification service.
func New(
	users UserStore,
	text *extract.TextExtractor,
	face *extract.FaceExtractor,
	m *matcher.Matcher,
	store storage.ObjectStore,
	mailer notify.Mailer,
	publisher EventPublisher,
	log *logger.Logger,
) *Service {
	return &Service{
		users:     users,
		text:      text,
		face:      face,
		matcher:   m,
		store:     store,
		mailer:    mailer,
		publisher: publisher,
		logger:    log.WithComponent("verification"),
	}
}

// VerifyIdentity runs the full verification flow for a user's uploaded
// identity document.
//
// Extraction runs before the name check, so a provider failure aborts
// the attempt even when the document would not have matched. The
// uploaded document is never persisted here; only the face crop is
// stored, and only on a match.
//
// On a name mismatch the crop is discarded, the user's stored state is
// left untouched, the user is notified by mail and the attempt reports
// Verified=false. A mail delivery failure fails the attempt. On a
// match the user is marked verified in a single write, together with
// the profile photo key when a face could be extracted. Absence of a
// detectable face never blocks verification.
func (s *Service) VerifyIdentity(ctx context.Context, userID string, document []byte) (*Result, error) {
	kind, err := detect.Classify(document)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	extractedText, err := s.text.Extract(ctx, document, kind)
	if err != nil {
		return nil, err
	}

	var crop []byte
	if kind.IsImage() {
		crop, err = s.face.Extract(ctx, document)
		if err != nil {
			return nil, err
		}
	}

	score := s.matcher.Score(user.FullName, extractedText)
	if !s.matcher.Matches(user.FullName, extractedText) {
		s.logger.Info().
			Str("user_id", user.ID).
			Int("score", score).
			Msg("identity document rejected: name mismatch")

		if err := s.notifyRejection(ctx, user); err != nil {
			return nil, err
		}
		return &Result{Verified: false, Score: score}, nil
	}

	var photoKey *string
	if crop != nil {
		key := storage.ProfilePhotoKey(user.ID)
		if err := s.store.Put(ctx, key, crop, "image/jpeg"); err != nil {
			return nil, err
		}
		photoKey = &key
	}

	if err := s.users.SetVerifiedWithPhoto(ctx, user.ID, photoKey); err != nil {
		return nil, err
	}

	event := messaging.KYCVerifiedEvent{UserID: user.ID, MatchScore: score}
	if photoKey != nil {
		event.PhotoKey = *photoKey
	}
	if err := s.publisher.Publish(ctx, messaging.EventKYCVerified, event); err != nil {
		// The user is already verified; event delivery is best effort.
		s.logger.Error().Err(err).
			Str("user_id", user.ID).
			Msg("failed to publish verification event")
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Int("score", score).
		Bool("photo_extracted", photoKey != nil).
		Msg("identity verified")

	return &Result{Verified: true, Score: score}, nil
}

func (s *Service) notifyRejection(ctx context.Context, user *domain.User) error {
	if user.Email == nil || *user.Email == "" {
		s.logger.Warn().
			Str("user_id", user.ID).
			Msg("cannot send rejection mail: user has no email address")
		return nil
	}
	return notify.SendDocumentRejected(ctx, s.mailer, *user.Email)
}
