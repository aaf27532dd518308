package service_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kycflow/kycflow-backend/internal/identity/domain"
	"github.com/kycflow/kycflow-backend/internal/notify"
	"github.com/kycflow/kycflow-backend/internal/storage"
	"github.com/kycflow/kycflow-backend/internal/verification/extract"
	"github.com/kycflow/kycflow-backend/internal/verification/matcher"
	"github.com/kycflow/kycflow-backend/internal/verification/service"
	"github.com/kycflow/kycflow-backend/pkg/errors"
	"github.com/kycflow/kycflow-backend/pkg/logger"
	"github.com/kycflow/kycflow-backend/pkg/messaging"
)

type fakeUsers struct {
	user *domain.User

	verifiedID string
	photoKey   *string
	calls      int
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, errors.NotFound("user")
	}
	return f.user, nil
}

func (f *fakeUsers) SetVerifiedWithPhoto(_ context.Context, userID string, photoKey *string) error {
	f.calls++
	f.verifiedID = userID
	f.photoKey = photoKey
	return nil
}

type fakePublisher struct {
	events []string
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, eventType string, _ interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, eventType)
	return nil
}

func testDocument(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 80, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 80; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 180, B: 160, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testUser() *domain.User {
	email := "jane@example.com"
	return &domain.User{
		ID:          "u1",
		PhoneNumber: "+15550001111",
		FullName:    "Jane Doe",
		Email:       &email,
	}
}

type fixture struct {
	svc       *service.Service
	users     *fakeUsers
	analyzer  *extract.FakeAnalyzer
	detector  *extract.FakeDetector
	store     *storage.MemoryStore
	mailer    *notify.FakeMailer
	publisher *fakePublisher
}

func newFixture(user *domain.User) *fixture {
	f := &fixture{
		users: &fakeUsers{user: user},
		analyzer: &extract.FakeAnalyzer{
			Words: []string{"REPUBLIC", "OF", "UTOPIA", "JANE", "DOE", "ID", "12345"},
		},
		detector: &extract.FakeDetector{
			Boxes: []extract.BoundingBox{{Left: 0.25, Top: 0.25, Width: 0.5, Height: 0.5}},
		},
		store:     storage.NewMemoryStore(),
		mailer:    &notify.FakeMailer{},
		publisher: &fakePublisher{},
	}
	f.svc = service.New(
		f.users,
		extract.NewTextExtractor(f.analyzer),
		extract.NewFaceExtractor(f.detector),
		matcher.New(matcher.DefaultThreshold),
		f.store,
		f.mailer,
		f.publisher,
		logger.New("test", "test"),
	)
	return f
}

func TestVerifyIdentity_Match(t *testing.T) {
	f := newFixture(testUser())

	result, err := f.svc.VerifyIdentity(context.Background(), "u1", testDocument(t))
	require.NoError(t, err)
	require.True(t, result.Verified)
	assert.GreaterOrEqual(t, result.Score, matcher.DefaultThreshold)

	require.Equal(t, 1, f.users.calls)
	assert.Equal(t, "u1", f.users.verifiedID)
	require.NotNil(t, f.users.photoKey)
	assert.Equal(t, "profile_photos/u1.jpg", *f.users.photoKey)

	exists, err := f.store.Exists(context.Background(), "profile_photos/u1.jpg")
	require.NoError(t, err)
	assert.True(t, exists, "profile photo should be stored")

	exists, err = f.store.Exists(context.Background(), "documents/u1.png")
	require.NoError(t, err)
	assert.False(t, exists, "the uploaded document is transient and never stored here")

	assert.Equal(t, []string{messaging.EventKYCVerified}, f.publisher.events)
	assert.Empty(t, f.mailer.Sent)
}

func TestVerifyIdentity_MatchWithoutFace(t *testing.T) {
	f := newFixture(testUser())
	f.detector.Boxes = nil

	result, err := f.svc.VerifyIdentity(context.Background(), "u1", testDocument(t))
	require.NoError(t, err)
	require.True(t, result.Verified, "a missing face must not block verification")

	require.Equal(t, 1, f.users.calls)
	assert.Nil(t, f.users.photoKey)

	exists, err := f.store.Exists(context.Background(), "profile_photos/u1.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestVerifyIdentity_Mismatch(t *testing.T) {
	f := newFixture(testUser())
	f.analyzer.Words = []string{"REPUBLIC", "OF", "UTOPIA", "ALICE", "WONG"}

	result, err := f.svc.VerifyIdentity(context.Background(), "u1", testDocument(t))
	require.NoError(t, err)
	require.False(t, result.Verified)

	assert.Equal(t, 0, f.users.calls, "a mismatch must not touch the user's state")
	assert.Empty(t, f.publisher.events)
	assert.Equal(t, 1, f.detector.Calls, "face extraction runs before the name check")

	exists, err := f.store.Exists(context.Background(), "profile_photos/u1.jpg")
	require.NoError(t, err)
	assert.False(t, exists, "the crop is discarded on mismatch")

	exists, err = f.store.Exists(context.Background(), "documents/u1.png")
	require.NoError(t, err)
	assert.False(t, exists, "the uploaded document is transient and never stored here")

	require.Len(t, f.mailer.Sent, 1)
	assert.Equal(t, "jane@example.com", f.mailer.Sent[0].To)
	assert.Equal(t, "Document Rejected", f.mailer.Sent[0].Subject)
}

func TestVerifyIdentity_FaceProviderFailureAborts(t *testing.T) {
	f := newFixture(testUser())
	f.analyzer.Words = []string{"ALICE", "WONG"}
	f.detector.Err = stderrors.New("face provider down")

	_, err := f.svc.VerifyIdentity(context.Background(), "u1", testDocument(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrExtraction))

	assert.Equal(t, 0, f.users.calls)
	assert.Empty(t, f.mailer.Sent, "a provider failure must abort before the mismatch mail")
}

func TestVerifyIdentity_MismatchMailFailure(t *testing.T) {
	f := newFixture(testUser())
	f.analyzer.Words = []string{"ALICE", "WONG"}
	f.mailer.Err = stderrors.New("smtp down")

	_, err := f.svc.VerifyIdentity(context.Background(), "u1", testDocument(t))
	require.Error(t, err)
	assert.Equal(t, 0, f.users.calls)
}

func TestVerifyIdentity_MismatchWithoutEmail(t *testing.T) {
	user := testUser()
	user.Email = nil
	f := newFixture(user)
	f.analyzer.Words = []string{"ALICE", "WONG"}

	result, err := f.svc.VerifyIdentity(context.Background(), "u1", testDocument(t))
	require.NoError(t, err)
	assert.False(t, result.Verified)
	assert.Empty(t, f.mailer.Sent)
}

func TestVerifyIdentity_UnsupportedDocument(t *testing.T) {
	f := newFixture(testUser())

	_, err := f.svc.VerifyIdentity(context.Background(), "u1", []byte("GIF89a nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedFileType))
	assert.Empty(t, f.analyzer.Calls, "unsupported uploads never reach the provider")
}

func TestVerifyIdentity_UnknownUser(t *testing.T) {
	f := newFixture(testUser())

	_, err := f.svc.VerifyIdentity(context.Background(), "missing", testDocument(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestVerifyIdentity_ExtractionFailure(t *testing.T) {
	f := newFixture(testUser())
	f.analyzer.Err = stderrors.New("throttled")

	_, err := f.svc.VerifyIdentity(context.Background(), "u1", testDocument(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrExtraction))
	assert.Equal(t, 0, f.users.calls)
}

func TestVerifyIdentity_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture(testUser())
	f.publisher.err = stderrors.New("broker down")

	result, err := f.svc.VerifyIdentity(context.Background(), "u1", testDocument(t))
	require.NoError(t, err, "event delivery is best effort once the user is verified")
	assert.True(t, result.Verified)
	assert.Equal(t, 1, f.users.calls)
}
