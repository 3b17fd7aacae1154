package services_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/models"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/prompts"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/services"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/supabase"
)

// fakeEnhancer answers vision and enhancement calls without a network.
type fakeEnhancer struct {
	vision     string
	enhanced   []byte
	describeErr error
	enhanceErr  error
}

func (f *fakeEnhancer) Describe(ctx context.Context, imageData []byte) (string, error) {
	if f.describeErr != nil {
		return "", f.describeErr
	}
	return f.vision, nil
}

func (f *fakeEnhancer) Enhance(ctx context.Context, imageData []byte, instruction string) ([]byte, error) {
	if f.enhanceErr != nil {
		return nil, f.enhanceErr
	}
	return f.enhanced, nil
}

// fakeStore records uploads and signed URL issuance in memory.
type fakeStore struct {
	mu            sync.Mutex
	originals     map[string][]byte
	previews      map[string][]byte
	signedTTL     time.Duration
	signedCount   int
	uploadOrigErr error
	uploadPrevErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		originals: make(map[string][]byte),
		previews:  make(map[string][]byte),
	}
}

func (f *fakeStore) UploadOriginal(ownerID, projectID uuid.UUID, data []byte) (string, error) {
	if f.uploadOrigErr != nil {
		return "", f.uploadOrigErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	path := supabase.OriginalPath(ownerID, projectID)
	f.originals[path] = data
	return path, nil
}

func (f *fakeStore) UploadPreview(ownerID, projectID uuid.UUID, data []byte) (string, string, error) {
	if f.uploadPrevErr != nil {
		return "", "", f.uploadPrevErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	path := supabase.PreviewPath(ownerID, projectID)
	f.previews[path] = data
	return path, "https://cdn.test/object/public/glowups/" + path, nil
}

func (f *fakeStore) CreateSignedURL(storagePath string, expiresIn time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signedTTL = expiresIn
	f.signedCount++
	return "https://cdn.test/object/sign/glowups/" + storagePath + "?token=fake", nil
}

// fakeLedger is an in-memory project ledger with the same conditional
// unlock semantics as the Postgres implementation.
type fakeLedger struct {
	mu       sync.Mutex
	projects map[uuid.UUID]models.Project
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{projects: make(map[uuid.UUID]models.Project)}
}

func (f *fakeLedger) CreateProject(project *models.Project) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	project.CreatedAt = time.Now()
	f.projects[project.ID] = *project
	return project, nil
}

func (f *fakeLedger) GetProject(projectID, ownerID uuid.UUID) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	project, ok := f.projects[projectID]
	if !ok || project.OwnerID != ownerID {
		return nil, models.ErrProjectNotFound
	}
	copied := project
	return &copied, nil
}

func (f *fakeLedger) ListProjects(ownerID uuid.UUID) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Project
	for _, project := range f.projects {
		if project.OwnerID == ownerID {
			out = append(out, project)
		}
	}
	return out, nil
}

func (f *fakeLedger) UnlockProject(projectID, ownerID uuid.UUID, downloadURL, paymentReference string, unlockedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	project, ok := f.projects[projectID]
	if !ok || project.OwnerID != ownerID {
		return models.ErrProjectNotFound
	}
	if project.Status != models.StatusLocked {
		return models.ErrProjectAlreadyUnlocked
	}
	project.Status = models.StatusUnlocked
	project.DownloadURL.String = downloadURL
	project.DownloadURL.Valid = true
	project.PaymentReference.String = paymentReference
	project.PaymentReference.Valid = true
	project.UnlockedAt.Time = unlockedAt
	project.UnlockedAt.Valid = true
	f.projects[projectID] = project
	return nil
}

// fakeVerifier returns a canned verification result.
type fakeVerifier struct {
	confirmed bool
	err       error
	lastRef   string
}

func (f *fakeVerifier) Verify(ctx context.Context, reference, secret string) (bool, error) {
	f.lastRef = reference
	if f.err != nil {
		return false, f.err
	}
	return f.confirmed, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeNotifier) PublishProjectEvent(projectID uuid.UUID, event string, payload map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

type testEnv struct {
	service  *services.ProjectService
	ai       *fakeEnhancer
	store    *fakeStore
	ledger   *fakeLedger
	verifier *fakeVerifier
	notifier *fakeNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	catalog, err := prompts.NewCatalog()
	require.NoError(t, err)

	env := &testEnv{
		ai: &fakeEnhancer{
			vision:   "A smiling subject, soft window light, no visible text.",
			enhanced: testJPEG(t, 32, 32),
		},
		store:    newFakeStore(),
		ledger:   newFakeLedger(),
		verifier: &fakeVerifier{confirmed: true},
		notifier: &fakeNotifier{},
	}
	env.service = services.NewProjectService(
		env.ai, env.store, env.ledger, env.verifier, env.notifier,
		catalog, "sk_test_secret", zap.NewNop(),
	)
	return env
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 8), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}))
	return buf.Bytes()
}

func testJPEGBase64(t *testing.T) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString(testJPEG(t, 16, 16))
}
