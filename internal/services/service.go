// Package services holds the two halves of the unlock-gated asset pipeline:
// Enhance creates a locked project from an uploaded photo, Unlock verifies a
// payment reference and releases the original through a signed URL.
package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/models"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/payments"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/prompts"
)

// VisionEnhancer is the single request/response contract with the generative
// model provider.
type VisionEnhancer interface {
	Describe(ctx context.Context, imageData []byte) (string, error)
	Enhance(ctx context.Context, imageData []byte, instruction string) ([]byte, error)
}

// ObjectStore persists the two derived assets and issues URLs for them.
type ObjectStore interface {
	UploadOriginal(ownerID, projectID uuid.UUID, data []byte) (string, error)
	UploadPreview(ownerID, projectID uuid.UUID, data []byte) (string, string, error)
	CreateSignedURL(storagePath string, expiresIn time.Duration) (string, error)
}

// ProjectLedger is the durable per-project record. Implementations return
// models.ErrProjectNotFound for absent or foreign-owned records and
// models.ErrProjectAlreadyUnlocked when the conditional unlock update finds
// the record no longer locked.
type ProjectLedger interface {
	CreateProject(project *models.Project) (*models.Project, error)
	GetProject(projectID, ownerID uuid.UUID) (*models.Project, error)
	ListProjects(ownerID uuid.UUID) ([]models.Project, error)
	UnlockProject(projectID, ownerID uuid.UUID, downloadURL, paymentReference string, unlockedAt time.Time) error
}

// Notifier publishes project lifecycle events to subscribed clients.
// Publication is best effort and never fails a pipeline.
type Notifier interface {
	PublishProjectEvent(projectID uuid.UUID, event string, payload map[string]interface{}) error
}

type ProjectService struct {
	ai            VisionEnhancer
	store         ObjectStore
	ledger        ProjectLedger
	verifier      payments.Verifier
	notifier      Notifier
	catalog       *prompts.Catalog
	paymentSecret string
	log           *zap.Logger
	now           func() time.Time
}

func NewProjectService(
	ai VisionEnhancer,
	store ObjectStore,
	ledger ProjectLedger,
	verifier payments.Verifier,
	notifier Notifier,
	catalog *prompts.Catalog,
	paymentSecret string,
	log *zap.Logger,
) *ProjectService {
	return &ProjectService{
		ai:            ai,
		store:         store,
		ledger:        ledger,
		verifier:      verifier,
		notifier:      notifier,
		catalog:       catalog,
		paymentSecret: paymentSecret,
		log:           log,
		now:           time.Now,
	}
}

func (s *ProjectService) ListProjects(ownerID uuid.UUID) ([]models.Project, error) {
	return s.ledger.ListProjects(ownerID)
}

func (s *ProjectService) GetProject(ownerID uuid.UUID, projectID string) (*models.Project, error) {
	id, err := uuid.Parse(projectID)
	if err != nil {
		return nil, models.ErrProjectNotFound
	}
	return s.ledger.GetProject(id, ownerID)
}
