package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/models"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/supabase"
)

// DownloadURLTTL bounds how long an issued download URL stays readable. The
// URL is a bearer credential for the original asset within this window.
const DownloadURLTTL = 24 * time.Hour

// Unlock runs the verify half of the state machine: ownership check, payment
// verification, signed URL issuance and the conditional ledger transition.
// A declined or failed verification leaves the record untouched.
func (s *ProjectService) Unlock(ctx context.Context, ownerID uuid.UUID, resourceID, reference string) (string, error) {
	projectID, err := uuid.Parse(resourceID)
	if err != nil {
		return "", models.ErrProjectNotFound
	}

	project, err := s.ledger.GetProject(projectID, ownerID)
	if err != nil {
		return "", err
	}

	confirmed, err := s.verifier.Verify(ctx, reference, s.paymentSecret)
	if err != nil {
		// Only configuration problems reach here; ordinary declines are a
		// false result.
		return "", err
	}
	if !confirmed {
		return "", ErrPaymentDeclined
	}

	downloadURL, err := s.store.CreateSignedURL(project.OriginalPath, DownloadURLTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue download url: %w", err)
	}

	if err := s.ledger.UnlockProject(projectID, ownerID, downloadURL, reference, s.now()); err != nil {
		return "", err
	}

	if err := s.notifier.PublishProjectEvent(projectID, "project_unlocked",
		supabase.ProjectUnlockedPayload(projectID)); err != nil {
		s.log.Warn("failed to publish project event",
			zap.String("project_id", projectID.String()), zap.Error(err))
	}

	s.log.Info("project unlocked",
		zap.String("owner_id", ownerID.String()),
		zap.String("project_id", projectID.String()))

	return downloadURL, nil
}
