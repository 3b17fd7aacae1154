package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"regexp"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/models"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/supabase"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/watermark"
)

const enhanceGuardrails = "Preserve the subject identity, pose, framing, and background. " +
	"Remove artifacts. Do not add text or watermarks. " +
	"Increase clarity, depth, dynamic range, and realistic skin tones."

var dataURLPrefix = regexp.MustCompile(`^data:image/(png|jpeg|jpg|webp);base64,`)

// Enhance runs the create half of the state machine: vision analysis,
// enhancement, watermarking, asset persistence and ledger creation. The
// ledger write comes last so a failure anywhere earlier leaves no record;
// any assets already uploaded are unreachable orphans.
//
// Repeating a failed call creates a new project: there is no dedup key.
func (s *ProjectService) Enhance(ctx context.Context, ownerID uuid.UUID, req models.EnhanceRequest) (*models.Project, error) {
	original, err := decodeImagePayload(req.ImageBase64)
	if err != nil {
		return nil, err
	}

	style, ok := s.catalog.Lookup(req.StyleID)
	if !ok {
		return nil, ErrUnknownStyle
	}
	prompt := style.Prompt
	if req.SystemPrompt != "" {
		prompt = req.SystemPrompt
	}

	// The vision summary is a preservation constraint: it is fed back into
	// the enhancement instruction so the generative step does not alter
	// identity-bearing features.
	vision, err := s.ai.Describe(ctx, original)
	if err != nil {
		return nil, fmt.Errorf("vision analysis failed: %w", err)
	}

	instruction := fmt.Sprintf("%s\nSTRICTLY PRESERVE: %s\n%s", prompt, vision, enhanceGuardrails)

	enhanced, err := s.ai.Enhance(ctx, original, instruction)
	if err != nil {
		return nil, fmt.Errorf("enhancement failed: %w", err)
	}

	projectID := uuid.New()

	originalPath, err := s.store.UploadOriginal(ownerID, projectID, original)
	if err != nil {
		return nil, fmt.Errorf("failed to store original: %w", err)
	}

	preview, err := watermark.Apply(enhanced)
	if err != nil {
		return nil, fmt.Errorf("failed to watermark preview: %w", err)
	}

	previewPath, previewURL, err := s.store.UploadPreview(ownerID, projectID, preview)
	if err != nil {
		return nil, fmt.Errorf("failed to store preview: %w", err)
	}

	project, err := s.ledger.CreateProject(&models.Project{
		ID:           projectID,
		OwnerID:      ownerID,
		StyleID:      req.StyleID,
		Status:       models.StatusLocked,
		OriginalPath: originalPath,
		PreviewPath:  previewPath,
		PreviewURL:   previewURL,
		Vision:       vision,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger record: %w", err)
	}

	if err := s.notifier.PublishProjectEvent(projectID, "project_created",
		supabase.ProjectCreatedPayload(projectID, previewURL)); err != nil {
		s.log.Warn("failed to publish project event",
			zap.String("project_id", projectID.String()), zap.Error(err))
	}

	s.log.Info("project prepared",
		zap.String("owner_id", ownerID.String()),
		zap.String("project_id", projectID.String()),
		zap.String("style_id", req.StyleID))

	return project, nil
}

// decodeImagePayload strips an optional data-URL prefix, decodes the base64
// body and verifies it is a raster image we can work with.
func decodeImagePayload(imageBase64 string) ([]byte, error) {
	clean := dataURLPrefix.ReplaceAllString(imageBase64, "")
	if clean == "" {
		return nil, ErrInvalidImage
	}

	data, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, ErrInvalidImage
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, ErrInvalidImage
	}

	return data, nil
}
