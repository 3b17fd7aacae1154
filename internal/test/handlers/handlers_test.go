package handlers_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/handlers"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/middleware"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/models"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/prompts"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/services"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/supabase"
)

type stubAI struct {
	enhanced []byte
}

func (s *stubAI) Describe(ctx context.Context, imageData []byte) (string, error) {
	return "One face, even lighting, no visible text.", nil
}

func (s *stubAI) Enhance(ctx context.Context, imageData []byte, instruction string) ([]byte, error) {
	return s.enhanced, nil
}

type stubStore struct{}

func (s *stubStore) UploadOriginal(ownerID, projectID uuid.UUID, data []byte) (string, error) {
	return supabase.OriginalPath(ownerID, projectID), nil
}

func (s *stubStore) UploadPreview(ownerID, projectID uuid.UUID, data []byte) (string, string, error) {
	path := supabase.PreviewPath(ownerID, projectID)
	return path, "https://cdn.test/object/public/glowups/" + path, nil
}

func (s *stubStore) CreateSignedURL(storagePath string, expiresIn time.Duration) (string, error) {
	return "https://cdn.test/object/sign/glowups/" + storagePath + "?token=stub", nil
}

type stubLedger struct {
	projects map[uuid.UUID]models.Project
}

func (s *stubLedger) CreateProject(project *models.Project) (*models.Project, error) {
	project.CreatedAt = time.Now()
	s.projects[project.ID] = *project
	return project, nil
}

func (s *stubLedger) GetProject(projectID, ownerID uuid.UUID) (*models.Project, error) {
	project, ok := s.projects[projectID]
	if !ok || project.OwnerID != ownerID {
		return nil, models.ErrProjectNotFound
	}
	copied := project
	return &copied, nil
}

func (s *stubLedger) ListProjects(ownerID uuid.UUID) ([]models.Project, error) {
	var out []models.Project
	for _, project := range s.projects {
		if project.OwnerID == ownerID {
			out = append(out, project)
		}
	}
	return out, nil
}

func (s *stubLedger) UnlockProject(projectID, ownerID uuid.UUID, downloadURL, paymentReference string, unlockedAt time.Time) error {
	project, ok := s.projects[projectID]
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
	s.projects[projectID] = project
	return nil
}

type stubVerifier struct {
	confirmed bool
}

func (s *stubVerifier) Verify(ctx context.Context, reference, secret string) (bool, error) {
	return s.confirmed, nil
}

type stubNotifier struct{}

func (s *stubNotifier) PublishProjectEvent(projectID uuid.UUID, event string, payload map[string]interface{}) error {
	return nil
}

type handlerEnv struct {
	router   *gin.Engine
	ledger   *stubLedger
	verifier *stubVerifier
	owner    uuid.UUID
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := prompts.NewCatalog()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 24, 24)), nil))

	env := &handlerEnv{
		ledger:   &stubLedger{projects: make(map[uuid.UUID]models.Project)},
		verifier: &stubVerifier{confirmed: true},
		owner:    uuid.New(),
	}

	service := services.NewProjectService(
		&stubAI{enhanced: buf.Bytes()}, &stubStore{}, env.ledger, env.verifier, &stubNotifier{},
		catalog, "sk_test_secret", zap.NewNop(),
	)

	log := zap.NewNop()
	enhanceHandler := handlers.NewEnhanceHandler(service, log)
	unlockHandler := handlers.NewUnlockHandler(service, log)
	projectsHandler := handlers.NewProjectsHandler(service, log)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, env.owner.String())
	})
	router.POST("/enhance", enhanceHandler.Enhance)
	router.POST("/unlock", unlockHandler.Unlock)
	router.GET("/projects", projectsHandler.ListProjects)
	router.GET("/projects/:project_id", projectsHandler.GetProject)

	env.router = router
	return env
}

func (e *handlerEnv) seedLocked(t *testing.T) uuid.UUID {
	t.Helper()
	projectID := uuid.New()
	_, err := e.ledger.CreateProject(&models.Project{
		ID:           projectID,
		OwnerID:      e.owner,
		StyleID:      "portrait",
		Status:       models.StatusLocked,
		OriginalPath: supabase.OriginalPath(e.owner, projectID),
		PreviewPath:  supabase.PreviewPath(e.owner, projectID),
		PreviewURL:   "https://cdn.test/object/public/glowups/" + supabase.PreviewPath(e.owner, projectID),
		Vision:       "One face, even lighting.",
	})
	require.NoError(t, err)
	return projectID
}

func (e *handlerEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestEnhanceHandler_Success(t *testing.T) {
	env := newHandlerEnv(t)

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 16)), nil))

	w := env.do("POST", "/enhance", models.EnhanceRequest{
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		StyleID:     "portrait",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.EnhanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ProjectID)
	assert.Contains(t, resp.PreviewURL, "previews/")
	assert.NotEmpty(t, resp.Vision)
}

func TestEnhanceHandler_InvalidPayload(t *testing.T) {
	env := newHandlerEnv(t)

	w := env.do("POST", "/enhance", map[string]string{"styleId": "portrait"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnlockHandler_Success(t *testing.T) {
	env := newHandlerEnv(t)
	projectID := env.seedLocked(t)

	w := env.do("POST", "/unlock", models.UnlockRequest{
		ResourceID: projectID.String(),
		Reference:  "tx_456",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.UnlockResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.DownloadURL, "originals/")
}

func TestUnlockHandler_Declined(t *testing.T) {
	env := newHandlerEnv(t)
	projectID := env.seedLocked(t)
	env.verifier.confirmed = false

	w := env.do("POST", "/unlock", models.UnlockRequest{
		ResourceID: projectID.String(),
		Reference:  "tx_123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUnlockHandler_NotFound(t *testing.T) {
	env := newHandlerEnv(t)

	w := env.do("POST", "/unlock", models.UnlockRequest{
		ResourceID: uuid.New().String(),
		Reference:  "tx_456",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnlockHandler_AlreadyUnlocked(t *testing.T) {
	env := newHandlerEnv(t)
	projectID := env.seedLocked(t)

	first := env.do("POST", "/unlock", models.UnlockRequest{
		ResourceID: projectID.String(),
		Reference:  "tx_first",
	})
	require.Equal(t, http.StatusOK, first.Code)

	second := env.do("POST", "/unlock", models.UnlockRequest{
		ResourceID: projectID.String(),
		Reference:  "tx_second",
	})
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestUnlockHandler_ShortFields(t *testing.T) {
	env := newHandlerEnv(t)

	w := env.do("POST", "/unlock", map[string]string{
		"resourceId": "ab",
		"reference":  "tx",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectsHandler_ListHidesOriginalPath(t *testing.T) {
	env := newHandlerEnv(t)
	env.seedLocked(t)

	w := env.do("GET", "/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.NotContains(t, w.Body.String(), "originals/")
	assert.NotContains(t, w.Body.String(), "downloadUrl")

	var resp models.ProjectListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, models.StatusLocked, resp.Projects[0].Status)
}

func TestProjectsHandler_GetUnknown(t *testing.T) {
	env := newHandlerEnv(t)

	w := env.do("GET", "/projects/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
