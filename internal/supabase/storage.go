package supabase

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

// StorageClient wraps the Supabase storage API with the two path namespaces
// the service uses: originals/ (private, signed-URL access only) and
// previews/ (public, long cache lifetime).
type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) (*StorageClient, error) {
	baseURL := supabaseURL
	if len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

func OriginalPath(ownerID, projectID uuid.UUID) string {
	return fmt.Sprintf("originals/%s/%s.jpg", ownerID.String(), projectID.String())
}

func PreviewPath(ownerID, projectID uuid.UUID) string {
	return fmt.Sprintf("previews/%s/%s.jpg", ownerID.String(), projectID.String())
}

// UploadOriginal stores the untouched source image. Uploads are write-once;
// the path embeds a fresh project id so collisions are not expected.
func (s *StorageClient) UploadOriginal(ownerID, projectID uuid.UUID, data []byte) (string, error) {
	storagePath := OriginalPath(ownerID, projectID)

	contentType := "image/jpeg"
	upsert := false
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload original: %w", err)
	}

	return storagePath, nil
}

// UploadPreview stores the watermarked preview with public read access and a
// year-long cache lifetime, and returns the storage path plus public URL.
func (s *StorageClient) UploadPreview(ownerID, projectID uuid.UUID, data []byte) (string, string, error) {
	storagePath := PreviewPath(ownerID, projectID)

	contentType := "image/jpeg"
	cacheControl := "public, max-age=31536000"
	upsert := false
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType:  &contentType,
		CacheControl: &cacheControl,
		Upsert:       &upsert,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload preview: %w", err)
	}

	return storagePath, s.PublicURL(storagePath), nil
}

func (s *StorageClient) PublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.baseURL, s.bucket, storagePath)
}

// CreateSignedURL issues a time-boxed read URL for a private object. The URL
// is a bearer credential: anyone holding it can read the object until it
// expires.
func (s *StorageClient) CreateSignedURL(storagePath string, expiresIn time.Duration) (string, error) {
	resp, err := s.client.CreateSignedUrl(s.bucket, storagePath, int(expiresIn.Seconds()))
	if err != nil {
		return "", fmt.Errorf("failed to create signed url: %w", err)
	}
	return resp.SignedURL, nil
}

func (s *StorageClient) DownloadFile(storagePath string) ([]byte, error) {
	data, err := s.client.DownloadFile(s.bucket, storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}

	return data, nil
}

func (s *StorageClient) DeleteFile(storagePath string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{storagePath})
	return err
}
