package models

import "time"

type EnhanceResponse struct {
	ProjectID  string `json:"projectId"`
	PreviewURL string `json:"previewUrl"`
	Vision     string `json:"vision"`
}

type UnlockResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

// ProjectResponse mirrors what the app renders on the result screens. The
// original storage path is never included; locked projects carry no
// download URL.
type ProjectResponse struct {
	ID          string     `json:"id"`
	StyleID     string     `json:"styleId"`
	Status      string     `json:"status"`
	PreviewURL  string     `json:"previewUrl"`
	DownloadURL string     `json:"downloadUrl,omitempty"`
	Vision      string     `json:"vision"`
	CreatedAt   time.Time  `json:"createdAt"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// FromProject builds the client view of a ledger row.
func FromProject(p *Project) ProjectResponse {
	resp := ProjectResponse{
		ID:         p.ID.String(),
		StyleID:    p.StyleID,
		Status:     p.Status,
		PreviewURL: p.PreviewURL,
		Vision:     p.Vision,
		CreatedAt:  p.CreatedAt,
	}
	if p.Status == StatusUnlocked && p.DownloadURL.Valid {
		resp.DownloadURL = p.DownloadURL.String
	}
	if p.UnlockedAt.Valid {
		t := p.UnlockedAt.Time
		resp.UnlockedAt = &t
	}
	return resp
}
