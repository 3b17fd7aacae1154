package models

// Field names are camelCase to match the mobile client payloads.

type EnhanceRequest struct {
	ImageBase64  string `json:"imageBase64" binding:"required"`
	StyleID      string `json:"styleId" binding:"required"`
	SystemPrompt string `json:"systemPrompt,omitempty"`
}

type UnlockRequest struct {
	ResourceID string `json:"resourceId" binding:"required,min=4"`
	Reference  string `json:"reference" binding:"required,min=4"`
}
