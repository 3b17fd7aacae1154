package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

// RealtimeClient notifies the mobile app about project lifecycle changes.
// The app subscribes to its project records while the preview and unlock
// screens are open.
type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Go client has no direct Realtime publish; ledger writes trigger
	// Realtime change events on their own. This hook exists for explicit
	// events via the Realtime REST API if that ever becomes necessary.
	return nil
}

func (r *RealtimeClient) PublishProjectEvent(projectID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("project:%s", projectID.String())
	return r.PublishEvent(channel, event, payload)
}

func ProjectCreatedPayload(projectID uuid.UUID, previewURL string) map[string]interface{} {
	return map[string]interface{}{
		"project_id":  projectID.String(),
		"status":      "locked",
		"preview_url": previewURL,
	}
}

func ProjectUnlockedPayload(projectID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"status":     "unlocked",
	}
}
