package interfaces

import (
	"context"

	"github.com/secmon-lab/casebook/pkg/domain/model/remote"
	"github.com/secmon-lab/casebook/pkg/domain/types"
)

// DriveClient provisions per-incident folders and transfers byte payloads to
// a path-addressed remote drive API.
type DriveClient interface {
	// EnsureIncidentFolder creates Incident-{id} under basePath. A remote
	// "already exists" conflict is success; repeated calls never fail on an
	// existing folder.
	EnsureIncidentFolder(ctx context.Context, credential, containerID, basePath string, incidentID types.IncidentID) (*remote.Item, error)

	// UploadBytes picks a single-request upload for small payloads and a
	// resumable chunked session for large ones.
	UploadBytes(ctx context.Context, credential, containerID, itemPath string, data []byte, contentType string) (*remote.Item, error)
}

// MessengerClient posts one formatted message to a remote channel.
type MessengerClient interface {
	PostMessage(ctx context.Context, credential, teamID, channelID, htmlBody string) (*remote.Message, error)
}

// AlertClient creates a threshold-based alert rule on a remote query engine.
type AlertClient interface {
	CreateThresholdRule(ctx context.Context, endpoint, apiKey, ruleName, index, query string, threshold float64, windowMinutes int) (string, error)
}
