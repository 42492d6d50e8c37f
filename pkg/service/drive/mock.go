package drive

import (
	"context"
	"sync"

	"github.com/secmon-lab/casebook/pkg/domain/interfaces"
	"github.com/secmon-lab/casebook/pkg/domain/model/remote"
	"github.com/secmon-lab/casebook/pkg/domain/types"
)

// Mock is a DriveClient for tests. Unset function fields fall back to an
// in-memory object store.
type Mock struct {
	EnsureIncidentFolderFunc func(ctx context.Context, credential, containerID, basePath string, incidentID types.IncidentID) (*remote.Item, error)
	UploadBytesFunc          func(ctx context.Context, credential, containerID, itemPath string, data []byte, contentType string) (*remote.Item, error)

	mu      sync.Mutex
	objects map[string][]byte
	calls   map[string]int
}

var _ interfaces.DriveClient = &Mock{}

func NewMock() *Mock {
	return &Mock{
		objects: make(map[string][]byte),
		calls:   make(map[string]int),
	}
}

func (m *Mock) EnsureIncidentFolder(ctx context.Context, credential, containerID, basePath string, incidentID types.IncidentID) (*remote.Item, error) {
	m.record("EnsureIncidentFolder")
	if m.EnsureIncidentFolderFunc != nil {
		return m.EnsureIncidentFolderFunc(ctx, credential, containerID, basePath, incidentID)
	}
	name := FolderName(incidentID)
	return &remote.Item{ID: "folder-" + incidentID.String(), Name: name, WebURL: "https://drive.example.com/" + name}, nil
}

func (m *Mock) UploadBytes(ctx context.Context, credential, containerID, itemPath string, data []byte, contentType string) (*remote.Item, error) {
	m.record("UploadBytes")
	if m.UploadBytesFunc != nil {
		return m.UploadBytesFunc(ctx, credential, containerID, itemPath, data, contentType)
	}

	m.mu.Lock()
	m.objects[itemPath] = append([]byte(nil), data...)
	m.mu.Unlock()

	return &remote.Item{ID: "item-" + itemPath, Name: itemPath, WebURL: "https://drive.example.com/" + itemPath}, nil
}

// Object returns the payload stored by the fallback UploadBytes.
func (m *Mock) Object(itemPath string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[itemPath]
	return data, ok
}

func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *Mock) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[method]++
}
