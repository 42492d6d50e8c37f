package messenger

import (
	"context"
	"sync"

	"github.com/secmon-lab/casebook/pkg/domain/interfaces"
	"github.com/secmon-lab/casebook/pkg/domain/model/remote"
)

// Mock is a MessengerClient for tests.
type Mock struct {
	PostMessageFunc func(ctx context.Context, credential, teamID, channelID, htmlBody string) (*remote.Message, error)

	mu     sync.Mutex
	Posted []string
	calls  int
}

var _ interfaces.MessengerClient = &Mock{}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) PostMessage(ctx context.Context, credential, teamID, channelID, htmlBody string) (*remote.Message, error) {
	m.mu.Lock()
	m.calls++
	m.Posted = append(m.Posted, htmlBody)
	m.mu.Unlock()

	if m.PostMessageFunc != nil {
		return m.PostMessageFunc(ctx, credential, teamID, channelID, htmlBody)
	}
	return &remote.Message{ID: "message-1"}, nil
}

func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
