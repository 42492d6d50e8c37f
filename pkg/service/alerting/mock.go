package alerting

import (
	"context"
	"sync"

	"github.com/secmon-lab/casebook/pkg/domain/interfaces"
)

// Mock is an AlertClient for tests.
type Mock struct {
	CreateThresholdRuleFunc func(ctx context.Context, endpoint, apiKey, ruleName, index, query string, threshold float64, windowMinutes int) (string, error)

	mu    sync.Mutex
	calls int
}

var _ interfaces.AlertClient = &Mock{}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) CreateThresholdRule(ctx context.Context, endpoint, apiKey, ruleName, index, query string, threshold float64, windowMinutes int) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.CreateThresholdRuleFunc != nil {
		return m.CreateThresholdRuleFunc(ctx, endpoint, apiKey, ruleName, index, query, threshold, windowMinutes)
	}
	return `{"id":"rule-1"}`, nil
}

func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
