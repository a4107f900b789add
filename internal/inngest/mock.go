package inngest

import (
	"context"
	"net/http"
	"sync"
)

// Mock is a mock implementation of the InngestClient interface for testing.
type Mock struct {
	mu sync.Mutex

	RequestImportFunc func(days int, dryRun bool) (string, error)

	RequestImportCalls []ImportRequest
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Serve() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func (m *Mock) RequestImport(ctx context.Context, days int, dryRun bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestImportCalls = append(m.RequestImportCalls, ImportRequest{Days: days, DryRun: dryRun})
	if m.RequestImportFunc != nil {
		return m.RequestImportFunc(days, dryRun)
	}
	return "event-id", nil
}
