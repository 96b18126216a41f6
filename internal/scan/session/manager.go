package session

import (
	"sync"

	"go.uber.org/zap"

	"github.com/pharmatrack/stock-service/internal/metrics"
	"github.com/pharmatrack/stock-service/internal/movement"
	"github.com/pharmatrack/stock-service/internal/scan"
	"github.com/pharmatrack/stock-service/internal/tag"
)

// Manager hands out one session per station. Sessions are independent and may
// run concurrently; they share only the record store underneath.
type Manager struct {
	resolver  tag.Resolver
	committer movement.UseCase
	metrics   *metrics.Registry
	logger    *zap.Logger

	mu       sync.RWMutex
	sessions map[string]scan.Session
}

func NewManager(resolver tag.Resolver, committer movement.UseCase, m *metrics.Registry, log *zap.Logger) *Manager {
	return &Manager{
		resolver:  resolver,
		committer: committer,
		metrics:   m,
		logger:    log,
		sessions:  make(map[string]scan.Session),
	}
}

// Get returns the station's session, creating an idle one on first use.
func (m *Manager) Get(stationID string) scan.Session {
	m.mu.RLock()
	s, ok := m.sessions[stationID]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[stationID]; ok {
		return s
	}
	s = New(stationID, m.resolver, m.committer, m.metrics, m.logger)
	m.sessions[stationID] = s
	return s
}
