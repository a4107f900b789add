package club

import (
	"sync"
	"time"

	"github.com/mauv0809/padel-league/internal/league"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	AddPlayerFunc            func(name, photoURL string) (*league.Player, error)
	GetPlayerFunc            func(name string) (*league.Player, error)
	GetAllPlayersFunc        func() ([]league.Player, error)
	IsKnownPlayerFunc        func(name string) bool
	RecordMatchFunc          func(result league.MatchResult, deltas map[string]league.PlayerDelta) error
	GetAllMatchesFunc        func() ([]league.MatchResult, error)
	GetMatchesBetweenFunc    func(from, to time.Time) ([]league.MatchResult, error)
	GetHeadToHeadMatchesFunc func(playerA, playerB string) ([]league.MatchResult, error)
	IsImportedFunc           func(externalID string) bool
	ClearFunc                func()

	// Call records
	AddPlayerCalls   []string
	RecordMatchCalls []struct {
		Result league.MatchResult
		Deltas map[string]league.PlayerDelta
	}
	GetMatchesBetweenCalls []struct {
		From time.Time
		To   time.Time
	}
	GetHeadToHeadMatchesCalls [][2]string
	ClearCalls                int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = nil
	m.RecordMatchCalls = nil
	m.GetMatchesBetweenCalls = nil
	m.GetHeadToHeadMatchesCalls = nil
	m.ClearCalls = 0
}

func (m *MockStore) AddPlayer(name, photoURL string) (*league.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, name)
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(name, photoURL)
	}
	return &league.Player{Name: name, PhotoURL: photoURL}, nil
}

func (m *MockStore) GetPlayer(name string) (*league.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(name)
	}
	return nil, &league.NotFoundError{Name: name}
}

func (m *MockStore) GetAllPlayers() ([]league.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) IsKnownPlayer(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(name)
	}
	return false
}

func (m *MockStore) RecordMatch(result league.MatchResult, deltas map[string]league.PlayerDelta) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordMatchCalls = append(m.RecordMatchCalls, struct {
		Result league.MatchResult
		Deltas map[string]league.PlayerDelta
	}{result, deltas})
	if m.RecordMatchFunc != nil {
		return m.RecordMatchFunc(result, deltas)
	}
	return nil
}

func (m *MockStore) GetAllMatches() ([]league.MatchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllMatchesFunc != nil {
		return m.GetAllMatchesFunc()
	}
	return nil, nil
}

func (m *MockStore) GetMatchesBetween(from, to time.Time) ([]league.MatchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMatchesBetweenCalls = append(m.GetMatchesBetweenCalls, struct {
		From time.Time
		To   time.Time
	}{from, to})
	if m.GetMatchesBetweenFunc != nil {
		return m.GetMatchesBetweenFunc(from, to)
	}
	return nil, nil
}

func (m *MockStore) GetHeadToHeadMatches(playerA, playerB string) ([]league.MatchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetHeadToHeadMatchesCalls = append(m.GetHeadToHeadMatchesCalls, [2]string{playerA, playerB})
	if m.GetHeadToHeadMatchesFunc != nil {
		return m.GetHeadToHeadMatchesFunc(playerA, playerB)
	}
	return nil, nil
}

func (m *MockStore) IsImported(externalID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsImportedFunc != nil {
		return m.IsImportedFunc(externalID)
	}
	return false
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
