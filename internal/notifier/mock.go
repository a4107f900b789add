package notifier

import (
	"sync"

	"github.com/mauv0809/padel-league/internal/league"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendResultNotificationFunc func(result *league.MatchResult, dryRun bool) error

	// Call records
	SendResultNotificationCalls []struct {
		Result *league.MatchResult
		DryRun bool
	}
	FormatRankingResponseCalls        [][]league.Standing
	FormatHeadToHeadResponseCalls     []league.HeadToHead
	FormatPlayerStatsResponseCalls    []league.Standing
	FormatPlayerNotFoundResponseCalls []struct {
		Query       string
		Suggestions []string
	}
	FormatErrorResponseCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.FormatRankingResponseCalls = nil
	m.FormatHeadToHeadResponseCalls = nil
	m.FormatPlayerStatsResponseCalls = nil
	m.FormatPlayerNotFoundResponseCalls = nil
	m.FormatErrorResponseCalls = nil
}

func (m *Mock) SendResultNotification(result *league.MatchResult, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, struct {
		Result *league.MatchResult
		DryRun bool
	}{result, dryRun})
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(result, dryRun)
	}
	return nil
}

func (m *Mock) FormatRankingResponse(standings []league.Standing, filter league.RankingFilter) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatRankingResponseCalls = append(m.FormatRankingResponseCalls, standings)
	return map[string]any{"ranking": standings}, nil
}

func (m *Mock) FormatHeadToHeadResponse(h2h league.HeadToHead) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatHeadToHeadResponseCalls = append(m.FormatHeadToHeadResponseCalls, h2h)
	return map[string]any{"head_to_head": h2h}, nil
}

func (m *Mock) FormatPlayerStatsResponse(standing league.Standing) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatPlayerStatsResponseCalls = append(m.FormatPlayerStatsResponseCalls, standing)
	return map[string]any{"player": standing}, nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string, suggestions []string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatPlayerNotFoundResponseCalls = append(m.FormatPlayerNotFoundResponseCalls, struct {
		Query       string
		Suggestions []string
	}{query, suggestions})
	return map[string]any{"not_found": query, "suggestions": suggestions}, nil
}

func (m *Mock) FormatErrorResponse(message string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatErrorResponseCalls = append(m.FormatErrorResponseCalls, message)
	return map[string]any{"error": message}, nil
}
