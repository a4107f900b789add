package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	matchesRecorded     int
	matchesRejected     map[string]int
	matchesImported     int
	importerRuns        int
	processingDurations []float64
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		matchesRejected:     make(map[string]int),
		processingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRecorded++
}

func (m *Mock) IncMatchesRejected(rule string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRejected[rule]++
}

func (m *Mock) IncMatchesImported(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesImported += count
}

func (m *Mock) IncImporterRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.importerRuns++
}

func (m *Mock) ObserveProcessingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processingDurations = append(m.processingDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesRecorded returns the number of times IncMatchesRecorded was called.
func (m *Mock) MatchesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRecorded
}

// MatchesRejected returns how often IncMatchesRejected was called for rule.
func (m *Mock) MatchesRejected(rule string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRejected[rule]
}

// MatchesImported returns the sum passed to IncMatchesImported.
func (m *Mock) MatchesImported() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesImported
}

// ImporterRuns returns the number of times IncImporterRuns was called.
func (m *Mock) ImporterRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.importerRuns
}

// ProcessingDurations returns every observed duration.
func (m *Mock) ProcessingDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.processingDurations...)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
