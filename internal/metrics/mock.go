package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	importRuns          int
	matchesProcessed    int
	processingDurations []float64
	invitationsMatched  int
	challengesCreated   int
	leaderboardBuilds   int
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		processingDurations: make([]float64, 0),
	}
}

func (m *Mock) inc(counter *int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*counter++
}

func (m *Mock) read(counter *int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *counter
}

func (m *Mock) IncImportRuns()         { m.inc(&m.importRuns) }
func (m *Mock) IncMatchesProcessed()   { m.inc(&m.matchesProcessed) }
func (m *Mock) IncInvitationsMatched() { m.inc(&m.invitationsMatched) }
func (m *Mock) IncChallengesCreated()  { m.inc(&m.challengesCreated) }
func (m *Mock) IncLeaderboardBuilds()  { m.inc(&m.leaderboardBuilds) }
func (m *Mock) IncSlackNotifSent()     { m.inc(&m.slackNotifSent) }
func (m *Mock) IncSlackNotifFailed()   { m.inc(&m.slackNotifFailed) }

func (m *Mock) ObserveProcessingDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processingDurations = append(m.processingDurations, seconds)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

func (m *Mock) ImportRuns() int         { return m.read(&m.importRuns) }
func (m *Mock) MatchesProcessed() int   { return m.read(&m.matchesProcessed) }
func (m *Mock) InvitationsMatched() int { return m.read(&m.invitationsMatched) }
func (m *Mock) ChallengesCreated() int  { return m.read(&m.challengesCreated) }
func (m *Mock) LeaderboardBuilds() int  { return m.read(&m.leaderboardBuilds) }
func (m *Mock) SlackNotifSent() int     { return m.read(&m.slackNotifSent) }
func (m *Mock) SlackNotifFailed() int   { return m.read(&m.slackNotifFailed) }

// ProcessingDurations returns the observed durations in call order.
func (m *Mock) ProcessingDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.processingDurations...)
}

// MockStore is an in-memory MetricsStore.
type MockStore struct {
	mu     sync.Mutex
	values map[string]int
}

var _ MetricsStore = (*MockStore)(nil)

func NewMockStore() *MockStore {
	return &MockStore{values: map[string]int{}}
}

func (m *MockStore) Increment(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key]++
}

func (m *MockStore) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}
