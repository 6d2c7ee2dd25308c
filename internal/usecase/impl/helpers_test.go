package impl

import (
	"io"
	"log/slog"
	"sync"

	"noteful/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(usernameRules, passwordRules string) *config.Config {
	return &config.Config{
		Registration: config.RegistrationConfig{
			UsernameRules: usernameRules,
			PasswordRules: passwordRules,
		},
	}
}

// recordingMetrics keeps every observation so tests can assert on outcomes.
type recordingMetrics struct {
	mu             sync.Mutex
	authentication []string
	registration   []string
}

func (m *recordingMetrics) ObserveAuthentication(strategy, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authentication = append(m.authentication, strategy+":"+outcome)
}

func (m *recordingMetrics) ObserveRegistration(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registration = append(m.registration, outcome)
}
