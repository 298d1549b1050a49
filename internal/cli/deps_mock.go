package cli

import (
	"context"
	"time"

	"github.com/ksyq12/certpanel/internal/browser"
	"github.com/ksyq12/certpanel/internal/config"
	"github.com/ksyq12/certpanel/internal/input"
	"github.com/ksyq12/certpanel/internal/panel"
)

// MockSession is a test double for PageSession. It records Close calls on
// top of the MockPage interaction slices.
type MockSession struct {
	*browser.MockPage
	CloseCalls int
}

// NewMockSession creates a MockSession around a fresh MockPage.
func NewMockSession() *MockSession {
	return &MockSession{MockPage: browser.NewMockPage()}
}

// Close records the call.
func (m *MockSession) Close() {
	m.CloseCalls++
}

// TestConfig returns a fully populated config suitable for command tests.
// Timeouts are kept tiny so failure paths do not stall the suite.
func TestConfig() *config.Config {
	return &config.Config{
		Username:      "12345",
		Password:      "hunter2",
		ProductID:     "Hosting2000",
		Domain:        "example.com",
		BaseURL:       "https://panel.test",
		CertFile:      "cert.pem",
		KeyFile:       "key.pem",
		RunTimeout:    5 * time.Second,
		NavTimeout:    50 * time.Millisecond,
		OtpWait:       10 * time.Millisecond,
		VerifyTimeout: 100 * time.Millisecond,
		Headless:      true,
		Layout:        panel.Default(),
	}
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults
func NewMockDeps() *MockDependenciesBuilder {
	cfg := TestConfig()
	sess := NewMockSession()
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			LoadConfig: func() (*config.Config, error) { return cfg, nil },
			Source:     input.MapSource{},
			NewSession: func(ctx context.Context, opts browser.Options) (PageSession, error) {
				return sess, nil
			},
		},
	}
}

// WithConfig sets the config returned by LoadConfig
func (b *MockDependenciesBuilder) WithConfig(cfg *config.Config) *MockDependenciesBuilder {
	b.deps.LoadConfig = func() (*config.Config, error) { return cfg, nil }
	return b
}

// WithConfigError makes LoadConfig fail
func (b *MockDependenciesBuilder) WithConfigError(err error) *MockDependenciesBuilder {
	b.deps.LoadConfig = func() (*config.Config, error) { return nil, err }
	return b
}

// WithSource sets the certificate material source
func (b *MockDependenciesBuilder) WithSource(src input.Source) *MockDependenciesBuilder {
	b.deps.Source = src
	return b
}

// WithSession sets the session handed out by NewSession
func (b *MockDependenciesBuilder) WithSession(sess PageSession) *MockDependenciesBuilder {
	b.deps.NewSession = func(ctx context.Context, opts browser.Options) (PageSession, error) {
		return sess, nil
	}
	return b
}

// WithSessionError makes NewSession fail
func (b *MockDependenciesBuilder) WithSessionError(err error) *MockDependenciesBuilder {
	b.deps.NewSession = func(ctx context.Context, opts browser.Options) (PageSession, error) {
		return nil, err
	}
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}
