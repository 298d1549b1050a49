package cli

import (
	"testing"

	"github.com/ksyq12/certpanel/internal/config"
	"github.com/ksyq12/certpanel/internal/errors"
)

func TestRunCheck(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, cfg *config.Config, sess *MockSession) *Dependencies
		wantErr  error
		validate func(t *testing.T, cfg *config.Config, sess *MockSession)
	}{
		{
			name: "reports current without submitting",
			setup: func(t *testing.T, cfg *config.Config, sess *MockSession) *Dependencies {
				src, want := testSource(t, cfg, cfg.Domain)
				installed := want
				wirePanel(cfg, sess, &installed)
				return NewMockDeps().WithConfig(cfg).WithSource(src).WithSession(sess).Build()
			},
			validate: func(t *testing.T, cfg *config.Config, sess *MockSession) {
				if n := saveClicks(cfg, sess); n != 0 {
					t.Errorf("check submitted the certificate, %d save clicks", n)
				}
				if len(sess.FillCalls) != 2 {
					// Username and password only.
					t.Errorf("expected 2 fills, got %d", len(sess.FillCalls))
				}
				if sess.CloseCalls != 1 {
					t.Errorf("expected session closed once, got %d", sess.CloseCalls)
				}
			},
		},
		{
			name: "reports stale without submitting",
			setup: func(t *testing.T, cfg *config.Config, sess *MockSession) *Dependencies {
				src, _ := testSource(t, cfg, cfg.Domain)
				installed := "AA:BB:CC"
				wirePanel(cfg, sess, &installed)
				return NewMockDeps().WithConfig(cfg).WithSource(src).WithSession(sess).Build()
			},
			validate: func(t *testing.T, cfg *config.Config, sess *MockSession) {
				if n := saveClicks(cfg, sess); n != 0 {
					t.Errorf("check submitted the certificate, %d save clicks", n)
				}
			},
		},
		{
			name: "browser start failure is a session error",
			setup: func(t *testing.T, cfg *config.Config, sess *MockSession) *Dependencies {
				src, _ := testSource(t, cfg, cfg.Domain)
				return NewMockDeps().WithConfig(cfg).WithSource(src).
					WithSessionError(errors.New(errors.CodeSessionError, "chrome not found")).Build()
			},
			wantErr: errors.ErrSessionError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := TestConfig()
			sess := NewMockSession()
			mockDeps := tt.setup(t, cfg, sess)

			oldDeps := deps
			deps = mockDeps
			defer func() { deps = oldDeps }()

			err := runCheck(testCommand(t), nil)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("runCheck failed: %v", err)
			}

			if tt.validate != nil {
				tt.validate(t, cfg, sess)
			}
		})
	}
}
