package cli

import (
	"context"

	"github.com/ksyq12/certpanel/internal/browser"
	"github.com/ksyq12/certpanel/internal/config"
	"github.com/ksyq12/certpanel/internal/input"
)

// PageSession is a browser page with its lifecycle attached. Satisfied by
// *browser.Session; tests substitute a MockPage wrapper.
type PageSession interface {
	browser.Page
	Close()
}

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	LoadConfig func() (*config.Config, error)
	Source     input.Source
	NewSession func(ctx context.Context, opts browser.Options) (PageSession, error)
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	LoadConfig: config.Load,
	Source:     input.NewFileSource(),
	NewSession: func(ctx context.Context, opts browser.Options) (PageSession, error) {
		return browser.NewSession(ctx, opts)
	},
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}
