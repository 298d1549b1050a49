// Package browser owns the headless browser session used to drive the
// control panel.
//
// The workflows (authentication, certificate upload) never talk to chromedp
// directly; they operate on the Page interface, so they can be tested
// against MockPage without a browser. Session is the real implementation
// and the exclusive owner of the underlying browser process: one Session
// per run, torn down on every exit path via Close.
package browser

import (
	"context"
	"time"
)

// Page provides the navigation and interaction primitives the workflows
// need. Selectors are CSS, or XPath when they start with "//".
//
// Semantics the workflows rely on:
//   - Every method is bounded: either by the passed timeout or by the
//     session's default interaction timeout. There are no unbounded waits.
//   - Exists distinguishes "element absent after the full wait" (false,
//     nil) from transport failure (false, err). Absence is a structural
//     finding, not an error.
//   - Navigate, Fill, and Click retry transient failures internally with
//     bounded backoff; the error they return means the retry budget is
//     already spent.
type Page interface {
	// Navigate loads a URL and waits for the page load event.
	Navigate(ctx context.Context, url string) error

	// Fill sets the value of an input or textarea.
	Fill(ctx context.Context, selector, value string) error

	// Click clicks an element.
	Click(ctx context.Context, selector string) error

	// WaitVisible blocks until the element is visible or the timeout
	// expires.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error

	// Exists reports whether the element becomes visible within the
	// timeout. Expiry without the element is (false, nil).
	Exists(ctx context.Context, selector string, timeout time.Duration) (bool, error)

	// Text returns the visible text content of an element.
	Text(ctx context.Context, selector string) (string, error)

	// Location returns the current page URL.
	Location(ctx context.Context) (string, error)

	// Evaluate runs a JavaScript expression and unmarshals its result
	// into out.
	Evaluate(ctx context.Context, expression string, out interface{}) error

	// WaitNavigation blocks until the next page load event, for clicks
	// that trigger a navigation.
	WaitNavigation(ctx context.Context, timeout time.Duration) error

	// Screenshot captures the viewport to a PNG file. Best effort
	// diagnostics; callers must not fail the run on its error.
	Screenshot(ctx context.Context, path string) error
}
