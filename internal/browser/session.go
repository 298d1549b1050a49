package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/ksyq12/certpanel/internal/logger"
)

// desktopUserAgent is sent instead of the headless default; the panel
// serves a degraded layout to obvious automation.
const desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Options configures a Session.
type Options struct {
	// Headless runs the browser without a display. Disable for local
	// debugging only.
	Headless bool

	// Timeout bounds each individual interaction (navigate, fill, click,
	// text read). Zero means DefaultTimeout.
	Timeout time.Duration
}

// DefaultTimeout bounds interactions when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Session is the chromedp-backed Page implementation. It owns the browser
// process and one tab; Close releases both. A Session is not safe for
// concurrent use, matching the strictly sequential workflow that owns it.
type Session struct {
	ctx     context.Context
	timeout time.Duration
	cancels []context.CancelFunc
}

// NewSession launches a browser and opens the session tab. The passed
// context is the run's root: cancelling it aborts every in-flight
// interaction and the browser itself. Callers must defer Close.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(desktopUserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(logger.Debug))

	s := &Session{
		ctx:     tabCtx,
		timeout: opts.Timeout,
		cancels: []context.CancelFunc{cancelTab, cancelAlloc},
	}

	// Run a no-op task to force the browser to start now, so launch
	// failures surface here instead of inside the first workflow step.
	startCtx, cancel := context.WithTimeout(tabCtx, opts.Timeout)
	defer cancel()
	if err := chromedp.Run(startCtx); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	logger.DebugFields("browser session started", map[string]interface{}{
		"headless": opts.Headless,
		"timeout":  opts.Timeout,
	})
	return s, nil
}

// Close tears down the tab and the browser. Safe to call more than once.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
}

// by maps a selector to the chromedp query strategy: XPath for selectors
// starting with "//", CSS otherwise.
func by(selector string) chromedp.QueryOption {
	if strings.HasPrefix(selector, "//") {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

// run executes actions bounded by the given timeout, honoring both the
// session lifetime and the caller's context.
func (s *Session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	opCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(opCtx, actions...)
}

// Navigate implements Page.
func (s *Session) Navigate(ctx context.Context, url string) error {
	logger.Debug("Navigating to %s", url)
	return retryTransient(ctx, func() error {
		return s.run(ctx, s.timeout, chromedp.Navigate(url))
	})
}

// Fill implements Page. SetValue is used instead of keystroke simulation:
// PEM documents are far too large to type.
func (s *Session) Fill(ctx context.Context, selector, value string) error {
	logger.Debug("Filling %s", selector)
	return retryTransient(ctx, func() error {
		return s.run(ctx, s.timeout,
			chromedp.WaitVisible(selector, by(selector)),
			chromedp.SetValue(selector, value, by(selector)),
		)
	})
}

// Click implements Page.
func (s *Session) Click(ctx context.Context, selector string) error {
	logger.Debug("Clicking %s", selector)
	return retryTransient(ctx, func() error {
		return s.run(ctx, s.timeout,
			chromedp.WaitVisible(selector, by(selector)),
			chromedp.Click(selector, by(selector)),
		)
	})
}

// WaitVisible implements Page. The wait itself is the bounded retry, so no
// outer retry wrapper here.
func (s *Session) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	return s.run(ctx, timeout, chromedp.WaitVisible(selector, by(selector)))
}

// Exists implements Page.
func (s *Session) Exists(ctx context.Context, selector string, timeout time.Duration) (bool, error) {
	err := s.WaitVisible(ctx, selector, timeout)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return false, nil
	}
	return false, err
}

// Text implements Page.
func (s *Session) Text(ctx context.Context, selector string) (string, error) {
	var out string
	err := retryTransient(ctx, func() error {
		return s.run(ctx, s.timeout,
			chromedp.WaitVisible(selector, by(selector)),
			chromedp.Text(selector, &out, by(selector)),
		)
	})
	return out, err
}

// Location implements Page.
func (s *Session) Location(ctx context.Context) (string, error) {
	var url string
	err := s.run(ctx, s.timeout, chromedp.Location(&url))
	return url, err
}

// Evaluate implements Page.
func (s *Session) Evaluate(ctx context.Context, expression string, out interface{}) error {
	return retryTransient(ctx, func() error {
		return s.run(ctx, s.timeout, chromedp.Evaluate(expression, out))
	})
}

// WaitNavigation implements Page, observing the devtools page load event.
func (s *Session) WaitNavigation(ctx context.Context, timeout time.Duration) error {
	loaded := make(chan struct{}, 1)
	listenCtx, cancelListen := context.WithCancel(s.ctx)
	defer cancelListen()

	chromedp.ListenTarget(listenCtx, func(ev interface{}) {
		if _, ok := ev.(*page.EventLoadEventFired); ok {
			select {
			case loaded <- struct{}{}:
			default:
			}
		}
	})

	select {
	case <-loaded:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("waiting for navigation: %w", context.DeadlineExceeded)
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return s.ctx.Err()
	}
}

// Screenshot implements Page.
func (s *Session) Screenshot(ctx context.Context, path string) error {
	var buf []byte
	if err := s.run(ctx, s.timeout, chromedp.CaptureScreenshot(&buf)); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("failed to write screenshot: %w", err)
	}
	logger.Info("Saved screenshot to %s", path)
	return nil
}

// Session must satisfy Page.
var _ Page = (*Session)(nil)
