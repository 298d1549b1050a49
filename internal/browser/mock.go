package browser

import (
	"context"
	"time"
)

// MockPage is a test double for the Page interface.
//
// Set the Func fields to customize behavior; unset methods succeed with
// zero values, except Exists which reports the element absent. Call slices
// record every interaction for verification.
type MockPage struct {
	NavigateFunc       func(ctx context.Context, url string) error
	FillFunc           func(ctx context.Context, selector, value string) error
	ClickFunc          func(ctx context.Context, selector string) error
	WaitVisibleFunc    func(ctx context.Context, selector string, timeout time.Duration) error
	ExistsFunc         func(ctx context.Context, selector string, timeout time.Duration) (bool, error)
	TextFunc           func(ctx context.Context, selector string) (string, error)
	LocationFunc       func(ctx context.Context) (string, error)
	EvaluateFunc       func(ctx context.Context, expression string, out interface{}) error
	WaitNavigationFunc func(ctx context.Context, timeout time.Duration) error
	ScreenshotFunc     func(ctx context.Context, path string) error

	NavigateCalls       []string
	FillCalls           []FillCall
	ClickCalls          []string
	WaitVisibleCalls    []string
	ExistsCalls         []string
	TextCalls           []string
	EvaluateCalls       []string
	WaitNavigationCalls int
	ScreenshotCalls     []string
}

// FillCall records arguments passed to Fill.
type FillCall struct {
	Selector string
	Value    string
}

// NewMockPage creates a MockPage with default no-op implementations.
func NewMockPage() *MockPage {
	return &MockPage{}
}

// Navigate records the call and invokes the mock function if set.
func (m *MockPage) Navigate(ctx context.Context, url string) error {
	m.NavigateCalls = append(m.NavigateCalls, url)
	if m.NavigateFunc != nil {
		return m.NavigateFunc(ctx, url)
	}
	return nil
}

// Fill records the call and invokes the mock function if set.
func (m *MockPage) Fill(ctx context.Context, selector, value string) error {
	m.FillCalls = append(m.FillCalls, FillCall{Selector: selector, Value: value})
	if m.FillFunc != nil {
		return m.FillFunc(ctx, selector, value)
	}
	return nil
}

// Click records the call and invokes the mock function if set.
func (m *MockPage) Click(ctx context.Context, selector string) error {
	m.ClickCalls = append(m.ClickCalls, selector)
	if m.ClickFunc != nil {
		return m.ClickFunc(ctx, selector)
	}
	return nil
}

// WaitVisible records the call and invokes the mock function if set.
func (m *MockPage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	m.WaitVisibleCalls = append(m.WaitVisibleCalls, selector)
	if m.WaitVisibleFunc != nil {
		return m.WaitVisibleFunc(ctx, selector, timeout)
	}
	return nil
}

// Exists records the call and invokes the mock function if set.
// Without a mock function the element is reported absent.
func (m *MockPage) Exists(ctx context.Context, selector string, timeout time.Duration) (bool, error) {
	m.ExistsCalls = append(m.ExistsCalls, selector)
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, selector, timeout)
	}
	return false, nil
}

// Text records the call and invokes the mock function if set.
func (m *MockPage) Text(ctx context.Context, selector string) (string, error) {
	m.TextCalls = append(m.TextCalls, selector)
	if m.TextFunc != nil {
		return m.TextFunc(ctx, selector)
	}
	return "", nil
}

// Location invokes the mock function if set.
func (m *MockPage) Location(ctx context.Context) (string, error) {
	if m.LocationFunc != nil {
		return m.LocationFunc(ctx)
	}
	return "", nil
}

// Evaluate records the call and invokes the mock function if set.
func (m *MockPage) Evaluate(ctx context.Context, expression string, out interface{}) error {
	m.EvaluateCalls = append(m.EvaluateCalls, expression)
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, expression, out)
	}
	return nil
}

// WaitNavigation records the call and invokes the mock function if set.
func (m *MockPage) WaitNavigation(ctx context.Context, timeout time.Duration) error {
	m.WaitNavigationCalls++
	if m.WaitNavigationFunc != nil {
		return m.WaitNavigationFunc(ctx, timeout)
	}
	return nil
}

// Screenshot records the call and invokes the mock function if set.
func (m *MockPage) Screenshot(ctx context.Context, path string) error {
	m.ScreenshotCalls = append(m.ScreenshotCalls, path)
	if m.ScreenshotFunc != nil {
		return m.ScreenshotFunc(ctx, path)
	}
	return nil
}

// MockPage must satisfy Page.
var _ Page = (*MockPage)(nil)
