// Package auth drives the control panel login sequence as an explicit
// state machine: credentials, an optional TOTP challenge, and confirmation
// of the authenticated landing page.
//
// The sequence is timing-dependent and runs against a UI this tool does not
// control, so every transition is a named state with a classified failure,
// and the whole machine operates on browser.Page so it can be tested
// against a mock instead of a live panel.
package auth

import (
	"context"
	"time"

	"github.com/ksyq12/certpanel/internal/browser"
	"github.com/ksyq12/certpanel/internal/errors"
	"github.com/ksyq12/certpanel/internal/logger"
	"github.com/ksyq12/certpanel/internal/otp"
	"github.com/ksyq12/certpanel/internal/panel"
)

// State is a position in the login sequence.
type State string

// Login states. Failed is absorbing; Authenticated is the success terminal.
const (
	StateStart                State = "start"
	StateCredentialsSubmitted State = "credentials-submitted"
	StateOtpChallenged        State = "otp-challenged"
	StateAuthenticated        State = "authenticated"
	StateFailed               State = "failed"
)

// maxOtpAttempts bounds code submissions per run. Two attempts cover a code
// that straddled a 30-second window boundary; more risks an account lockout.
const maxOtpAttempts = 2

// bannerWait bounds the check for an explicit rejection banner. Short: the
// banner renders with the page or not at all.
const bannerWait = 2 * time.Second

// Credentials identify the panel account. Opaque, never logged.
type Credentials struct {
	Username string
	Password string
}

// Authenticator drives one login sequence on one page.
type Authenticator struct {
	page    browser.Page
	layout  panel.Layout
	baseURL string
	creds   Credentials

	// otp is nil when no seed is configured; the account is then expected
	// to have 2FA disabled.
	otp *otp.Generator

	// navTimeout bounds each wait for a page transition; otpWait bounds
	// the challenge detection after credentials are accepted.
	navTimeout time.Duration
	otpWait    time.Duration

	state State
}

// New creates an Authenticator in the Start state.
func New(page browser.Page, layout panel.Layout, baseURL string, creds Credentials, gen *otp.Generator, navTimeout, otpWait time.Duration) *Authenticator {
	return &Authenticator{
		page:       page,
		layout:     layout,
		baseURL:    baseURL,
		creds:      creds,
		otp:        gen,
		navTimeout: navTimeout,
		otpWait:    otpWait,
		state:      StateStart,
	}
}

// State returns the current state.
func (a *Authenticator) State() State {
	return a.state
}

// Login runs the sequence to the Authenticated state or a classified
// failure. On any error the machine is in StateFailed and the session must
// not be used further.
func (a *Authenticator) Login(ctx context.Context) error {
	if err := a.submitCredentials(ctx); err != nil {
		a.state = StateFailed
		return err
	}

	challenged, err := a.detectChallenge(ctx)
	if err != nil {
		a.state = StateFailed
		return err
	}

	if challenged {
		a.state = StateOtpChallenged
		if err := a.solveChallenge(ctx); err != nil {
			a.state = StateFailed
			return err
		}
	} else {
		// Challenge input absent after the bounded wait: treat as 2FA
		// disabled for this account, but still demand the landing page.
		logger.Warn("2FA challenge not shown, assuming it is disabled for this account")
		if err := a.confirmLanding(ctx, errors.CodeLoginRejected); err != nil {
			a.state = StateFailed
			return err
		}
	}

	a.state = StateAuthenticated
	logger.Info("Authenticated")
	return nil
}

// submitCredentials performs Start -> CredentialsSubmitted.
func (a *Authenticator) submitCredentials(ctx context.Context) error {
	const step = "submit credentials"
	logger.Info("Logging in to %s", a.baseURL)

	if err := a.page.Navigate(ctx, a.layout.LoginURL(a.baseURL)); err != nil {
		return errors.Wrap(errors.CodeSessionError, step, err)
	}
	if err := a.page.Fill(ctx, a.layout.UserField, a.creds.Username); err != nil {
		return errors.Wrap(errors.CodeSessionError, step, err)
	}
	if err := a.page.Fill(ctx, a.layout.PassField, a.creds.Password); err != nil {
		return errors.Wrap(errors.CodeSessionError, step, err)
	}
	if err := a.page.Click(ctx, a.layout.LoginButton); err != nil {
		return errors.Wrap(errors.CodeSessionError, step, err)
	}
	if err := a.page.WaitNavigation(ctx, a.navTimeout); err != nil && ctx.Err() != nil {
		return errors.Wrap(errors.CodeSessionError, step, err)
	}

	// An explicit rejection banner means bad credentials, not a slow page.
	rejected, err := a.page.Exists(ctx, a.layout.LoginError, bannerWait)
	if err != nil {
		return errors.Wrap(errors.CodeSessionError, step, err)
	}
	if rejected {
		return errors.Wrap(errors.CodeLoginRejected, step, nil)
	}

	a.state = StateCredentialsSubmitted
	return nil
}

// detectChallenge reports whether the 2FA input appeared within otpWait.
func (a *Authenticator) detectChallenge(ctx context.Context) (bool, error) {
	challenged, err := a.page.Exists(ctx, a.layout.OtpField, a.otpWait)
	if err != nil {
		return false, errors.Wrap(errors.CodeSessionError, "detect 2FA challenge", err)
	}
	return challenged, nil
}

// solveChallenge performs OtpChallenged -> Authenticated, retrying once
// with a freshly computed code in case the first straddled a window
// boundary. A second rejection is terminal: codes are rate-limited server
// side and repeated failures lock the account.
func (a *Authenticator) solveChallenge(ctx context.Context) error {
	const step = "verify one-time password"

	if a.otp == nil {
		return errors.Wrap(errors.CodeOtpRejected, step, errors.New(errors.CodeInvalidInput, "2FA challenged but no OTP seed configured"))
	}

	for attempt := 1; attempt <= maxOtpAttempts; attempt++ {
		// Computed at the moment of use, never cached across attempts.
		code, err := a.otp.Code(time.Now())
		if err != nil {
			return err
		}
		logger.Debug("Submitting one-time password (attempt %d/%d)", attempt, maxOtpAttempts)

		if err := a.page.Fill(ctx, a.layout.OtpField, code); err != nil {
			return errors.Wrap(errors.CodeSessionError, step, err)
		}
		if err := a.page.Click(ctx, a.layout.OtpSubmit); err != nil {
			return errors.Wrap(errors.CodeSessionError, step, err)
		}

		landed, err := a.page.Exists(ctx, a.layout.LandingMarker, a.navTimeout)
		if err != nil {
			return errors.Wrap(errors.CodeSessionError, step, err)
		}
		if landed {
			return nil
		}

		logger.Warn("One-time password rejected (attempt %d/%d)", attempt, maxOtpAttempts)
	}

	return errors.Wrap(errors.CodeOtpRejected, step, nil)
}

// confirmLanding waits for the authenticated landing marker, failing with
// the given code when it never appears.
func (a *Authenticator) confirmLanding(ctx context.Context, code errors.Code) error {
	const step = "confirm authenticated landing page"

	landed, err := a.page.Exists(ctx, a.layout.LandingMarker, a.navTimeout)
	if err != nil {
		return errors.Wrap(errors.CodeSessionError, step, err)
	}
	if !landed {
		return errors.Wrap(code, step, nil)
	}
	return nil
}
