package cli

import (
	"context"
	"time"

	"github.com/ksyq12/certpanel/internal/auth"
	"github.com/ksyq12/certpanel/internal/browser"
	"github.com/ksyq12/certpanel/internal/certs"
	"github.com/ksyq12/certpanel/internal/config"
	"github.com/ksyq12/certpanel/internal/errors"
	"github.com/ksyq12/certpanel/internal/logger"
	"github.com/ksyq12/certpanel/internal/otp"
	"github.com/ksyq12/certpanel/internal/output"
	"github.com/ksyq12/certpanel/internal/upload"
)

// loadMaterial reads and validates the certificate/key pair. Runs fail
// here, before any browser exists, when the material can never be
// installed.
func loadMaterial(cfg *config.Config) (*certs.Material, error) {
	certPEM, err := deps.Source.Read(cfg.CertFile)
	if err != nil {
		return nil, errors.InvalidInput(err.Error())
	}
	keyPEM, err := deps.Source.Read(cfg.KeyFile)
	if err != nil {
		return nil, errors.InvalidInput(err.Error())
	}

	material, err := certs.New(certPEM, keyPEM)
	if err != nil {
		return nil, err
	}

	if !material.CoversDomain(cfg.Domain) {
		// Worth flagging, but the operator may be staging a cutover.
		output.Warn("Certificate does not cover %s", cfg.Domain)
	}
	if remaining := time.Until(material.Leaf().NotAfter); remaining < 0 {
		output.Warn("Certificate is already expired")
	} else {
		logger.Debug("Certificate valid for another %s", remaining.Round(time.Hour))
	}
	return material, nil
}

// otpGenerator validates the configured seed, or returns nil when no seed
// is set (accounts with 2FA disabled).
func otpGenerator(cfg *config.Config) (*otp.Generator, error) {
	if cfg.OtpSecret == "" {
		return nil, nil
	}
	return otp.New(cfg.OtpSecret)
}

// openTargetPage starts a session and drives it to the authenticated
// state, returning the session and the workflow bound to it. The caller
// owns the returned close function and must defer it.
func openTargetPage(ctx context.Context, cfg *config.Config, material *certs.Material) (PageSession, *upload.Workflow, error) {
	gen, err := otpGenerator(cfg)
	if err != nil {
		return nil, nil, err
	}

	sess, err := deps.NewSession(ctx, browser.Options{
		Headless: cfg.Headless,
		Timeout:  cfg.NavTimeout,
	})
	if err != nil {
		return nil, nil, errors.Wrap(errors.CodeSessionError, "start browser session", err)
	}

	authenticator := auth.New(sess, cfg.Layout, cfg.BaseURL,
		auth.Credentials{Username: cfg.Username, Password: cfg.Password},
		gen, cfg.NavTimeout, cfg.OtpWait)
	if err := authenticator.Login(ctx); err != nil {
		captureFailure(ctx, sess, cfg)
		sess.Close()
		return nil, nil, err
	}

	workflow := upload.New(sess, cfg.Layout, cfg.BaseURL,
		upload.Target{ProductID: cfg.ProductID, Domain: cfg.Domain},
		material, cfg.NavTimeout, cfg.VerifyTimeout)
	return sess, workflow, nil
}

// captureFailure saves a screenshot for diagnostics when configured.
// Best effort: a failure to capture never masks the run's real error.
func captureFailure(ctx context.Context, sess PageSession, cfg *config.Config) {
	if cfg.ScreenshotPath == "" {
		return
	}
	if err := sess.Screenshot(ctx, cfg.ScreenshotPath); err != nil {
		logger.Warn("Failed to capture failure screenshot: %v", err)
	}
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}
