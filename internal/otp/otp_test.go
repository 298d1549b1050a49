package otp

import (
	"testing"
	"time"

	"github.com/ksyq12/certpanel/internal/errors"
)

// testSeed is the well-known demo seed ("Hello!\xde\xad\xbe\xef" in base32).
const testSeed = "JBSWY3DPEHPK3PXP"

func TestNew(t *testing.T) {
	t.Run("valid seed", func(t *testing.T) {
		if _, err := New(testSeed); err != nil {
			t.Fatalf("New failed on valid seed: %v", err)
		}
	})

	t.Run("unpadded lowercase seed with spaces", func(t *testing.T) {
		// "jbsw y3dp ehpk 3pxp" is how authenticator apps display it.
		if _, err := New("jbsw y3dp ehpk 3pxp"); err != nil {
			t.Fatalf("New should normalize display-format seeds: %v", err)
		}
	})

	t.Run("empty seed", func(t *testing.T) {
		_, err := New("")
		if !errors.Is(err, errors.ErrInvalidInput) {
			t.Errorf("empty seed should be INVALID_INPUT, got %v", err)
		}
	})

	t.Run("not base32", func(t *testing.T) {
		_, err := New("not-base32-at-all!")
		if !errors.Is(err, errors.ErrInvalidInput) {
			t.Errorf("malformed seed should be INVALID_INPUT, got %v", err)
		}
	})
}

func TestCode(t *testing.T) {
	gen, err := New(testSeed)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("six digits", func(t *testing.T) {
		code, err := gen.Code(time.Unix(1609459200, 0))
		if err != nil {
			t.Fatalf("Code failed: %v", err)
		}
		if len(code) != Digits {
			t.Errorf("expected %d digits, got %q", Digits, code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Errorf("code contains non-digit: %q", code)
			}
		}
	})

	t.Run("stable within a window", func(t *testing.T) {
		base := time.Unix(1609459200, 0) // window boundary
		a, _ := gen.Code(base)
		b, _ := gen.Code(base.Add(29 * time.Second))
		if a != b {
			t.Errorf("codes within one 30s window should match: %s != %s", a, b)
		}
	})

	t.Run("changes across windows", func(t *testing.T) {
		base := time.Unix(1609459200, 0)
		a, _ := gen.Code(base)
		b, _ := gen.Code(base.Add(Period * time.Second))
		if a == b {
			t.Errorf("codes across windows should differ (got %s twice)", a)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		at := time.Unix(1700000000, 0)
		a, _ := gen.Code(at)
		b, _ := gen.Code(at)
		if a != b {
			t.Errorf("same (seed, time) must give same code: %s != %s", a, b)
		}
	})

	t.Run("normalized seeds agree", func(t *testing.T) {
		other, err := New("jbsw y3dp ehpk 3pxp")
		if err != nil {
			t.Fatal(err)
		}
		at := time.Unix(1700000000, 0)
		a, _ := gen.Code(at)
		b, _ := other.Code(at)
		if a != b {
			t.Errorf("normalization changed the derived code: %s != %s", a, b)
		}
	})
}
