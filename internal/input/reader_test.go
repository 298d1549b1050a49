package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSourceRead(t *testing.T) {
	t.Run("reads a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cert.pem")
		if err := os.WriteFile(path, []byte("-----BEGIN CERTIFICATE-----"), 0o644); err != nil {
			t.Fatal(err)
		}

		src := NewFileSource()
		got, err := src.Read(path)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if got != "-----BEGIN CERTIFICATE-----" {
			t.Errorf("unexpected contents: %q", got)
		}
	})

	t.Run("dash reads stdin", func(t *testing.T) {
		src := &FileSource{Stdin: strings.NewReader("piped material")}
		got, err := src.Read("-")
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if got != "piped material" {
			t.Errorf("unexpected contents: %q", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		src := NewFileSource()
		if _, err := src.Read(filepath.Join(t.TempDir(), "absent.pem")); err == nil {
			t.Error("Read should fail on a missing file")
		}
	})
}

func TestMapSource(t *testing.T) {
	src := MapSource{"/data/cert.pem": "cert"}

	if got, err := src.Read("/data/cert.pem"); err != nil || got != "cert" {
		t.Errorf("Read = %q, %v", got, err)
	}
	if _, err := src.Read("/data/key.pem"); err == nil {
		t.Error("unknown path should fail")
	}
}
