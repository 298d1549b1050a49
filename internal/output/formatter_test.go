package output

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(os.Stdout)

	err := JSON(map[string]interface{}{"outcome": "applied", "domain": "example.com"})
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"outcome": "applied"`) {
		t.Errorf("unexpected JSON output: %s", out)
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(os.Stdout)

	Table([]string{"FIELD", "VALUE"}, [][]string{
		{"Subject", "CN=example.com"},
		{"Expires", "2026-11-27"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator and 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "FIELD") {
		t.Errorf("unexpected header line: %s", lines[0])
	}
	if !strings.Contains(lines[2], "CN=example.com") {
		t.Errorf("row missing: %s", lines[2])
	}
}

func TestMessages(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(os.Stdout)

	Success("certificate installed for %s", "example.com")
	Print("plain %d", 42)

	out := buf.String()
	if !strings.Contains(out, "certificate installed for example.com") {
		t.Errorf("success message missing: %s", out)
	}
	if !strings.Contains(out, "plain 42") {
		t.Errorf("plain message missing: %s", out)
	}
}
