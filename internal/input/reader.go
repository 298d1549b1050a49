// Package input reads certificate material sources for the CLI.
//
// Material normally comes from files written by an external ACME client,
// but "-" is accepted as a path meaning stdin so the tool composes with
// pipelines. The core never writes anything back.
package input

import (
	"fmt"
	"io"
	"os"
)

// Source reads the contents of a named material source.
type Source interface {
	Read(path string) (string, error)
}

// FileSource reads from the filesystem, with "-" meaning Stdin.
type FileSource struct {
	Stdin io.Reader
}

// NewFileSource creates a FileSource backed by os.Stdin.
func NewFileSource() *FileSource {
	return &FileSource{Stdin: os.Stdin}
}

// Read returns the contents of path, or of Stdin when path is "-".
func (s *FileSource) Read(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(s.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// MapSource is a test double serving contents by path.
type MapSource map[string]string

// Read returns the configured contents for path.
func (s MapSource) Read(path string) (string, error) {
	content, ok := s[path]
	if !ok {
		return "", fmt.Errorf("no such source: %s", path)
	}
	return content, nil
}
