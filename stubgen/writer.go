package stubgen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/oastubs/internal/fileutil"
)

// GeneratedFile is a rendered test file.
type GeneratedFile struct {
	// Name is the suggested file name, e.g. "swagger_petstore_test.go"
	Name string
	// Content is the formatted Go source
	Content []byte
	// Tests is the plan the file was rendered from
	Tests []TestFunc
}

// WriteFile writes the file to path, creating parent directories as needed.
// When path is an existing directory the file is written there under Name.
func (f *GeneratedFile) WriteFile(path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, f.Name)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, f.Content, fileutil.ReadableByAll); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
