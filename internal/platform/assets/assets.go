// Package assets manages the on-disk assets tree (static + media files).
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// gitignoreName is seeded once so the generated tree never lands in version
// control. The file is not rewritten afterwards: operators may edit it.
const gitignoreName = ".gitignore"

const gitignoreContent = `# Automatically generated (once)
# This file will not be overwritten - you can safely edit it
# Ignore all files within this directory
*
`

// Ensure creates the assets directory tree and seeds its .gitignore.
func Ensure(dir string) error {
	if dir == "" {
		return errors.New("assets dir is required")
	}
	for _, sub := range []string{StaticRoot(dir), MediaRoot(dir)} {
		if err := os.MkdirAll(sub, 0o755); err != nil {
			return fmt.Errorf("create assets dir: %w", err)
		}
	}
	gitignore := filepath.Join(dir, gitignoreName)
	if _, err := os.Stat(gitignore); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", gitignore, err)
	}
	if err := os.WriteFile(gitignore, []byte(gitignoreContent), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", gitignore, err)
	}
	return nil
}

// StaticRoot returns the static files root under the assets dir.
func StaticRoot(dir string) string {
	return filepath.Join(dir, "static")
}

// MediaRoot returns the media files root under the assets dir.
func MediaRoot(dir string) string {
	return filepath.Join(dir, "media")
}
