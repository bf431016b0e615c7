// Package platform resolves where the current project's board lives.
package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvBasePath overrides the project base directory when set.
const EnvBasePath = "CLICKY_PATH"

// FindUp walks from start toward the filesystem root and returns the
// first directory containing marker (a relative path). Reports false
// when no ancestor has it.
func FindUp(start, marker string) (string, bool) {
	dir := filepath.Clean(start)
	for {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// ResolveBase picks the project base directory: an explicit flag wins,
// then the CLICKY_PATH environment variable, then the nearest ancestor
// of cwd containing marker, then cwd itself. env is injectable for
// tests.
func ResolveBase(flag string, env func(string) string, cwd, marker string) string {
	if v := strings.TrimSpace(flag); v != "" {
		return v
	}
	if env != nil {
		if v := strings.TrimSpace(env(EnvBasePath)); v != "" {
			return v
		}
	}
	if base, ok := FindUp(cwd, marker); ok {
		return base
	}
	return cwd
}
