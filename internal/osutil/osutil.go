// Package osutil resolves the application directory behind a swappable
// provider so tests can fake the OS.
package osutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the directory under the user config dir that holds the
// food log and config.toml.
const AppName = "nutritrack"

// PathProvider abstracts the OS calls used by AppDir.
type PathProvider interface {
	UserConfigDir() (string, error)
	MkdirAll(path string, perm os.FileMode) error
}

// DefaultPathProvider uses real OS functions.
type DefaultPathProvider struct{}

// UserConfigDir returns the default root directory for user-specific configuration data.
func (DefaultPathProvider) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (DefaultPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Provider is the package-level path provider instance.
var Provider PathProvider = DefaultPathProvider{}

// SetProvider sets a custom provider (for testing).
func SetProvider(p PathProvider) {
	Provider = p
}

// ResetProvider resets to the default provider.
func ResetProvider() {
	Provider = DefaultPathProvider{}
}

// AppDir returns <user config dir>/nutritrack, creating it if needed.
func AppDir() (string, error) {
	configDir, err := Provider.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}

	dir := filepath.Join(configDir, AppName)
	if err := Provider.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return dir, nil
}

// ResolveDataDir returns override when set, otherwise AppDir.
// The override directory is created if missing.
func ResolveDataDir(override string) (string, error) {
	if override == "" {
		return AppDir()
	}
	if err := Provider.MkdirAll(override, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", override, err)
	}
	return override, nil
}
