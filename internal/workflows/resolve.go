package workflows

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sealkit/skseal/internal/configs"
)

// ResolveKeyPath picks the credential path for an operation.
// Precedence: explicit --key flag, then the config's default_key, then
// ~/.ssh/id_ed25519_sk.pub.
func ResolveKeyPath(flagPath string, config *configs.Config) string {
	if flagPath != "" {
		return expandHome(flagPath)
	}
	if config != nil && config.Keys.DefaultKey != "" {
		return expandHome(config.Keys.DefaultKey)
	}
	return configs.DefaultKeyPath()
}

// expandHome rewrites a leading ~/ to the user's home directory so config
// values like "~/.ssh/id_ed25519_sk.pub" work as written.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
