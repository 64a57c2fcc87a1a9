package configs

import (
	"log"
	"os"
	"os/user"
	"path/filepath"
)

type UserSettings struct {
	UserConfigsPath string
	UserDataPath    string
	Username        string
}

var UserSkSealSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	username := ""
	if current, err := user.Current(); err == nil {
		username = current.Username
	}

	// Independent of the working directory, so it is ok to init here.
	UserSkSealSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "skseal"),
		UserDataPath:    filepath.Join(dataDir, "skseal"),
		Username:        username,
	}
}

// DefaultKeyPath returns the fallback credential path used when neither the
// --key flag nor the config file names one.
func DefaultKeyPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".ssh", "id_ed25519_sk.pub")
}
