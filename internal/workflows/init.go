package workflows

import (
	"context"
	"os"

	"github.com/sealkit/skseal/internal/audit"
	"github.com/sealkit/skseal/internal/configs"
	kerrors "github.com/sealkit/skseal/internal/errors"
)

// InitOptions configures first-time setup.
type InitOptions struct {
	// DeviceName labels this install in config and audit entries.
	DeviceName string

	// DefaultKey is the credential path to record as default. May be empty;
	// operations then fall back to ~/.ssh/id_ed25519_sk.pub.
	DefaultKey string

	// Force overwrites an existing config.
	Force bool
}

// InitResult contains the outcome of init.
type InitResult struct {
	ConfigPath string
	DeviceUUID string
}

// Init writes the initial user config with a fresh device UUID.
//
// Returns ErrAlreadyInitialized if a config exists and Force is not set.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	configPath := configs.ConfigPath()

	if _, err := os.Stat(configPath); err == nil && !opts.Force {
		return nil, kerrors.ErrAlreadyInitialized
	}

	deviceName := opts.DeviceName
	if deviceName == "" {
		if host, err := os.Hostname(); err == nil {
			deviceName = host
		}
	}

	config := configs.NewConfig(deviceName, opts.DefaultKey)
	if err := configs.SaveConfig(config); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("init")
	audit.Log(entry)

	return &InitResult{
		ConfigPath: configPath,
		DeviceUUID: config.Device.UUID,
	}, nil
}
