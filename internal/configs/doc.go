// Package configs manages skseal's per-user configuration.
//
// Configuration lives in a single TOML file under the XDG config directory
// (typically ~/.config/skseal/config.toml) and records the install's device
// name and UUID, the default credential path, and the security key touch
// timeout. The audit log lives separately in the XDG data directory.
//
// A missing config file is never an error: LoadConfig returns working
// defaults so every command functions on a fresh machine, and `skseal init`
// writes the file explicitly.
//
// The core packages (seal, oracle, credential) never read this package's
// globals; the CLI resolves config into explicit option structs first.
package configs
