package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/sealkit/skseal/internal/configs"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp  string `json:"ts"`     // RFC3339 with microseconds.
	Device     string `json:"device"` // Device name from the user config.
	DeviceUUID string `json:"uuid"`   // Install UUID from the user config.
	Operation  string `json:"op"`     // seal, unseal, init, doctor.

	// Optional fields depending on operation.
	Fingerprint   string `json:"fingerprint,omitempty"`    // Credential used.
	KeyPath       string `json:"key_path,omitempty"`       // Credential file path.
	EnvelopeBytes int    `json:"envelope_bytes,omitempty"` // For seal/unseal.
	Outcome       string `json:"outcome,omitempty"`        // ok or the error kind.
}

// Log appends an entry to the audit log.
// If logging fails, the entry is dropped silently. Seal and unseal must not
// fail just because audit logging failed.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// NewEntry builds an entry for op with the device identity filled in from
// the user config.
func NewEntry(op string) Entry {
	entry := Entry{Operation: op}

	config, err := configs.LoadConfig()
	if err != nil {
		return entry
	}

	entry.Device = config.Device.Name
	entry.DeviceUUID = config.Device.UUID

	return entry
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	return filepath.Join(configs.UserSkSealSettings.UserDataPath, "audit.jsonl")
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(LogPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, scanner.Err()
}
