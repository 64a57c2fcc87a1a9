package workflows

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sealkit/skseal/internal/configs"
	"github.com/sealkit/skseal/internal/credential"
	kerrors "github.com/sealkit/skseal/internal/errors"

	"golang.org/x/crypto/ssh"
)

// fakeOracle signs deterministically per challenge, like a well-behaved
// security key, without needing an agent or a touch.
type fakeOracle struct {
	err   error
	calls int
}

func (f *fakeOracle) Sign(_ context.Context, challenge []byte, _ *credential.Credential) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	sum := sha256.Sum256(append([]byte("workflow-fake-device:"), challenge...))
	return sum[:], nil
}

// useTempUserDirs points the global user settings at temp directories so
// tests never touch the real config or audit log.
func useTempUserDirs(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	original := configs.UserSkSealSettings
	configs.UserSkSealSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(tmpDir, "config"),
		UserDataPath:    filepath.Join(tmpDir, "data"),
		Username:        "test-user",
	}
	t.Cleanup(func() { configs.UserSkSealSettings = original })
}

func writeTestKey(t *testing.T) string {
	t.Helper()

	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate ed25519 key: %v", err)
	}

	wire := struct {
		Name        string
		KeyBytes    []byte
		Application string
	}{ssh.KeyAlgoSKED25519, pub, "ssh:"}
	line := ssh.KeyAlgoSKED25519 + " " + base64.StdEncoding.EncodeToString(ssh.Marshal(&wire)) + " test@host\n"

	path := filepath.Join(t.TempDir(), "id_ed25519_sk.pub")
	if err := os.WriteFile(path, []byte(line), 0644); err != nil {
		t.Fatalf("failed to write key file: %v", err)
	}
	return path
}

func TestSealUnseal_RoundTrip(t *testing.T) {
	useTempUserDirs(t)
	keyPath := writeTestKey(t)
	o := &fakeOracle{}
	plaintext := []byte("workflow round trip payload")

	sealed, err := Seal(context.Background(), SealOptions{
		Plaintext: plaintext,
		KeyPath:   keyPath,
		Oracle:    o,
	})
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	if sealed.Envelope == "" {
		t.Fatal("Seal returned an empty envelope")
	}
	if sealed.Fingerprint == "" {
		t.Fatal("Seal returned an empty fingerprint")
	}

	unsealed, err := Unseal(context.Background(), UnsealOptions{
		Envelope: sealed.Envelope + "\n", // simulate a file with trailing newline
		KeyPath:  keyPath,
		Oracle:   o,
	})
	if err != nil {
		t.Fatalf("Unseal failed: %v", err)
	}

	if !bytes.Equal(unsealed.Plaintext, plaintext) {
		t.Errorf("Expected %q, got %q", plaintext, unsealed.Plaintext)
	}
	if o.calls != 2 {
		t.Errorf("Expected exactly 2 touches for seal+unseal, got %d", o.calls)
	}
}

func TestSeal_MissingCredential(t *testing.T) {
	useTempUserDirs(t)

	_, err := Seal(context.Background(), SealOptions{
		Plaintext: []byte("payload"),
		KeyPath:   filepath.Join(t.TempDir(), "missing.pub"),
		Oracle:    &fakeOracle{},
	})
	if !errors.Is(err, kerrors.ErrCredentialNotFound) {
		t.Errorf("Expected ErrCredentialNotFound, got: %v", err)
	}
}

func TestUnseal_DeclinePropagates(t *testing.T) {
	useTempUserDirs(t)
	keyPath := writeTestKey(t)

	sealed, err := Seal(context.Background(), SealOptions{
		Plaintext: []byte("payload"),
		KeyPath:   keyPath,
		Oracle:    &fakeOracle{},
	})
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	_, err = Unseal(context.Background(), UnsealOptions{
		Envelope: sealed.Envelope,
		KeyPath:  keyPath,
		Oracle:   &fakeOracle{err: kerrors.ErrUserDeclined},
	})
	if !errors.Is(err, kerrors.ErrUserDeclined) {
		t.Errorf("Expected ErrUserDeclined, got: %v", err)
	}
}

func TestInit_CreatesAndRefusesOverwrite(t *testing.T) {
	useTempUserDirs(t)

	result, err := Init(context.Background(), InitOptions{DeviceName: "laptop"})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if result.DeviceUUID == "" {
		t.Error("Init did not assign a device UUID")
	}
	if _, err := os.Stat(result.ConfigPath); err != nil {
		t.Errorf("Config file not written: %v", err)
	}

	_, err = Init(context.Background(), InitOptions{DeviceName: "laptop"})
	if !errors.Is(err, kerrors.ErrAlreadyInitialized) {
		t.Errorf("Expected ErrAlreadyInitialized, got: %v", err)
	}

	// Force overwrites.
	if _, err := Init(context.Background(), InitOptions{DeviceName: "laptop", Force: true}); err != nil {
		t.Errorf("Init with Force failed: %v", err)
	}
}
