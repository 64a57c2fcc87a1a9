package workflows

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sealkit/skseal/internal/oracle"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
)

// scriptedAgent serves a fixed key list over the agent protocol. When
// counter is true each signature embeds a call count, imitating a FIDO2
// device that signs differently on every touch.
type scriptedAgent struct {
	keys    []*agent.Key
	counter bool
	signs   int
}

func (s *scriptedAgent) List() ([]*agent.Key, error) {
	return s.keys, nil
}

func (s *scriptedAgent) Sign(key ssh.PublicKey, data []byte) (*ssh.Signature, error) {
	s.signs++
	blob := append([]byte("sig:"), data...)
	if s.counter {
		blob = append(blob, []byte(fmt.Sprintf(":%d", s.signs))...)
	}
	return &ssh.Signature{Format: key.Type(), Blob: blob}, nil
}

func (s *scriptedAgent) Add(key agent.AddedKey) error   { return errors.New("not implemented") }
func (s *scriptedAgent) Remove(key ssh.PublicKey) error { return errors.New("not implemented") }
func (s *scriptedAgent) RemoveAll() error               { return errors.New("not implemented") }
func (s *scriptedAgent) Lock(passphrase []byte) error   { return errors.New("not implemented") }
func (s *scriptedAgent) Unlock(passphrase []byte) error { return errors.New("not implemented") }
func (s *scriptedAgent) Signers() ([]ssh.Signer, error) { return nil, errors.New("not implemented") }

func serveScriptedAgent(t *testing.T, fake *scriptedAgent) *oracle.AgentOracle {
	t.Helper()

	sock := filepath.Join(t.TempDir(), "agent.sock")
	listener, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("Failed to listen on unix socket: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				agent.ServeAgent(fake, conn)
			}()
		}
	}()

	return &oracle.AgentOracle{SocketPath: sock, Timeout: 5 * time.Second}
}

func agentKeyFromFile(t *testing.T, keyPath string) *agent.Key {
	t.Helper()

	data, err := os.ReadFile(keyPath)
	if err != nil {
		t.Fatalf("Failed to read key file: %v", err)
	}
	pub, comment, _, _, err := ssh.ParseAuthorizedKey(data)
	if err != nil {
		t.Fatalf("Failed to parse key file: %v", err)
	}
	return &agent.Key{Format: pub.Type(), Blob: pub.Marshal(), Comment: comment}
}

func checkByName(t *testing.T, result *DoctorResult, name string) DoctorCheck {
	t.Helper()
	for _, check := range result.Checks {
		if check.Name == name {
			return check
		}
	}
	t.Fatalf("No %q check in result: %+v", name, result.Checks)
	return DoctorCheck{}
}

func TestDoctor_HealthyWithProbe(t *testing.T) {
	useTempUserDirs(t)
	keyPath := writeTestKey(t)
	fake := &scriptedAgent{keys: []*agent.Key{agentKeyFromFile(t, keyPath)}}

	result, err := Doctor(context.Background(), DoctorOptions{
		KeyPath: keyPath,
		Probe:   true,
		Oracle:  serveScriptedAgent(t, fake),
	})
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}

	if !result.Healthy {
		t.Fatalf("Expected healthy result, got checks: %+v", result.Checks)
	}
	if probe := checkByName(t, result, "determinism probe"); !probe.Passed {
		t.Errorf("Expected determinism probe to pass: %+v", probe)
	}
	if fake.signs != 2 {
		t.Errorf("Expected the probe to cost exactly 2 touches, got %d", fake.signs)
	}
}

func TestDoctor_DetectsCounterDevice(t *testing.T) {
	useTempUserDirs(t)
	keyPath := writeTestKey(t)
	fake := &scriptedAgent{
		keys:    []*agent.Key{agentKeyFromFile(t, keyPath)},
		counter: true,
	}

	result, err := Doctor(context.Background(), DoctorOptions{
		KeyPath: keyPath,
		Probe:   true,
		Oracle:  serveScriptedAgent(t, fake),
	})
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}

	if result.Healthy {
		t.Fatal("Expected unhealthy result for a counter-bearing device")
	}
	if probe := checkByName(t, result, "determinism probe"); probe.Passed {
		t.Errorf("Expected determinism probe to fail: %+v", probe)
	}
}

func TestDoctor_CredentialNotLoaded(t *testing.T) {
	useTempUserDirs(t)
	keyPath := writeTestKey(t)

	result, err := Doctor(context.Background(), DoctorOptions{
		KeyPath: keyPath,
		Oracle:  serveScriptedAgent(t, &scriptedAgent{}),
	})
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}

	if result.Healthy {
		t.Fatal("Expected unhealthy result when the agent does not hold the credential")
	}
	if held := checkByName(t, result, "agent holds credential"); held.Passed {
		t.Errorf("Expected the holds check to fail: %+v", held)
	}
}

func TestListKeys_ClassifiesIdentities(t *testing.T) {
	skKeyPath := writeTestKey(t)
	skKey := agentKeyFromFile(t, skKeyPath)

	plainPub := plainEd25519AgentKey(t)
	fake := &scriptedAgent{keys: []*agent.Key{plainPub, skKey}}

	result, err := ListKeys(context.Background(), serveScriptedAgent(t, fake))
	if err != nil {
		t.Fatalf("ListKeys failed: %v", err)
	}
	if len(result.Keys) != 2 {
		t.Fatalf("Expected 2 keys, got %d", len(result.Keys))
	}

	// Usable keys sort first.
	if !result.Keys[0].Usable {
		t.Errorf("Expected the sk key first and usable: %+v", result.Keys[0])
	}
	if result.Keys[0].Type != ssh.KeyAlgoSKED25519 {
		t.Errorf("Expected type %s, got %s", ssh.KeyAlgoSKED25519, result.Keys[0].Type)
	}
	if result.Keys[1].Usable {
		t.Errorf("Expected the plain ed25519 key to be unusable: %+v", result.Keys[1])
	}
	if result.Keys[1].Reason != "not hardware-backed" {
		t.Errorf("Expected reason %q, got %q", "not hardware-backed", result.Keys[1].Reason)
	}
}

func plainEd25519AgentKey(t *testing.T) *agent.Key {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate ed25519 key: %v", err)
	}
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		t.Fatalf("failed to build signer: %v", err)
	}
	pub := signer.PublicKey()
	return &agent.Key{Format: pub.Type(), Blob: pub.Marshal(), Comment: "laptop"}
}
