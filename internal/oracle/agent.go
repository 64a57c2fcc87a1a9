package oracle

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/sealkit/skseal/internal/credential"
	kerrors "github.com/sealkit/skseal/internal/errors"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
)

// AgentOracle signs challenges through the user's ssh-agent, which holds the
// session with the FIDO2 device and raises the touch prompt.
type AgentOracle struct {
	// SocketPath overrides $SSH_AUTH_SOCK when non-empty. Used by tests.
	SocketPath string

	// Timeout bounds the wait for a touch. The agent protocol has no
	// cancellation of its own, so without this an untouched key would hang
	// the process forever.
	Timeout time.Duration
}

// NewAgentOracle returns an oracle talking to $SSH_AUTH_SOCK with the given
// touch timeout.
func NewAgentOracle(timeout time.Duration) *AgentOracle {
	return &AgentOracle{Timeout: timeout}
}

func (o *AgentOracle) socket() string {
	if o.SocketPath != "" {
		return o.SocketPath
	}
	return os.Getenv("SSH_AUTH_SOCK")
}

func (o *AgentOracle) connect() (agent.Agent, net.Conn, error) {
	sock := o.socket()
	if sock == "" {
		return nil, nil, fmt.Errorf("%w: SSH_AUTH_SOCK is not set", kerrors.ErrAgentUnavailable)
	}

	conn, err := net.Dial("unix", sock)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", kerrors.ErrAgentUnavailable, err)
	}

	return agent.NewClient(conn), conn, nil
}

// ListKeys returns every identity the agent currently holds.
func (o *AgentOracle) ListKeys() ([]*agent.Key, error) {
	client, conn, err := o.connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	keys, err := client.List()
	if err != nil {
		return nil, fmt.Errorf("%w: listing identities: %v", kerrors.ErrAgentUnavailable, err)
	}
	return keys, nil
}

// Holds reports whether the agent has the credential loaded.
func (o *AgentOracle) Holds(cred *credential.Credential) (bool, error) {
	keys, err := o.ListKeys()
	if err != nil {
		return false, err
	}
	blob := cred.Marshal()
	for _, key := range keys {
		if bytes.Equal(key.Blob, blob) {
			return true, nil
		}
	}
	return false, nil
}

type signOutcome struct {
	sig *ssh.Signature
	err error
}

// Sign asks the agent to sign the challenge with the credential. This is the
// touch-gated call: it blocks until the key is touched, the request is
// declined, the context is canceled, or the timeout expires.
func (o *AgentOracle) Sign(ctx context.Context, challenge []byte, cred *credential.Credential) ([]byte, error) {
	client, conn, err := o.connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	held, err := o.holdsOn(client, cred)
	if err != nil {
		return nil, err
	}
	if !held {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrCredentialNotInAgent, cred.Fingerprint())
	}

	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	outcome := make(chan signOutcome, 1)
	go func() {
		sig, err := client.Sign(cred.PublicKey, challenge)
		outcome <- signOutcome{sig, err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-outcome:
		if res.err != nil {
			// The agent protocol reports declines and device faults with the
			// same generic failure, so they cannot be told apart here.
			return nil, fmt.Errorf("%w: %v", kerrors.ErrUserDeclined, res.err)
		}
		return res.sig.Blob, nil
	case <-ctx.Done():
		// Closing the connection unblocks the pending Sign goroutine.
		conn.Close()
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrOracleTimeout, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", kerrors.ErrUserDeclined, ctx.Err())
	case <-timer.C:
		conn.Close()
		return nil, fmt.Errorf("%w after %s", kerrors.ErrOracleTimeout, timeout)
	}
}

func (o *AgentOracle) holdsOn(client agent.Agent, cred *credential.Credential) (bool, error) {
	keys, err := client.List()
	if err != nil {
		return false, fmt.Errorf("%w: listing identities: %v", kerrors.ErrAgentUnavailable, err)
	}
	blob := cred.Marshal()
	for _, key := range keys {
		if bytes.Equal(key.Blob, blob) {
			return true, nil
		}
	}
	return false, nil
}
