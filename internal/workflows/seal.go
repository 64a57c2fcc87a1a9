package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/sealkit/skseal/internal/audit"
	"github.com/sealkit/skseal/internal/credential"
	"github.com/sealkit/skseal/internal/oracle"
	"github.com/sealkit/skseal/internal/seal"
)

// SealOptions configures the seal workflow.
type SealOptions struct {
	// Plaintext is the payload to seal. Must be non-empty.
	Plaintext []byte

	// KeyPath is the resolved path of the sk-* public key file.
	KeyPath string

	// TouchTimeout bounds the wait for the security key touch.
	TouchTimeout time.Duration

	// Oracle overrides the signing oracle. If nil, the user's ssh-agent is used.
	Oracle oracle.Oracle
}

// SealResult contains the outcome of a seal operation.
type SealResult struct {
	// Envelope is the sealed payload in challenge:iv:ciphertext form.
	Envelope string

	// Fingerprint identifies the credential the payload was sealed to.
	Fingerprint string

	// KeyPath is the credential file that was used.
	KeyPath string
}

// Seal encrypts a payload to a hardware-backed credential.
//
// It loads and validates the credential, then runs the core encrypt
// orchestration, which costs the user exactly one security key touch.
//
// Returns ErrEmptyPlaintext for an empty payload (checked before any touch).
// Returns credential errors if the key file is missing or unusable.
// Returns oracle errors if the agent is unreachable or signing fails.
func Seal(ctx context.Context, opts SealOptions) (*SealResult, error) {
	cred, err := credential.Load(opts.KeyPath)
	if err != nil {
		return nil, err
	}

	o := opts.Oracle
	if o == nil {
		o = oracle.NewAgentOracle(opts.TouchTimeout)
	}

	entry := audit.NewEntry("seal")
	entry.Fingerprint = cred.Fingerprint()
	entry.KeyPath = opts.KeyPath

	envelope, err := seal.Encrypt(ctx, opts.Plaintext, cred, o)
	if err != nil {
		entry.Outcome = "failed"
		audit.Log(entry)
		return nil, fmt.Errorf("sealing payload: %w", err)
	}

	entry.Outcome = "ok"
	entry.EnvelopeBytes = len(envelope)
	audit.Log(entry)

	return &SealResult{
		Envelope:    envelope,
		Fingerprint: cred.Fingerprint(),
		KeyPath:     opts.KeyPath,
	}, nil
}
