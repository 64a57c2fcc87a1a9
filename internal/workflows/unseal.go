package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sealkit/skseal/internal/audit"
	"github.com/sealkit/skseal/internal/credential"
	"github.com/sealkit/skseal/internal/oracle"
	"github.com/sealkit/skseal/internal/seal"
)

// UnsealOptions configures the unseal workflow.
type UnsealOptions struct {
	// Envelope is the sealed payload text. Surrounding whitespace from files
	// or pipes is tolerated; the envelope itself is a single line.
	Envelope string

	// KeyPath is the resolved path of the sk-* public key file.
	KeyPath string

	// TouchTimeout bounds the wait for the security key touch.
	TouchTimeout time.Duration

	// Oracle overrides the signing oracle. If nil, the user's ssh-agent is used.
	Oracle oracle.Oracle
}

// UnsealResult contains the outcome of an unseal operation.
type UnsealResult struct {
	// Plaintext is the recovered payload.
	Plaintext []byte

	// Fingerprint identifies the credential that was used.
	Fingerprint string
}

// Unseal decrypts an envelope back into its payload.
//
// It loads and validates the credential, then runs the core decrypt
// orchestration, which costs the user exactly one security key touch.
//
// Returns ErrMalformedEnvelope for input that does not parse (no touch is
// spent on it). Returns the generic ErrDecryptFailed for any cipher-layer
// failure; wrong key, tampering, and bad padding all surface the same way.
func Unseal(ctx context.Context, opts UnsealOptions) (*UnsealResult, error) {
	cred, err := credential.Load(opts.KeyPath)
	if err != nil {
		return nil, err
	}

	o := opts.Oracle
	if o == nil {
		o = oracle.NewAgentOracle(opts.TouchTimeout)
	}

	entry := audit.NewEntry("unseal")
	entry.Fingerprint = cred.Fingerprint()
	entry.KeyPath = opts.KeyPath

	envelope := strings.TrimSpace(opts.Envelope)
	entry.EnvelopeBytes = len(envelope)

	plaintext, err := seal.Decrypt(ctx, envelope, cred, o)
	if err != nil {
		entry.Outcome = "failed"
		audit.Log(entry)
		return nil, fmt.Errorf("unsealing payload: %w", err)
	}

	entry.Outcome = "ok"
	audit.Log(entry)

	return &UnsealResult{
		Plaintext:   plaintext,
		Fingerprint: cred.Fingerprint(),
	}, nil
}
