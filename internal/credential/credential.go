package credential

import (
	"fmt"
	"os"

	kerrors "github.com/sealkit/skseal/internal/errors"

	"golang.org/x/crypto/ssh"
)

// Credential is an OpenSSH security-key public key, loaded once per invocation.
// The private half never leaves the hardware; skseal only ever holds this
// public reference and hands signing to the ssh-agent.
type Credential struct {
	PublicKey ssh.PublicKey
	Comment   string
	Path      string
}

// Load reads and validates an sk-* OpenSSH public key file (authorized_keys
// format, the .pub files ssh-keygen writes).
func Load(path string) (*Credential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrCredentialNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrCredentialUnreadable, path, err)
	}

	pub, comment, _, _, err := ssh.ParseAuthorizedKey(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidCredential, path, err)
	}

	if err := Validate(pub); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Credential{PublicKey: pub, Comment: comment, Path: path}, nil
}

// Validate rejects keys that cannot serve as a seal credential, before any
// cryptographic work happens.
//
// Only hardware-backed (sk-*) keys are accepted, and among those only
// deterministic signature schemes: an sk-ecdsa key would produce a different
// signature on every touch, so the envelope key could never be re-derived.
func Validate(pub ssh.PublicKey) error {
	switch pub.Type() {
	case ssh.KeyAlgoSKED25519:
		return nil
	case ssh.KeyAlgoSKECDSA256:
		return fmt.Errorf("%w: %s", kerrors.ErrNonDeterministicScheme, pub.Type())
	default:
		return fmt.Errorf("%w: %s", kerrors.ErrNotHardwareBacked, pub.Type())
	}
}

// Fingerprint returns the stable SHA256 fingerprint of the public key
// ("SHA256:..."), the same string ssh-keygen -lf prints. It doubles as the
// domain-separation input to key derivation, so its format must never change.
func (c *Credential) Fingerprint() string {
	return ssh.FingerprintSHA256(c.PublicKey)
}

// Type returns the SSH key algorithm name, e.g. "sk-ssh-ed25519@openssh.com".
func (c *Credential) Type() string {
	return c.PublicKey.Type()
}

// Marshal returns the key's wire-format blob, used to match the credential
// against identities held by the ssh-agent.
func (c *Credential) Marshal() []byte {
	return c.PublicKey.Marshal()
}
