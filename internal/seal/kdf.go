package seal

import (
	"crypto/sha256"
	"fmt"

	kerrors "github.com/sealkit/skseal/internal/errors"
)

// KeySize is the derived symmetric key length in bytes (AES-256).
const KeySize = 32

// DeriveKey turns a hardware signature into the envelope's symmetric key.
//
// The signature, the challenge, and the credential fingerprint are
// concatenated in that fixed order and hashed twice with SHA-256. The double
// hash yields a uniformly distributed fixed-length key regardless of the
// signature scheme's byte length, and hedges against weakness in a single
// pass. Seal and unseal must feed identical inputs or the keys diverge.
//
// Deterministic: same three inputs, same 32 bytes, every time.
func DeriveKey(signature, challenge, fingerprint []byte) ([]byte, error) {
	if len(signature) == 0 {
		return nil, fmt.Errorf("%w: empty signature", kerrors.ErrDeriveKeyFailed)
	}
	if len(challenge) == 0 {
		return nil, fmt.Errorf("%w: empty challenge", kerrors.ErrDeriveKeyFailed)
	}
	if len(fingerprint) == 0 {
		return nil, fmt.Errorf("%w: empty fingerprint", kerrors.ErrDeriveKeyFailed)
	}

	material := make([]byte, 0, len(signature)+len(challenge)+len(fingerprint))
	material = append(material, signature...)
	material = append(material, challenge...)
	material = append(material, fingerprint...)

	first := sha256.Sum256(material)
	second := sha256.Sum256(first[:])

	return second[:], nil
}
