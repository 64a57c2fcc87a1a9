package seal

import (
	"context"
	"crypto/aes"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/sealkit/skseal/internal/credential"
	kerrors "github.com/sealkit/skseal/internal/errors"
	"github.com/sealkit/skseal/internal/oracle"
)

// challengeSize is the raw entropy per challenge. 32 bytes makes challenge
// collisions (and therefore key reuse) negligible.
const challengeSize = 32

// newChallenge draws a fresh challenge and encodes it with the base64url
// no-padding alphabet, which cannot contain the envelope delimiter.
func newChallenge() (string, error) {
	raw := make([]byte, challengeSize)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", fmt.Errorf("failed to generate challenge: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Encrypt seals plaintext into an envelope.
//
// It draws a fresh challenge, has the oracle sign it (exactly one touch),
// derives the symmetric key from signature, challenge, and credential
// fingerprint, then encrypts with AES-256-CBC under a fresh IV. The
// challenge and IV travel in the envelope because Decrypt cannot regenerate
// them; the signature does not, because anyone holding it could derive the
// key without the device.
//
// The empty-plaintext check runs before the oracle call so a doomed
// invocation never costs the user a touch.
func Encrypt(ctx context.Context, plaintext []byte, cred *credential.Credential, o oracle.Oracle) (string, error) {
	if len(plaintext) == 0 {
		return "", kerrors.ErrEmptyPlaintext
	}

	challenge, err := newChallenge()
	if err != nil {
		return "", err
	}

	signature, err := o.Sign(ctx, []byte(challenge), cred)
	if err != nil {
		return "", fmt.Errorf("signing challenge: %w", err)
	}

	key, err := DeriveKey(signature, []byte(challenge), []byte(cred.Fingerprint()))
	if err != nil {
		return "", err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	ciphertext, err := cbcEncrypt(key, iv, plaintext)
	if err != nil {
		return "", err
	}

	return EncodeEnvelope(
		challenge,
		base64.StdEncoding.EncodeToString(iv),
		base64.StdEncoding.EncodeToString(ciphertext),
	), nil
}
