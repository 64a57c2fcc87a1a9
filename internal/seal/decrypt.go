package seal

import (
	"context"
	"crypto/aes"
	"encoding/base64"
	"fmt"

	"github.com/sealkit/skseal/internal/credential"
	kerrors "github.com/sealkit/skseal/internal/errors"
	"github.com/sealkit/skseal/internal/oracle"
)

// Decrypt unseals an envelope back into plaintext.
//
// The envelope's challenge is re-signed by the oracle (exactly one touch)
// to reproduce the signature Encrypt consumed; this only works because
// credential validation restricts skseal to deterministic schemes. The key
// is then re-derived and the ciphertext decrypted under the envelope's IV.
//
// Every cipher-layer failure surfaces as the one generic ErrDecryptFailed.
// Which step failed (wrong key, tampered ciphertext, bad padding) is
// deliberately not reported, so the error cannot be used as a padding
// oracle. Format errors in the envelope structure itself are reported
// specifically, and are caught before the oracle call so a garbled envelope
// never costs a touch.
func Decrypt(ctx context.Context, envelope string, cred *credential.Credential, o oracle.Oracle) ([]byte, error) {
	challenge, ivField, ciphertextField, err := DecodeEnvelope(envelope)
	if err != nil {
		return nil, err
	}

	iv, err := base64.StdEncoding.DecodeString(ivField)
	if err != nil {
		return nil, fmt.Errorf("%w: bad IV encoding", kerrors.ErrMalformedEnvelope)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%w: IV must be %d bytes", kerrors.ErrMalformedEnvelope, aes.BlockSize)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(ciphertextField)
	if err != nil {
		// Corrupted ciphertext encoding gets the generic error, same as a
		// corrupted ciphertext byte.
		return nil, kerrors.ErrDecryptFailed
	}

	signature, err := o.Sign(ctx, []byte(challenge), cred)
	if err != nil {
		return nil, fmt.Errorf("signing challenge: %w", err)
	}

	key, err := DeriveKey(signature, []byte(challenge), []byte(cred.Fingerprint()))
	if err != nil {
		return nil, err
	}

	plaintext, err := cbcDecrypt(key, iv, ciphertext)
	if err != nil || len(plaintext) == 0 {
		return nil, kerrors.ErrDecryptFailed
	}

	return plaintext, nil
}
