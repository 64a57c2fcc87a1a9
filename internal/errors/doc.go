// Package errors provides typed error values for the skseal application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Input errors: Bad caller input (ErrEmptyPlaintext, ErrMalformedEnvelope)
//   - Credential errors: Key file issues (ErrNotHardwareBacked, ErrInvalidCredential)
//   - Oracle errors: Hardware signing failures (ErrUserDeclined, ErrOracleTimeout)
//   - Crypto errors: Derivation/cipher failures (ErrDecryptFailed)
//
// # Usage
//
// Return errors from internal packages:
//
//	if len(plaintext) == 0 {
//	    return "", errors.ErrEmptyPlaintext
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Seal(ctx, opts)
//	if errors.Is(err, kerrors.ErrUserDeclined) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("loading credential at %s: %w", path, errors.ErrCredentialNotFound)
//
// One deliberate exception to specific reporting: every unseal failure in the
// cipher layer surfaces as the single generic ErrDecryptFailed so that callers
// (and their logs) cannot distinguish a wrong key from tampered ciphertext or
// malformed padding.
package errors
