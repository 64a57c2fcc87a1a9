package errors

import "errors"

// Input errors indicate the caller provided something skseal cannot work with.
var (
	// ErrEmptyPlaintext indicates an attempt to seal an empty payload.
	ErrEmptyPlaintext = errors.New("cannot seal an empty payload")

	// ErrMalformedEnvelope indicates the envelope text could not be parsed.
	ErrMalformedEnvelope = errors.New("malformed envelope")
)

// Credential errors indicate issues loading or validating the SSH credential.
var (
	// ErrCredentialNotFound indicates the public key file could not be located.
	ErrCredentialNotFound = errors.New("credential file not found")

	// ErrCredentialUnreadable indicates the public key file exists but could not be read.
	ErrCredentialUnreadable = errors.New("credential file could not be read")

	// ErrInvalidCredential indicates the file is not a valid OpenSSH public key.
	ErrInvalidCredential = errors.New("invalid or unsupported public key format")

	// ErrNotHardwareBacked indicates the key is not a security-key (sk-*) credential.
	ErrNotHardwareBacked = errors.New("credential is not hardware-backed")

	// ErrNonDeterministicScheme indicates the key uses a signature scheme that does
	// not re-produce identical signatures, so a sealed payload could never be unsealed.
	ErrNonDeterministicScheme = errors.New("credential uses a non-deterministic signature scheme")
)

// Config errors indicate issues with the user configuration.
var (
	// ErrAlreadyInitialized indicates skseal init found an existing config.
	ErrAlreadyInitialized = errors.New("skseal has already been initialized")
)

// Oracle errors indicate failures of the hardware signing step.
var (
	// ErrAgentUnavailable indicates no ssh-agent could be reached.
	ErrAgentUnavailable = errors.New("ssh-agent is not available")

	// ErrCredentialNotInAgent indicates the agent does not hold the credential.
	ErrCredentialNotInAgent = errors.New("credential is not loaded in the ssh-agent")

	// ErrUserDeclined indicates the signing request was refused by the device or user.
	ErrUserDeclined = errors.New("signing request was declined")

	// ErrOracleTimeout indicates the device was not touched within the wait bound.
	ErrOracleTimeout = errors.New("timed out waiting for security key touch")

	// ErrDeviceFault indicates the security key reported a hardware-level failure.
	ErrDeviceFault = errors.New("security key reported a device fault")
)

// Crypto errors indicate failures during key derivation or the cipher layer.
var (
	// ErrDeriveKeyFailed indicates the key derivation inputs were unusable.
	ErrDeriveKeyFailed = errors.New("failed to derive encryption key")

	// ErrEncryptFailed indicates the cipher layer failed while sealing.
	ErrEncryptFailed = errors.New("failed to encrypt payload")

	// ErrDecryptFailed is the single generic unseal failure. Wrong key, tampered
	// ciphertext, and bad padding are deliberately indistinguishable.
	ErrDecryptFailed = errors.New("decryption failed: wrong key or corrupted data")

	// ErrInvalidKeyLength indicates the derived key has an unexpected length.
	ErrInvalidKeyLength = errors.New("invalid symmetric key length")
)
