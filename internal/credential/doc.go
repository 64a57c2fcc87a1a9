// Package credential loads and validates the OpenSSH security-key public
// keys skseal encrypts against.
//
// A credential is the .pub half of an sk-* OpenSSH keypair created with
// `ssh-keygen -t ed25519-sk`. The corresponding private handle stays on the
// FIDO2 device (and, for resident keys, can be regenerated on any host with
// `ssh-keygen -K`), which is what makes envelopes portable across machines.
//
// Validation is strict and happens before any signing:
//
//   - non sk-* keys are rejected as not hardware-backed
//   - sk-ecdsa keys are rejected because plain ECDSA signatures are not
//     reproducible, and skseal's key derivation depends on re-signing the
//     same challenge producing the same signature
//
// The SHA256 fingerprint of the public key is the credential's stable
// identity: it keys the audit log and feeds key derivation as
// domain-separation material.
package credential
