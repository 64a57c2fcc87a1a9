// Package seal implements skseal's core cryptography: turning a touch-gated
// hardware signing oracle into a reproducible symmetric key, and packaging
// the per-message randomness so decryption can rebuild that key later.
//
// # Protocol
//
// Sealing a payload:
//
//  1. Draw a fresh 32-byte challenge, encoded base64url without padding
//  2. Have the security key sign the challenge (one touch)
//  3. key = SHA-256(SHA-256(signature || challenge || fingerprint))
//  4. Encrypt with AES-256-CBC under a fresh 16-byte IV, PKCS#7 padding
//  5. Emit the envelope "challenge:iv:ciphertext"
//
// Unsealing parses the envelope, re-signs the recovered challenge (one
// touch), re-derives the identical key, and decrypts. The symmetric key is
// never stored anywhere; it exists only for the duration of one call.
//
// # Why this works
//
// The signature is a deterministic function of (device secret, challenge),
// so the key is recoverable by anyone with the device, the public key, and
// the envelope, and by no one else. The challenge and IV are public values:
// they must travel in the envelope, and revealing them gives an attacker
// nothing without the signature. Each operation uses a fresh challenge, so
// keys are single-use and IV reuse cannot arise.
//
// This depends on the signature scheme being deterministic. Credential
// validation (package credential) refuses schemes where it is not.
//
// # Purity
//
// The package reads no files, keeps no state, and performs no I/O beyond
// the oracle's Sign call and the system random source. Both orchestrators
// cost exactly one touch per call.
package seal
