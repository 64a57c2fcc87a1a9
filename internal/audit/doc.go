// Package audit keeps an append-only JSON Lines log of skseal operations.
//
// Each seal, unseal, and init appends one entry to audit.jsonl in the user
// data directory, recording when the operation ran, which credential it
// used, and how it ended. Payload content never reaches the log; only sizes
// and the public key fingerprint do.
//
// Logging is strictly best-effort: a full disk or unwritable directory must
// never turn a successful seal into a failure, so every error in here is
// swallowed. `skseal log` reads the entries back.
package audit
