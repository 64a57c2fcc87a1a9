// Package utils provides small shared helpers for the skseal CLI:
// stdin/stdout plumbing, terminal detection, no-echo prompting, and
// display formatting for paths and fingerprints.
package utils
