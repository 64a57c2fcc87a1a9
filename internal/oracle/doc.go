// Package oracle adapts the ssh-agent into skseal's signing oracle.
//
// The agent is the only component with a session to the FIDO2 device, so
// every seal and unseal funnels exactly one Sign call through it. That call
// is where the user-presence gate lives: the device blinks and waits for a
// touch, and the agent blocks until it gets one.
//
// # Failure semantics
//
// The agent protocol gives very little to work with. A decline, a missing
// touch on some devices, and a device fault all come back as the same
// generic failure message, so AgentOracle maps any sign-time failure to
// ErrUserDeclined and preserves the underlying text. Connection-level
// problems map to ErrAgentUnavailable, a credential the agent does not hold
// to ErrCredentialNotInAgent, and an expired wait to ErrOracleTimeout.
//
// # Cancellation
//
// The protocol has no cancel message. AgentOracle runs Sign on a goroutine
// and, when the context ends or the touch timeout fires, closes the agent
// connection to unblock it. The device may keep blinking until its own
// prompt times out; nothing can be done about that from this side.
package oracle
