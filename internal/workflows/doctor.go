package workflows

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/sealkit/skseal/internal/configs"
	"github.com/sealkit/skseal/internal/credential"
	"github.com/sealkit/skseal/internal/oracle"
	"github.com/sealkit/skseal/internal/seal"
)

// DoctorOptions configures the environment checks.
type DoctorOptions struct {
	// KeyPath is the resolved credential path to check.
	KeyPath string

	// TouchTimeout bounds the wait during the determinism probe.
	TouchTimeout time.Duration

	// Probe enables the signature determinism probe. It costs two security
	// key touches, so it only runs when explicitly requested.
	Probe bool

	// Oracle overrides the signing oracle. If nil, the user's ssh-agent is used.
	Oracle *oracle.AgentOracle
}

// DoctorCheck is one named check and its outcome.
type DoctorCheck struct {
	Name   string
	Passed bool
	Detail string
}

// DoctorResult contains all check outcomes.
type DoctorResult struct {
	Checks  []DoctorCheck
	Healthy bool
}

// Doctor verifies that the environment can seal and unseal: config loads,
// the credential file is valid, the ssh-agent is reachable and holds the
// credential, and (optionally) the device produces reproducible signatures.
//
// The determinism probe exists because some FIDO2 devices include an
// incrementing counter in every signature. Such a device seals fine but can
// never unseal, and the probe is the only way to find out before data is at
// stake.
func Doctor(ctx context.Context, opts DoctorOptions) (*DoctorResult, error) {
	result := &DoctorResult{Healthy: true}
	add := func(name string, passed bool, detail string) {
		result.Checks = append(result.Checks, DoctorCheck{Name: name, Passed: passed, Detail: detail})
		if !passed {
			result.Healthy = false
		}
	}

	if _, err := configs.LoadConfig(); err != nil {
		add("config", false, err.Error())
	} else {
		add("config", true, configs.ConfigPath())
	}

	cred, err := credential.Load(opts.KeyPath)
	if err != nil {
		add("credential", false, err.Error())
		return result, nil
	}
	add("credential", true, fmt.Sprintf("%s (%s)", opts.KeyPath, cred.Type()))

	agentOracle := opts.Oracle
	if agentOracle == nil {
		agentOracle = oracle.NewAgentOracle(opts.TouchTimeout)
	}

	held, err := agentOracle.Holds(cred)
	if err != nil {
		add("ssh-agent", false, err.Error())
		return result, nil
	}
	add("ssh-agent", true, "reachable")

	if !held {
		add("agent holds credential", false, "run ssh-add -K or ssh-add "+keyFileHint(opts.KeyPath))
		return result, nil
	}
	add("agent holds credential", true, cred.Fingerprint())

	if !opts.Probe {
		return result, nil
	}

	// Determinism probe: sign one challenge twice and compare.
	challenge := []byte("skseal-doctor-determinism-probe")
	sig1, err := agentOracle.Sign(ctx, challenge, cred)
	if err != nil {
		add("determinism probe", false, err.Error())
		return result, nil
	}
	sig2, err := agentOracle.Sign(ctx, challenge, cred)
	if err != nil {
		add("determinism probe", false, err.Error())
		return result, nil
	}

	if !bytes.Equal(sig1, sig2) {
		add("determinism probe", false,
			"device produced two different signatures over the same challenge; "+
				"envelopes sealed with this key can NEVER be unsealed")
		return result, nil
	}
	add("determinism probe", true, "two signatures over one challenge match")

	// The probe proves end to end that derived keys reproduce.
	if _, err := seal.DeriveKey(sig1, challenge, []byte(cred.Fingerprint())); err != nil {
		add("key derivation", false, err.Error())
	} else {
		add("key derivation", true, "ok")
	}

	return result, nil
}

func keyFileHint(pubPath string) string {
	if len(pubPath) > 4 && pubPath[len(pubPath)-4:] == ".pub" {
		return pubPath[:len(pubPath)-4]
	}
	return pubPath
}
