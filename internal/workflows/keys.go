package workflows

import (
	"context"
	"errors"

	"github.com/sealkit/skseal/internal/credential"
	kerrors "github.com/sealkit/skseal/internal/errors"
	"github.com/sealkit/skseal/internal/oracle"

	"golang.org/x/crypto/ssh"
)

// KeyInfo describes one identity held by the ssh-agent and whether skseal
// can seal to it.
type KeyInfo struct {
	Fingerprint string
	Type        string
	Comment     string
	Usable      bool
	Reason      string // why the key is unusable, empty when usable
}

// ListKeysResult contains the agent's identities, usable ones first.
type ListKeysResult struct {
	Keys []KeyInfo
}

// ListKeys enumerates the ssh-agent's identities and classifies each one
// against skseal's credential requirements. No touches are spent; listing
// is not a signing operation.
func ListKeys(ctx context.Context, agentOracle *oracle.AgentOracle) (*ListKeysResult, error) {
	if agentOracle == nil {
		agentOracle = oracle.NewAgentOracle(0)
	}

	agentKeys, err := agentOracle.ListKeys()
	if err != nil {
		return nil, err
	}

	result := &ListKeysResult{}
	for _, key := range agentKeys {
		pub, err := ssh.ParsePublicKey(key.Blob)
		if err != nil {
			result.Keys = append(result.Keys, KeyInfo{
				Type:    key.Format,
				Comment: key.Comment,
				Reason:  "unparseable key blob",
			})
			continue
		}

		info := KeyInfo{
			Fingerprint: ssh.FingerprintSHA256(pub),
			Type:        pub.Type(),
			Comment:     key.Comment,
		}

		switch err := credential.Validate(pub); {
		case err == nil:
			info.Usable = true
		case errors.Is(err, kerrors.ErrNonDeterministicScheme):
			info.Reason = "non-deterministic signature scheme"
		case errors.Is(err, kerrors.ErrNotHardwareBacked):
			info.Reason = "not hardware-backed"
		default:
			info.Reason = err.Error()
		}

		result.Keys = append(result.Keys, info)
	}

	// Usable keys first, stable within each group.
	usable := make([]KeyInfo, 0, len(result.Keys))
	rest := make([]KeyInfo, 0, len(result.Keys))
	for _, k := range result.Keys {
		if k.Usable {
			usable = append(usable, k)
		} else {
			rest = append(rest, k)
		}
	}
	result.Keys = append(usable, rest...)

	return result, nil
}
