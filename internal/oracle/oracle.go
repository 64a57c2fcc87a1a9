package oracle

import (
	"context"

	"github.com/sealkit/skseal/internal/credential"
)

// Oracle produces a signature over a challenge using a hardware-backed
// credential. Implementations may block on physical user presence; callers
// must treat every Sign call as potentially costing the user a touch.
type Oracle interface {
	Sign(ctx context.Context, challenge []byte, cred *credential.Credential) ([]byte, error)
}
