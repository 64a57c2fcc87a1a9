package seal

import (
	"fmt"
	"strings"

	kerrors "github.com/sealkit/skseal/internal/errors"
)

// The envelope is the textual artifact callers persist:
//
//	challenge:iv:ciphertext
//
// challenge is base64url without padding (alphabet excludes the delimiter),
// iv and ciphertext are standard base64. The whole string is printable,
// single-line, and safe for text channels.
const envelopeDelimiter = ":"

// EncodeEnvelope joins the three already-encoded fields in fixed order.
func EncodeEnvelope(challenge, iv, ciphertext string) string {
	return challenge + envelopeDelimiter + iv + envelopeDelimiter + ciphertext
}

// DecodeEnvelope splits an envelope back into its three fields.
//
// Only the first two delimiters split; the ciphertext field runs to the end
// of the string. Base64 can never emit a colon, but the parser does not rely
// on that. Fewer than three fields, or any empty field, is a format error.
func DecodeEnvelope(s string) (challenge, iv, ciphertext string, err error) {
	parts := strings.SplitN(s, envelopeDelimiter, 3)
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("%w: expected challenge%siv%sciphertext",
			kerrors.ErrMalformedEnvelope, envelopeDelimiter, envelopeDelimiter)
	}
	for _, part := range parts {
		if part == "" {
			return "", "", "", fmt.Errorf("%w: empty field", kerrors.ErrMalformedEnvelope)
		}
	}
	return parts[0], parts[1], parts[2], nil
}
