package consult

import "strings"

// Key diagnostic results. Advisory only; nothing is gated on them.
const (
	KeyStatusMissing   = "missing or too short"
	KeyStatusBadFormat = "format looks incorrect"
	KeyStatusValid     = "looks valid"
)

// groqKeyPrefix is the prefix of Groq API keys.
const groqKeyPrefix = "gsk_"

// minKeyLength is the shortest key worth sending. Anything at or below it is
// treated as absent.
const minKeyLength = 10

// minDiagnosticKeyLength is the length below which the diagnostic reports a
// key as too short. Real provider keys are far longer than the send gate.
const minDiagnosticKeyLength = 20

// plausibleKey reports whether a remote call is worth attempting.
func plausibleKey(key string) bool {
	return len(key) > minKeyLength
}

// CheckKeyFormat returns one of the KeyStatus strings for key.
func CheckKeyFormat(key string) string {
	switch {
	case len(key) < minDiagnosticKeyLength:
		return KeyStatusMissing
	case !strings.HasPrefix(key, groqKeyPrefix):
		return KeyStatusBadFormat
	default:
		return KeyStatusValid
	}
}

// MaskKey renders a key for logs: the first 8 and last 5 characters.
func MaskKey(key string) string {
	switch {
	case key == "":
		return "(unset)"
	case len(key) <= 13:
		return "***"
	default:
		return key[:8] + "..." + key[len(key)-5:]
	}
}
