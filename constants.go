package gochap

// CHAP field size constants per RFC 1994 Section 4.1
const (
	// IdentifierLength is the length of the Identifier field in bytes
	IdentifierLength = 1
	// MinChallengeLength is the minimum Challenge Value length in bytes
	MinChallengeLength = 1
	// MaxChallengeLength is the maximum Challenge Value length (Value-Size is a single octet)
	MaxChallengeLength = 255
	// MD5ResponseLength is the response length for the mandatory MD5 digest
	MD5ResponseLength = 16
)
