package commands

import "encoding/hex"

// hexEncode is a small test helper shared across this package's tests.
func hexEncode(b []byte) string {
	return hex.EncodeToString(b)
}
