// Package buildhash derives the opaque build identifier used for
// staleness detection. The hash covers the binary version and the raw
// content files, so either a redeploy or a config edit produces a new
// value.
package buildhash

import (
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// Compute returns the build hash for a version string and the raw
// content files. The result is a stable hex string: same inputs, same
// hash, regardless of when or where it is computed.
func Compute(version string, raw [][]byte) string {
	d := xxhash.New()

	// Writes to xxhash never fail.
	_, _ = d.WriteString(version)
	for _, data := range raw {
		// Length prefix keeps file boundaries from colliding.
		var lenBuf [8]byte
		n := len(data)
		for i := 0; i < 8; i++ {
			lenBuf[i] = byte(n >> (8 * i))
		}
		_, _ = d.Write(lenBuf[:])
		_, _ = d.Write(data)
	}

	var sum [8]byte
	s := d.Sum64()
	for i := 0; i < 8; i++ {
		sum[i] = byte(s >> (8 * i))
	}
	return hex.EncodeToString(sum[:])
}
