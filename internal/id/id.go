// Package id generates short random identifiers used to correlate log
// records of one auth flow.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// FlowPrefix prefixes identifiers for credential flows.
const FlowPrefix = "flow"

const randomBytes = 6

// Generate creates an identifier of the form <prefix>_<12 hex chars>.
func Generate(prefix string) string {
	b := make([]byte, randomBytes)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is not worth aborting a flow over.
		ts := strconv.FormatInt(time.Now().UnixNano(), 16)
		for len(ts) < 2*randomBytes {
			ts = "0" + ts
		}
		return prefix + "_" + ts[len(ts)-2*randomBytes:]
	}
	return prefix + "_" + hex.EncodeToString(b)
}

// Flow returns a new flow identifier.
func Flow() string {
	return Generate(FlowPrefix)
}
