//go:build gofuzz
// +build gofuzz

package fuzz

import (
	"bytes"
	"encoding/json"

	"github.com/xarantolus/jsonfuzz"
)

// Fuzz runs the whole harness over the fuzzer's payload with both engines.
// Returns 1 for input that was valid JSON, everything else is neutral (0).
func Fuzz(data []byte) int {
	// Without an injected fault the harness itself must never fail
	if jsonfuzz.Run(bytes.NewReader(data), jsonfuzz.Tokener{}) != 0 {
		panic("harness reported failure")
	}
	if jsonfuzz.Run(bytes.NewReader(data), jsonfuzz.JSTokener{}) != 0 {
		panic("harness reported failure")
	}

	if json.Valid(data) {
		return 1
	}

	return 0
}
