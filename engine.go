package jsonfuzz

import (
	"bytes"
	"encoding/json"
)

// Engine is the parsing engine the harness exercises. The harness makes no
// assumption about what an engine does with the bytes beyond the Handle
// contract below.
type Engine interface {
	// NewHandle creates the state for a single parse attempt. It may fail
	// under resource pressure; the harness treats that as a degraded run,
	// not as a finding.
	NewHandle() (Handle, error)
}

// Handle performs at most one parse and must be closed by its creator.
type Handle interface {
	// Parse attempts to parse data, which carries its own length and is not
	// terminator-delimited. It returns the parsed value, or nil together
	// with the reason parsing failed.
	Parse(data []byte) (Value, error)

	// Err returns the error state the last Parse left behind, nil if it
	// succeeded or was never called.
	Err() error

	// Close releases the handle's resources. Values returned by Parse must
	// be released before the handle is closed.
	Close()
}

// Value is a parsed result. The caller owns it and must release it exactly
// once.
type Value interface {
	Release()
}

// Tokener is an Engine backed by the standard library's JSON decoder. Like an
// incremental tokener it consumes the first complete value in the input and
// ignores whatever follows it.
type Tokener struct{}

// NewHandle implements Engine. It cannot fail.
func (Tokener) NewHandle() (Handle, error) {
	return &tokenerHandle{}, nil
}

type tokenerHandle struct {
	err error
}

func (h *tokenerHandle) Parse(data []byte) (Value, error) {
	var v Value
	v, h.err = decodeValue(data)

	return v, h.err
}

func (h *tokenerHandle) Err() error { return h.err }

func (h *tokenerHandle) Close() {}

// decodeValue decodes the first JSON value in data.
func decodeValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	// Numbers stay verbatim so numeric parse paths are exercised without
	// float conversion
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	return &document{doc: doc}, nil
}

// document holds a decoded value until it is released.
type document struct {
	doc interface{}
}

// Release drops the decoded value.
func (d *document) Release() { d.doc = nil }
