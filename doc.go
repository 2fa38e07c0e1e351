// Package jsonfuzz is a fuzzing entry point for JSON parsing engines.
//
// The harness reads an unbounded byte stream into a single growable buffer,
// hands the bytes to a parsing engine exactly once and releases every
// resource it acquired, regardless of the outcome. Whether the parse
// succeeds or fails is deliberately irrelevant: both are routine fuzz
// outcomes. The only failures the harness itself reports are failing to
// allocate room for the input and failing to read it.
//
// Because the harness runs under memory-error instrumentation, its central
// property is that it never leaks or reuses released memory on any path;
// a harness-induced finding would be indistinguishable from one in the
// engine under test.
//
// The typical use builds cmd/jsonfuzz and points a fuzzer at it:
//
//	fuzzer-driver -- ./jsonfuzz < testcase
//
// Empty input is substituted by the two-byte literal {} so the engine always
// receives a nonzero length.
package jsonfuzz
