// Package mock provides test doubles for the ai package interfaces.
//
// The mocks support behavior injection via function fields and expose call
// counts for assertions. Default behavior is deterministic: the embedder
// hashes the input text into a stable pseudo-random unit vector, and the
// generator returns an empty JSON array.
package mock
