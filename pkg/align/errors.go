// Package align collects the error kinds shared across the read-mapping core.
package align

import "errors"

// Sentinel error kinds. Callers should check with errors.Is; wrapping with
// github.com/pkg/errors.Wrap is expected to add context at each layer.
var (
	// ErrInvalidAlphabet means input bytes contained a symbol outside {A,C,G,T}
	// (case-insensitive) where only nucleotides are accepted.
	ErrInvalidAlphabet = errors.New("align: invalid alphabet symbol")

	// ErrEmptyGenome means a suffix array or index was built over zero symbols.
	ErrEmptyGenome = errors.New("align: empty genome")

	// ErrInvalidArgument means a caller-supplied parameter violates a
	// documented precondition (seed length, seed count, read length).
	ErrInvalidArgument = errors.New("align: invalid argument")

	// ErrCorruptIndex means a persisted index failed a structural check on load.
	ErrCorruptIndex = errors.New("align: corrupt index")
)
