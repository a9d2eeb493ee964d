package interfaces

import "errors"

var (
	// ErrConfig is returned for missing or inconsistent operator configuration,
	// such as an unset printer name or a derivation path that does not match
	// the requested address type.
	ErrConfig = errors.New("configuration error")

	// ErrDerivation is returned when the mnemonic, seed or key could not be produced.
	ErrDerivation = errors.New("key derivation failed")

	// ErrUnevenSplit is returned when the custodian count does not divide the secret length.
	ErrUnevenSplit = errors.New("secret cannot be split evenly")

	// ErrSequenceExhausted is returned when the page sequencer is signalled after its last page.
	ErrSequenceExhausted = errors.New("page sequence exhausted")

	// ErrUnknownPageKind is returned by the content resolver for a state it cannot render.
	ErrUnknownPageKind = errors.New("unknown page kind")

	// ErrCoverAdjacency is returned when a page order would leave a disclosure page uncovered.
	ErrCoverAdjacency = errors.New("disclosure page is not covered")

	// ErrSpool is returned when the print system rejects or fails a job.
	ErrSpool = errors.New("print spooling failed")
)
