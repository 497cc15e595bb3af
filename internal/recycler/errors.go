package recycler

import "errors"

var (
	// ErrIndexOutOfRange is returned by index-based mutations.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrMissingLayoutMetadata is logged, never returned, when a list is
	// created without layout metadata. Zero spacing and padding are used.
	ErrMissingLayoutMetadata = errors.New("missing layout metadata")

	// ErrReentrant is the panic value for a call into a List while it is
	// already recomputing, for example a mutation issued from SetData.
	ErrReentrant = errors.New("recycler: reentrant call during recompute")

	// ErrClosed is the panic value for use of a List after Close.
	ErrClosed = errors.New("recycler: list is closed")
)
