package hgmanifest

import "github.com/kezhuw/hgmanifest/internal/errors"

var (
	ErrMissingSeparator = errors.ErrMissingSeparator
	ErrInvalidPath      = errors.ErrInvalidPath
	ErrHashTooShort     = errors.ErrHashTooShort
	ErrMalformedHash    = errors.ErrMalformedHash
	ErrTooManyFlags     = errors.ErrTooManyFlags
	ErrUnknownFlag      = errors.ErrUnknownFlag
	ErrUnsortedEntries  = errors.ErrUnsortedEntries
	ErrMissingBlobData  = errors.ErrMissingBlobData
	ErrNoRepo           = errors.ErrNoRepo // manifest parsed without a store
	ErrNodeNotFound     = errors.ErrNodeNotFound
	ErrHistoryNotFound  = errors.ErrHistoryNotFound
	ErrStoreReadOnly    = errors.ErrStoreReadOnly
	ErrCorruptNode      = errors.ErrCorruptNode
)

type (
	// ParseError reports the one based line of malformed manifest bytes.
	ParseError = errors.ParseError
	// ResolutionError reports the entry whose content could not be
	// produced.
	ResolutionError  = errors.ResolutionError
	UnknownFlagError = errors.UnknownFlagError
)

// IsCorrupt returns a boolean indicating whether the error is a corruption error.
func IsCorrupt(err error) bool {
	return errors.IsCorrupt(err)
}

// IsNotFound returns a boolean indicating whether the error reports a
// missing node or history entry.
func IsNotFound(err error) bool {
	return errors.IsNotFound(err)
}
