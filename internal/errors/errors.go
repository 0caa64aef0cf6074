package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrMissingSeparator = errors.New("hgmanifest: malformed entry: no \\0")
	ErrInvalidPath      = errors.New("hgmanifest: invalid path")
	ErrHashTooShort     = errors.New("hgmanifest: hash too short")
	ErrMalformedHash    = errors.New("hgmanifest: malformed hash")
	ErrTooManyFlags     = errors.New("hgmanifest: more than one flag")
	ErrUnknownFlag      = errors.New("hgmanifest: unknown flag")
	ErrUnsortedEntries  = errors.New("hgmanifest: entries not in strictly increasing order")
	ErrMissingBlobData  = errors.New("hgmanifest: node missing data")
	ErrNoRepo           = errors.New("hgmanifest: manifest has no backing repo")
	ErrNodeNotFound     = errors.New("hgmanifest: node not found")
	ErrHistoryNotFound  = errors.New("hgmanifest: history entry not found")
	ErrStoreReadOnly    = errors.New("hgmanifest: store is read only")
	ErrCorruptNode      = errors.New("hgmanifest: corrupt node record")
)

// Re-exported so packages importing this one need no second errors import.
var (
	New    = errors.New
	Errorf = errors.Errorf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Is     = errors.Is
	As     = errors.As
	Cause  = errors.Cause
)

// UnknownFlagError reports a flag byte outside of the known set.
type UnknownFlagError struct {
	Flag byte
}

func (e *UnknownFlagError) Error() string {
	return fmt.Sprintf("hgmanifest: unknown flag %q", e.Flag)
}

func (e *UnknownFlagError) Is(target error) bool {
	return target == ErrUnknownFlag
}

// ParseError locates a structural error inside manifest bytes.
type ParseError struct {
	Line int // one based
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("hgmanifest: corrupt manifest at line %d: %s", e.Line, strings.TrimPrefix(e.Err.Error(), "hgmanifest: "))
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func NewParseError(line int, err error) error {
	return &ParseError{Line: line, Err: err}
}

// ResolutionError attaches the entry being resolved to a failure from
// the store boundary or from interpreting fetched content.
type ResolutionError struct {
	Path string
	Hash string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("hgmanifest: can't get content for %s node %s: %s", e.Path, e.Hash, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// IsCorrupt reports whether err stems from malformed manifest or entry bytes.
func IsCorrupt(err error) bool {
	var perr *ParseError
	if errors.As(err, &perr) {
		return true
	}
	for _, target := range []error{ErrMissingSeparator, ErrInvalidPath, ErrHashTooShort, ErrMalformedHash, ErrTooManyFlags, ErrUnknownFlag, ErrUnsortedEntries, ErrCorruptNode} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err stems from a missing node or history entry.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound) || errors.Is(err, ErrHistoryNotFound)
}
