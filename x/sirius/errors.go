// Package sirius defines the error kinds shared across the translation
// pipeline, named after the algorithm this module reimplements.
package sirius

import (
	"errors"
	"fmt"
)

// Kind classifies an Error so callers can branch on errors.Is without
// parsing messages.
type Kind int

const (
	// Unknown is the zero value; never returned deliberately.
	Unknown Kind = iota
	// InvalidArgument marks bad block sizes, shift parameters or
	// zero-dimension images.
	InvalidArgument
	// IOFailure marks a raster load, region read or region write error.
	IOFailure
	// BackendFailure marks an FFT plan or execution error.
	BackendFailure
	// QueueInactive marks an internal concurrent-queue signal; it is
	// never meant to surface to a user.
	QueueInactive
	// EndOfStream marks expected, normal stream exhaustion.
	EndOfStream
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case IOFailure:
		return "i/o failure"
	case BackendFailure:
		return "backend failure"
	case QueueInactive:
		return "queue inactive"
	case EndOfStream:
		return "end of stream"
	default:
		return "unknown"
	}
}

// Error is a Kind-tagged error, optionally wrapping an underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, sirius.ErrEndOfStream) work by comparing
// Kinds: any *Error target matches when its Kind equals e's.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error for the given kind.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Sentinel kind markers usable with errors.Is(err, sirius.ErrEndOfStream).
var (
	ErrEndOfStream     = &Error{Kind: EndOfStream}
	ErrQueueInactive   = &Error{Kind: QueueInactive}
	ErrInvalidArgument = &Error{Kind: InvalidArgument}
)

// KindOf extracts the Kind of err, or Unknown if err is not (or does
// not wrap) a *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
