package images

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies the failures of a resize run.
type Kind int

// Kind constants
const (
	// KindUnknown is any error that did not originate in this module.
	KindUnknown Kind = iota
	// KindPathNotFound is a missing input target.
	KindPathNotFound
	// KindNotADirectory is an output path that exists but is not a directory.
	KindNotADirectory
	// KindInvalidSize is a non-positive target size.
	KindInvalidSize
	// KindDecode is an input file that cannot be read or parsed as an image.
	KindDecode
	// KindSizeMismatch is a raster buffer whose length is not width*height*3.
	KindSizeMismatch
	// KindEncode is a compressor that cannot start or finish.
	KindEncode
	// KindWrite is a failure writing an output file.
	KindWrite
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPathNotFound:
		return "path not found"
	case KindNotADirectory:
		return "not a directory"
	case KindInvalidSize:
		return "invalid size"
	case KindDecode:
		return "decode error"
	case KindSizeMismatch:
		return "size mismatch"
	case KindEncode:
		return "encode error"
	case KindWrite:
		return "write error"
	default:
		return "unknown error"
	}
}

// Error is a classified failure. Op names the step that failed and Path the
// file it was working on, either may be empty.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrPathNotFound  = &Error{Kind: KindPathNotFound}
	ErrNotADirectory = &Error{Kind: KindNotADirectory}
	ErrInvalidSize   = &Error{Kind: KindInvalidSize}
	ErrDecode        = &Error{Kind: KindDecode}
	ErrSizeMismatch  = &Error{Kind: KindSizeMismatch}
	ErrEncode        = &Error{Kind: KindEncode}
	ErrWrite         = &Error{Kind: KindWrite}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind Kind, op, path string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: cause}
}

// errorf builds an *Error whose cause is a formatted message.
func errorf(kind Kind, op string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: errors.Errorf(format, args...)}
}

// NewError builds an *Error for callers outside this package.
func NewError(kind Kind, op, path string, cause error) error {
	return newError(kind, op, path, cause)
}
