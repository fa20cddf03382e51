package boltlib

import (
	"errors"
	"fmt"

	"github.com/beholdnec/bltview/internal/cursor"
)

// Failures are terminal for the single operation that produced them and
// never coerced to partial data; sibling operations on the same
// container remain valid. Match with errors.Is / errors.As.
var (
	// ErrTruncatedInput: fewer bytes available than a field or payload requires.
	ErrTruncatedInput = cursor.ErrTruncated

	// ErrOutOfRange: a seek or offset beyond the bounds of the source.
	ErrOutOfRange = cursor.ErrOutOfRange

	// ErrMalformedContainer: a structural invariant of the container is
	// violated (table past end of file, duplicate resource id).
	ErrMalformedContainer = errors.New("malformed container")

	// ErrNotFound: no resource with the requested id.
	ErrNotFound = errors.New("resource not found")

	// ErrTruncatedStream: RL7 input exhausted before the output buffer
	// was filled.
	ErrTruncatedStream = errors.New("truncated RL7 stream")
)

// UnsupportedCompressionError reports an image compression code the
// library does not handle. The raw code is retained for display.
type UnsupportedCompressionError struct {
	Code uint8
}

func (e *UnsupportedCompressionError) Error() string {
	return fmt.Sprintf("unsupported compression type %d", e.Code)
}
