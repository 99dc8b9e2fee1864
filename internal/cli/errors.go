package cli

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pkordes/travelbook/internal/domain"
)

// Exit statuses of the travelbook binary.
const (
	ExitOK      = 0
	ExitFailure = 1 // the request was rejected or failed
	ExitStore   = 2 // the store could not be used
)

// usageError reports a malformed command line. It is a validation error so
// the user sees it the same way as any other rejected input.
func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrValidation}, args...)...)
}

// Report writes err to w as "error [<kind>]: <message>".
func Report(w io.Writer, err error) {
	fmt.Fprintf(w, "error [%s]: %s\n", domain.KindOf(err), Message(err))
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, domain.ErrStoreUnavailable):
		return ExitStore
	default:
		return ExitFailure
	}
}

// opPrefix matches the "layer.Type.Op: " prefixes added while an error
// travels up the call stack.
var opPrefix = regexp.MustCompile(`^(?:[a-z]+(?:\.[A-Za-z]+)+: )+`)

// Message extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.Add: validation error: price must be positive" → "price must be positive"
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := opPrefix.ReplaceAllString(err.Error(), "")
	if rest, ok := strings.CutPrefix(msg, domain.ErrValidation.Error()+": "); ok {
		return rest
	}
	return msg
}
