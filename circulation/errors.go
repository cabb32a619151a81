// circulation/errors.go
package circulation

import "errors"

// Sentinel errors reported by circulation and request operations.
// Controllers map them to HTTP status codes; nothing in this package
// knows about HTTP.
var (
	ErrBookNotAvailable = errors.New("book is not available")
	ErrBookRecycled     = errors.New("book is recycled and barred from lending")
	ErrDuplicateRequest = errors.New("student already has a pending request for this book")
	ErrRequestDecided   = errors.New("request has already been processed")
	ErrFineAlreadyPaid  = errors.New("fine already settled")
	ErrFineNotDue       = errors.New("issue is still open, fine not finalized")
)

// Conflict reports whether err is a state conflict (HTTP 409 territory)
// as opposed to a missing record or bad input.
func Conflict(err error) bool {
	return errors.Is(err, ErrBookNotAvailable) ||
		errors.Is(err, ErrBookRecycled) ||
		errors.Is(err, ErrDuplicateRequest) ||
		errors.Is(err, ErrRequestDecided) ||
		errors.Is(err, ErrFineAlreadyPaid) ||
		errors.Is(err, ErrFineNotDue)
}
