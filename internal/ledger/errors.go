package ledger

import "errors"

var (
	// ErrNotFound means the referenced listing or order does not exist, or
	// does not exist for the caller where lookups are scoped by owner.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the caller is authenticated but is not the
	// party allowed to perform the operation.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrListingTaken means an active order already references the listing.
	ErrListingTaken = errors.New("listing already taken")
)

// InvalidInputError reports a failed precondition on a write operation.
type InvalidInputError struct {
	Reason string
}

func (e InvalidInputError) Error() string {
	return e.Reason
}

func invalidInput(reason string) error {
	return InvalidInputError{Reason: reason}
}
