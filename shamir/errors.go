package shamir

import "errors"

var (
	// ErrInvalidParameters is returned when a split request violates the
	// count, threshold, secret or prime constraints.
	ErrInvalidParameters = errors.New("shamir: invalid split parameters")

	// ErrInvalidRange is returned when the sampler cannot draw the requested
	// number of distinct values from [1, bound-1].
	ErrInvalidRange = errors.New("shamir: cannot draw that many distinct values from range")

	// ErrNotInvertible is returned when a field element has no multiplicative inverse.
	ErrNotInvertible = errors.New("shamir: element is not invertible")

	// ErrDuplicateShare is returned when two shares carry the same x-coordinate.
	ErrDuplicateShare = errors.New("shamir: duplicate share x-coordinate")

	// ErrOutOfRange is returned when a share coordinate is outside [0, prime).
	ErrOutOfRange = errors.New("shamir: share coordinate out of field range")

	// ErrNoShares is returned when reconstruction is given no shares at all.
	ErrNoShares = errors.New("shamir: no shares provided")

	// ErrShareLeak is returned when no draw produced shares free of the secret value.
	ErrShareLeak = errors.New("shamir: could not generate shares that do not expose the secret")

	// ErrFieldMismatch is the panic value raised when elements of different fields are combined.
	ErrFieldMismatch = errors.New("shamir: field elements have different primes")

	// ErrInvalidShareFormat is returned when share data is malformed.
	ErrInvalidShareFormat = errors.New("shamir: invalid share format")

	// ErrUnsupportedVersion is returned when share version is not supported.
	ErrUnsupportedVersion = errors.New("shamir: unsupported share version")
)
