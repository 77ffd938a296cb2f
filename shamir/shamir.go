package shamir

import (
	"errors"
	"fmt"
	"io"
	"math/big"
)

const defaultMaxAttempts = 16

type splitOptions struct {
	rand        io.Reader
	maxAttempts int
}

// Option configures Split.
type Option func(*splitOptions)

// WithRandom sets the entropy source used for coefficients and x-coordinates.
// It defaults to crypto/rand.Reader and must be cryptographically secure outside of tests.
func WithRandom(r io.Reader) Option {
	return func(o *splitOptions) {
		o.rand = r
	}
}

// WithMaxAttempts bounds how many times Split redraws the polynomial and
// x-coordinates when a share would expose the secret value.
func WithMaxAttempts(n int) Option {
	return func(o *splitOptions) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

// Split divides secret into numShares shares over GF(prime), where any
// threshold of them reconstruct the secret.
//
// Parameters:
//   - secret: the value to split, 0 <= secret < prime
//   - numShares: total number of shares to generate, 1 <= numShares < prime
//   - threshold: minimum number of shares required, 1 <= threshold <= numShares
//   - prime: the field modulus
//
// Invalid parameters yield ErrInvalidParameters and no shares. The returned
// shares have pairwise-distinct, non-zero x-coordinates in draw order, and
// no coordinate equals the secret.
func Split(secret *big.Int, numShares, threshold int, prime *big.Int, opts ...Option) ([]*Share, error) {
	options := &splitOptions{maxAttempts: defaultMaxAttempts}
	for _, opt := range opts {
		opt(options)
	}

	if err := validateSplit(secret, numShares, threshold, prime); err != nil {
		return nil, err
	}

	sampler := NewSampler(options.rand)

	for range options.maxAttempts {
		shares, err := splitOnce(sampler, secret, numShares, threshold, prime)
		if err != nil {
			return nil, err
		}

		if !exposesSecret(shares, secret, threshold) {
			return shares, nil
		}
	}

	return nil, ErrShareLeak
}

func validateSplit(secret *big.Int, numShares, threshold int, prime *big.Int) error {
	switch {
	case !validPrime(prime):
		return fmt.Errorf("%w: prime must be at least 2", ErrInvalidParameters)
	case secret == nil || secret.Sign() < 0:
		return fmt.Errorf("%w: secret must be non-negative", ErrInvalidParameters)
	case numShares < 1 || threshold < 1:
		return fmt.Errorf("%w: share count and threshold must be positive", ErrInvalidParameters)
	case threshold > numShares:
		return fmt.Errorf("%w: threshold %d exceeds share count %d", ErrInvalidParameters, threshold, numShares)
	case big.NewInt(int64(numShares)).Cmp(prime) >= 0:
		return fmt.Errorf("%w: share count must be below the prime", ErrInvalidParameters)
	case big.NewInt(int64(threshold)).Cmp(prime) >= 0:
		return fmt.Errorf("%w: threshold must be below the prime", ErrInvalidParameters)
	case secret.Cmp(prime) >= 0:
		return fmt.Errorf("%w: secret must be below the prime", ErrInvalidParameters)
	}

	return nil
}

func splitOnce(sampler *Sampler, secret *big.Int, numShares, threshold int, prime *big.Int) ([]*Share, error) {
	// random coefficients of degree 1..threshold-1
	randoms, err := sampler.Sample(threshold-1, prime)
	if err != nil {
		return nil, err
	}

	coefficients := make([]Element, 0, threshold)
	coefficients = append(coefficients, NewElement(secret, prime))
	for _, r := range randoms {
		coefficients = append(coefficients, NewElement(r, prime))
	}

	poly := newPolynomial(coefficients)

	xs, err := sampler.Sample(numShares, prime)
	if err != nil {
		return nil, err
	}

	shares := make([]*Share, 0, numShares)
	for _, x := range xs {
		y := poly.evaluate(NewElement(x, prime))

		shares = append(shares, &Share{
			X: x,
			Y: y.Int(),
		})
	}

	return shares, nil
}

// exposesSecret reports whether a share coordinate equals the secret.
// A threshold of one is a constant polynomial, so every y is the secret by
// construction and only the x-coordinates are checked.
func exposesSecret(shares []*Share, secret *big.Int, threshold int) bool {
	for _, share := range shares {
		if share.X.Cmp(secret) == 0 {
			return true
		}
		if threshold > 1 && share.Y.Cmp(secret) == 0 {
			return true
		}
	}

	return false
}

// Reconstruct recovers the constant term of the polynomial through the given
// shares by Lagrange interpolation at x = 0.
//
// The result equals the secret only when the shares include at least
// threshold genuine shares of the same split. Fewer shares produce an
// unrelated field element without any error.
func Reconstruct(shares []*Share, prime *big.Int) (*big.Int, error) {
	if !validPrime(prime) {
		return nil, fmt.Errorf("%w: prime must be at least 2", ErrInvalidParameters)
	}

	if len(shares) == 0 {
		return nil, ErrNoShares
	}

	xs := make([]Element, len(shares))
	ys := make([]Element, len(shares))
	seen := make(map[string]int, len(shares))

	for i, share := range shares {
		if share == nil || !inField(share.X, prime) || !inField(share.Y, prime) {
			return nil, fmt.Errorf("%w: share %d", ErrOutOfRange, i)
		}

		key := share.X.String()
		if j, ok := seen[key]; ok {
			// x_j - x_i would be zero and has no inverse
			return nil, errors.Join(
				fmt.Errorf("%w: shares %d and %d", ErrDuplicateShare, j, i),
				ErrNotInvertible,
			)
		}
		seen[key] = i

		xs[i] = NewElement(share.X, prime)
		ys[i] = NewElement(share.Y, prime)
	}

	// with distinct x-coordinates this only fails for a composite modulus
	secret, err := interpolateAtZero(xs, ys, prime)
	if err != nil {
		return nil, err
	}

	return secret.Int(), nil
}

func inField(v, prime *big.Int) bool {
	return v != nil && v.Sign() >= 0 && v.Cmp(prime) < 0
}
