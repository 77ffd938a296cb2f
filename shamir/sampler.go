package shamir

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// Sampler draws distinct random integers using a cryptographically secure source.
type Sampler struct {
	rand io.Reader
}

// NewSampler returns a Sampler reading entropy from r.
// A nil reader selects crypto/rand.Reader.
func NewSampler(r io.Reader) *Sampler {
	if r == nil {
		r = rand.Reader
	}

	return &Sampler{rand: r}
}

// Sample returns count pairwise-distinct integers, each uniform in [1, bound-1],
// in the order they were drawn. It uses rejection sampling, so it is meant for
// counts that are small relative to bound.
func (s *Sampler) Sample(count int, bound *big.Int) ([]*big.Int, error) {
	if count < 0 || bound == nil || big.NewInt(int64(count)).Cmp(bound) >= 0 {
		return nil, ErrInvalidRange
	}

	// rand.Int yields [0, bound-2]; shifting by one gives [1, bound-1]
	span := new(big.Int).Sub(bound, big.NewInt(1))

	result := make([]*big.Int, 0, count)
	seen := make(map[string]struct{}, count)

	for len(result) < count {
		n, err := rand.Int(s.rand, span)
		if err != nil {
			return nil, fmt.Errorf("shamir: read random: %w", err)
		}
		n.Add(n, big.NewInt(1))

		key := n.String()
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		result = append(result, n)
	}

	return result, nil
}
