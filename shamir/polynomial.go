package shamir

import (
	"math/big"
)

// polynomial represents a polynomial over GF(p).
// coefficients[0] is the constant term (the secret).
type polynomial struct {
	coefficients []Element
}

// newPolynomial creates a new polynomial with given coefficients.
func newPolynomial(coefficients []Element) *polynomial {
	return &polynomial{coefficients: coefficients}
}

// evaluate evaluates the polynomial at point x using Horner's method.
// The polynomial must have at least one coefficient.
func (p *polynomial) evaluate(x Element) Element {
	// a_n*x^n + ... + a_1*x + a_0
	// = ((a_n*x + a_{n-1})*x + ... + a_1)*x + a_0
	result := p.coefficients[len(p.coefficients)-1]

	for i := len(p.coefficients) - 2; i >= 0; i-- {
		result = result.Mul(x).Add(p.coefficients[i])
	}

	return result
}

// interpolateAtZero evaluates the unique polynomial through the points
// (xs[i], ys[i]) at x = 0 using Lagrange basis values
// l_i = prod_{j != i} x_j / (x_j - x_i).
func interpolateAtZero(xs, ys []Element, prime *big.Int) (Element, error) {
	result := NewElement(big.NewInt(0), prime)

	for i := range xs {
		basis := NewElement(big.NewInt(1), prime)

		for j := range xs {
			if i == j {
				continue
			}

			term, err := xs[j].Div(xs[j].Sub(xs[i]))
			if err != nil {
				return Element{}, err
			}

			basis = basis.Mul(term)
		}

		result = result.Add(ys[i].Mul(basis))
	}

	return result, nil
}
