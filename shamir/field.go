package shamir

import (
	"math/big"
)

var (
	// defaultPrime is 1597 * 34^2606 + 1.
	defaultPrime *big.Int

	// prime256 is the secp256k1 field prime: 2^256 - 2^32 - 977
	prime256 *big.Int
)

func init() {
	defaultPrime = new(big.Int).Exp(big.NewInt(34), big.NewInt(2606), nil)
	defaultPrime.Mul(defaultPrime, big.NewInt(1597))
	defaultPrime.Add(defaultPrime, big.NewInt(1))

	prime256 = new(big.Int)
	prime256.SetString("115792089237316195423570985008687907853269984665640564039457584007908834671663", 10)
}

// DefaultPrime returns a copy of the default prime (1597 * 34^2606 + 1, about 13300 bits).
func DefaultPrime() *big.Int {
	return new(big.Int).Set(defaultPrime)
}

// Prime256 returns a copy of the 256-bit secp256k1 field prime.
func Prime256() *big.Int {
	return new(big.Int).Set(prime256)
}

// Element is a residue modulo a prime. It is a value type: every operation
// returns a new Element and never modifies its operands.
//
// Operations on elements with different primes panic with ErrFieldMismatch.
// The zero Element is not usable; build elements with NewElement.
type Element struct {
	value *big.Int
	prime *big.Int
}

// NewElement returns value mod prime. Negative values wrap into the field.
// It panics if prime is nil or less than 2.
func NewElement(value, prime *big.Int) Element {
	if !validPrime(prime) {
		panic(ErrInvalidParameters)
	}

	p := new(big.Int).Set(prime)

	return Element{
		value: new(big.Int).Mod(value, p),
		prime: p,
	}
}

// NewElementInt64 is a shorthand for NewElement with small operands.
func NewElementInt64(value, prime int64) Element {
	return NewElement(big.NewInt(value), big.NewInt(prime))
}

func validPrime(p *big.Int) bool {
	return p != nil && p.Cmp(big.NewInt(2)) >= 0
}

// withValue builds an element in the same field, reducing v in place.
func (e Element) withValue(v *big.Int) Element {
	return Element{
		value: v.Mod(v, e.prime),
		prime: e.prime,
	}
}

// mustMatch also rejects zero Elements, which belong to no field.
func (e Element) mustMatch(other Element) {
	if e.prime == nil || other.prime == nil || e.prime.Cmp(other.prime) != 0 {
		panic(ErrFieldMismatch)
	}
}

// Int returns a copy of the element's value.
func (e Element) Int() *big.Int {
	return new(big.Int).Set(e.value)
}

// Prime returns a copy of the element's modulus.
func (e Element) Prime() *big.Int {
	return new(big.Int).Set(e.prime)
}

// IsZero reports whether the element is the additive identity.
func (e Element) IsZero() bool {
	return e.value.Sign() == 0
}

// Equal reports whether both elements have the same value and prime.
func (e Element) Equal(other Element) bool {
	return e.prime.Cmp(other.prime) == 0 && e.value.Cmp(other.value) == 0
}

func (e Element) String() string {
	return e.value.String()
}

// Add computes (e + other) mod p
func (e Element) Add(other Element) Element {
	e.mustMatch(other)
	return e.withValue(new(big.Int).Add(e.value, other.value))
}

// Sub computes (e - other) mod p
func (e Element) Sub(other Element) Element {
	e.mustMatch(other)
	return e.withValue(new(big.Int).Sub(e.value, other.value))
}

// Mul computes (e * other) mod p
func (e Element) Mul(other Element) Element {
	e.mustMatch(other)
	return e.withValue(new(big.Int).Mul(e.value, other.value))
}

// Neg computes (-e) mod p
func (e Element) Neg() Element {
	return e.withValue(new(big.Int).Neg(e.value))
}

// Pow computes e^k mod p. Pow(0) is 1 for every element, including zero.
func (e Element) Pow(k uint64) Element {
	exp := new(big.Int).SetUint64(k)
	return e.withValue(new(big.Int).Exp(e.value, exp, e.prime))
}

// Inverse computes e^-1 mod p with the extended Euclidean algorithm.
// It returns ErrNotInvertible when gcd(p, e) != 1, which happens for the
// zero element or when the modulus is not prime.
func (e Element) Inverse() (Element, error) {
	t, newT := big.NewInt(0), big.NewInt(1)
	r, newR := new(big.Int).Set(e.prime), new(big.Int).Set(e.value)

	quotient := new(big.Int)
	tmp := new(big.Int)

	for newR.Sign() != 0 {
		quotient.Quo(r, newR)

		tmp.Mul(quotient, newT)
		t, newT = newT, new(big.Int).Sub(t, tmp)

		tmp.Mul(quotient, newR)
		r, newR = newR, new(big.Int).Sub(r, tmp)
	}

	// r is now gcd(p, e)
	if r.Cmp(big.NewInt(1)) != 0 {
		return Element{}, ErrNotInvertible
	}

	if t.Sign() < 0 {
		t.Add(t, e.prime)
	}

	return e.withValue(t), nil
}

// Div computes e * other^-1 mod p.
func (e Element) Div(other Element) (Element, error) {
	e.mustMatch(other)

	inv, err := other.Inverse()
	if err != nil {
		return Element{}, err
	}

	return e.Mul(inv), nil
}
