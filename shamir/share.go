package shamir

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Share is a single point (X, Y) on the secret-encoding polynomial.
type Share struct {
	// X is the x-coordinate, never zero for generated shares.
	X *big.Int
	// Y is the polynomial evaluated at X.
	Y *big.Int
}

// shareHeader is the binary format header.
const (
	shareVersion    = 1
	shareHeaderSize = 1 + 4 + 4 // version + xLen + yLen
)

// String returns the share in its text form "x y" with decimal coordinates.
func (s *Share) String() string {
	return s.X.String() + " " + s.Y.String()
}

// MarshalText implements encoding.TextMarshaler using the "x y" form.
func (s *Share) MarshalText() ([]byte, error) {
	if s.X == nil || s.Y == nil {
		return nil, ErrInvalidShareFormat
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Share) UnmarshalText(text []byte) error {
	parsed, err := ParseShare(string(text))
	if err != nil {
		return err
	}

	*s = *parsed
	return nil
}

// ParseShare parses the text form "x y". Surrounding whitespace is ignored
// and the coordinates may be separated by any run of spaces or tabs.
func ParseShare(str string) (*Share, error) {
	fields := strings.Fields(str)
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: want 2 fields, got %d", ErrInvalidShareFormat, len(fields))
	}

	x, ok := new(big.Int).SetString(fields[0], 10)
	if !ok || x.Sign() < 0 {
		return nil, fmt.Errorf("%w: bad x coordinate %q", ErrInvalidShareFormat, fields[0])
	}

	y, ok := new(big.Int).SetString(fields[1], 10)
	if !ok || y.Sign() < 0 {
		return nil, fmt.Errorf("%w: bad y coordinate %q", ErrInvalidShareFormat, fields[1])
	}

	return &Share{X: x, Y: y}, nil
}

// Bytes serializes the share to a binary format.
// Format: version(1) | xLen(4) | yLen(4) | x | y
func (s *Share) Bytes() []byte {
	xBytes := s.X.Bytes()
	yBytes := s.Y.Bytes()

	buf := make([]byte, shareHeaderSize+len(xBytes)+len(yBytes))

	buf[0] = shareVersion
	binary.BigEndian.PutUint32(buf[1:5], uint32(len(xBytes)))
	binary.BigEndian.PutUint32(buf[5:9], uint32(len(yBytes)))

	copy(buf[shareHeaderSize:], xBytes)
	copy(buf[shareHeaderSize+len(xBytes):], yBytes)

	return buf
}

// Base64 returns the binary form encoded with standard base64.
func (s *Share) Base64() string {
	return base64.StdEncoding.EncodeToString(s.Bytes())
}

// ParseShareBytes deserializes a share from binary format.
func ParseShareBytes(data []byte) (*Share, error) {
	if len(data) < shareHeaderSize {
		return nil, ErrInvalidShareFormat
	}

	if data[0] != shareVersion {
		return nil, ErrUnsupportedVersion
	}

	xLen := uint64(binary.BigEndian.Uint32(data[1:5]))
	yLen := uint64(binary.BigEndian.Uint32(data[5:9]))

	if uint64(len(data)) != shareHeaderSize+xLen+yLen {
		return nil, ErrInvalidShareFormat
	}

	x := new(big.Int).SetBytes(data[shareHeaderSize : shareHeaderSize+xLen])
	y := new(big.Int).SetBytes(data[shareHeaderSize+xLen:])

	return &Share{X: x, Y: y}, nil
}

// ParseShareBase64 deserializes a share from its base64 binary form.
func ParseShareBase64(str string) (*Share, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(str))
	if err != nil {
		return nil, errors.Join(ErrInvalidShareFormat, err)
	}
	return ParseShareBytes(data)
}

// Clone creates a deep copy of the share.
func (s *Share) Clone() *Share {
	return &Share{
		X: new(big.Int).Set(s.X),
		Y: new(big.Int).Set(s.Y),
	}
}

// Equal checks if two shares are equal.
func (s *Share) Equal(other *Share) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.X.Cmp(other.X) == 0 && s.Y.Cmp(other.Y) == 0
}
