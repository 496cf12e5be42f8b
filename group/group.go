// Package group is a thin facade over the Ristretto255 prime-order group. It
// hides github.com/gtank/ristretto255 behind Scalar and Point so the rest of
// the module never imports ristretto255 directly.
package group

import (
	"crypto/rand"
	"errors"
	"io"

	ristretto "github.com/gtank/ristretto255"
	"golang.org/x/crypto/sha3"
)

// ErrDecode is returned when a Scalar or Point byte string is not a
// canonical encoding of a group element.
var ErrDecode = errors.New("group: non-canonical encoding")

// ScalarSize and PointSize are the fixed wire widths of every Scalar and
// Point in this module.
const (
	ScalarSize = 32
	PointSize  = 32
)

// Scalar is an element of Z/lZ where l is the prime order of the group.
type Scalar struct {
	inner *ristretto.Scalar
}

func newScalar() Scalar {
	return Scalar{inner: new(ristretto.Scalar)}
}

// Zero returns the additive identity scalar.
func Zero() Scalar {
	s := newScalar()
	s.inner.Zero()
	return s
}

// RandomScalar samples a uniformly random scalar using crypto/rand, reduced
// from 64 bytes of wide entropy (never a raw 32-byte reduction).
func RandomScalar() Scalar {
	b := make([]byte, 64)
	if _, err := rand.Read(b); err != nil {
		panic("group: could not get entropy")
	}
	s := newScalar()
	s.inner.FromUniformBytes(b)
	return s
}

// ScalarFromReader samples a scalar from the given entropy source instead of
// crypto/rand, for use with a transcript-forked witness RNG.
func ScalarFromReader(r io.Reader) (Scalar, error) {
	b := make([]byte, 64)
	if _, err := io.ReadFull(r, b); err != nil {
		return Scalar{}, err
	}
	s := newScalar()
	s.inner.FromUniformBytes(b)
	return s, nil
}

// ScalarFromWideBytes reduces 64 bytes of uniform entropy into a scalar.
// Fiat-Shamir challenges must be derived this way, never by reducing 32 raw
// bytes.
func ScalarFromWideBytes(b [64]byte) Scalar {
	s := newScalar()
	s.inner.FromUniformBytes(b[:])
	return s
}

// ScalarFromHash hashes label||data with SHA3-512 and reduces the 64-byte
// digest into a scalar. Used to map caller-supplied identifiers (e.g. a
// phone number) into an attribute scalar.
func ScalarFromHash(label string, data []byte) Scalar {
	h := sha3.New512()
	h.Write([]byte(label))
	h.Write(data)
	var digest [64]byte
	copy(digest[:], h.Sum(nil))
	return ScalarFromWideBytes(digest)
}

// DecodeScalar decodes a canonical 32-byte little-endian scalar encoding,
// rejecting any encoding of a value >= the group order.
func DecodeScalar(b []byte) (Scalar, error) {
	if len(b) != ScalarSize {
		return Scalar{}, ErrDecode
	}
	s := newScalar()
	if err := s.inner.Decode(b); err != nil {
		return Scalar{}, ErrDecode
	}
	return s, nil
}

// Encode returns the canonical 32-byte little-endian encoding of s.
func (s Scalar) Encode() []byte {
	return s.inner.Encode(nil)
}

// IsZero reports whether s is the additive identity.
func (s Scalar) IsZero() bool {
	return s.Equal(Zero())
}

// Equal reports whether s and t represent the same scalar.
func (s Scalar) Equal(t Scalar) bool {
	return s.inner.Equal(t.inner) == 1
}

// Add returns s + t.
func (s Scalar) Add(t Scalar) Scalar {
	r := newScalar()
	r.inner.Add(s.inner, t.inner)
	return r
}

// Sub returns s - t.
func (s Scalar) Sub(t Scalar) Scalar {
	r := newScalar()
	r.inner.Subtract(s.inner, t.inner)
	return r
}

// Mul returns s * t.
func (s Scalar) Mul(t Scalar) Scalar {
	r := newScalar()
	r.inner.Multiply(s.inner, t.inner)
	return r
}

// Neg returns -s.
func (s Scalar) Neg() Scalar {
	r := newScalar()
	r.inner.Negate(s.inner)
	return r
}

// Invert returns s^-1. It does not check for zero, which has no inverse;
// callers must not invert untrusted or possibly-zero scalars.
func (s Scalar) Invert() Scalar {
	r := newScalar()
	r.inner.Invert(s.inner)
	return r
}

// Point is an element of the Ristretto255 group.
type Point struct {
	inner *ristretto.Element
}

func newPoint() Point {
	return Point{inner: new(ristretto.Element)}
}

// Identity returns the group identity element.
func Identity() Point {
	p := newPoint()
	p.inner.Zero()
	return p
}

// BasePoint returns the well-known Ristretto255 generator G.
func BasePoint() Point {
	p := newPoint()
	p.inner.ScalarBaseMult(new(ristretto.Scalar).One())
	return p
}

// HashToGroup derives a generator with unknown discrete log relative to G
// from a label and seed, by mapping the 64-byte SHA3-512 digest of
// label||seed onto the group with FromUniformBytes (the teacher's idiom).
func HashToGroup(label string, seed []byte) Point {
	h := sha3.New512()
	h.Write([]byte(label))
	h.Write(seed)
	digest := h.Sum(nil)
	p := newPoint()
	p.inner.FromUniformBytes(digest)
	return p
}

// DecodePoint decodes a canonical 32-byte compressed Ristretto255 encoding,
// rejecting non-canonical encodings and non-group-element byte strings.
func DecodePoint(b []byte) (Point, error) {
	if len(b) != PointSize {
		return Point{}, ErrDecode
	}
	p := newPoint()
	if err := p.inner.Decode(b); err != nil {
		return Point{}, ErrDecode
	}
	return p, nil
}

// Encode returns the canonical 32-byte compressed encoding of p.
func (p Point) Encode() []byte {
	return p.inner.Encode(nil)
}

// Equal reports whether p and q represent the same group element.
func (p Point) Equal(q Point) bool {
	return p.inner.Equal(q.inner) == 1
}

// IsIdentity reports whether p is the group identity.
func (p Point) IsIdentity() bool {
	return p.Equal(Identity())
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	r := newPoint()
	r.inner.Add(p.inner, q.inner)
	return r
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	r := newPoint()
	r.inner.Subtract(p.inner, q.inner)
	return r
}

// Mul returns s*p, in constant time.
func (p Point) Mul(s Scalar) Point {
	r := newPoint()
	r.inner.ScalarMult(s.inner, p.inner)
	return r
}

// BaseMul returns s*G, in constant time, using the fixed base point.
func BaseMul(s Scalar) Point {
	r := newPoint()
	r.inner.ScalarBaseMult(s.inner)
	return r
}

// MultiScalarMul returns sum(scalars[i]*points[i]) using a constant-time
// implementation. Use this variant whenever any of the scalars is a secret
// (prover paths).
func MultiScalarMul(scalars []Scalar, points []Point) Point {
	ss := make([]*ristretto.Scalar, len(scalars))
	ps := make([]*ristretto.Element, len(points))
	for i := range scalars {
		ss[i] = scalars[i].inner
		ps[i] = points[i].inner
	}
	r := newPoint()
	r.inner.MultiscalarMult(ss, ps)
	return r
}

// MultiScalarMulVartime returns sum(scalars[i]*points[i]) using a
// variable-time implementation. Verifiers must use this variant: every
// verifier in this module processes only public inputs, so there is no
// secret-dependent timing to protect.
func MultiScalarMulVartime(scalars []Scalar, points []Point) Point {
	ss := make([]*ristretto.Scalar, len(scalars))
	ps := make([]*ristretto.Element, len(points))
	for i := range scalars {
		ss[i] = scalars[i].inner
		ps[i] = points[i].inner
	}
	r := newPoint()
	r.inner.VarTimeMultiscalarMult(ss, ps)
	return r
}

// SecretScalar is a Scalar wrapper whose backing bytes are overwritten with
// zero by Zeroize; nothing clears it unless Zeroize is called. The amac
// SecretKey components are held in these; the nizk Secrets structs hold
// bare Scalars.
type SecretScalar struct {
	raw   [ScalarSize]byte
	value *ristretto.Scalar
}

// NewSecretScalar wraps s for zeroizing storage.
func NewSecretScalar(s Scalar) *SecretScalar {
	ss := &SecretScalar{value: new(ristretto.Scalar)}
	copy(ss.raw[:], s.Encode())
	ss.value.Decode(ss.raw[:])
	return ss
}

// Scalar returns the wrapped value for use in arithmetic.
func (ss *SecretScalar) Scalar() Scalar {
	return Scalar{inner: ss.value}
}

// Zeroize overwrites the backing bytes of ss with zero. Safe to call more
// than once and safe to call on every exit path via defer.
func (ss *SecretScalar) Zeroize() {
	for i := range ss.raw {
		ss.raw[i] = 0
	}
	if ss.value != nil {
		ss.value.Decode(ss.raw[:])
	}
}
