// Package amac implements MAC_GGM, the algebraic MAC secret-key primitive
// this credential scheme authenticates attribute vectors with. A tag is a
// pair of group elements; it supports rerandomization and admits the NIZK
// statements in the nizk package proving knowledge of a valid tag without
// revealing it.
package amac

import (
	"crypto/subtle"
	"errors"

	"anoncred/group"
)

// Error taxonomy for this package.
var (
	// ErrMessageLength is returned when the attribute vector passed to MAC
	// or Verify does not match the key's configured attribute count.
	ErrMessageLength = errors.New("amac: message length does not match key")
	// ErrDegenerateNonce is returned when a tag's nonce point P equals the
	// base point G, which verify must reject before touching Q.
	ErrDegenerateNonce = errors.New("amac: degenerate tag nonce")
	// ErrAuthentication is returned when a tag fails verification under the
	// given key and message.
	ErrAuthentication = errors.New("amac: tag authentication failed")
)

// SecretKey is (x0, x1, ..., xn), the issuer's MAC_GGM key. Every component
// is held in a zeroizing group.SecretScalar.
type SecretKey struct {
	x0 *group.SecretScalar
	xi []*group.SecretScalar
}

// PublicKey (a.k.a. IssuerParameters) is (X1, ..., Xn) with Xi = xi*H. x0
// has no public image; the issuer proves knowledge of it via NIZK instead.
type PublicKey struct {
	X []group.Point
}

// Tag is a MAC_GGM tag (P, Q).
type Tag struct {
	P group.Point
	Q group.Point
}

// KeyGen samples a fresh secret key for n attributes.
func KeyGen(n int) (*SecretKey, error) {
	if n < 1 {
		return nil, ErrMessageLength
	}
	sk := &SecretKey{
		x0: group.NewSecretScalar(group.RandomScalar()),
		xi: make([]*group.SecretScalar, n),
	}
	for i := range sk.xi {
		sk.xi[i] = group.NewSecretScalar(group.RandomScalar())
	}
	return sk, nil
}

// NewSecretKey reconstructs a key from its raw scalar components, for
// loading a key that was serialized by the wire package.
func NewSecretKey(x0 group.Scalar, xi []group.Scalar) *SecretKey {
	sk := &SecretKey{
		x0: group.NewSecretScalar(x0),
		xi: make([]*group.SecretScalar, len(xi)),
	}
	for i, x := range xi {
		sk.xi[i] = group.NewSecretScalar(x)
	}
	return sk
}

// N returns the configured attribute count.
func (sk *SecretKey) N() int { return len(sk.xi) }

// X0 returns the secret x0 component, for use by the issuance_revealed and
// issuance_blinded NIZK statements which must prove knowledge of it.
func (sk *SecretKey) X0() group.Scalar { return sk.x0.Scalar() }

// Xi returns the secret x_i component (1-indexed in the spec, 0-indexed
// here) for use by the NIZK statements.
func (sk *SecretKey) Xi(i int) group.Scalar { return sk.xi[i].Scalar() }

// Zeroize clears every scalar in the key.
func (sk *SecretKey) Zeroize() {
	sk.x0.Zeroize()
	for _, x := range sk.xi {
		x.Zeroize()
	}
}

// IssuerParameters computes (X1, ..., Xn) with Xi = xi*H.
func (sk *SecretKey) IssuerParameters(h group.Point) *PublicKey {
	pk := &PublicKey{X: make([]group.Point, len(sk.xi))}
	for i, x := range sk.xi {
		pk.X[i] = h.Mul(x.Scalar())
	}
	return pk
}

// MAC tags the attribute vector m, sampling a fresh nonce scalar u and
// computing P = u*G, Q = (x0 + sum xi*mi)*P.
func (sk *SecretKey) MAC(m []group.Scalar) (*Tag, error) {
	if len(m) != len(sk.xi) {
		return nil, ErrMessageLength
	}
	u := group.NewSecretScalar(group.RandomScalar())
	defer u.Zeroize()

	p := group.BaseMul(u.Scalar())
	k := sk.x0.Scalar()
	for i, mi := range m {
		k = k.Add(sk.xi[i].Scalar().Mul(mi))
	}
	return &Tag{P: p, Q: p.Mul(k)}, nil
}

// Verify recomputes Q' = (x0 + sum xi*mi)*P and compares it against t.Q in
// constant time. It rejects a degenerate nonce (P == G) before doing any
// further work.
func (sk *SecretKey) Verify(m []group.Scalar, t *Tag) error {
	if len(m) != len(sk.xi) {
		return ErrMessageLength
	}
	if t.P.Equal(group.BasePoint()) {
		return ErrDegenerateNonce
	}
	k := sk.x0.Scalar()
	for i, mi := range m {
		k = k.Add(sk.xi[i].Scalar().Mul(mi))
	}
	want := t.P.Mul(k)
	if subtle.ConstantTimeCompare(want.Encode(), t.Q.Encode()) != 1 {
		return ErrAuthentication
	}
	return nil
}

// Rerandomize returns (r*P, r*Q) for a fresh nonzero scalar r, preserving
// the relation Q = k*P and making the returned tag indistinguishable from a
// freshly issued one to anyone without sk. This function neither retains
// nor zeroizes r.
func (t *Tag) Rerandomize(r group.Scalar) *Tag {
	return &Tag{P: t.P.Mul(r), Q: t.Q.Mul(r)}
}
