// Package commit implements Pedersen commitments and Ristretto-based
// ElGamal encryption, the two additively-homomorphic primitives the
// credential package builds on.
package commit

import "anoncred/group"

// Bases names the two generators a Pedersen commitment is taken over. The
// type enforces nothing about hiding or binding: the caller must keep the
// opening (m, z) secret.
type Bases struct {
	P group.Point
	Q group.Point
}

// Pedersen is a commitment C = m*P + z*Q.
type Pedersen struct {
	C group.Point
}

// Commit computes C = m*bases.P + z*bases.Q.
func Commit(m, z group.Scalar, bases Bases) Pedersen {
	return Pedersen{C: group.MultiScalarMul(
		[]group.Scalar{m, z},
		[]group.Point{bases.P, bases.Q},
	)}
}

// Open reports whether C == m*bases.P + z*bases.Q, i.e. whether (m, z) is a
// valid opening of the commitment under bases. Verifier-side only; uses the
// variable-time multiscalar multiplication.
func (c Pedersen) Open(m, z group.Scalar, bases Bases) bool {
	want := group.MultiScalarMulVartime(
		[]group.Scalar{m, z},
		[]group.Point{bases.P, bases.Q},
	)
	return c.C.Equal(want)
}

// Add returns the commitment to the sum of the two committed messages under
// the same bases, exploiting Pedersen's additive homomorphism.
func (c Pedersen) Add(d Pedersen) Pedersen {
	return Pedersen{C: c.C.Add(d.C)}
}

// ElGamal is a Ristretto ElGamal keypair: secret d, public D = d*B.
type ElGamal struct {
	D       group.Point
	secret  *group.SecretScalar
	hasPriv bool
}

// GenerateElGamal samples a fresh ElGamal keypair over base B.
func GenerateElGamal(b group.Point) ElGamal {
	d := group.RandomScalar()
	return ElGamal{
		D:       b.Mul(d),
		secret:  group.NewSecretScalar(d),
		hasPriv: true,
	}
}

// PublicElGamal wraps a public key with no secret material, for a verifier
// or an issuer that only needs to encrypt to the key.
func PublicElGamal(d group.Point) ElGamal {
	return ElGamal{D: d}
}

// Zeroize clears the secret key, if any.
func (e *ElGamal) Zeroize() {
	if e.hasPriv {
		e.secret.Zeroize()
	}
}

// Secret returns the keypair's secret scalar and true, or a zero value and
// false if e holds only a public key.
func (e ElGamal) Secret() (group.Scalar, bool) {
	if !e.hasPriv {
		return group.Scalar{}, false
	}
	return e.secret.Scalar(), true
}

// Ciphertext is a Ristretto ElGamal ciphertext (C1, C2) = (e*B, m*B + e*D).
type Ciphertext struct {
	C1 group.Point
	C2 group.Point
}

// Encrypt encrypts msgPoint (typically m*B for an attribute scalar m) under
// public key pk, using fresh ephemeral scalar e and base B.
func Encrypt(msgPoint group.Point, e group.Scalar, b, pk group.Point) Ciphertext {
	return Ciphertext{
		C1: b.Mul(e),
		C2: msgPoint.Add(pk.Mul(e)),
	}
}

// Add homomorphically adds two ciphertexts component-wise.
func (c Ciphertext) Add(d Ciphertext) Ciphertext {
	return Ciphertext{C1: c.C1.Add(d.C1), C2: c.C2.Add(d.C2)}
}

// Decrypt recovers m*B = C2 - d*C1 given the ElGamal secret key.
func (e ElGamal) Decrypt(c Ciphertext) group.Point {
	return c.C2.Sub(c.C1.Mul(e.secret.Scalar()))
}
