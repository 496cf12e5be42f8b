package nizk

import (
	"anoncred/group"
	"anoncred/transcript"
)

// IssuanceBlindedPublics are the public inputs to the issuance_blinded
// statement: the issuer proves that a blinded tag nonce P, its auxiliary
// commitments, and a homomorphic combination of the user's ElGamal
// ciphertext are all consistent with the issuer's secret key, without the
// issuer ever seeing the user's attribute m0 in the clear. Used by
// Issuer.BlindIssue.
type IssuanceBlindedPublics struct {
	A, B        group.Point
	X0          group.Point // commitment to x0 (same shape as Cx0 in issuance_revealed)
	X1          group.Point // issuer parameter for the blinded attribute
	D           group.Point // user's ElGamal public key
	C1m0, C2m0  group.Point // user's ElGamal ciphertext on m0
	P           group.Point // blinded tag nonce b*B
	T0_0, T0_1  group.Point
	EQCommit    group.Point
	EQEncrypt   group.Point
}

// IssuanceBlindedSecrets are the issuer's witnesses.
type IssuanceBlindedSecrets struct {
	XTilde0 group.Scalar
	X0      group.Scalar
	X1      group.Scalar
	S       group.Scalar
	B       group.Scalar
	T0      group.Scalar
}

// IssuanceBlindedProof is the non-interactive proof.
type IssuanceBlindedProof struct {
	Challenge group.Scalar
	SXTilde0  group.Scalar
	SX0       group.Scalar
	SX1       group.Scalar
	SS        group.Scalar
	SB        group.Scalar
	ST0       group.Scalar
}

func issuanceBlindedTranscript(pub IssuanceBlindedPublics) *transcript.Transcript {
	t := transcript.New("issuance_blinded")
	t.Append("A", pub.A.Encode())
	t.Append("B", pub.B.Encode())
	t.Append("X0", pub.X0.Encode())
	t.Append("X1", pub.X1.Encode())
	t.Append("D", pub.D.Encode())
	t.Append("C1m0", pub.C1m0.Encode())
	t.Append("C2m0", pub.C2m0.Encode())
	t.Append("P", pub.P.Encode())
	t.Append("T0_0", pub.T0_0.Encode())
	t.Append("T0_1", pub.T0_1.Encode())
	t.Append("EQCommit", pub.EQCommit.Encode())
	t.Append("EQEncrypt", pub.EQEncrypt.Encode())
	return t
}

// ProveIssuanceBlinded produces an issuance_blinded proof.
func ProveIssuanceBlinded(pub IssuanceBlindedPublics, sec IssuanceBlindedSecrets) (*IssuanceBlindedProof, error) {
	t := issuanceBlindedTranscript(pub)

	rng := t.Fork("issuance_blinded/witnesses", [][]byte{
		sec.XTilde0.Encode(), sec.X0.Encode(), sec.X1.Encode(),
		sec.S.Encode(), sec.B.Encode(), sec.T0.Encode(),
	})
	scalars := make([]group.Scalar, 6)
	for i := range scalars {
		var err error
		scalars[i], err = group.ScalarFromReader(rng)
		if err != nil {
			return nil, err
		}
	}
	rXTilde0, rX0, rX1, rS, rB, rT0 := scalars[0], scalars[1], scalars[2], scalars[3], scalars[4], scalars[5]

	tX0 := group.MultiScalarMul([]group.Scalar{rX0, rXTilde0}, []group.Point{pub.B, pub.A})
	tX1 := pub.A.Mul(rX1)
	tP := pub.B.Mul(rB)
	tT0_0 := pub.X0.Mul(rB)
	tT0_1 := pub.A.Mul(rT0)
	tEQCommit := group.MultiScalarMul([]group.Scalar{rS, rT0}, []group.Point{pub.B, pub.C1m0})
	tEQEncrypt := group.MultiScalarMul([]group.Scalar{rS, rT0}, []group.Point{pub.D, pub.C2m0})

	t.Append("tX0", tX0.Encode())
	t.Append("tX1", tX1.Encode())
	t.Append("tP", tP.Encode())
	t.Append("tT0_0", tT0_0.Encode())
	t.Append("tT0_1", tT0_1.Encode())
	t.Append("tEQCommit", tEQCommit.Encode())
	t.Append("tEQEncrypt", tEQEncrypt.Encode())

	c := challengeScalar(t, "issuance_blinded/challenge")

	return &IssuanceBlindedProof{
		Challenge: c,
		SXTilde0:  respond(rXTilde0, c, sec.XTilde0),
		SX0:       respond(rX0, c, sec.X0),
		SX1:       respond(rX1, c, sec.X1),
		SS:        respond(rS, c, sec.S),
		SB:        respond(rB, c, sec.B),
		ST0:       respond(rT0, c, sec.T0),
	}, nil
}

// VerifyIssuanceBlinded verifies an issuance_blinded proof, using only
// variable-time group operations.
func VerifyIssuanceBlinded(pub IssuanceBlindedPublics, proof *IssuanceBlindedProof) error {
	t := issuanceBlindedTranscript(pub)
	c := proof.Challenge

	tX0 := group.MultiScalarMulVartime(
		[]group.Scalar{proof.SX0, proof.SXTilde0, c.Neg()},
		[]group.Point{pub.B, pub.A, pub.X0},
	)
	tX1 := recompute(proof.SX1, pub.A, c, pub.X1)
	tP := recompute(proof.SB, pub.B, c, pub.P)
	tT0_0 := recompute(proof.SB, pub.X0, c, pub.T0_0)
	tT0_1 := recompute(proof.ST0, pub.A, c, pub.T0_1)
	tEQCommit := group.MultiScalarMulVartime(
		[]group.Scalar{proof.SS, proof.ST0, c.Neg()},
		[]group.Point{pub.B, pub.C1m0, pub.EQCommit},
	)
	tEQEncrypt := group.MultiScalarMulVartime(
		[]group.Scalar{proof.SS, proof.ST0, c.Neg()},
		[]group.Point{pub.D, pub.C2m0, pub.EQEncrypt},
	)

	t.Append("tX0", tX0.Encode())
	t.Append("tX1", tX1.Encode())
	t.Append("tP", tP.Encode())
	t.Append("tT0_0", tT0_0.Encode())
	t.Append("tT0_1", tT0_1.Encode())
	t.Append("tEQCommit", tEQCommit.Encode())
	t.Append("tEQEncrypt", tEQEncrypt.Encode())

	c2 := challengeScalar(t, "issuance_blinded/challenge")
	if !c2.Equal(c) {
		return ErrVerificationFailure
	}
	return nil
}
