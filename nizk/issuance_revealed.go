package nizk

import (
	"anoncred/group"
	"anoncred/transcript"
)

// IssuanceRevealedPublics are the public inputs to the issuance_revealed
// statement: the issuer proves, to a user who has revealed its attributes,
// that the returned tag and secret-key commitment are consistent with the
// published issuer parameters.
type IssuanceRevealedPublics struct {
	A, B     group.Point   // system bases H, G
	P, Q     group.Point   // the issued tag
	Cx0      group.Point   // commitment to x0
	X        []group.Point // issuer parameters X1..Xn
	Revealed []group.Scalar
}

// IssuanceRevealedSecrets are the issuer's witnesses.
type IssuanceRevealedSecrets struct {
	X0      group.Scalar
	Xi      []group.Scalar
	XTilde0 group.Scalar
}

// IssuanceRevealedProof is the non-interactive proof.
type IssuanceRevealedProof struct {
	Challenge group.Scalar
	SX0       group.Scalar
	SXi       []group.Scalar
	SXTilde0  group.Scalar
}

func issuanceRevealedTranscript(pub IssuanceRevealedPublics) *transcript.Transcript {
	t := transcript.New("issuance_revealed")
	t.Append("A", pub.A.Encode())
	t.Append("B", pub.B.Encode())
	t.Append("P", pub.P.Encode())
	t.Append("Q", pub.Q.Encode())
	t.Append("Cx0", pub.Cx0.Encode())
	for i, x := range pub.X {
		t.Append("X", append([]byte{byte(i)}, x.Encode()...))
	}
	for i, m := range pub.Revealed {
		t.Append("m", append([]byte{byte(i)}, m.Encode()...))
	}
	return t
}

// ProveIssuanceRevealed produces an issuance_revealed proof.
func ProveIssuanceRevealed(pub IssuanceRevealedPublics, sec IssuanceRevealedSecrets) (*IssuanceRevealedProof, error) {
	t := issuanceRevealedTranscript(pub)

	witnessBytes := [][]byte{sec.X0.Encode(), sec.XTilde0.Encode()}
	for _, x := range sec.Xi {
		witnessBytes = append(witnessBytes, x.Encode())
	}
	rng := t.Fork("issuance_revealed/witnesses", witnessBytes)

	rX0, err := group.ScalarFromReader(rng)
	if err != nil {
		return nil, err
	}
	rXTilde0, err := group.ScalarFromReader(rng)
	if err != nil {
		return nil, err
	}
	rXi := make([]group.Scalar, len(sec.Xi))
	for i := range rXi {
		rXi[i], err = group.ScalarFromReader(rng)
		if err != nil {
			return nil, err
		}
	}

	// TQ = (rX0 + sum mi*rXi) * P
	k := rX0
	for i, m := range pub.Revealed {
		k = k.Add(m.Mul(rXi[i]))
	}
	tq := pub.P.Mul(k)

	// TCx0 = rX0*B + rXTilde0*A
	tcx0 := group.MultiScalarMul([]group.Scalar{rX0, rXTilde0}, []group.Point{pub.B, pub.A})

	txi := make([]group.Point, len(sec.Xi))
	for i := range txi {
		txi[i] = pub.A.Mul(rXi[i])
	}

	t.Append("TQ", tq.Encode())
	t.Append("TCx0", tcx0.Encode())
	for i, tx := range txi {
		t.Append("TXi", append([]byte{byte(i)}, tx.Encode()...))
	}

	c := challengeScalar(t, "issuance_revealed/challenge")

	proof := &IssuanceRevealedProof{
		Challenge: c,
		SX0:       respond(rX0, c, sec.X0),
		SXTilde0:  respond(rXTilde0, c, sec.XTilde0),
		SXi:       make([]group.Scalar, len(sec.Xi)),
	}
	for i := range sec.Xi {
		proof.SXi[i] = respond(rXi[i], c, sec.Xi[i])
	}
	return proof, nil
}

// VerifyIssuanceRevealed verifies an issuance_revealed proof. It uses only
// variable-time group operations: the statement's publics contain no
// secret.
func VerifyIssuanceRevealed(pub IssuanceRevealedPublics, proof *IssuanceRevealedProof) error {
	if len(proof.SXi) != len(pub.X) || len(pub.X) != len(pub.Revealed) {
		return ErrVerificationFailure
	}

	t := issuanceRevealedTranscript(pub)
	c := proof.Challenge

	// TQ' = (sX0 + sum mi*sXi)*P - c*Q
	k := proof.SX0
	for i, m := range pub.Revealed {
		k = k.Add(m.Mul(proof.SXi[i]))
	}
	tq := group.MultiScalarMulVartime(
		[]group.Scalar{k, c.Neg()},
		[]group.Point{pub.P, pub.Q},
	)

	tcx0 := group.MultiScalarMulVartime(
		[]group.Scalar{proof.SX0, proof.SXTilde0, c.Neg()},
		[]group.Point{pub.B, pub.A, pub.Cx0},
	)

	txi := make([]group.Point, len(pub.X))
	for i := range txi {
		txi[i] = recompute(proof.SXi[i], pub.A, c, pub.X[i])
	}

	t.Append("TQ", tq.Encode())
	t.Append("TCx0", tcx0.Encode())
	for i, tx := range txi {
		t.Append("TXi", append([]byte{byte(i)}, tx.Encode()...))
	}

	c2 := challengeScalar(t, "issuance_revealed/challenge")
	if !c2.Equal(c) {
		return ErrVerificationFailure
	}
	return nil
}
