package nizk

import (
	"anoncred/group"
	"anoncred/transcript"
)

// CommittedValuesEqualPublics are the public inputs to the
// committed_values_equal statement (roster_membership): a user proves that
// its presentation's attribute commitment and a roster entry's commitment
// hide the same value, under different bases.
type CommittedValuesEqualPublics struct {
	A, B group.Point // bases H, G
	P    group.Point // rerandomized tag nonce P'
	Cm0  group.Point // Cm0 = m0*P' + z0*A, from the presentation
	Cm1  group.Point // Cm1 = m0*A + z1*B, from the roster entry
}

// CommittedValuesEqualSecrets are the user's witnesses.
type CommittedValuesEqualSecrets struct {
	M0 group.Scalar
	Z0 group.Scalar
	Z1 group.Scalar
}

// CommittedValuesEqualProof is the non-interactive proof.
type CommittedValuesEqualProof struct {
	Challenge group.Scalar
	SM0       group.Scalar
	SZ0       group.Scalar
	SZ1       group.Scalar
}

func committedValuesEqualTranscript(pub CommittedValuesEqualPublics) *transcript.Transcript {
	t := transcript.New("committed_values_equal")
	t.Append("A", pub.A.Encode())
	t.Append("B", pub.B.Encode())
	t.Append("P", pub.P.Encode())
	t.Append("Cm0", pub.Cm0.Encode())
	t.Append("Cm1", pub.Cm1.Encode())
	return t
}

// ProveCommittedValuesEqual produces a committed_values_equal proof.
func ProveCommittedValuesEqual(pub CommittedValuesEqualPublics, sec CommittedValuesEqualSecrets) (*CommittedValuesEqualProof, error) {
	t := committedValuesEqualTranscript(pub)

	rng := t.Fork("committed_values_equal/witnesses", [][]byte{
		sec.M0.Encode(), sec.Z0.Encode(), sec.Z1.Encode(),
	})
	rm0, err := group.ScalarFromReader(rng)
	if err != nil {
		return nil, err
	}
	rz0, err := group.ScalarFromReader(rng)
	if err != nil {
		return nil, err
	}
	rz1, err := group.ScalarFromReader(rng)
	if err != nil {
		return nil, err
	}

	tCm0 := group.MultiScalarMul([]group.Scalar{rm0, rz0}, []group.Point{pub.P, pub.A})
	tCm1 := group.MultiScalarMul([]group.Scalar{rm0, rz1}, []group.Point{pub.A, pub.B})

	t.Append("TCm0", tCm0.Encode())
	t.Append("TCm1", tCm1.Encode())

	c := challengeScalar(t, "committed_values_equal/challenge")

	return &CommittedValuesEqualProof{
		Challenge: c,
		SM0:       respond(rm0, c, sec.M0),
		SZ0:       respond(rz0, c, sec.Z0),
		SZ1:       respond(rz1, c, sec.Z1),
	}, nil
}

// VerifyCommittedValuesEqual verifies a committed_values_equal proof, using
// only variable-time group operations.
func VerifyCommittedValuesEqual(pub CommittedValuesEqualPublics, proof *CommittedValuesEqualProof) error {
	t := committedValuesEqualTranscript(pub)
	c := proof.Challenge

	tCm0 := group.MultiScalarMulVartime(
		[]group.Scalar{proof.SM0, proof.SZ0, c.Neg()},
		[]group.Point{pub.P, pub.A, pub.Cm0},
	)
	tCm1 := group.MultiScalarMulVartime(
		[]group.Scalar{proof.SM0, proof.SZ1, c.Neg()},
		[]group.Point{pub.A, pub.B, pub.Cm1},
	)

	t.Append("TCm0", tCm0.Encode())
	t.Append("TCm1", tCm1.Encode())

	c2 := challengeScalar(t, "committed_values_equal/challenge")
	if !c2.Equal(c) {
		return ErrVerificationFailure
	}
	return nil
}
