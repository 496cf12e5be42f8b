package nizk

import (
	"anoncred/group"
	"anoncred/transcript"
)

// ValidCredentialPublics are the public inputs to the valid_credential
// statement. This is a keyed-verification proof: the verifier is the
// issuer, and it plugs its own secret key (X0Secret, XiSecret) into
// VerifyValidCredential to recompute the "error point" the spec calls V,
// rather than receiving V over the wire. The presentation only carries P',
// the attribute commitments Cm, and the MAC commitment CQ.
type ValidCredentialPublics struct {
	A        group.Point // base H
	P        group.Point // rerandomized tag nonce P'
	X        []group.Point
	Cm       []group.Point // Pedersen commitments to the attributes, under (P', A)
	CQ       group.Point   // commitment to the rerandomized tag's Q', under (identity, A): CQ = Q' + zQ*A
	X0Secret group.Scalar  // issuer's secret x0 (verifier-only input)
	XiSecret []group.Scalar
}

// ValidCredentialSecrets are the user's witnesses: the (possibly hidden)
// attribute values, their Pedersen openings, and the MAC-commitment
// opening.
type ValidCredentialSecrets struct {
	M  []group.Scalar
	Z  []group.Scalar
	ZQ group.Scalar
}

// ValidCredentialProof is the non-interactive proof.
type ValidCredentialProof struct {
	Challenge group.Scalar
	SM        []group.Scalar
	SZ        []group.Scalar
	SZQ       group.Scalar
}

func validCredentialTranscript(pub ValidCredentialPublics) *transcript.Transcript {
	t := transcript.New("valid_credential")
	t.Append("A", pub.A.Encode())
	t.Append("P", pub.P.Encode())
	for i, x := range pub.X {
		t.Append("X", append([]byte{byte(i)}, x.Encode()...))
	}
	for i, cm := range pub.Cm {
		t.Append("Cm", append([]byte{byte(i)}, cm.Encode()...))
	}
	t.Append("CQ", pub.CQ.Encode())
	return t
}

// errorPoint computes V = x0*P' + sum(xi*Cmi) - CQ, the value that a valid
// credential's witnesses satisfy V = sum(zi*Xi) - zQ*A. It is entirely a
// function of the verifier's own secret key and the publicly received
// presentation fields.
func errorPoint(pub ValidCredentialPublics) group.Point {
	scalars := make([]group.Scalar, 0, len(pub.Cm)+1)
	points := make([]group.Point, 0, len(pub.Cm)+1)
	scalars = append(scalars, pub.X0Secret)
	points = append(points, pub.P)
	for i := range pub.Cm {
		scalars = append(scalars, pub.XiSecret[i])
		points = append(points, pub.Cm[i])
	}
	vPositive := group.MultiScalarMulVartime(scalars, points)
	return vPositive.Sub(pub.CQ)
}

// ProveValidCredential produces a valid_credential proof.
func ProveValidCredential(pub ValidCredentialPublics, sec ValidCredentialSecrets) (*ValidCredentialProof, error) {
	t := validCredentialTranscript(pub)

	witnessBytes := make([][]byte, 0, 2*len(sec.M)+1)
	for _, m := range sec.M {
		witnessBytes = append(witnessBytes, m.Encode())
	}
	for _, z := range sec.Z {
		witnessBytes = append(witnessBytes, z.Encode())
	}
	witnessBytes = append(witnessBytes, sec.ZQ.Encode())
	rng := t.Fork("valid_credential/witnesses", witnessBytes)

	rM := make([]group.Scalar, len(sec.M))
	rZ := make([]group.Scalar, len(sec.Z))
	var err error
	for i := range rM {
		rM[i], err = group.ScalarFromReader(rng)
		if err != nil {
			return nil, err
		}
	}
	for i := range rZ {
		rZ[i], err = group.ScalarFromReader(rng)
		if err != nil {
			return nil, err
		}
	}
	rZQ, err := group.ScalarFromReader(rng)
	if err != nil {
		return nil, err
	}

	tCm := make([]group.Point, len(sec.M))
	for i := range tCm {
		tCm[i] = group.MultiScalarMul([]group.Scalar{rM[i], rZ[i]}, []group.Point{pub.P, pub.A})
	}

	// TV = sum(rZi*Xi) - rZQ*A
	vScalars := make([]group.Scalar, 0, len(rZ)+1)
	vPoints := make([]group.Point, 0, len(rZ)+1)
	for i := range rZ {
		vScalars = append(vScalars, rZ[i])
		vPoints = append(vPoints, pub.X[i])
	}
	vScalars = append(vScalars, rZQ.Neg())
	vPoints = append(vPoints, pub.A)
	tV := group.MultiScalarMul(vScalars, vPoints)

	for i, tc := range tCm {
		t.Append("TCm", append([]byte{byte(i)}, tc.Encode()...))
	}
	t.Append("TV", tV.Encode())

	c := challengeScalar(t, "valid_credential/challenge")

	proof := &ValidCredentialProof{
		Challenge: c,
		SM:        make([]group.Scalar, len(sec.M)),
		SZ:        make([]group.Scalar, len(sec.Z)),
		SZQ:       respond(rZQ, c, sec.ZQ),
	}
	for i := range sec.M {
		proof.SM[i] = respond(rM[i], c, sec.M[i])
		proof.SZ[i] = respond(rZ[i], c, sec.Z[i])
	}
	return proof, nil
}

// VerifyValidCredential verifies a valid_credential proof. The verifier
// supplies its own secret key components in pub.X0Secret / pub.XiSecret to
// recompute the error point; this is the keyed-verification step that only
// the issuer can perform. All group operations here are variable-time.
func VerifyValidCredential(pub ValidCredentialPublics, proof *ValidCredentialProof) error {
	if len(proof.SM) != len(pub.Cm) || len(proof.SZ) != len(pub.Cm) || len(pub.XiSecret) != len(pub.Cm) || len(pub.X) != len(pub.Cm) {
		return ErrVerificationFailure
	}

	t := validCredentialTranscript(pub)
	c := proof.Challenge

	tCm := make([]group.Point, len(pub.Cm))
	for i := range tCm {
		tCm[i] = group.MultiScalarMulVartime(
			[]group.Scalar{proof.SM[i], proof.SZ[i], c.Neg()},
			[]group.Point{pub.P, pub.A, pub.Cm[i]},
		)
	}

	v := errorPoint(pub)
	vScalars := make([]group.Scalar, 0, len(proof.SZ)+2)
	vPoints := make([]group.Point, 0, len(proof.SZ)+2)
	for i := range proof.SZ {
		vScalars = append(vScalars, proof.SZ[i])
		vPoints = append(vPoints, pub.X[i])
	}
	vScalars = append(vScalars, proof.SZQ.Neg(), c.Neg())
	vPoints = append(vPoints, pub.A, v)
	tV := group.MultiScalarMulVartime(vScalars, vPoints)

	for i, tc := range tCm {
		t.Append("TCm", append([]byte{byte(i)}, tc.Encode()...))
	}
	t.Append("TV", tV.Encode())

	c2 := challengeScalar(t, "valid_credential/challenge")
	if !c2.Equal(c) {
		return ErrVerificationFailure
	}
	return nil
}
