package nizk

import (
	"anoncred/group"
	"anoncred/transcript"
)

// AttributesBlindedPublics are the public inputs to the attributes_blinded
// statement: a user proves its ElGamal public key is well-formed and that a
// ciphertext encrypts its first attribute under that key, as a precursor to
// blind issuance (BlindObtain).
//
// The spec's witness tuple names a fourth value "nonce" alongside (d, e0,
// m0); in this implementation that nonce is the ElGamal ephemeral scalar
// e0 itself (see DESIGN.md) rather than an independent witness.
type AttributesBlindedPublics struct {
	B      group.Point // base G
	D      group.Point // user's ElGamal public key
	C1, C2 group.Point // ciphertext encrypting m0*B under D
}

// AttributesBlindedSecrets are the user's witnesses.
type AttributesBlindedSecrets struct {
	D  group.Scalar // ElGamal secret key
	E0 group.Scalar // ElGamal ephemeral scalar
	M0 group.Scalar // the encrypted attribute
}

// AttributesBlindedProof is the non-interactive proof.
type AttributesBlindedProof struct {
	Challenge group.Scalar
	SD        group.Scalar
	SE0       group.Scalar
	SM0       group.Scalar
}

func attributesBlindedTranscript(pub AttributesBlindedPublics) *transcript.Transcript {
	t := transcript.New("attributes_blinded")
	t.Append("B", pub.B.Encode())
	t.Append("D", pub.D.Encode())
	t.Append("C1", pub.C1.Encode())
	t.Append("C2", pub.C2.Encode())
	return t
}

// ProveAttributesBlinded produces an attributes_blinded proof.
func ProveAttributesBlinded(pub AttributesBlindedPublics, sec AttributesBlindedSecrets) (*AttributesBlindedProof, error) {
	t := attributesBlindedTranscript(pub)

	rng := t.Fork("attributes_blinded/witnesses", [][]byte{
		sec.D.Encode(), sec.E0.Encode(), sec.M0.Encode(),
	})
	rd, err := group.ScalarFromReader(rng)
	if err != nil {
		return nil, err
	}
	re0, err := group.ScalarFromReader(rng)
	if err != nil {
		return nil, err
	}
	rm0, err := group.ScalarFromReader(rng)
	if err != nil {
		return nil, err
	}

	td := pub.B.Mul(rd)
	tc1 := pub.B.Mul(re0)
	tc2 := group.MultiScalarMul([]group.Scalar{rm0, re0}, []group.Point{pub.B, pub.D})

	t.Append("TD", td.Encode())
	t.Append("TC1", tc1.Encode())
	t.Append("TC2", tc2.Encode())

	c := challengeScalar(t, "attributes_blinded/challenge")

	return &AttributesBlindedProof{
		Challenge: c,
		SD:        respond(rd, c, sec.D),
		SE0:       respond(re0, c, sec.E0),
		SM0:       respond(rm0, c, sec.M0),
	}, nil
}

// VerifyAttributesBlinded verifies an attributes_blinded proof, using only
// variable-time group operations.
func VerifyAttributesBlinded(pub AttributesBlindedPublics, proof *AttributesBlindedProof) error {
	t := attributesBlindedTranscript(pub)
	c := proof.Challenge

	td := recompute(proof.SD, pub.B, c, pub.D)
	tc1 := recompute(proof.SE0, pub.B, c, pub.C1)
	tc2 := group.MultiScalarMulVartime(
		[]group.Scalar{proof.SM0, proof.SE0, c.Neg()},
		[]group.Point{pub.B, pub.D, pub.C2},
	)

	t.Append("TD", td.Encode())
	t.Append("TC1", tc1.Encode())
	t.Append("TC2", tc2.Encode())

	c2 := challengeScalar(t, "attributes_blinded/challenge")
	if !c2.Equal(c) {
		return ErrVerificationFailure
	}
	return nil
}
