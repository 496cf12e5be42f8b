package nizk

import (
	"testing"

	"anoncred/commit"
	"anoncred/group"
)

func testSystem() (a, b group.Point) {
	return group.HashToGroup("nizk-test/A", []byte("seed")), group.BasePoint()
}

func TestIssuanceRevealedRoundtrip(t *testing.T) {
	a, b := testSystem()
	x0 := group.RandomScalar()
	x1 := group.RandomScalar()
	xTilde0 := group.RandomScalar()
	m1 := group.RandomScalar()

	u := group.RandomScalar()
	p := group.BaseMul(u)
	q := p.Mul(x0.Add(x1.Mul(m1)))
	cx0 := commit.Commit(x0, xTilde0, commit.Bases{P: b, Q: a}).C
	x1Point := a.Mul(x1)

	pub := IssuanceRevealedPublics{A: a, B: b, P: p, Q: q, Cx0: cx0, X: []group.Point{x1Point}, Revealed: []group.Scalar{m1}}
	sec := IssuanceRevealedSecrets{X0: x0, Xi: []group.Scalar{x1}, XTilde0: xTilde0}

	proof, err := ProveIssuanceRevealed(pub, sec)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if err := VerifyIssuanceRevealed(pub, proof); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	proof.SX0 = group.RandomScalar()
	if err := VerifyIssuanceRevealed(pub, proof); err != ErrVerificationFailure {
		t.Fatalf("Verify(tampered) = %v, want ErrVerificationFailure", err)
	}
}

func TestValidCredentialRoundtrip(t *testing.T) {
	a, b := testSystem() // b is unused: P' is sampled independently below
	_ = b
	x0 := group.RandomScalar()
	x1 := group.RandomScalar()
	m1 := group.RandomScalar()
	z1 := group.RandomScalar()
	zQ := group.RandomScalar()

	p := group.BaseMul(group.RandomScalar())
	q := p.Mul(x0.Add(x1.Mul(m1)))
	cm1 := commit.Commit(m1, z1, commit.Bases{P: p, Q: a}).C
	cq := q.Add(a.Mul(zQ))
	x1Point := a.Mul(x1)

	pub := ValidCredentialPublics{
		A: a, P: p, X: []group.Point{x1Point}, Cm: []group.Point{cm1}, CQ: cq,
		X0Secret: x0, XiSecret: []group.Scalar{x1},
	}
	sec := ValidCredentialSecrets{M: []group.Scalar{m1}, Z: []group.Scalar{z1}, ZQ: zQ}

	proof, err := ProveValidCredential(pub, sec)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if err := VerifyValidCredential(pub, proof); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	bad := pub
	bad.XiSecret = []group.Scalar{group.RandomScalar()}
	if err := VerifyValidCredential(bad, proof); err != ErrVerificationFailure {
		t.Fatalf("Verify(wrong key) = %v, want ErrVerificationFailure", err)
	}
}

func TestCommittedValuesEqualRoundtrip(t *testing.T) {
	a, b := testSystem()
	p := group.BaseMul(group.RandomScalar())
	m0 := group.RandomScalar()
	z0 := group.RandomScalar()
	z1 := group.RandomScalar()

	cm0 := commit.Commit(m0, z0, commit.Bases{P: p, Q: a}).C
	cm1 := commit.Commit(m0, z1, commit.Bases{P: a, Q: b}).C

	pub := CommittedValuesEqualPublics{A: a, B: b, P: p, Cm0: cm0, Cm1: cm1}
	sec := CommittedValuesEqualSecrets{M0: m0, Z0: z0, Z1: z1}

	proof, err := ProveCommittedValuesEqual(pub, sec)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if err := VerifyCommittedValuesEqual(pub, proof); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	wrongCm1 := commit.Commit(group.RandomScalar(), z1, commit.Bases{P: a, Q: b}).C
	badPub := pub
	badPub.Cm1 = wrongCm1
	if err := VerifyCommittedValuesEqual(badPub, proof); err != ErrVerificationFailure {
		t.Fatalf("Verify(mismatched entry) = %v, want ErrVerificationFailure", err)
	}
}

func TestRosterOpeningRoundtrip(t *testing.T) {
	a, b := testSystem()
	m0 := group.RandomScalar()
	zEntry := group.RandomScalar()
	cm1 := commit.Commit(m0, zEntry, commit.Bases{P: a, Q: b}).C

	pub := RosterOpeningPublics{A: a, B: b, M0: m0, Cm1: cm1}
	proof, err := ProveRosterOpening(pub, RosterOpeningSecrets{ZEntry: zEntry})
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if err := VerifyRosterOpening(pub, proof); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	wrongPub := pub
	wrongPub.M0 = group.RandomScalar()
	if err := VerifyRosterOpening(wrongPub, proof); err != ErrVerificationFailure {
		t.Fatalf("Verify(wrong m0) = %v, want ErrVerificationFailure", err)
	}
}

func TestAttributesBlindedRoundtrip(t *testing.T) {
	_, b := testSystem()
	d := group.RandomScalar()
	dPoint := b.Mul(d)
	e0 := group.RandomScalar()
	m0 := group.RandomScalar()
	c1 := b.Mul(e0)
	c2 := group.BaseMul(m0).Add(dPoint.Mul(e0))

	pub := AttributesBlindedPublics{B: b, D: dPoint, C1: c1, C2: c2}
	sec := AttributesBlindedSecrets{D: d, E0: e0, M0: m0}

	proof, err := ProveAttributesBlinded(pub, sec)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if err := VerifyAttributesBlinded(pub, proof); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	proof.SM0 = group.RandomScalar()
	if err := VerifyAttributesBlinded(pub, proof); err != ErrVerificationFailure {
		t.Fatalf("Verify(tampered) = %v, want ErrVerificationFailure", err)
	}
}

func TestIssuanceBlindedRoundtrip(t *testing.T) {
	a, b := testSystem()
	x0 := group.RandomScalar()
	x1 := group.RandomScalar()
	xTilde0 := group.RandomScalar()
	s := group.RandomScalar()
	bScalar := group.RandomScalar()
	t0 := bScalar.Mul(x1)

	d := group.RandomScalar()
	dPoint := b.Mul(d)
	e0 := group.RandomScalar()
	m0 := group.RandomScalar()
	c1m0 := b.Mul(e0)
	c2m0 := group.BaseMul(m0).Add(dPoint.Mul(e0))

	x0Point := commit.Commit(x0, xTilde0, commit.Bases{P: b, Q: a}).C
	x1Point := a.Mul(x1)
	p := b.Mul(bScalar)
	t0_0 := x0Point.Mul(bScalar)
	t0_1 := a.Mul(t0)
	eqCommit := group.MultiScalarMul([]group.Scalar{s, t0}, []group.Point{b, c1m0})
	eqEncrypt := group.MultiScalarMul([]group.Scalar{s, t0}, []group.Point{dPoint, c2m0})

	pub := IssuanceBlindedPublics{
		A: a, B: b, X0: x0Point, X1: x1Point, D: dPoint, C1m0: c1m0, C2m0: c2m0,
		P: p, T0_0: t0_0, T0_1: t0_1, EQCommit: eqCommit, EQEncrypt: eqEncrypt,
	}
	sec := IssuanceBlindedSecrets{XTilde0: xTilde0, X0: x0, X1: x1, S: s, B: bScalar, T0: t0}

	proof, err := ProveIssuanceBlinded(pub, sec)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if err := VerifyIssuanceBlinded(pub, proof); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	proof.SB = group.RandomScalar()
	if err := VerifyIssuanceBlinded(pub, proof); err != ErrVerificationFailure {
		t.Fatalf("Verify(tampered) = %v, want ErrVerificationFailure", err)
	}

	// decryption sanity: EQEncrypt - d*EQCommit should equal t0*m0*B.
	decrypted := eqEncrypt.Sub(eqCommit.Mul(d))
	want := b.Mul(t0.Mul(m0))
	if !decrypted.Equal(want) {
		t.Fatal("homomorphic decryption did not recover t0*m0*B")
	}
}
