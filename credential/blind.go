package credential

import (
	"fmt"
	"io"
	"log/slog"

	"anoncred/amac"
	"anoncred/commit"
	"anoncred/group"
	"anoncred/nizk"
)

// BlindRequest is what FreshUser.BlindObtain sends to the issuer: an
// ElGamal-encrypted attribute, a proof that the ciphertext and key are
// well-formed, and a roster entry the issuer accepts without checking it
// against the (hidden) attribute — see DESIGN.md for why blind mode cannot
// perform the plaintext roster-opening check the non-blind flow does.
type BlindRequest struct {
	ElGamalPub  group.Point
	Ciphertext  commit.Ciphertext
	RosterEntry RosterEntry
	Proof       *nizk.AttributesBlindedProof
}

// BlindIssuance is what Issuer.BlindIssue returns: a blinded tag nonce and
// the homomorphically-combined ciphertext components the user needs to
// finish computing its tag, plus the proof that they were formed honestly.
type BlindIssuance struct {
	P         group.Point
	X0        group.Point
	T0_0      group.Point
	T0_1      group.Point
	EQCommit  group.Point
	EQEncrypt group.Point
	BXTilde0  group.Scalar
	Proof     *nizk.IssuanceBlindedProof
}

// BlindObtain requests a credential without revealing the identifier
// attribute to the issuer. Only available when cfg.BlindMode is set and
// cfg.NumAttributes == 1: blind mode hides the sole attribute, rather than
// mixing hidden and revealed attributes in one request.
func (fu *FreshUser) BlindObtain() (*BlindRequestingUser, *BlindRequest, error) {
	if !fu.cfg.BlindMode || fu.cfg.NumAttributes != 1 {
		return nil, nil, ErrMacMisconfig
	}
	m0 := identifierScalar(fu.identifier)

	eg := commit.GenerateElGamal(fu.sys.G)
	d, _ := eg.Secret()

	e0 := group.RandomScalar()
	ciphertext := commit.Encrypt(group.BaseMul(m0), e0, fu.sys.G, eg.D)

	attrPub := nizk.AttributesBlindedPublics{
		B:  fu.sys.G,
		D:  eg.D,
		C1: ciphertext.C1,
		C2: ciphertext.C2,
	}
	attrProof, err := nizk.ProveAttributesBlinded(attrPub, nizk.AttributesBlindedSecrets{D: d, E0: e0, M0: m0})
	if err != nil {
		return nil, nil, err
	}

	zEntry := group.RandomScalar()
	cm1 := commit.Commit(m0, zEntry, commit.Bases{P: fu.sys.H, Q: fu.sys.G}).C
	entry := RosterEntry{CommittedAttribute: commit.Pedersen{C: cm1}}

	bru := &BlindRequestingUser{
		fresh:       fu,
		m0:          m0,
		elGamal:     eg,
		ciphertext:  ciphertext,
		zEntry:      group.NewSecretScalar(zEntry),
		rosterEntry: entry,
	}
	req := &BlindRequest{
		ElGamalPub:  eg.D,
		Ciphertext:  ciphertext,
		RosterEntry: entry,
		Proof:       attrProof,
	}
	return bru, req, nil
}

// BlindRequestingUser has sent a BlindRequest and is waiting for a
// BlindIssuance.
type BlindRequestingUser struct {
	fresh       *FreshUser
	m0          group.Scalar
	elGamal     commit.ElGamal
	ciphertext  commit.Ciphertext
	zEntry      *group.SecretScalar
	rosterEntry RosterEntry
}

// BlindIssue verifies req's proof and tags the user's hidden attribute
// homomorphically under ElGamal encryption, never learning it in the clear.
// rand supplies the entropy for the issuer's blinding scalars.
func (iss *Issuer) BlindIssue(req *BlindRequest, rand io.Reader) (*BlindIssuance, error) {
	if !iss.cfg.BlindMode || iss.cfg.NumAttributes != 1 {
		return nil, ErrMacMisconfig
	}
	attrPub := nizk.AttributesBlindedPublics{
		B:  iss.sys.G,
		D:  req.ElGamalPub,
		C1: req.Ciphertext.C1,
		C2: req.Ciphertext.C2,
	}
	if err := nizk.VerifyAttributesBlinded(attrPub, req.Proof); err != nil {
		iss.log(slog.LevelWarn, "blind issue: attributes_blinded proof failed")
		return nil, fmt.Errorf("%w: attributes_blinded", ErrVerificationFailure)
	}

	b, err := group.ScalarFromReader(rand)
	if err != nil {
		return nil, err
	}
	s, err := group.ScalarFromReader(rand)
	if err != nil {
		return nil, err
	}
	xTilde0, err := group.ScalarFromReader(rand)
	if err != nil {
		return nil, err
	}

	x1 := iss.sk.Xi(0)
	t0 := b.Mul(x1)

	x0point := commit.Commit(iss.sk.X0(), xTilde0, commit.Bases{P: iss.sys.G, Q: iss.sys.H}).C
	p := iss.sys.G.Mul(b)
	t0_0 := x0point.Mul(b)
	t0_1 := iss.sys.H.Mul(t0)
	eqCommit := group.MultiScalarMul([]group.Scalar{s, t0}, []group.Point{iss.sys.G, req.Ciphertext.C1})
	eqEncrypt := group.MultiScalarMul([]group.Scalar{s, t0}, []group.Point{req.ElGamalPub, req.Ciphertext.C2})

	pub := nizk.IssuanceBlindedPublics{
		A: iss.sys.H, B: iss.sys.G,
		X0: x0point, X1: iss.pk.X[0],
		D: req.ElGamalPub, C1m0: req.Ciphertext.C1, C2m0: req.Ciphertext.C2,
		P: p, T0_0: t0_0, T0_1: t0_1,
		EQCommit: eqCommit, EQEncrypt: eqEncrypt,
	}
	sec := nizk.IssuanceBlindedSecrets{
		XTilde0: xTilde0, X0: iss.sk.X0(), X1: x1, S: s, B: b, T0: t0,
	}
	proof, err := nizk.ProveIssuanceBlinded(pub, sec)
	if err != nil {
		return nil, err
	}

	iss.log(slog.LevelDebug, "blind issue: ok")
	return &BlindIssuance{
		P: p, X0: x0point, T0_0: t0_0, T0_1: t0_1,
		EQCommit: eqCommit, EQEncrypt: eqEncrypt,
		BXTilde0: b.Mul(xTilde0),
		Proof:    proof,
	}, nil
}

// BlindObtainFinish verifies the issuer's blinded-issuance proof and
// homomorphically decrypts the tag's Q component, never having revealed m0
// to the issuer.
func (bru *BlindRequestingUser) BlindObtainFinish(iss *BlindIssuance) (*HoldingUser, error) {
	sys := bru.fresh.sys
	pub := nizk.IssuanceBlindedPublics{
		A: sys.H, B: sys.G,
		X0: iss.X0, X1: bru.fresh.issuerParams.X[0],
		D: bru.elGamal.D, C1m0: bru.ciphertext.C1, C2m0: bru.ciphertext.C2,
		P: iss.P, T0_0: iss.T0_0, T0_1: iss.T0_1,
		EQCommit: iss.EQCommit, EQEncrypt: iss.EQEncrypt,
	}
	if err := nizk.VerifyIssuanceBlinded(pub, iss.Proof); err != nil {
		return nil, fmt.Errorf("%w: issuance_blinded", ErrVerificationFailure)
	}

	d, _ := bru.elGamal.Secret()
	decrypted := iss.EQEncrypt.Sub(iss.EQCommit.Mul(d))
	q := iss.T0_0.Sub(sys.H.Mul(iss.BXTilde0)).Add(decrypted)

	credential := Credential{
		Attributes: []group.Scalar{bru.m0},
		Tag:        amac.Tag{P: iss.P, Q: q},
	}

	return &HoldingUser{
		sys:          sys,
		cfg:          bru.fresh.cfg,
		issuerParams: bru.fresh.issuerParams,
		credential:   credential,
		zEntry:       bru.zEntry,
		rosterEntry:  bru.rosterEntry,
	}, nil
}
