package credential

import (
	"fmt"
	"io"
	"log/slog"

	"anoncred/amac"
	"anoncred/commit"
	"anoncred/group"
	"anoncred/nizk"
	"anoncred/params"
)

// Credential is an attribute vector and the tag authenticating it.
type Credential struct {
	Attributes []group.Scalar
	Tag        amac.Tag
}

// Request is what FreshUser.Obtain sends to the issuer: the attributes
// being revealed in the clear, the roster entry committing to the user's
// identifier attribute, and a proof that the entry's commitment opens to
// the revealed identifier.
type Request struct {
	RevealedAttributes []group.Scalar
	RosterEntry        RosterEntry
	Proof              *nizk.RosterOpeningProof
}

// Issuance is what Issuer.Issue returns: the issued credential plus the
// commitment and proof the user needs to verify it was issued honestly.
type Issuance struct {
	Credential Credential
	Cx0        group.Point
	Proof      *nizk.IssuanceRevealedProof
}

// Presentation is what HoldingUser.Show produces: a rerandomized, unlinkable
// proof of possession of a valid credential, plus a roster-membership proof
// binding it to a roster entry without revealing which attribute it is.
type Presentation struct {
	P             group.Point
	CQ            group.Point
	Cm            []group.Point
	ValidityProof *nizk.ValidCredentialProof
	RosterProof   *nizk.CommittedValuesEqualProof
	RosterEntry   RosterEntry
}

// VerifiedCredential is the result of a successful Issuer.Verify: the
// presentation fields needed for a subsequent roster-membership check,
// retained separately so a verifier cannot skip VerifyRosterMembership by
// accident.
type VerifiedCredential struct {
	P           group.Point
	Cm          []group.Point
	RosterProof *nizk.CommittedValuesEqualProof
	RosterEntry RosterEntry
}

func identifierScalar(identifier []byte) group.Scalar {
	return group.ScalarFromHash("anoncred/identifier", identifier)
}

// Issuer holds the aMAC secret key and issues and verifies credentials
// against a fixed system and configuration.
type Issuer struct {
	sys    params.System
	cfg    params.Config
	sk     *amac.SecretKey
	pk     *amac.PublicKey
	logger *slog.Logger
}

// NewIssuer generates a fresh issuer key for cfg.NumAttributes attributes.
func NewIssuer(sys params.System, cfg params.Config) (*Issuer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sk, err := amac.KeyGen(cfg.NumAttributes)
	if err != nil {
		return nil, err
	}
	return NewIssuerFromKey(sys, cfg, sk), nil
}

// NewIssuerFromKey wraps an existing secret key, for deterministic tests or
// key-recovery flows.
func NewIssuerFromKey(sys params.System, cfg params.Config, sk *amac.SecretKey) *Issuer {
	return &Issuer{
		sys:    sys,
		cfg:    cfg,
		sk:     sk,
		pk:     sk.IssuerParameters(sys.H),
		logger: slog.Default(),
	}
}

// SetLogger overrides the issuer's diagnostic logger. A nil logger disables
// logging.
func (iss *Issuer) SetLogger(l *slog.Logger) { iss.logger = l }

func (iss *Issuer) log(level slog.Level, msg string, args ...any) {
	if iss.logger == nil {
		return
	}
	iss.logger.Log(nil, level, msg, args...)
}

// IssuerParameters returns the issuer's public parameters (X1, ..., Xn).
func (iss *Issuer) IssuerParameters() *amac.PublicKey { return iss.pk }

// Issue verifies req against identifier and, on success, tags the revealed
// attributes and proves the tag's validity to the requesting user. rand
// supplies the entropy for the issuance proof's commitment opening.
func (iss *Issuer) Issue(req *Request, identifier []byte, rand io.Reader) (*Issuance, error) {
	if len(req.RevealedAttributes) != iss.cfg.NumAttributes {
		iss.log(slog.LevelWarn, "issue: attribute count mismatch", "got", len(req.RevealedAttributes), "want", iss.cfg.NumAttributes)
		return nil, ErrMacMisconfig
	}
	if !req.RevealedAttributes[0].Equal(identifierScalar(identifier)) {
		iss.log(slog.LevelWarn, "issue: identifier mismatch")
		return nil, ErrBadAttribute
	}

	openingPub := nizk.RosterOpeningPublics{
		A:   iss.sys.H,
		B:   iss.sys.G,
		M0:  req.RevealedAttributes[0],
		Cm1: req.RosterEntry.CommittedAttribute.C,
	}
	if err := nizk.VerifyRosterOpening(openingPub, req.Proof); err != nil {
		iss.log(slog.LevelWarn, "issue: roster opening proof failed")
		return nil, fmt.Errorf("%w: roster opening", ErrVerificationFailure)
	}

	tag, err := iss.sk.MAC(req.RevealedAttributes)
	if err != nil {
		return nil, err
	}

	xTilde0, err := group.ScalarFromReader(rand)
	if err != nil {
		return nil, err
	}
	cx0 := commit.Commit(iss.sk.X0(), xTilde0, commit.Bases{P: iss.sys.G, Q: iss.sys.H}).C

	xi := make([]group.Scalar, iss.sk.N())
	for i := range xi {
		xi[i] = iss.sk.Xi(i)
	}

	pub := nizk.IssuanceRevealedPublics{
		A:        iss.sys.H,
		B:        iss.sys.G,
		P:        tag.P,
		Q:        tag.Q,
		Cx0:      cx0,
		X:        iss.pk.X,
		Revealed: req.RevealedAttributes,
	}
	sec := nizk.IssuanceRevealedSecrets{
		X0:      iss.sk.X0(),
		Xi:      xi,
		XTilde0: xTilde0,
	}
	proof, err := nizk.ProveIssuanceRevealed(pub, sec)
	if err != nil {
		return nil, err
	}

	iss.log(slog.LevelDebug, "issue: ok", "attributes", len(req.RevealedAttributes))
	return &Issuance{
		Credential: Credential{Attributes: req.RevealedAttributes, Tag: *tag},
		Cx0:        cx0,
		Proof:      proof,
	}, nil
}

// Verify checks a presentation's validity proof and returns a
// VerifiedCredential. It does not check roster membership; call
// VerifyRosterMembership separately.
func (iss *Issuer) Verify(pres *Presentation) (*VerifiedCredential, error) {
	if pres.P.IsIdentity() || pres.P.Equal(iss.sys.G) {
		iss.log(slog.LevelWarn, "verify: degenerate tag nonce")
		return nil, ErrDegenerateTag
	}
	if len(pres.Cm) != iss.cfg.NumAttributes {
		return nil, ErrMacMisconfig
	}

	xi := make([]group.Scalar, iss.sk.N())
	for i := range xi {
		xi[i] = iss.sk.Xi(i)
	}

	pub := nizk.ValidCredentialPublics{
		A:        iss.sys.H,
		P:        pres.P,
		X:        iss.pk.X,
		Cm:       pres.Cm,
		CQ:       pres.CQ,
		X0Secret: iss.sk.X0(),
		XiSecret: xi,
	}
	if err := nizk.VerifyValidCredential(pub, pres.ValidityProof); err != nil {
		iss.log(slog.LevelWarn, "verify: validity proof failed")
		return nil, fmt.Errorf("%w: validity", ErrVerificationFailure)
	}

	iss.log(slog.LevelDebug, "verify: ok")
	return &VerifiedCredential{
		P:           pres.P,
		Cm:          pres.Cm,
		RosterProof: pres.RosterProof,
		RosterEntry: pres.RosterEntry,
	}, nil
}

// VerifyRosterMembership checks that vc's roster-binding proof verifies and
// that its roster entry is present at or above level in roster.
func (iss *Issuer) VerifyRosterMembership(vc *VerifiedCredential, roster *Roster, level Level) error {
	if len(vc.Cm) == 0 {
		return ErrMissingData
	}
	pub := nizk.CommittedValuesEqualPublics{
		A:   iss.sys.H,
		B:   iss.sys.G,
		P:   vc.P,
		Cm0: vc.Cm[0],
		Cm1: vc.RosterEntry.CommittedAttribute.C,
	}
	if err := nizk.VerifyCommittedValuesEqual(pub, vc.RosterProof); err != nil {
		iss.log(slog.LevelWarn, "roster membership: binding proof failed")
		return fmt.Errorf("%w: binding proof", ErrRoster)
	}
	if !roster.containsAtOrAbove(level, vc.RosterEntry) {
		iss.log(slog.LevelWarn, "roster membership: entry absent at level", "level", level)
		return ErrRoster
	}
	iss.log(slog.LevelDebug, "roster membership: ok", "level", level)
	return nil
}

// FreshUser is a user that has not yet requested a credential.
type FreshUser struct {
	sys          params.System
	cfg          params.Config
	issuerParams *amac.PublicKey
	identifier   []byte
	extra        []group.Scalar
}

// NewFreshUser constructs a user identified by identifier, carrying
// cfg.NumAttributes-1 additional attributes beyond the identifier itself.
func NewFreshUser(sys params.System, cfg params.Config, issuerParams *amac.PublicKey, identifier []byte, extraAttributes []group.Scalar) (*FreshUser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(extraAttributes) != cfg.NumAttributes-1 {
		return nil, ErrMacMisconfig
	}
	return &FreshUser{
		sys:          sys,
		cfg:          cfg,
		issuerParams: issuerParams,
		identifier:   identifier,
		extra:        extraAttributes,
	}, nil
}

// RequestingUser has sent a Request and is waiting for an Issuance.
type RequestingUser struct {
	fresh       *FreshUser
	attributes  []group.Scalar
	zEntry      *group.SecretScalar
	rosterEntry RosterEntry
}

// Obtain builds a Request revealing all of the user's attributes alongside
// a roster entry committing to its identifier, and a proof binding the two.
func (fu *FreshUser) Obtain() (*RequestingUser, *Request, error) {
	m := make([]group.Scalar, fu.cfg.NumAttributes)
	m[0] = identifierScalar(fu.identifier)
	copy(m[1:], fu.extra)

	zEntry := group.RandomScalar()
	cm1 := commit.Commit(m[0], zEntry, commit.Bases{P: fu.sys.H, Q: fu.sys.G}).C
	entry := RosterEntry{CommittedAttribute: commit.Pedersen{C: cm1}}

	pub := nizk.RosterOpeningPublics{A: fu.sys.H, B: fu.sys.G, M0: m[0], Cm1: cm1}
	proof, err := nizk.ProveRosterOpening(pub, nizk.RosterOpeningSecrets{ZEntry: zEntry})
	if err != nil {
		return nil, nil, err
	}

	ru := &RequestingUser{
		fresh:       fu,
		attributes:  m,
		zEntry:      group.NewSecretScalar(zEntry),
		rosterEntry: entry,
	}
	req := &Request{
		RevealedAttributes: m,
		RosterEntry:        entry,
		Proof:              proof,
	}
	return ru, req, nil
}

// ObtainFinish verifies the issuer's issuance proof and, on success,
// returns a HoldingUser wrapping the issued credential.
func (ru *RequestingUser) ObtainFinish(issuance *Issuance) (*HoldingUser, error) {
	pub := nizk.IssuanceRevealedPublics{
		A:        ru.fresh.sys.H,
		B:        ru.fresh.sys.G,
		P:        issuance.Credential.Tag.P,
		Q:        issuance.Credential.Tag.Q,
		Cx0:      issuance.Cx0,
		X:        ru.fresh.issuerParams.X,
		Revealed: ru.attributes,
	}
	if err := nizk.VerifyIssuanceRevealed(pub, issuance.Proof); err != nil {
		return nil, fmt.Errorf("%w: issuance", ErrVerificationFailure)
	}

	return &HoldingUser{
		sys:          ru.fresh.sys,
		cfg:          ru.fresh.cfg,
		issuerParams: ru.fresh.issuerParams,
		credential:   issuance.Credential,
		zEntry:       ru.zEntry,
		rosterEntry:  ru.rosterEntry,
	}, nil
}

// HoldingUser holds a verified credential and can produce presentations.
type HoldingUser struct {
	sys          params.System
	cfg          params.Config
	issuerParams *amac.PublicKey
	credential   Credential
	zEntry       *group.SecretScalar
	rosterEntry  RosterEntry
}

// Show produces a fresh, unlinkable presentation of the held credential.
// rand supplies the tag rerandomizer, the MAC-commitment opening, and each
// attribute commitment's opening; the proofs draw their randomness from the
// transcript-forked witness RNG.
func (hu *HoldingUser) Show(rand io.Reader) (*Presentation, error) {
	r, err := group.ScalarFromReader(rand)
	if err != nil {
		return nil, err
	}
	rerandomized := hu.credential.Tag.Rerandomize(r)

	zQ, err := group.ScalarFromReader(rand)
	if err != nil {
		return nil, err
	}
	cq := rerandomized.Q.Add(hu.sys.H.Mul(zQ))

	n := len(hu.credential.Attributes)
	z := make([]group.Scalar, n)
	cm := make([]group.Point, n)
	for i, mi := range hu.credential.Attributes {
		zi, err := group.ScalarFromReader(rand)
		if err != nil {
			return nil, err
		}
		z[i] = zi
		cm[i] = commit.Commit(mi, zi, commit.Bases{P: rerandomized.P, Q: hu.sys.H}).C
	}

	validPub := nizk.ValidCredentialPublics{
		A:  hu.sys.H,
		P:  rerandomized.P,
		X:  hu.issuerParams.X,
		Cm: cm,
		CQ: cq,
	}
	validSec := nizk.ValidCredentialSecrets{M: hu.credential.Attributes, Z: z, ZQ: zQ}
	validProof, err := nizk.ProveValidCredential(validPub, validSec)
	if err != nil {
		return nil, err
	}

	rosterPub := nizk.CommittedValuesEqualPublics{
		A:   hu.sys.H,
		B:   hu.sys.G,
		P:   rerandomized.P,
		Cm0: cm[0],
		Cm1: hu.rosterEntry.CommittedAttribute.C,
	}
	rosterSec := nizk.CommittedValuesEqualSecrets{M0: hu.credential.Attributes[0], Z0: z[0], Z1: hu.zEntry.Scalar()}
	rosterProof, err := nizk.ProveCommittedValuesEqual(rosterPub, rosterSec)
	if err != nil {
		return nil, err
	}

	return &Presentation{
		P:             rerandomized.P,
		CQ:            cq,
		Cm:            cm,
		ValidityProof: validProof,
		RosterProof:   rosterProof,
		RosterEntry:   hu.rosterEntry,
	}, nil
}
