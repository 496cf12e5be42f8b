package wire

import (
	"bytes"
	"crypto/rand"
	"testing"

	"anoncred/amac"
	"anoncred/credential"
	"anoncred/group"
	"anoncred/params"
)

func testSystem(t *testing.T) params.System {
	t.Helper()
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	return params.New(seed)
}

func TestTagRoundtrip(t *testing.T) {
	tag := amac.Tag{P: group.BaseMul(group.RandomScalar()), Q: group.BaseMul(group.RandomScalar())}
	var buf bytes.Buffer
	if err := Tag(&buf, tag); err != nil {
		t.Fatalf("Tag: %v", err)
	}
	got, err := DecodeTag(&buf)
	if err != nil {
		t.Fatalf("DecodeTag: %v", err)
	}
	if !got.P.Equal(tag.P) || !got.Q.Equal(tag.Q) {
		t.Fatal("decoded tag does not match original")
	}
}

func TestDecodeTagRejectsTruncated(t *testing.T) {
	if _, err := DecodeTag(bytes.NewReader(make([]byte, 10))); err != ErrEncoding {
		t.Fatalf("DecodeTag(truncated) = %v, want ErrEncoding", err)
	}
}

func TestFullProtocolRoundtripsOverWire(t *testing.T) {
	sys := testSystem(t)
	cfg := params.Config{NumAttributes: 1}
	issuer, err := credential.NewIssuer(sys, cfg)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}

	var pkBuf bytes.Buffer
	if err := PublicKey(&pkBuf, issuer.IssuerParameters()); err != nil {
		t.Fatalf("PublicKey: %v", err)
	}
	pk, err := DecodePublicKey(&pkBuf, cfg.NumAttributes)
	if err != nil {
		t.Fatalf("DecodePublicKey: %v", err)
	}

	identifier := []byte("wire-test@example.com")
	fresh, err := credential.NewFreshUser(sys, cfg, pk, identifier, nil)
	if err != nil {
		t.Fatalf("NewFreshUser: %v", err)
	}
	requesting, req, err := fresh.Obtain()
	if err != nil {
		t.Fatalf("Obtain: %v", err)
	}

	var reqBuf bytes.Buffer
	if err := Request(&reqBuf, req); err != nil {
		t.Fatalf("Request: %v", err)
	}
	reqOnWire, err := DecodeRequest(&reqBuf)
	if err != nil {
		t.Fatalf("DecodeRequest: %v", err)
	}

	issuance, err := issuer.Issue(reqOnWire, identifier, rand.Reader)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var issBuf bytes.Buffer
	if err := Issuance(&issBuf, issuance); err != nil {
		t.Fatalf("Issuance: %v", err)
	}
	issuanceOnWire, err := DecodeIssuance(&issBuf)
	if err != nil {
		t.Fatalf("DecodeIssuance: %v", err)
	}

	holding, err := requesting.ObtainFinish(issuanceOnWire)
	if err != nil {
		t.Fatalf("ObtainFinish: %v", err)
	}
	pres, err := holding.Show(rand.Reader)
	if err != nil {
		t.Fatalf("Show: %v", err)
	}

	var presBuf bytes.Buffer
	if err := Presentation(&presBuf, pres); err != nil {
		t.Fatalf("Presentation: %v", err)
	}
	presOnWire, err := DecodePresentation(&presBuf)
	if err != nil {
		t.Fatalf("DecodePresentation: %v", err)
	}

	if _, err := issuer.Verify(presOnWire); err != nil {
		t.Fatalf("Verify(round-tripped presentation): %v", err)
	}
}

// TestSystemParametersFixedSize checks the wire-length determinism
// contract: SystemParameters always encodes to 64 bytes (G || H).
func TestSystemParametersFixedSize(t *testing.T) {
	sys := testSystem(t)
	var buf bytes.Buffer
	if err := SystemParameters(&buf, sys); err != nil {
		t.Fatalf("SystemParameters: %v", err)
	}
	if buf.Len() != 64 {
		t.Fatalf("len(SystemParameters) = %d, want 64", buf.Len())
	}
	got, err := DecodeSystemParameters(&buf)
	if err != nil {
		t.Fatalf("DecodeSystemParameters: %v", err)
	}
	if !got.G.Equal(sys.G) || !got.H.Equal(sys.H) {
		t.Fatal("decoded system parameters do not match original")
	}
}

// TestIssuerParametersFixedSizeAtOneAttribute checks that IssuerParameters
// (amac.PublicKey) encodes to exactly n*32 bytes with no length prefix, 32
// bytes in the N=1 reference configuration.
func TestIssuerParametersFixedSizeAtOneAttribute(t *testing.T) {
	sys := testSystem(t)
	cfg := params.Config{NumAttributes: 1}
	issuer, err := credential.NewIssuer(sys, cfg)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	var buf bytes.Buffer
	if err := PublicKey(&buf, issuer.IssuerParameters()); err != nil {
		t.Fatalf("PublicKey: %v", err)
	}
	if buf.Len() != 32 {
		t.Fatalf("len(IssuerParameters) = %d, want 32", buf.Len())
	}
}

// TestKeypairRoundtrip exercises the issuer_new(sys, keypair) input form:
// PublicKey || SecretKey, with n recovered from the total length.
func TestKeypairRoundtrip(t *testing.T) {
	sys := testSystem(t)
	cfg := params.Config{NumAttributes: 3}
	sk, err := amac.KeyGen(cfg.NumAttributes)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	pk := sk.IssuerParameters(sys.H)

	var buf bytes.Buffer
	if err := Keypair(&buf, pk, sk); err != nil {
		t.Fatalf("Keypair: %v", err)
	}
	wantLen := (2*cfg.NumAttributes + 1) * group.PointSize
	if buf.Len() != wantLen {
		t.Fatalf("len(Keypair) = %d, want %d", buf.Len(), wantLen)
	}

	gotPK, gotSK, err := DecodeKeypair(&buf)
	if err != nil {
		t.Fatalf("DecodeKeypair: %v", err)
	}
	if len(gotPK.X) != len(pk.X) {
		t.Fatalf("len(gotPK.X) = %d, want %d", len(gotPK.X), len(pk.X))
	}
	for i := range pk.X {
		if !gotPK.X[i].Equal(pk.X[i]) {
			t.Fatalf("gotPK.X[%d] != pk.X[%d]", i, i)
		}
	}
	if gotSK.N() != sk.N() {
		t.Fatalf("gotSK.N() = %d, want %d", gotSK.N(), sk.N())
	}
	if !gotSK.X0().Equal(sk.X0()) {
		t.Fatal("decoded secret key x0 does not match original")
	}
	for i := 0; i < sk.N(); i++ {
		if !gotSK.Xi(i).Equal(sk.Xi(i)) {
			t.Fatalf("decoded secret key x%d does not match original", i+1)
		}
	}
}

// TestPresentationFixedLength checks that Presentation's encoded length is
// a deterministic function of NumAttributes, per S6.
func TestPresentationFixedLength(t *testing.T) {
	sys := testSystem(t)
	cfg := params.Config{NumAttributes: 1}
	issuer, err := credential.NewIssuer(sys, cfg)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	identifier := []byte("fixed-length@example.com")
	fresh, err := credential.NewFreshUser(sys, cfg, issuer.IssuerParameters(), identifier, nil)
	if err != nil {
		t.Fatalf("NewFreshUser: %v", err)
	}
	requesting, req, err := fresh.Obtain()
	if err != nil {
		t.Fatalf("Obtain: %v", err)
	}
	issuance, err := issuer.Issue(req, identifier, rand.Reader)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	holding, err := requesting.ObtainFinish(issuance)
	if err != nil {
		t.Fatalf("ObtainFinish: %v", err)
	}

	p1, err := holding.Show(rand.Reader)
	if err != nil {
		t.Fatalf("Show: %v", err)
	}
	p2, err := holding.Show(rand.Reader)
	if err != nil {
		t.Fatalf("Show: %v", err)
	}

	var buf1, buf2 bytes.Buffer
	if err := Presentation(&buf1, p1); err != nil {
		t.Fatalf("Presentation: %v", err)
	}
	if err := Presentation(&buf2, p2); err != nil {
		t.Fatalf("Presentation: %v", err)
	}
	if buf1.Len() != buf2.Len() {
		t.Fatalf("Presentation length varies between calls: %d vs %d", buf1.Len(), buf2.Len())
	}
}

func TestRosterRoundtrip(t *testing.T) {
	sys := testSystem(t)
	cfg := params.Default()
	issuer, _ := credential.NewIssuer(sys, cfg)
	fresh, _ := credential.NewFreshUser(sys, cfg, issuer.IssuerParameters(), []byte("roster@example.com"), nil)
	_, req, err := fresh.Obtain()
	if err != nil {
		t.Fatalf("Obtain: %v", err)
	}

	roster := credential.NewRoster("roster-wire-test")
	roster.Add(credential.Admin, req.RosterEntry)

	var buf bytes.Buffer
	if err := Roster(&buf, roster); err != nil {
		t.Fatalf("Roster: %v", err)
	}
	got, err := DecodeRoster(&buf)
	if err != nil {
		t.Fatalf("DecodeRoster: %v", err)
	}
	if got.GroupID != roster.GroupID {
		t.Fatalf("GroupID = %q, want %q", got.GroupID, roster.GroupID)
	}
	if len(got.Admins()) != 1 {
		t.Fatalf("len(Admins()) = %d, want 1", len(got.Admins()))
	}
}
