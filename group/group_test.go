package group

import (
	"bytes"
	"testing"
)

func TestScalarRoundtrip(t *testing.T) {
	s := RandomScalar()
	enc := s.Encode()
	if len(enc) != ScalarSize {
		t.Fatalf("encoded scalar length = %d, want %d", len(enc), ScalarSize)
	}
	got, err := DecodeScalar(enc)
	if err != nil {
		t.Fatalf("DecodeScalar: %v", err)
	}
	if !got.Equal(s) {
		t.Fatal("decoded scalar does not equal original")
	}
}

func TestDecodeScalarRejectsBadLength(t *testing.T) {
	if _, err := DecodeScalar(make([]byte, 16)); err != ErrDecode {
		t.Fatalf("DecodeScalar short input: got %v, want ErrDecode", err)
	}
	if _, err := DecodeScalar(make([]byte, 64)); err != ErrDecode {
		t.Fatalf("DecodeScalar long input: got %v, want ErrDecode", err)
	}
}

func TestDecodeScalarRejectsOutOfRange(t *testing.T) {
	var b [ScalarSize]byte
	for i := range b {
		b[i] = 0xff
	}
	if _, err := DecodeScalar(b[:]); err != ErrDecode {
		t.Fatalf("DecodeScalar 0xff...: got %v, want ErrDecode", err)
	}
}

func TestPointRoundtrip(t *testing.T) {
	p := BaseMul(RandomScalar())
	enc := p.Encode()
	if len(enc) != PointSize {
		t.Fatalf("encoded point length = %d, want %d", len(enc), PointSize)
	}
	got, err := DecodePoint(enc)
	if err != nil {
		t.Fatalf("DecodePoint: %v", err)
	}
	if !got.Equal(p) {
		t.Fatal("decoded point does not equal original")
	}
}

func TestIdentityAndBasePoint(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Fatal("Identity() is not the identity")
	}
	g := BasePoint()
	if g.IsIdentity() {
		t.Fatal("BasePoint() reported as identity")
	}
	if !BaseMul(Zero()).Equal(Identity()) {
		t.Fatal("0*G != identity")
	}
}

func TestHashToGroupDeterministic(t *testing.T) {
	a := HashToGroup("label", []byte("seed"))
	b := HashToGroup("label", []byte("seed"))
	if !a.Equal(b) {
		t.Fatal("HashToGroup is not deterministic")
	}
	c := HashToGroup("other-label", []byte("seed"))
	if a.Equal(c) {
		t.Fatal("HashToGroup ignored the label")
	}
}

func TestMultiScalarMulAgreesWithVartime(t *testing.T) {
	scalars := []Scalar{RandomScalar(), RandomScalar(), RandomScalar()}
	points := []Point{BaseMul(RandomScalar()), BaseMul(RandomScalar()), BaseMul(RandomScalar())}

	ct := MultiScalarMul(scalars, points)
	vt := MultiScalarMulVartime(scalars, points)
	if !ct.Equal(vt) {
		t.Fatal("MultiScalarMul and MultiScalarMulVartime disagree")
	}
}

func TestSecretScalarZeroize(t *testing.T) {
	ss := NewSecretScalar(RandomScalar())
	if ss.Scalar().IsZero() {
		t.Fatal("fresh secret scalar is zero (vanishingly unlikely, check RandomScalar)")
	}
	ss.Zeroize()
	if !ss.Scalar().IsZero() {
		t.Fatal("Zeroize did not clear the secret scalar")
	}
	if !bytes.Equal(ss.raw[:], make([]byte, ScalarSize)) {
		t.Fatal("Zeroize did not clear the backing bytes")
	}
}

func TestScalarArithmetic(t *testing.T) {
	a := RandomScalar()
	b := RandomScalar()
	if !a.Add(b).Sub(b).Equal(a) {
		t.Fatal("(a+b)-b != a")
	}
	if !a.Mul(b).Equal(b.Mul(a)) {
		t.Fatal("scalar multiplication is not commutative")
	}
	if !a.Invert().Mul(a).Mul(b).Equal(b) {
		t.Fatal("a^-1 * a * b != b")
	}
}
