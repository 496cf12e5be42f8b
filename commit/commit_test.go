package commit

import (
	"testing"

	"anoncred/group"
)

func testBases() Bases {
	return Bases{P: group.BasePoint(), Q: group.HashToGroup("commit-test/Q", []byte("seed"))}
}

func TestPedersenOpen(t *testing.T) {
	bases := testBases()
	m := group.RandomScalar()
	z := group.RandomScalar()
	c := Commit(m, z, bases)

	if !c.Open(m, z, bases) {
		t.Fatal("commitment did not open to its own (m, z)")
	}
	if c.Open(group.RandomScalar(), z, bases) {
		t.Fatal("commitment opened to a forged message")
	}
}

func TestPedersenAddIsHomomorphic(t *testing.T) {
	bases := testBases()
	m1, z1 := group.RandomScalar(), group.RandomScalar()
	m2, z2 := group.RandomScalar(), group.RandomScalar()

	c1 := Commit(m1, z1, bases)
	c2 := Commit(m2, z2, bases)
	sum := c1.Add(c2)

	if !sum.Open(m1.Add(m2), z1.Add(z2), bases) {
		t.Fatal("Add did not produce a commitment to the summed opening")
	}
}

func TestElGamalRoundtrip(t *testing.T) {
	b := group.BasePoint()
	kp := GenerateElGamal(b)
	defer kp.Zeroize()

	msg := group.BaseMul(group.RandomScalar())
	e := group.RandomScalar()
	ct := Encrypt(msg, e, b, kp.D)

	got := kp.Decrypt(ct)
	if !got.Equal(msg) {
		t.Fatal("decrypted point does not match the encrypted message")
	}
}

func TestCiphertextAddIsHomomorphic(t *testing.T) {
	b := group.BasePoint()
	kp := GenerateElGamal(b)
	defer kp.Zeroize()

	m1 := group.BaseMul(group.RandomScalar())
	m2 := group.BaseMul(group.RandomScalar())
	ct1 := Encrypt(m1, group.RandomScalar(), b, kp.D)
	ct2 := Encrypt(m2, group.RandomScalar(), b, kp.D)

	sum := ct1.Add(ct2)
	got := kp.Decrypt(sum)
	if !got.Equal(m1.Add(m2)) {
		t.Fatal("homomorphic ciphertext sum did not decrypt to the summed messages")
	}
}

func TestElGamalSecretHiddenForPublicOnly(t *testing.T) {
	kp := GenerateElGamal(group.BasePoint())
	pub := PublicElGamal(kp.D)
	if _, ok := pub.Secret(); ok {
		t.Fatal("PublicElGamal exposed a secret key")
	}
}
