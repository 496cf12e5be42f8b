// Package wire implements binary encoding for every public type in this
// module. Fixed-arity shapes (scalars, points, tags, keys, proofs) are
// bit-exact bare concatenation with no length prefix, since their arity is
// always recoverable from context; composite message types prefix their
// variable-length inner sequences with a little-endian u64 count. It uses
// encoding/binary directly over byte buffers, matching the teacher's
// preference (its ciphertextData JSON marshaling in crypto.go) for
// hand-rolled (de)serialization over a schema library, here adapted from
// JSON to a compact binary wire format.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"anoncred/amac"
	"anoncred/commit"
	"anoncred/group"
	"anoncred/nizk"
	"anoncred/params"
)

// ErrEncoding is returned when a byte string cannot be decoded into the
// requested type: wrong length, a non-canonical scalar or point encoding,
// or a truncated stream.
var ErrEncoding = errors.New("wire: malformed encoding")

func putUint64(w io.Writer, n uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], n)
	_, err := w.Write(b[:])
	return err
}

func readUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, ErrEncoding
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func putScalar(w io.Writer, s group.Scalar) error {
	_, err := w.Write(s.Encode())
	return err
}

func readScalar(r io.Reader) (group.Scalar, error) {
	var b [group.ScalarSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return group.Scalar{}, ErrEncoding
	}
	s, err := group.DecodeScalar(b[:])
	if err != nil {
		return group.Scalar{}, ErrEncoding
	}
	return s, nil
}

func putPoint(w io.Writer, p group.Point) error {
	_, err := w.Write(p.Encode())
	return err
}

func readPoint(r io.Reader) (group.Point, error) {
	var b [group.PointSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return group.Point{}, ErrEncoding
	}
	p, err := group.DecodePoint(b[:])
	if err != nil {
		return group.Point{}, ErrEncoding
	}
	return p, nil
}

func putScalars(w io.Writer, ss []group.Scalar) error {
	if err := putUint64(w, uint64(len(ss))); err != nil {
		return err
	}
	for _, s := range ss {
		if err := putScalar(w, s); err != nil {
			return err
		}
	}
	return nil
}

func readScalars(r io.Reader) ([]group.Scalar, error) {
	n, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	out := make([]group.Scalar, n)
	for i := range out {
		out[i], err = readScalar(r)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func putPoints(w io.Writer, ps []group.Point) error {
	if err := putUint64(w, uint64(len(ps))); err != nil {
		return err
	}
	for _, p := range ps {
		if err := putPoint(w, p); err != nil {
			return err
		}
	}
	return nil
}

func readPoints(r io.Reader) ([]group.Point, error) {
	n, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	out := make([]group.Point, n)
	for i := range out {
		out[i], err = readPoint(r)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Tag encodes an amac.Tag as P || Q.
func Tag(w io.Writer, t amac.Tag) error {
	if err := putPoint(w, t.P); err != nil {
		return err
	}
	return putPoint(w, t.Q)
}

// DecodeTag decodes an amac.Tag written by Tag.
func DecodeTag(r io.Reader) (amac.Tag, error) {
	p, err := readPoint(r)
	if err != nil {
		return amac.Tag{}, err
	}
	q, err := readPoint(r)
	if err != nil {
		return amac.Tag{}, err
	}
	return amac.Tag{P: p, Q: q}, nil
}

// PublicKey encodes an amac.PublicKey as X1 || ... || Xn, n*32 bytes with no
// length prefix: n is recovered from context (the caller's attribute count)
// rather than carried on the wire.
func PublicKey(w io.Writer, pk *amac.PublicKey) error {
	for _, x := range pk.X {
		if err := putPoint(w, x); err != nil {
			return err
		}
	}
	return nil
}

// DecodePublicKey decodes an amac.PublicKey written by PublicKey. n is the
// attribute count, supplied by the caller since it is not encoded on the
// wire.
func DecodePublicKey(r io.Reader, n int) (*amac.PublicKey, error) {
	x := make([]group.Point, n)
	for i := range x {
		p, err := readPoint(r)
		if err != nil {
			return nil, err
		}
		x[i] = p
	}
	return &amac.PublicKey{X: x}, nil
}

// SecretKey encodes an amac.SecretKey as x0 || x1 || ... || xn, (n+1)*32
// bytes with no length prefix.
func SecretKey(w io.Writer, sk *amac.SecretKey) error {
	if err := putScalar(w, sk.X0()); err != nil {
		return err
	}
	for i := 0; i < sk.N(); i++ {
		if err := putScalar(w, sk.Xi(i)); err != nil {
			return err
		}
	}
	return nil
}

// DecodeSecretKey decodes an amac.SecretKey written by SecretKey. n is the
// attribute count, supplied by the caller since it is not encoded on the
// wire.
func DecodeSecretKey(r io.Reader, n int) (*amac.SecretKey, error) {
	x0, err := readScalar(r)
	if err != nil {
		return nil, err
	}
	xi := make([]group.Scalar, n)
	for i := range xi {
		xi[i], err = readScalar(r)
		if err != nil {
			return nil, err
		}
	}
	return amac.NewSecretKey(x0, xi), nil
}

// Keypair encodes the issuer aMAC keypair as PublicKey || SecretKey.
func Keypair(w io.Writer, pk *amac.PublicKey, sk *amac.SecretKey) error {
	if err := PublicKey(w, pk); err != nil {
		return err
	}
	return SecretKey(w, sk)
}

// DecodeKeypair decodes a Keypair written by Keypair. It reads r to
// exhaustion and recovers n from the total length (PublicKey is n*32 bytes,
// SecretKey is (n+1)*32 bytes, so total = (2n+1)*32), per the wire schema's
// layout note that n need not be carried explicitly here.
func DecodeKeypair(r io.Reader) (*amac.PublicKey, *amac.SecretKey, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, ErrEncoding
	}
	if len(data)%group.PointSize != 0 {
		return nil, nil, ErrEncoding
	}
	units := len(data) / group.PointSize
	if units < 1 || units%2 == 0 {
		return nil, nil, ErrEncoding
	}
	n := (units - 1) / 2

	buf := bytes.NewReader(data)
	pk, err := DecodePublicKey(buf, n)
	if err != nil {
		return nil, nil, err
	}
	sk, err := DecodeSecretKey(buf, n)
	if err != nil {
		return nil, nil, err
	}
	return pk, sk, nil
}

// SystemParameters encodes a params.System as G || H, 64 bytes.
func SystemParameters(w io.Writer, sys params.System) error {
	if err := putPoint(w, sys.G); err != nil {
		return err
	}
	return putPoint(w, sys.H)
}

// DecodeSystemParameters decodes a params.System written by
// SystemParameters.
func DecodeSystemParameters(r io.Reader) (params.System, error) {
	g, err := readPoint(r)
	if err != nil {
		return params.System{}, err
	}
	h, err := readPoint(r)
	if err != nil {
		return params.System{}, err
	}
	return params.System{G: g, H: h}, nil
}

// Pedersen encodes a commit.Pedersen as its single compressed point.
func Pedersen(w io.Writer, c commit.Pedersen) error {
	return putPoint(w, c.C)
}

// DecodePedersen decodes a commit.Pedersen written by Pedersen.
func DecodePedersen(r io.Reader) (commit.Pedersen, error) {
	c, err := readPoint(r)
	if err != nil {
		return commit.Pedersen{}, err
	}
	return commit.Pedersen{C: c}, nil
}

// Ciphertext encodes a commit.Ciphertext as C1 || C2.
func Ciphertext(w io.Writer, c commit.Ciphertext) error {
	if err := putPoint(w, c.C1); err != nil {
		return err
	}
	return putPoint(w, c.C2)
}

// DecodeCiphertext decodes a commit.Ciphertext written by Ciphertext.
func DecodeCiphertext(r io.Reader) (commit.Ciphertext, error) {
	c1, err := readPoint(r)
	if err != nil {
		return commit.Ciphertext{}, err
	}
	c2, err := readPoint(r)
	if err != nil {
		return commit.Ciphertext{}, err
	}
	return commit.Ciphertext{C1: c1, C2: c2}, nil
}

// ValidCredentialProof encodes a nizk.ValidCredentialProof as
// challenge || sm1 || ... || smn || sz1 || ... || szn || szQ, with no length
// prefixes: n is recovered from the enclosing Presentation's Cm field.
func ValidCredentialProof(w io.Writer, p *nizk.ValidCredentialProof) error {
	if err := putScalar(w, p.Challenge); err != nil {
		return err
	}
	for _, s := range p.SM {
		if err := putScalar(w, s); err != nil {
			return err
		}
	}
	for _, s := range p.SZ {
		if err := putScalar(w, s); err != nil {
			return err
		}
	}
	return putScalar(w, p.SZQ)
}

// DecodeValidCredentialProof decodes a nizk.ValidCredentialProof written by
// ValidCredentialProof. n is the attribute count, supplied by the caller
// since it is not encoded on the wire.
func DecodeValidCredentialProof(r io.Reader, n int) (*nizk.ValidCredentialProof, error) {
	c, err := readScalar(r)
	if err != nil {
		return nil, err
	}
	sm := make([]group.Scalar, n)
	for i := range sm {
		sm[i], err = readScalar(r)
		if err != nil {
			return nil, err
		}
	}
	sz := make([]group.Scalar, n)
	for i := range sz {
		sz[i], err = readScalar(r)
		if err != nil {
			return nil, err
		}
	}
	szq, err := readScalar(r)
	if err != nil {
		return nil, err
	}
	return &nizk.ValidCredentialProof{Challenge: c, SM: sm, SZ: sz, SZQ: szq}, nil
}

// CommittedValuesEqualProof encodes a nizk.CommittedValuesEqualProof.
func CommittedValuesEqualProof(w io.Writer, p *nizk.CommittedValuesEqualProof) error {
	for _, s := range []group.Scalar{p.Challenge, p.SM0, p.SZ0, p.SZ1} {
		if err := putScalar(w, s); err != nil {
			return err
		}
	}
	return nil
}

// DecodeCommittedValuesEqualProof decodes a nizk.CommittedValuesEqualProof
// written by CommittedValuesEqualProof.
func DecodeCommittedValuesEqualProof(r io.Reader) (*nizk.CommittedValuesEqualProof, error) {
	vals := make([]group.Scalar, 4)
	for i := range vals {
		s, err := readScalar(r)
		if err != nil {
			return nil, err
		}
		vals[i] = s
	}
	return &nizk.CommittedValuesEqualProof{Challenge: vals[0], SM0: vals[1], SZ0: vals[2], SZ1: vals[3]}, nil
}

// IssuanceRevealedProof encodes a nizk.IssuanceRevealedProof as
// challenge || sx0 || sx1 || ... || sxn || sxTilde0, with no length prefix:
// n is recovered from the enclosing Issuance's Credential.Attributes field.
func IssuanceRevealedProof(w io.Writer, p *nizk.IssuanceRevealedProof) error {
	if err := putScalar(w, p.Challenge); err != nil {
		return err
	}
	if err := putScalar(w, p.SX0); err != nil {
		return err
	}
	for _, s := range p.SXi {
		if err := putScalar(w, s); err != nil {
			return err
		}
	}
	return putScalar(w, p.SXTilde0)
}

// DecodeIssuanceRevealedProof decodes a nizk.IssuanceRevealedProof written
// by IssuanceRevealedProof. n is the attribute count, supplied by the
// caller since it is not encoded on the wire.
func DecodeIssuanceRevealedProof(r io.Reader, n int) (*nizk.IssuanceRevealedProof, error) {
	c, err := readScalar(r)
	if err != nil {
		return nil, err
	}
	sx0, err := readScalar(r)
	if err != nil {
		return nil, err
	}
	sxi := make([]group.Scalar, n)
	for i := range sxi {
		sxi[i], err = readScalar(r)
		if err != nil {
			return nil, err
		}
	}
	sxt, err := readScalar(r)
	if err != nil {
		return nil, err
	}
	return &nizk.IssuanceRevealedProof{Challenge: c, SX0: sx0, SXi: sxi, SXTilde0: sxt}, nil
}

// RosterOpeningProof encodes a nizk.RosterOpeningProof.
func RosterOpeningProof(w io.Writer, p *nizk.RosterOpeningProof) error {
	if err := putScalar(w, p.Challenge); err != nil {
		return err
	}
	return putScalar(w, p.SZEntry)
}

// DecodeRosterOpeningProof decodes a nizk.RosterOpeningProof written by
// RosterOpeningProof.
func DecodeRosterOpeningProof(r io.Reader) (*nizk.RosterOpeningProof, error) {
	c, err := readScalar(r)
	if err != nil {
		return nil, err
	}
	sz, err := readScalar(r)
	if err != nil {
		return nil, err
	}
	return &nizk.RosterOpeningProof{Challenge: c, SZEntry: sz}, nil
}
