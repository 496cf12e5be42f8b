package wire

import (
	"io"

	"anoncred/credential"
	"anoncred/group"
	"anoncred/nizk"
)

func attributesBlindedProof(w io.Writer, p *nizk.AttributesBlindedProof) error {
	for _, s := range []group.Scalar{p.Challenge, p.SD, p.SE0, p.SM0} {
		if err := putScalar(w, s); err != nil {
			return err
		}
	}
	return nil
}

func decodeAttributesBlindedProof(r io.Reader) (*nizk.AttributesBlindedProof, error) {
	vals := make([]group.Scalar, 4)
	for i := range vals {
		s, err := readScalar(r)
		if err != nil {
			return nil, err
		}
		vals[i] = s
	}
	return &nizk.AttributesBlindedProof{Challenge: vals[0], SD: vals[1], SE0: vals[2], SM0: vals[3]}, nil
}

func issuanceBlindedProof(w io.Writer, p *nizk.IssuanceBlindedProof) error {
	for _, s := range []group.Scalar{p.Challenge, p.SXTilde0, p.SX0, p.SX1, p.SS, p.SB, p.ST0} {
		if err := putScalar(w, s); err != nil {
			return err
		}
	}
	return nil
}

func decodeIssuanceBlindedProof(r io.Reader) (*nizk.IssuanceBlindedProof, error) {
	vals := make([]group.Scalar, 7)
	for i := range vals {
		s, err := readScalar(r)
		if err != nil {
			return nil, err
		}
		vals[i] = s
	}
	return &nizk.IssuanceBlindedProof{
		Challenge: vals[0], SXTilde0: vals[1], SX0: vals[2], SX1: vals[3],
		SS: vals[4], SB: vals[5], ST0: vals[6],
	}, nil
}

// BlindRequest encodes a credential.BlindRequest.
func BlindRequest(w io.Writer, req *credential.BlindRequest) error {
	if err := putPoint(w, req.ElGamalPub); err != nil {
		return err
	}
	if err := Ciphertext(w, req.Ciphertext); err != nil {
		return err
	}
	if err := RosterEntry(w, req.RosterEntry); err != nil {
		return err
	}
	return attributesBlindedProof(w, req.Proof)
}

// DecodeBlindRequest decodes a credential.BlindRequest written by
// BlindRequest.
func DecodeBlindRequest(r io.Reader) (*credential.BlindRequest, error) {
	pub, err := readPoint(r)
	if err != nil {
		return nil, err
	}
	ct, err := DecodeCiphertext(r)
	if err != nil {
		return nil, err
	}
	entry, err := DecodeRosterEntry(r)
	if err != nil {
		return nil, err
	}
	proof, err := decodeAttributesBlindedProof(r)
	if err != nil {
		return nil, err
	}
	return &credential.BlindRequest{ElGamalPub: pub, Ciphertext: ct, RosterEntry: entry, Proof: proof}, nil
}

// BlindIssuance encodes a credential.BlindIssuance.
func BlindIssuance(w io.Writer, iss *credential.BlindIssuance) error {
	for _, p := range []group.Point{iss.P, iss.X0, iss.T0_0, iss.T0_1, iss.EQCommit, iss.EQEncrypt} {
		if err := putPoint(w, p); err != nil {
			return err
		}
	}
	if err := putScalar(w, iss.BXTilde0); err != nil {
		return err
	}
	return issuanceBlindedProof(w, iss.Proof)
}

// DecodeBlindIssuance decodes a credential.BlindIssuance written by
// BlindIssuance.
func DecodeBlindIssuance(r io.Reader) (*credential.BlindIssuance, error) {
	pts := make([]group.Point, 6)
	for i := range pts {
		p, err := readPoint(r)
		if err != nil {
			return nil, err
		}
		pts[i] = p
	}
	bxt, err := readScalar(r)
	if err != nil {
		return nil, err
	}
	proof, err := decodeIssuanceBlindedProof(r)
	if err != nil {
		return nil, err
	}
	return &credential.BlindIssuance{
		P: pts[0], X0: pts[1], T0_0: pts[2], T0_1: pts[3],
		EQCommit: pts[4], EQEncrypt: pts[5],
		BXTilde0: bxt, Proof: proof,
	}, nil
}
