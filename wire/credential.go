package wire

import (
	"io"

	"anoncred/credential"
)

// Credential encodes a credential.Credential.
func Credential(w io.Writer, c credential.Credential) error {
	if err := putScalars(w, c.Attributes); err != nil {
		return err
	}
	return Tag(w, c.Tag)
}

// DecodeCredential decodes a credential.Credential written by Credential.
func DecodeCredential(r io.Reader) (credential.Credential, error) {
	attrs, err := readScalars(r)
	if err != nil {
		return credential.Credential{}, err
	}
	tag, err := DecodeTag(r)
	if err != nil {
		return credential.Credential{}, err
	}
	return credential.Credential{Attributes: attrs, Tag: tag}, nil
}

// RosterEntry encodes a credential.RosterEntry.
func RosterEntry(w io.Writer, e credential.RosterEntry) error {
	return Pedersen(w, e.CommittedAttribute)
}

// DecodeRosterEntry decodes a credential.RosterEntry written by RosterEntry.
func DecodeRosterEntry(r io.Reader) (credential.RosterEntry, error) {
	p, err := DecodePedersen(r)
	if err != nil {
		return credential.RosterEntry{}, err
	}
	return credential.RosterEntry{CommittedAttribute: p}, nil
}

// Request encodes a credential.Request.
func Request(w io.Writer, req *credential.Request) error {
	if err := putScalars(w, req.RevealedAttributes); err != nil {
		return err
	}
	if err := RosterEntry(w, req.RosterEntry); err != nil {
		return err
	}
	return RosterOpeningProof(w, req.Proof)
}

// DecodeRequest decodes a credential.Request written by Request.
func DecodeRequest(r io.Reader) (*credential.Request, error) {
	attrs, err := readScalars(r)
	if err != nil {
		return nil, err
	}
	entry, err := DecodeRosterEntry(r)
	if err != nil {
		return nil, err
	}
	proof, err := DecodeRosterOpeningProof(r)
	if err != nil {
		return nil, err
	}
	return &credential.Request{RevealedAttributes: attrs, RosterEntry: entry, Proof: proof}, nil
}

// Issuance encodes a credential.Issuance.
func Issuance(w io.Writer, iss *credential.Issuance) error {
	if err := Credential(w, iss.Credential); err != nil {
		return err
	}
	if err := putPoint(w, iss.Cx0); err != nil {
		return err
	}
	return IssuanceRevealedProof(w, iss.Proof)
}

// DecodeIssuance decodes a credential.Issuance written by Issuance. The
// embedded IssuanceRevealedProof has no length prefix of its own; its
// arity is recovered from the already-decoded Credential.Attributes.
func DecodeIssuance(r io.Reader) (*credential.Issuance, error) {
	cred, err := DecodeCredential(r)
	if err != nil {
		return nil, err
	}
	cx0, err := readPoint(r)
	if err != nil {
		return nil, err
	}
	proof, err := DecodeIssuanceRevealedProof(r, len(cred.Attributes))
	if err != nil {
		return nil, err
	}
	return &credential.Issuance{Credential: cred, Cx0: cx0, Proof: proof}, nil
}

// Presentation encodes a credential.Presentation.
func Presentation(w io.Writer, p *credential.Presentation) error {
	if err := putPoint(w, p.P); err != nil {
		return err
	}
	if err := putPoint(w, p.CQ); err != nil {
		return err
	}
	if err := putPoints(w, p.Cm); err != nil {
		return err
	}
	if err := ValidCredentialProof(w, p.ValidityProof); err != nil {
		return err
	}
	if err := CommittedValuesEqualProof(w, p.RosterProof); err != nil {
		return err
	}
	return RosterEntry(w, p.RosterEntry)
}

// DecodePresentation decodes a credential.Presentation written by
// Presentation. The embedded ValidCredentialProof has no length prefix of
// its own; its arity is recovered from the already-decoded Cm field.
func DecodePresentation(r io.Reader) (*credential.Presentation, error) {
	pPoint, err := readPoint(r)
	if err != nil {
		return nil, err
	}
	cq, err := readPoint(r)
	if err != nil {
		return nil, err
	}
	cm, err := readPoints(r)
	if err != nil {
		return nil, err
	}
	validity, err := DecodeValidCredentialProof(r, len(cm))
	if err != nil {
		return nil, err
	}
	roster, err := DecodeCommittedValuesEqualProof(r)
	if err != nil {
		return nil, err
	}
	entry, err := DecodeRosterEntry(r)
	if err != nil {
		return nil, err
	}
	return &credential.Presentation{
		P: pPoint, CQ: cq, Cm: cm,
		ValidityProof: validity, RosterProof: roster,
		RosterEntry: entry,
	}, nil
}

// Roster encodes a credential.Roster as GroupID followed by its three
// tiers, owners first.
func Roster(w io.Writer, roster *credential.Roster) error {
	idBytes := []byte(roster.GroupID)
	if err := putUint64(w, uint64(len(idBytes))); err != nil {
		return err
	}
	if _, err := w.Write(idBytes); err != nil {
		return err
	}
	for _, tier := range [][]credential.RosterEntry{roster.Owners(), roster.Admins(), roster.Users()} {
		if err := putUint64(w, uint64(len(tier))); err != nil {
			return err
		}
		for _, e := range tier {
			if err := RosterEntry(w, e); err != nil {
				return err
			}
		}
	}
	return nil
}

// DecodeRoster decodes a credential.Roster written by Roster.
func DecodeRoster(r io.Reader) (*credential.Roster, error) {
	idLen, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	idBytes := make([]byte, idLen)
	if _, err := io.ReadFull(r, idBytes); err != nil {
		return nil, ErrEncoding
	}
	roster := credential.NewRoster(string(idBytes))
	for _, level := range []credential.Level{credential.Owner, credential.Admin, credential.User} {
		n, err := readUint64(r)
		if err != nil {
			return nil, err
		}
		for i := uint64(0); i < n; i++ {
			e, err := DecodeRosterEntry(r)
			if err != nil {
				return nil, err
			}
			roster.Add(level, e)
		}
	}
	return roster, nil
}
