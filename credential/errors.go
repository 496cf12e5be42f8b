package credential

import "errors"

// Error taxonomy for the credential protocol layer.
var (
	// ErrBadAttribute is returned when a caller-supplied identifier does
	// not hash to the revealed scalar claimed in a Request.
	ErrBadAttribute = errors.New("credential: identifier does not match revealed attribute")
	// ErrVerificationFailure wraps a NIZK proof failure surfaced by this
	// package's operations.
	ErrVerificationFailure = errors.New("credential: proof verification failed")
	// ErrMissingData is returned when an operation lacks the data it needs
	// (e.g. VerifyRosterMembership on a VerifiedCredential with no attribute
	// commitments).
	ErrMissingData = errors.New("credential: missing data for this operation")
	// ErrRoster is returned when a roster-membership check fails, either
	// because the entry is absent at the required level or because its
	// membership proof does not verify.
	ErrRoster = errors.New("credential: roster membership check failed")
	// ErrMacMisconfig is returned when an attribute vector's length does not
	// match the configured attribute count, or when a blind operation is
	// called without BlindMode or with more than one attribute.
	ErrMacMisconfig = errors.New("credential: mac key/attribute length mismatch")
	// ErrDegenerateTag is returned when a presentation's rerandomized
	// nonce equals the base point G.
	ErrDegenerateTag = errors.New("credential: degenerate tag nonce")
)
