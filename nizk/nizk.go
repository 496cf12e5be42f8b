// Package nizk implements the six Schnorr-style zero-knowledge proof
// statements this credential scheme relies on: the five of the protocol
// design plus roster_opening. Each statement lives in its
// own file with its own Publics/Secrets/Proof shapes; they share only the
// transcript protocol in package transcript and a couple of small scalar
// arithmetic helpers below. The arithmetic relations differ per statement
// and are load-bearing for security review, so each is hand-written rather
// than routed through one generic "proof" abstraction.
package nizk

import (
	"errors"

	"anoncred/group"
	"anoncred/transcript"
)

// ErrVerificationFailure is returned by every statement's Verify when the
// resqueezed Fiat-Shamir challenge disagrees with the one stored in the
// proof.
var ErrVerificationFailure = errors.New("nizk: verification failure")

// respond computes a Schnorr response s = r + c*w (mod l).
func respond(r, c, w group.Scalar) group.Scalar {
	return r.Add(c.Mul(w))
}

// recompute undoes a response against a public point: given response s,
// challenge c and public point pub (the point the witness w satisfies
// pub = w*base for), returns s*base - c*pub, which must equal the prover's
// original first-message commitment r*base for the proof to be valid.
func recompute(s group.Scalar, base group.Point, c group.Scalar, pub group.Point) group.Point {
	return group.MultiScalarMulVartime(
		[]group.Scalar{s, c.Neg()},
		[]group.Point{base, pub},
	)
}

// challengeScalar squeezes and wide-reduces a challenge from t under label.
func challengeScalar(t *transcript.Transcript, label string) group.Scalar {
	return group.ScalarFromWideBytes(t.Challenge(label))
}
