// Package transcript implements a domain-separated Fiat-Shamir transcript
// used throughout the nizk package. It absorbs labeled byte strings and
// squeezes uniform challenge material, following the same SHA-3 family the
// teacher library (avahowell/occlude) uses for its own hashing
// (golang.org/x/crypto/sha3), generalized from a single hash call into a
// duplex-style running state.
package transcript

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Transcript is a labeled duplex state. Append absorbs domain-separated
// data; Challenge squeezes uniform challenge bytes; Fork derives a
// witness-binding RNG. The sequence of Append calls is load-bearing: a
// prover and a verifier for the same statement must absorb identical bytes
// under identical labels in identical order.
type Transcript struct {
	state sha3.ShakeHash
}

// New starts a transcript for the named statement, absorbing
// append("domain-sep", statement) as the very first operation, per the
// protocol in nizk.
func New(statement string) *Transcript {
	t := &Transcript{state: sha3.NewCShake256(nil, []byte("anoncred/v1"))}
	t.Append("domain-sep", []byte(statement))
	return t
}

// Append absorbs a labeled, length-prefixed datum into the transcript.
func (t *Transcript) Append(label string, data []byte) {
	lb := make([]byte, 8)
	binary.LittleEndian.PutUint64(lb, uint64(len(label)))
	t.state.Write(lb)
	t.state.Write([]byte(label))
	db := make([]byte, 8)
	binary.LittleEndian.PutUint64(db, uint64(len(data)))
	t.state.Write(db)
	t.state.Write(data)
}

// AppendPoints is a convenience wrapper absorbing several labeled encoded
// group elements in order.
func (t *Transcript) AppendPoints(labels []string, encoded [][]byte) {
	for i, l := range labels {
		t.Append(l, encoded[i])
	}
}

// Challenge squeezes 64 bytes of uniform challenge material under the given
// label. The caller reduces these bytes to a scalar via wide reduction
// (group.ScalarFromWideBytes); a raw 32-byte reduction must never be used.
//
// Challenge does not consume the transcript's remaining entropy for later
// calls: each call reads from a label-separated clone so a statement may
// squeeze more than one challenge without the second depending on bytes
// already handed to the caller.
func (t *Transcript) Challenge(label string) [64]byte {
	t.Append("challenge-label", []byte(label))
	clone := t.state.Clone()
	var out [64]byte
	if _, err := io.ReadFull(clone, out[:]); err != nil {
		panic("transcript: squeeze failed")
	}
	return out
}

// WitnessRNG is a deterministic-but-rerandomized source of proof-randomness
// bytes, produced by Fork. It defeats nonce-reuse under a bad system RNG by
// mixing fresh entropy into a transcript state that has already absorbed
// the witnesses being proved about.
type WitnessRNG struct {
	stream io.Reader
}

// Read implements io.Reader.
func (w *WitnessRNG) Read(p []byte) (int, error) {
	return w.stream.Read(p)
}

// Fork clones the transcript, absorbs the supplied witness bytes (each
// prefixed by its index), reseeds from crypto/rand, and returns a
// WitnessRNG that expands that reseeded state into an arbitrary-length
// stream via a keyed Blake2b PRF over label and a block counter (the same
// primitive the teacher library uses for its own PRF in crypto.go).
func (t *Transcript) Fork(label string, witnesses [][]byte) *WitnessRNG {
	clone := t.state.Clone()
	for i, w := range witnesses {
		lb := make([]byte, 8)
		binary.LittleEndian.PutUint64(lb, uint64(i))
		clone.Write(lb)
		clone.Write(w)
	}

	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		panic("transcript: could not get entropy")
	}
	clone.Write(seed)

	var key [32]byte
	if _, err := io.ReadFull(clone, key[:]); err != nil {
		panic("transcript: fork failed")
	}

	return &WitnessRNG{stream: &prfReader{key: key, counter: 0, label: []byte(label)}}
}

// prfReader expands a 32-byte key into an arbitrary-length stream using
// keyed Blake2b over an incrementing counter, mirroring the teacher's prf
// helper (crypto.go) generalized from a single fixed-size output into a
// streaming io.Reader.
type prfReader struct {
	key     [32]byte
	label   []byte
	counter uint64
	buf     []byte
}

func (p *prfReader) Read(out []byte) (int, error) {
	n := 0
	for n < len(out) {
		if len(p.buf) == 0 {
			h, err := blake2b.New256(p.key[:])
			if err != nil {
				return n, err
			}
			h.Write(p.label)
			var cb [8]byte
			binary.LittleEndian.PutUint64(cb[:], p.counter)
			h.Write(cb[:])
			p.buf = h.Sum(nil)
			p.counter++
		}
		c := copy(out[n:], p.buf)
		p.buf = p.buf[c:]
		n += c
	}
	return n, nil
}
