// Package params holds the system-wide configuration shared by every party:
// the group bases (G, H) and the attribute-count / blind-mode configuration.
package params

import (
	"errors"

	"anoncred/group"
)

// ErrInvalidConfig is returned by Config.Validate when the requested
// configuration is not usable (e.g. zero attributes).
var ErrInvalidConfig = errors.New("params: invalid configuration")

// Config is the only configuration surface this module exposes: no
// environment variables, no config files.
type Config struct {
	// NumAttributes generalizes the original build-time N_ATTRIBUTES
	// constant into a runtime parameter. Must be >= 1.
	NumAttributes int
	// BlindMode enables the attributes_blinded / issuance_blinded NIZK
	// statements and the BlindObtain/BlindIssue protocol operations. When
	// false the protocol behaves exactly like the non-blind flow.
	BlindMode bool
}

// Default returns the reference configuration: one attribute, no blind
// issuance.
func Default() Config {
	return Config{NumAttributes: 1, BlindMode: false}
}

// Validate checks that c is usable.
func (c Config) Validate() error {
	if c.NumAttributes < 1 {
		return ErrInvalidConfig
	}
	return nil
}

// System is the pair (G, H) shared by every party in a deployment. H is
// derived from a caller-supplied 32-byte seed so that every deployment gets
// an independent, nothing-up-my-sleeve second generator whose discrete log
// relative to G is unknown to all parties.
type System struct {
	G group.Point
	H group.Point
}

// New derives a System from a 32-byte seed.
func New(seed [32]byte) System {
	return System{
		G: group.BasePoint(),
		H: group.HashToGroup("anoncred/system-parameters/H", seed[:]),
	}
}
