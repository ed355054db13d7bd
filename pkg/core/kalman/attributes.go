// Package kalman implements the attribute-pack/state-vector template, the
// generic Kalman filter core (predict/update), and a concrete constant-
// acceleration-with-yaw ego model (spec §3 Kinematic state vector, §4.7 C7).
//
// The spec's compile-time attribute pack is rendered, per design note §9
// option (b), as a runtime-checked ordered, duplicate-free array of
// Attribute values plus a dense numeric vector -- "no duplicates" and
// "attribute -> index is injective" are enforced once, at AttributePack
// construction time.
package kalman

import "fmt"

// Attribute is one dimension a kinematic state vector may carry.
type Attribute int

const (
	PosX Attribute = iota
	PosY
	Vel
	VelX
	VelY
	Acc
	AccX
	AccY
	Roll
	Pitch
	Yaw
	RollRate
	PitchRate
	YawRate

	numAttributes
)

func (a Attribute) String() string {
	names := [numAttributes]string{
		"POS_X", "POS_Y", "VEL", "VEL_X", "VEL_Y", "ACC", "ACC_X", "ACC_Y",
		"ROLL", "PITCH", "YAW", "ROLL_RATE", "PITCH_RATE", "YAW_RATE",
	}
	if a < 0 || int(a) >= len(names) {
		return "UNKNOWN"
	}
	return names[a]
}

// isAngle reports whether an attribute denotes an angular quantity whose
// innovation must be wrapped into (-pi, pi] before a Kalman gain is applied.
func isAngle(a Attribute) bool {
	return a == Roll || a == Pitch || a == Yaw
}

// AttributePack is a compile-time-ordered (here: construction-time-checked),
// duplicate-free list of attributes selecting the dimensions of a state
// vector.
type AttributePack []Attribute

// NewAttributePack validates that attrs contains no duplicates and returns
// it as a pack preserving the given order.
func NewAttributePack(attrs ...Attribute) (AttributePack, error) {
	seen := make(map[Attribute]bool, len(attrs))
	for _, a := range attrs {
		if a < 0 || int(a) >= int(numAttributes) {
			return nil, fmt.Errorf("kalman: invalid attribute %d", a)
		}
		if seen[a] {
			return nil, fmt.Errorf("kalman: duplicate attribute %s in pack", a)
		}
		seen[a] = true
	}
	pack := make(AttributePack, len(attrs))
	copy(pack, attrs)
	return pack, nil
}

// MustAttributePack is NewAttributePack but panics on error, for use in
// package-level var initialisers of fixed, known-good packs.
func MustAttributePack(attrs ...Attribute) AttributePack {
	p, err := NewAttributePack(attrs...)
	if err != nil {
		panic(err)
	}
	return p
}

// IndexOf returns the position of a within the pack, and whether it is present.
func (p AttributePack) IndexOf(a Attribute) (int, bool) {
	for i, v := range p {
		if v == a {
			return i, true
		}
	}
	return -1, false
}

// Len returns the number of attributes in the pack.
func (p AttributePack) Len() int { return len(p) }
