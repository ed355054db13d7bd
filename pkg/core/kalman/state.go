package kalman

import "gonum.org/v1/gonum/mat"

// StateVector is the dense numeric view of a kinematic state over a given
// attribute pack, plus named accessors for the packed attributes.
type StateVector struct {
	Pack AttributePack
	V    *mat.VecDense
	idx  [numAttributes]int
}

// NewStateVector allocates a zeroed state vector over pack.
func NewStateVector(pack AttributePack) *StateVector {
	s := &StateVector{Pack: pack, V: mat.NewVecDense(pack.Len(), nil)}
	for i := range s.idx {
		s.idx[i] = -1
	}
	for i, a := range pack {
		s.idx[a] = i
	}
	return s
}

// Get returns the value of attribute a and whether it is present in the pack.
func (s *StateVector) Get(a Attribute) (float64, bool) {
	i := s.idx[a]
	if i < 0 {
		return 0, false
	}
	return s.V.AtVec(i), true
}

// Set writes the value of attribute a, returning false if a is not in the pack.
func (s *StateVector) Set(a Attribute, v float64) bool {
	i := s.idx[a]
	if i < 0 {
		return false
	}
	s.V.SetVec(i, v)
	return true
}

// IndexOf exposes the attribute->index mapping (-1 if not present).
func (s *StateVector) IndexOf(a Attribute) int { return s.idx[a] }

func (s *StateVector) X() float64 { v, _ := s.Get(PosX); return v }
func (s *StateVector) Y() float64 { v, _ := s.Get(PosY); return v }

func (s *StateVector) VelX() float64 { v, _ := s.Get(VelX); return v }
func (s *StateVector) VelY() float64 { v, _ := s.Get(VelY); return v }
func (s *StateVector) AccX() float64 { v, _ := s.Get(AccX); return v }
func (s *StateVector) AccY() float64 { v, _ := s.Get(AccY); return v }

func (s *StateVector) Roll() float64  { v, _ := s.Get(Roll); return v }
func (s *StateVector) Pitch() float64 { v, _ := s.Get(Pitch); return v }
func (s *StateVector) Yaw() float64   { v, _ := s.Get(Yaw); return v }

func (s *StateVector) RollRate() float64  { v, _ := s.Get(RollRate); return v }
func (s *StateVector) PitchRate() float64 { v, _ := s.Get(PitchRate); return v }
func (s *StateVector) YawRate() float64   { v, _ := s.Get(YawRate); return v }

// Clone returns a deep copy of the state vector.
func (s *StateVector) Clone() *StateVector {
	c := NewStateVector(s.Pack)
	c.V.CopyVec(s.V)
	return c
}
