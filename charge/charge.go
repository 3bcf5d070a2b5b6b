package charge

import "github.com/zijianstudio/fieldline/geom"

// Sign is the polarity of a unit point charge, exactly +1 or -1.
type Sign int8

const (
	Positive Sign = 1
	Negative Sign = -1
)

func (s Sign) Valid() bool {
	return s == Positive || s == Negative
}

// PointCharge is a unit-magnitude point charge on the 2D plane.
// Position may be moved by the owner between evaluations; Sign never changes.
type PointCharge struct {
	Position geom.Vector2
	Sign     Sign
}

// Set is an ordered collection of active point charges. Order never affects
// field or potential results; only count and net charge matter for
// classification. Inactive charges are filtered out by the owner before they
// reach this package.
type Set struct {
	charges []PointCharge
}

// NewSet builds a set from the given charges. Charges with an invalid sign
// are dropped rather than rejected, the defensive posture for what would be a
// programmer error upstream.
func NewSet(charges ...PointCharge) *Set {
	s := &Set{charges: make([]PointCharge, 0, len(charges))}
	for _, c := range charges {
		s.Add(c)
	}
	return s
}

// Add appends a charge to the set. Invalid signs are ignored.
func (s *Set) Add(c PointCharge) {
	if !c.Sign.Valid() {
		return
	}
	s.charges = append(s.charges, c)
}

// RemoveLast drops the most recently added charge, returns false when empty.
func (s *Set) RemoveLast() bool {
	if len(s.charges) == 0 {
		return false
	}
	s.charges = s.charges[:len(s.charges)-1]
	return true
}

func (s *Set) Count() int {
	return len(s.charges)
}

// NetCharge returns the signed sum of all charges in units of e.
func (s *Set) NetCharge() int {
	net := 0
	for _, c := range s.charges {
		net += int(c.Sign)
	}
	return net
}

// At returns the charge at index i in insertion order.
func (s *Set) At(i int) PointCharge {
	return s.charges[i]
}

// All returns the backing slice for iteration. Callers must not mutate it;
// use Snapshot for an independent copy.
func (s *Set) All() []PointCharge {
	return s.charges
}

// Snapshot returns an independent copy of the set. Evaluators and tracers
// running on separate goroutines must each own a snapshot; nothing is shared
// afterwards so no locking is needed.
func (s *Set) Snapshot() *Set {
	cp := make([]PointCharge, len(s.charges))
	copy(cp, s.charges)
	return &Set{charges: cp}
}
