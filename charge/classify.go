package charge

// FieldPresent reports whether the configuration produces a field anywhere.
// It detects the cancellation symmetries a user can build by stacking charges,
// letting callers skip field, potential and trace work entirely.
//
// Rules, in order, against active count N and net charge:
//  1. Net charge nonzero: field present (Gauss's law).
//  2. N = 0: no field.
//  3. N = 2: no field only when both charges sit within minDistanceScale of
//     each other (squared distance check, same tolerance the evaluator clamps
//     with).
//  4. N = 4: no field when the two negative positions exactly match the two
//     positive positions as an unordered pairing (a stacked double dipole).
//  5. Anything else: field present.
//
// Cancellation for N >= 6 is intentionally not detected; the cost of checking
// every pairing outgrows the value of catching ever-rarer stacked
// configurations. The N=2 distance tolerance vs N=4 exact equality asymmetry
// is likewise deliberate and load-bearing for downstream behavior.
func FieldPresent(s *Set, minDistanceScale float64) bool {
	if s.NetCharge() != 0 {
		return true
	}

	switch s.Count() {
	case 0:
		return false
	case 2:
		a, b := s.At(0), s.At(1)
		return a.Position.DistanceSq(b.Position) >= minDistanceScale
	case 4:
		return !isDoubleDipole(s)
	default:
		return true
	}
}

// isDoubleDipole checks whether four net-zero charges form two exactly
// overlapping +/- pairs. Net charge zero with N=4 guarantees two of each sign.
func isDoubleDipole(s *Set) bool {
	var pos, neg []PointCharge
	for _, c := range s.All() {
		if c.Sign == Positive {
			pos = append(pos, c)
		} else {
			neg = append(neg, c)
		}
	}
	if len(pos) != 2 || len(neg) != 2 {
		return false
	}

	// Two possible unordered pairings, exact position equality
	straight := neg[0].Position == pos[0].Position && neg[1].Position == pos[1].Position
	crossed := neg[0].Position == pos[1].Position && neg[1].Position == pos[0].Position
	return straight || crossed
}
