package leave

import "slices"

// ValidateCreate checks the request payload before it is stored. The
// date range is inclusive, so a single-day leave has start == end.
func ValidateCreate(in CreateInput) error {
	if !slices.Contains(Kinds, in.Kind) {
		return ErrInvalidKind
	}
	if in.EndDate.Before(in.StartDate) {
		return ErrInvalidRange
	}
	return nil
}

// Decidable reports whether a request can still be approved or
// rejected. Approved and rejected are terminal.
func Decidable(status string) bool {
	return status == StatusRequested
}

// Days returns the inclusive number of calendar days covered.
func (r Request) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}
