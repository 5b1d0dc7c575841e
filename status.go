package formkit

// Status describes the validation state of a control. A control has exactly
// one status at any time, derived from its own validators, its async runs in
// flight, and (for composites) the statuses of its enabled children.
type Status string

const (
	// StatusValid means every sync validator passed and every async validator
	// has settled without reporting errors.
	StatusValid Status = "valid"

	// StatusInvalid means at least one validator reported errors. For a
	// composite it also covers the case where any enabled child is invalid.
	StatusInvalid Status = "invalid"

	// StatusPending means at least one async validator is still running and
	// nothing has reported errors yet. Pending is provisional: it always
	// resolves to valid or invalid once the outstanding runs settle.
	StatusPending Status = "pending"

	// StatusDisabled means the control is exempt from validation. Disabled
	// controls carry no errors and are skipped by composite aggregation.
	StatusDisabled Status = "disabled"
)

// String implements fmt.Stringer.
func (s Status) String() string { return string(s) }

// combine folds a child status into an aggregate. Invalid dominates pending,
// pending dominates valid, and disabled children never participate.
func (s Status) combine(child Status) Status {
	switch {
	case child == StatusDisabled:
		return s
	case s == StatusInvalid || child == StatusInvalid:
		return StatusInvalid
	case s == StatusPending || child == StatusPending:
		return StatusPending
	default:
		return StatusValid
	}
}
