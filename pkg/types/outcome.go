package types

// Outcome is the terminal state of one group's resolution.
type Outcome string

const (
	// OutcomeResolved means the group has no conflicts left.
	OutcomeResolved Outcome = "resolved"

	// OutcomeStillConflicted means the retry budget ran out with conflicts remaining.
	OutcomeStillConflicted Outcome = "still_conflicted"

	// OutcomeUnresolvable means an iteration could not relocate anything.
	OutcomeUnresolvable Outcome = "unresolvable"

	// OutcomeLinkFailed means a standalone add failed.
	OutcomeLinkFailed Outcome = "link_failed"

	// OutcomeAborted means a fresh status could not be fetched mid-resolution.
	OutcomeAborted Outcome = "aborted"
)

// IsFailure reports whether the outcome leaves the group needing attention.
func (o Outcome) IsFailure() bool {
	return o != OutcomeResolved
}

func (o Outcome) String() string {
	return string(o)
}

// GroupResult records what happened to one group.
type GroupResult struct {
	Group    string  `json:"group" yaml:"group"`
	Outcome  Outcome `json:"outcome" yaml:"outcome"`
	Attempts int     `json:"attempts" yaml:"attempts"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
}
