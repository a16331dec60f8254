package engine

// Action is what a cycle did about the divergence between local and remote.
type Action int

const (
	// ActionNone means the branch was in sync or its distance undetermined.
	ActionNone Action = iota
	// ActionPush means local commits were pushed upstream.
	ActionPush
	// ActionPull means upstream commits were rebased into the local branch.
	ActionPull
)

func (a Action) String() string {
	switch a {
	case ActionPush:
		return "push"
	case ActionPull:
		return "pull"
	default:
		return "none"
	}
}

// ActionFor maps a divergence distance to the action that resolves it.
// Only the sign matters.
func ActionFor(distance int) Action {
	switch {
	case distance < 0:
		return ActionPush
	case distance > 0:
		return ActionPull
	default:
		return ActionNone
	}
}

// Result is the outcome of one sync cycle.
type Result struct {
	// ID correlates the log records of one cycle
	ID string

	// Commits is the number of commits the drain created
	Commits int

	// Distance is the divergence measured after the drain
	Distance int

	// Action is the remote action taken for Distance
	Action Action
}
