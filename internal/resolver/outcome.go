package resolver

// OutcomeKind identifies the terminal state of a resolution run
type OutcomeKind string

const (
	// OutcomeRepoNotFound indicates the target repository does not exist
	OutcomeRepoNotFound OutcomeKind = "repo_not_found"
	// OutcomeVerificationError indicates the existence check failed for another reason
	OutcomeVerificationError OutcomeKind = "verification_error"
	// OutcomeCollaboratorLookupError indicates the direct collaborator listing failed
	OutcomeCollaboratorLookupError OutcomeKind = "collaborator_lookup_error"
	// OutcomeTeamLookupError indicates the team listing failed
	OutcomeTeamLookupError OutcomeKind = "team_lookup_error"
	// OutcomeNoAdminsFound indicates the merged admin set came up empty
	OutcomeNoAdminsFound OutcomeKind = "no_admins_found"
	// OutcomeSuccess indicates admins were resolved
	OutcomeSuccess OutcomeKind = "success"
)

// Outcome is the single terminal state of a resolution run
type Outcome struct {
	Kind    OutcomeKind
	Message string   // underlying failure message, passed through verbatim, for error kinds
	Emails  []string // admin emails in admin-set order, for OutcomeSuccess
}

// TeamFailure records a member lookup failure for a single admin team. One
// failing team does not abort processing of the remaining teams.
type TeamFailure struct {
	TeamName string
	Message  string
}

// Result is everything a resolution run produced: exactly one terminal
// outcome plus zero or more per-team failures.
type Result struct {
	Outcome      Outcome
	TeamFailures []TeamFailure
}

// Succeeded reports whether the terminal outcome is a success
func (r Result) Succeeded() bool {
	return r.Outcome.Kind == OutcomeSuccess
}
