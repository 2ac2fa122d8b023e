// Package resolver merges direct repository collaborators with admin-team
// members into a deduplicated, ordered admin set, mapping every failure mode
// to a reportable outcome instead of surfacing a raw error.
package resolver

import (
	"context"
	"log/slog"

	"github.com/alan/repo-admins/internal/github"
)

// Query is the immutable input for one resolution run. The issue coordinates
// may differ from the target repository (cross-repo tracking issues).
type Query struct {
	Org                    string
	TargetRepo             string
	IssueOrg               string
	IssueRepo              string
	IssueNumber            int
	CloseIssueOnCompletion bool
}

// AdminAPI is the slice of the GitHub transport the resolver consumes
type AdminAPI interface {
	GetRepo(ctx context.Context, org, repo string) (*github.Repo, error)
	ListDirectCollaborators(ctx context.Context, org, repo string) ([]github.Collaborator, error)
	ListRepoTeams(ctx context.Context, org, repo string) ([]github.Team, error)
	ListTeamMembers(ctx context.Context, org, slug string) ([]string, error)
	GetUserEmail(ctx context.Context, login string) (string, error)
}

// adminPermission is the repository permission that marks a team as an admin team
const adminPermission = "admin"

// Resolve runs the admin resolution pipeline for query. Failures in the
// existence check, collaborator listing, and team listing are terminal and
// halt the pipeline; a member lookup failure for one team is recorded and the
// remaining teams are still processed.
func Resolve(ctx context.Context, api AdminAPI, query Query) Result {
	if _, err := api.GetRepo(ctx, query.Org, query.TargetRepo); err != nil {
		if github.IsNotFound(err) {
			slog.Warn("target repository not found", "org", query.Org, "repo", query.TargetRepo)
			return Result{Outcome: Outcome{Kind: OutcomeRepoNotFound}}
		}
		return Result{Outcome: Outcome{Kind: OutcomeVerificationError, Message: err.Error()}}
	}

	admins := NewAdminSet()

	collaborators, err := api.ListDirectCollaborators(ctx, query.Org, query.TargetRepo)
	if err != nil {
		return Result{Outcome: Outcome{Kind: OutcomeCollaboratorLookupError, Message: err.Error()}}
	}
	for _, collaborator := range collaborators {
		if collaborator.Admin {
			admins.Add(collaborator.Login)
		}
	}
	slog.Debug("collected direct admins", "count", admins.Len())

	teams, err := api.ListRepoTeams(ctx, query.Org, query.TargetRepo)
	if err != nil {
		return Result{Outcome: Outcome{Kind: OutcomeTeamLookupError, Message: err.Error()}}
	}

	var teamFailures []TeamFailure
	for _, team := range teams {
		if team.Permission != adminPermission {
			continue
		}

		members, err := api.ListTeamMembers(ctx, query.Org, team.Slug)
		if err != nil {
			slog.Warn("team member lookup failed", "team", team.Name, "error", err)
			teamFailures = append(teamFailures, TeamFailure{TeamName: team.Name, Message: err.Error()})
			continue
		}

		for _, login := range members {
			admins.Add(login)
		}
	}

	if admins.Len() == 0 {
		return Result{Outcome: Outcome{Kind: OutcomeNoAdminsFound}, TeamFailures: teamFailures}
	}

	emails := make([]string, 0, admins.Len())
	for _, login := range admins.Logins() {
		email, err := api.GetUserEmail(ctx, login)
		if err != nil {
			// The entry keeps its line in the report, with an empty email
			slog.Warn("user profile lookup failed", "login", login, "error", err)
			email = ""
		}
		emails = append(emails, email)
	}

	return Result{Outcome: Outcome{Kind: OutcomeSuccess, Emails: emails}, TeamFailures: teamFailures}
}
