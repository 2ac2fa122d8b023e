// Package report turns a resolution result into comments on the tracking
// issue, and optionally closes the issue once the run completed.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alan/repo-admins/internal/resolver"
)

// IssueAPI is the slice of the GitHub transport the reporter consumes
type IssueAPI interface {
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
	CloseIssue(ctx context.Context, owner, repo string, number int) error
}

// Report posts one comment per team failure followed by exactly one comment
// for the terminal outcome, every body mentioning actor. Comments always
// precede the close mutation, and the issue is only closed after a completed
// run (success or an empty admin set), never after an early failure.
func Report(ctx context.Context, api IssueAPI, query resolver.Query, actor string, result resolver.Result) error {
	for _, failure := range result.TeamFailures {
		body := renderTeamFailure(actor, failure)
		if err := api.CreateComment(ctx, query.IssueOrg, query.IssueRepo, query.IssueNumber, body); err != nil {
			return fmt.Errorf("failed to post team failure comment for %q: %w", failure.TeamName, err)
		}
		slog.Info("posted team failure comment", "team", failure.TeamName)
	}

	body := renderOutcome(actor, query, result.Outcome)
	if err := api.CreateComment(ctx, query.IssueOrg, query.IssueRepo, query.IssueNumber, body); err != nil {
		return fmt.Errorf("failed to post outcome comment: %w", err)
	}
	slog.Info("posted outcome comment", "outcome", string(result.Outcome.Kind))

	if query.CloseIssueOnCompletion && completed(result.Outcome.Kind) {
		if err := api.CloseIssue(ctx, query.IssueOrg, query.IssueRepo, query.IssueNumber); err != nil {
			return fmt.Errorf("failed to close issue %s/%s#%d: %w", query.IssueOrg, query.IssueRepo, query.IssueNumber, err)
		}
		slog.Info("closed tracking issue", "issue", fmt.Sprintf("%s/%s#%d", query.IssueOrg, query.IssueRepo, query.IssueNumber))
	}

	return nil
}

// completed reports whether the run reached a terminal state that allows
// closing the tracking issue. An empty admin set counts as a completed, if
// empty, result.
func completed(kind resolver.OutcomeKind) bool {
	return kind == resolver.OutcomeSuccess || kind == resolver.OutcomeNoAdminsFound
}

// renderTeamFailure renders the comment body for a single failing team
func renderTeamFailure(actor string, failure resolver.TeamFailure) string {
	return fmt.Sprintf("@%s An error occurred while retrieving members of team %q: %s",
		actor, failure.TeamName, failure.Message)
}

// renderOutcome renders the single comment body for the terminal outcome
func renderOutcome(actor string, query resolver.Query, outcome resolver.Outcome) string {
	mention := "@" + actor

	switch outcome.Kind {
	case resolver.OutcomeRepoNotFound:
		return fmt.Sprintf("%s Repository %q does not exist in organization %q. Please check the organization and repository names.",
			mention, query.TargetRepo, query.Org)

	case resolver.OutcomeVerificationError:
		return fmt.Sprintf("%s An error occurred while verifying repository %s/%s: %s",
			mention, query.Org, query.TargetRepo, outcome.Message)

	case resolver.OutcomeCollaboratorLookupError:
		return fmt.Sprintf("%s An error occurred while retrieving direct admins for %s/%s: %s",
			mention, query.Org, query.TargetRepo, outcome.Message)

	case resolver.OutcomeTeamLookupError:
		return fmt.Sprintf("%s An error occurred while retrieving teams for %s/%s: %s",
			mention, query.Org, query.TargetRepo, outcome.Message)

	case resolver.OutcomeNoAdminsFound:
		return fmt.Sprintf("%s No admins found for repository %s/%s.",
			mention, query.Org, query.TargetRepo)

	case resolver.OutcomeSuccess:
		var b strings.Builder
		fmt.Fprintf(&b, "%s Admins for https://github.com/%s/%s:", mention, query.Org, query.TargetRepo)
		for _, email := range outcome.Emails {
			fmt.Fprintf(&b, "\n- %s", email)
		}
		return b.String()
	}

	return fmt.Sprintf("%s Admin resolution finished in an unknown state.", mention)
}
