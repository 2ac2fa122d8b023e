// Package github wraps the GitHub REST API with the operations and error
// taxonomy the admin resolution pipeline needs.
package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// pageSize is used for every paginated listing
const pageSize = 100

// Client wraps the GitHub API client
type Client struct {
	client *github.Client
	retry  *RetryConfig
}

// NewClient creates a new GitHub client with token authentication
func NewClient(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		client: github.NewClient(tc),
		retry:  DefaultRetryConfig(),
	}
}

// GetRepo fetches repository metadata, failing with a not-found classified
// error for missing repositories.
func (c *Client) GetRepo(ctx context.Context, org, repo string) (*Repo, error) {
	var ghRepo *github.Repository

	err := WithRetry(ctx, func() error {
		var err error
		ghRepo, _, err = c.client.Repositories.Get(ctx, org, repo)
		if err != nil {
			return WrapError(err, fmt.Sprintf("repository %s/%s", org, repo))
		}
		return nil
	}, c.retry)

	if err != nil {
		return nil, err
	}

	return &Repo{
		Name:     ghRepo.GetName(),
		FullName: ghRepo.GetFullName(),
		Private:  ghRepo.GetPrivate(),
	}, nil
}

// ListDirectCollaborators lists collaborators granted access on the repository
// itself (affiliation=direct), with their admin permission flag
func (c *Client) ListDirectCollaborators(ctx context.Context, org, repo string) ([]Collaborator, error) {
	opts := &github.ListCollaboratorsOptions{
		Affiliation: "direct",
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	var allCollaborators []Collaborator

	err := WithRetry(ctx, func() error {
		allCollaborators = nil // Reset on retry
		opts.Page = 0          // Reset pagination on retry

		for {
			collaborators, resp, err := c.client.Repositories.ListCollaborators(ctx, org, repo, opts)
			if err != nil {
				return WrapError(err, fmt.Sprintf("collaborators for %s/%s", org, repo))
			}

			for _, collab := range collaborators {
				allCollaborators = append(allCollaborators, Collaborator{
					Login: collab.GetLogin(),
					Admin: collab.GetPermissions()["admin"],
				})
			}

			if resp.NextPage == 0 {
				break
			}
			opts.Page = resp.NextPage
		}
		return nil
	}, c.retry)

	return allCollaborators, err
}

// ListRepoTeams lists all teams granted access to a repository, with their
// permission level
func (c *Client) ListRepoTeams(ctx context.Context, org, repo string) ([]Team, error) {
	opts := &github.ListOptions{PerPage: pageSize}

	var allTeams []Team

	err := WithRetry(ctx, func() error {
		allTeams = nil // Reset on retry
		opts.Page = 0  // Reset pagination on retry

		for {
			teams, resp, err := c.client.Repositories.ListTeams(ctx, org, repo, opts)
			if err != nil {
				return WrapError(err, fmt.Sprintf("teams for %s/%s", org, repo))
			}

			for _, team := range teams {
				allTeams = append(allTeams, Team{
					Slug:       team.GetSlug(),
					Name:       team.GetName(),
					Permission: team.GetPermission(),
				})
			}

			if resp.NextPage == 0 {
				break
			}
			opts.Page = resp.NextPage
		}
		return nil
	}, c.retry)

	return allTeams, err
}

// ListTeamMembers lists the logins of all organization members of a team
func (c *Client) ListTeamMembers(ctx context.Context, org, slug string) ([]string, error) {
	opts := &github.TeamListTeamMembersOptions{
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	var allMembers []string

	err := WithRetry(ctx, func() error {
		allMembers = nil // Reset on retry
		opts.Page = 0    // Reset pagination on retry

		for {
			members, resp, err := c.client.Teams.ListTeamMembersBySlug(ctx, org, slug, opts)
			if err != nil {
				return WrapError(err, fmt.Sprintf("members of team %s/%s", org, slug))
			}

			for _, member := range members {
				allMembers = append(allMembers, member.GetLogin())
			}

			if resp.NextPage == 0 {
				break
			}
			opts.Page = resp.NextPage
		}
		return nil
	}, c.retry)

	return allMembers, err
}

// GetUserEmail fetches the public profile email for a login. The email may be
// empty when the user has no public email.
func (c *Client) GetUserEmail(ctx context.Context, login string) (string, error) {
	var user *github.User

	err := WithRetry(ctx, func() error {
		var err error
		user, _, err = c.client.Users.Get(ctx, login)
		if err != nil {
			return WrapError(err, fmt.Sprintf("user %s", login))
		}
		return nil
	}, c.retry)

	if err != nil {
		return "", err
	}

	return user.GetEmail(), nil
}

// CreateComment posts a comment on an issue
func (c *Client) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &github.IssueComment{Body: github.String(body)}

	return WithRetry(ctx, func() error {
		_, _, err := c.client.Issues.CreateComment(ctx, owner, repo, number, comment)
		if err != nil {
			return WrapError(err, fmt.Sprintf("comment on %s/%s#%d", owner, repo, number))
		}
		return nil
	}, c.retry)
}

// CloseIssue transitions an issue to the closed state
func (c *Client) CloseIssue(ctx context.Context, owner, repo string, number int) error {
	request := &github.IssueRequest{State: github.String("closed")}

	return WithRetry(ctx, func() error {
		_, _, err := c.client.Issues.Edit(ctx, owner, repo, number, request)
		if err != nil {
			return WrapError(err, fmt.Sprintf("issue %s/%s#%d", owner, repo, number))
		}
		return nil
	}, c.retry)
}
