package prlookup

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	vcsurl "github.com/gitsight/go-vcsurl"
	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/roivaz/pr-messages/internal/logging"
)

const DefaultRemote = "origin"

func NewGitHubClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(&http.Client{Timeout: 30 * time.Second})
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = 30 * time.Second
	return github.NewClient(tc)
}

// Repository is the part of a git backend the lookup needs.
type Repository interface {
	CurrentBranch(ctx context.Context) (string, error)
	RemoteURL(ctx context.Context, name string) (string, error)
}

type PullRequest struct {
	Number   int        `json:"number"`
	Title    string     `json:"title"`
	URL      string     `json:"url"`
	State    string     `json:"state"`
	Draft    bool       `json:"draft"`
	Author   string     `json:"author"`
	BaseRef  string     `json:"base_ref"`
	MergedAt *time.Time `json:"merged_at,omitempty"`
}

type BranchPullRequests struct {
	Owner        string        `json:"owner"`
	Repo         string        `json:"repo"`
	Branch       string        `json:"branch"`
	PullRequests []PullRequest `json:"pull_requests"`
}

// Lookup finds pull requests opened from the current branch. It never writes
// to GitHub.
type Lookup struct {
	client *github.Client
	repo   Repository
	remote string
	log    logging.Logger
}

func NewLookup(client *github.Client, repo Repository, log logging.Logger) *Lookup {
	return &Lookup{client: client, repo: repo, remote: DefaultRemote, log: log.WithName("prlookup")}
}

// ParseRemote extracts owner and repository name from a GitHub remote URL.
func ParseRemote(remote string) (owner, name string, err error) {
	info, err := vcsurl.Parse(remote)
	if err != nil {
		return "", "", fmt.Errorf("parse remote %q: %w", remote, err)
	}
	if info.Host != vcsurl.GitHub {
		return "", "", fmt.Errorf("remote %q is not hosted on github.com", remote)
	}
	if info.Username == "" || info.Name == "" {
		return "", "", fmt.Errorf("remote %q does not name an owner and repository", remote)
	}
	return info.Username, strings.TrimSuffix(info.Name, ".git"), nil
}

func (l *Lookup) FindForCurrentBranch(ctx context.Context) (BranchPullRequests, error) {
	branch, err := l.repo.CurrentBranch(ctx)
	if err != nil {
		return BranchPullRequests{}, fmt.Errorf("cannot determine current branch: %w", err)
	}
	remote, err := l.repo.RemoteURL(ctx, l.remote)
	if err != nil {
		return BranchPullRequests{}, fmt.Errorf("read remote %s: %w", l.remote, err)
	}
	owner, name, err := ParseRemote(remote)
	if err != nil {
		return BranchPullRequests{}, err
	}

	out := BranchPullRequests{Owner: owner, Repo: name, Branch: branch, PullRequests: []PullRequest{}}
	opts := &github.PullRequestListOptions{
		State:       "all",
		Head:        owner + ":" + branch,
		ListOptions: github.ListOptions{PerPage: 20},
	}
	prs, _, err := l.client.PullRequests.List(ctx, owner, name, opts)
	if err != nil {
		return BranchPullRequests{}, fmt.Errorf("list pull requests for %s/%s@%s: %w", owner, name, branch, err)
	}
	for _, pr := range prs {
		out.PullRequests = append(out.PullRequests, buildPullRequest(pr))
	}
	l.log.Debug("looked up pull requests", "owner", owner, "repo", name, "branch", branch, "found", len(out.PullRequests))
	return out, nil
}

func buildPullRequest(pr *github.PullRequest) PullRequest {
	out := PullRequest{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		URL:     pr.GetHTMLURL(),
		State:   pr.GetState(),
		Draft:   pr.GetDraft(),
		Author:  pr.GetUser().GetLogin(),
		BaseRef: pr.GetBase().GetRef(),
	}
	if pr.MergedAt != nil {
		merged := pr.GetMergedAt().Time
		out.MergedAt = &merged
	}
	return out
}

// Markdown renders the lookup as a short list.
func (b BranchPullRequests) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# 🔗 Pull Requests for `%s` (%s/%s)\n\n", b.Branch, b.Owner, b.Repo)
	if len(b.PullRequests) == 0 {
		sb.WriteString("No pull requests found for this branch.\n")
		return sb.String()
	}
	for _, pr := range b.PullRequests {
		state := pr.State
		switch {
		case pr.MergedAt != nil:
			state = "merged"
		case pr.Draft && pr.State == "open":
			state = "draft"
		}
		fmt.Fprintf(&sb, "- #%d %s [%s] → `%s` by @%s\n  %s\n", pr.Number, pr.Title, state, pr.BaseRef, pr.Author, pr.URL)
	}
	return sb.String()
}
