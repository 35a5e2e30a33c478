package github

import (
	"context"
	"net/http"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	apperrors "github.com/fabioluciano/profile-analyzer/internal/errors"
	"github.com/fabioluciano/profile-analyzer/internal/models"
)

// Client wraps the GitHub API client with rate limiting.
// All operations are read-only.
type Client struct {
	client      *github.Client
	rateLimiter *rate.Limiter
}

// NewClient creates a GitHub client authenticated with the given token.
// The transport stacks the secondary-rate-limit waiter under the oauth2
// token source; on top of that, requests are paced client-side at
// rateLimit requests per second to stay inside the primary quota.
func NewClient(token string, rateLimit int) (*Client, error) {
	waiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, apperrors.FetchError(err, "create rate limit waiter")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   waiter,
			Source: ts,
		},
	}

	return &Client{
		client:      github.NewClient(httpClient),
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
	}, nil
}

// FetchUser gets the user's profile metadata.
func (c *Client) FetchUser(ctx context.Context, username string) (models.UserProfile, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return models.UserProfile{}, apperrors.FetchError(err, "rate limiter")
	}

	user, _, err := c.client.Users.Get(ctx, username)
	if err != nil {
		return models.UserProfile{}, apperrors.FetchErrorf(err, "fetch user %s", username)
	}

	return models.UserProfile{
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		Bio:         user.GetBio(),
		Location:    user.GetLocation(),
		Company:     user.GetCompany(),
		PublicRepos: user.GetPublicRepos(),
		Followers:   user.GetFollowers(),
	}, nil
}

// FetchStarred retrieves all repositories the user has starred, with the
// starred_at timestamp from the star+json media type.
func (c *Client) FetchStarred(ctx context.Context, username string) ([]models.Repository, error) {
	opts := &github.ActivityListStarredOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var starred []models.Repository

	for {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, apperrors.FetchError(err, "rate limiter")
		}

		stars, resp, err := c.client.Activity.ListStarred(ctx, username, opts)
		if err != nil {
			return nil, apperrors.FetchErrorf(err, "fetch starred repos for %s", username)
		}

		for _, star := range stars {
			repo := mapRepository(star.GetRepository())
			repo.StarredAt = star.GetStarredAt().Time
			starred = append(starred, repo)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return starred, nil
}

// FetchOwnedRepos retrieves the user's own repositories sorted by update time.
// Forks are kept here; the analysis layer decides what to filter.
func (c *Client) FetchOwnedRepos(ctx context.Context, username string) ([]models.Repository, error) {
	opts := &github.RepositoryListOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var owned []models.Repository

	for {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, apperrors.FetchError(err, "rate limiter")
		}

		repos, resp, err := c.client.Repositories.List(ctx, username, opts)
		if err != nil {
			return nil, apperrors.FetchErrorf(err, "fetch repos for %s", username)
		}

		for _, repo := range repos {
			owned = append(owned, mapRepository(repo))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return owned, nil
}

// FetchEvents retrieves the user's recent public events. The API only
// retains the latest events, so a single 100-entry page covers the window.
func (c *Client) FetchEvents(ctx context.Context, username string) ([]models.Event, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, apperrors.FetchError(err, "rate limiter")
	}

	events, _, err := c.client.Activity.ListEventsPerformedByUser(ctx, username, true, &github.ListOptions{PerPage: 100})
	if err != nil {
		return nil, apperrors.FetchErrorf(err, "fetch events for %s", username)
	}

	mapped := make([]models.Event, 0, len(events))
	for _, event := range events {
		mapped = append(mapped, mapEvent(event))
	}

	return mapped, nil
}

func mapRepository(repo *github.Repository) models.Repository {
	return models.Repository{
		Owner:       repo.GetOwner().GetLogin(),
		Name:        repo.GetName(),
		FullName:    repo.GetFullName(),
		Description: repo.GetDescription(),
		URL:         repo.GetHTMLURL(),
		Language:    repo.GetLanguage(),
		Topics:      repo.Topics,
		Stars:       repo.GetStargazersCount(),
		Forks:       repo.GetForksCount(),
		OpenIssues:  repo.GetOpenIssuesCount(),
		Fork:        repo.GetFork(),
		Private:     repo.GetPrivate(),
		PushedAt:    repo.GetPushedAt().Time,
		UpdatedAt:   repo.GetUpdatedAt().Time,
	}
}

func mapEvent(event *github.Event) models.Event {
	mapped := models.Event{
		Type:      event.GetType(),
		Repo:      event.GetRepo().GetName(),
		CreatedAt: event.GetCreatedAt().Time,
	}

	payload, err := event.ParsePayload()
	if err != nil {
		// Unknown payloads still count by type
		return mapped
	}

	switch p := payload.(type) {
	case *github.PushEvent:
		for _, commit := range p.Commits {
			mapped.CommitMessages = append(mapped.CommitMessages, commit.GetMessage())
		}
	case *github.IssuesEvent:
		mapped.Action = p.GetAction()
	case *github.PullRequestEvent:
		mapped.Action = p.GetAction()
	}

	return mapped
}
