package models

import (
	"time"
)

// Repository is an immutable capture of a GitHub repository at fetch time.
type Repository struct {
	Owner       string    `json:"owner"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
	Language    string    `json:"language,omitempty"`
	Topics      []string  `json:"topics,omitempty"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	OpenIssues  int       `json:"open_issues"`
	Fork        bool      `json:"fork"`
	Private     bool      `json:"private"`
	PushedAt    time.Time `json:"pushed_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	StarredAt   time.Time `json:"starred_at,omitempty"`
}

// Key returns the owner/name identity used when diffing snapshots.
func (r Repository) Key() string {
	return r.Owner + "/" + r.Name
}

// UserProfile holds the profile fields that feed the README prompt.
type UserProfile struct {
	Login       string `json:"login"`
	Name        string `json:"name,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Location    string `json:"location,omitempty"`
	Company     string `json:"company,omitempty"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

// Event is a single entry from the user's public event timeline.
type Event struct {
	Type           string    `json:"type"`
	Repo           string    `json:"repo"`
	Action         string    `json:"action,omitempty"`
	CommitMessages []string  `json:"commit_messages,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Snapshot is one run's capture of the user's GitHub state. It is created
// once per run and never mutated; the persisted snapshot becomes the
// "previous" baseline for the next run.
type Snapshot struct {
	Timestamp time.Time    `json:"timestamp"`
	User      UserProfile  `json:"user"`
	Starred   []Repository `json:"starred"`
	Owned     []Repository `json:"owned"`
	Events    []Event      `json:"events"`
}

// CommitDetail is a recent commit surfaced in the activity summary.
type CommitDetail struct {
	Repo    string `json:"repo"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

// ActivitySummary aggregates the recent event window by event type.
type ActivitySummary struct {
	Commits          int            `json:"commits"`
	PRsCreated       int            `json:"prs_created"`
	PRsReviewed      int            `json:"prs_reviewed"`
	IssuesOpened     int            `json:"issues_opened"`
	IssuesCommented  int            `json:"issues_commented"`
	ReposWorkedOn    []string       `json:"repos_worked_on"`
	ReposContributed []string       `json:"repos_contributed"`
	RecentCommits    []CommitDetail `json:"recent_commits"`
}

// TrendingTopic is a topic whose frequency grew past the configured
// threshold between two snapshots.
type TrendingTopic struct {
	Topic   string `json:"topic"`
	Delta   int    `json:"delta"`
	Current int    `json:"current"`
}

// Diff is the computed delta between the current and previous snapshots.
// It is derived and ephemeral: consumed by the README generator, never
// persisted on its own.
type Diff struct {
	FirstRun       bool            `json:"first_run"`
	Added          []Repository    `json:"added"`
	Removed        []Repository    `json:"removed"`
	TopicDeltas    map[string]int  `json:"topic_deltas"`
	LanguageDeltas map[string]int  `json:"language_deltas"`
	Trending       []TrendingTopic `json:"trending"`
	Activity       ActivitySummary `json:"activity"`
}
