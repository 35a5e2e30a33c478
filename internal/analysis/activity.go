package analysis

import (
	"sort"
	"strings"
	"time"

	"github.com/fabioluciano/profile-analyzer/internal/models"
)

// SummarizeActivity counts events by type within the recent window and
// collects commit detail for the user's own repositories. Pushes to repos
// that are neither owned nor forks of owned repos count as external
// contributions.
func SummarizeActivity(events []models.Event, owned map[string]struct{}, since time.Time, maxCommitDetail int) models.ActivitySummary {
	summary := models.ActivitySummary{}

	workedOn := make(map[string]struct{})
	contributed := make(map[string]struct{})

	// Bare repo names of owned repos, to recognize forks of them under
	// another owner.
	ownedNames := make(map[string]struct{}, len(owned))
	for key := range owned {
		ownedNames[shortName(key)] = struct{}{}
	}

	for _, event := range events {
		if event.CreatedAt.Before(since) {
			continue
		}

		_, isOwn := owned[event.Repo]
		_, isForkOfOwn := ownedNames[shortName(event.Repo)]

		switch event.Type {
		case "PushEvent":
			summary.Commits += len(event.CommitMessages)
			workedOn[event.Repo] = struct{}{}

			if isOwn {
				for _, message := range event.CommitMessages {
					if len(summary.RecentCommits) >= maxCommitDetail {
						break
					}
					summary.RecentCommits = append(summary.RecentCommits, models.CommitDetail{
						Repo:    event.Repo,
						Message: message,
						Date:    event.CreatedAt.Format("2006-01-02"),
					})
				}
			} else if !isForkOfOwn {
				contributed[event.Repo] = struct{}{}
			}

		case "PullRequestEvent":
			summary.PRsCreated++

		case "PullRequestReviewEvent":
			summary.PRsReviewed++

		case "IssuesEvent":
			if event.Action == "opened" {
				summary.IssuesOpened++
			}

		case "IssueCommentEvent":
			summary.IssuesCommented++
		}
	}

	summary.ReposWorkedOn = sortedKeys(workedOn)
	summary.ReposContributed = sortedKeys(contributed)

	return summary
}

// ActiveOwned filters owned repos down to non-forks updated inside the
// window, preserving input order (the fetch already sorts by update time).
func ActiveOwned(repos []models.Repository, since time.Time) []models.Repository {
	var active []models.Repository
	for _, repo := range repos {
		if repo.Fork {
			continue
		}
		if repo.UpdatedAt.After(since) {
			active = append(active, repo)
		}
	}
	return active
}

// RecentStars filters starred repos to those starred inside the window,
// most recent first.
func RecentStars(repos []models.Repository, since time.Time) []models.Repository {
	var recent []models.Repository
	for _, repo := range repos {
		if repo.StarredAt.After(since) {
			recent = append(recent, repo)
		}
	}
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].StarredAt.After(recent[j].StarredAt)
	})
	return recent
}

func shortName(fullName string) string {
	if idx := strings.LastIndex(fullName, "/"); idx >= 0 {
		return fullName[idx+1:]
	}
	return fullName
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
