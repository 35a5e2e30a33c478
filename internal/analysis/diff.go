// Package analysis computes the delta between two snapshots of a user's
// GitHub state. Everything here is a pure function of its inputs: no
// clock reads, no I/O, no shared state.
package analysis

import (
	"sort"
	"time"

	"github.com/fabioluciano/profile-analyzer/internal/models"
)

// Options tunes the diff computation. The activity window boundary is
// passed in rather than derived from the clock so results are reproducible.
type Options struct {
	// TrendThreshold is the minimum positive topic delta (exclusive) for a
	// topic to be reported as trending.
	TrendThreshold int

	// ActivitySince bounds the recent-event window.
	ActivitySince time.Time

	// MaxCommitDetail caps how many per-commit entries the activity
	// summary retains.
	MaxCommitDetail int
}

// Compute produces the Diff between current and previous. A nil previous
// means first run: every current starred repo is reported as added and
// topic counts are taken at face value.
func Compute(current, previous *models.Snapshot, opts Options) models.Diff {
	diff := models.Diff{
		FirstRun: previous == nil,
	}

	currentStars := repoSet(current.Starred)

	if previous == nil {
		diff.Added = sortedRepos(currentStars)
	} else {
		previousStars := repoSet(previous.Starred)
		diff.Added = sortedRepos(subtract(currentStars, previousStars))
		diff.Removed = sortedRepos(subtract(previousStars, currentStars))
	}

	currentTopics := TopicCounts(current)
	currentLanguages := LanguageCounts(current)

	if previous == nil {
		diff.TopicDeltas = currentTopics
		diff.LanguageDeltas = currentLanguages
	} else {
		diff.TopicDeltas = deltas(currentTopics, TopicCounts(previous))
		diff.LanguageDeltas = deltas(currentLanguages, LanguageCounts(previous))
	}

	diff.Trending = trending(diff.TopicDeltas, currentTopics, opts.TrendThreshold)
	diff.Activity = SummarizeActivity(current.Events, ownedKeys(current.Owned), opts.ActivitySince, opts.MaxCommitDetail)

	return diff
}

// repoSet collapses a repository list into a map keyed by owner/name.
// Duplicate keys collapse, which also makes the diff order-independent.
func repoSet(repos []models.Repository) map[string]models.Repository {
	set := make(map[string]models.Repository, len(repos))
	for _, repo := range repos {
		set[repo.Key()] = repo
	}
	return set
}

func subtract(a, b map[string]models.Repository) map[string]models.Repository {
	out := make(map[string]models.Repository)
	for key, repo := range a {
		if _, ok := b[key]; !ok {
			out[key] = repo
		}
	}
	return out
}

func sortedRepos(set map[string]models.Repository) []models.Repository {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	repos := make([]models.Repository, 0, len(keys))
	for _, key := range keys {
		repos = append(repos, set[key])
	}
	return repos
}

// TopicCounts tallies topics over starred plus owned non-fork repos.
// Missing topics are tolerated as empty.
func TopicCounts(snap *models.Snapshot) map[string]int {
	counts := make(map[string]int)
	for _, repo := range snap.Starred {
		for _, topic := range repo.Topics {
			counts[topic]++
		}
	}
	for _, repo := range snap.Owned {
		if repo.Fork {
			continue
		}
		for _, topic := range repo.Topics {
			counts[topic]++
		}
	}
	return counts
}

// LanguageCounts tallies primary languages the same way.
func LanguageCounts(snap *models.Snapshot) map[string]int {
	counts := make(map[string]int)
	for _, repo := range snap.Starred {
		if repo.Language != "" {
			counts[repo.Language]++
		}
	}
	for _, repo := range snap.Owned {
		if repo.Fork {
			continue
		}
		if repo.Language != "" {
			counts[repo.Language]++
		}
	}
	return counts
}

// deltas computes current minus previous for every key in either table,
// treating absence as zero.
func deltas(current, previous map[string]int) map[string]int {
	out := make(map[string]int)
	for key, count := range current {
		out[key] = count - previous[key]
	}
	for key, count := range previous {
		if _, ok := current[key]; !ok {
			out[key] = -count
		}
	}
	return out
}

// trending selects topics whose delta is strictly above the threshold,
// ordered by delta descending, then topic name for determinism.
func trending(topicDeltas, currentCounts map[string]int, threshold int) []models.TrendingTopic {
	var topics []models.TrendingTopic
	for topic, delta := range topicDeltas {
		if delta > threshold {
			topics = append(topics, models.TrendingTopic{
				Topic:   topic,
				Delta:   delta,
				Current: currentCounts[topic],
			})
		}
	}

	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Delta != topics[j].Delta {
			return topics[i].Delta > topics[j].Delta
		}
		return topics[i].Topic < topics[j].Topic
	})

	return topics
}

func ownedKeys(repos []models.Repository) map[string]struct{} {
	keys := make(map[string]struct{}, len(repos))
	for _, repo := range repos {
		keys[repo.Key()] = struct{}{}
	}
	return keys
}
