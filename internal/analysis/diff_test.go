package analysis

import (
	"testing"
	"time"

	"github.com/fabioluciano/profile-analyzer/internal/models"
)

func repo(owner, name, language string, topics ...string) models.Repository {
	return models.Repository{
		Owner:    owner,
		Name:     name,
		FullName: owner + "/" + name,
		Language: language,
		Topics:   topics,
	}
}

func snapshotOf(starred ...models.Repository) *models.Snapshot {
	return &models.Snapshot{
		Timestamp: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Starred:   starred,
	}
}

func addedKeys(diff models.Diff) []string {
	keys := make([]string, 0, len(diff.Added))
	for _, r := range diff.Added {
		keys = append(keys, r.Key())
	}
	return keys
}

func removedKeys(diff models.Diff) []string {
	keys := make([]string, 0, len(diff.Removed))
	for _, r := range diff.Removed {
		keys = append(keys, r.Key())
	}
	return keys
}

func TestCompute_FirstRun(t *testing.T) {
	current := snapshotOf(
		repo("alice", "alpha", "Go", "cli"),
		repo("bob", "beta", "Python", "ml"),
	)

	diff := Compute(current, nil, Options{})

	if !diff.FirstRun {
		t.Error("FirstRun = false, want true")
	}
	if got := addedKeys(diff); len(got) != 2 || got[0] != "alice/alpha" || got[1] != "bob/beta" {
		t.Errorf("Added = %v, want all current starred repos", got)
	}
	if len(diff.Removed) != 0 {
		t.Errorf("Removed = %v, want empty on first run", removedKeys(diff))
	}
	// Deltas at face value: current counts, no baseline
	if diff.TopicDeltas["cli"] != 1 || diff.TopicDeltas["ml"] != 1 {
		t.Errorf("TopicDeltas = %v, want face-value counts", diff.TopicDeltas)
	}
}

func TestCompute_SelfDiffIsEmpty(t *testing.T) {
	snap := snapshotOf(
		repo("alice", "alpha", "Go", "cli", "networking"),
		repo("bob", "beta", "Python", "ml"),
	)

	diff := Compute(snap, snap, Options{})

	if diff.FirstRun {
		t.Error("FirstRun = true, want false")
	}
	if len(diff.Added) != 0 {
		t.Errorf("Added = %v, want empty", addedKeys(diff))
	}
	if len(diff.Removed) != 0 {
		t.Errorf("Removed = %v, want empty", removedKeys(diff))
	}
	for topic, delta := range diff.TopicDeltas {
		if delta != 0 {
			t.Errorf("TopicDeltas[%s] = %d, want 0", topic, delta)
		}
	}
	if len(diff.Trending) != 0 {
		t.Errorf("Trending = %v, want empty", diff.Trending)
	}
}

func TestCompute_AddedRemoved(t *testing.T) {
	previous := snapshotOf(
		repo("alice", "alpha", "Go"),
		repo("bob", "beta", "Python"),
	)
	current := snapshotOf(
		repo("bob", "beta", "Python"),
		repo("carol", "gamma", "Rust"),
	)

	diff := Compute(current, previous, Options{})

	if got := addedKeys(diff); len(got) != 1 || got[0] != "carol/gamma" {
		t.Errorf("Added = %v, want [carol/gamma]", got)
	}
	if got := removedKeys(diff); len(got) != 1 || got[0] != "alice/alpha" {
		t.Errorf("Removed = %v, want [alice/alpha]", got)
	}
}

func TestCompute_OrderIndependent(t *testing.T) {
	a := repo("alice", "alpha", "Go", "cli")
	b := repo("bob", "beta", "Python", "ml")
	c := repo("carol", "gamma", "Rust", "systems")

	previous := snapshotOf(a, b)

	forward := Compute(snapshotOf(b, c, a), previous, Options{})
	permuted := Compute(snapshotOf(a, c, b), previous, Options{})

	if len(forward.Added) != len(permuted.Added) || len(forward.Removed) != len(permuted.Removed) {
		t.Fatalf("permuting input changed diff: %v vs %v", forward, permuted)
	}
	for i := range forward.Added {
		if forward.Added[i].Key() != permuted.Added[i].Key() {
			t.Errorf("Added[%d] differs: %s vs %s", i, forward.Added[i].Key(), permuted.Added[i].Key())
		}
	}
	for topic, delta := range forward.TopicDeltas {
		if permuted.TopicDeltas[topic] != delta {
			t.Errorf("TopicDeltas[%s] differs: %d vs %d", topic, delta, permuted.TopicDeltas[topic])
		}
	}
}

func TestCompute_TrendingThreshold(t *testing.T) {
	// First run with counts {python: 3, go: 1} and threshold 2:
	// only python crosses the bar.
	current := snapshotOf(
		repo("a", "r1", "Python", "python"),
		repo("b", "r2", "Python", "python"),
		repo("c", "r3", "Python", "python"),
		repo("d", "r4", "Go", "go"),
	)

	diff := Compute(current, nil, Options{TrendThreshold: 2})

	if len(diff.Trending) != 1 {
		t.Fatalf("Trending = %v, want exactly [python]", diff.Trending)
	}
	if diff.Trending[0].Topic != "python" || diff.Trending[0].Delta != 3 {
		t.Errorf("Trending[0] = %+v, want topic=python delta=3", diff.Trending[0])
	}
}

func TestCompute_TrendingSortedByDelta(t *testing.T) {
	current := snapshotOf(
		repo("a", "r1", "", "kubernetes", "golang"),
		repo("b", "r2", "", "kubernetes", "golang"),
		repo("c", "r3", "", "kubernetes"),
		repo("d", "r4", "", "golang"),
		repo("e", "r5", "", "kubernetes"),
	)

	diff := Compute(current, nil, Options{TrendThreshold: 1})

	if len(diff.Trending) != 2 {
		t.Fatalf("Trending = %v, want 2 topics", diff.Trending)
	}
	if diff.Trending[0].Topic != "kubernetes" || diff.Trending[1].Topic != "golang" {
		t.Errorf("Trending order = [%s %s], want [kubernetes golang]",
			diff.Trending[0].Topic, diff.Trending[1].Topic)
	}
}

func TestCompute_RemovedTopicGoesNegative(t *testing.T) {
	previous := snapshotOf(repo("a", "r1", "Go", "grpc"))
	current := snapshotOf(repo("b", "r2", "Rust", "wasm"))

	diff := Compute(current, previous, Options{})

	if diff.TopicDeltas["grpc"] != -1 {
		t.Errorf("TopicDeltas[grpc] = %d, want -1", diff.TopicDeltas["grpc"])
	}
	if diff.TopicDeltas["wasm"] != 1 {
		t.Errorf("TopicDeltas[wasm] = %d, want 1", diff.TopicDeltas["wasm"])
	}
}

func TestCompute_OwnedForksExcludedFromCounts(t *testing.T) {
	fork := repo("me", "forked", "Go", "cli")
	fork.Fork = true

	current := &models.Snapshot{
		Starred: []models.Repository{repo("a", "r1", "Go", "cli")},
		Owned:   []models.Repository{fork},
	}

	diff := Compute(current, nil, Options{})

	if diff.TopicDeltas["cli"] != 1 {
		t.Errorf("TopicDeltas[cli] = %d, want 1 (fork topics excluded)", diff.TopicDeltas["cli"])
	}
	if diff.LanguageDeltas["Go"] != 1 {
		t.Errorf("LanguageDeltas[Go] = %d, want 1 (fork language excluded)", diff.LanguageDeltas["Go"])
	}
}

func TestCompute_MissingFieldsTolerated(t *testing.T) {
	// No language, no topics: tolerated as absent, not an error.
	current := snapshotOf(repo("a", "bare", ""))

	diff := Compute(current, nil, Options{})

	if len(diff.TopicDeltas) != 0 {
		t.Errorf("TopicDeltas = %v, want empty", diff.TopicDeltas)
	}
	if len(diff.LanguageDeltas) != 0 {
		t.Errorf("LanguageDeltas = %v, want empty", diff.LanguageDeltas)
	}
	if got := addedKeys(diff); len(got) != 1 || got[0] != "a/bare" {
		t.Errorf("Added = %v, want [a/bare]", got)
	}
}
