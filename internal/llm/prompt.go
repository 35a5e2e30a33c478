package llm

import (
	"fmt"
	"strings"

	"github.com/fabioluciano/profile-analyzer/internal/analysis"
)

const (
	maxTopicsInPrompt    = 25
	maxLanguagesInPrompt = 12
	maxDescriptionLength = 80
)

// BuildPrompt renders the payload into the generation prompt. The output
// is deterministic: every table is sorted by count descending then name,
// and section ordering and phrasing are fixed, so equal payloads always
// produce byte-equal prompts.
func BuildPrompt(p Payload) string {
	snap := p.Snapshot
	var b strings.Builder

	b.WriteString("You are an expert at writing professional, engaging GitHub profile READMEs. ")
	b.WriteString("Analyze the data below and write an exceptional README.md that tells this developer's story authentically.\n\n")

	b.WriteString("# DEVELOPER CONTEXT\n\n")

	b.WriteString("## Profile\n")
	fmt.Fprintf(&b, "- Name: %s\n", orDefault(snap.User.Name, snap.User.Login))
	fmt.Fprintf(&b, "- Bio: %s\n", orDefault(snap.User.Bio, "not set"))
	fmt.Fprintf(&b, "- Location: %s\n", orDefault(snap.User.Location, "not set"))
	fmt.Fprintf(&b, "- Company: %s\n", orDefault(snap.User.Company, "not set"))
	fmt.Fprintf(&b, "- Public repositories: %d\n", snap.User.PublicRepos)
	fmt.Fprintf(&b, "- Followers: %d\n", snap.User.Followers)

	activity := p.Diff.Activity
	fmt.Fprintf(&b, "\n## Recent activity (last %d days)\n", p.RecentDays)
	fmt.Fprintf(&b, "- Commits: %d\n", activity.Commits)
	fmt.Fprintf(&b, "- Pull requests: %d created, %d reviewed\n", activity.PRsCreated, activity.PRsReviewed)
	fmt.Fprintf(&b, "- Issues: %d opened, %d commented\n", activity.IssuesOpened, activity.IssuesCommented)
	fmt.Fprintf(&b, "- Repositories worked on: %d\n", len(activity.ReposWorkedOn))

	b.WriteString("\n## Recent work in detail\n")
	if len(activity.RecentCommits) == 0 {
		b.WriteString("No recent commits detected in public repositories.\n")
	}
	for _, commit := range activity.RecentCommits {
		fmt.Fprintf(&b, "- %s: %s\n", commit.Repo, truncate(commit.Message, 60))
	}

	if len(activity.ReposContributed) > 0 {
		b.WriteString("\n## Contributing to external projects\n")
		for _, repo := range activity.ReposContributed {
			fmt.Fprintf(&b, "- %s\n", repo)
		}
	}

	b.WriteString("\n## Active own repositories\n")
	active := analysis.ActiveOwned(snap.Owned, p.RecentSince)
	if len(active) > p.MaxActiveRepos {
		active = active[:p.MaxActiveRepos]
	}
	if len(active) == 0 {
		b.WriteString("No recent activity in own repositories.\n")
	}
	for _, repo := range active {
		fmt.Fprintf(&b, "- **%s** [%s]: %s (stars %d, forks %d)\n",
			repo.FullName, orDefault(repo.Language, "n/a"),
			truncate(orDefault(repo.Description, "no description"), maxDescriptionLength),
			repo.Stars, repo.Forks)
	}

	recentStars := analysis.RecentStars(snap.Starred, p.RecentSince)
	fmt.Fprintf(&b, "\n## Recently starred repositories (%d in the last %d days)\n", len(recentStars), p.RecentDays)
	if len(recentStars) > p.MaxRecentStars {
		recentStars = recentStars[:p.MaxRecentStars]
	}
	for _, repo := range recentStars {
		fmt.Fprintf(&b, "- **%s** [%s]: %s\n  Topics: %s\n",
			repo.FullName, orDefault(repo.Language, "n/a"),
			truncate(orDefault(repo.Description, "no description"), maxDescriptionLength),
			strings.Join(repo.Topics, "|"))
	}

	b.WriteString("\n## Trend analysis\n")
	b.WriteString("\n### Trending topics (growing interest since the last analysis)\n")
	if len(p.Diff.Trending) == 0 {
		b.WriteString("No trending topics identified.\n")
	}
	for _, topic := range p.Diff.Trending {
		fmt.Fprintf(&b, "- **%s**: +%d (now %d occurrences)\n", topic.Topic, topic.Delta, topic.Current)
	}

	b.WriteString("\n### Newly starred since the last analysis\n")
	switch {
	case p.Diff.FirstRun:
		b.WriteString("First analysis: no previous baseline.\n")
	case len(p.Diff.Added) == 0:
		b.WriteString("None.\n")
	default:
		for _, repo := range p.Diff.Added {
			fmt.Fprintf(&b, "- %s\n", repo.FullName)
		}
	}

	b.WriteString("\n### Growing languages\n")
	growing := sortedCounts(positiveCounts(p.Diff.LanguageDeltas))
	if len(growing) == 0 {
		b.WriteString("No language trend identified.\n")
	} else {
		b.WriteString(joinCounts(growing, len(growing)) + "\n")
	}

	b.WriteString("\n### Identified expertise areas\n")
	categories := sortedCounts(analysis.CategoryCounts(concatRepos(snap)))
	if len(categories) == 0 {
		b.WriteString("Still analyzing.\n")
	} else {
		b.WriteString(joinCounts(categories, len(categories)) + "\n")
	}

	b.WriteString("\n## Overall statistics\n")
	fmt.Fprintf(&b, "- Total starred repositories: %d\n", len(snap.Starred))
	fmt.Fprintf(&b, "- Own repositories: %d\n", len(snap.Owned))

	fmt.Fprintf(&b, "\n### Top %d topics (by frequency)\n", maxTopicsInPrompt)
	b.WriteString(joinCounts(sortedCounts(analysis.TopicCounts(snap)), maxTopicsInPrompt) + "\n")

	fmt.Fprintf(&b, "\n### Top %d languages\n", maxLanguagesInPrompt)
	b.WriteString(joinCounts(sortedCounts(analysis.LanguageCounts(snap)), maxLanguagesInPrompt) + "\n")

	b.WriteString("\n---\n\n# YOUR MISSION\n\n")
	b.WriteString(promptGuidelines(snap.User.Login))
	b.WriteString(outputFormat(p.Languages))

	return b.String()
}
