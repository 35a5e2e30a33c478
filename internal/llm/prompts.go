package llm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fabioluciano/profile-analyzer/internal/models"
)

// languageNames maps language tags to the names used in the prompt.
var languageNames = map[string]string{
	"pt-br": "Brazilian Portuguese",
	"en":    "English",
}

func promptGuidelines(username string) string {
	return fmt.Sprintf(`Write a professional, modern README following this structure:

1. An impactful header: title with the name/username, a subtitle capturing
   the professional essence inferred from the data, and relevant badges.
2. "About Me": 2-3 authentic paragraphs grounded in the dominant topics
   and languages. No marketing fluff.
3. "Current Focus & Interests": bullet points derived from the trending
   topics and recently starred repositories, with a fitting emoji each.
4. "Projects in Development": based on recent commits and active repos,
   naming the specific technologies in use. At most 3-4 items.
5. "Learning Now": new technologies inferred from recent stars and
   trending topics, 3-5 specific items.
6. "Tech Stack": the top languages and tools grouped into categories,
   rendered as shields.io badges
   (https://img.shields.io/badge/Name-HEX?style=for-the-badge&logo=name&logoColor=white).
7. GitHub trophies:
   <img src="https://github-profile-trophy.vercel.app/?username=%s&theme=onedark&no-frame=true&no-bg=true&column=7"/>
8. "Contributions & Collaboration": mention external contributions if any
   and invite collaboration.

Critical guidelines:
- Everything must be based on the data provided; be specific with names
  of technologies, frameworks and concepts.
- Keep the tone professional but approachable; use emojis sparingly.
- Each section must be scanning-friendly.

`, username)
}

func outputFormat(languages []string) string {
	var b strings.Builder

	b.WriteString("Output format: generate ")
	if len(languages) == 1 {
		fmt.Fprintf(&b, "the README in %s.\n", langName(languages[0]))
	} else {
		fmt.Fprintf(&b, "%d complete, independent versions of the README, in this order:\n", len(languages))
		for i, lang := range languages {
			fmt.Fprintf(&b, "%d. %s\n", i+1, langName(lang))
		}
		fmt.Fprintf(&b, "Separate consecutive versions with this exact marker on its own line:\n%s\n", LangSeparator)
		b.WriteString("Each version must carry the same content, naturally translated, with links to the other variants at the top.\n")
	}

	b.WriteString("Return ONLY the ready-to-use Markdown content. No explanations, no meta commentary.\n")

	return b.String()
}

func langName(tag string) string {
	if name, ok := languageNames[tag]; ok {
		return name
	}
	return tag
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	if max <= 3 {
		return text[:max]
	}
	return text[:max-3] + "..."
}

func concatRepos(snap *models.Snapshot) []models.Repository {
	repos := make([]models.Repository, 0, len(snap.Starred)+len(snap.Owned))
	repos = append(repos, snap.Starred...)
	repos = append(repos, snap.Owned...)
	return repos
}

type countEntry struct {
	name  string
	count int
}

// sortedCounts orders a frequency table by count descending, then name,
// so prompt tables are stable across runs.
func sortedCounts(counts map[string]int) []countEntry {
	entries := make([]countEntry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, countEntry{name: name, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	return entries
}

func positiveCounts(deltas map[string]int) map[string]int {
	out := make(map[string]int)
	for name, delta := range deltas {
		if delta > 0 {
			out[name] = delta
		}
	}
	return out
}

func joinCounts(entries []countEntry, max int) string {
	if len(entries) > max {
		entries = entries[:max]
	}
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, fmt.Sprintf("%s (%d)", entry.name, entry.count))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
