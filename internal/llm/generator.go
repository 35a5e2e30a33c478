// Package llm turns the structured analysis into README content through
// a generative text service held behind a narrow interface.
package llm

import (
	"context"
	"strings"
	"time"

	"github.com/fabioluciano/profile-analyzer/internal/models"
)

// LangSeparator splits the model's response into per-language variants.
const LangSeparator = "---LANG_SEPARATOR---"

// Payload is the structured analysis handed to the generator: the current
// snapshot, its diff against the previous run, and the target languages.
type Payload struct {
	Snapshot  *models.Snapshot
	Diff      models.Diff
	Languages []string

	// Window and caps applied when rendering the prompt.
	RecentSince      time.Time
	RecentDays       int
	MaxRecentStars   int
	MaxActiveRepos   int
	MaxRecentCommits int
}

// Generator produces README Markdown per language. Implementations must
// build their request deterministically from the payload so comparable
// inputs produce comparable requests; they do not validate the service's
// output content. A failed call returns a generation error and the run
// aborts with no README written.
type Generator interface {
	Generate(ctx context.Context, payload Payload) (map[string]string, error)
}

// SplitVariants breaks raw model output into per-language content, in the
// order languages were requested. Code fences around the whole document
// are stripped. When the separator is missing the same content is used
// for every language.
func SplitVariants(raw string, languages []string) map[string]string {
	content := strings.TrimSpace(raw)
	content = strings.ReplaceAll(content, "```markdown", "")
	content = strings.ReplaceAll(content, "```", "")
	content = strings.TrimSpace(content)

	parts := strings.Split(content, LangSeparator)

	variants := make(map[string]string, len(languages))
	for i, lang := range languages {
		if i < len(parts) {
			variants[lang] = strings.TrimSpace(parts[i])
		} else {
			variants[lang] = strings.TrimSpace(parts[0])
		}
	}

	return variants
}
