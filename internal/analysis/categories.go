package analysis

import (
	"sort"
	"strings"

	"github.com/fabioluciano/profile-analyzer/internal/models"
)

// Keyword buckets matched against repository descriptions. Best effort:
// a repo with no description simply lands in no category.
var categoryKeywords = map[string][]string{
	"frontend": {"react", "vue", "angular", "svelte", "next.js", "nuxt"},
	"backend":  {"django", "flask", "fastapi", "express", "nest.js", "spring"},
	"mobile":   {"react native", "flutter", "swift", "kotlin", "ionic"},
	"devops":   {"docker", "kubernetes", "k8s", "terraform", "ansible", "ci/cd"},
	"data":     {"pandas", "numpy", "tensorflow", "pytorch", "spark", "airflow"},
	"cloud":    {"aws", "azure", "gcp", "cloud", "serverless", "lambda"},
}

// CategorizeRepo returns the sorted categories a repository's description
// matches.
func CategorizeRepo(repo models.Repository) []string {
	desc := strings.ToLower(repo.Description)
	if desc == "" {
		return nil
	}

	var categories []string
	for category, keywords := range categoryKeywords {
		for _, keyword := range keywords {
			if strings.Contains(desc, keyword) {
				categories = append(categories, category)
				break
			}
		}
	}

	sort.Strings(categories)
	return categories
}

// CategoryCounts tallies categories across a repository list; the counts
// feed the expertise section of the README prompt.
func CategoryCounts(repos []models.Repository) map[string]int {
	counts := make(map[string]int)
	for _, repo := range repos {
		for _, category := range CategorizeRepo(repo) {
			counts[category]++
		}
	}
	return counts
}
