package vocab

import (
	"strings"
	"unicode"

	"github.com/mentorque/skillmatch/internal/matching"
)

// specialTitles are acronyms and multi-word canonical phrases whose display
// form cannot be derived by word capitalization. Checked before the
// vocabulary so these always render consistently.
var specialTitles = map[string]string{
	"aws":        "AWS",
	"gcp":        "GCP",
	"sql":        "SQL",
	"nosql":      "NoSQL",
	"mysql":      "MySQL",
	"postgresql": "PostgreSQL",
	"mongodb":    "MongoDB",
	"graphql":    "GraphQL",
	"cicd":       "CI/CD",
	"html":       "HTML",
	"css":        "CSS",
	"php":        "PHP",
	"api":        "API",
	"apis":       "APIs",
	"restapi":    "REST API",
	"restapis":   "REST APIs",
	"json":       "JSON",
	"xml":        "XML",
	"etl":        "ETL",
	"sdk":        "SDK",
	"ai":         "AI",
	"ml":         "ML",
	"nlp":        "NLP",
	"llm":        "LLM",
	"oop":        "OOP",
	"ios":        "iOS",
	"macos":      "macOS",
	"devops":     "DevOps",
	"github":     "GitHub",
	"gitlab":     "GitLab",
	"javascript": "JavaScript",
	"typescript": "TypeScript",
	"nodejs":     "Node.js",
	"nextjs":     "Next.js",
	"vuejs":      "Vue.js",
	"k8s":        "Kubernetes",
	"uiux":       "UI/UX",
	"csharp":     "C#",
	"vbnet":      "VB.NET",
	"dotnet":     ".NET",
	"powerbi":    "Power BI",
}

// Titleize returns the canonical display form of a skill term: the fixed
// special-case dictionary first, then the loaded vocabulary, then each
// word's first letter capitalized. Pure and deterministic for a loaded store.
func (s *Store) Titleize(term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return term
	}

	key := matching.NormalizeKey(term)
	if title, ok := specialTitles[key]; ok {
		return title
	}

	s.Load()
	if title, ok := s.lookup(key); ok {
		return title
	}

	return capitalizeWords(term)
}

func capitalizeWords(term string) string {
	words := strings.Fields(term)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
