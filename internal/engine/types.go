package engine

import (
	"math"

	"github.com/mentorque/skillmatch/internal/matching"
)

// ExtractRequest is the wire request for the engine's extraction endpoint.
type ExtractRequest struct {
	Text     string `json:"text"`
	UseFuzzy bool   `json:"use_fuzzy"`
}

// SkillMatch is one detected skill with the weight the engine assigned.
// Weights arrive as numbers (the engine scores 0-3); anything at or below
// zero marks a term the engine filtered out.
type SkillMatch struct {
	Skill     string  `json:"skill"`
	Canonical string  `json:"canonical"`
	Weight    float64 `json:"weight"`
}

// ExtractResponse is the engine's extraction payload. Every optional field
// gets an explicit default at the boundary; downstream code never sees nils.
type ExtractResponse struct {
	Skills              []string       `json:"skills"`
	Matches             []SkillMatch   `json:"matches"`
	Count               int            `json:"count"`
	Stats               map[string]any `json:"stats"`
	ImportantSkills     []string       `json:"important_skills"`
	LessImportantSkills []string       `json:"less_important_skills"`
	NonTechnicalSkills  []string       `json:"non_technical_skills"`
	ClassifierAvailable bool           `json:"classifier_available"`
}

// healthResponse mirrors the engine's liveness payload.
type healthResponse struct {
	Status           string `json:"status"`
	SpacyModelLoaded bool   `json:"spacy_model_loaded"`
	ModelName        string `json:"model_name"`
}

func (r *ExtractResponse) applyDefaults() {
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Matches == nil {
		r.Matches = []SkillMatch{}
	}
	if r.Stats == nil {
		r.Stats = map[string]any{}
	}
	if r.ImportantSkills == nil {
		r.ImportantSkills = []string{}
	}
	if r.LessImportantSkills == nil {
		r.LessImportantSkills = []string{}
	}
	if r.NonTechnicalSkills == nil {
		r.NonTechnicalSkills = []string{}
	}
}

// Tokens converts the engine's matches into skill tokens. Canonical names
// win over surface forms, duplicates collapse onto their maximum weight, and
// fractional weights round to the nearest positive integer (minimum 1, the
// default for engines that omit weights). Extraction order is preserved.
func (r *ExtractResponse) Tokens() []matching.SkillToken {
	tokens := make([]matching.SkillToken, 0, len(r.Matches))
	index := make(map[string]int, len(r.Matches))

	for _, m := range r.Matches {
		name := m.Canonical
		if name == "" {
			name = m.Skill
		}
		tok := matching.NewToken(name, int(math.Round(m.Weight)))
		if tok.Key == "" {
			continue
		}
		if at, seen := index[tok.Key]; seen {
			if tok.Weight > tokens[at].Weight {
				tokens[at].Weight = tok.Weight
			}
			continue
		}
		index[tok.Key] = len(tokens)
		tokens = append(tokens, tok)
	}
	return tokens
}
