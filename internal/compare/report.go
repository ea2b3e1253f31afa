package compare

import "github.com/mentorque/skillmatch/internal/scoring"

// Report is the externally visible comparison result.
type Report struct {
	PresentSkills []string `json:"present_skills"`
	MissingSkills []string `json:"missing_skills"`

	ImportantPresentSkills     []string `json:"important_present_skills"`
	ImportantMissingSkills     []string `json:"important_missing_skills"`
	LessImportantPresentSkills []string `json:"less_important_present_skills"`
	LessImportantMissingSkills []string `json:"less_important_missing_skills"`

	MatchPercentage int `json:"match_percentage"`
	PresentWeight   int `json:"present_weight"`
	MissingWeight   int `json:"missing_weight"`
	TotalWeight     int `json:"total_weight"`
	PresentCount    int `json:"present_count"`

	// TotalImportantKeywords counts every extracted skill at or above the
	// importance threshold, present or not.
	TotalImportantKeywords int `json:"total_important_keywords"`

	Trace *Trace `json:"trace,omitempty"`
}

// Trace is the optional diagnostic block, attached only on request.
type Trace struct {
	Stats     map[string]any  `json:"stats"`
	Decisions []TraceDecision `json:"decisions"`
}

// TraceDecision records how one user skill resolved.
type TraceDecision struct {
	UserSkill    string `json:"user_skill"`
	MatchedSkill string `json:"matched_skill,omitempty"`
	Layer        string `json:"layer,omitempty"`
}

func skillNames(skills []scoring.Skill) []string {
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Name
	}
	return names
}

func buildReport(b scoring.Breakdown) *Report {
	important := len(b.ImportantPresent) + len(b.ImportantMissing)
	return &Report{
		PresentSkills:              skillNames(b.Present),
		MissingSkills:              skillNames(b.Missing),
		ImportantPresentSkills:     skillNames(b.ImportantPresent),
		ImportantMissingSkills:     skillNames(b.ImportantMissing),
		LessImportantPresentSkills: skillNames(b.LessImportantPresent),
		LessImportantMissingSkills: skillNames(b.LessImportantMissing),
		MatchPercentage:            b.MatchPercentage,
		PresentWeight:              b.PresentWeight,
		MissingWeight:              b.MissingWeight,
		TotalWeight:                b.TotalWeight,
		PresentCount:               len(b.Present),
		TotalImportantKeywords:     important,
	}
}
