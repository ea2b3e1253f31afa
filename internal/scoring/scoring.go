// Package scoring aggregates matched skill weights into the final
// importance buckets and match percentage.
package scoring

import "math"

// ImportantWeightThreshold separates important skills from less important
// ones. Extraction-engine weights at or above it count as important. The
// value is fixed product behavior and deliberately not configurable.
const ImportantWeightThreshold = 2

// Skill is a display-ready skill with its extraction weight.
type Skill struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// Important reports whether the skill clears the importance threshold.
func (s Skill) Important() bool {
	return s.Weight >= ImportantWeightThreshold
}

// Breakdown partitions present and missing skills into the four importance
// buckets and carries the aggregate weights. The two sub-buckets of each set
// are disjoint and together cover that set.
type Breakdown struct {
	Present []Skill
	Missing []Skill

	ImportantPresent     []Skill
	LessImportantPresent []Skill
	ImportantMissing     []Skill
	LessImportantMissing []Skill

	PresentWeight   int
	MissingWeight   int
	TotalWeight     int
	MatchPercentage int
}

// Classify builds a Breakdown from present and missing skill sets. Bucket
// membership depends only on each skill's weight; ordering is left to the
// caller's shuffler.
func Classify(present, missing []Skill) Breakdown {
	b := Breakdown{
		Present:              make([]Skill, 0, len(present)),
		Missing:              make([]Skill, 0, len(missing)),
		ImportantPresent:     []Skill{},
		LessImportantPresent: []Skill{},
		ImportantMissing:     []Skill{},
		LessImportantMissing: []Skill{},
	}

	for _, s := range present {
		b.Present = append(b.Present, s)
		b.PresentWeight += s.Weight
		if s.Important() {
			b.ImportantPresent = append(b.ImportantPresent, s)
		} else {
			b.LessImportantPresent = append(b.LessImportantPresent, s)
		}
	}
	for _, s := range missing {
		b.Missing = append(b.Missing, s)
		b.MissingWeight += s.Weight
		if s.Important() {
			b.ImportantMissing = append(b.ImportantMissing, s)
		} else {
			b.LessImportantMissing = append(b.LessImportantMissing, s)
		}
	}

	b.TotalWeight = b.PresentWeight + b.MissingWeight
	b.MatchPercentage = MatchPercentage(b.PresentWeight, b.MissingWeight)
	return b
}

// MatchPercentage computes round(100 * present / (present + missing)) as an
// integer in [0, 100]. A zero denominator yields 0.
func MatchPercentage(presentWeight, missingWeight int) int {
	total := presentWeight + missingWeight
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(presentWeight) / float64(total)))
}
