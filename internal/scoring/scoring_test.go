package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPercentage(t *testing.T) {
	tests := []struct {
		name             string
		present, missing int
		want             int
	}{
		{"zero denominator", 0, 0, 0},
		{"all present", 5, 0, 100},
		{"all missing", 0, 7, 0},
		{"half", 3, 3, 50},
		{"rounds up", 2, 1, 67},
		{"rounds down", 1, 2, 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchPercentage(tt.present, tt.missing)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestClassify_BucketPartition(t *testing.T) {
	present := []Skill{
		{Name: "JavaScript", Weight: 3},
		{Name: "Git", Weight: 1},
	}
	missing := []Skill{
		{Name: "Kubernetes", Weight: 3},
		{Name: "Jira", Weight: 1},
		{Name: "Terraform", Weight: 2},
	}

	b := Classify(present, missing)

	assert.Len(t, b.ImportantPresent, 1)
	assert.Len(t, b.LessImportantPresent, 1)
	assert.Len(t, b.ImportantMissing, 2)
	assert.Len(t, b.LessImportantMissing, 1)

	// Sub-buckets of a set are disjoint and exhaustive over that set.
	assert.Equal(t, len(b.Present), len(b.ImportantPresent)+len(b.LessImportantPresent))
	assert.Equal(t, len(b.Missing), len(b.ImportantMissing)+len(b.LessImportantMissing))
	for _, s := range b.ImportantPresent {
		assert.NotContains(t, b.LessImportantPresent, s)
	}
	for _, s := range b.ImportantMissing {
		assert.NotContains(t, b.LessImportantMissing, s)
	}

	assert.Equal(t, 4, b.PresentWeight)
	assert.Equal(t, 6, b.MissingWeight)
	assert.Equal(t, b.PresentWeight+b.MissingWeight, b.TotalWeight)
	assert.Equal(t, 40, b.MatchPercentage)
}

func TestClassify_EmptyInputs(t *testing.T) {
	b := Classify(nil, nil)
	assert.Empty(t, b.Present)
	assert.Empty(t, b.Missing)
	assert.Equal(t, 0, b.TotalWeight)
	assert.Equal(t, 0, b.MatchPercentage)
	// Buckets serialize as [] rather than null.
	require.NotNil(t, b.ImportantPresent)
	require.NotNil(t, b.LessImportantMissing)
}

func TestClassify_JSReactScenario(t *testing.T) {
	b := Classify(
		[]Skill{{Name: "JavaScript", Weight: 3}},
		[]Skill{{Name: "Kubernetes", Weight: 3}},
	)
	assert.Equal(t, 3, b.PresentWeight)
	assert.Equal(t, 3, b.MissingWeight)
	assert.Equal(t, 50, b.MatchPercentage)
}

func bucket(n int) []Skill {
	skills := make([]Skill, n)
	for i := range skills {
		skills[i] = Skill{Name: string(rune('a' + i)), Weight: 1 + i%3}
	}
	return skills
}

func TestShuffler_PreservesMembership(t *testing.T) {
	original := bucket(12)

	subtle := append([]Skill(nil), original...)
	full := append([]Skill(nil), original...)

	s := NewShuffler(42)
	s.Subtle(subtle)
	s.Full(full)

	assert.ElementsMatch(t, original, subtle)
	assert.ElementsMatch(t, original, full)
}

func TestShuffler_NilIsNoOp(t *testing.T) {
	original := bucket(8)
	copied := append([]Skill(nil), original...)

	var s *Shuffler
	s.Subtle(copied)
	s.Full(copied)

	assert.Equal(t, original, copied)
}

func TestShuffler_SeededIsReproducible(t *testing.T) {
	a := bucket(10)
	b := bucket(10)

	NewShuffler(7).Full(a)
	NewShuffler(7).Full(b)

	assert.Equal(t, a, b)
}

func TestShuffler_SubtleSmallBuckets(t *testing.T) {
	// Buckets shorter than 2 must not panic or change.
	var s = NewShuffler(1)
	one := bucket(1)
	s.Subtle(one)
	assert.Equal(t, bucket(1), one)
	s.Full(nil)
}
