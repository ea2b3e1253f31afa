package compare

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mentorque/skillmatch/internal/engine"
	"github.com/mentorque/skillmatch/internal/scoring"
	"github.com/mentorque/skillmatch/internal/vocab"
)

type fakeExtractor struct {
	resp *engine.ExtractResponse
	err  error
	text string
}

func (f *fakeExtractor) Extract(_ context.Context, text string) (*engine.ExtractResponse, error) {
	f.text = text
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func emptyVocab(t *testing.T) *vocab.Store {
	t.Helper()
	return vocab.NewStore(filepath.Join(t.TempDir(), "absent.csv"), zap.NewNop())
}

func newTestService(extractor Extractor) *Service {
	return NewService(extractor, vocab.NewStore("absent.csv", zap.NewNop()), nil, nil, zap.NewNop())
}

const jdText = "We are hiring an engineer with JavaScript and Kubernetes experience."

func extraction(matches ...engine.SkillMatch) *engine.ExtractResponse {
	resp := &engine.ExtractResponse{Matches: matches, Stats: map[string]any{"total_matches": len(matches)}}
	return resp
}

func TestCompare_JSReactScenario(t *testing.T) {
	fake := &fakeExtractor{resp: extraction(
		engine.SkillMatch{Skill: "javascript", Canonical: "JavaScript", Weight: 3},
		engine.SkillMatch{Skill: "kubernetes", Canonical: "Kubernetes", Weight: 3},
	)}
	svc := newTestService(fake)

	report, err := svc.Compare(context.Background(), &Request{
		JobDescriptionText: jdText,
		UserSkills:         []string{"JS", "React"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"JavaScript"}, report.PresentSkills)
	assert.Equal(t, []string{"Kubernetes"}, report.MissingSkills)
	assert.Equal(t, 50, report.MatchPercentage)
	assert.Equal(t, 3, report.PresentWeight)
	assert.Equal(t, 3, report.MissingWeight)
	assert.Equal(t, 6, report.TotalWeight)
	assert.Equal(t, 1, report.PresentCount)
	assert.Equal(t, 2, report.TotalImportantKeywords)
	assert.Nil(t, report.Trace)
	assert.Equal(t, jdText, fake.text)
}

func TestCompare_EmptyExtraction(t *testing.T) {
	svc := newTestService(&fakeExtractor{resp: extraction()})

	report, err := svc.Compare(context.Background(), &Request{
		JobDescriptionText: jdText,
		UserSkills:         []string{"Go"},
	})
	require.NoError(t, err)

	assert.Empty(t, report.PresentSkills)
	assert.Empty(t, report.MissingSkills)
	assert.Equal(t, 0, report.TotalWeight)
	assert.Equal(t, 0, report.MatchPercentage)
}

func TestCompare_WeightConservationAndPartition(t *testing.T) {
	fake := &fakeExtractor{resp: extraction(
		engine.SkillMatch{Skill: "python", Canonical: "Python", Weight: 3},
		engine.SkillMatch{Skill: "django", Canonical: "Django", Weight: 2},
		engine.SkillMatch{Skill: "git", Canonical: "Git", Weight: 1},
		engine.SkillMatch{Skill: "jira", Canonical: "Jira", Weight: 1},
	)}
	svc := newTestService(fake)

	report, err := svc.Compare(context.Background(), &Request{
		JobDescriptionText: jdText,
		UserSkills:         []string{"python", "git"},
	})
	require.NoError(t, err)

	assert.Equal(t, report.TotalWeight, report.PresentWeight+report.MissingWeight)
	assert.GreaterOrEqual(t, report.MatchPercentage, 0)
	assert.LessOrEqual(t, report.MatchPercentage, 100)

	assert.ElementsMatch(t,
		append(append([]string{}, report.ImportantPresentSkills...), report.LessImportantPresentSkills...),
		report.PresentSkills)
	assert.ElementsMatch(t,
		append(append([]string{}, report.ImportantMissingSkills...), report.LessImportantMissingSkills...),
		report.MissingSkills)
}

func TestCompare_IdempotentWithoutShuffler(t *testing.T) {
	fake := &fakeExtractor{resp: extraction(
		engine.SkillMatch{Skill: "javascript", Canonical: "JavaScript", Weight: 3},
		engine.SkillMatch{Skill: "postgresql", Canonical: "PostgreSQL", Weight: 2},
		engine.SkillMatch{Skill: "docker", Canonical: "Docker", Weight: 2},
		engine.SkillMatch{Skill: "jira", Canonical: "Jira", Weight: 1},
	)}
	svc := newTestService(fake)
	req := &Request{JobDescriptionText: jdText, UserSkills: []string{"JS", "SQL"}}

	first, err := svc.Compare(context.Background(), req)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := svc.Compare(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCompare_ShuffleOnlyReorders(t *testing.T) {
	matches := []engine.SkillMatch{
		{Skill: "a1", Canonical: "Alpha", Weight: 3},
		{Skill: "b1", Canonical: "Beta", Weight: 3},
		{Skill: "c1", Canonical: "Gamma", Weight: 2},
		{Skill: "d1", Canonical: "Delta", Weight: 1},
		{Skill: "e1", Canonical: "Epsilon", Weight: 1},
	}
	plain := newTestService(&fakeExtractor{resp: extraction(matches...)})
	shuffled := NewService(
		&fakeExtractor{resp: extraction(matches...)},
		emptyVocab(t), scoring.NewShuffler(99), nil, zap.NewNop())

	req := &Request{JobDescriptionText: jdText, UserSkills: []string{"alpha", "delta"}}

	base, err := plain.Compare(context.Background(), req)
	require.NoError(t, err)
	randomized, err := shuffled.Compare(context.Background(), req)
	require.NoError(t, err)

	assert.ElementsMatch(t, base.PresentSkills, randomized.PresentSkills)
	assert.ElementsMatch(t, base.MissingSkills, randomized.MissingSkills)
	assert.Equal(t, base.MatchPercentage, randomized.MatchPercentage)
	assert.Equal(t, base.PresentWeight, randomized.PresentWeight)
	assert.Equal(t, base.TotalWeight, randomized.TotalWeight)
}

func TestCompare_InputValidation(t *testing.T) {
	svc := newTestService(&fakeExtractor{resp: extraction()})

	tests := []struct {
		name string
		req  *Request
	}{
		{"empty text", &Request{JobDescriptionText: ""}},
		{"whitespace only", &Request{JobDescriptionText: "   \n\t  "}},
		{"too short after normalization", &Request{JobDescriptionText: "go   dev \n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Compare(context.Background(), tt.req)
			var ie *InputError
			require.ErrorAs(t, err, &ie)
		})
	}
}

func TestCompare_EngineErrorsPassThrough(t *testing.T) {
	wantErr := &engine.UnavailableError{Endpoint: "http://127.0.0.1:8000", Message: "down"}
	svc := newTestService(&fakeExtractor{err: wantErr})

	_, err := svc.Compare(context.Background(), &Request{JobDescriptionText: jdText})
	assert.True(t, engine.IsUnavailable(err))
}

func TestCompare_TraceOnRequest(t *testing.T) {
	fake := &fakeExtractor{resp: extraction(
		engine.SkillMatch{Skill: "javascript", Canonical: "JavaScript", Weight: 3},
		engine.SkillMatch{Skill: "terraform", Canonical: "Terraform", Weight: 1},
	)}
	svc := newTestService(fake)

	report, err := svc.Compare(context.Background(), &Request{
		JobDescriptionText: jdText,
		UserSkills:         []string{"JS", "Rust"},
		IncludeTrace:       true,
	})
	require.NoError(t, err)
	require.NotNil(t, report.Trace)
	require.Len(t, report.Trace.Decisions, 2)

	assert.Equal(t, "JS", report.Trace.Decisions[0].UserSkill)
	assert.Equal(t, "JavaScript", report.Trace.Decisions[0].MatchedSkill)
	assert.Equal(t, "abbreviation", report.Trace.Decisions[0].Layer)
	assert.Equal(t, "Rust", report.Trace.Decisions[1].UserSkill)
	assert.Empty(t, report.Trace.Decisions[1].MatchedSkill)
}

type countingRecorder struct{ n int }

func (c *countingRecorder) RecordComparison(context.Context, *Report) error {
	c.n++
	return nil
}

func TestCompare_RecordsHistory(t *testing.T) {
	rec := &countingRecorder{}
	svc := NewService(
		&fakeExtractor{resp: extraction(engine.SkillMatch{Skill: "go", Canonical: "Go", Weight: 2})},
		emptyVocab(t), nil, rec, zap.NewNop())

	_, err := svc.Compare(context.Background(), &Request{JobDescriptionText: jdText})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.n)
}
