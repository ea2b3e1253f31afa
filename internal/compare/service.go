package compare

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mentorque/skillmatch/internal/engine"
	"github.com/mentorque/skillmatch/internal/matching"
	"github.com/mentorque/skillmatch/internal/scoring"
	"github.com/mentorque/skillmatch/internal/vocab"
)

// Extractor is the gateway surface the service depends on. Satisfied by
// *engine.Supervisor; tests substitute fakes.
type Extractor interface {
	Extract(ctx context.Context, text string) (*engine.ExtractResponse, error)
}

// Recorder persists finished reports. Optional; a nil Recorder disables
// history.
type Recorder interface {
	RecordComparison(ctx context.Context, report *Report) error
}

// Service runs comparison requests end to end.
type Service struct {
	extractor Extractor
	vocab     *vocab.Store
	shuffler  *scoring.Shuffler
	recorder  Recorder
	log       *zap.Logger
}

// NewService wires a comparison service. shuffler may be nil for
// deterministic ordering; recorder may be nil to disable history.
func NewService(extractor Extractor, store *vocab.Store, shuffler *scoring.Shuffler, recorder Recorder, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		extractor: extractor,
		vocab:     store,
		shuffler:  shuffler,
		recorder:  recorder,
		log:       log,
	}
}

// Compare validates the request, extracts weighted skills from the job
// description, matches the user's skills against them, and assembles the
// classified report. Absence of matches is data, not an error.
func (s *Service) Compare(ctx context.Context, req *Request) (*Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	extraction, err := s.extractor.Extract(ctx, req.JobDescriptionText)
	if err != nil {
		return nil, err
	}

	jdTokens := extraction.Tokens()
	userTokens := matching.TokenizeUserSkills(req.UserSkills)
	result := matching.Match(userTokens, jdTokens)

	breakdown := scoring.Classify(
		s.displaySkills(result.Present),
		s.displaySkills(result.Missing),
	)

	// Presentation-only randomization: bucket membership, weights, and the
	// percentage are already fixed.
	s.shuffler.Subtle(breakdown.Present)
	s.shuffler.Subtle(breakdown.ImportantPresent)
	s.shuffler.Subtle(breakdown.LessImportantPresent)
	s.shuffler.Full(breakdown.Missing)
	s.shuffler.Full(breakdown.ImportantMissing)
	s.shuffler.Full(breakdown.LessImportantMissing)

	report := buildReport(breakdown)
	if req.IncludeTrace {
		report.Trace = s.buildTrace(extraction, userTokens, jdTokens, result)
	}

	s.log.Info("comparison complete",
		zap.Int("jd_skills", len(jdTokens)),
		zap.Int("user_skills", len(userTokens)),
		zap.Int("match_percentage", report.MatchPercentage),
		zap.Duration("elapsed", time.Since(start)))

	if s.recorder != nil {
		if err := s.recorder.RecordComparison(ctx, report); err != nil {
			s.log.Warn("failed to record comparison history", zap.Error(err))
		}
	}

	return report, nil
}

func (s *Service) displaySkills(tokens []matching.SkillToken) []scoring.Skill {
	skills := make([]scoring.Skill, len(tokens))
	for i, tok := range tokens {
		skills[i] = scoring.Skill{
			Name:   s.vocab.Titleize(tok.Original),
			Weight: tok.Weight,
		}
	}
	return skills
}

func (s *Service) buildTrace(extraction *engine.ExtractResponse, userTokens, jdTokens []matching.SkillToken, result matching.Result) *Trace {
	claimed := make(map[int]matching.Claim, len(result.Claims))
	for _, c := range result.Claims {
		claimed[c.UserIndex] = c
	}

	decisions := make([]TraceDecision, 0, len(userTokens))
	for i, user := range userTokens {
		d := TraceDecision{UserSkill: user.Original}
		if c, ok := claimed[i]; ok {
			d.MatchedSkill = jdTokens[c.JDIndex].Original
			d.Layer = c.Layer
		}
		decisions = append(decisions, d)
	}

	return &Trace{Stats: extraction.Stats, Decisions: decisions}
}
