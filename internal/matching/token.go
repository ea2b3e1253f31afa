// Package matching decides equivalence between user-declared skills and
// skills extracted from a job description.
package matching

import "strings"

// SkillToken is a single skill term in its original and canonical forms.
// Tokens are immutable once created.
type SkillToken struct {
	// Original is the term as supplied by the caller or the extraction engine.
	Original string
	// Key is the canonical comparison key: lowercase, alphanumeric runes only.
	Key string
	// Weight is the importance assigned by the extraction engine (>= 1).
	Weight int
}

// NewToken builds a SkillToken from a raw term. Weights below 1 are lifted
// to the default weight of 1.
func NewToken(original string, weight int) SkillToken {
	if weight < 1 {
		weight = 1
	}
	return SkillToken{
		Original: strings.TrimSpace(original),
		Key:      NormalizeKey(original),
		Weight:   weight,
	}
}

// TokenizeUserSkills converts the caller's declared skills into tokens.
// Empty and near-empty terms are skipped: fewer than 2 trimmed characters,
// or nothing alphanumeric left after normalization ("C#" survives because
// its trimmed form is 2 characters even though its key is just "c").
// Duplicates are kept since downstream claiming is idempotent.
func TokenizeUserSkills(skills []string) []SkillToken {
	tokens := make([]SkillToken, 0, len(skills))
	for _, s := range skills {
		tok := NewToken(s, 1)
		if len(tok.Original) < 2 || tok.Key == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
