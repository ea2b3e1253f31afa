package matching

import "sort"

// Claim is a one-to-one binding between a user skill and a JD skill. Each JD
// index and each normalized key is claimed at most once.
type Claim struct {
	UserIndex int
	JDIndex   int
	// Layer names the cascade strategy that produced the claim.
	Layer string
}

// Result holds the outcome of matching one request.
type Result struct {
	Claims []Claim
	// Present are the claimed JD tokens, in original extraction order.
	Present []SkillToken
	// Missing are the unclaimed JD tokens, in original extraction order.
	Missing []SkillToken
}

// Match pairs user skills against JD skills with the strategy cascade.
//
// Exact hits resolve through an O(1) key map. On a miss the remaining JD
// skills are scanned in descending weight order so that when several
// unclaimed skills could plausibly match, the heaviest is preferred. A JD
// skill leaves consideration as soon as it is claimed. J is small (tens), so
// the O(J) fallback scan per unmatched user skill is acceptable.
func Match(userSkills, jdSkills []SkillToken) Result {
	byKey := make(map[string]int, len(jdSkills))
	for i, tok := range jdSkills {
		if _, seen := byKey[tok.Key]; !seen {
			byKey[tok.Key] = i
		}
	}

	// Scan order for the heuristic layers: heaviest first, extraction order
	// as the tiebreak.
	scanOrder := make([]int, len(jdSkills))
	for i := range scanOrder {
		scanOrder[i] = i
	}
	sort.SliceStable(scanOrder, func(i, j int) bool {
		return jdSkills[scanOrder[i]].Weight > jdSkills[scanOrder[j]].Weight
	})

	claimedIdx := make(map[int]bool, len(jdSkills))
	claimedKey := make(map[string]bool, len(jdSkills))
	var claims []Claim

	claim := func(userIdx, jdIdx int, layer string) {
		claimedIdx[jdIdx] = true
		claimedKey[jdSkills[jdIdx].Key] = true
		claims = append(claims, Claim{UserIndex: userIdx, JDIndex: jdIdx, Layer: layer})
	}

	for ui, user := range userSkills {
		if jdIdx, ok := byKey[user.Key]; ok && !claimedIdx[jdIdx] && !claimedKey[user.Key] {
			claim(ui, jdIdx, Cascade[0].Name)
			continue
		}

		for _, jdIdx := range scanOrder {
			if claimedIdx[jdIdx] {
				continue
			}
			jd := jdSkills[jdIdx]
			if claimedKey[jd.Key] {
				continue
			}
			if layer, ok := matchAny(user, jd); ok {
				claim(ui, jdIdx, layer)
				break
			}
		}
	}

	res := Result{Claims: claims}
	for i, tok := range jdSkills {
		if claimedIdx[i] {
			res.Present = append(res.Present, tok)
		} else {
			res.Missing = append(res.Missing, tok)
		}
	}
	return res
}

// matchAny runs the heuristic layers (everything past exact_key) in cascade
// order and returns the name of the first layer that matches.
func matchAny(user, jd SkillToken) (string, bool) {
	for _, strategy := range Cascade[1:] {
		if strategy.Match(user, jd) {
			return strategy.Name, true
		}
	}
	return "", false
}
