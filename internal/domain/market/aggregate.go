package market

import (
	"strconv"
	"strings"
)

// TallyDecisions counts yes/no outcomes. Decisions are matched
// case-insensitively; anything else (missing, malformed) contributes to
// neither counter. Records come from a probabilistic collaborator, so
// malformed fields are skipped rather than rejected.
func TallyDecisions(records []DecisionRecord) BuyTally {
	var tally BuyTally
	for _, rec := range records {
		switch strings.ToLower(rec.Decision) {
		case "yes":
			tally.Yes++
		case "no":
			tally.No++
		}
	}
	return tally
}

// TallyArchetypes counts classifications per declared archetype. Every
// declared archetype appears in the result, zero or not. Classifications
// naming an unknown archetype are dropped; the dropped count is returned so
// callers can watch for classifier drift.
func TallyArchetypes(archetypes []string, classifications []Classification) (map[string]int, int) {
	counts := make(map[string]int, len(archetypes))
	for _, a := range archetypes {
		counts[a] = 0
	}
	dropped := 0
	for _, cl := range classifications {
		if _, ok := counts[cl.AssignedArchetype]; ok {
			counts[cl.AssignedArchetype]++
		} else {
			dropped++
		}
	}
	return counts, dropped
}

// BucketAges distributes records across the four age buckets. The age field
// is matched as a range label first and parsed numerically only as a
// fallback, because the simulator emits both representations within the same
// batch. Ages below 18 and unparseable values are skipped.
func BucketAges(records []DecisionRecord) map[string]int {
	dist := make(map[string]int, len(AgeBuckets))
	for _, b := range AgeBuckets {
		dist[b] = 0
	}
	for _, rec := range records {
		age := strings.TrimSpace(rec.Age)
		if age == "" {
			continue
		}
		switch age {
		case AgeBucket18To29, AgeBucket30To49, AgeBucket50To64:
			dist[age]++
			continue
		}
		if strings.HasPrefix(age, "65") {
			dist[AgeBucket65Plus]++
			continue
		}
		n, err := strconv.Atoi(age)
		if err != nil {
			continue
		}
		switch {
		case n >= 18 && n <= 29:
			dist[AgeBucket18To29]++
		case n >= 30 && n <= 49:
			dist[AgeBucket30To49]++
		case n >= 50 && n <= 64:
			dist[AgeBucket50To64]++
		case n >= 65:
			dist[AgeBucket65Plus]++
		}
	}
	return dist
}
