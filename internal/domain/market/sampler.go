package market

import "math/rand"

// SampleRepresentatives picks exactly one persona per archetype, uniformly at
// random from that archetype's yes-classifications. The randomness source is
// injected and request-local so selections are reproducible under a seeded
// source. Archetypes are visited in first-seen classification order to keep
// the draw sequence stable for a given input.
//
// A chosen id with no matching decision record is a data-consistency anomaly;
// the archetype is skipped rather than failing the request.
func SampleRepresentatives(rng *rand.Rand, classifications []Classification, records []DecisionRecord) map[string]Representative {
	idsByArchetype := make(map[string][]string)
	var order []string
	for _, cl := range classifications {
		if _, seen := idsByArchetype[cl.AssignedArchetype]; !seen {
			order = append(order, cl.AssignedArchetype)
		}
		idsByArchetype[cl.AssignedArchetype] = append(idsByArchetype[cl.AssignedArchetype], cl.PersonaID)
	}

	recordByID := make(map[string]DecisionRecord, len(records))
	for _, rec := range records {
		recordByID[rec.PersonaID] = rec
	}

	out := make(map[string]Representative, len(order))
	for _, archetype := range order {
		ids := idsByArchetype[archetype]
		id := ids[rng.Intn(len(ids))]
		rec, ok := recordByID[id]
		if !ok {
			continue
		}
		out[archetype] = Representative{
			Archetype:      archetype,
			PersonaID:      id,
			PersonaSummary: rec.PersonaSummary,
		}
	}
	return out
}
