package market

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestSampleRepresentatives_DeterministicUnderSeed(t *testing.T) {
	t.Parallel()

	classifications := []Classification{
		{PersonaID: "p1", AssignedArchetype: "EcoConscious"},
		{PersonaID: "p2", AssignedArchetype: "EcoConscious"},
		{PersonaID: "p3", AssignedArchetype: "EcoConscious"},
	}
	records := []DecisionRecord{
		{PersonaID: "p1", PersonaSummary: "summary one"},
		{PersonaID: "p2", PersonaSummary: "summary two"},
		{PersonaID: "p3", PersonaSummary: "summary three"},
	}

	first := SampleRepresentatives(rand.New(rand.NewSource(42)), classifications, records)
	second := SampleRepresentatives(rand.New(rand.NewSource(42)), classifications, records)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("selection not reproducible under the same seed: %v vs %v", first, second)
	}

	rep, ok := first["EcoConscious"]
	if !ok {
		t.Fatalf("expected a representative for EcoConscious: %v", first)
	}
	if rep.PersonaSummary == "" {
		t.Fatalf("representative must resolve its summary: %+v", rep)
	}
}

func TestSampleRepresentatives_SingletonGroup(t *testing.T) {
	t.Parallel()

	classifications := []Classification{{PersonaID: "p9", AssignedArchetype: "Budget"}}
	records := []DecisionRecord{{PersonaID: "p9", PersonaSummary: "frugal shopper"}}

	for seed := int64(0); seed < 5; seed++ {
		reps := SampleRepresentatives(rand.New(rand.NewSource(seed)), classifications, records)
		rep, ok := reps["Budget"]
		if !ok || rep.PersonaID != "p9" {
			t.Fatalf("seed %d: singleton member must always be selected: %v", seed, reps)
		}
	}
}

func TestSampleRepresentatives_SkipsUnresolvableID(t *testing.T) {
	t.Parallel()

	classifications := []Classification{{PersonaID: "ghost", AssignedArchetype: "Budget"}}
	records := []DecisionRecord{{PersonaID: "p1", PersonaSummary: "unrelated"}}

	reps := SampleRepresentatives(rand.New(rand.NewSource(1)), classifications, records)
	if len(reps) != 0 {
		t.Fatalf("archetype with unresolvable persona id must be skipped: %v", reps)
	}
}

func TestSampleRepresentatives_OnePerArchetype(t *testing.T) {
	t.Parallel()

	classifications := []Classification{
		{PersonaID: "p1", AssignedArchetype: "EcoConscious"},
		{PersonaID: "p2", AssignedArchetype: "Budget"},
		{PersonaID: "p3", AssignedArchetype: "Budget"},
	}
	records := []DecisionRecord{
		{PersonaID: "p1", PersonaSummary: "a"},
		{PersonaID: "p2", PersonaSummary: "b"},
		{PersonaID: "p3", PersonaSummary: "c"},
	}

	reps := SampleRepresentatives(rand.New(rand.NewSource(7)), classifications, records)
	if len(reps) != 2 {
		t.Fatalf("expected one representative per archetype: %v", reps)
	}
	if reps["EcoConscious"].PersonaID != "p1" {
		t.Fatalf("unexpected EcoConscious representative: %+v", reps["EcoConscious"])
	}
	budget := reps["Budget"].PersonaID
	if budget != "p2" && budget != "p3" {
		t.Fatalf("Budget representative must come from its own group: %q", budget)
	}
}
