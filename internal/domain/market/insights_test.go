package market

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
)

type countingInsights struct {
	mu    sync.Mutex
	calls []string
	fail  string
}

func (c *countingInsights) GenerateInsights(ctx context.Context, product, archetype, summary string) (json.RawMessage, error) {
	c.mu.Lock()
	c.calls = append(c.calls, archetype)
	c.mu.Unlock()
	if archetype == c.fail {
		return nil, errors.New("boom")
	}
	return json.RawMessage(`{"ok":true}`), nil
}

func TestEnrichInsights_SkipsEmptySummaries(t *testing.T) {
	t.Parallel()

	gen := &countingInsights{}
	reps := map[string]Representative{
		"EcoConscious": {Archetype: "EcoConscious", PersonaID: "p1", PersonaSummary: "eco fan"},
		"Budget":       {Archetype: "Budget", PersonaID: "p2", PersonaSummary: ""},
	}

	out, err := EnrichInsights(context.Background(), gen, "bottle", reps, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected only the non-empty summary to be enriched: %v", out)
	}
	if _, ok := out["Budget"]; ok {
		t.Fatalf("empty-summary representative must be skipped: %v", out)
	}
	if len(gen.calls) != 1 {
		t.Fatalf("no insight call may be attempted for empty summaries: %v", gen.calls)
	}
}

func TestEnrichInsights_FailureAbortsBatch(t *testing.T) {
	t.Parallel()

	gen := &countingInsights{fail: "Budget"}
	reps := map[string]Representative{
		"EcoConscious": {Archetype: "EcoConscious", PersonaID: "p1", PersonaSummary: "eco fan"},
		"Budget":       {Archetype: "Budget", PersonaID: "p2", PersonaSummary: "frugal"},
	}

	if _, err := EnrichInsights(context.Background(), gen, "bottle", reps, 1); err == nil {
		t.Fatalf("expected the failing call to abort the batch")
	}
}

func TestEnrichInsights_KeyedByArchetype(t *testing.T) {
	t.Parallel()

	gen := &countingInsights{}
	reps := map[string]Representative{
		"EcoConscious": {Archetype: "EcoConscious", PersonaID: "p1", PersonaSummary: "eco fan"},
		"Budget":       {Archetype: "Budget", PersonaID: "p2", PersonaSummary: "frugal"},
		"Luxury":       {Archetype: "Luxury", PersonaID: "p3", PersonaSummary: "premium buyer"},
	}

	out, err := EnrichInsights(context.Background(), gen, "bottle", reps, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected one entry per representative: %v", out)
	}
	if out["EcoConscious"].PersonaID != "p1" || out["Budget"].PersonaID != "p2" || out["Luxury"].PersonaID != "p3" {
		t.Fatalf("entries must keep their representative's persona id: %v", out)
	}
}
