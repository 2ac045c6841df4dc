package market

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// InsightGenerator produces the opaque insight payload for one
// representative. Implementations are expected to be slow (one model call
// per archetype).
type InsightGenerator interface {
	GenerateInsights(ctx context.Context, productDescription, archetype, personaSummary string) (json.RawMessage, error)
}

// EnrichInsights fans out one insight call per representative, bounded by
// limit. Representatives with an empty summary are skipped. The calls have
// no data dependency on each other, but any failure aborts the whole batch;
// there is no partial insights result.
func EnrichInsights(ctx context.Context, gen InsightGenerator, productDescription string, reps map[string]Representative, limit int) (map[string]ConsumerInsight, error) {
	if limit <= 0 {
		limit = 1
	}

	out := make(map[string]ConsumerInsight, len(reps))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for archetype, rep := range reps {
		if rep.PersonaSummary == "" {
			continue
		}
		archetype, rep := archetype, rep
		g.Go(func() error {
			insights, err := gen.GenerateInsights(gctx, productDescription, archetype, rep.PersonaSummary)
			if err != nil {
				return fmt.Errorf("generating insights for %q: %w", archetype, err)
			}
			mu.Lock()
			out[archetype] = ConsumerInsight{PersonaID: rep.PersonaID, Insights: insights}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
