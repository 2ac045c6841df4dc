package market

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
)

// Collaborator contracts consumed by the pipeline. Implementations live in
// internal/services and are typically model-backed.

type PersonaGenerator interface {
	GeneratePersonas(ctx context.Context, productDescription string) ([]string, error)
}

type ProductPersonaGenerator interface {
	GenerateProductPersonas(ctx context.Context, productDescription string) (ProductPersonaSet, error)
}

type SimilarityFinder interface {
	FindTopPersonas(ctx context.Context, seeds []string, topK int) ([]SimilarPersona, error)
}

type DecisionSimulator interface {
	AnalyzeDecisions(ctx context.Context, productDescription string, ageRanges []string, gender string) ([]DecisionRecord, error)
}

type ArchetypeClassifier interface {
	ClassifyYes(ctx context.Context, yesRecords []DecisionRecord, archetypes []string) ([]Classification, error)
}

// Options tune per-request behavior. Zero values fall back to defaults.
type Options struct {
	// TopK is the number of stored personas requested from the similarity
	// lookup.
	TopK int
	// InsightConcurrency bounds the insight fan-out.
	InsightConcurrency int
	// StageTimeout bounds each of the three isolated collaborator stages.
	StageTimeout time.Duration
	// NewRand builds the request-local randomness source used for
	// representative sampling. Tests inject a seeded source here.
	NewRand func() *rand.Rand
}

// Pipeline sequences the analysis stages for one request:
//
//	Validate -> GeneratePersonas -> GenerateProductPersonas ->
//	FindTopPersonas -> AnalyzeDecisions -> ClassifyYes ->
//	Aggregate -> Sample -> Enrich -> Assemble
//
// It holds no per-request state; Run is safe for concurrent use.
type Pipeline struct {
	log             *logger.Logger
	personas        PersonaGenerator
	productPersonas ProductPersonaGenerator
	similarity      SimilarityFinder
	decisions       DecisionSimulator
	classifier      ArchetypeClassifier
	insights        InsightGenerator

	topK         int
	insightLimit int
	stageTimeout time.Duration
	newRand      func() *rand.Rand
}

func NewPipeline(
	log *logger.Logger,
	personas PersonaGenerator,
	productPersonas ProductPersonaGenerator,
	similarity SimilarityFinder,
	decisions DecisionSimulator,
	classifier ArchetypeClassifier,
	insights InsightGenerator,
	opts Options,
) *Pipeline {
	if opts.TopK <= 0 {
		opts.TopK = 10
	}
	if opts.InsightConcurrency <= 0 {
		opts.InsightConcurrency = 4
	}
	if opts.StageTimeout <= 0 {
		opts.StageTimeout = 90 * time.Second
	}
	if opts.NewRand == nil {
		opts.NewRand = func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}
	return &Pipeline{
		log:             log.With("component", "AnalysisPipeline"),
		personas:        personas,
		productPersonas: productPersonas,
		similarity:      similarity,
		decisions:       decisions,
		classifier:      classifier,
		insights:        insights,
		topK:            opts.TopK,
		insightLimit:    opts.InsightConcurrency,
		stageTimeout:    opts.StageTimeout,
		newRand:         opts.NewRand,
	}
}

// Run executes the full analysis for one product description. It is
// single-pass: no stage retries, and any failure aborts the request with no
// partial result. Failures in the similarity, decision, and classification
// stages carry stage attribution; everything else surfaces generically.
func (p *Pipeline) Run(ctx context.Context, productDescription string) (*AnalysisResult, error) {
	if strings.TrimSpace(productDescription) == "" {
		return nil, ErrInvalidInput
	}

	p.log.Info("Running persona flow", "product_description", productDescription)

	seeds, err := p.personas.GeneratePersonas(ctx, productDescription)
	if err != nil {
		return nil, fmt.Errorf("generating personas: %w", err)
	}
	p.log.Info("Generated personas", "count", len(seeds))

	personaSet, err := p.productPersonas.GenerateProductPersonas(ctx, productDescription)
	if err != nil {
		return nil, fmt.Errorf("generating product personas: %w", err)
	}
	p.log.Info("Generated product personas",
		"archetypes", personaSet.Archetypes,
		"age_ranges", personaSet.AgeRanges,
		"gender", personaSet.Gender,
	)

	similar, err := p.runSimilarity(ctx, seeds)
	if err != nil {
		return nil, &StageError{Stage: StageSimilarity, Err: err}
	}
	p.log.Info("Found top personas", "count", len(similar), "top_k", p.topK)

	records, err := p.runDecisions(ctx, productDescription, personaSet)
	if err != nil {
		return nil, &StageError{Stage: StageDecisions, Err: err}
	}
	p.log.Info("Purchase analysis completed", "records", len(records))

	yesRecords := filterYes(records)
	classifications, err := p.runClassify(ctx, yesRecords, personaSet.Archetypes)
	if err != nil {
		return nil, &StageError{Stage: StageClassify, Err: err}
	}
	p.log.Info("Classified yes personas", "count", len(classifications))

	tally := TallyDecisions(records)
	yesPie, dropped := TallyArchetypes(personaSet.Archetypes, classifications)
	if dropped > 0 {
		p.log.Warn("Classifier assigned archetypes outside the declared set; dropped from yes_pie",
			"dropped", dropped,
			"declared", personaSet.Archetypes,
		)
	}
	ageDist := BucketAges(records)

	reps := SampleRepresentatives(p.newRand(), classifications, records)

	insights, err := EnrichInsights(ctx, p.insights, productDescription, reps, p.insightLimit)
	if err != nil {
		return nil, fmt.Errorf("enriching insights: %w", err)
	}
	p.log.Info("Generated insights", "consumers", len(insights))

	return &AnalysisResult{
		WouldBuyPie:      tally,
		YesPie:           yesPie,
		AgeDistribution:  ageDist,
		ConsumerInsights: insights,
		Demographics: Demographics{
			TargetAgeRanges: personaSet.AgeRanges,
			TargetGender:    personaSet.Gender,
		},
	}, nil
}

func (p *Pipeline) runSimilarity(ctx context.Context, seeds []string) ([]SimilarPersona, error) {
	ctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()
	return p.similarity.FindTopPersonas(ctx, seeds, p.topK)
}

func (p *Pipeline) runDecisions(ctx context.Context, productDescription string, set ProductPersonaSet) ([]DecisionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()
	return p.decisions.AnalyzeDecisions(ctx, productDescription, set.AgeRanges, set.Gender)
}

func (p *Pipeline) runClassify(ctx context.Context, yesRecords []DecisionRecord, archetypes []string) ([]Classification, error) {
	ctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()
	return p.classifier.ClassifyYes(ctx, yesRecords, archetypes)
}

func filterYes(records []DecisionRecord) []DecisionRecord {
	out := make([]DecisionRecord, 0, len(records))
	for _, rec := range records {
		if strings.ToLower(rec.Decision) == "yes" {
			out = append(out, rec)
		}
	}
	return out
}
