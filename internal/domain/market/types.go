package market

import "encoding/json"

// Age buckets used by the response's age_distribution. Order matters for the
// numeric fallback in BucketAges.
const (
	AgeBucket18To29 = "18-29"
	AgeBucket30To49 = "30-49"
	AgeBucket50To64 = "50-64"
	AgeBucket65Plus = "65+"
)

// AgeBuckets lists every age_distribution key, in display order.
var AgeBuckets = []string{AgeBucket18To29, AgeBucket30To49, AgeBucket50To64, AgeBucket65Plus}

// ProductPersonaSet is the per-request archetype and demographic frame
// produced once at the start of an analysis and immutable afterward.
type ProductPersonaSet struct {
	Archetypes []string `json:"personas"`
	AgeRanges  []string `json:"age_ranges"`
	Gender     string   `json:"gender"`
}

// DecisionRecord is one simulated persona's purchase outcome. Age is kept as
// a normalized string because the simulator may emit either a range label
// ("30-49") or a bare number, inconsistently within the same batch; empty
// means the field was absent or null.
type DecisionRecord struct {
	PersonaID      string `json:"persona_id"`
	Decision       string `json:"decision"`
	Age            string `json:"age"`
	PersonaSummary string `json:"persona_summary"`
}

// Classification assigns one yes-record to an archetype.
type Classification struct {
	PersonaID         string `json:"persona_id"`
	AssignedArchetype string `json:"assigned_archetype"`
}

// Representative is the single persona chosen to exemplify an archetype.
type Representative struct {
	Archetype      string
	PersonaID      string
	PersonaSummary string
}

// SimilarPersona is one stored-corpus match from the similarity lookup.
type SimilarPersona struct {
	ID      string
	Summary string
	Score   float64
}

type BuyTally struct {
	Yes int `json:"yes"`
	No  int `json:"no"`
}

// ConsumerInsight pairs the representative's id with the opaque insight
// payload returned by the insight generator.
type ConsumerInsight struct {
	PersonaID string          `json:"persona_id"`
	Insights  json.RawMessage `json:"insights"`
}

type Demographics struct {
	TargetAgeRanges []string `json:"target_age_ranges"`
	TargetGender    string   `json:"target_gender"`
}

// AnalysisResult is the complete response for one analysis request. It is
// built once by the pipeline and never mutated afterward.
type AnalysisResult struct {
	WouldBuyPie      BuyTally                   `json:"would_buy_pie"`
	YesPie           map[string]int             `json:"yes_pie"`
	AgeDistribution  map[string]int             `json:"age_distribution"`
	ConsumerInsights map[string]ConsumerInsight `json:"consumer_insights"`
	Demographics     Demographics               `json:"demographics"`
}
