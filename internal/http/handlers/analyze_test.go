package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/marketlens-backend/internal/domain/market"
	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
)

type stubAnalyzer struct {
	result *market.AnalysisResult
	err    error
	got    string
}

func (s *stubAnalyzer) Run(ctx context.Context, productDescription string) (*market.AnalysisResult, error) {
	s.got = productDescription
	if strings.TrimSpace(productDescription) == "" {
		return nil, market.ErrInvalidInput
	}
	return s.result, s.err
}

func newAnalyzeRouter(stub *stubAnalyzer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAnalyzeHandler(logger.NewNop(), stub)
	r.POST("/analyze", h.Analyze)
	return r
}

func postAnalyze(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAnalyze_Success(t *testing.T) {
	stub := &stubAnalyzer{result: &market.AnalysisResult{
		WouldBuyPie:     market.BuyTally{Yes: 3, No: 1},
		YesPie:          map[string]int{"EcoConscious": 2, "Budget": 1},
		AgeDistribution: map[string]int{"18-29": 1, "30-49": 2, "50-64": 0, "65+": 1},
		ConsumerInsights: map[string]market.ConsumerInsight{
			"EcoConscious": {PersonaID: "p1", Insights: json.RawMessage(`{"headline":"x"}`)},
		},
		Demographics: market.Demographics{TargetAgeRanges: []string{"18-29"}, TargetGender: "Both"},
	}}

	rec := postAnalyze(t, newAnalyzeRouter(stub), `{"product_description":"eco-friendly water bottle"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	if stub.got != "eco-friendly water bottle" {
		t.Fatalf("pipeline received wrong description: %q", stub.got)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	for _, key := range []string{"would_buy_pie", "yes_pie", "age_distribution", "consumer_insights", "demographics"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("response missing key %q: %s", key, rec.Body.String())
		}
	}
}

func TestAnalyze_EmptyDescription(t *testing.T) {
	stub := &stubAnalyzer{}
	rec := postAnalyze(t, newAnalyzeRouter(stub), `{"product_description":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "product_description") {
		t.Fatalf("detail must name the missing field: %s", rec.Body.String())
	}
}

func TestAnalyze_MalformedBody(t *testing.T) {
	rec := postAnalyze(t, newAnalyzeRouter(&stubAnalyzer{}), `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestAnalyze_StageFailureIsAttributed(t *testing.T) {
	stub := &stubAnalyzer{err: &market.StageError{
		Stage: market.StageDecisions,
		Err:   errors.New("model timeout"),
	}}

	rec := postAnalyze(t, newAnalyzeRouter(stub), `{"product_description":"bottle"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error JSON: %v", err)
	}
	want := "Error analyzing purchase decisions: model timeout"
	if body.Detail != want {
		t.Fatalf("unexpected detail: got=%q want=%q", body.Detail, want)
	}
}

func TestAnalyze_GenericFailure(t *testing.T) {
	stub := &stubAnalyzer{err: errors.New("enriching insights: boom")}

	rec := postAnalyze(t, newAnalyzeRouter(stub), `{"product_description":"bottle"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.HasPrefix(strings.TrimSpace(rec.Body.String()), `{"detail":"Internal server error:`) {
		t.Fatalf("generic failures must not leak stage attribution: %s", rec.Body.String())
	}
}
