package llm

import (
	"context"
	"time"
)

// Analysis kinds with a dedicated payload shape. Any other kind gets a
// GenericAnalysis that echoes the kind back.
const (
	KindRisk      = "risk"
	KindReview    = "review"
	KindAmbiguity = "ambiguity"
)

// Client abstracts the provider behind the analysis endpoints.
type Client interface {
	AnalyzeText(ctx context.Context, text, kind string) (Analysis, error)
	ExtractClauses(ctx context.Context, text string) ([]Clause, error)
	ExplainSimple(ctx context.Context, text string) (Explanation, error)
	Chat(ctx context.Context, question, documentText string) (ChatReply, error)
}

// Analysis is one of RiskAnalysis, ReviewAnalysis, AmbiguityAnalysis or
// GenericAnalysis.
type Analysis interface {
	AnalysisType() string
}

type RiskAnalysis struct {
	Type        string   `json:"type"`
	Risks       []string `json:"risks"`
	Mitigations []string `json:"mitigations"`
	Confidence  int      `json:"confidence"`
}

func (a RiskAnalysis) AnalysisType() string { return a.Type }

type ReviewAnalysis struct {
	Type            string   `json:"type"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
	Confidence      int      `json:"confidence"`
}

func (a ReviewAnalysis) AnalysisType() string { return a.Type }

type AmbiguityAnalysis struct {
	Type           string   `json:"type"`
	AmbiguousTerms []string `json:"ambiguousTerms"`
	Clarifications []string `json:"clarifications"`
	Confidence     int      `json:"confidence"`
}

func (a AmbiguityAnalysis) AnalysisType() string { return a.Type }

// GenericAnalysis is returned for unrecognised kinds. Type is omitted when
// the caller did not send one.
type GenericAnalysis struct {
	Type        string   `json:"type,omitempty"`
	Risks       []string `json:"risks"`
	Suggestions []string `json:"suggestions"`
	Confidence  int      `json:"confidence"`
}

func (a GenericAnalysis) AnalysisType() string { return a.Type }

// Clause is a recognised contract clause. Offsets are character positions.
type Clause struct {
	Type       string  `json:"type"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	StartIndex int     `json:"startIndex"`
	EndIndex   int     `json:"endIndex"`
}

type Explanation struct {
	Original   string   `json:"original"`
	Simplified string   `json:"simplified"`
	KeyPoints  []string `json:"keyPoints"`
}

type ChatReply struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}
