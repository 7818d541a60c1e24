package llm

import (
	"context"
	"strings"
	"time"
)

// Delays is the simulated provider latency per operation.
type Delays struct {
	Analyze time.Duration
	Clauses time.Duration
	Explain time.Duration
	Chat    time.Duration
}

// DefaultDelays mirrors the response times the web client was built against.
func DefaultDelays() Delays {
	return Delays{
		Analyze: 1000 * time.Millisecond,
		Clauses: 800 * time.Millisecond,
		Explain: 1200 * time.Millisecond,
		Chat:    1500 * time.Millisecond,
	}
}

// Stub returns fixed legal analysis that never depends on the input text.
type Stub struct {
	Delays Delays
	now    func() time.Time
}

// NewStub builds a Stub; with simulateLatency false every call returns at once.
func NewStub(simulateLatency bool) *Stub {
	s := &Stub{now: time.Now}
	if simulateLatency {
		s.Delays = DefaultDelays()
	}
	return s
}

func (s *Stub) AnalyzeText(ctx context.Context, text, kind string) (Analysis, error) {
	if err := wait(ctx, s.Delays.Analyze); err != nil {
		return nil, err
	}
	switch kind {
	case KindRisk:
		return RiskAnalysis{
			Type: KindRisk,
			Risks: []string{
				"Potential ambiguity in termination clause",
				"Indemnification terms may be too broad",
				"Jurisdiction clause needs clarification",
			},
			Mitigations: []string{
				"Add specific termination notice requirements",
				"Define scope of indemnification more clearly",
				"Specify governing law jurisdiction",
			},
			Confidence: 85,
		}, nil
	case KindReview:
		return ReviewAnalysis{
			Type: KindReview,
			Strengths: []string{
				"Clear ownership of work product",
				"Well-defined payment terms",
				"Comprehensive confidentiality provisions",
			},
			Weaknesses: []string{
				"Vague force majeure clause",
				"Missing audit rights for service provider",
				"Inadequate dispute resolution mechanism",
			},
			Recommendations: []string{
				"Add specific force majeure events",
				"Include audit rights clause",
				"Specify arbitration process",
			},
			Confidence: 78,
		}, nil
	case KindAmbiguity:
		return AmbiguityAnalysis{
			Type: KindAmbiguity,
			AmbiguousTerms: []string{
				`"Reasonable efforts" without definition`,
				`"Material breach" not quantified`,
				`"Substantial portion" without specification`,
			},
			Clarifications: []string{
				`Define "reasonable efforts" as commercially reasonable steps`,
				"Specify material breach thresholds",
				`Quantify "substantial portion" as 20% or more`,
			},
			Confidence: 92,
		}, nil
	default:
		return GenericAnalysis{
			Type: kind,
			Risks: []string{
				"Potential ambiguity in termination clause",
				"Indemnification terms may be too broad",
				"Jurisdiction clause needs clarification",
			},
			Suggestions: []string{
				"Consider adding specific termination notice requirements",
				"Define scope of indemnification more clearly",
				"Specify governing law jurisdiction",
			},
			Confidence: 85,
		}, nil
	}
}

func (s *Stub) ExtractClauses(ctx context.Context, text string) ([]Clause, error) {
	if err := wait(ctx, s.Delays.Clauses); err != nil {
		return nil, err
	}
	return []Clause{
		{
			Type:       "termination",
			Text:       "Either party may terminate this agreement with 30 days written notice.",
			Confidence: 0.92,
			StartIndex: 245,
			EndIndex:   312,
		},
		{
			Type:       "indemnity",
			Text:       "The Provider shall indemnify and hold harmless the Client from any claims.",
			Confidence: 0.88,
			StartIndex: 456,
			EndIndex:   523,
		},
		{
			Type:       "confidentiality",
			Text:       "Both parties agree to maintain confidentiality of proprietary information.",
			Confidence: 0.95,
			StartIndex: 678,
			EndIndex:   752,
		},
		{
			Type:       "jurisdiction",
			Text:       "This agreement shall be governed by the laws of [State/Country].",
			Confidence: 0.87,
			StartIndex: 890,
			EndIndex:   951,
		},
	}, nil
}

const simplifiedExplanation = "This part of the contract says that if something goes wrong and someone gets sued, " +
	"one party (usually the service provider) will take responsibility and pay for any legal costs or damages. " +
	"It's like having insurance - they're saying 'don't worry, we'll handle it if there's a problem.'"

func (s *Stub) ExplainSimple(ctx context.Context, text string) (Explanation, error) {
	if err := wait(ctx, s.Delays.Explain); err != nil {
		return Explanation{}, err
	}
	return Explanation{
		Original:   text,
		Simplified: simplifiedExplanation,
		KeyPoints: []string{
			"One party protects the other from lawsuits",
			"They agree to pay legal costs if problems arise",
			"This is common in business contracts",
		},
	}, nil
}

const (
	chatRiskReply    = "Based on my analysis, the main risks in this contract include: potential ambiguity in termination clauses, broad indemnification terms, and unclear jurisdiction specifications."
	chatFavorReply   = "This contract appears to favor the service provider more than the client, particularly in the liability and termination sections."
	chatDefaultReply = "I've analyzed your question about the legal document. Here are the key points to consider..."
)

// Chat picks a reply by keyword. "favor" takes precedence over "risk".
// documentText is accepted for interface parity and ignored.
func (s *Stub) Chat(ctx context.Context, question, documentText string) (ChatReply, error) {
	if err := wait(ctx, s.Delays.Chat); err != nil {
		return ChatReply{}, err
	}
	return ChatReply{Response: chatReply(question), Timestamp: s.now().UTC()}, nil
}

func chatReply(question string) string {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "favor"):
		return chatFavorReply
	case strings.Contains(q, "risk"):
		return chatRiskReply
	default:
		return chatDefaultReply
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ Client = (*Stub)(nil)
