package analyses

import (
	"context"
	"errors"
	"strings"
	"time"

	"legalassist-backend/internal/llm"
	"legalassist-backend/internal/shared/metrics"
	"legalassist-backend/internal/shared/telemetry"
)

const (
	opAnalyze = "analyze_text"
	opClauses = "extract_clauses"
	opExplain = "explain_simple"
	opChat    = "chat"
)

var ErrInvalidInput = errors.New("invalid input")

// Service validates analysis requests and forwards them to the provider.
type Service struct {
	Client llm.Client
}

func NewService(client llm.Client) *Service {
	return &Service{Client: client}
}

// AnalyzeText and the other text operations accept empty text; the provider
// decides what an empty document yields.
func (s *Service) AnalyzeText(ctx context.Context, userID, text, kind string) (llm.Analysis, error) {
	var out llm.Analysis
	err := s.observe(ctx, opAnalyze, userID, func() error {
		var err error
		out, err = s.Client.AnalyzeText(ctx, text, kind)
		return err
	})
	return out, err
}

func (s *Service) ExtractClauses(ctx context.Context, userID, text string) ([]llm.Clause, error) {
	var out []llm.Clause
	err := s.observe(ctx, opClauses, userID, func() error {
		var err error
		out, err = s.Client.ExtractClauses(ctx, text)
		return err
	})
	return out, err
}

func (s *Service) ExplainSimple(ctx context.Context, userID, text string) (llm.Explanation, error) {
	var out llm.Explanation
	err := s.observe(ctx, opExplain, userID, func() error {
		var err error
		out, err = s.Client.ExplainSimple(ctx, text)
		return err
	})
	return out, err
}

// Chat requires a question; documentText may be empty.
func (s *Service) Chat(ctx context.Context, userID, question, documentText string) (llm.ChatReply, error) {
	if strings.TrimSpace(question) == "" {
		return llm.ChatReply{}, ErrInvalidInput
	}
	var out llm.ChatReply
	err := s.observe(ctx, opChat, userID, func() error {
		var err error
		out, err = s.Client.Chat(ctx, question, documentText)
		return err
	})
	return out, err
}

func (s *Service) observe(ctx context.Context, op, userID string, call func() error) error {
	started := time.Now()
	err := call()
	elapsed := time.Since(started)
	metrics.ObserveAnalysis(op, elapsed, err)

	fields := map[string]any{
		"operation":   op,
		"user_id":     userID,
		"duration_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		fields["error"] = err
		if ctx.Err() != nil {
			telemetry.Warn("analysis.cancelled", fields)
		} else {
			telemetry.Error("analysis.failed", fields)
		}
		return err
	}
	telemetry.Debug("analysis.completed", fields)
	return nil
}
