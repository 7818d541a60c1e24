package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"legalassist-backend/internal/shared/server/middleware"
	"legalassist-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze-text", h.analyzeText)
	rg.POST("/extract-clauses", h.extractClauses)
	rg.POST("/explain-simple", h.explainSimple)
	rg.POST("/chat", h.chat)
}

type analyzeTextRequest struct {
	Text         string `json:"text"`
	AnalysisType string `json:"analysisType"`
}

type textRequest struct {
	Text string `json:"text"`
}

type chatRequest struct {
	Question     string `json:"question"`
	DocumentText string `json:"documentText"`
}

func (h *Handler) analyzeText(c *gin.Context) {
	var req analyzeTextRequest
	if !bind(c, &req) {
		return
	}
	c.Set("analysisType", req.AnalysisType)

	analysis, err := h.Svc.AnalyzeText(c.Request.Context(), middleware.UserIDFromContext(c), req.Text, req.AnalysisType)
	if err != nil {
		fail(c, "Error analyzing text")
		return
	}
	respond.OK(c, analysis)
}

func (h *Handler) extractClauses(c *gin.Context) {
	var req textRequest
	if !bind(c, &req) {
		return
	}

	clauses, err := h.Svc.ExtractClauses(c.Request.Context(), middleware.UserIDFromContext(c), req.Text)
	if err != nil {
		fail(c, "Error extracting clauses")
		return
	}
	respond.OK(c, clauses)
}

func (h *Handler) explainSimple(c *gin.Context) {
	var req textRequest
	if !bind(c, &req) {
		return
	}

	explanation, err := h.Svc.ExplainSimple(c.Request.Context(), middleware.UserIDFromContext(c), req.Text)
	if err != nil {
		fail(c, "Error explaining text")
		return
	}
	respond.OK(c, explanation)
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if !bind(c, &req) {
		return
	}

	reply, err := h.Svc.Chat(c.Request.Context(), middleware.UserIDFromContext(c), req.Question, req.DocumentText)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "question is required", nil)
			return
		}
		fail(c, "Error processing chat")
		return
	}
	respond.OK(c, reply)
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return false
	}
	return true
}

func fail(c *gin.Context, msg string) {
	respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
}
