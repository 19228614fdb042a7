package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/platefinder/backend/internal/domain"
	"github.com/platefinder/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	pipeline *usecase.PipelineService
	engine   *usecase.RecommendationService
	sessions domain.FilteredSetStore
	feedback domain.FeedbackRepository // nil when feedback is disabled
}

// NewHandler creates a new HTTP handler
func NewHandler(
	pipeline *usecase.PipelineService,
	engine *usecase.RecommendationService,
	sessions domain.FilteredSetStore,
	feedback domain.FeedbackRepository,
) *Handler {
	return &Handler{
		pipeline: pipeline,
		engine:   engine,
		sessions: sessions,
		feedback: feedback,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "platefinder-backend",
		"version": "1.0.0",
	})
}

type recommendRequest struct {
	Cuisines []string `json:"cuisines" binding:"required"`
	Budget   string   `json:"budget" binding:"required"`
	Location string   `json:"location" binding:"required"`
	Strategy string   `json:"strategy"`
	TopN     int      `json:"topN"`
}

type recommendResponse struct {
	Results       []domain.Recommendation `json:"results"`
	FilteredCount int                     `json:"filteredCount"`
	Handle        string                  `json:"handle"`
	Warning       string                  `json:"warning,omitempty"`
	Message       string                  `json:"message,omitempty"`
}

// Recommend runs the full pipeline over the dataset source, ranks the
// survivors against the request criteria, and stores the filtered set
// so the caller can re-rank later via the returned handle.
func (h *Handler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	criteria := domain.Criteria{
		Cuisines: req.Cuisines,
		Budget:   req.Budget,
		Location: req.Location,
		Strategy: domain.ParseStrategy(req.Strategy),
		TopN:     req.TopN,
	}

	cleaned, err := h.pipeline.Clean(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrLoadFailed) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := h.engine.Recommend(c.Request.Context(), cleaned.Records, cleaned.Columns, criteria)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, domain.ErrInvalidRequest) && !errors.Is(err, domain.ErrUnknownStrategy) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	handle, err := h.sessions.Put(c.Request.Context(), result.Filtered)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := recommendResponse{
		Results:       result.Ranked,
		FilteredCount: len(result.Filtered.Records),
		Handle:        handle,
		Warning:       cleaned.Report.Warning(),
	}
	if len(result.Ranked) == 0 {
		resp.Message = noMatchMessage(result.Filtered.Criteria)
	}

	c.JSON(http.StatusOK, resp)
}

type rerankRequest struct {
	Handle   string `json:"handle" binding:"required"`
	Strategy string `json:"strategy" binding:"required"`
	TopN     int    `json:"topN"`
}

// Rerank re-scores a previously filtered set under a new strategy,
// bypassing normalization, cleaning, and filtering entirely.
func (h *Handler) Rerank(c *gin.Context) {
	var req rerankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set, err := h.sessions.Get(c.Request.Context(), req.Handle)
	if err != nil {
		if errors.Is(err, domain.ErrFilteredSetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ranked, err := h.engine.Rerank(c.Request.Context(), set, domain.ParseStrategy(req.Strategy), req.TopN)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, domain.ErrInvalidRequest) && !errors.Is(err, domain.ErrUnknownStrategy) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	resp := recommendResponse{
		Results:       ranked,
		FilteredCount: len(set.Records),
		Handle:        req.Handle,
	}
	if len(ranked) == 0 {
		resp.Message = noMatchMessage(set.Criteria)
	}

	c.JSON(http.StatusOK, resp)
}

type feedbackRequest struct {
	Satisfaction int             `json:"satisfaction" binding:"required,min=1,max=5"`
	Relevant     *bool           `json:"relevant" binding:"required"`
	Criteria     domain.Criteria `json:"criteria"`
}

// SubmitFeedback persists a user's reaction to a recommendation set.
func (h *Handler) SubmitFeedback(c *gin.Context) {
	if h.feedback == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": domain.ErrFeedbackUnavailable.Error()})
		return
	}

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fb := &domain.Feedback{
		Satisfaction: req.Satisfaction,
		Relevant:     *req.Relevant,
		Criteria:     req.Criteria,
	}
	if err := h.feedback.Save(c.Request.Context(), fb); err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": fb.ID})
}

// noMatchMessage echoes the criteria back so an operator can see what
// produced the empty result.
func noMatchMessage(criteria domain.Criteria) string {
	return fmt.Sprintf(
		"No restaurants match your preferences (cuisine: %s, budget: %s, location: %s, strategy: %s). Try adjusting your filters or using a broader location.",
		strings.Join(criteria.Cuisines, ", "), criteria.Budget, criteria.Location, criteria.Strategy.Label(),
	)
}
