package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/model"
)

// HealthResponse reports readiness of the pipeline's optional stages
type HealthResponse struct {
	Status string `json:"status"`
}

// GetHealth handles GET /api/health
func (s *Server) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// GetHazards handles GET /api/hazards. Scope comes from query
// parameters: location, department, start_date, end_date (ISO dates),
// plus top_n.
func (s *Server) GetHazards(c *gin.Context) {
	filters, err := filtersFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	topN := 0
	if v := c.Query("top_n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "top_n must be a positive integer"})
			return
		}
		topN = n
	}

	c.JSON(http.StatusOK, s.pipeline.Hazards(filters, topN))
}

// AskRequest is the POST /api/ask body. Filters are optional and take
// precedence over anything extracted from the question.
type AskRequest struct {
	Question string            `json:"question" binding:"required"`
	Filters  model.ScopeFilter `json:"filters"`
}

// PostAsk handles POST /api/ask
func (s *Server) PostAsk(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	answer, err := s.pipeline.Ask(c.Request.Context(), req.Question, req.Filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, answer)
}

func filtersFromQuery(c *gin.Context) (model.ScopeFilter, error) {
	f := model.ScopeFilter{
		Location:   c.Query("location"),
		Department: c.Query("department"),
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, errInvalidDate("start_date")
		}
		f.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, errInvalidDate("end_date")
		}
		f.EndDate = &t
	}
	return f, nil
}

type errInvalidDate string

func (e errInvalidDate) Error() string {
	return string(e) + " must be an ISO date (YYYY-MM-DD)"
}
