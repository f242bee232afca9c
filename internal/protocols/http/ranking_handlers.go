package http

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"tastehub/pkg/models"
)

// getCharts returns every assembled chart for a content type
func (s *Server) getCharts(c *gin.Context) {
	ctype := models.ContentType(c.Param("chart_type"))

	resp, err := s.rankingSvc.GetCharts(c.Request.Context(), ctype)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			c.JSON(400, models.APIResponse{
				Success:   false,
				Error:     "invalid content type",
				Timestamp: time.Now(),
			})
			return
		}
		c.JSON(500, models.APIResponse{
			Success:   false,
			Error:     "failed to assemble charts",
			Timestamp: time.Now(),
		})
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// getChart returns a single chart by id within a content type
func (s *Server) getChart(c *gin.Context) {
	ctype := models.ContentType(c.Param("chart_type"))
	chartID := c.Param("chart_id")

	chart, err := s.rankingSvc.SearchWithRanking(c.Request.Context(), ctype, chartID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidInput):
			c.JSON(400, models.APIResponse{
				Success:   false,
				Error:     "invalid content type",
				Timestamp: time.Now(),
			})
		case errors.Is(err, models.ErrNotFound):
			c.JSON(404, models.APIResponse{
				Success:   false,
				Error:     "chart not found",
				Timestamp: time.Now(),
			})
		default:
			c.JSON(500, models.APIResponse{
				Success:   false,
				Error:     "failed to assemble chart",
				Timestamp: time.Now(),
			})
		}
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      chart,
		Timestamp: time.Now(),
	})
}
