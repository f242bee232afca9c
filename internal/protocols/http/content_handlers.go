package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tastehub/pkg/models"
)

// listContents lists catalogue entries filtered by content type
func (s *Server) listContents(c *gin.Context) {
	ctype := models.ContentType(c.Query("type"))
	if !models.IsValidContentType(ctype) {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid content type",
			Timestamp: time.Now(),
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	resp, err := s.catalogueSvc.ListContent(c.Request.Context(), ctype, limit, offset)
	if err != nil {
		c.JSON(500, models.APIResponse{
			Success:   false,
			Error:     "failed to list contents",
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

// createContent handles thin catalogue creation (admin only)
func (s *Server) createContent(c *gin.Context) {
	var req models.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	variant, err := s.catalogueSvc.CreateContent(c.Request.Context(), &req)
	if err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     err.Error(),
			Timestamp: time.Now(),
		})
		return
	}

	c.JSON(201, models.APIResponse{
		Success:   true,
		Message:   "Content created successfully",
		Data:      variant,
		Timestamp: time.Now(),
	})
}

// getTrendingTitles returns the most discussed titles
func (s *Server) getTrendingTitles(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	titles, err := s.catalogueSvc.GetTrendingTitles(c.Request.Context(), limit)
	if err != nil {
		c.JSON(500, models.APIResponse{
			Success:   false,
			Error:     "failed to get trending titles",
			Timestamp: time.Now(),
		})
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      titles,
		Timestamp: time.Now(),
	})
}

// getContentDetail composes the full detail page envelope.
// The viewer identity is optional; anonymous requests get no overlay.
func (s *Server) getContentDetail(c *gin.Context) {
	contentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || contentID <= 0 {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid content id",
			Timestamp: time.Now(),
		})
		return
	}

	var viewerID int64
	if id, ok := GetUserID(c); ok {
		viewerID = id
	}

	detail, err := s.detailSvc.GetContentDetail(c.Request.Context(), contentID, viewerID)
	if err != nil {
		if errors.Is(err, models.ErrContentNotFound) {
			c.JSON(404, models.APIResponse{
				Success:   false,
				Error:     "content not found",
				Timestamp: time.Now(),
			})
			return
		}
		c.JSON(500, models.APIResponse{
			Success:   false,
			Error:     "failed to compose content detail",
			Timestamp: time.Now(),
		})
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      detail,
		Timestamp: time.Now(),
	})
}
