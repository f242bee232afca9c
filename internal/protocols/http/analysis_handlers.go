package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tastehub/pkg/models"
)

// getActionCounts returns the per-type action counts for the caller
func (s *Server) getActionCounts(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	counts, err := s.analysisSvc.GetUserActionCounts(c.Request.Context(), userID)
	if err != nil {
		internalError(c, "failed to count user actions")
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      counts,
		Timestamp: time.Now(),
	})
}

// getRatingAnalysis returns rating averages and the score distribution
func (s *Server) getRatingAnalysis(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	analysis, err := s.analysisSvc.GetRatingAnalysis(c.Request.Context(), userID)
	if err != nil {
		internalError(c, "failed to analyze ratings")
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      analysis,
		Timestamp: time.Now(),
	})
}

// getFavoritePersons returns the caller's favorite cast or crew members
func (s *Server) getFavoritePersons(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	ctype := models.ContentType(c.Query("type"))
	job := c.Query("job")
	size := querySize(c)

	items, err := s.analysisSvc.GetFavoritePersons(c.Request.Context(), userID, ctype, job, size)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			badRequest(c, err.Error())
			return
		}
		internalError(c, "failed to find favorite persons")
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      items,
		Timestamp: time.Now(),
	})
}

// getFavoriteTags returns the caller's favorite tags
func (s *Server) getFavoriteTags(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	ctype := models.ContentType(c.Query("type"))
	size := querySize(c)

	items, err := s.analysisSvc.GetFavoriteTags(c.Request.Context(), userID, ctype, size)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			badRequest(c, err.Error())
			return
		}
		internalError(c, "failed to find favorite tags")
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      items,
		Timestamp: time.Now(),
	})
}

// getFavoriteCountries returns the caller's favorite production countries
func (s *Server) getFavoriteCountries(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	size := querySize(c)

	items, err := s.analysisSvc.GetFavoriteCountries(c.Request.Context(), userID, size)
	if err != nil {
		internalError(c, "failed to find favorite countries")
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      items,
		Timestamp: time.Now(),
	})
}

// getFavoriteCategories returns the caller's favorite category prefixes
func (s *Server) getFavoriteCategories(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	ctype := models.ContentType(c.Query("type"))
	size := querySize(c)

	items, err := s.analysisSvc.GetFavoriteCategories(c.Request.Context(), userID, ctype, size)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			badRequest(c, err.Error())
			return
		}
		internalError(c, "failed to find favorite categories")
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      items,
		Timestamp: time.Now(),
	})
}

// querySize reads the optional size query parameter
func querySize(c *gin.Context) int {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	return size
}

func unauthorized(c *gin.Context) {
	c.JSON(401, models.APIResponse{
		Success:   false,
		Error:     "unauthorized",
		Timestamp: time.Now(),
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(400, models.APIResponse{
		Success:   false,
		Error:     msg,
		Timestamp: time.Now(),
	})
}

func internalError(c *gin.Context, msg string) {
	c.JSON(500, models.APIResponse{
		Success:   false,
		Error:     msg,
		Timestamp: time.Now(),
	})
}
