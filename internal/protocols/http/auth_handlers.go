package http

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"tastehub/pkg/models"
)

// register handles user registration
func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	user, err := s.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		status := 400
		if errors.Is(err, models.ErrUsernameExists) {
			status = 409
		}
		c.JSON(status, models.APIResponse{
			Success:   false,
			Error:     err.Error(),
			Timestamp: time.Now(),
		})
		return
	}

	c.JSON(201, models.APIResponse{
		Success: true,
		Message: "User registered successfully",
		Data: models.UserProfile{
			ID:        user.ID,
			Username:  user.Username,
			CreatedAt: user.CreatedAt,
		},
		Timestamp: time.Now(),
	})
}

// login authenticates a user and returns a token
func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	resp, err := s.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(401, models.APIResponse{
			Success:   false,
			Error:     "invalid username or password",
			Timestamp: time.Now(),
		})
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Message:   "Login successful",
		Data:      resp,
		Timestamp: time.Now(),
	})
}
