// Package core - Taste Analysis Business Logic
// Turns raw per-user activity into derived taste profiles.
package core

import (
	"context"
	"fmt"

	"tastehub/internal/repository"
	"tastehub/pkg/models"
)

// AnalysisService defines per-user aggregation operations
type AnalysisService interface {
	GetUserActionCounts(ctx context.Context, userID int64) (*models.UserActionCountsResponse, error)
	GetRatingAnalysis(ctx context.Context, userID int64) (*models.RatingAnalysis, error)
	GetFavoritePersons(ctx context.Context, userID int64, ctype models.ContentType, job string, size int) ([]models.FavoriteItem, error)
	GetFavoriteTags(ctx context.Context, userID int64, ctype models.ContentType, size int) ([]models.FavoriteItem, error)
	GetFavoriteCountries(ctx context.Context, userID int64, size int) ([]models.FavoriteItem, error)
	GetFavoriteCategories(ctx context.Context, userID int64, ctype models.ContentType, size int) ([]models.FavoriteItem, error)
}

type analysisService struct {
	analysisRepo repository.AnalysisRepository
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(analysisRepo repository.AnalysisRepository) AnalysisService {
	return &analysisService{analysisRepo: analysisRepo}
}

// GetUserActionCounts returns per-type activity counts for a user. Types
// without activity appear with zeros.
func (s *analysisService) GetUserActionCounts(ctx context.Context, userID int64) (*models.UserActionCountsResponse, error) {
	counts, err := s.analysisRepo.CountUserActions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count user actions: %w", err)
	}
	return &models.UserActionCountsResponse{UserID: userID, Counts: counts}, nil
}

// GetRatingAnalysis returns a user's full rating profile.
func (s *analysisService) GetRatingAnalysis(ctx context.Context, userID int64) (*models.RatingAnalysis, error) {
	analysis, err := s.analysisRepo.GetRatingAnalysis(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating analysis: %w", err)
	}
	return analysis, nil
}

// clampFavoriteSize bounds the requested result size.
func clampFavoriteSize(size int) int {
	if size <= 0 || size > 100 {
		return 10
	}
	return size
}

// GetFavoritePersons mines a user's favorite collaborators for a content
// type and job label (director, actor, author...).
func (s *analysisService) GetFavoritePersons(ctx context.Context, userID int64, ctype models.ContentType, job string, size int) ([]models.FavoriteItem, error) {
	if !models.IsValidContentType(ctype) {
		return nil, fmt.Errorf("invalid content type %q: %w", ctype, models.ErrInvalidInput)
	}
	if job == "" {
		return nil, fmt.Errorf("job is required: %w", models.ErrInvalidInput)
	}
	items, err := s.analysisRepo.FindFavoritePersons(ctx, userID, ctype, job, clampFavoriteSize(size))
	if err != nil {
		return nil, fmt.Errorf("failed to find favorite persons: %w", err)
	}
	return items, nil
}

// GetFavoriteTags mines a user's favorite tags for a content type.
func (s *analysisService) GetFavoriteTags(ctx context.Context, userID int64, ctype models.ContentType, size int) ([]models.FavoriteItem, error) {
	if !models.IsValidContentType(ctype) {
		return nil, fmt.Errorf("invalid content type %q: %w", ctype, models.ErrInvalidInput)
	}
	items, err := s.analysisRepo.FindFavoriteTags(ctx, userID, ctype, clampFavoriteSize(size))
	if err != nil {
		return nil, fmt.Errorf("failed to find favorite tags: %w", err)
	}
	return items, nil
}

// GetFavoriteCountries mines a user's favorite movie production countries.
func (s *analysisService) GetFavoriteCountries(ctx context.Context, userID int64, size int) ([]models.FavoriteItem, error) {
	items, err := s.analysisRepo.FindFavoriteCountries(ctx, userID, clampFavoriteSize(size))
	if err != nil {
		return nil, fmt.Errorf("failed to find favorite countries: %w", err)
	}
	return items, nil
}

// GetFavoriteCategories mines a user's favorite category segments.
func (s *analysisService) GetFavoriteCategories(ctx context.Context, userID int64, ctype models.ContentType, size int) ([]models.FavoriteItem, error) {
	if !models.IsValidContentType(ctype) {
		return nil, fmt.Errorf("invalid content type %q: %w", ctype, models.ErrInvalidInput)
	}
	items, err := s.analysisRepo.FindFavoriteCategories(ctx, userID, ctype, clampFavoriteSize(size))
	if err != nil {
		return nil, fmt.Errorf("failed to find favorite categories: %w", err)
	}
	return items, nil
}
