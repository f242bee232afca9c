// Package core - Catalogue Business Logic
// Thin orchestration over content creation, listing and trending titles.
package core

import (
	"context"
	"fmt"

	"tastehub/internal/cache"
	"tastehub/internal/repository"
	"tastehub/pkg/models"
)

// CatalogueService defines thin catalogue operations
type CatalogueService interface {
	CreateContent(ctx context.Context, req *models.CreateContentRequest) (*models.ContentVariant, error)
	ListContent(ctx context.Context, ctype models.ContentType, limit, offset int) (*models.ContentListResponse, error)
	GetTrendingTitles(ctx context.Context, limit int) ([]models.TrendingTitle, error)
}

type catalogueService struct {
	contentRepo  repository.ContentRepository
	analysisRepo repository.AnalysisRepository
	cache        *cache.Cache
}

// NewCatalogueService creates a new catalogue service
func NewCatalogueService(
	contentRepo repository.ContentRepository,
	analysisRepo repository.AnalysisRepository,
	c *cache.Cache,
) CatalogueService {
	return &catalogueService{
		contentRepo:  contentRepo,
		analysisRepo: analysisRepo,
		cache:        c,
	}
}

// CreateContent validates and inserts a content row with its variant.
func (s *catalogueService) CreateContent(ctx context.Context, req *models.CreateContentRequest) (*models.ContentVariant, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title is required: %w", models.ErrInvalidInput)
	}
	if !models.IsValidContentType(req.Type) {
		return nil, fmt.Errorf("invalid content type %q: %w", req.Type, models.ErrInvalidInput)
	}

	variantCount := 0
	if req.Movie != nil {
		variantCount++
	}
	if req.Book != nil {
		variantCount++
	}
	if req.TvShow != nil {
		variantCount++
	}
	if variantCount != 1 {
		return nil, fmt.Errorf("exactly one variant payload required: %w", models.ErrInvalidInput)
	}

	variant, err := s.contentRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create content: %w", err)
	}
	return variant, nil
}

// ListContent retrieves content of one type with pagination.
func (s *catalogueService) ListContent(ctx context.Context, ctype models.ContentType, limit, offset int) (*models.ContentListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	contents, total, err := s.contentRepo.List(ctx, ctype, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	return &models.ContentListResponse{
		Data:    contents,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}, nil
}

// GetTrendingTitles returns the most-commented titles with caching.
func (s *catalogueService) GetTrendingTitles(ctx context.Context, limit int) ([]models.TrendingTitle, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("trending:%d", limit)
	var cached []models.TrendingTitle
	if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	titles, err := s.analysisRepo.GetTrendingTitles(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get trending titles: %w", err)
	}

	s.cache.SetJSON(ctx, cacheKey, titles)
	return titles, nil
}
