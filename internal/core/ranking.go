// Package core - Ranking Chart Assembly
// Projects the stored flat ranking snapshot into the public multi-chart view.
package core

import (
	"context"
	"fmt"

	"tastehub/internal/cache"
	"tastehub/internal/repository"
	"tastehub/pkg/models"
	"tastehub/pkg/storage"
)

// RankingService assembles ranking charts from the offline snapshot
type RankingService interface {
	// GetCharts returns every chart of a type, each capped at 30 items.
	GetCharts(ctx context.Context, ctype models.ContentType) (*models.ChartListResponse, error)

	// SearchWithRanking returns a single chart by id, capped at 30 items.
	SearchWithRanking(ctx context.Context, ctype models.ContentType, chartID string) (*models.Chart, error)
}

type rankingService struct {
	rankingRepo  repository.RankingRepository
	analysisRepo repository.AnalysisRepository
	cache        *cache.Cache
	urls         *storage.URLResolver
}

// NewRankingService creates a new ranking assembly service
func NewRankingService(
	rankingRepo repository.RankingRepository,
	analysisRepo repository.AnalysisRepository,
	c *cache.Cache,
	urls *storage.URLResolver,
) RankingService {
	return &rankingService{
		rankingRepo:  rankingRepo,
		analysisRepo: analysisRepo,
		cache:        c,
		urls:         urls,
	}
}

// GetCharts groups the stored snapshot by chart id in stored rank order.
// Rows with a chart id unknown to the display table are silently omitted.
// Movies get the average-score merge; other types do not.
func (s *rankingService) GetCharts(ctx context.Context, ctype models.ContentType) (*models.ChartListResponse, error) {
	if !models.IsValidContentType(ctype) {
		return nil, fmt.Errorf("invalid chart type %q: %w", ctype, models.ErrInvalidInput)
	}

	cacheKey := fmt.Sprintf("charts:%s", ctype)
	cached := &models.ChartListResponse{}
	if hit, err := s.cache.GetJSON(ctx, cacheKey, cached); err == nil && hit {
		return cached, nil
	}

	rows, err := s.rankingRepo.ListByChartType(ctx, ctype)
	if err != nil {
		return nil, fmt.Errorf("failed to load ranking snapshot: %w", err)
	}

	charts, err := s.assemble(ctx, ctype, rows)
	if err != nil {
		return nil, err
	}

	resp := &models.ChartListResponse{ChartType: ctype, Charts: charts}
	s.cache.SetJSON(ctx, cacheKey, resp)
	return resp, nil
}

// SearchWithRanking returns one chart of a type by chart id.
func (s *rankingService) SearchWithRanking(ctx context.Context, ctype models.ContentType, chartID string) (*models.Chart, error) {
	resp, err := s.GetCharts(ctx, ctype)
	if err != nil {
		return nil, err
	}
	for i := range resp.Charts {
		if resp.Charts[i].ChartID == chartID {
			return &resp.Charts[i], nil
		}
	}
	return nil, fmt.Errorf("chart %s/%s: %w", ctype, chartID, models.ErrNotFound)
}

// assemble partitions snapshot rows into display charts. The stored order
// (chart id, chart rank) is preserved; each chart is capped at 30 entries.
func (s *rankingService) assemble(ctx context.Context, ctype models.ContentType, rows []models.RankingRow) ([]models.Chart, error) {
	var scores map[int64]float64
	if ctype == models.ContentTypeMovie && len(rows) > 0 {
		ids := make([]int64, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.Ranking.ContentID)
		}
		var err error
		scores, err = s.analysisRepo.GetContentScores(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load chart scores: %w", err)
		}
	}

	byChart := make(map[string][]models.RankingItem)
	var order []string
	for _, row := range rows {
		chartID := row.Ranking.ChartID
		if !models.KnownChartID(ctype, chartID) {
			continue
		}
		if len(byChart[chartID]) >= models.ChartMaxItems {
			continue
		}
		if _, seen := byChart[chartID]; !seen {
			order = append(order, chartID)
		}

		item := models.RankingItem{
			ContentID: row.Ranking.ContentID,
			Rank:      row.Ranking.ChartRank,
			Title:     row.Variant.Content.Title,
			PosterURL: s.urls.PathToURL(row.Variant.Content.PosterPath),
		}
		if scores != nil {
			if avg, ok := scores[row.Ranking.ContentID]; ok {
				item.AverageScore = &avg
			}
		}
		attachRankingVariant(&item, &row.Variant)

		byChart[chartID] = append(byChart[chartID], item)
	}

	charts := make([]models.Chart, 0, len(order))
	for _, chartID := range order {
		charts = append(charts, models.Chart{
			ChartID: chartID,
			Title:   models.ChartTitle(ctype, chartID),
			Items:   byChart[chartID],
		})
	}
	return charts, nil
}

// attachRankingVariant copies the resolved variant payload into a chart
// item. Exactly one payload ends up populated per item.
func attachRankingVariant(item *models.RankingItem, variant *models.ContentVariant) {
	switch {
	case variant.Movie != nil:
		item.Movie = &models.MovieDetail{
			OriginTitle:   variant.Movie.OriginTitle,
			CountryCode:   variant.Movie.CountryCode,
			RunningTime:   variant.Movie.RunningTime,
			AudienceCount: variant.Movie.AudienceCount,
			OnWatcha:      variant.Movie.OnWatcha,
			OnNetflix:     variant.Movie.OnNetflix,
		}
	case variant.Book != nil:
		item.Book = &models.BookDetail{
			Subtitle:  variant.Book.Subtitle,
			PageCount: variant.Book.PageCount,
			Synopsis:  variant.Book.Synopsis,
		}
	case variant.TvShow != nil:
		item.TvShow = &models.TvShowDetail{
			OriginTitle: variant.TvShow.OriginTitle,
			CountryCode: variant.TvShow.CountryCode,
			OnWatcha:    variant.TvShow.OnWatcha,
			OnNetflix:   variant.TvShow.OnNetflix,
		}
	}
}
