package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"tastehub/pkg/models"
)

// RankingRepository reads the offline ranking snapshot and supports its
// wholesale replacement by operator tooling.
type RankingRepository interface {
	// ListByChartType returns every stored row for a chart type in stored
	// rank order, with content and variant columns already joined.
	ListByChartType(ctx context.Context, ctype models.ContentType) ([]models.RankingRow, error)

	// ReplaceAll swaps the entire snapshot for a chart type in one
	// transaction.
	ReplaceAll(ctx context.Context, ctype models.ContentType, rankings []models.Ranking) error

	WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type rankingRepository struct {
	pool *pgxpool.Pool
}

// NewRankingRepository creates a new PostgreSQL ranking repository
func NewRankingRepository(pool *pgxpool.Pool) RankingRepository {
	return &rankingRepository{pool: pool}
}

// ListByChartType joins the snapshot with content and all three variant
// tables; only the columns matching the dtype are populated per row.
func (r *rankingRepository) ListByChartType(ctx context.Context, ctype models.ContentType) ([]models.RankingRow, error) {
	if !models.IsValidContentType(ctype) {
		return nil, fmt.Errorf("list_rankings: %w", models.ErrInvalidInput)
	}

	query := `
		SELECT rk.id, rk.chart_rank, rk.chart_type, rk.chart_id, rk.content_id,
		       c.id, c.dtype, c.title, c.category, c.production_date, c.poster_path, c.description, c.created_at, c.updated_at,
		       m.origin_title, m.country_code, m.running_time, m.audience_count, m.on_watcha, m.on_netflix,
		       b.subtitle, b.page_count, b.synopsis,
		       t.origin_title, t.country_code, t.on_watcha, t.on_netflix
		FROM rankings rk
		INNER JOIN content c ON c.id = rk.content_id
		LEFT JOIN movies m ON m.content_id = c.id
		LEFT JOIN books b ON b.content_id = c.id
		LEFT JOIN tv_shows t ON t.content_id = c.id
		WHERE rk.chart_type = $1
		ORDER BY rk.chart_id, rk.chart_rank
	`
	rows, err := r.pool.Query(ctx, query, string(ctype))
	if err != nil {
		return nil, r.mapDBError(err, "list_rankings")
	}
	defer rows.Close()

	var result []models.RankingRow
	for rows.Next() {
		var row models.RankingRow
		var chartType string
		var movieOrigin, movieCountry *string
		var runningTime *int
		var audienceCount *int64
		var movieWatcha, movieNetflix *bool
		var bookSubtitle, bookSynopsis *string
		var pageCount *int
		var tvOrigin, tvCountry *string
		var tvWatcha, tvNetflix *bool

		if err := rows.Scan(
			&row.Ranking.ID,
			&row.Ranking.ChartRank,
			&chartType,
			&row.Ranking.ChartID,
			&row.Ranking.ContentID,
			&row.Variant.Content.ID,
			&row.Variant.Content.Dtype,
			&row.Variant.Content.Title,
			&row.Variant.Content.Category,
			&row.Variant.Content.ProductionDate,
			&row.Variant.Content.PosterPath,
			&row.Variant.Content.Description,
			&row.Variant.Content.CreatedAt,
			&row.Variant.Content.UpdatedAt,
			&movieOrigin, &movieCountry, &runningTime, &audienceCount, &movieWatcha, &movieNetflix,
			&bookSubtitle, &pageCount, &bookSynopsis,
			&tvOrigin, &tvCountry, &tvWatcha, &tvNetflix,
		); err != nil {
			return nil, r.mapDBError(err, "scan_ranking_row")
		}
		row.Ranking.ChartType = models.ContentType(chartType)

		switch row.Variant.Content.Type() {
		case models.ContentTypeMovie:
			if movieOrigin != nil {
				row.Variant.Movie = &models.Movie{
					ContentID:     row.Variant.Content.ID,
					OriginTitle:   *movieOrigin,
					CountryCode:   deref(movieCountry),
					RunningTime:   derefInt(runningTime),
					AudienceCount: derefInt64(audienceCount),
					OnWatcha:      derefBool(movieWatcha),
					OnNetflix:     derefBool(movieNetflix),
				}
			}
		case models.ContentTypeBook:
			if bookSubtitle != nil || pageCount != nil {
				row.Variant.Book = &models.Book{
					ContentID: row.Variant.Content.ID,
					Subtitle:  deref(bookSubtitle),
					PageCount: derefInt(pageCount),
					Synopsis:  deref(bookSynopsis),
				}
			}
		case models.ContentTypeTvShow:
			if tvOrigin != nil {
				row.Variant.TvShow = &models.TvShow{
					ContentID:   row.Variant.Content.ID,
					OriginTitle: *tvOrigin,
					CountryCode: deref(tvCountry),
					OnWatcha:    derefBool(tvWatcha),
					OnNetflix:   derefBool(tvNetflix),
				}
			}
		}

		result = append(result, row)
	}
	return result, nil
}

// ReplaceAll deletes the stored snapshot for a chart type and writes the new
// rows in one transaction, so readers never observe a half-replaced chart.
func (r *rankingRepository) ReplaceAll(ctx context.Context, ctype models.ContentType, rankings []models.Ranking) error {
	if !models.IsValidContentType(ctype) {
		return fmt.Errorf("replace_rankings: %w", models.ErrInvalidInput)
	}

	return r.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM rankings WHERE chart_type = $1`, string(ctype)); err != nil {
			return r.mapDBError(err, "clear_rankings")
		}

		for _, rk := range rankings {
			_, err := tx.Exec(ctx, `
				INSERT INTO rankings (chart_rank, chart_type, chart_id, content_id)
				VALUES ($1, $2, $3, $4)
			`, rk.ChartRank, string(ctype), rk.ChartID, rk.ContentID)
			if err != nil {
				return r.mapDBError(err, "insert_ranking")
			}
		}
		return nil
	})
}

// WithTransaction executes a function within a database transaction
func (r *rankingRepository) WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return r.mapDBError(err, "begin_transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

// mapDBError maps database errors to application errors
func (r *rankingRepository) mapDBError(err error, operation string) error {
	if err == pgx.ErrNoRows {
		return fmt.Errorf("%s: %w", operation, models.ErrNotFound)
	}

	if pgErr, ok := err.(*pgconn.PgError); ok {
		if pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("ranking references unknown content: %w", err)
		}
	}

	return fmt.Errorf("database error during %s: %w", operation, err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func derefInt64(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}

func derefBool(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}
