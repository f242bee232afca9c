package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"tastehub/pkg/models"
)

// AnalysisRepository computes derived statistics over the activity ledger
// (scores, interests, comments) without mutating it. All queries are
// read-only; no-match surfaces as empty collections, never as an error.
type AnalysisRepository interface {
	// Per-user aggregation
	CountUserActions(ctx context.Context, userID int64) (map[models.ContentType]models.ActionCounts, error)
	GetRatingAnalysis(ctx context.Context, userID int64) (*models.RatingAnalysis, error)

	// Favorite mining (shared thresholds: count > 1, average >= 3.0)
	FindFavoritePersons(ctx context.Context, userID int64, ctype models.ContentType, job string, size int) ([]models.FavoriteItem, error)
	FindFavoriteTags(ctx context.Context, userID int64, ctype models.ContentType, size int) ([]models.FavoriteItem, error)
	FindFavoriteCountries(ctx context.Context, userID int64, size int) ([]models.FavoriteItem, error)
	FindFavoriteCategories(ctx context.Context, userID int64, ctype models.ContentType, size int) ([]models.FavoriteItem, error)

	// Content-centric lookups
	FindSimilarContent(ctx context.Context, tagIDs []int64, ctype models.ContentType) ([]models.TagMatch, error)
	GetContentScores(ctx context.Context, contentIDs []int64) (map[int64]float64, error)
	GetScoreSummaries(ctx context.Context, contentIDs []int64) (map[int64]models.ScoreSummary, error)
	GetTrendingTitles(ctx context.Context, limit int) ([]models.TrendingTitle, error)
}

type analysisRepository struct {
	pool *pgxpool.Pool
}

// NewAnalysisRepository creates a new PostgreSQL analysis repository
func NewAnalysisRepository(pool *pgxpool.Pool) AnalysisRepository {
	return &analysisRepository{pool: pool}
}

// CountUserActions groups a user's ledger rows by content type. Every
// content type appears in the result; types without activity carry zeros.
func (r *analysisRepository) CountUserActions(ctx context.Context, userID int64) (map[models.ContentType]models.ActionCounts, error) {
	counts := make(map[models.ContentType]models.ActionCounts, len(models.AllContentTypes))
	for _, ctype := range models.AllContentTypes {
		counts[ctype] = models.ActionCounts{}
	}

	ratingQuery := `
		SELECT c.dtype, COUNT(*)
		FROM scores s
		INNER JOIN content c ON c.id = s.content_id
		WHERE s.user_id = $1
		GROUP BY c.dtype
	`
	rows, err := r.pool.Query(ctx, ratingQuery, userID)
	if err != nil {
		return nil, r.mapDBError(err, "count_user_ratings")
	}
	defer rows.Close()
	for rows.Next() {
		var dtype string
		var n int
		if err := rows.Scan(&dtype, &n); err != nil {
			return nil, r.mapDBError(err, "scan_user_rating_count")
		}
		if ctype := models.DtypeToType(dtype); ctype != "" {
			ac := counts[ctype]
			ac.RatingCount = n
			counts[ctype] = ac
		}
	}
	rows.Close()

	interestQuery := `
		SELECT c.dtype, i.state, COUNT(*)
		FROM interests i
		INNER JOIN content c ON c.id = i.content_id
		WHERE i.user_id = $1
		GROUP BY c.dtype, i.state
	`
	rows, err = r.pool.Query(ctx, interestQuery, userID)
	if err != nil {
		return nil, r.mapDBError(err, "count_user_interests")
	}
	defer rows.Close()
	for rows.Next() {
		var dtype, state string
		var n int
		if err := rows.Scan(&dtype, &state, &n); err != nil {
			return nil, r.mapDBError(err, "scan_user_interest_count")
		}
		ctype := models.DtypeToType(dtype)
		if ctype == "" {
			continue
		}
		ac := counts[ctype]
		switch models.InterestState(state) {
		case models.InterestWish:
			ac.WishCount = n
		case models.InterestWatching:
			ac.WatchingCount = n
		case models.InterestNotInterest:
			ac.NotInterestCount = n
		}
		counts[ctype] = ac
	}
	rows.Close()

	commentQuery := `
		SELECT c.dtype, COUNT(*)
		FROM comments cm
		INNER JOIN content c ON c.id = cm.content_id
		WHERE cm.user_id = $1 AND NOT cm.is_deleted
		GROUP BY c.dtype
	`
	rows, err = r.pool.Query(ctx, commentQuery, userID)
	if err != nil {
		return nil, r.mapDBError(err, "count_user_comments")
	}
	defer rows.Close()
	for rows.Next() {
		var dtype string
		var n int
		if err := rows.Scan(&dtype, &n); err != nil {
			return nil, r.mapDBError(err, "scan_user_comment_count")
		}
		if ctype := models.DtypeToType(dtype); ctype != "" {
			ac := counts[ctype]
			ac.CommentCount = n
			counts[ctype] = ac
		}
	}

	return counts, nil
}

// GetRatingAnalysis builds a user's full rating profile: totals, per-type
// counts, average and the zero-filled 11-bucket distribution. The most
// common bucket resolves ties toward the lowest score value.
func (r *analysisRepository) GetRatingAnalysis(ctx context.Context, userID int64) (*models.RatingAnalysis, error) {
	analysis := &models.RatingAnalysis{}

	typeQuery := `
		SELECT c.dtype, COUNT(*), COALESCE(AVG(s.value), 0)
		FROM scores s
		INNER JOIN content c ON c.id = s.content_id
		WHERE s.user_id = $1
		GROUP BY c.dtype
	`
	rows, err := r.pool.Query(ctx, typeQuery, userID)
	if err != nil {
		return nil, r.mapDBError(err, "get_rating_type_counts")
	}
	defer rows.Close()

	var weightedSum float64
	for rows.Next() {
		var dtype string
		var n int
		var avg float64
		if err := rows.Scan(&dtype, &n, &avg); err != nil {
			return nil, r.mapDBError(err, "scan_rating_type_count")
		}
		switch models.DtypeToType(dtype) {
		case models.ContentTypeMovie:
			analysis.MovieCount = n
		case models.ContentTypeBook:
			analysis.BookCount = n
		case models.ContentTypeTvShow:
			analysis.TvShowCount = n
		}
		analysis.TotalCount += n
		weightedSum += avg * float64(n)
	}
	rows.Close()

	if analysis.TotalCount > 0 {
		analysis.Average = weightedSum / float64(analysis.TotalCount)
	}

	distQuery := `
		SELECT s.value, COUNT(*)
		FROM scores s
		WHERE s.user_id = $1
		GROUP BY s.value
	`
	rows, err = r.pool.Query(ctx, distQuery, userID)
	if err != nil {
		return nil, r.mapDBError(err, "get_rating_distribution")
	}
	defer rows.Close()

	for rows.Next() {
		var value float64
		var n int
		if err := rows.Scan(&value, &n); err != nil {
			return nil, r.mapDBError(err, "scan_rating_bucket")
		}
		idx := models.ScoreBucketIndex(value)
		if idx < 0 {
			// Out-of-grid values violate the write-side invariant.
			return nil, fmt.Errorf("get_rating_distribution: score %v outside half-point grid", value)
		}
		analysis.Distribution[idx] = n
	}

	analysis.MostCommonScore = models.ScoreBucketValue(models.MostCommonBucket(analysis.Distribution))
	return analysis, nil
}

// favoriteGroupQuery is the shared shape of all favorite-mining queries:
// group the user's scored content by some dimension, keep groups rated more
// than once with an average of at least 3.0, order by average descending
// with a deterministic tie-break, and carry one representative title.

// FindFavoritePersons mines participants appearing in more than one content
// the user rated, for one content type and job label. Ties on average break
// toward the lowest participant id.
func (r *analysisRepository) FindFavoritePersons(ctx context.Context, userID int64, ctype models.ContentType, job string, size int) ([]models.FavoriteItem, error) {
	dtype := models.TypeToDtype(ctype)
	if dtype == "" {
		return nil, fmt.Errorf("find_favorite_persons: %w", models.ErrInvalidInput)
	}

	// A participant credited under several roles on the same content counts
	// once: distinct (participant, content) pairs are collapsed before
	// grouping so one rated work never clears the threshold alone.
	query := `
		SELECT p.id, p.name, p.image_path,
		       AVG(w.value) AS avg_score,
		       COUNT(*) AS work_count,
		       MIN(w.title) AS sample_title
		FROM (
			SELECT DISTINCT cp.participant_id, c.id AS content_id, s.value, c.title
			FROM scores s
			INNER JOIN content c ON c.id = s.content_id AND c.dtype = $2
			INNER JOIN content_participants cp ON cp.content_id = c.id
			WHERE s.user_id = $1
		) w
		INNER JOIN participants p ON p.id = w.participant_id AND p.job = $3
		GROUP BY p.id, p.name, p.image_path
		HAVING COUNT(*) > 1 AND AVG(w.value) >= 3.0
		ORDER BY avg_score DESC, p.id ASC
		LIMIT $4
	`
	rows, err := r.pool.Query(ctx, query, userID, dtype, job, size)
	if err != nil {
		return nil, r.mapDBError(err, "find_favorite_persons")
	}
	defer rows.Close()

	var items []models.FavoriteItem
	for rows.Next() {
		var item models.FavoriteItem
		if err := rows.Scan(&item.ID, &item.Name, &item.ImagePath, &item.Score, &item.Count, &item.SampleTitle); err != nil {
			return nil, r.mapDBError(err, "scan_favorite_person")
		}
		items = append(items, item)
	}
	return items, nil
}

// FindFavoriteTags mines the tags of the user's highly-rated content.
// Ties on average break toward the lower appearance count, then tag id.
func (r *analysisRepository) FindFavoriteTags(ctx context.Context, userID int64, ctype models.ContentType, size int) ([]models.FavoriteItem, error) {
	dtype := models.TypeToDtype(ctype)
	if dtype == "" {
		return nil, fmt.Errorf("find_favorite_tags: %w", models.ErrInvalidInput)
	}

	query := `
		SELECT t.id, t.description,
		       AVG(s.value) AS avg_score,
		       COUNT(*) AS work_count,
		       MIN(c.title) AS sample_title
		FROM scores s
		INNER JOIN content c ON c.id = s.content_id AND c.dtype = $2
		INNER JOIN content_tags ct ON ct.content_id = c.id
		INNER JOIN tags t ON t.id = ct.tag_id
		WHERE s.user_id = $1
		GROUP BY t.id, t.description
		HAVING COUNT(*) > 1 AND AVG(s.value) >= 3.0
		ORDER BY avg_score DESC, work_count ASC, t.id ASC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, userID, dtype, size)
	if err != nil {
		return nil, r.mapDBError(err, "find_favorite_tags")
	}
	defer rows.Close()

	var items []models.FavoriteItem
	for rows.Next() {
		var item models.FavoriteItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Score, &item.Count, &item.SampleTitle); err != nil {
			return nil, r.mapDBError(err, "scan_favorite_tag")
		}
		items = append(items, item)
	}
	return items, nil
}

// FindFavoriteCountries mines the production countries of the user's
// highly-rated movies.
func (r *analysisRepository) FindFavoriteCountries(ctx context.Context, userID int64, size int) ([]models.FavoriteItem, error) {
	query := `
		SELECT m.country_code,
		       AVG(s.value) AS avg_score,
		       COUNT(*) AS work_count,
		       MIN(c.title) AS sample_title
		FROM scores s
		INNER JOIN content c ON c.id = s.content_id AND c.dtype = 'M'
		INNER JOIN movies m ON m.content_id = c.id
		WHERE s.user_id = $1 AND m.country_code <> ''
		GROUP BY m.country_code
		HAVING COUNT(*) > 1 AND AVG(s.value) >= 3.0
		ORDER BY avg_score DESC, work_count ASC, m.country_code ASC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, size)
	if err != nil {
		return nil, r.mapDBError(err, "find_favorite_countries")
	}
	defer rows.Close()

	var items []models.FavoriteItem
	for rows.Next() {
		var item models.FavoriteItem
		if err := rows.Scan(&item.Name, &item.Score, &item.Count, &item.SampleTitle); err != nil {
			return nil, r.mapDBError(err, "scan_favorite_country")
		}
		items = append(items, item)
	}
	return items, nil
}

// FindFavoriteCategories mines the slash-delimited category column. Each
// content expands into one row per category segment (numbers-table cross
// join, capped at 6 segments) before grouping, so a content holding three
// categories contributes three rows.
func (r *analysisRepository) FindFavoriteCategories(ctx context.Context, userID int64, ctype models.ContentType, size int) ([]models.FavoriteItem, error) {
	dtype := models.TypeToDtype(ctype)
	if dtype == "" {
		return nil, fmt.Errorf("find_favorite_categories: %w", models.ErrInvalidInput)
	}

	query := `
		SELECT split_part(c.category, '/', n.n) AS category,
		       AVG(s.value) AS avg_score,
		       COUNT(*) AS work_count,
		       MIN(c.title) AS sample_title
		FROM scores s
		INNER JOIN content c ON c.id = s.content_id AND c.dtype = $2
		CROSS JOIN generate_series(1, 6) AS n(n)
		WHERE s.user_id = $1
		  AND c.category <> ''
		  AND n.n <= array_length(string_to_array(c.category, '/'), 1)
		GROUP BY split_part(c.category, '/', n.n)
		HAVING COUNT(*) > 1 AND AVG(s.value) >= 3.0
		ORDER BY avg_score DESC, work_count ASC, category ASC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, userID, dtype, size)
	if err != nil {
		return nil, r.mapDBError(err, "find_favorite_categories")
	}
	defer rows.Close()

	var items []models.FavoriteItem
	for rows.Next() {
		var item models.FavoriteItem
		if err := rows.Scan(&item.Name, &item.Score, &item.Count, &item.SampleTitle); err != nil {
			return nil, r.mapDBError(err, "scan_favorite_category")
		}
		items = append(items, item)
	}
	return items, nil
}

// FindSimilarContent returns every (tag, content) pair for the given tag set
// and content type in one batched query. The caller excludes the anchor;
// duplicates across tags are intentionally preserved.
func (r *analysisRepository) FindSimilarContent(ctx context.Context, tagIDs []int64, ctype models.ContentType) ([]models.TagMatch, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	dtype := models.TypeToDtype(ctype)
	if dtype == "" {
		return nil, fmt.Errorf("find_similar_content: %w", models.ErrInvalidInput)
	}

	query := `
		SELECT ct.tag_id, ct.content_id
		FROM content_tags ct
		INNER JOIN content c ON c.id = ct.content_id
		WHERE ct.tag_id = ANY($1) AND c.dtype = $2
		ORDER BY ct.tag_id, ct.content_id
	`
	rows, err := r.pool.Query(ctx, query, tagIDs, dtype)
	if err != nil {
		return nil, r.mapDBError(err, "find_similar_content")
	}
	defer rows.Close()

	var matches []models.TagMatch
	for rows.Next() {
		var m models.TagMatch
		if err := rows.Scan(&m.TagID, &m.ContentID); err != nil {
			return nil, r.mapDBError(err, "scan_similar_content")
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// GetContentScores returns average scores for a set of contents. Ids with no
// score rows are absent from the map.
func (r *analysisRepository) GetContentScores(ctx context.Context, contentIDs []int64) (map[int64]float64, error) {
	scores := make(map[int64]float64)
	if len(contentIDs) == 0 {
		return scores, nil
	}

	query := `
		SELECT content_id, AVG(value)
		FROM scores
		WHERE content_id = ANY($1)
		GROUP BY content_id
	`
	rows, err := r.pool.Query(ctx, query, contentIDs)
	if err != nil {
		return nil, r.mapDBError(err, "get_content_scores")
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var avg float64
		if err := rows.Scan(&id, &avg); err != nil {
			return nil, r.mapDBError(err, "scan_content_score")
		}
		scores[id] = avg
	}
	return scores, nil
}

// GetScoreSummaries returns average, count and distribution for a set of
// contents in one query. Ids with no score rows are absent from the map.
func (r *analysisRepository) GetScoreSummaries(ctx context.Context, contentIDs []int64) (map[int64]models.ScoreSummary, error) {
	summaries := make(map[int64]models.ScoreSummary)
	if len(contentIDs) == 0 {
		return summaries, nil
	}

	query := `
		SELECT content_id, value, COUNT(*)
		FROM scores
		WHERE content_id = ANY($1)
		GROUP BY content_id, value
	`
	rows, err := r.pool.Query(ctx, query, contentIDs)
	if err != nil {
		return nil, r.mapDBError(err, "get_score_summaries")
	}
	defer rows.Close()

	type acc struct {
		sum   float64
		count int
		dist  [models.ScoreBuckets]int
	}
	accs := make(map[int64]*acc)
	for rows.Next() {
		var id int64
		var value float64
		var n int
		if err := rows.Scan(&id, &value, &n); err != nil {
			return nil, r.mapDBError(err, "scan_score_summary")
		}
		idx := models.ScoreBucketIndex(value)
		if idx < 0 {
			return nil, fmt.Errorf("get_score_summaries: score %v outside half-point grid", value)
		}
		a, ok := accs[id]
		if !ok {
			a = &acc{}
			accs[id] = a
		}
		a.sum += value * float64(n)
		a.count += n
		a.dist[idx] += n
	}

	for id, a := range accs {
		summaries[id] = models.ScoreSummary{
			Average:      a.sum / float64(a.count),
			Count:        a.count,
			Distribution: a.dist,
		}
	}
	return summaries, nil
}

// GetTrendingTitles returns the most-commented contents. Ties on comment
// count break toward the alphabetically first title, keeping the order
// deterministic across stores.
func (r *analysisRepository) GetTrendingTitles(ctx context.Context, limit int) ([]models.TrendingTitle, error) {
	query := `
		SELECT c.id, c.title, COUNT(*) AS comment_count
		FROM comments cm
		INNER JOIN content c ON c.id = cm.content_id
		WHERE NOT cm.is_deleted
		GROUP BY c.id, c.title
		ORDER BY comment_count DESC, c.title ASC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, r.mapDBError(err, "get_trending_titles")
	}
	defer rows.Close()

	var titles []models.TrendingTitle
	for rows.Next() {
		var t models.TrendingTitle
		if err := rows.Scan(&t.ContentID, &t.Title, &t.CommentCount); err != nil {
			return nil, r.mapDBError(err, "scan_trending_title")
		}
		titles = append(titles, t)
	}
	return titles, nil
}

// mapDBError maps database errors to application errors
func (r *analysisRepository) mapDBError(err error, operation string) error {
	if err == pgx.ErrNoRows {
		return fmt.Errorf("%s: %w", operation, models.ErrNotFound)
	}

	if pgErr, ok := err.(*pgconn.PgError); ok {
		if pgErr.Code == "57014" { // query_canceled
			return fmt.Errorf("query cancelled during %s: %w", operation, err)
		}
	}

	return fmt.Errorf("database error during %s: %w", operation, err)
}
