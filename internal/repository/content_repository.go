package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"tastehub/pkg/models"
)

// ContentRepository handles catalogue content persistence and the
// polymorphic variant resolution every read path depends on.
type ContentRepository interface {
	Create(ctx context.Context, req *models.CreateContentRequest) (*models.ContentVariant, error)
	GetByID(ctx context.Context, id int64) (*models.Content, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]models.Content, error)
	List(ctx context.Context, ctype models.ContentType, limit, offset int) ([]models.Content, int, error)
	ResolveVariant(ctx context.Context, variant *models.ContentVariant) error

	GetTags(ctx context.Context, contentID int64) ([]models.Tag, error)
	GetParticipants(ctx context.Context, contentID int64) ([]models.ContentParticipant, error)
	GetGallery(ctx context.Context, contentID int64) ([]models.ContentImage, error)

	WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type contentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository creates a new PostgreSQL content repository
func NewContentRepository(pool *pgxpool.Pool) ContentRepository {
	return &contentRepository{pool: pool}
}

// Create inserts a content row plus its variant and tag joins in one
// transaction. Exactly one variant payload must be present on the request.
func (r *contentRepository) Create(ctx context.Context, req *models.CreateContentRequest) (*models.ContentVariant, error) {
	ctype := models.ContentType(req.Type)
	dtype := models.TypeToDtype(ctype)
	if dtype == "" {
		return nil, fmt.Errorf("create_content: %w", models.ErrInvalidInput)
	}

	variant := &models.ContentVariant{}

	err := r.WithTransaction(ctx, func(tx pgx.Tx) error {
		contentQuery := `
			INSERT INTO content (dtype, title, category, production_date, poster_path, description)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, dtype, title, category, production_date, poster_path, description, created_at, updated_at
		`
		err := tx.QueryRow(ctx, contentQuery,
			dtype,
			req.Title,
			req.Category,
			req.ProductionDate,
			req.PosterPath,
			req.Description,
		).Scan(
			&variant.Content.ID,
			&variant.Content.Dtype,
			&variant.Content.Title,
			&variant.Content.Category,
			&variant.Content.ProductionDate,
			&variant.Content.PosterPath,
			&variant.Content.Description,
			&variant.Content.CreatedAt,
			&variant.Content.UpdatedAt,
		)
		if err != nil {
			return r.mapDBError(err, "create_content")
		}

		contentID := variant.Content.ID

		switch ctype {
		case models.ContentTypeMovie:
			if req.Movie == nil {
				return fmt.Errorf("create_content: movie payload missing: %w", models.ErrInvalidInput)
			}
			movieQuery := `
				INSERT INTO movies (content_id, origin_title, country_code, running_time, audience_count, on_watcha, on_netflix)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`
			_, err = tx.Exec(ctx, movieQuery,
				contentID,
				req.Movie.OriginTitle,
				req.Movie.CountryCode,
				req.Movie.RunningTime,
				req.Movie.AudienceCount,
				req.Movie.OnWatcha,
				req.Movie.OnNetflix,
			)
			if err != nil {
				return r.mapDBError(err, "create_movie_variant")
			}
			m := *req.Movie
			m.ContentID = contentID
			variant.Movie = &m
		case models.ContentTypeBook:
			if req.Book == nil {
				return fmt.Errorf("create_content: book payload missing: %w", models.ErrInvalidInput)
			}
			bookQuery := `
				INSERT INTO books (content_id, subtitle, page_count, synopsis)
				VALUES ($1, $2, $3, $4)
			`
			_, err = tx.Exec(ctx, bookQuery,
				contentID,
				req.Book.Subtitle,
				req.Book.PageCount,
				req.Book.Synopsis,
			)
			if err != nil {
				return r.mapDBError(err, "create_book_variant")
			}
			b := *req.Book
			b.ContentID = contentID
			variant.Book = &b
		case models.ContentTypeTvShow:
			if req.TvShow == nil {
				return fmt.Errorf("create_content: tv show payload missing: %w", models.ErrInvalidInput)
			}
			tvQuery := `
				INSERT INTO tv_shows (content_id, origin_title, country_code, on_watcha, on_netflix)
				VALUES ($1, $2, $3, $4, $5)
			`
			_, err = tx.Exec(ctx, tvQuery,
				contentID,
				req.TvShow.OriginTitle,
				req.TvShow.CountryCode,
				req.TvShow.OnWatcha,
				req.TvShow.OnNetflix,
			)
			if err != nil {
				return r.mapDBError(err, "create_tv_show_variant")
			}
			t := *req.TvShow
			t.ContentID = contentID
			variant.TvShow = &t
		}

		for _, tagID := range req.TagIDs {
			_, err = tx.Exec(ctx,
				`INSERT INTO content_tags (content_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				contentID, tagID,
			)
			if err != nil {
				return r.mapDBError(err, "attach_content_tag")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return variant, nil
}

// GetByID retrieves the shared content row without its variant.
func (r *contentRepository) GetByID(ctx context.Context, id int64) (*models.Content, error) {
	query := `
		SELECT id, dtype, title, category, production_date, poster_path, description, created_at, updated_at
		FROM content
		WHERE id = $1
	`
	content := &models.Content{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&content.ID,
		&content.Dtype,
		&content.Title,
		&content.Category,
		&content.ProductionDate,
		&content.PosterPath,
		&content.Description,
		&content.CreatedAt,
		&content.UpdatedAt,
	)
	if err != nil {
		return nil, r.mapDBError(err, "get_content_by_id")
	}
	return content, nil
}

// GetByIDs retrieves the shared content rows for a batch of ids, keyed by
// id. Ids with no row are absent from the map.
func (r *contentRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]models.Content, error) {
	contents := make(map[int64]models.Content, len(ids))
	if len(ids) == 0 {
		return contents, nil
	}

	query := `
		SELECT id, dtype, title, category, production_date, poster_path, description, created_at, updated_at
		FROM content
		WHERE id = ANY($1)
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, r.mapDBError(err, "get_content_by_ids")
	}
	defer rows.Close()

	for rows.Next() {
		var content models.Content
		if err := rows.Scan(
			&content.ID,
			&content.Dtype,
			&content.Title,
			&content.Category,
			&content.ProductionDate,
			&content.PosterPath,
			&content.Description,
			&content.CreatedAt,
			&content.UpdatedAt,
		); err != nil {
			return nil, r.mapDBError(err, "scan_content_by_ids")
		}
		contents[content.ID] = content
	}
	return contents, nil
}

// List retrieves content of one type with pagination.
func (r *contentRepository) List(ctx context.Context, ctype models.ContentType, limit, offset int) ([]models.Content, int, error) {
	dtype := models.TypeToDtype(ctype)
	if dtype == "" {
		return nil, 0, fmt.Errorf("list_content: %w", models.ErrInvalidInput)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM content WHERE dtype = $1`, dtype).Scan(&total); err != nil {
		return nil, 0, r.mapDBError(err, "count_content")
	}

	query := `
		SELECT id, dtype, title, category, production_date, poster_path, description, created_at, updated_at
		FROM content
		WHERE dtype = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, dtype, limit, offset)
	if err != nil {
		return nil, 0, r.mapDBError(err, "list_content")
	}
	defer rows.Close()

	var contents []models.Content
	for rows.Next() {
		var c models.Content
		if err := rows.Scan(
			&c.ID,
			&c.Dtype,
			&c.Title,
			&c.Category,
			&c.ProductionDate,
			&c.PosterPath,
			&c.Description,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, 0, r.mapDBError(err, "scan_content")
		}
		contents = append(contents, c)
	}

	return contents, total, nil
}

// ResolveVariant loads the variant row matching the content's dtype.
// Idempotent: an already-resolved variant is returned untouched.
func (r *contentRepository) ResolveVariant(ctx context.Context, variant *models.ContentVariant) error {
	if variant.Resolved() {
		return nil
	}

	switch variant.Content.Type() {
	case models.ContentTypeMovie:
		movie := &models.Movie{}
		query := `
			SELECT content_id, origin_title, country_code, running_time, audience_count, on_watcha, on_netflix
			FROM movies
			WHERE content_id = $1
		`
		err := r.pool.QueryRow(ctx, query, variant.Content.ID).Scan(
			&movie.ContentID,
			&movie.OriginTitle,
			&movie.CountryCode,
			&movie.RunningTime,
			&movie.AudienceCount,
			&movie.OnWatcha,
			&movie.OnNetflix,
		)
		if err != nil {
			return r.mapDBError(err, "resolve_movie_variant")
		}
		variant.Movie = movie
	case models.ContentTypeBook:
		book := &models.Book{}
		query := `
			SELECT content_id, subtitle, page_count, synopsis
			FROM books
			WHERE content_id = $1
		`
		err := r.pool.QueryRow(ctx, query, variant.Content.ID).Scan(
			&book.ContentID,
			&book.Subtitle,
			&book.PageCount,
			&book.Synopsis,
		)
		if err != nil {
			return r.mapDBError(err, "resolve_book_variant")
		}
		variant.Book = book
	case models.ContentTypeTvShow:
		tv := &models.TvShow{}
		query := `
			SELECT content_id, origin_title, country_code, on_watcha, on_netflix
			FROM tv_shows
			WHERE content_id = $1
		`
		err := r.pool.QueryRow(ctx, query, variant.Content.ID).Scan(
			&tv.ContentID,
			&tv.OriginTitle,
			&tv.CountryCode,
			&tv.OnWatcha,
			&tv.OnNetflix,
		)
		if err != nil {
			return r.mapDBError(err, "resolve_tv_show_variant")
		}
		variant.TvShow = tv
	default:
		return fmt.Errorf("resolve_variant: unknown dtype %q: %w", variant.Content.Dtype, models.ErrInvalidInput)
	}

	return nil
}

// GetTags retrieves the tags attached to a content.
func (r *contentRepository) GetTags(ctx context.Context, contentID int64) ([]models.Tag, error) {
	query := `
		SELECT t.id, t.description
		FROM tags t
		INNER JOIN content_tags ct ON ct.tag_id = t.id
		WHERE ct.content_id = $1
		ORDER BY t.id
	`
	rows, err := r.pool.Query(ctx, query, contentID)
	if err != nil {
		return nil, r.mapDBError(err, "get_content_tags")
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Description); err != nil {
			return nil, r.mapDBError(err, "scan_content_tag")
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// GetParticipants retrieves cast and crew for a content with their roles.
func (r *contentRepository) GetParticipants(ctx context.Context, contentID int64) ([]models.ContentParticipant, error) {
	query := `
		SELECT p.id, p.name, p.job, p.image_path, cp.role, cp.character_name
		FROM participants p
		INNER JOIN content_participants cp ON cp.participant_id = p.id
		WHERE cp.content_id = $1
		ORDER BY cp.role, p.id
	`
	rows, err := r.pool.Query(ctx, query, contentID)
	if err != nil {
		return nil, r.mapDBError(err, "get_content_participants")
	}
	defer rows.Close()

	var participants []models.ContentParticipant
	for rows.Next() {
		var cp models.ContentParticipant
		if err := rows.Scan(
			&cp.Participant.ID,
			&cp.Participant.Name,
			&cp.Participant.Job,
			&cp.Participant.ImagePath,
			&cp.Role,
			&cp.CharacterName,
		); err != nil {
			return nil, r.mapDBError(err, "scan_content_participant")
		}
		participants = append(participants, cp)
	}
	return participants, nil
}

// GetGallery retrieves the gallery images for a content.
func (r *contentRepository) GetGallery(ctx context.Context, contentID int64) ([]models.ContentImage, error) {
	query := `
		SELECT id, content_id, image_path
		FROM content_images
		WHERE content_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, contentID)
	if err != nil {
		return nil, r.mapDBError(err, "get_content_gallery")
	}
	defer rows.Close()

	var images []models.ContentImage
	for rows.Next() {
		var img models.ContentImage
		if err := rows.Scan(&img.ID, &img.ContentID, &img.ImagePath); err != nil {
			return nil, r.mapDBError(err, "scan_content_image")
		}
		images = append(images, img)
	}
	return images, nil
}

// WithTransaction executes a function within a database transaction
func (r *contentRepository) WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
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
func (r *contentRepository) mapDBError(err error, operation string) error {
	if err == pgx.ErrNoRows {
		return fmt.Errorf("%s: %w", operation, models.ErrContentNotFound)
	}

	if pgErr, ok := err.(*pgconn.PgError); ok {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return fmt.Errorf("invalid content reference: %w", err)
		case "23505": // unique_violation
			return fmt.Errorf("duplicate content variant: %w", err)
		}
	}

	return fmt.Errorf("database error during %s: %w", operation, err)
}
