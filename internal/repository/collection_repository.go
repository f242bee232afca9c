package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"tastehub/pkg/models"
)

// CollectionRepository reads curated collections for detail-page
// composition.
type CollectionRepository interface {
	// ListAwardCollections returns award collections whose members include
	// the given content type, each with up to previewSize member previews.
	ListAwardCollections(ctx context.Context, ctype models.ContentType, previewSize int) ([]models.Collection, map[int64][]models.Content, error)
}

type collectionRepository struct {
	pool *pgxpool.Pool
}

// NewCollectionRepository creates a new PostgreSQL collection repository
func NewCollectionRepository(pool *pgxpool.Pool) CollectionRepository {
	return &collectionRepository{pool: pool}
}

// ListAwardCollections fetches the award collections for a content type and
// a capped member preview per collection via a windowed row number.
func (r *collectionRepository) ListAwardCollections(ctx context.Context, ctype models.ContentType, previewSize int) ([]models.Collection, map[int64][]models.Content, error) {
	dtype := models.TypeToDtype(ctype)
	if dtype == "" {
		return nil, nil, fmt.Errorf("list_award_collections: %w", models.ErrInvalidInput)
	}
	if previewSize <= 0 {
		previewSize = models.CollectionPreviewSize
	}

	collectionQuery := `
		SELECT DISTINCT co.id, co.user_id, co.title, co.description, co.is_award, co.is_deleted, co.created_at
		FROM collections co
		INNER JOIN collection_contents cc ON cc.collection_id = co.id
		INNER JOIN content c ON c.id = cc.content_id AND c.dtype = $1
		WHERE co.is_award AND NOT co.is_deleted
		ORDER BY co.id
	`
	rows, err := r.pool.Query(ctx, collectionQuery, dtype)
	if err != nil {
		return nil, nil, r.mapDBError(err, "list_award_collections")
	}
	defer rows.Close()

	var collections []models.Collection
	for rows.Next() {
		var co models.Collection
		if err := rows.Scan(&co.ID, &co.UserID, &co.Title, &co.Description, &co.IsAward, &co.IsDeleted, &co.CreatedAt); err != nil {
			return nil, nil, r.mapDBError(err, "scan_award_collection")
		}
		collections = append(collections, co)
	}
	rows.Close()

	members := make(map[int64][]models.Content)
	if len(collections) == 0 {
		return collections, members, nil
	}

	ids := make([]int64, 0, len(collections))
	for _, co := range collections {
		ids = append(ids, co.ID)
	}

	memberQuery := `
		SELECT collection_id, id, dtype, title, category, production_date, poster_path, description, created_at, updated_at
		FROM (
			SELECT cc.collection_id,
			       c.id, c.dtype, c.title, c.category, c.production_date, c.poster_path, c.description, c.created_at, c.updated_at,
			       ROW_NUMBER() OVER (PARTITION BY cc.collection_id ORDER BY c.id) AS rn
			FROM collection_contents cc
			INNER JOIN content c ON c.id = cc.content_id AND c.dtype = $2
			WHERE cc.collection_id = ANY($1)
		) ranked
		WHERE rn <= $3
		ORDER BY collection_id, id
	`
	rows, err = r.pool.Query(ctx, memberQuery, ids, dtype, previewSize)
	if err != nil {
		return nil, nil, r.mapDBError(err, "list_collection_members")
	}
	defer rows.Close()

	for rows.Next() {
		var collectionID int64
		var c models.Content
		if err := rows.Scan(
			&collectionID,
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
			return nil, nil, r.mapDBError(err, "scan_collection_member")
		}
		members[collectionID] = append(members[collectionID], c)
	}

	return collections, members, nil
}

// mapDBError maps database errors to application errors
func (r *collectionRepository) mapDBError(err error, operation string) error {
	if err == pgx.ErrNoRows {
		return fmt.Errorf("%s: %w", operation, models.ErrNotFound)
	}
	return fmt.Errorf("database error during %s: %w", operation, err)
}
