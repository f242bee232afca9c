package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"tastehub/pkg/models"
)

// ActivityRepository reads the per-(user, content) ledger for detail-page
// composition: the enriched comment list and the viewing user's overlay.
type ActivityRepository interface {
	// ListEnrichedComments returns every surviving comment on a content.
	// Comments from users with neither a score nor a reply on the content
	// are filtered out; survivors carry zero-filled fields where activity
	// is missing. viewerID <= 0 means anonymous (no like-state computed).
	ListEnrichedComments(ctx context.Context, contentID, viewerID int64) ([]models.EnrichedComment, error)

	// GetUserOverlay returns the viewing user's own activity on a content
	// plus the set of comment owners the viewer has liked there.
	GetUserOverlay(ctx context.Context, key models.ActivityKey) (*models.UserOverlay, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new PostgreSQL activity repository
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

// ListEnrichedComments joins each comment with the commenter's score,
// interest state, reply count and like count in a single query. The
// score-or-reply filter happens in SQL so dropped comments never cross the
// wire.
func (r *activityRepository) ListEnrichedComments(ctx context.Context, contentID, viewerID int64) ([]models.EnrichedComment, error) {
	query := `
		SELECT cm.user_id,
		       u.username,
		       cm.body,
		       cm.is_spoiler,
		       cm.created_at,
		       COALESCE(s.value, 0) AS user_score,
		       COALESCE(rc.reply_count, 0) AS reply_count,
		       COALESCE(i.state, '') AS interest_state,
		       COALESCE(lc.like_count, 0) AS like_count,
		       CASE WHEN $2 > 0 AND vl.liking_user_id IS NOT NULL THEN TRUE ELSE FALSE END AS liked_by_viewer
		FROM comments cm
		INNER JOIN users u ON u.id = cm.user_id
		LEFT JOIN scores s
		       ON s.user_id = cm.user_id AND s.content_id = cm.content_id
		LEFT JOIN (
			SELECT user_id, COUNT(*) AS reply_count
			FROM replies
			WHERE content_id = $1
			GROUP BY user_id
		) rc ON rc.user_id = cm.user_id
		LEFT JOIN interests i
		       ON i.user_id = cm.user_id AND i.content_id = cm.content_id
		LEFT JOIN (
			SELECT comment_user_id, COUNT(*) AS like_count
			FROM comment_likes
			WHERE content_id = $1
			GROUP BY comment_user_id
		) lc ON lc.comment_user_id = cm.user_id
		LEFT JOIN comment_likes vl
		       ON vl.content_id = cm.content_id
		      AND vl.comment_user_id = cm.user_id
		      AND vl.liking_user_id = $2
		WHERE cm.content_id = $1
		  AND NOT cm.is_deleted
		  AND (s.user_id IS NOT NULL OR rc.user_id IS NOT NULL)
		ORDER BY cm.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, contentID, viewerID)
	if err != nil {
		return nil, r.mapDBError(err, "list_enriched_comments")
	}
	defer rows.Close()

	var comments []models.EnrichedComment
	for rows.Next() {
		var ec models.EnrichedComment
		if err := rows.Scan(
			&ec.UserID,
			&ec.Username,
			&ec.Body,
			&ec.IsSpoiler,
			&ec.CreatedAt,
			&ec.UserScore,
			&ec.ReplyCount,
			&ec.InterestState,
			&ec.LikeCount,
			&ec.LikedByViewer,
		); err != nil {
			return nil, r.mapDBError(err, "scan_enriched_comment")
		}
		comments = append(comments, ec)
	}
	return comments, nil
}

// GetUserOverlay collects the viewer's own score, interest, comment and the
// comment owners they liked on this content. Missing pieces stay nil; a user
// with no activity at all still gets an overlay with empty fields.
func (r *activityRepository) GetUserOverlay(ctx context.Context, key models.ActivityKey) (*models.UserOverlay, error) {
	overlay := &models.UserOverlay{LikedCommenters: make(map[int64]bool)}

	var score float64
	err := r.pool.QueryRow(ctx,
		`SELECT value FROM scores WHERE user_id = $1 AND content_id = $2`,
		key.UserID, key.ContentID,
	).Scan(&score)
	if err == nil {
		overlay.Score = &score
	} else if err != pgx.ErrNoRows {
		return nil, r.mapDBError(err, "get_overlay_score")
	}

	var state models.InterestState
	err = r.pool.QueryRow(ctx,
		`SELECT state FROM interests WHERE user_id = $1 AND content_id = $2`,
		key.UserID, key.ContentID,
	).Scan(&state)
	if err == nil {
		overlay.InterestState = &state
	} else if err != pgx.ErrNoRows {
		return nil, r.mapDBError(err, "get_overlay_interest")
	}

	comment := &models.Comment{}
	err = r.pool.QueryRow(ctx, `
		SELECT user_id, content_id, body, is_spoiler, is_deleted, created_at
		FROM comments
		WHERE user_id = $1 AND content_id = $2 AND NOT is_deleted
	`, key.UserID, key.ContentID).Scan(
		&comment.UserID,
		&comment.ContentID,
		&comment.Body,
		&comment.IsSpoiler,
		&comment.IsDeleted,
		&comment.CreatedAt,
	)
	if err == nil {
		overlay.Comment = comment
	} else if err != pgx.ErrNoRows {
		return nil, r.mapDBError(err, "get_overlay_comment")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT comment_user_id FROM comment_likes WHERE liking_user_id = $1 AND content_id = $2`,
		key.UserID, key.ContentID,
	)
	if err != nil {
		return nil, r.mapDBError(err, "get_overlay_likes")
	}
	defer rows.Close()
	for rows.Next() {
		var ownerID int64
		if err := rows.Scan(&ownerID); err != nil {
			return nil, r.mapDBError(err, "scan_overlay_like")
		}
		overlay.LikedCommenters[ownerID] = true
	}

	return overlay, nil
}

// mapDBError maps database errors to application errors
func (r *activityRepository) mapDBError(err error, operation string) error {
	if err == pgx.ErrNoRows {
		return fmt.Errorf("%s: %w", operation, models.ErrNotFound)
	}
	return fmt.Errorf("database error during %s: %w", operation, err)
}
