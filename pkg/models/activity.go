package models

import (
	"time"
)

// InterestState represents valid interest states
type InterestState string

const (
	InterestWish        InterestState = "wish"
	InterestWatching    InterestState = "watching"
	InterestNotInterest InterestState = "not_interest"
)

// AllInterestStates lists every state in a fixed order for zero-filled counts.
var AllInterestStates = []InterestState{InterestWish, InterestWatching, InterestNotInterest}

// ActivityKey is the composite (user, content) key every ledger row is
// indexed by. At most one Score, one Interest and one Comment row exist per
// key.
type ActivityKey struct {
	UserID    int64 `json:"user_id"`
	ContentID int64 `json:"content_id"`
}

// Score values run 0.0 to 5.0 in half-point steps.
const (
	ScoreMin     = 0.0
	ScoreMax     = 5.0
	ScoreStep    = 0.5
	ScoreBuckets = 11
)

// Score represents a user's numeric rating of a content.
type Score struct {
	UserID    int64     `json:"user_id" db:"user_id"`
	ContentID int64     `json:"content_id" db:"content_id"`
	Value     float64   `json:"value" db:"value"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsValidScoreValue reports whether v lands exactly on a half-point bucket.
func IsValidScoreValue(v float64) bool {
	if v < ScoreMin || v > ScoreMax {
		return false
	}
	doubled := v * 2
	return doubled == float64(int(doubled))
}

// ScoreBucketIndex maps a score value to its distribution bucket (0..10).
// Returns -1 for values off the half-point grid; callers treat that as a
// programming invariant violation, not user input.
func ScoreBucketIndex(v float64) int {
	if !IsValidScoreValue(v) {
		return -1
	}
	return int(v * 2)
}

// ScoreBucketValue is the inverse of ScoreBucketIndex.
func ScoreBucketValue(idx int) float64 {
	return float64(idx) * ScoreStep
}

// Interest represents a user's interest state for a content.
type Interest struct {
	UserID    int64         `json:"user_id" db:"user_id"`
	ContentID int64         `json:"content_id" db:"content_id"`
	State     InterestState `json:"state" db:"state"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}

// Comment represents a user's single comment on a content.
type Comment struct {
	UserID    int64     `json:"user_id" db:"user_id"`
	ContentID int64     `json:"content_id" db:"content_id"`
	Body      string    `json:"body" db:"body"`
	IsSpoiler bool      `json:"is_spoiler" db:"is_spoiler"`
	IsDeleted bool      `json:"is_deleted" db:"is_deleted"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CommentLike marks that a user liked the comment identified by its owning
// user and content (one comment per user per content, so the pair is the
// comment's identity).
type CommentLike struct {
	LikingUserID  int64 `json:"liking_user_id" db:"liking_user_id"`
	CommentUserID int64 `json:"comment_user_id" db:"comment_user_id"`
	ContentID     int64 `json:"content_id" db:"content_id"`
}

// Reply is a response to a comment.
type Reply struct {
	ID            int64     `json:"id" db:"id"`
	CommentUserID int64     `json:"comment_user_id" db:"comment_user_id"`
	ContentID     int64     `json:"content_id" db:"content_id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	Body          string    `json:"body" db:"body"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// EnrichedComment is a comment joined with the commenter's other activity on
// the same content. Commenters with neither a score nor a reply are filtered
// out by the repository; the survivors carry zero-filled fields for whatever
// they lack.
type EnrichedComment struct {
	UserID        int64     `json:"user_id"`
	Username      string    `json:"username"`
	Body          string    `json:"body"`
	IsSpoiler     bool      `json:"is_spoiler"`
	LikeCount     int       `json:"like_count"`
	UserScore     float64   `json:"user_score"`
	ReplyCount    int       `json:"reply_count"`
	InterestState string    `json:"interest_state"`
	LikedByViewer bool      `json:"liked_by_viewer"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserOverlay is the viewing user's own activity on a content, merged into
// an otherwise anonymous detail view.
type UserOverlay struct {
	Score           *float64       `json:"score,omitempty"`
	InterestState   *InterestState `json:"interest_state,omitempty"`
	Comment         *Comment       `json:"comment,omitempty"`
	LikedCommenters map[int64]bool `json:"-"`
}
