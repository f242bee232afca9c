package models

// ActionCounts aggregates one user's ledger rows for a single content type.
// Types with no activity still appear with all-zero counts.
type ActionCounts struct {
	RatingCount      int `json:"rating_count"`
	WishCount        int `json:"wish_count"`
	WatchingCount    int `json:"watching_count"`
	NotInterestCount int `json:"not_interest_count"`
	CommentCount     int `json:"comment_count"`
}

// UserActionCountsResponse maps every content type to its counts.
type UserActionCountsResponse struct {
	UserID int64                         `json:"user_id"`
	Counts map[ContentType]ActionCounts `json:"counts"`
}

// RatingAnalysis is the full rating profile of one user: totals, per-type
// counts, the 11-bucket distribution (index 0 = 0.0 up to index 10 = 5.0,
// zero-filled) and the most common bucket. Ties on the most common bucket
// resolve to the lowest score value.
type RatingAnalysis struct {
	TotalCount      int                  `json:"total_count"`
	MovieCount      int                  `json:"movie_count"`
	BookCount       int                  `json:"book_count"`
	TvShowCount     int                  `json:"tv_show_count"`
	Average         float64              `json:"average"`
	Distribution    [ScoreBuckets]int    `json:"distribution"`
	MostCommonScore float64              `json:"most_common_score"`
}

// FavoriteItem is one row of a favorite-mining result: the grouped entity,
// the user's average score across its content and how many of its works the
// user rated. Mining only surfaces groups the user rated more than once with
// an average of at least 3.0.
type FavoriteItem struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	ImagePath   string  `json:"image_path,omitempty"`
	Score       float64 `json:"score"`
	Count       int     `json:"count"`
	SampleTitle string  `json:"sample_title"`
}

// Favorite-mining shared thresholds.
const (
	FavoriteMinCount = 2   // strictly more than one rated work
	FavoriteMinScore = 3.0 // inclusive average floor
)

// TagMatch pairs a tag with one content carrying it. Similar-content
// discovery returns one row per (tag, content) pair without deduplication;
// a content shared through two tags appears twice.
type TagMatch struct {
	TagID     int64 `json:"tag_id"`
	ContentID int64 `json:"content_id"`
}

// ScoreSummary is the rating aggregate of a single content.
type ScoreSummary struct {
	Average      float64           `json:"average"`
	Count        int               `json:"count"`
	Distribution [ScoreBuckets]int `json:"distribution"`
}

// TrendingTitle is one row of the comment-count trending list.
type TrendingTitle struct {
	ContentID    int64  `json:"content_id"`
	Title        string `json:"title"`
	CommentCount int    `json:"comment_count"`
}

// MostCommonBucket scans a distribution in ascending score order and returns
// the index of the first maximum, so ties prefer the lowest score value.
func MostCommonBucket(dist [ScoreBuckets]int) int {
	best := 0
	for i := 1; i < ScoreBuckets; i++ {
		if dist[i] > dist[best] {
			best = i
		}
	}
	return best
}
