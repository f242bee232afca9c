package models

// ChartMaxItems caps every displayed chart regardless of stored rows.
const ChartMaxItems = 30

// Ranking is one stored row of the offline ranking snapshot.
type Ranking struct {
	ID        int64       `json:"id" db:"id"`
	ChartRank int         `json:"chart_rank" db:"chart_rank"`
	ChartType ContentType `json:"chart_type" db:"chart_type"`
	ChartID   string      `json:"chart_id" db:"chart_id"`
	ContentID int64       `json:"content_id" db:"content_id"`
}

// RankingRow is a snapshot row joined with its content and resolved variant,
// as read back for chart assembly.
type RankingRow struct {
	Ranking Ranking        `json:"ranking"`
	Variant ContentVariant `json:"variant"`
}

// RankingItem is one display entry of an assembled chart. Exactly one of the
// variant payloads is populated. AverageScore is merged for movies only and
// stays nil when no score rows exist.
type RankingItem struct {
	ContentID    int64         `json:"content_id"`
	Rank         int           `json:"rank"`
	Title        string        `json:"title"`
	PosterURL    string        `json:"poster_url"`
	AverageScore *float64      `json:"average_score,omitempty"`
	Movie        *MovieDetail  `json:"movie,omitempty"`
	Book         *BookDetail   `json:"book,omitempty"`
	TvShow       *TvShowDetail `json:"tv_show,omitempty"`
}

// Chart is a named sub-ranking within a chart type, capped at ChartMaxItems.
type Chart struct {
	ChartID string        `json:"chart_id"`
	Title   string        `json:"title"`
	Items   []RankingItem `json:"items"`
}

// ChartListResponse carries every chart of one type.
type ChartListResponse struct {
	ChartType ContentType `json:"chart_type"`
	Charts    []Chart     `json:"charts"`
}

// chartTitles maps (chart type, chart id) to the fixed display title.
var chartTitles = map[ContentType]map[string]string{
	ContentTypeMovie: {
		"mars":       "Watcha Movie Ranking",
		"netflix":    "Netflix Movie Ranking",
		"box_office": "Box Office",
	},
	ContentTypeTvShow: {
		"mars":    "Watcha TV Ranking",
		"netflix": "Netflix TV Ranking",
	},
	ContentTypeBook: {
		"bestseller": "Bestsellers",
		"new":        "New Releases",
	},
}

// ChartTitle returns the display title for a chart id, falling back to the
// raw chart id for buckets the table does not know.
func ChartTitle(ctype ContentType, chartID string) string {
	if titles, ok := chartTitles[ctype]; ok {
		if title, ok := titles[chartID]; ok {
			return title
		}
	}
	return chartID
}

// KnownChartID reports whether a chart id has a display bucket for the type.
// Rows with unknown chart ids are silently omitted from assembly.
func KnownChartID(ctype ContentType, chartID string) bool {
	titles, ok := chartTitles[ctype]
	if !ok {
		return false
	}
	_, ok = titles[chartID]
	return ok
}
