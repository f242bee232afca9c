package models

import "time"

// MovieDetail is the movie-specific slice of a detail envelope.
type MovieDetail struct {
	OriginTitle   string `json:"origin_title"`
	CountryCode   string `json:"country_code"`
	RunningTime   int    `json:"running_time"`
	AudienceCount int64  `json:"audience_count"`
	OnWatcha      bool   `json:"on_watcha"`
	OnNetflix     bool   `json:"on_netflix"`
}

// BookDetail is the book-specific slice of a detail envelope.
type BookDetail struct {
	Subtitle  string `json:"subtitle"`
	PageCount int    `json:"page_count"`
	Synopsis  string `json:"synopsis"`
}

// TvShowDetail is the tv-show-specific slice of a detail envelope.
type TvShowDetail struct {
	OriginTitle string `json:"origin_title"`
	CountryCode string `json:"country_code"`
	OnWatcha    bool   `json:"on_watcha"`
	OnNetflix   bool   `json:"on_netflix"`
}

// SimilarContentCard is one entry of the similar-works list: a content
// sharing a tag with the anchor, with its own rating summary attached.
// Entries are not deduplicated across tags.
type SimilarContentCard struct {
	ContentID    int64             `json:"content_id"`
	TagID        int64             `json:"tag_id"`
	Title        string            `json:"title"`
	PosterURL    string            `json:"poster_url"`
	Average      float64           `json:"average"`
	RatingCount  int               `json:"rating_count"`
	Distribution [ScoreBuckets]int `json:"distribution"`
}

// CollectionCard is an award collection with up to four member previews.
type CollectionCard struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Contents    []ContentPreview `json:"contents"`
}

// ContentPreview is the minimal projection used inside collection cards.
type ContentPreview struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	PosterURL string `json:"poster_url"`
}

// ParticipantCard is a cast/crew entry on the detail page.
type ParticipantCard struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Job           string `json:"job"`
	Role          string `json:"role"`
	CharacterName string `json:"character_name"`
	ImageURL      string `json:"image_url"`
}

// ContentDetailResponse is the full detail-page envelope. Exactly one of
// Movie/Book/TvShow is populated, matching Type. Overlay is nil for
// anonymous viewers.
type ContentDetailResponse struct {
	ID             int64                `json:"id"`
	Type           ContentType          `json:"type"`
	Title          string               `json:"title"`
	Categories     []string             `json:"categories"`
	ProductionDate time.Time            `json:"production_date"`
	PosterURL      string               `json:"poster_url"`
	Description    string               `json:"description"`
	Movie          *MovieDetail         `json:"movie,omitempty"`
	Book           *BookDetail          `json:"book,omitempty"`
	TvShow         *TvShowDetail        `json:"tv_show,omitempty"`
	Average        float64              `json:"average"`
	RatingCount    int                  `json:"rating_count"`
	Distribution   [ScoreBuckets]int    `json:"distribution"`
	Overlay        *UserOverlay         `json:"overlay,omitempty"`
	Collections    []CollectionCard     `json:"collections"`
	Tags           []Tag                `json:"tags"`
	Participants   []ParticipantCard    `json:"participants"`
	Gallery        []string             `json:"gallery"`
	Similar        []SimilarContentCard `json:"similar"`
	Comments       []EnrichedComment    `json:"comments"`
}
