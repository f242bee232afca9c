package models

import (
	"strings"
	"time"
)

// ContentType is the public name of a catalogue type.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movies"
	ContentTypeBook   ContentType = "books"
	ContentTypeTvShow ContentType = "tv_shows"
)

// AllContentTypes lists every catalogue type in canonical order. Zero-fill
// loops over per-type aggregates iterate this slice.
var AllContentTypes = []ContentType{ContentTypeMovie, ContentTypeBook, ContentTypeTvShow}

// Single-character discriminator stored in content.dtype.
const (
	DtypeMovie  = "M"
	DtypeBook   = "B"
	DtypeTvShow = "S"
)

// MaxCategorySegments bounds the slash-separated category path depth.
const MaxCategorySegments = 6

// IsValidContentType reports whether ctype names a known catalogue type
func IsValidContentType(ctype ContentType) bool {
	switch ctype {
	case ContentTypeMovie, ContentTypeBook, ContentTypeTvShow:
		return true
	}
	return false
}

// TypeToDtype maps a public content type to its stored discriminator.
// Unknown types map to the empty string.
func TypeToDtype(ctype ContentType) string {
	switch ctype {
	case ContentTypeMovie:
		return DtypeMovie
	case ContentTypeBook:
		return DtypeBook
	case ContentTypeTvShow:
		return DtypeTvShow
	}
	return ""
}

// DtypeToType maps a stored discriminator back to the public content type.
// Unknown discriminators map to the empty type.
func DtypeToType(dtype string) ContentType {
	switch dtype {
	case DtypeMovie:
		return ContentTypeMovie
	case DtypeBook:
		return ContentTypeBook
	case DtypeTvShow:
		return ContentTypeTvShow
	}
	return ""
}

// Content is the shared catalogue row every type has in common. The dtype
// column discriminates which variant table holds the rest.
type Content struct {
	ID             int64     `json:"id" db:"id"`
	Dtype          string    `json:"-" db:"dtype"`
	Title          string    `json:"title" db:"title"`
	Category       string    `json:"category" db:"category"`
	ProductionDate time.Time `json:"production_date" db:"production_date"`
	PosterPath     string    `json:"poster_path" db:"poster_path"`
	Description    string    `json:"description" db:"description"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Type returns the public content type for the stored discriminator
func (c *Content) Type() ContentType {
	return DtypeToType(c.Dtype)
}

// Categories splits the slash-separated category path into its segments.
// An empty category yields nil.
func (c *Content) Categories() []string {
	if c.Category == "" {
		return nil
	}
	return strings.Split(c.Category, "/")
}

// Movie holds the movie-specific columns.
type Movie struct {
	ContentID     int64  `json:"content_id" db:"content_id"`
	OriginTitle   string `json:"origin_title" db:"origin_title"`
	CountryCode   string `json:"country_code" db:"country_code"`
	RunningTime   int    `json:"running_time" db:"running_time"`
	AudienceCount int64  `json:"audience_count" db:"audience_count"`
	OnWatcha      bool   `json:"on_watcha" db:"on_watcha"`
	OnNetflix     bool   `json:"on_netflix" db:"on_netflix"`
}

// Book holds the book-specific columns.
type Book struct {
	ContentID int64  `json:"content_id" db:"content_id"`
	Subtitle  string `json:"subtitle" db:"subtitle"`
	PageCount int    `json:"page_count" db:"page_count"`
	Synopsis  string `json:"synopsis" db:"synopsis"`
}

// TvShow holds the tv-show-specific columns.
type TvShow struct {
	ContentID   int64  `json:"content_id" db:"content_id"`
	OriginTitle string `json:"origin_title" db:"origin_title"`
	CountryCode string `json:"country_code" db:"country_code"`
	OnWatcha    bool   `json:"on_watcha" db:"on_watcha"`
	OnNetflix   bool   `json:"on_netflix" db:"on_netflix"`
}

// ContentVariant is a content row plus at most one resolved variant payload,
// matching Content.Dtype. An unresolved variant has all three pointers nil.
type ContentVariant struct {
	Content Content `json:"content"`
	Movie   *Movie  `json:"movie,omitempty"`
	Book    *Book   `json:"book,omitempty"`
	TvShow  *TvShow `json:"tv_show,omitempty"`
}

// Resolved reports whether a variant payload has been loaded
func (v *ContentVariant) Resolved() bool {
	return v.Movie != nil || v.Book != nil || v.TvShow != nil
}

// Tag is a curated label attached to contents.
type Tag struct {
	ID          int64  `json:"id" db:"id"`
	Description string `json:"description" db:"description"`
}

// Participant is a person appearing in cast or crew listings.
type Participant struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Job       string `json:"job" db:"job"`
	ImagePath string `json:"image_path" db:"image_path"`
}

// ContentParticipant joins a participant to a content with their role on it.
type ContentParticipant struct {
	Participant   Participant `json:"participant"`
	Role          string      `json:"role" db:"role"`
	CharacterName string      `json:"character_name" db:"character_name"`
}

// ContentImage is one gallery entry for a content.
type ContentImage struct {
	ID        int64  `json:"id" db:"id"`
	ContentID int64  `json:"content_id" db:"content_id"`
	ImagePath string `json:"image_path" db:"image_path"`
}

// CreateContentRequest is the thin catalogue-create payload. Exactly one of
// the variant payloads must be set, matching Type.
type CreateContentRequest struct {
	Type           ContentType `json:"type" binding:"required"`
	Title          string      `json:"title" binding:"required"`
	Category       string      `json:"category"`
	ProductionDate time.Time   `json:"production_date"`
	PosterPath     string      `json:"poster_path"`
	Description    string      `json:"description"`
	Movie          *Movie      `json:"movie,omitempty"`
	Book           *Book       `json:"book,omitempty"`
	TvShow         *TvShow     `json:"tv_show,omitempty"`
	TagIDs         []int64     `json:"tag_ids"`
}

// ContentListResponse carries one page of catalogue entries.
type ContentListResponse struct {
	Data    []Content `json:"data"`
	Total   int       `json:"total"`
	Limit   int       `json:"limit"`
	Offset  int       `json:"offset"`
	HasMore bool      `json:"has_more"`
}
