package models

import "time"

// Collection is a curated list of contents owned by a user. Award
// collections (IsAward) are surfaced on detail pages for their content type.
type Collection struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	IsAward     bool      `json:"is_award" db:"is_award"`
	IsDeleted   bool      `json:"is_deleted" db:"is_deleted"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CollectionContent joins a collection to one of its members.
type CollectionContent struct {
	CollectionID int64 `json:"collection_id" db:"collection_id"`
	ContentID    int64 `json:"content_id" db:"content_id"`
}

// CollectionPreviewSize caps the member previews shown per award collection.
const CollectionPreviewSize = 4
