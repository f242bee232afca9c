package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeDtypeMapping(t *testing.T) {
	assert.Equal(t, DtypeMovie, TypeToDtype(ContentTypeMovie))
	assert.Equal(t, DtypeBook, TypeToDtype(ContentTypeBook))
	assert.Equal(t, DtypeTvShow, TypeToDtype(ContentTypeTvShow))
	assert.Equal(t, "", TypeToDtype(ContentType("podcasts")))

	for _, ctype := range AllContentTypes {
		assert.Equal(t, ctype, DtypeToType(TypeToDtype(ctype)))
	}
	assert.Equal(t, ContentType(""), DtypeToType("X"))
}

func TestIsValidContentType(t *testing.T) {
	assert.True(t, IsValidContentType(ContentTypeMovie))
	assert.True(t, IsValidContentType(ContentTypeBook))
	assert.True(t, IsValidContentType(ContentTypeTvShow))
	assert.False(t, IsValidContentType(ContentType("")))
	assert.False(t, IsValidContentType(ContentType("movie")))
}

func TestContentCategories(t *testing.T) {
	c := Content{Category: "drama/romance/period"}
	assert.Equal(t, []string{"drama", "romance", "period"}, c.Categories())

	c.Category = "drama"
	assert.Equal(t, []string{"drama"}, c.Categories())

	c.Category = ""
	assert.Nil(t, c.Categories())
}

func TestContentVariantResolved(t *testing.T) {
	v := &ContentVariant{Content: Content{ID: 1, Dtype: DtypeMovie}}
	assert.False(t, v.Resolved())

	v.Movie = &Movie{ContentID: 1}
	assert.True(t, v.Resolved())

	v = &ContentVariant{Content: Content{ID: 2, Dtype: DtypeBook}, Book: &Book{ContentID: 2}}
	assert.True(t, v.Resolved())

	v = &ContentVariant{Content: Content{ID: 3, Dtype: DtypeTvShow}, TvShow: &TvShow{ContentID: 3}}
	assert.True(t, v.Resolved())
}
