package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tastehub/pkg/models"
)

func TestCreateContentValidation(t *testing.T) {
	svc := NewCatalogueService(&fakeContentRepo{}, &fakeAnalysisRepo{}, nil)
	ctx := context.Background()

	_, err := svc.CreateContent(ctx, &models.CreateContentRequest{
		Type:  models.ContentTypeMovie,
		Movie: &models.Movie{},
	})
	assert.ErrorIs(t, err, models.ErrInvalidInput) // missing title

	_, err = svc.CreateContent(ctx, &models.CreateContentRequest{
		Type:  models.ContentType("podcasts"),
		Title: "Nope",
		Movie: &models.Movie{},
	})
	assert.ErrorIs(t, err, models.ErrInvalidInput) // unknown type

	_, err = svc.CreateContent(ctx, &models.CreateContentRequest{
		Type:  models.ContentTypeMovie,
		Title: "No Payload",
	})
	assert.ErrorIs(t, err, models.ErrInvalidInput) // no variant payload

	_, err = svc.CreateContent(ctx, &models.CreateContentRequest{
		Type:  models.ContentTypeMovie,
		Title: "Two Payloads",
		Movie: &models.Movie{},
		Book:  &models.Book{},
	})
	assert.ErrorIs(t, err, models.ErrInvalidInput) // two variant payloads
}

func TestCreateContentPassesThrough(t *testing.T) {
	repo := &fakeContentRepo{
		createFn: func(ctx context.Context, req *models.CreateContentRequest) (*models.ContentVariant, error) {
			v := &models.ContentVariant{}
			v.Content = models.Content{ID: 42, Dtype: models.DtypeBook, Title: req.Title}
			v.Book = &models.Book{ContentID: 42, PageCount: req.Book.PageCount}
			return v, nil
		},
	}
	svc := NewCatalogueService(repo, &fakeAnalysisRepo{}, nil)

	variant, err := svc.CreateContent(context.Background(), &models.CreateContentRequest{
		Type:  models.ContentTypeBook,
		Title: "A Long Read",
		Book:  &models.Book{PageCount: 800},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), variant.Content.ID)
	require.NotNil(t, variant.Book)
	assert.Equal(t, 800, variant.Book.PageCount)
}

func TestListContentClampsPagination(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &fakeContentRepo{
		listFn: func(ctx context.Context, ctype models.ContentType, limit, offset int) ([]models.Content, int, error) {
			gotLimit, gotOffset = limit, offset
			return []models.Content{{ID: 1, Dtype: models.DtypeMovie}}, 1, nil
		},
	}
	svc := NewCatalogueService(repo, &fakeAnalysisRepo{}, nil)

	resp, err := svc.ListContent(context.Background(), models.ContentTypeMovie, 0, -5)
	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)
	assert.Equal(t, 0, gotOffset)
	assert.Equal(t, 1, resp.Total)
	assert.False(t, resp.HasMore)

	_, err = svc.ListContent(context.Background(), models.ContentTypeMovie, 1000, 40)
	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)
	assert.Equal(t, 40, gotOffset)
}

func TestGetTrendingTitlesClampsLimit(t *testing.T) {
	var gotLimit int
	repo := &fakeAnalysisRepo{
		getTrendingTitlesFn: func(ctx context.Context, limit int) ([]models.TrendingTitle, error) {
			gotLimit = limit
			return []models.TrendingTitle{{ContentID: 1, Title: "Talked About", CommentCount: 40}}, nil
		},
	}
	svc := NewCatalogueService(&fakeContentRepo{}, repo, nil)

	titles, err := svc.GetTrendingTitles(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 10, gotLimit)
	require.Len(t, titles, 1)

	_, err = svc.GetTrendingTitles(context.Background(), 200)
	require.NoError(t, err)
	assert.Equal(t, 10, gotLimit)
}
