package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tastehub/pkg/models"
)

func TestGetUserActionCounts(t *testing.T) {
	repo := &fakeAnalysisRepo{
		countUserActionsFn: func(ctx context.Context, userID int64) (map[models.ContentType]models.ActionCounts, error) {
			return map[models.ContentType]models.ActionCounts{
				models.ContentTypeMovie:  {RatingCount: 3, WishCount: 1},
				models.ContentTypeBook:   {},
				models.ContentTypeTvShow: {},
			}, nil
		},
	}

	svc := NewAnalysisService(repo)
	resp, err := svc.GetUserActionCounts(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.UserID)
	assert.Equal(t, 3, resp.Counts[models.ContentTypeMovie].RatingCount)
	assert.Contains(t, resp.Counts, models.ContentTypeBook)
	assert.Contains(t, resp.Counts, models.ContentTypeTvShow)
}

func TestGetFavoritePersonsRequiresJob(t *testing.T) {
	svc := NewAnalysisService(&fakeAnalysisRepo{})

	_, err := svc.GetFavoritePersons(context.Background(), 7, models.ContentTypeMovie, "", 10)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestGetFavoritePersonsRejectsInvalidType(t *testing.T) {
	svc := NewAnalysisService(&fakeAnalysisRepo{})

	_, err := svc.GetFavoritePersons(context.Background(), 7, models.ContentType("podcasts"), "director", 10)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestFavoriteSizeClamping(t *testing.T) {
	var gotSize int
	repo := &fakeAnalysisRepo{
		findFavoriteTagsFn: func(ctx context.Context, userID int64, ctype models.ContentType, size int) ([]models.FavoriteItem, error) {
			gotSize = size
			return nil, nil
		},
	}
	svc := NewAnalysisService(repo)

	_, err := svc.GetFavoriteTags(context.Background(), 7, models.ContentTypeBook, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, gotSize)

	_, err = svc.GetFavoriteTags(context.Background(), 7, models.ContentTypeBook, 500)
	require.NoError(t, err)
	assert.Equal(t, 10, gotSize)

	_, err = svc.GetFavoriteTags(context.Background(), 7, models.ContentTypeBook, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, gotSize)
}

func TestGetFavoriteCountries(t *testing.T) {
	repo := &fakeAnalysisRepo{
		findFavoriteCountriesFn: func(ctx context.Context, userID int64, size int) ([]models.FavoriteItem, error) {
			return []models.FavoriteItem{
				{Name: "KR", Score: 4.5, Count: 3, SampleTitle: "Oldboy"},
				{Name: "FR", Score: 4.0, Count: 2, SampleTitle: "Amelie"},
			}, nil
		},
	}
	svc := NewAnalysisService(repo)

	items, err := svc.GetFavoriteCountries(context.Background(), 7, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "KR", items[0].Name)
}
