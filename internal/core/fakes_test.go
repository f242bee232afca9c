package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"tastehub/pkg/models"
)

// Function-field fakes for the repository interfaces. Unset fields return
// zero values so each test only wires the paths it exercises.

type fakeContentRepo struct {
	createFn          func(ctx context.Context, req *models.CreateContentRequest) (*models.ContentVariant, error)
	getByIDFn         func(ctx context.Context, id int64) (*models.Content, error)
	getByIDsFn        func(ctx context.Context, ids []int64) (map[int64]models.Content, error)
	listFn            func(ctx context.Context, ctype models.ContentType, limit, offset int) ([]models.Content, int, error)
	resolveVariantFn  func(ctx context.Context, variant *models.ContentVariant) error
	getTagsFn         func(ctx context.Context, contentID int64) ([]models.Tag, error)
	getParticipantsFn func(ctx context.Context, contentID int64) ([]models.ContentParticipant, error)
	getGalleryFn      func(ctx context.Context, contentID int64) ([]models.ContentImage, error)
}

func (f *fakeContentRepo) Create(ctx context.Context, req *models.CreateContentRequest) (*models.ContentVariant, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return &models.ContentVariant{}, nil
}

func (f *fakeContentRepo) GetByID(ctx context.Context, id int64) (*models.Content, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, models.ErrContentNotFound
}

func (f *fakeContentRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]models.Content, error) {
	if f.getByIDsFn != nil {
		return f.getByIDsFn(ctx, ids)
	}
	contents := make(map[int64]models.Content, len(ids))
	for _, id := range ids {
		c, err := f.GetByID(ctx, id)
		if errors.Is(err, models.ErrContentNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		contents[id] = *c
	}
	return contents, nil
}

func (f *fakeContentRepo) List(ctx context.Context, ctype models.ContentType, limit, offset int) ([]models.Content, int, error) {
	if f.listFn != nil {
		return f.listFn(ctx, ctype, limit, offset)
	}
	return nil, 0, nil
}

func (f *fakeContentRepo) ResolveVariant(ctx context.Context, variant *models.ContentVariant) error {
	if f.resolveVariantFn != nil {
		return f.resolveVariantFn(ctx, variant)
	}
	return nil
}

func (f *fakeContentRepo) GetTags(ctx context.Context, contentID int64) ([]models.Tag, error) {
	if f.getTagsFn != nil {
		return f.getTagsFn(ctx, contentID)
	}
	return nil, nil
}

func (f *fakeContentRepo) GetParticipants(ctx context.Context, contentID int64) ([]models.ContentParticipant, error) {
	if f.getParticipantsFn != nil {
		return f.getParticipantsFn(ctx, contentID)
	}
	return nil, nil
}

func (f *fakeContentRepo) GetGallery(ctx context.Context, contentID int64) ([]models.ContentImage, error) {
	if f.getGalleryFn != nil {
		return f.getGalleryFn(ctx, contentID)
	}
	return nil, nil
}

func (f *fakeContentRepo) WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeAnalysisRepo struct {
	countUserActionsFn       func(ctx context.Context, userID int64) (map[models.ContentType]models.ActionCounts, error)
	getRatingAnalysisFn      func(ctx context.Context, userID int64) (*models.RatingAnalysis, error)
	findFavoritePersonsFn    func(ctx context.Context, userID int64, ctype models.ContentType, job string, size int) ([]models.FavoriteItem, error)
	findFavoriteTagsFn       func(ctx context.Context, userID int64, ctype models.ContentType, size int) ([]models.FavoriteItem, error)
	findFavoriteCountriesFn  func(ctx context.Context, userID int64, size int) ([]models.FavoriteItem, error)
	findFavoriteCategoriesFn func(ctx context.Context, userID int64, ctype models.ContentType, size int) ([]models.FavoriteItem, error)
	findSimilarContentFn     func(ctx context.Context, tagIDs []int64, ctype models.ContentType) ([]models.TagMatch, error)
	getContentScoresFn       func(ctx context.Context, contentIDs []int64) (map[int64]float64, error)
	getScoreSummariesFn      func(ctx context.Context, contentIDs []int64) (map[int64]models.ScoreSummary, error)
	getTrendingTitlesFn      func(ctx context.Context, limit int) ([]models.TrendingTitle, error)
}

func (f *fakeAnalysisRepo) CountUserActions(ctx context.Context, userID int64) (map[models.ContentType]models.ActionCounts, error) {
	if f.countUserActionsFn != nil {
		return f.countUserActionsFn(ctx, userID)
	}
	return map[models.ContentType]models.ActionCounts{}, nil
}

func (f *fakeAnalysisRepo) GetRatingAnalysis(ctx context.Context, userID int64) (*models.RatingAnalysis, error) {
	if f.getRatingAnalysisFn != nil {
		return f.getRatingAnalysisFn(ctx, userID)
	}
	return &models.RatingAnalysis{}, nil
}

func (f *fakeAnalysisRepo) FindFavoritePersons(ctx context.Context, userID int64, ctype models.ContentType, job string, size int) ([]models.FavoriteItem, error) {
	if f.findFavoritePersonsFn != nil {
		return f.findFavoritePersonsFn(ctx, userID, ctype, job, size)
	}
	return nil, nil
}

func (f *fakeAnalysisRepo) FindFavoriteTags(ctx context.Context, userID int64, ctype models.ContentType, size int) ([]models.FavoriteItem, error) {
	if f.findFavoriteTagsFn != nil {
		return f.findFavoriteTagsFn(ctx, userID, ctype, size)
	}
	return nil, nil
}

func (f *fakeAnalysisRepo) FindFavoriteCountries(ctx context.Context, userID int64, size int) ([]models.FavoriteItem, error) {
	if f.findFavoriteCountriesFn != nil {
		return f.findFavoriteCountriesFn(ctx, userID, size)
	}
	return nil, nil
}

func (f *fakeAnalysisRepo) FindFavoriteCategories(ctx context.Context, userID int64, ctype models.ContentType, size int) ([]models.FavoriteItem, error) {
	if f.findFavoriteCategoriesFn != nil {
		return f.findFavoriteCategoriesFn(ctx, userID, ctype, size)
	}
	return nil, nil
}

func (f *fakeAnalysisRepo) FindSimilarContent(ctx context.Context, tagIDs []int64, ctype models.ContentType) ([]models.TagMatch, error) {
	if f.findSimilarContentFn != nil {
		return f.findSimilarContentFn(ctx, tagIDs, ctype)
	}
	return nil, nil
}

func (f *fakeAnalysisRepo) GetContentScores(ctx context.Context, contentIDs []int64) (map[int64]float64, error) {
	if f.getContentScoresFn != nil {
		return f.getContentScoresFn(ctx, contentIDs)
	}
	return map[int64]float64{}, nil
}

func (f *fakeAnalysisRepo) GetScoreSummaries(ctx context.Context, contentIDs []int64) (map[int64]models.ScoreSummary, error) {
	if f.getScoreSummariesFn != nil {
		return f.getScoreSummariesFn(ctx, contentIDs)
	}
	return map[int64]models.ScoreSummary{}, nil
}

func (f *fakeAnalysisRepo) GetTrendingTitles(ctx context.Context, limit int) ([]models.TrendingTitle, error) {
	if f.getTrendingTitlesFn != nil {
		return f.getTrendingTitlesFn(ctx, limit)
	}
	return nil, nil
}

type fakeActivityRepo struct {
	listEnrichedCommentsFn func(ctx context.Context, contentID, viewerID int64) ([]models.EnrichedComment, error)
	getUserOverlayFn       func(ctx context.Context, key models.ActivityKey) (*models.UserOverlay, error)
}

func (f *fakeActivityRepo) ListEnrichedComments(ctx context.Context, contentID, viewerID int64) ([]models.EnrichedComment, error) {
	if f.listEnrichedCommentsFn != nil {
		return f.listEnrichedCommentsFn(ctx, contentID, viewerID)
	}
	return nil, nil
}

func (f *fakeActivityRepo) GetUserOverlay(ctx context.Context, key models.ActivityKey) (*models.UserOverlay, error) {
	if f.getUserOverlayFn != nil {
		return f.getUserOverlayFn(ctx, key)
	}
	return &models.UserOverlay{}, nil
}

type fakeCollectionRepo struct {
	listAwardCollectionsFn func(ctx context.Context, ctype models.ContentType, previewSize int) ([]models.Collection, map[int64][]models.Content, error)
}

func (f *fakeCollectionRepo) ListAwardCollections(ctx context.Context, ctype models.ContentType, previewSize int) ([]models.Collection, map[int64][]models.Content, error) {
	if f.listAwardCollectionsFn != nil {
		return f.listAwardCollectionsFn(ctx, ctype, previewSize)
	}
	return nil, map[int64][]models.Content{}, nil
}

type fakeRankingRepo struct {
	listByChartTypeFn func(ctx context.Context, ctype models.ContentType) ([]models.RankingRow, error)
	replaceAllFn      func(ctx context.Context, ctype models.ContentType, rankings []models.Ranking) error
}

func (f *fakeRankingRepo) ListByChartType(ctx context.Context, ctype models.ContentType) ([]models.RankingRow, error) {
	if f.listByChartTypeFn != nil {
		return f.listByChartTypeFn(ctx, ctype)
	}
	return nil, nil
}

func (f *fakeRankingRepo) ReplaceAll(ctx context.Context, ctype models.ContentType, rankings []models.Ranking) error {
	if f.replaceAllFn != nil {
		return f.replaceAllFn(ctx, ctype, rankings)
	}
	return nil
}

func (f *fakeRankingRepo) WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeUserRepo struct {
	users  map[int64]*models.User
	byName map[string]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[int64]*models.User),
		byName: make(map[string]*models.User),
		nextID: 1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, exists := f.byName[user.Username]; exists {
		return models.ErrUsernameExists
	}
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users[user.ID] = &stored
	f.byName[user.Username] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := f.byName[username]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, ok := f.byName[username]
	return ok, nil
}
