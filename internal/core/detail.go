// Package core - Detail Page Composition
// Assembles a content's full detail view from the aggregation layer.
package core

import (
	"context"
	"errors"
	"fmt"

	"tastehub/internal/repository"
	"tastehub/pkg/models"
	"tastehub/pkg/storage"
)

// DetailService composes detail-page envelopes
type DetailService interface {
	// GetContentDetail assembles the full detail view for a content.
	// viewerID <= 0 composes the anonymous view (no overlay, no like
	// state). A missing content id yields models.ErrContentNotFound.
	GetContentDetail(ctx context.Context, contentID, viewerID int64) (*models.ContentDetailResponse, error)
}

type detailService struct {
	contentRepo    repository.ContentRepository
	analysisRepo   repository.AnalysisRepository
	activityRepo   repository.ActivityRepository
	collectionRepo repository.CollectionRepository
	urls           *storage.URLResolver
}

// NewDetailService creates a new detail composition service
func NewDetailService(
	contentRepo repository.ContentRepository,
	analysisRepo repository.AnalysisRepository,
	activityRepo repository.ActivityRepository,
	collectionRepo repository.CollectionRepository,
	urls *storage.URLResolver,
) DetailService {
	return &detailService{
		contentRepo:    contentRepo,
		analysisRepo:   analysisRepo,
		activityRepo:   activityRepo,
		collectionRepo: collectionRepo,
		urls:           urls,
	}
}

// GetContentDetail runs the composition in strict dependency order: resolve
// the variant, attach the rating aggregate, overlay the viewer, then the
// collections, tags, participants, gallery, similar works and the filtered
// comment list. A store failure on any step aborts the whole response.
func (s *detailService) GetContentDetail(ctx context.Context, contentID, viewerID int64) (*models.ContentDetailResponse, error) {
	content, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, models.ErrContentNotFound) {
			return nil, fmt.Errorf("content %d: %w", contentID, models.ErrContentNotFound)
		}
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	variant := &models.ContentVariant{Content: *content}
	if err := s.contentRepo.ResolveVariant(ctx, variant); err != nil {
		return nil, fmt.Errorf("failed to resolve content variant: %w", err)
	}

	resp := &models.ContentDetailResponse{
		ID:             content.ID,
		Type:           content.Type(),
		Title:          content.Title,
		Categories:     content.Categories(),
		ProductionDate: content.ProductionDate,
		PosterURL:      s.urls.PathToURL(content.PosterPath),
		Description:    content.Description,
	}
	s.attachVariant(resp, variant)

	summaries, err := s.analysisRepo.GetScoreSummaries(ctx, []int64{contentID})
	if err != nil {
		return nil, fmt.Errorf("failed to load rating summary: %w", err)
	}
	if summary, ok := summaries[contentID]; ok {
		resp.Average = summary.Average
		resp.RatingCount = summary.Count
		resp.Distribution = summary.Distribution
	}

	if viewerID > 0 {
		overlay, err := s.activityRepo.GetUserOverlay(ctx, models.ActivityKey{UserID: viewerID, ContentID: contentID})
		if err != nil {
			return nil, fmt.Errorf("failed to load viewer overlay: %w", err)
		}
		resp.Overlay = overlay
	}

	collections, members, err := s.collectionRepo.ListAwardCollections(ctx, resp.Type, models.CollectionPreviewSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load award collections: %w", err)
	}
	resp.Collections = make([]models.CollectionCard, 0, len(collections))
	for _, co := range collections {
		card := models.CollectionCard{
			ID:          co.ID,
			Title:       co.Title,
			Description: co.Description,
		}
		for _, member := range members[co.ID] {
			card.Contents = append(card.Contents, models.ContentPreview{
				ID:        member.ID,
				Title:     member.Title,
				PosterURL: s.urls.PathToURL(member.PosterPath),
			})
		}
		resp.Collections = append(resp.Collections, card)
	}

	tags, err := s.contentRepo.GetTags(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	resp.Tags = tags

	participants, err := s.contentRepo.GetParticipants(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	resp.Participants = make([]models.ParticipantCard, 0, len(participants))
	for _, cp := range participants {
		resp.Participants = append(resp.Participants, models.ParticipantCard{
			ID:            cp.Participant.ID,
			Name:          cp.Participant.Name,
			Job:           cp.Participant.Job,
			Role:          cp.Role,
			CharacterName: cp.CharacterName,
			ImageURL:      s.urls.PathToURL(cp.Participant.ImagePath),
		})
	}

	gallery, err := s.contentRepo.GetGallery(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load gallery: %w", err)
	}
	resp.Gallery = make([]string, 0, len(gallery))
	for _, img := range gallery {
		resp.Gallery = append(resp.Gallery, s.urls.PathToURL(img.ImagePath))
	}

	similar, err := s.composeSimilar(ctx, contentID, resp.Type, tags)
	if err != nil {
		return nil, err
	}
	resp.Similar = similar

	comments, err := s.activityRepo.ListEnrichedComments(ctx, contentID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	resp.Comments = comments

	return resp, nil
}

// composeSimilar builds the similar-works list: one batched tag-match query,
// then one batched summary query. The anchor is excluded; a content shared
// through two tags keeps both entries.
func (s *detailService) composeSimilar(ctx context.Context, anchorID int64, ctype models.ContentType, tags []models.Tag) ([]models.SimilarContentCard, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	tagIDs := make([]int64, 0, len(tags))
	for _, tag := range tags {
		tagIDs = append(tagIDs, tag.ID)
	}

	matches, err := s.analysisRepo.FindSimilarContent(ctx, tagIDs, ctype)
	if err != nil {
		return nil, fmt.Errorf("failed to find similar content: %w", err)
	}

	var filtered []models.TagMatch
	idSet := make(map[int64]struct{})
	for _, m := range matches {
		if m.ContentID == anchorID {
			continue
		}
		filtered = append(filtered, m)
		idSet[m.ContentID] = struct{}{}
	}
	if len(filtered) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	summaries, err := s.analysisRepo.GetScoreSummaries(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load similar-content summaries: %w", err)
	}

	titles, err := s.contentRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load similar content: %w", err)
	}

	cards := make([]models.SimilarContentCard, 0, len(filtered))
	for _, m := range filtered {
		card := models.SimilarContentCard{
			ContentID: m.ContentID,
			TagID:     m.TagID,
		}
		if content, ok := titles[m.ContentID]; ok {
			card.Title = content.Title
			card.PosterURL = s.urls.PathToURL(content.PosterPath)
		}
		if summary, ok := summaries[m.ContentID]; ok {
			card.Average = summary.Average
			card.RatingCount = summary.Count
			card.Distribution = summary.Distribution
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// attachVariant copies the resolved variant payload into the envelope.
// Exactly one of the three payloads ends up populated.
func (s *detailService) attachVariant(resp *models.ContentDetailResponse, variant *models.ContentVariant) {
	switch {
	case variant.Movie != nil:
		resp.Movie = &models.MovieDetail{
			OriginTitle:   variant.Movie.OriginTitle,
			CountryCode:   variant.Movie.CountryCode,
			RunningTime:   variant.Movie.RunningTime,
			AudienceCount: variant.Movie.AudienceCount,
			OnWatcha:      variant.Movie.OnWatcha,
			OnNetflix:     variant.Movie.OnNetflix,
		}
	case variant.Book != nil:
		resp.Book = &models.BookDetail{
			Subtitle:  variant.Book.Subtitle,
			PageCount: variant.Book.PageCount,
			Synopsis:  variant.Book.Synopsis,
		}
	case variant.TvShow != nil:
		resp.TvShow = &models.TvShowDetail{
			OriginTitle: variant.TvShow.OriginTitle,
			CountryCode: variant.TvShow.CountryCode,
			OnWatcha:    variant.TvShow.OnWatcha,
			OnNetflix:   variant.TvShow.OnNetflix,
		}
	}
}
