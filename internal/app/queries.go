package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"aic_catalog/internal/domain"
)

// QueryService serves the read API with a cache-aside layer in front of the
// repository.
type QueryService struct {
	repo     domain.CatalogRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.CatalogRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetTour(ctx context.Context, id int64, lang domain.Language) (domain.TourView, error) {
	key := fmt.Sprintf("tour:%d:%s", id, lang)
	var tv domain.TourView
	if ok, _ := s.cache.Get(ctx, key, &tv); ok {
		return tv, nil
	}
	tv, err := s.repo.GetTour(ctx, id, lang)
	if err != nil {
		return domain.TourView{}, err
	}
	_ = s.cache.Set(ctx, key, tv, int(s.cacheTTL.Seconds()))
	return tv, nil
}

func (s *QueryService) ListTours(ctx context.Context, lang domain.Language, limit int) ([]domain.TourView, error) {
	key := fmt.Sprintf("tours:%s:%d", lang, limit)
	var out []domain.TourView
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	tours, err := s.repo.ListTours(ctx, lang, limit)
	if err != nil {
		return nil, err
	}

	// copy before caching so callers can't mutate the cached value through
	// the shared backing array
	cp := make([]domain.TourView, len(tours))
	copy(cp, tours)
	cacheIfSmall(ctx, s.cache, key, cp, int(s.cacheTTL.Seconds()))
	return cp, nil
}

func (s *QueryService) GetObject(ctx context.Context, id int64) (domain.ObjectView, error) {
	key := fmt.Sprintf("object:%d", id)
	var ov domain.ObjectView
	if ok, _ := s.cache.Get(ctx, key, &ov); ok {
		return ov, nil
	}
	ov, err := s.repo.GetObject(ctx, id)
	if err != nil {
		return domain.ObjectView{}, err
	}
	_ = s.cache.Set(ctx, key, ov, int(s.cacheTTL.Seconds()))
	return ov, nil
}

func (s *QueryService) ListGalleries(ctx context.Context, floor *int) ([]domain.Gallery, error) {
	key := "galleries:all"
	if floor != nil {
		key = fmt.Sprintf("galleries:floor:%d", *floor)
	}
	var out []domain.Gallery
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	galleries, err := s.repo.ListGalleries(ctx, floor)
	if err != nil {
		return nil, err
	}
	cp := make([]domain.Gallery, len(galleries))
	copy(cp, galleries)
	cacheIfSmall(ctx, s.cache, key, cp, int(s.cacheTTL.Seconds()))
	return cp, nil
}

func (s *QueryService) ListExhibitions(ctx context.Context) ([]domain.Exhibition, error) {
	key := "exhibitions"
	var out []domain.Exhibition
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	exhibitions, err := s.repo.ListExhibitions(ctx)
	if err != nil {
		return nil, err
	}
	cp := make([]domain.Exhibition, len(exhibitions))
	copy(cp, exhibitions)
	cacheIfSmall(ctx, s.cache, key, cp, int(s.cacheTTL.Seconds()))
	return cp, nil
}

func (s *QueryService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	key := "events"
	var out []domain.Event
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	cp := make([]domain.Event, len(events))
	copy(cp, events)
	cacheIfSmall(ctx, s.cache, key, cp, int(s.cacheTTL.Seconds()))
	return cp, nil
}

// cacheIfSmall skips caching oversized payloads.
func cacheIfSmall(ctx context.Context, cache domain.Cache, key string, v any, ttlSec int) {
	if b, _ := json.Marshal(v); len(b) < 1_000_000 {
		_ = cache.Set(ctx, key, v, ttlSec)
	}
}
