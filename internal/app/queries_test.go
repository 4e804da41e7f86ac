package app_test

import (
	"context"
	"testing"
	"time"

	"aic_catalog/internal/app"
	"aic_catalog/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	tv domain.TourView
	ov domain.ObjectView
	gs []domain.Gallery

	tourCalls int
}

func (f *fakeRepo) UpsertGalleries(ctx context.Context, gs []domain.Gallery) error     { return nil }
func (f *fakeRepo) UpsertObjects(ctx context.Context, os []domain.Object) error        { return nil }
func (f *fakeRepo) UpsertAudioFiles(ctx context.Context, as []domain.AudioFile) error  { return nil }
func (f *fakeRepo) UpsertTours(ctx context.Context, ts []domain.Tour) error            { return nil }
func (f *fakeRepo) UpsertExhibitions(ctx context.Context, es []domain.Exhibition) error { return nil }
func (f *fakeRepo) UpsertEvents(ctx context.Context, es []domain.Event) error          { return nil }
func (f *fakeRepo) LogParseProblem(ctx context.Context, p domain.ParseProblem) error   { return nil }

func (f *fakeRepo) GetTour(ctx context.Context, id int64, lang domain.Language) (domain.TourView, error) {
	f.tourCalls++
	return f.tv, nil
}
func (f *fakeRepo) ListTours(ctx context.Context, lang domain.Language, limit int) ([]domain.TourView, error) {
	return []domain.TourView{f.tv}, nil
}
func (f *fakeRepo) GetObject(ctx context.Context, id int64) (domain.ObjectView, error) {
	return f.ov, nil
}
func (f *fakeRepo) ListGalleries(ctx context.Context, floor *int) ([]domain.Gallery, error) {
	return f.gs, nil
}
func (f *fakeRepo) ListExhibitions(ctx context.Context) ([]domain.Exhibition, error) {
	return nil, nil
}
func (f *fakeRepo) ListEvents(ctx context.Context) ([]domain.Event, error) { return nil, nil }

type fakeCache struct {
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.TourView:
		*d = v.(domain.TourView)
	case *[]domain.TourView:
		*d = v.([]domain.TourView)
	case *domain.ObjectView:
		*d = v.(domain.ObjectView)
	case *[]domain.Gallery:
		*d = v.([]domain.Gallery)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error { return nil }
func (c *fakeCache) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}
func (c *fakeCache) SetBytes(ctx context.Context, key string, b []byte, ttlSec int) error {
	return nil
}

// ---- tests ----

func TestGetTour_CacheMissThenHit(t *testing.T) {
	repo := &fakeRepo{
		tv: domain.TourView{ID: 42, Title: "Essentials", Language: domain.Spanish},
	}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 10*time.Minute)

	// Miss (first time, populates cache)
	tv, err := q.GetTour(context.Background(), 42, domain.Spanish)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if tv.ID != 42 || tv.Title != "Essentials" || tv.Language != domain.Spanish {
		t.Fatalf("unexpected tour: %+v", tv)
	}

	// Mutate repo to ensure second read indeed comes from cache
	repo.tv.Title = "SHOULD NOT SEE THIS"

	// Hit (served from cache)
	tv2, err := q.GetTour(context.Background(), 42, domain.Spanish)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if tv2.Title != "Essentials" {
		t.Fatalf("expected cached title, got %s", tv2.Title)
	}
	if repo.tourCalls != 1 {
		t.Fatalf("expected 1 repo call, got %d", repo.tourCalls)
	}
}

func TestGetTour_LanguagesCacheSeparately(t *testing.T) {
	repo := &fakeRepo{tv: domain.TourView{ID: 7, Title: "A", Language: domain.English}}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 10*time.Minute)

	if _, err := q.GetTour(context.Background(), 7, domain.English); err != nil {
		t.Fatalf("err: %v", err)
	}
	if _, err := q.GetTour(context.Background(), 7, domain.French); err != nil {
		t.Fatalf("err: %v", err)
	}
	if repo.tourCalls != 2 {
		t.Fatalf("expected per-language cache keys, got %d repo calls", repo.tourCalls)
	}
}

func TestListGalleries_Cache(t *testing.T) {
	repo := &fakeRepo{
		gs: []domain.Gallery{{ID: 1, Title: "Gallery 100", DisplayTitle: "100"}},
	}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 10*time.Minute)

	out, err := q.ListGalleries(context.Background(), nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 1 || out[0].DisplayTitle != "100" {
		t.Fatalf("unexpected galleries: %+v", out)
	}

	// Change repo, call again -> should come from cache
	repo.gs[0].DisplayTitle = "Changed"
	out2, _ := q.ListGalleries(context.Background(), nil)
	if out2[0].DisplayTitle != "100" {
		t.Fatalf("expected cached display title, got %s", out2[0].DisplayTitle)
	}
}
