package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"aic_catalog/internal/domain"
)

// feedSnapshotKey holds the last app-data document that parsed successfully,
// so a broken CMS does not leave the catalog empty.
const feedSnapshotKey = "feed:appdata:last_good"

// IngestionService drives one full catalog refresh: fetch the feed, parse it,
// persist the entities, refresh the secondary data-API documents, and drop the
// affected cache entries.
type IngestionService struct {
	feed   domain.FeedClient
	repo   domain.CatalogRepository
	cache  domain.Cache
	parser *Parser
	log    zerolog.Logger

	snapshotTTLSec int
	workers        int64
}

func NewIngestionService(feed domain.FeedClient, repo domain.CatalogRepository, cache domain.Cache, parser *Parser, log zerolog.Logger, snapshotTTLSec, workers int) *IngestionService {
	if workers <= 0 {
		workers = 2
	}
	return &IngestionService{
		feed:           feed,
		repo:           repo,
		cache:          cache,
		parser:         parser,
		log:            log,
		snapshotTTLSec: snapshotTTLSec,
		workers:        int64(workers),
	}
}

// IngestCatalog runs one refresh. A feed fetch failure falls back to the last
// good snapshot; a parse failure of the main document aborts without touching
// storage. Secondary documents (exhibitions, events) are best-effort.
func (s *IngestionService) IngestCatalog(ctx context.Context) error {
	raw, fromSnapshot, err := s.fetchAppData(ctx)
	if err != nil {
		return err
	}

	catalog, err := s.parser.ParseCatalog(ctx, raw)
	if err != nil {
		return fmt.Errorf("parse app data: %w", err)
	}
	if !fromSnapshot && s.cache != nil {
		if err := s.cache.SetBytes(ctx, feedSnapshotKey, raw, s.snapshotTTLSec); err != nil {
			s.log.Warn().Err(err).Msg("storing feed snapshot failed")
		}
	}

	// Referenced entities land first so tours and objects never dangle.
	if err := s.repo.UpsertGalleries(ctx, catalog.Galleries); err != nil {
		return fmt.Errorf("upsert galleries: %w", err)
	}
	if err := s.repo.UpsertAudioFiles(ctx, catalog.AudioFiles); err != nil {
		return fmt.Errorf("upsert audio files: %w", err)
	}
	if err := s.repo.UpsertObjects(ctx, catalog.Objects); err != nil {
		return fmt.Errorf("upsert objects: %w", err)
	}
	if err := s.repo.UpsertTours(ctx, catalog.Tours); err != nil {
		return fmt.Errorf("upsert tours: %w", err)
	}
	s.invalidateCatalog(ctx, catalog)

	idx := NewCatalogIndex(catalog)
	s.ingestSecondary(ctx, catalog, idx)

	s.log.Info().
		Int("galleries", len(catalog.Galleries)).
		Int("objects", len(catalog.Objects)).
		Int("audio_files", len(catalog.AudioFiles)).
		Int("tours", len(catalog.Tours)).
		Msg("catalog ingested")
	return nil
}

func (s *IngestionService) fetchAppData(ctx context.Context) ([]byte, bool, error) {
	raw, err := s.feed.AppData(ctx)
	if err == nil {
		return raw, false, nil
	}
	if s.cache != nil {
		if snap, ok, cerr := s.cache.GetBytes(ctx, feedSnapshotKey); cerr == nil && ok {
			s.log.Warn().Err(err).Msg("feed unavailable, parsing last good snapshot")
			return snap, true, nil
		}
	}
	return nil, false, fmt.Errorf("fetch app data: %w", err)
}

// ingestSecondary refreshes the data-API documents concurrently. Failures are
// logged but never fail the main ingest.
func (s *IngestionService) ingestSecondary(ctx context.Context, catalog domain.Catalog, idx *CatalogIndex) {
	dataAPI := catalog.DataSettings[domain.SettingDataAPIURL]
	if dataAPI == "" {
		s.log.Warn().Msg("no data api url in feed settings, skipping secondary documents")
		return
	}

	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup
	run := func(name string, task func(context.Context) error) {
		if err := sem.Acquire(ctx, 1); err != nil {
			s.log.Warn().Err(err).Str("doc", name).Msg("secondary fetch not started")
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			if err := task(ctx); err != nil {
				s.log.Warn().Err(err).Str("doc", name).Msg("secondary ingest failed")
				return
			}
			s.log.Info().Str("doc", name).Msg("secondary ingest ok")
		}()
	}

	run("exhibitions", func(ctx context.Context) error {
		raw, err := s.feed.Exhibitions(ctx, dataAPI+catalog.DataSettings[domain.SettingExhibitionsEndpoint])
		if err != nil {
			return err
		}
		exhibitions, err := s.parser.ParseExhibitions(ctx, raw, idx)
		if err != nil {
			return err
		}
		if err := s.repo.UpsertExhibitions(ctx, exhibitions); err != nil {
			return err
		}
		s.del(ctx, "exhibitions")
		return nil
	})
	run("events", func(ctx context.Context) error {
		raw, err := s.feed.Events(ctx, dataAPI+catalog.DataSettings[domain.SettingEventsEndpoint])
		if err != nil {
			return err
		}
		events, err := s.parser.ParseEvents(ctx, raw)
		if err != nil {
			return err
		}
		if err := s.repo.UpsertEvents(ctx, events); err != nil {
			return err
		}
		s.del(ctx, "events")
		return nil
	})

	wg.Wait()
}

// invalidateCatalog drops every cache entry the refreshed entities can serve.
// List keys carry a limit, so the common limits are cleared explicitly.
func (s *IngestionService) invalidateCatalog(ctx context.Context, catalog domain.Catalog) {
	if s.cache == nil {
		return
	}
	s.del(ctx, "galleries:all")
	for floor := 0; floor < domain.TotalFloors; floor++ {
		s.del(ctx, fmt.Sprintf("galleries:floor:%d", floor))
	}
	for _, o := range catalog.Objects {
		s.del(ctx, fmt.Sprintf("object:%d", o.ID))
	}
	for _, t := range catalog.Tours {
		for _, lang := range domain.Languages {
			s.del(ctx, fmt.Sprintf("tour:%d:%s", t.ID, lang))
		}
	}
	for _, lang := range domain.Languages {
		for _, limit := range []int{20, 50, 100} {
			s.del(ctx, fmt.Sprintf("tours:%s:%d", lang, limit))
		}
	}
}

func (s *IngestionService) del(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache invalidation failed")
	}
}
