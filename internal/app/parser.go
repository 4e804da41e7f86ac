package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"aic_catalog/internal/domain"
)

// Parser turns raw CMS feed documents into the domain model. It holds no
// per-run state: every ParseCatalog call builds its own parse context, so
// concurrent calls on independent documents are fine.
type Parser struct {
	diag          domain.Diagnostics
	log           zerolog.Logger
	printProblems bool
}

// NewParser wires the diagnostics sink. printProblems additionally echoes
// every non-fatal problem to the local log.
func NewParser(diag domain.Diagnostics, log zerolog.Logger, printProblems bool) *Parser {
	return &Parser{diag: diag, log: log, printProblems: printProblems}
}

// parseRun is the per-call parse context: the reference index plus the
// in-progress collections later sections resolve against. It exists for one
// ParseCatalog call and is discarded with it.
type parseRun struct {
	ctx           context.Context
	diag          domain.Diagnostics
	log           zerolog.Logger
	printProblems bool

	idx            *refIndex
	galleries      []domain.Gallery
	audioFiles     []domain.AudioFile
	objects        []domain.Object
	tourCategories []domain.TourCategory
	restaurants    []domain.Restaurant
	searchArtworks []domain.Object
}

func (p *Parser) newRun(ctx context.Context) *parseRun {
	return &parseRun{
		ctx:           ctx,
		diag:          p.diag,
		log:           p.log,
		printProblems: p.printProblems,
		idx:           newRefIndex(),
	}
}

// report forwards one recognized non-fatal failure to the diagnostics sink.
func (r *parseRun) report(err error) {
	var pe *ParseError
	if !errors.As(err, &pe) {
		// Callers only report taxonomy errors; anything else aborts upstream.
		pe = &ParseError{Kind: KindParseFailure, Msg: err.Error()}
	}
	if r.diag != nil {
		r.diag.Record(r.ctx, domain.ParseProblem{
			Kind:    pe.Kind.String(),
			Code:    pe.Kind.Code(),
			Message: pe.Msg,
			Data:    pe.Data,
		})
	}
	if r.printProblems {
		r.log.Warn().Str("kind", pe.Kind.String()).Str("data", pe.Data).Msg(pe.Msg)
	}
}

// ParseCatalog parses the main feed document into one immutable catalog
// snapshot. Entity sections run in dependency order so cross-references
// resolve against fully-built index entries. The only hard failure is a root
// document that is not valid JSON; everything else degrades per-item through
// the diagnostics sink.
func (p *Parser) ParseCatalog(ctx context.Context, data []byte) (domain.Catalog, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return domain.Catalog{}, fmt.Errorf("app data: malformed root document: %w", err)
	}
	run := p.newRun(ctx)

	generalInfo, err := run.parseGeneralInfo(objectAt(root, "general_info"))
	if err != nil {
		return domain.Catalog{}, err
	}
	galleries, err := run.parseGalleries(objectAt(root, "galleries"))
	if err != nil {
		return domain.Catalog{}, err
	}
	audioFiles, err := run.parseAudioFiles(objectAt(root, "audio_files"))
	if err != nil {
		return domain.Catalog{}, err
	}
	objects, err := run.parseObjects(objectAt(root, "objects"))
	if err != nil {
		return domain.Catalog{}, err
	}
	tourCategories, err := run.parseTourCategories(objectAt(root, "tour_categories"))
	if err != nil {
		return domain.Catalog{}, err
	}
	tours, err := run.parseTours(arrayAt(root, "tours"))
	if err != nil {
		return domain.Catalog{}, err
	}
	dataSettings, err := run.parseDataSettings(objectAt(root, "data"))
	if err != nil {
		return domain.Catalog{}, err
	}
	search := objectAt(root, "search")
	searchStrings := run.parseSearchStrings(objectAt(search, "search_strings"))
	searchArtworks, err := run.parseSearchArtworks(search)
	if err != nil {
		return domain.Catalog{}, err
	}
	// The feed's annotation key is misspelled upstream; it must be read
	// exactly as published.
	mapModel, err := run.parseMap(objectAt(root, "map_floors"), objectAt(root, "map_annontations"))
	if err != nil {
		return domain.Catalog{}, err
	}
	messages, err := run.parseMessages(objectAt(root, "messages"))
	if err != nil {
		return domain.Catalog{}, err
	}

	return domain.Catalog{
		GeneralInfo:    generalInfo,
		Galleries:      galleries,
		Objects:        objects,
		AudioFiles:     audioFiles,
		Tours:          tours,
		TourCategories: tourCategories,
		Map:            mapModel,
		Restaurants:    run.restaurants,
		DataSettings:   dataSettings,
		SearchStrings:  searchStrings,
		SearchArtworks: searchArtworks,
		Messages:       messages,
	}, nil
}
