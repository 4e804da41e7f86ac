package app

import (
	"html"
	"sort"

	"aic_catalog/internal/domain"
)

// tourCredits is the fixed credit line the CMS never localizes. The
// misspelling is in the published copy.
const tourCredits = "Copyright 2016 Art Institue of Chicago"

// parseTourCategories walks the keyed category collection. One bad translation
// fails its whole category.
func (r *parseRun) parseTourCategories(node map[string]any) ([]domain.TourCategory, error) {
	categories := make([]domain.TourCategory, 0, len(node))
	for _, key := range sortedKeys(node) {
		item, ok := node[key].(map[string]any)
		if !ok {
			r.report(&ParseError{Kind: KindInvalidTourCategory, Msg: "tour category entry is not an object", Data: snippet(node[key])})
			continue
		}
		c, err := parseTourCategory(item)
		if err != nil {
			if _, ok := asParseError(err); !ok {
				return nil, err
			}
			r.report(wrap(KindInvalidTourCategory, err, item))
			continue
		}
		categories = append(categories, c)
		r.idx.registerCategory(c)
	}
	return categories, nil
}

func parseTourCategory(node map[string]any) (domain.TourCategory, error) {
	categoryID, err := getString(node, "category", false)
	if err != nil {
		return domain.TourCategory{}, err
	}
	titles := map[domain.Language]string{domain.English: categoryID}
	for _, raw := range arrayAt(node, "translations") {
		block, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		lang, err := languageFor(block)
		if err != nil {
			return domain.TourCategory{}, err
		}
		title, err := getString(block, "category", false)
		if err != nil {
			return domain.TourCategory{}, err
		}
		titles[lang] = title
	}
	return domain.TourCategory{ID: categoryID, Title: titles}, nil
}

// parseTours walks the tours array. A tour with zero surviving stops is
// invalid; a failed stop is reported and skipped without failing the tour.
func (r *parseRun) parseTours(arr []any) ([]domain.Tour, error) {
	tours := make([]domain.Tour, 0, len(arr))
	for _, raw := range arr {
		item, ok := raw.(map[string]any)
		if !ok {
			r.report(&ParseError{Kind: KindInvalidTour, Msg: "tour entry is not an object", Data: snippet(raw)})
			continue
		}
		t, err := r.parseTour(item)
		if err != nil {
			if _, ok := asParseError(err); !ok {
				return nil, err
			}
			r.report(wrap(KindInvalidTour, err, item))
			continue
		}
		tours = append(tours, t)
	}
	return tours, nil
}

func (r *parseRun) parseTour(node map[string]any) (domain.Tour, error) {
	id, err := getInt(node, "nid")
	if err != nil {
		return domain.Tour{}, err
	}
	imageURL, err := getURL(node, "image_url", false)
	if err != nil {
		return domain.Tour{}, err
	}
	audioFileID, err := getInt(node, "tour_audio")
	if err != nil {
		return domain.Tour{}, err
	}
	audioFile, err := r.idx.audioFile(audioFileID)
	if err != nil {
		return domain.Tour{}, err
	}
	order, err := getInt(node, "weight")
	if err != nil {
		return domain.Tour{}, err
	}

	var selectorNumber *int64
	if v, err := getInt(node, "selector_number"); err == nil {
		selectorNumber = &v
	}

	// Category linkage is soft: an unknown id just leaves the tour
	// uncategorized.
	var category *domain.TourCategory
	if categoryID, _ := getString(node, "category", true); categoryID != "" {
		if c, ok := r.idx.category(categoryID); ok {
			category = &c
		}
	}

	rawStops, ok := node["tour_stops"].([]any)
	if !ok {
		return domain.Tour{}, errTourStopsNotFound(id)
	}
	stops := make([]domain.TourStop, 0, len(rawStops))
	for _, raw := range rawStops {
		block, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		stop, err := r.parseTourStop(block)
		if err != nil {
			if _, ok := asParseError(err); !ok {
				return domain.Tour{}, err
			}
			r.report(wrap(KindInvalidTour, err, node))
			continue
		}
		stops = append(stops, stop)
	}
	if len(stops) == 0 {
		return domain.Tour{}, errNoValidTourStops()
	}
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Order < stops[j].Order })

	coords, err := getCoords(node, "location")
	if err != nil {
		return domain.Tour{}, err
	}
	var floor int
	if f, err := getInt(node, "floor"); err == nil {
		floor = int(f)
	} else {
		floor = stops[0].Object.Location.Floor
	}

	translations, err := mergeTranslations(node, parseTourBlock, func(err error) {
		if pe, ok := asParseError(err); ok && pe.Kind == KindLanguageNotFound {
			r.report(pe)
			return
		}
		r.report(wrap(KindInvalidTour, err, node))
	})
	if err != nil {
		return domain.Tour{}, err
	}

	return domain.Tour{
		ID:              id,
		AudioCommentary: domain.AudioCommentary{SelectorNumber: selectorNumber, AudioFile: audioFile},
		Order:           order,
		Category:        category,
		ImageURL:        imageURL,
		Location:        domain.Location{Coords: coords, Floor: floor},
		Stops:           stops,
		Translations:    translations,
	}, nil
}

func (r *parseRun) parseTourStop(node map[string]any) (domain.TourStop, error) {
	order, err := getInt(node, "sort")
	if err != nil {
		return domain.TourStop{}, err
	}
	objectID, err := getInt(node, "object")
	if err != nil {
		return domain.TourStop{}, err
	}
	object, err := r.idx.object(objectID)
	if err != nil {
		return domain.TourStop{}, err
	}
	audioFileID, err := getInt(node, "audio_id")
	if err != nil {
		return domain.TourStop{}, err
	}
	audioFile, err := r.idx.audioFile(audioFileID)
	if err != nil {
		return domain.TourStop{}, err
	}

	var audioBumper *domain.AudioFile
	if bumperID, err := getInt(node, "audio_bumper"); err == nil {
		if bumper, err := r.idx.audioFile(bumperID); err == nil {
			audioBumper = &bumper
		}
	}

	return domain.TourStop{
		Order:       order,
		Object:      object,
		Audio:       audioFile,
		AudioBumper: audioBumper,
	}, nil
}

// parseTourBlock reads one localized tour payload. The long description is the
// short description joined with the feed's intro text.
func parseTourBlock(node map[string]any) (domain.TourTranslation, error) {
	title, err := getString(node, "title", false)
	if err != nil {
		return domain.TourTranslation{}, err
	}
	shortDescription, err := getString(node, "description", false)
	if err != nil {
		return domain.TourTranslation{}, err
	}
	intro, err := getString(node, "intro", false)
	if err != nil {
		return domain.TourTranslation{}, err
	}
	longDescription := shortDescription + "\r\r" + intro
	duration, _ := getString(node, "tour_duration", true)

	return domain.TourTranslation{
		Title:            html.UnescapeString(title),
		ShortDescription: html.UnescapeString(shortDescription),
		LongDescription:  html.UnescapeString(longDescription),
		Duration:         duration,
		Credits:          tourCredits,
	}, nil
}
