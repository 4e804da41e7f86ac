package app

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"time"

	"aic_catalog/internal/domain"
)

// feedDateLayout is the data API's timestamp format: RFC 3339 without
// fractional seconds. Parsed values normalize to UTC.
const feedDateLayout = "2006-01-02T15:04:05Z07:00"

func parseFeedDate(s string) (time.Time, error) {
	t, err := time.Parse(feedDateLayout, s)
	if err != nil {
		return time.Time{}, errInvalidDateFormat(s)
	}
	return t.UTC(), nil
}

// ParseExhibitions parses the data API's exhibitions document. The root must
// be a JSON object carrying a "data" array; individual exhibitions degrade
// per-item.
func (p *Parser) ParseExhibitions(ctx context.Context, data []byte, idx *CatalogIndex) ([]domain.Exhibition, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("exhibitions: malformed root document: %w", err)
	}
	run := p.newRun(ctx)

	exhibitions := make([]domain.Exhibition, 0)
	for _, raw := range arrayAt(root, "data") {
		item, ok := raw.(map[string]any)
		if !ok {
			run.report(&ParseError{Kind: KindInvalidExhibition, Msg: "exhibition entry is not an object", Data: snippet(raw)})
			continue
		}
		exhibition, err := parseExhibition(item, idx)
		if err != nil {
			if _, ok := asParseError(err); !ok {
				return nil, err
			}
			run.report(err)
			continue
		}
		exhibitions = append(exhibitions, exhibition)
	}
	return exhibitions, nil
}

func parseExhibition(node map[string]any, idx *CatalogIndex) (domain.Exhibition, error) {
	id, err := getInt(node, "id")
	if err != nil {
		return domain.Exhibition{}, wrap(KindInvalidExhibition, err, node)
	}
	title, err := getString(node, "title", false)
	if err != nil {
		return domain.Exhibition{}, wrap(KindInvalidExhibition, err, node)
	}
	shortDescription, _ := getString(node, "short_description", true)

	// The image service needs an explicit width to render.
	rawImageURL, err := getString(node, "image_url", false)
	if err != nil {
		return domain.Exhibition{}, wrap(KindInvalidExhibition, err, node)
	}
	imageURL := rawImageURL + "&w=600"

	// Gallery linkage is soft.
	var galleryID *int64
	var location *domain.Location
	if gid, err := getInt(node, "gallery_id"); err == nil {
		if gallery, err := idx.gallery(gid); err == nil {
			galleryID = &gid
			loc := gallery.Location
			location = &loc
		}
	}

	startString, err := getString(node, "aic_start_at", false)
	if err != nil {
		return domain.Exhibition{}, wrap(KindInvalidExhibition, err, node)
	}
	endString, err := getString(node, "aic_end_at", false)
	if err != nil {
		return domain.Exhibition{}, wrap(KindInvalidExhibition, err, node)
	}
	startDate, err := parseFeedDate(startString)
	if err != nil {
		return domain.Exhibition{}, wrap(KindInvalidExhibition, err, node)
	}
	endDate, err := parseFeedDate(endString)
	if err != nil {
		return domain.Exhibition{}, wrap(KindInvalidExhibition, err, node)
	}

	return domain.Exhibition{
		ID:               id,
		Title:            html.UnescapeString(title),
		ShortDescription: html.UnescapeString(shortDescription),
		ImageURL:         imageURL,
		StartDate:        startDate,
		EndDate:          endDate,
		GalleryID:        galleryID,
		Location:         location,
	}, nil
}
