package app

import (
	"context"
	"encoding/json"
	"fmt"
	"html"

	"aic_catalog/internal/domain"
)

// artworkPlaceholderImageURL stands in when the data API row carries no image
// reference.
const artworkPlaceholderImageURL = "https://aic-mobile-tours.artic.edu/sites/default/files/object-images/AIC_ImagePlaceholder_25.png"

// parseSearchStrings collects the promoted search suggestions. Non-string
// values are skipped silently.
func (r *parseRun) parseSearchStrings(node map[string]any) []string {
	searchStrings := make([]string, 0, len(node))
	for _, key := range sortedKeys(node) {
		if s, ok := node[key].(string); ok {
			searchStrings = append(searchStrings, s)
		}
	}
	return searchStrings
}

// parseSearchArtworks resolves the promoted artwork ids against the objects
// already parsed this run. The first failure is reported and stops the
// collection, keeping whatever resolved before it.
func (r *parseRun) parseSearchArtworks(searchNode map[string]any) ([]domain.Object, error) {
	artworks := make([]domain.Object, 0)
	ids, err := getIntArray(searchNode, "search_objects")
	if err != nil {
		r.report(wrap(KindInvalidSearchArtworks, err, searchNode))
		r.searchArtworks = artworks
		return artworks, nil
	}
	for _, id := range ids {
		artwork, err := r.idx.object(id)
		if err != nil {
			r.report(wrap(KindInvalidSearchArtworks, err, searchNode))
			break
		}
		artworks = append(artworks, artwork)
	}
	r.searchArtworks = artworks
	return artworks, nil
}

// ParseAutocomplete parses the autocomplete endpoint's bare string array. A
// malformed document degrades to an empty result with one report.
func (p *Parser) ParseAutocomplete(ctx context.Context, data []byte) []string {
	run := p.newRun(ctx)
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		run.report(&ParseError{Kind: KindInvalidAutocomplete, Msg: err.Error(), Data: fmt.Sprintf("%d bytes", len(data))})
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, el := range raw {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ParseSearchContent parses the multisearch response: a positional 3-element
// array of artworks, tours, and exhibitions result sets. Lookups resolve
// against the given catalog index.
func (p *Parser) ParseSearchContent(ctx context.Context, data []byte, idx *CatalogIndex) domain.SearchContent {
	run := p.newRun(ctx)
	content := domain.SearchContent{
		Artworks:    []domain.SearchedArtwork{},
		Tours:       []domain.Tour{},
		Exhibitions: []domain.Exhibition{},
	}

	var sections []any
	if err := json.Unmarshal(data, &sections); err != nil {
		run.report(&ParseError{Kind: KindInvalidSearchContent, Msg: err.Error(), Data: fmt.Sprintf("%d bytes", len(data))})
		return content
	}
	for i, raw := range sections {
		section, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		switch i {
		case 0:
			content.Artworks = run.parseSearchedArtworks(section, idx)
		case 1:
			content.Tours = run.parseSearchedTours(section, idx)
		case 2:
			content.Exhibitions = run.parseSearchedExhibitions(section, idx)
		}
	}
	return content
}

// parseSearchedArtworks walks the artworks result set. A row whose artwork
// also lives in the mobile CMS reuses that object wholesale; otherwise the row
// parses from the data API fields, and only when it is on view.
func (r *parseRun) parseSearchedArtworks(section map[string]any, idx *CatalogIndex) []domain.SearchedArtwork {
	artworks := make([]domain.SearchedArtwork, 0)
	for _, raw := range arrayAt(section, "data") {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		artwork, ok, err := parseSearchedArtwork(item, idx)
		if err != nil {
			r.report(wrap(KindInvalidSearchContent, err, item))
			continue
		}
		if ok {
			artworks = append(artworks, artwork)
		}
	}
	return artworks
}

func parseSearchedArtwork(node map[string]any, idx *CatalogIndex) (domain.SearchedArtwork, bool, error) {
	artworkID, err := getInt(node, "id")
	if err != nil {
		return domain.SearchedArtwork{}, false, err
	}
	isOnView, err := getBool(node, "is_on_view")
	if err != nil {
		return domain.SearchedArtwork{}, false, err
	}

	if object, ok := idx.Object(artworkID); ok {
		return domain.SearchedArtwork{
			ArtworkID:     artworkID,
			AudioObject:   &object,
			Title:         object.Title,
			ThumbnailURL:  object.ThumbnailURL,
			ImageURL:      object.ImageURL,
			ArtistDisplay: object.Tombstone,
			Location:      object.Location,
			Gallery:       object.Gallery,
		}, true, nil
	}
	if !isOnView {
		return domain.SearchedArtwork{}, false, nil
	}

	title, err := getString(node, "title", false)
	if err != nil {
		return domain.SearchedArtwork{}, false, err
	}
	artistDisplay, err := getString(node, "artist_display", false)
	if err != nil {
		return domain.SearchedArtwork{}, false, err
	}

	thumbnailURL := artworkPlaceholderImageURL
	imageURL := artworkPlaceholderImageURL
	if imageID, err := getString(node, "image_id", false); err == nil {
		iiif := idx.imageServerURL + "/" + imageID
		thumbnailURL = iiif + "/full/!200,200/0/default.jpg"
		imageURL = iiif + "/full/!800,800/0/default.jpg"
	}

	galleryID, err := getInt(node, "gallery_id")
	if err != nil {
		return domain.SearchedArtwork{}, false, err
	}
	gallery, err := idx.gallery(galleryID)
	if err != nil {
		return domain.SearchedArtwork{}, false, err
	}

	location := gallery.Location
	if coords, err := getCoords(node, "latlon"); err == nil {
		location = domain.Location{Coords: coords, Floor: gallery.Location.Floor}
	}

	return domain.SearchedArtwork{
		ArtworkID:     artworkID,
		Title:         html.UnescapeString(title),
		ThumbnailURL:  thumbnailURL,
		ImageURL:      imageURL,
		ArtistDisplay: html.UnescapeString(artistDisplay),
		Location:      location,
		Gallery:       gallery,
	}, true, nil
}

// parseSearchedTours matches result ids against already-parsed tours; unknown
// ids are dropped. The first bad row stops the collection.
func (r *parseRun) parseSearchedTours(section map[string]any, idx *CatalogIndex) []domain.Tour {
	tours := make([]domain.Tour, 0)
	for _, raw := range arrayAt(section, "data") {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		tourID, err := getInt(item, "id")
		if err != nil {
			r.report(wrap(KindInvalidSearchTours, err, section))
			break
		}
		if tour, ok := idx.Tour(tourID); ok {
			tours = append(tours, tour)
		}
	}
	return tours
}

func (r *parseRun) parseSearchedExhibitions(section map[string]any, idx *CatalogIndex) []domain.Exhibition {
	exhibitions := make([]domain.Exhibition, 0)
	for _, raw := range arrayAt(section, "data") {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		exhibition, err := parseExhibition(item, idx)
		if err != nil {
			pe, ok := asParseError(err)
			if !ok {
				r.report(err)
				continue
			}
			r.report(&ParseError{Kind: KindInvalidSearchExhibitions, Msg: pe.Msg, Data: pe.Data, err: pe})
			continue
		}
		exhibitions = append(exhibitions, exhibition)
	}
	return exhibitions
}
