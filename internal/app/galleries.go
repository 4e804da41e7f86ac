package app

import (
	"strings"

	"aic_catalog/internal/domain"
)

// parseGalleries walks the keyed gallery collection in stable key order. A
// failed entry is reported and skipped; surviving open galleries are
// registered for name and id lookups by later sections.
func (r *parseRun) parseGalleries(node map[string]any) ([]domain.Gallery, error) {
	galleries := make([]domain.Gallery, 0, len(node))
	for _, key := range sortedKeys(node) {
		item, ok := node[key].(map[string]any)
		if !ok {
			r.report(&ParseError{Kind: KindGalleryNotFound, Msg: "gallery entry is not an object", Data: snippet(node[key])})
			continue
		}
		g, err := parseGallery(item)
		if err != nil {
			if _, ok := asParseError(err); !ok {
				return nil, err
			}
			r.report(wrap(KindGalleryNotFound, err, item))
			continue
		}
		galleries = append(galleries, g)
		r.idx.registerGallery(g)
	}
	r.galleries = galleries
	return galleries, nil
}

func parseGallery(node map[string]any) (domain.Gallery, error) {
	id, err := getInt(node, "nid")
	if err != nil {
		return domain.Gallery{}, err
	}
	title, err := getString(node, "title", false)
	if err != nil {
		return domain.Gallery{}, err
	}
	galleryID, err := getInt(node, "gallery_id")
	if err != nil {
		return domain.Gallery{}, err
	}
	displayTitle := strings.ReplaceAll(title, "Gallery ", "")
	displayTitle = strings.ReplaceAll(displayTitle, "Galleries ", "")

	closed, err := getBool(node, "closed")
	if err != nil {
		return domain.Gallery{}, err
	}
	coords, err := getCoords(node, "location")
	if err != nil {
		return domain.Gallery{}, err
	}

	// The lower level comes through as "LL" rather than a number.
	var floor int64
	if s, _ := getString(node, "floor", true); s == "LL" {
		floor = 0
	} else {
		floor, err = getInt(node, "floor")
		if err != nil {
			return domain.Gallery{}, err
		}
	}

	return domain.Gallery{
		ID:           id,
		GalleryID:    galleryID,
		Title:        title,
		DisplayTitle: displayTitle,
		Location:     domain.Location{Coords: coords, Floor: int(floor)},
		Closed:       closed,
	}, nil
}
