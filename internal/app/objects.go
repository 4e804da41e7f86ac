package app

import (
	"html"
	"strings"

	"aic_catalog/internal/domain"
)

// parseObjects walks the keyed artwork collection. An artwork's floor is never
// read from its own record: it resolves its gallery by name (open galleries
// only) and inherits the gallery's floor.
func (r *parseRun) parseObjects(node map[string]any) ([]domain.Object, error) {
	objects := make([]domain.Object, 0, len(node))
	for _, key := range sortedKeys(node) {
		item, ok := node[key].(map[string]any)
		if !ok {
			r.report(&ParseError{Kind: KindInvalidObject, Msg: "object entry is not an object", Data: snippet(node[key])})
			continue
		}
		o, err := r.parseObject(item)
		if err != nil {
			if _, ok := asParseError(err); !ok {
				return nil, err
			}
			r.report(wrap(KindInvalidObject, err, item))
			continue
		}
		objects = append(objects, o)
		r.idx.registerObject(o)
	}
	r.objects = objects
	return objects, nil
}

func (r *parseRun) parseObject(node map[string]any) (domain.Object, error) {
	id, err := getInt(node, "nid")
	if err != nil {
		return domain.Object{}, err
	}
	coords, err := getCoords(node, "location")
	if err != nil {
		return domain.Object{}, err
	}
	galleryName, err := getString(node, "gallery_location", false)
	if err != nil {
		return domain.Object{}, err
	}
	gallery, err := r.idx.galleryNamed(galleryName)
	if err != nil {
		return domain.Object{}, err
	}
	title, err := getString(node, "title", false)
	if err != nil {
		return domain.Object{}, err
	}

	var objectID *int64
	if v, err := getInt(node, "id"); err == nil {
		objectID = &v
	}
	var tombstone string
	if s, _ := getString(node, "artist_culture_place_delim", true); s != "" {
		tombstone = strings.ReplaceAll(s, "|", "\r")
	}
	credits, _ := getString(node, "credit_line", true)
	imageCopyright, _ := getString(node, "copyright_notice", true)

	// An override image serves both sizes; otherwise the CMS defaults must
	// both be present.
	var imageURL, thumbnailURL string
	if u, overrideErr := getURL(node, "image_url", false); overrideErr == nil {
		imageURL = u
		thumbnailURL = u
	} else {
		imageURL, err = getURL(node, "large_image_full_path", false)
		if err != nil {
			return domain.Object{}, err
		}
		thumbnailURL, err = getURL(node, "thumbnail_full_path", false)
		if err != nil {
			return domain.Object{}, err
		}
	}

	var thumbnailCrop, imageCrop *domain.Rect
	if rect, err := getRect(node, "thumbnail_crop_v2"); err == nil {
		thumbnailCrop = &rect
	}
	if rect, err := getRect(node, "large_image_crop_v2"); err == nil {
		imageCrop = &rect
	}

	commentaries := make([]domain.AudioCommentary, 0)
	for _, raw := range arrayAt(node, "audio_commentary") {
		block, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		c, err := r.parseAudioCommentary(block)
		if err != nil {
			if _, ok := asParseError(err); !ok {
				return domain.Object{}, err
			}
			r.report(err)
			continue
		}
		commentaries = append(commentaries, c)
	}

	return domain.Object{
		ID:                id,
		ObjectID:          objectID,
		ThumbnailURL:      thumbnailURL,
		ThumbnailCropRect: thumbnailCrop,
		ImageURL:          imageURL,
		ImageCropRect:     imageCrop,
		Title:             html.UnescapeString(title),
		AudioCommentaries: commentaries,
		Tombstone:         tombstone,
		Credits:           html.UnescapeString(credits),
		ImageCopyright:    html.UnescapeString(imageCopyright),
		Location:          domain.Location{Coords: coords, Floor: gallery.Location.Floor},
		Gallery:           gallery,
	}, nil
}

// parseAudioCommentary resolves the commentary's audio id against the files
// already registered this run.
func (r *parseRun) parseAudioCommentary(node map[string]any) (domain.AudioCommentary, error) {
	var selectorNumber *int64
	if v, err := getInt(node, "object_selector_number"); err == nil {
		selectorNumber = &v
	}
	audioID, err := getInt(node, "audio")
	if err != nil {
		return domain.AudioCommentary{}, wrap(KindInvalidAudioCommentary, err, node)
	}
	audioFile, err := r.idx.audioFile(audioID)
	if err != nil {
		return domain.AudioCommentary{}, wrap(KindInvalidAudioCommentary, err, node)
	}
	return domain.AudioCommentary{SelectorNumber: selectorNumber, AudioFile: audioFile}, nil
}
