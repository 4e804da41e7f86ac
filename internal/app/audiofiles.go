package app

import (
	"html"

	"aic_catalog/internal/domain"
)

// parseAudioFiles walks the keyed audio file collection. Survivors register
// for id lookups by audio commentaries and tour stops.
func (r *parseRun) parseAudioFiles(node map[string]any) ([]domain.AudioFile, error) {
	audioFiles := make([]domain.AudioFile, 0, len(node))
	for _, key := range sortedKeys(node) {
		item, ok := node[key].(map[string]any)
		if !ok {
			r.report(&ParseError{Kind: KindInvalidAudioFile, Msg: "audio file entry is not an object", Data: snippet(node[key])})
			continue
		}
		a, err := r.parseAudioFile(item)
		if err != nil {
			if _, ok := asParseError(err); !ok {
				return nil, err
			}
			r.report(wrap(KindInvalidAudioFile, err, item))
			continue
		}
		audioFiles = append(audioFiles, a)
		r.idx.registerAudioFile(a)
	}
	return audioFiles, nil
}

// parseAudioFile applies the layered track-title default: the canonical block
// falls back to the file's own title, and each alternate falls back to the
// canonical track title.
func (r *parseRun) parseAudioFile(node map[string]any) (domain.AudioFile, error) {
	id, err := getInt(node, "nid")
	if err != nil {
		return domain.AudioFile{}, err
	}
	title, err := getString(node, "title", false)
	if err != nil {
		return domain.AudioFile{}, err
	}

	canonical, err := parseAudioBlock(node)
	if err != nil {
		return domain.AudioFile{}, err
	}
	canonical.TrackTitle = fallback(canonical.TrackTitle, title)

	translations := map[domain.Language]domain.AudioFileTranslation{
		domain.English: canonical,
	}
	for _, raw := range arrayAt(node, "translations") {
		block, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		lang, err := languageFor(block)
		if err != nil {
			r.report(wrap(KindInvalidAudioFile, err, node))
			continue
		}
		tr, err := parseAudioBlock(block)
		if err != nil {
			if _, ok := asParseError(err); !ok {
				return domain.AudioFile{}, err
			}
			r.report(err)
			continue
		}
		tr.TrackTitle = fallback(tr.TrackTitle, canonical.TrackTitle)
		translations[lang] = tr
	}

	return domain.AudioFile{ID: id, Translations: translations}, nil
}

func parseAudioBlock(node map[string]any) (domain.AudioFileTranslation, error) {
	u, err := getURL(node, "audio_file_url", false)
	if err != nil {
		return domain.AudioFileTranslation{}, wrap(KindInvalidTranslation, err, node)
	}
	transcript, _ := getString(node, "audio_transcript", true)
	trackTitle, _ := getString(node, "track_title", true)

	return domain.AudioFileTranslation{
		TrackTitle: html.UnescapeString(trackTitle),
		URL:        u,
		Transcript: html.UnescapeString(transcript),
	}, nil
}
