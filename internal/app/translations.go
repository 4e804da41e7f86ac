package app

import (
	"strings"

	"golang.org/x/text/language"

	"aic_catalog/internal/domain"
)

// languageFor detects a translation block's language from its "language" tag.
// The tag is matched by base subtag first ("zh-Hans" → zh), then by raw
// prefix; anything unmatched falls back to the canonical language. A missing
// tag is a languageNotFound failure.
func languageFor(node map[string]any) (domain.Language, error) {
	s, err := getString(node, "language", false)
	if err != nil {
		return domain.English, errLanguageNotFound(snippet(node))
	}
	if tag, err := language.Parse(s); err == nil {
		base, conf := tag.Base()
		if conf != language.No {
			for _, l := range domain.Languages {
				if base.String() == string(l) {
					return l, nil
				}
			}
		}
	}
	for _, l := range domain.Languages {
		if strings.HasPrefix(s, string(l)) {
			return l, nil
		}
	}
	return domain.English, nil
}

// mergeTranslations builds an entity's translation set. The canonical block
// is parsed from the entity's own root node; each element of the
// "translations" array (absent means empty) is parsed independently, with a
// failed alternate handed to report and skipped. A canonical failure is
// returned and fails the entity.
func mergeTranslations[T any](node map[string]any, parseBlock func(map[string]any) (T, error), report func(err error)) (map[domain.Language]T, error) {
	canonical, err := parseBlock(node)
	if err != nil {
		return nil, err
	}
	out := map[domain.Language]T{domain.English: canonical}
	for _, raw := range arrayAt(node, "translations") {
		block, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		lang, err := languageFor(block)
		if err != nil {
			report(err)
			continue
		}
		tr, err := parseBlock(block)
		if err != nil {
			report(err)
			continue
		}
		out[lang] = tr
	}
	return out, nil
}

// fallback substitutes the canonical value for a localized field that
// resolved empty in an alternate block.
func fallback(value, canonical string) string {
	if value == "" {
		return canonical
	}
	return value
}
