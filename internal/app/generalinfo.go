package app

import (
	"html"

	"aic_catalog/internal/domain"
)

// parseGeneralInfo builds the museum-wide localized copy. Every field is
// optional, so a block degrades to empty strings rather than failing; a
// canonical failure still downgrades the whole section to an empty
// translation set.
func (r *parseRun) parseGeneralInfo(node map[string]any) (domain.GeneralInfo, error) {
	translations, err := mergeTranslations(node, parseGeneralInfoBlock, r.report)
	if err != nil {
		pe, ok := asParseError(err)
		if !ok {
			return domain.GeneralInfo{}, err
		}
		r.report(&ParseError{Kind: KindGeneralInfoNotFound, Msg: pe.Msg, Data: snippet(node), err: pe})
		return domain.GeneralInfo{Translations: map[domain.Language]domain.GeneralInfoTranslation{}}, nil
	}
	return domain.GeneralInfo{Translations: translations}, nil
}

func parseGeneralInfoBlock(node map[string]any) (domain.GeneralInfoTranslation, error) {
	opt := func(key string) string {
		s, _ := getString(node, key, true)
		return html.UnescapeString(s)
	}
	// The tours intro is rendered verbatim, so its entities stay encoded.
	seeAllToursIntro, _ := getString(node, "see_all_tours_intro", true)

	return domain.GeneralInfoTranslation{
		MuseumHours:        opt("museum_hours"),
		HomeMemberPrompt:   opt("home_member_prompt_text"),
		SeeAllToursIntro:   seeAllToursIntro,
		AudioTitle:         opt("audio_title"),
		AudioSubtitle:      opt("audio_subtitle"),
		MapTitle:           opt("map_title"),
		MapSubtitle:        opt("map_subtitle"),
		InfoTitle:          opt("info_title"),
		InfoSubtitle:       opt("info_subtitle"),
		GiftShopsTitle:     opt("gift_shops_title"),
		GiftShopsText:      opt("gift_shops_text"),
		MembersLoungeTitle: opt("members_lounge_title"),
		MembersLoungeText:  opt("members_lounge_text"),
		RestroomsTitle:     opt("restrooms_title"),
		RestroomsText:      opt("restrooms_text"),
	}, nil
}
