package app

import "aic_catalog/internal/domain"

// parseMessages walks the keyed in-app message collection; the key is the
// message's id.
func (r *parseRun) parseMessages(node map[string]any) ([]domain.Message, error) {
	messages := make([]domain.Message, 0, len(node))
	for _, key := range sortedKeys(node) {
		item, ok := node[key].(map[string]any)
		if !ok {
			r.report(&ParseError{Kind: KindInvalidMessage, Msg: "message entry is not an object", Data: snippet(node[key])})
			continue
		}
		m, err := r.parseMessage(item, key)
		if err != nil {
			if _, ok := asParseError(err); !ok {
				return nil, err
			}
			r.report(wrap(KindInvalidMessage, err, item))
			continue
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (r *parseRun) parseMessage(node map[string]any, id string) (domain.Message, error) {
	typeString, err := getString(node, "message_type", false)
	if err != nil {
		return domain.Message{}, err
	}

	kind := domain.MessageKind(typeString)
	persistent, err := getBool(node, "persistent")
	if err != nil {
		return domain.Message{}, err
	}

	var tourID string
	var expirationThreshold int64
	switch kind {
	case domain.MessageLaunch:
	case domain.MessageTourExit:
		tourID, err = getString(node, "tour_exit", false)
		if err != nil {
			return domain.Message{}, err
		}
	case domain.MessageMemberExpiration:
		expirationThreshold, err = getInt(node, "expiration_threshold")
		if err != nil {
			return domain.Message{}, err
		}
	default:
		return domain.Message{}, errUnrecognizedTag("message_type", typeString)
	}

	translations, err := mergeTranslations(node, parseMessageBlock, func(err error) {
		if pe, ok := asParseError(err); ok && pe.Kind == KindLanguageNotFound {
			r.report(pe)
			return
		}
		r.report(wrap(KindInvalidTranslation, err, node))
	})
	if err != nil {
		return domain.Message{}, err
	}

	title, err := getString(node, "title", false)
	if err != nil {
		return domain.Message{}, err
	}
	message, err := getString(node, "message", false)
	if err != nil {
		return domain.Message{}, err
	}
	action, _ := getString(node, "action", true)
	actionButtonTitle, _ := getString(node, "action_title", true)

	return domain.Message{
		ID:                  id,
		Kind:                kind,
		Persistent:          persistent,
		TourID:              tourID,
		ExpirationThreshold: expirationThreshold,
		Title:               title,
		Message:             message,
		Action:              action,
		ActionButtonTitle:   actionButtonTitle,
		Translations:        translations,
	}, nil
}

func parseMessageBlock(node map[string]any) (domain.MessageTranslation, error) {
	title, err := getString(node, "title", false)
	if err != nil {
		return domain.MessageTranslation{}, err
	}
	message, err := getString(node, "message", false)
	if err != nil {
		return domain.MessageTranslation{}, err
	}
	actionButtonTitle, _ := getString(node, "action_title", true)

	return domain.MessageTranslation{
		Title:             title,
		Message:           message,
		ActionButtonTitle: actionButtonTitle,
	}, nil
}
