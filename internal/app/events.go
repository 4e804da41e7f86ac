package app

import (
	"context"
	"encoding/json"
	"fmt"
	"html"

	"aic_catalog/internal/domain"
)

// ParseEvents parses the data API's events document. Same shape contract as
// exhibitions: object root with a "data" array, per-item degradation.
func (p *Parser) ParseEvents(ctx context.Context, data []byte) ([]domain.Event, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("events: malformed root document: %w", err)
	}
	run := p.newRun(ctx)

	events := make([]domain.Event, 0)
	for _, raw := range arrayAt(root, "data") {
		item, ok := raw.(map[string]any)
		if !ok {
			run.report(&ParseError{Kind: KindInvalidEvent, Msg: "event entry is not an object", Data: snippet(raw)})
			continue
		}
		event, err := parseEvent(item)
		if err != nil {
			if _, ok := asParseError(err); !ok {
				return nil, err
			}
			run.report(err)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func parseEvent(node map[string]any) (domain.Event, error) {
	id, err := getString(node, "id", false)
	if err != nil {
		return domain.Event{}, wrap(KindInvalidEvent, err, node)
	}
	title, err := getString(node, "title", false)
	if err != nil {
		return domain.Event{}, wrap(KindInvalidEvent, err, node)
	}
	longDescription, err := getString(node, "description", false)
	if err != nil {
		return domain.Event{}, wrap(KindInvalidEvent, err, node)
	}
	shortDescription, _ := getString(node, "short_description", true)
	imageURL, err := getURL(node, "image_url", false)
	if err != nil {
		return domain.Event{}, wrap(KindInvalidEvent, err, node)
	}
	eventURL, _ := getURL(node, "button_url", true)
	buttonText, _ := getString(node, "button_text", true)
	locationText, _ := getString(node, "location", true)

	startString, err := getString(node, "start_at", false)
	if err != nil {
		return domain.Event{}, wrap(KindInvalidEvent, err, node)
	}
	endString, err := getString(node, "end_at", false)
	if err != nil {
		return domain.Event{}, wrap(KindInvalidEvent, err, node)
	}
	startDate, err := parseFeedDate(startString)
	if err != nil {
		return domain.Event{}, wrap(KindInvalidEvent, err, node)
	}
	endDate, err := parseFeedDate(endString)
	if err != nil {
		return domain.Event{}, wrap(KindInvalidEvent, err, node)
	}

	return domain.Event{
		ID:               id,
		Title:            html.UnescapeString(title),
		ShortDescription: html.UnescapeString(shortDescription),
		LongDescription:  html.UnescapeString(longDescription),
		ImageURL:         imageURL,
		LocationText:     locationText,
		StartDate:        startDate,
		EndDate:          endDate,
		EventURL:         eventURL,
		ButtonText:       buttonText,
	}, nil
}
