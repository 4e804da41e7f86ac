package domain

import "time"

// Exhibition is parsed from the data API's exhibitions document. Gallery
// linkage is soft: an unresolvable gallery id leaves GalleryID/Location nil.
type Exhibition struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	ShortDescription string     `json:"short_description"`
	ImageURL         string     `json:"image_url,omitempty"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          time.Time  `json:"end_date"`
	GalleryID        *int64     `json:"gallery_id,omitempty"`
	Location         *Location  `json:"location,omitempty"`
}

// Event is parsed from the data API's events document.
type Event struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	ShortDescription string    `json:"short_description"`
	LongDescription  string    `json:"long_description"`
	ImageURL         string    `json:"image_url"`
	LocationText     string    `json:"location_text,omitempty"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	EventURL         string    `json:"event_url,omitempty"`
	ButtonText       string    `json:"button_text,omitempty"`
}

// MessageKind is the closed message discriminator; unrecognized tags fail the
// message.
type MessageKind string

const (
	MessageLaunch           MessageKind = "launch"
	MessageTourExit         MessageKind = "tour_exit"
	MessageMemberExpiration MessageKind = "member_expiration"
)

// MessageTranslation is the per-language payload of an in-app message.
type MessageTranslation struct {
	Title             string `json:"title"`
	Message           string `json:"message"`
	ActionButtonTitle string `json:"action_button_title,omitempty"`
}

// Message is an in-app message keyed by the feed's native string id. The
// kind-specific fields are only meaningful for their kind: TourID for
// tour_exit, ExpirationThreshold for member_expiration.
type Message struct {
	ID                  string                            `json:"id"`
	Kind                MessageKind                       `json:"kind"`
	Persistent          bool                              `json:"persistent"`
	TourID              string                            `json:"tour_id,omitempty"`
	ExpirationThreshold int64                             `json:"expiration_threshold,omitempty"`
	Title               string                            `json:"title"`
	Message             string                            `json:"message"`
	Action              string                            `json:"action,omitempty"`
	ActionButtonTitle   string                            `json:"action_button_title,omitempty"`
	Translations        map[Language]MessageTranslation `json:"translations"`
}

// SearchedArtwork is one artwork row of the positional search-content
// document. AudioObject is set when the artwork also exists in the mobile CMS.
type SearchedArtwork struct {
	ArtworkID     int64    `json:"artwork_id"`
	AudioObject   *Object  `json:"audio_object,omitempty"`
	Title         string   `json:"title"`
	ThumbnailURL  string   `json:"thumbnail_url"`
	ImageURL      string   `json:"image_url"`
	ArtistDisplay string   `json:"artist_display"`
	Location      Location `json:"location"`
	Gallery       Gallery  `json:"gallery"`
}

// SearchContent is the parsed 3-element positional search-results document.
type SearchContent struct {
	Artworks    []SearchedArtwork `json:"artworks"`
	Tours       []Tour            `json:"tours"`
	Exhibitions []Exhibition      `json:"exhibitions"`
}
