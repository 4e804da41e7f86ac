package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by read paths when no row matches.
var ErrNotFound = errors.New("catalog: not found")

// ParseProblem is one non-fatal parse failure: the error kind discriminator,
// its stable numeric code, a human-readable message, and a snippet of the
// offending raw data.
type ParseProblem struct {
	Kind    string
	Code    int
	Message string
	Data    string
}

// Diagnostics receives non-fatal parse-problem reports, one call per isolated
// failure. Implementations must tolerate high call rates on corrupt feeds.
type Diagnostics interface {
	Record(ctx context.Context, p ParseProblem)
}

// FeedClient fetches the raw CMS documents. Bytes are handed to the parser
// as-is.
type FeedClient interface {
	AppData(ctx context.Context) ([]byte, error)
	Exhibitions(ctx context.Context, url string) ([]byte, error)
	Events(ctx context.Context, url string) ([]byte, error)
}

// CatalogRepository persists parsed entities and serves localized reads.
type CatalogRepository interface {
	// Write paths
	UpsertGalleries(ctx context.Context, gs []Gallery) error
	UpsertObjects(ctx context.Context, os []Object) error
	UpsertAudioFiles(ctx context.Context, as []AudioFile) error
	UpsertTours(ctx context.Context, ts []Tour) error
	UpsertExhibitions(ctx context.Context, es []Exhibition) error
	UpsertEvents(ctx context.Context, es []Event) error
	LogParseProblem(ctx context.Context, p ParseProblem) error

	// Read paths
	GetTour(ctx context.Context, id int64, lang Language) (TourView, error)
	ListTours(ctx context.Context, lang Language, limit int) ([]TourView, error)
	GetObject(ctx context.Context, id int64) (ObjectView, error)
	ListGalleries(ctx context.Context, floor *int) ([]Gallery, error)
	ListExhibitions(ctx context.Context) ([]Exhibition, error)
	ListEvents(ctx context.Context) ([]Event, error)
}

// Cache is a TTL'd JSON cache plus a raw-bytes slot for the last good feed
// snapshot.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	SetBytes(ctx context.Context, key string, b []byte, ttlSec int) error
}

// TourView is a localized tour read model. Fields fall back to English when
// the requested language has no row.
type TourView struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"short_description"`
	LongDescription  string   `json:"long_description"`
	Duration         string   `json:"duration,omitempty"`
	Credits          string   `json:"credits"`
	ImageURL         string   `json:"image_url"`
	Floor            int      `json:"floor"`
	StopCount        int      `json:"stop_count"`
	Language         Language `json:"language"`
}

// ObjectView is the artwork read model.
type ObjectView struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Tombstone    string `json:"tombstone,omitempty"`
	Credits      string `json:"credits,omitempty"`
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Floor        int    `json:"floor"`
	GalleryTitle string `json:"gallery_title"`
}
