package app

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind identifies a parse-failure kind. The numeric values are stable codes
// recorded with every diagnostic report; do not renumber.
type Kind int

const (
	KindParseFailure            Kind = 1001
	KindMissingKey              Kind = 1002
	KindBadURLString            Kind = 1003
	KindBadBoolString           Kind = 1004
	KindBadFloatString          Kind = 1005
	KindBadIntString            Kind = 1006
	KindBadCoordinateString     Kind = 1007
	KindBadPointString          Kind = 1008
	KindInvalidDateFormat       Kind = 1009
	KindObjectNotFound          Kind = 1010
	KindInvalidObject           Kind = 1011
	KindGalleryNameNotFound     Kind = 1013
	KindGalleryIDNotFound       Kind = 1014
	KindGalleryNotFound         Kind = 1015
	KindTourStopsNotFound       Kind = 1016
	KindLanguageNotFound        Kind = 1018
	KindAudioFileNotFound       Kind = 1019
	KindInvalidAudioFile        Kind = 1021
	KindInvalidTranslation      Kind = 1023
	KindGeneralInfoNotFound     Kind = 1024
	KindInvalidAudioCommentary  Kind = 1025
	KindInvalidTourCategory     Kind = 1026
	KindInvalidTour             Kind = 1027
	KindInvalidMapAnnotation    Kind = 1028
	KindInvalidMapFloor         Kind = 1029
	KindInvalidDataSetting      Kind = 1030
	KindInvalidExhibition       Kind = 1031
	KindInvalidEvent            Kind = 1032
	KindInvalidSearchArtworks   Kind = 1033
	KindInvalidAutocomplete     Kind = 1034
	KindInvalidSearchContent    Kind = 1035
	KindInvalidSearchTours      Kind = 1036
	KindInvalidSearchExhibitions Kind = 1037
	KindInvalidMessage          Kind = 1038
	KindNoValidTourStops        Kind = 1039
	KindUnrecognizedTag         Kind = 1040
)

var kindNames = map[Kind]string{
	KindParseFailure:             "parse_failure",
	KindMissingKey:               "missing_key",
	KindBadURLString:             "bad_url_string",
	KindBadBoolString:            "bad_bool_string",
	KindBadFloatString:           "bad_float_string",
	KindBadIntString:             "bad_int_string",
	KindBadCoordinateString:      "bad_coordinate_string",
	KindBadPointString:           "bad_point_string",
	KindInvalidDateFormat:        "invalid_date_format",
	KindObjectNotFound:           "object_not_found",
	KindInvalidObject:            "invalid_object",
	KindGalleryNameNotFound:      "gallery_name_not_found",
	KindGalleryIDNotFound:        "gallery_id_not_found",
	KindGalleryNotFound:          "gallery_not_found",
	KindTourStopsNotFound:        "tour_stops_not_found",
	KindLanguageNotFound:         "language_not_found",
	KindAudioFileNotFound:        "audio_file_not_found",
	KindInvalidAudioFile:         "invalid_audio_file",
	KindInvalidTranslation:       "invalid_translation",
	KindGeneralInfoNotFound:      "general_info_not_found",
	KindInvalidAudioCommentary:   "invalid_audio_commentary",
	KindInvalidTourCategory:      "invalid_tour_category",
	KindInvalidTour:              "invalid_tour",
	KindInvalidMapAnnotation:     "invalid_map_annotation",
	KindInvalidMapFloor:          "invalid_map_floor",
	KindInvalidDataSetting:       "invalid_data_setting",
	KindInvalidExhibition:        "invalid_exhibition",
	KindInvalidEvent:             "invalid_event",
	KindInvalidSearchArtworks:    "invalid_search_artworks",
	KindInvalidAutocomplete:      "invalid_search_autocomplete",
	KindInvalidSearchContent:     "invalid_search_content",
	KindInvalidSearchTours:       "invalid_search_tours",
	KindInvalidSearchExhibitions: "invalid_search_exhibitions",
	KindInvalidMessage:           "invalid_message",
	KindNoValidTourStops:         "no_valid_tour_stops",
	KindUnrecognizedTag:          "unrecognized_tag",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind_%d", int(k))
}

// Code returns the stable numeric code reported to the diagnostics sink.
func (k Kind) Code() int { return int(k) }

// ParseError is a recognized parse failure. Leaf errors carry only Kind and
// Msg; composite (entity-level) errors additionally carry a snippet of the
// offending raw data and wrap the underlying leaf.
type ParseError struct {
	Kind Kind
	Msg  string
	Data string
	err  error
}

func (e *ParseError) Error() string {
	if e.Data != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Msg, e.Data)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.err }

// ---- leaf errors ----

func errMissingKey(key string) *ParseError {
	return &ParseError{Kind: KindMissingKey, Msg: fmt.Sprintf("the key %q does not exist", key)}
}

func errBadURLString(s string) *ParseError {
	return &ParseError{Kind: KindBadURLString, Msg: fmt.Sprintf("could not create URL from string %q", s)}
}

func errBadBoolString(s string) *ParseError {
	return &ParseError{Kind: KindBadBoolString, Msg: fmt.Sprintf("could not cast string %q to bool", s)}
}

func errBadFloatString(s string) *ParseError {
	return &ParseError{Kind: KindBadFloatString, Msg: fmt.Sprintf("could not cast string %q to float", s)}
}

func errBadIntString(s string) *ParseError {
	return &ParseError{Kind: KindBadIntString, Msg: fmt.Sprintf("could not cast string %q to int", s)}
}

func errBadCoordinateString(s string) *ParseError {
	return &ParseError{Kind: KindBadCoordinateString, Msg: fmt.Sprintf("could not create coordinate from string %q", s)}
}

func errBadPointString(s string) *ParseError {
	return &ParseError{Kind: KindBadPointString, Msg: fmt.Sprintf("could not create point from string %q", s)}
}

func errInvalidDateFormat(s string) *ParseError {
	return &ParseError{Kind: KindInvalidDateFormat, Msg: fmt.Sprintf("could not create date from string %q", s)}
}

func errObjectNotFound(id int64) *ParseError {
	return &ParseError{Kind: KindObjectNotFound, Msg: fmt.Sprintf("could not find object with id %d", id)}
}

func errAudioFileNotFound(id int64) *ParseError {
	return &ParseError{Kind: KindAudioFileNotFound, Msg: fmt.Sprintf("could not find audio file for id %d", id)}
}

func errGalleryNameNotFound(name string) *ParseError {
	return &ParseError{Kind: KindGalleryNameNotFound, Msg: fmt.Sprintf("could not find gallery with name %q", name)}
}

func errGalleryIDNotFound(id int64) *ParseError {
	return &ParseError{Kind: KindGalleryIDNotFound, Msg: fmt.Sprintf("could not find gallery with id %d", id)}
}

func errLanguageNotFound(data string) *ParseError {
	return &ParseError{Kind: KindLanguageNotFound, Msg: `could not parse language with key "language"`, Data: data}
}

func errTourStopsNotFound(tourID int64) *ParseError {
	return &ParseError{Kind: KindTourStopsNotFound, Msg: fmt.Sprintf("could not find stops in tour with id %d", tourID)}
}

func errNoValidTourStops() *ParseError {
	return &ParseError{Kind: KindNoValidTourStops, Msg: "could not parse stops data"}
}

func errUnrecognizedTag(key, value string) *ParseError {
	return &ParseError{Kind: KindUnrecognizedTag, Msg: fmt.Sprintf("unrecognized %s tag %q", key, value)}
}

// asParseError unwraps err to the taxonomy type when it is one.
func asParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	ok := errors.As(err, &pe)
	return pe, ok
}

// wrap converts a recognized ParseError raised while parsing one entity into
// that entity's composite kind, attaching a snippet of the raw node. Any
// other error passes through unchanged so it aborts the whole parse.
func wrap(kind Kind, err error, node any) error {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return err
	}
	if pe.Kind == kind {
		return pe
	}
	return &ParseError{Kind: kind, Msg: pe.Msg, Data: snippet(node), err: pe}
}

// maxSnippet bounds the raw data echoed into diagnostics.
const maxSnippet = 512

func snippet(node any) string {
	b, err := json.Marshal(node)
	if err != nil {
		return fmt.Sprintf("%v", node)
	}
	if len(b) > maxSnippet {
		b = b[:maxSnippet]
	}
	return string(b)
}
