package app

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"aic_catalog/internal/domain"
)

// Typed extraction over a decoded JSON node (map[string]any). Every accessor
// is a pure function of (node, key); numeric and bool reads fall back to
// parsing string-encoded values because the CMS emits both forms.

func getString(node map[string]any, key string, optional bool) (string, error) {
	s, ok := node[key].(string)
	if !ok {
		if optional {
			return "", nil
		}
		return "", errMissingKey(key)
	}
	return s, nil
}

func getBool(node map[string]any, key string) (bool, error) {
	if b, ok := node[key].(bool); ok {
		return b, nil
	}
	s, err := getString(node, key, false)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, errBadBoolString(s)
	}
	return b, nil
}

func getInt(node map[string]any, key string) (int64, error) {
	switch v := node[key].(type) {
	case float64:
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	}
	s, err := getString(node, key, false)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errBadIntString(s)
	}
	return n, nil
}

func getFloat(node map[string]any, key string) (float64, error) {
	if f, ok := node[key].(float64); ok {
		return f, nil
	}
	s, err := getString(node, key, false)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errBadFloatString(s)
	}
	return f, nil
}

// getURL returns a syntactically valid absolute URL string. In optional mode
// both a missing key and an invalid string yield "" with no error.
func getURL(node map[string]any, key string, optional bool) (string, error) {
	s, ok := node[key].(string)
	if !ok {
		if optional {
			return "", nil
		}
		return "", errBadURLString("null")
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		if optional {
			return "", nil
		}
		return "", errBadURLString(s)
	}
	return s, nil
}

// getCoords parses a "lat,long" string: whitespace stripped, split on comma,
// exactly two numeric components.
func getCoords(node map[string]any, key string) (domain.Coords, error) {
	s, err := getString(node, key, false)
	if err != nil {
		return domain.Coords{}, err
	}
	parts := strings.Split(strings.ReplaceAll(s, " ", ""), ",")
	if len(parts) == 2 {
		lat, latErr := strconv.ParseFloat(parts[0], 64)
		lon, lonErr := strconv.ParseFloat(parts[1], 64)
		if latErr == nil && lonErr == nil {
			return domain.Coords{Lat: lat, Lon: lon}, nil
		}
	}
	return domain.Coords{}, errBadCoordinateString(s)
}

// getPoint parses an "x,y" pixel-space string with the same shape contract as
// getCoords.
func getPoint(node map[string]any, key string) (domain.Point, error) {
	s, err := getString(node, key, false)
	if err != nil {
		return domain.Point{}, err
	}
	parts := strings.Split(strings.ReplaceAll(s, " ", ""), ",")
	if len(parts) == 2 {
		x, xErr := strconv.ParseFloat(parts[0], 64)
		y, yErr := strconv.ParseFloat(parts[1], 64)
		if xErr == nil && yErr == nil {
			return domain.Point{X: x, Y: y}, nil
		}
	}
	return domain.Point{}, errBadPointString(s)
}

// getRect requires a sub-object with numeric x, y, width, height fields.
func getRect(node map[string]any, key string) (domain.Rect, error) {
	sub, ok := node[key].(map[string]any)
	if !ok {
		return domain.Rect{}, errMissingKey(key)
	}
	x, err := rectField(sub, "x")
	if err != nil {
		return domain.Rect{}, err
	}
	y, err := rectField(sub, "y")
	if err != nil {
		return domain.Rect{}, err
	}
	w, err := rectField(sub, "width")
	if err != nil {
		return domain.Rect{}, err
	}
	h, err := rectField(sub, "height")
	if err != nil {
		return domain.Rect{}, err
	}
	return domain.Rect{X: x, Y: y, Width: w, Height: h}, nil
}

func rectField(sub map[string]any, name string) (float64, error) {
	switch v := sub[name].(type) {
	case float64:
		return v, nil
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, nil
		}
		return 0, errBadFloatString(v)
	}
	return 0, errMissingKey(name)
}

// getIntArray requires an array whose elements are native integers or numeric
// strings.
func getIntArray(node map[string]any, key string) ([]int64, error) {
	arr, ok := node[key].([]any)
	if !ok {
		return nil, errMissingKey(key)
	}
	out := make([]int64, 0, len(arr))
	for _, el := range arr {
		switch v := el.(type) {
		case float64:
			out = append(out, int64(v))
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return nil, errBadIntString(v)
			}
			out = append(out, n)
		default:
			return nil, errMissingKey(key)
		}
	}
	return out, nil
}

// objectAt returns the object under key, or an empty node when absent or of
// the wrong shape.
func objectAt(node map[string]any, key string) map[string]any {
	if m, ok := node[key].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// arrayAt returns the array under key, or nil when absent.
func arrayAt(node map[string]any, key string) []any {
	if a, ok := node[key].([]any); ok {
		return a
	}
	return nil
}

// sortedKeys fixes the iteration order over raw JSON objects so two parses of
// the same document build the same model.
func sortedKeys(node map[string]any) []string {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
