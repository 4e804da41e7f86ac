package app

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aic_catalog/internal/domain"
)

func node(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestGetString(t *testing.T) {
	n := node(t, `{"a":"x","b":7}`)

	s, err := getString(n, "a", false)
	require.NoError(t, err)
	assert.Equal(t, "x", s)

	// non-string value is treated as absent
	_, err = getString(n, "b", false)
	require.Error(t, err)
	pe, ok := asParseError(err)
	require.True(t, ok)
	assert.Equal(t, KindMissingKey, pe.Kind)

	s, err = getString(n, "b", true)
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestGetBool_StringCoercion(t *testing.T) {
	n := node(t, `{"native":true,"str":"true","zero":"0","bad":"yep","num":1}`)

	for key, want := range map[string]bool{"native": true, "str": true, "zero": false} {
		got, err := getBool(n, key)
		require.NoError(t, err, key)
		assert.Equal(t, want, got, key)
	}

	_, err := getBool(n, "bad")
	pe, ok := asParseError(err)
	require.True(t, ok)
	assert.Equal(t, KindBadBoolString, pe.Kind)

	// a JSON number is neither bool nor string
	_, err = getBool(n, "num")
	pe, ok = asParseError(err)
	require.True(t, ok)
	assert.Equal(t, KindMissingKey, pe.Kind)
}

func TestGetInt_StringCoercion(t *testing.T) {
	n := node(t, `{"native":42,"str":"42","padded":" 7 ","bad":"4x"}`)

	for key, want := range map[string]int64{"native": 42, "str": 42, "padded": 7} {
		got, err := getInt(n, key)
		require.NoError(t, err, key)
		assert.Equal(t, want, got, key)
	}

	_, err := getInt(n, "bad")
	pe, ok := asParseError(err)
	require.True(t, ok)
	assert.Equal(t, KindBadIntString, pe.Kind)
}

func TestGetFloat_StringCoercion(t *testing.T) {
	n := node(t, `{"native":1.5,"str":"1.5","bad":"one"}`)

	f, err := getFloat(n, "native")
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	f, err = getFloat(n, "str")
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	_, err = getFloat(n, "bad")
	pe, ok := asParseError(err)
	require.True(t, ok)
	assert.Equal(t, KindBadFloatString, pe.Kind)
}

func TestGetURL(t *testing.T) {
	n := node(t, `{"good":"https://example.org/a.mp3","relative":"/a.mp3","empty":""}`)

	u, err := getURL(n, "good", false)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/a.mp3", u)

	// required mode rejects schemeless and missing values
	for _, key := range []string{"relative", "empty", "absent"} {
		_, err := getURL(n, key, false)
		pe, ok := asParseError(err)
		require.True(t, ok, key)
		assert.Equal(t, KindBadURLString, pe.Kind, key)
	}

	// optional mode degrades all of them to ""
	for _, key := range []string{"relative", "empty", "absent"} {
		u, err := getURL(n, key, true)
		require.NoError(t, err, key)
		assert.Equal(t, "", u, key)
	}
}

func TestGetCoords(t *testing.T) {
	n := node(t, `{"good":"41.8796, -87.6237","bad":"41.8","worse":"a,b"}`)

	c, err := getCoords(n, "good")
	require.NoError(t, err)
	assert.Equal(t, domain.Coords{Lat: 41.8796, Lon: -87.6237}, c)

	for _, key := range []string{"bad", "worse"} {
		_, err := getCoords(n, key)
		pe, ok := asParseError(err)
		require.True(t, ok, key)
		assert.Equal(t, KindBadCoordinateString, pe.Kind, key)
	}
}

func TestGetPoint(t *testing.T) {
	n := node(t, `{"good":"120.5,340","bad":"120"}`)

	p, err := getPoint(n, "good")
	require.NoError(t, err)
	assert.Equal(t, domain.Point{X: 120.5, Y: 340}, p)

	_, err = getPoint(n, "bad")
	pe, ok := asParseError(err)
	require.True(t, ok)
	assert.Equal(t, KindBadPointString, pe.Kind)
}

func TestGetRect(t *testing.T) {
	n := node(t, `{
		"good":{"x":1,"y":2,"width":"30","height":40},
		"short":{"x":1,"y":2,"width":30}
	}`)

	r, err := getRect(n, "good")
	require.NoError(t, err)
	assert.Equal(t, domain.Rect{X: 1, Y: 2, Width: 30, Height: 40}, r)

	_, err = getRect(n, "short")
	require.Error(t, err)

	_, err = getRect(n, "absent")
	pe, ok := asParseError(err)
	require.True(t, ok)
	assert.Equal(t, KindMissingKey, pe.Kind)
}

func TestGetIntArray(t *testing.T) {
	n := node(t, `{"mixed":[1,"2",3],"bad":[1,"x"],"notarray":"1,2"}`)

	ids, err := getIntArray(n, "mixed")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	_, err = getIntArray(n, "bad")
	pe, ok := asParseError(err)
	require.True(t, ok)
	assert.Equal(t, KindBadIntString, pe.Kind)

	_, err = getIntArray(n, "notarray")
	pe, ok = asParseError(err)
	require.True(t, ok)
	assert.Equal(t, KindMissingKey, pe.Kind)
}

func TestSortedKeysIsStable(t *testing.T) {
	n := node(t, `{"b":1,"a":1,"c":1,"10":1}`)
	assert.Equal(t, []string{"10", "a", "b", "c"}, sortedKeys(n))
}

func TestSnippetTruncates(t *testing.T) {
	big := map[string]any{"blob": strings.Repeat("x", 4*maxSnippet)}
	s := snippet(big)
	assert.Len(t, s, maxSnippet)
}

func TestWrapPassesForeignErrorsThrough(t *testing.T) {
	boom := assert.AnError
	assert.Equal(t, boom, wrap(KindInvalidObject, boom, nil))

	// a leaf is promoted to the composite kind with a data snippet
	err := wrap(KindInvalidObject, errMissingKey("nid"), map[string]any{"title": "x"})
	pe, ok := asParseError(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidObject, pe.Kind)
	assert.Contains(t, pe.Data, "title")

	// same-kind errors pass unchanged
	inner := &ParseError{Kind: KindInvalidObject, Msg: "m"}
	assert.Same(t, inner, wrap(KindInvalidObject, inner, nil).(*ParseError))
}
