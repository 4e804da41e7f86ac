package app

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aic_catalog/internal/domain"
)

// recorder captures every diagnostic report for assertions.
type recorder struct {
	problems []domain.ParseProblem
}

func (r *recorder) Record(_ context.Context, p domain.ParseProblem) {
	r.problems = append(r.problems, p)
}

func (r *recorder) count(kind Kind) int {
	n := 0
	for _, p := range r.problems {
		if p.Kind == kind.String() {
			n++
		}
	}
	return n
}

func newTestParser() (*Parser, *recorder) {
	rec := &recorder{}
	return NewParser(rec, zerolog.Nop(), false), rec
}

// feedDoc is a small but complete app-data document exercising the feed's
// quirks: string-encoded numbers, the "LL" floor, a closed gallery, a
// malformed entry per section, and the misspelled annotation key.
const feedDoc = `{
	"general_info": {
		"museum_hours": "Open daily 10–11",
		"translations": [
			{"language": "es", "museum_hours": "Abierto"}
		]
	},
	"galleries": {
		"1001": {"nid": "1001", "title": "Gallery 201", "gallery_id": "2147475902", "closed": "false", "location": "41.8796,-87.6237", "floor": "2"},
		"1002": {"nid": 1002, "title": "Galleries 50A", "gallery_id": 2, "closed": false, "location": "41.88,-87.62", "floor": "LL"},
		"1003": {"nid": 1003, "title": "Gallery 299", "gallery_id": 3, "closed": true, "location": "41.1,-87.1", "floor": 1},
		"bad": {"title": "no nid"}
	},
	"audio_files": {
		"2001": {
			"nid": 2001,
			"title": "Track Title From File",
			"audio_file_url": "https://example.org/a.mp3",
			"translations": [
				{"language": "es", "audio_file_url": "https://example.org/a_es.mp3"}
			]
		},
		"2002": {"nid": 2002, "title": "Bumper", "audio_file_url": "https://example.org/b.mp3"}
	},
	"objects": {
		"3001": {
			"nid": "3001",
			"id": 111628,
			"title": "A Sunday on La Grande Jatte",
			"location": "41.87,-87.62",
			"gallery_location": "Gallery 201",
			"large_image_full_path": "https://example.org/large.jpg",
			"thumbnail_full_path": "https://example.org/thumb.jpg",
			"artist_culture_place_delim": "Georges Seurat|1884",
			"audio_commentary": [
				{"audio": "2001", "object_selector_number": "42"}
			]
		},
		"3002": {
			"nid": 3002,
			"title": "Lower Level Piece",
			"location": "41.0,-87.0",
			"gallery_location": "Galleries 50A",
			"image_url": "https://example.org/override.jpg"
		},
		"3003": {
			"nid": 3003,
			"title": "In Closed Gallery",
			"location": "41.1,-87.1",
			"gallery_location": "Gallery 299",
			"image_url": "https://example.org/x.jpg"
		}
	},
	"tour_categories": {
		"cat1": {
			"category": "Highlights",
			"translations": [{"language": "es", "category": "Destacados"}]
		}
	},
	"tours": [
		{
			"nid": "4001",
			"title": "Essentials",
			"description": "Short.",
			"intro": "Intro.",
			"image_url": "https://example.org/t.jpg",
			"tour_audio": "2001",
			"weight": "10",
			"category": "Highlights",
			"location": "41.87,-87.62",
			"tour_stops": [
				{"sort": 2, "object": 3002, "audio_id": 2001},
				{"sort": 0, "object": "3001", "audio_id": "2001", "audio_bumper": "2002"},
				{"sort": 1, "object": 9999, "audio_id": 2001}
			]
		},
		{
			"nid": 4002,
			"title": "Empty",
			"description": "d",
			"intro": "i",
			"image_url": "https://example.org/t2.jpg",
			"tour_audio": 2001,
			"weight": 1,
			"location": "41.0,-87.0",
			"tour_stops": []
		}
	],
	"data": {
		"image_server_url": "https://iiif.example.org",
		"data_api_url": "https://api.example.org",
		"exhibitions_endpoint": "/exhibitions"
	},
	"search": {
		"search_strings": {"0": "seurat", "1": "monet"},
		"search_objects": [3001, "3002"]
	},
	"map_floors": {
		"map_floor0": {
			"floor_plan": "https://example.org/f0.png",
			"anchor_pixel_1": "0,0",
			"anchor_pixel_2": "1000,800",
			"anchor_location_1": "41.88,-87.62",
			"anchor_location_2": "41.87,-87.61"
		}
	},
	"map_annontations": {
		"5001": {"annotation_type": "Amenity", "amenity_type": "Dining", "nid": "5001", "location": "41.879,-87.623", "floor": "0", "label": "Cafe", "description": "Coffee and sandwiches"},
		"5002": {"annotation_type": "Text", "text_type": "Landmark", "location": "41.88,-87.62", "label": "Lakefront"},
		"5003": {"annotation_type": "Amenity", "amenity_type": "Spaceship", "nid": 5003, "location": "41.1,-87.1", "floor": 1},
		"5004": {"annotation_type": "Wormhole", "location": "41.1,-87.1"}
	},
	"messages": {
		"m1": {
			"message_type": "launch",
			"persistent": "true",
			"title": "Welcome",
			"message": "Hello",
			"translations": [{"language": "es", "title": "Hola", "message": "Buenos dias"}]
		},
		"m2": {"message_type": "weird", "persistent": false, "title": "x", "message": "y"}
	}
}`

func TestParseCatalog_MalformedRootIsTheOnlyHardFailure(t *testing.T) {
	p, rec := newTestParser()
	_, err := p.ParseCatalog(context.Background(), []byte(`{"galleries": `))
	require.Error(t, err)
	assert.Empty(t, rec.problems)
}

func TestParseCatalog_Galleries(t *testing.T) {
	p, rec := newTestParser()
	catalog, err := p.ParseCatalog(context.Background(), []byte(feedDoc))
	require.NoError(t, err)

	require.Len(t, catalog.Galleries, 3)
	byID := map[int64]domain.Gallery{}
	for _, g := range catalog.Galleries {
		byID[g.ID] = g
	}

	g := byID[1001]
	assert.Equal(t, int64(2147475902), g.GalleryID)
	assert.Equal(t, "Gallery 201", g.Title)
	assert.Equal(t, "201", g.DisplayTitle)
	assert.Equal(t, 2, g.Location.Floor)
	assert.Equal(t, domain.Coords{Lat: 41.8796, Lon: -87.6237}, g.Location.Coords)
	assert.False(t, g.Closed)

	// "LL" maps to floor 0, and the Galleries prefix strips too
	assert.Equal(t, 0, byID[1002].Location.Floor)
	assert.Equal(t, "50A", byID[1002].DisplayTitle)

	assert.True(t, byID[1003].Closed)
	assert.Equal(t, 1, rec.count(KindGalleryNotFound))
}

func TestParseCatalog_AudioFileTrackTitleLayering(t *testing.T) {
	p, _ := newTestParser()
	catalog, err := p.ParseCatalog(context.Background(), []byte(feedDoc))
	require.NoError(t, err)

	require.Len(t, catalog.AudioFiles, 2)
	var a domain.AudioFile
	for _, f := range catalog.AudioFiles {
		if f.ID == 2001 {
			a = f
		}
	}

	en, ok := a.Translations[domain.English]
	require.True(t, ok, "canonical entry must always exist")
	// no track_title in the feed: the file title fills in
	assert.Equal(t, "Track Title From File", en.TrackTitle)
	assert.Equal(t, "https://example.org/a.mp3", en.URL)

	es, ok := a.Translations[domain.Spanish]
	require.True(t, ok)
	assert.Equal(t, "https://example.org/a_es.mp3", es.URL)
	// the alternate inherits the canonical track title
	assert.Equal(t, "Track Title From File", es.TrackTitle)
}

func TestParseCatalog_Objects(t *testing.T) {
	p, rec := newTestParser()
	catalog, err := p.ParseCatalog(context.Background(), []byte(feedDoc))
	require.NoError(t, err)

	// the object in the closed gallery cannot resolve its gallery
	require.Len(t, catalog.Objects, 2)
	assert.Equal(t, 1, rec.count(KindInvalidObject))

	byID := map[int64]domain.Object{}
	for _, o := range catalog.Objects {
		byID[o.ID] = o
	}

	o := byID[3001]
	require.NotNil(t, o.ObjectID)
	assert.Equal(t, int64(111628), *o.ObjectID)
	// floor is inherited from the resolved gallery, never parsed directly
	assert.Equal(t, 2, o.Location.Floor)
	assert.Equal(t, "Gallery 201", o.Gallery.Title)
	assert.Equal(t, "Georges Seurat\r1884", o.Tombstone)
	assert.Equal(t, "https://example.org/large.jpg", o.ImageURL)
	assert.Equal(t, "https://example.org/thumb.jpg", o.ThumbnailURL)
	require.Len(t, o.AudioCommentaries, 1)
	require.NotNil(t, o.AudioCommentaries[0].SelectorNumber)
	assert.Equal(t, int64(42), *o.AudioCommentaries[0].SelectorNumber)
	assert.Equal(t, int64(2001), o.AudioCommentaries[0].AudioFile.ID)

	// the override image serves both sizes, floor comes from the LL gallery
	o2 := byID[3002]
	assert.Equal(t, "https://example.org/override.jpg", o2.ImageURL)
	assert.Equal(t, "https://example.org/override.jpg", o2.ThumbnailURL)
	assert.Equal(t, 0, o2.Location.Floor)
}

func TestParseCatalog_Tours(t *testing.T) {
	p, rec := newTestParser()
	catalog, err := p.ParseCatalog(context.Background(), []byte(feedDoc))
	require.NoError(t, err)

	// the zero-stop tour never reaches the catalog
	require.Len(t, catalog.Tours, 1)
	tour := catalog.Tours[0]
	assert.Equal(t, int64(4001), tour.ID)
	assert.Equal(t, int64(10), tour.Order)

	// the unresolvable stop is dropped; survivors sort ascending
	require.Len(t, tour.Stops, 2)
	assert.Equal(t, int64(0), tour.Stops[0].Order)
	assert.Equal(t, int64(2), tour.Stops[1].Order)
	assert.Equal(t, int64(3001), tour.Stops[0].Object.ID)
	require.NotNil(t, tour.Stops[0].AudioBumper)
	assert.Equal(t, int64(2002), tour.Stops[0].AudioBumper.ID)

	// no explicit floor: the first stop's object supplies it
	assert.Equal(t, 2, tour.Location.Floor)

	require.NotNil(t, tour.Category)
	assert.Equal(t, "Highlights", tour.Category.ID)
	assert.Equal(t, "Destacados", tour.Category.Title[domain.Spanish])

	en := tour.Translations[domain.English]
	assert.Equal(t, "Essentials", en.Title)
	assert.Equal(t, "Short.", en.ShortDescription)
	assert.Equal(t, "Short.\r\rIntro.", en.LongDescription)
	assert.Equal(t, "Copyright 2016 Art Institue of Chicago", en.Credits)

	// one report for the bad stop, one for the zero-stop tour
	assert.Equal(t, 2, rec.count(KindInvalidTour))
}

func TestParseCatalog_DataSettingsStopAtFirstMissing(t *testing.T) {
	p, rec := newTestParser()
	catalog, err := p.ParseCatalog(context.Background(), []byte(feedDoc))
	require.NoError(t, err)

	// keys resolve in declared order until the first miss
	assert.Equal(t, map[domain.DataSetting]string{
		domain.SettingImageServerURL:      "https://iiif.example.org",
		domain.SettingDataAPIURL:          "https://api.example.org",
		domain.SettingExhibitionsEndpoint: "/exhibitions",
	}, catalog.DataSettings)
	assert.Equal(t, 1, rec.count(KindInvalidDataSetting))
}

func TestParseCatalog_Search(t *testing.T) {
	p, _ := newTestParser()
	catalog, err := p.ParseCatalog(context.Background(), []byte(feedDoc))
	require.NoError(t, err)

	assert.Equal(t, []string{"seurat", "monet"}, catalog.SearchStrings)
	require.Len(t, catalog.SearchArtworks, 2)
	assert.Equal(t, int64(3001), catalog.SearchArtworks[0].ID)
	assert.Equal(t, int64(3002), catalog.SearchArtworks[1].ID)
}

func TestParseCatalog_MapKeepsAllFloors(t *testing.T) {
	p, rec := newTestParser()
	catalog, err := p.ParseCatalog(context.Background(), []byte(feedDoc))
	require.NoError(t, err)

	require.Len(t, catalog.Map.Floors, domain.TotalFloors)
	for _, f := range catalog.Map.Floors {
		assert.NotNil(t, f.Objects, "floor %d", f.Number)
		assert.NotNil(t, f.FarObjects, "floor %d", f.Number)
		assert.NotNil(t, f.Amenities, "floor %d", f.Number)
		assert.NotNil(t, f.Departments, "floor %d", f.Number)
		assert.NotNil(t, f.Galleries, "floor %d", f.Number)
		assert.NotNil(t, f.Spaces, "floor %d", f.Number)
	}

	// only floor 0 has an overlay in the fixture; the other three degrade
	assert.Equal(t, "https://example.org/f0.png", catalog.Map.Floors[0].Overlay.FloorPlanURL)
	assert.Equal(t, "", catalog.Map.Floors[1].Overlay.FloorPlanURL)
	assert.Equal(t, domain.TotalFloors-1, rec.count(KindInvalidMapFloor))

	// gallery and object annotations land on their floors
	require.Len(t, catalog.Map.Floors[2].Galleries, 1)
	assert.Equal(t, "201", catalog.Map.Floors[2].Galleries[0].Text)
	require.Len(t, catalog.Map.Floors[2].Objects, 1)
	assert.Equal(t, int64(3001), catalog.Map.Floors[2].Objects[0].ObjectID)

	// promoted artworks resurface as far objects on their floor
	require.Len(t, catalog.Map.Floors[0].FarObjects, 1)
	assert.Equal(t, int64(3002), catalog.Map.Floors[0].FarObjects[0].ObjectID)

	require.Len(t, catalog.Map.Floors[0].Amenities, 1)
	assert.Equal(t, domain.AmenityDining, catalog.Map.Floors[0].Amenities[0].Type)
	require.Len(t, catalog.Map.LandmarkAnnotations, 1)
	assert.Equal(t, "Lakefront", catalog.Map.LandmarkAnnotations[0].Text)

	// the unknown amenity tag and the unknown annotation type
	assert.Equal(t, 2, rec.count(KindInvalidMapAnnotation))

	// the dining amenity also yields a restaurant
	require.Len(t, catalog.Restaurants, 1)
	assert.Equal(t, "Cafe", catalog.Restaurants[0].Title)
	assert.Equal(t, 0, catalog.Restaurants[0].Location.Floor)
}

func TestParseCatalog_Messages(t *testing.T) {
	p, rec := newTestParser()
	catalog, err := p.ParseCatalog(context.Background(), []byte(feedDoc))
	require.NoError(t, err)

	require.Len(t, catalog.Messages, 1)
	m := catalog.Messages[0]
	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, domain.MessageLaunch, m.Kind)
	assert.True(t, m.Persistent)
	assert.Equal(t, "Welcome", m.Title)
	assert.Equal(t, "Hola", m.Translations[domain.Spanish].Title)

	assert.Equal(t, 1, rec.count(KindInvalidMessage))
}

func TestParseCatalog_GeneralInfo(t *testing.T) {
	p, _ := newTestParser()
	catalog, err := p.ParseCatalog(context.Background(), []byte(feedDoc))
	require.NoError(t, err)

	assert.Equal(t, "Open daily 10–11", catalog.GeneralInfo.Translations[domain.English].MuseumHours)
	assert.Equal(t, "Abierto", catalog.GeneralInfo.Translations[domain.Spanish].MuseumHours)
}

func TestParseCatalog_Idempotent(t *testing.T) {
	p1, rec1 := newTestParser()
	p2, rec2 := newTestParser()

	c1, err := p1.ParseCatalog(context.Background(), []byte(feedDoc))
	require.NoError(t, err)
	c2, err := p2.ParseCatalog(context.Background(), []byte(feedDoc))
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(c1, c2), "two parses of the same document must build the same model")
	assert.Equal(t, len(rec1.problems), len(rec2.problems))
}

// ---- secondary documents ----

func secondaryIndex() *CatalogIndex {
	objectID := int64(111628)
	gallery := domain.Gallery{
		ID:        1001,
		GalleryID: 100,
		Title:     "Gallery 201",
		Location:  domain.Location{Coords: domain.Coords{Lat: 41.8796, Lon: -87.6237}, Floor: 2},
	}
	return NewCatalogIndex(domain.Catalog{
		Galleries: []domain.Gallery{gallery},
		Objects: []domain.Object{{
			ID:           3001,
			ObjectID:     &objectID,
			Title:        "A Sunday on La Grande Jatte",
			Tombstone:    "Georges Seurat\r1884",
			ThumbnailURL: "https://example.org/thumb.jpg",
			ImageURL:     "https://example.org/large.jpg",
			Location:     gallery.Location,
			Gallery:      gallery,
		}},
		Tours:        []domain.Tour{{ID: 4001}},
		DataSettings: map[domain.DataSetting]string{domain.SettingImageServerURL: "https://iiif.example.org"},
	})
}

func TestParseExhibitions(t *testing.T) {
	p, rec := newTestParser()
	doc := `{"data": [
		{
			"id": 6001,
			"title": "Monet &amp; Friends",
			"short_description": "Impressionism.",
			"image_url": "https://example.org/img?id=1",
			"gallery_id": 100,
			"aic_start_at": "2024-03-01T00:00:00+00:00",
			"aic_end_at": "2024-06-01T00:00:00-05:00"
		},
		{
			"id": 6002,
			"title": "Broken Dates",
			"image_url": "https://example.org/img?id=2",
			"aic_start_at": "2024/03/01",
			"aic_end_at": "2024-06-01T00:00:00+00:00"
		}
	]}`

	exhibitions, err := p.ParseExhibitions(context.Background(), []byte(doc), secondaryIndex())
	require.NoError(t, err)
	require.Len(t, exhibitions, 1)
	assert.Equal(t, 1, rec.count(KindInvalidExhibition))

	e := exhibitions[0]
	assert.Equal(t, "Monet & Friends", e.Title)
	// the image service needs an explicit width
	assert.Equal(t, "https://example.org/img?id=1&w=600", e.ImageURL)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), e.StartDate)
	// offsets normalize to UTC
	assert.Equal(t, time.Date(2024, 6, 1, 5, 0, 0, 0, time.UTC), e.EndDate)
	require.NotNil(t, e.GalleryID)
	assert.Equal(t, int64(100), *e.GalleryID)
	require.NotNil(t, e.Location)
	assert.Equal(t, 2, e.Location.Floor)
}

func TestParseExhibitions_SoftGalleryLink(t *testing.T) {
	p, _ := newTestParser()
	doc := `{"data": [{
		"id": 6003,
		"title": "No Such Gallery",
		"image_url": "https://example.org/img?id=3",
		"gallery_id": 999,
		"aic_start_at": "2024-03-01T00:00:00+00:00",
		"aic_end_at": "2024-06-01T00:00:00+00:00"
	}]}`

	exhibitions, err := p.ParseExhibitions(context.Background(), []byte(doc), secondaryIndex())
	require.NoError(t, err)
	require.Len(t, exhibitions, 1)
	assert.Nil(t, exhibitions[0].GalleryID)
	assert.Nil(t, exhibitions[0].Location)
}

func TestParseEvents(t *testing.T) {
	p, rec := newTestParser()
	doc := `{"data": [
		{
			"id": "ev-1",
			"title": "Member Night",
			"description": "Evening hours.",
			"short_description": "Evening.",
			"image_url": "https://example.org/e.jpg",
			"button_url": "https://example.org/tickets",
			"button_text": "Buy",
			"location": "Griffin Court",
			"start_at": "2024-05-10T18:00:00+00:00",
			"end_at": "2024-05-10T21:00:00+00:00"
		},
		{"id": "ev-2", "title": "No image"}
	]}`

	events, err := p.ParseEvents(context.Background(), []byte(doc))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 1, rec.count(KindInvalidEvent))

	e := events[0]
	assert.Equal(t, "ev-1", e.ID)
	assert.Equal(t, "Evening hours.", e.LongDescription)
	assert.Equal(t, "https://example.org/tickets", e.EventURL)
	assert.Equal(t, "Griffin Court", e.LocationText)
	assert.Equal(t, time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC), e.StartDate)
}

func TestParseAutocomplete(t *testing.T) {
	p, rec := newTestParser()

	out := p.ParseAutocomplete(context.Background(), []byte(`["monet", "seurat", 7]`))
	assert.Equal(t, []string{"monet", "seurat"}, out)
	assert.Empty(t, rec.problems)

	out = p.ParseAutocomplete(context.Background(), []byte(`{"not": "an array"}`))
	assert.Empty(t, out)
	assert.Equal(t, 1, rec.count(KindInvalidAutocomplete))
}

func TestParseSearchContent(t *testing.T) {
	p, _ := newTestParser()
	doc := `[
		{"data": [
			{"id": 111628, "is_on_view": false},
			{"id": 999, "is_on_view": true, "title": "Water &amp; Light", "artist_display": "Claude Monet", "image_id": "abc", "gallery_id": 100},
			{"id": 777, "is_on_view": false}
		]},
		{"data": [{"id": 4001}, {"id": 5555}]},
		{"data": []}
	]`

	content := p.ParseSearchContent(context.Background(), []byte(doc), secondaryIndex())

	require.Len(t, content.Artworks, 2)
	// a CMS artwork is reused wholesale, even off view
	first := content.Artworks[0]
	require.NotNil(t, first.AudioObject)
	assert.Equal(t, "A Sunday on La Grande Jatte", first.Title)
	assert.Equal(t, "Georges Seurat\r1884", first.ArtistDisplay)

	// a data-API-only artwork builds its images from the IIIF server
	second := content.Artworks[1]
	assert.Nil(t, second.AudioObject)
	assert.Equal(t, "Water & Light", second.Title)
	assert.Equal(t, "https://iiif.example.org/abc/full/!200,200/0/default.jpg", second.ThumbnailURL)
	assert.Equal(t, "https://iiif.example.org/abc/full/!800,800/0/default.jpg", second.ImageURL)
	assert.Equal(t, 2, second.Location.Floor)

	// known tours match; unknown ids drop silently
	require.Len(t, content.Tours, 1)
	assert.Equal(t, int64(4001), content.Tours[0].ID)

	assert.Empty(t, content.Exhibitions)
}

func TestParseSearchContent_Malformed(t *testing.T) {
	p, rec := newTestParser()
	content := p.ParseSearchContent(context.Background(), []byte(`]broken`), secondaryIndex())
	assert.Empty(t, content.Artworks)
	assert.Empty(t, content.Tours)
	assert.Empty(t, content.Exhibitions)
	assert.Equal(t, 1, rec.count(KindInvalidSearchContent))
}
