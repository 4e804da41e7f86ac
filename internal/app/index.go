package app

import "aic_catalog/internal/domain"

// refIndex is the in-memory lookup table built incrementally during one parse
// run. Galleries are indexed open-only; all lookups are exact-match with
// first registered entry winning. Not safe for concurrent use: one index
// belongs to one run.
type refIndex struct {
	audioByID     map[int64]domain.AudioFile
	objectByID    map[int64]domain.Object
	galleryByName map[string]domain.Gallery
	galleryByID   map[int64]domain.Gallery
	categoryByID  map[string]domain.TourCategory
}

func newRefIndex() *refIndex {
	return &refIndex{
		audioByID:     make(map[int64]domain.AudioFile),
		objectByID:    make(map[int64]domain.Object),
		galleryByName: make(map[string]domain.Gallery),
		galleryByID:   make(map[int64]domain.Gallery),
		categoryByID:  make(map[string]domain.TourCategory),
	}
}

func (ix *refIndex) registerGallery(g domain.Gallery) {
	if g.Closed {
		return
	}
	if _, ok := ix.galleryByName[g.Title]; !ok {
		ix.galleryByName[g.Title] = g
	}
	if _, ok := ix.galleryByID[g.GalleryID]; !ok {
		ix.galleryByID[g.GalleryID] = g
	}
}

func (ix *refIndex) registerAudioFile(a domain.AudioFile) {
	if _, ok := ix.audioByID[a.ID]; !ok {
		ix.audioByID[a.ID] = a
	}
}

func (ix *refIndex) registerObject(o domain.Object) {
	if _, ok := ix.objectByID[o.ID]; !ok {
		ix.objectByID[o.ID] = o
	}
}

func (ix *refIndex) registerCategory(c domain.TourCategory) {
	if _, ok := ix.categoryByID[c.ID]; !ok {
		ix.categoryByID[c.ID] = c
	}
}

func (ix *refIndex) audioFile(id int64) (domain.AudioFile, error) {
	a, ok := ix.audioByID[id]
	if !ok {
		return domain.AudioFile{}, errAudioFileNotFound(id)
	}
	return a, nil
}

func (ix *refIndex) object(id int64) (domain.Object, error) {
	o, ok := ix.objectByID[id]
	if !ok {
		return domain.Object{}, errObjectNotFound(id)
	}
	return o, nil
}

func (ix *refIndex) galleryNamed(name string) (domain.Gallery, error) {
	g, ok := ix.galleryByName[name]
	if !ok {
		return domain.Gallery{}, errGalleryNameNotFound(name)
	}
	return g, nil
}

// category is a soft lookup: a miss degrades to "no category".
func (ix *refIndex) category(id string) (domain.TourCategory, bool) {
	c, ok := ix.categoryByID[id]
	return c, ok
}

// CatalogIndex exposes the lookups that the secondary-document parsers
// (exhibitions, search content) need from an already-parsed catalog. It is
// built once per catalog and passed explicitly to whoever needs it.
type CatalogIndex struct {
	galleryByID       map[int64]domain.Gallery
	objectByArtworkID map[int64]domain.Object
	tourByID          map[int64]domain.Tour
	imageServerURL    string
}

// NewCatalogIndex builds the lookup tables from a parsed catalog. Only open
// galleries are indexed; object lookups use the artwork's secondary id.
func NewCatalogIndex(c domain.Catalog) *CatalogIndex {
	ix := &CatalogIndex{
		galleryByID:       make(map[int64]domain.Gallery, len(c.Galleries)),
		objectByArtworkID: make(map[int64]domain.Object, len(c.Objects)),
		tourByID:          make(map[int64]domain.Tour, len(c.Tours)),
		imageServerURL:    c.DataSettings[domain.SettingImageServerURL],
	}
	for _, g := range c.Galleries {
		if g.Closed {
			continue
		}
		if _, ok := ix.galleryByID[g.GalleryID]; !ok {
			ix.galleryByID[g.GalleryID] = g
		}
	}
	for _, o := range c.Objects {
		if o.ObjectID == nil {
			continue
		}
		if _, ok := ix.objectByArtworkID[*o.ObjectID]; !ok {
			ix.objectByArtworkID[*o.ObjectID] = o
		}
	}
	for _, t := range c.Tours {
		if _, ok := ix.tourByID[t.ID]; !ok {
			ix.tourByID[t.ID] = t
		}
	}
	return ix
}

func (ix *CatalogIndex) gallery(galleryID int64) (domain.Gallery, error) {
	g, ok := ix.galleryByID[galleryID]
	if !ok {
		return domain.Gallery{}, errGalleryIDNotFound(galleryID)
	}
	return g, nil
}

// Object returns the CMS artwork carrying the given secondary id, if any.
func (ix *CatalogIndex) Object(artworkID int64) (domain.Object, bool) {
	o, ok := ix.objectByArtworkID[artworkID]
	return o, ok
}

// Tour returns the parsed tour with the given id, if any.
func (ix *CatalogIndex) Tour(id int64) (domain.Tour, bool) {
	t, ok := ix.tourByID[id]
	return t, ok
}
