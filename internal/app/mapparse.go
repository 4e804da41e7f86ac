package app

import (
	"fmt"

	"aic_catalog/internal/domain"
)

// parseMap assembles the museum map in two phases: first the per-floor
// overlays plus the gallery and artwork annotations derived from already
// parsed sections, then the free-form annotation collection. The model always
// carries exactly TotalFloors floors; a floor whose overlay fails to parse
// keeps a zero overlay so floor-indexed consumers stay aligned.
func (r *parseRun) parseMap(floorsNode, annotationsNode map[string]any) (domain.MapModel, error) {
	buckets := make([]floorBuckets, domain.TotalFloors)

	for floor := 0; floor < domain.TotalFloors; floor++ {
		b := &buckets[floor]
		b.objects = make([]domain.ObjectAnnotation, 0)
		b.farObjects = make([]domain.ObjectAnnotation, 0)
		b.amenities = make([]domain.AmenityAnnotation, 0)
		b.departments = make([]domain.DepartmentAnnotation, 0)
		b.galleries = make([]domain.TextAnnotation, 0)
		b.spaces = make([]domain.TextAnnotation, 0)

		floorNode := objectAt(floorsNode, fmt.Sprintf("map_floor%d", floor))
		overlay, err := parseFloorOverlay(floorNode)
		if err != nil {
			if _, ok := asParseError(err); !ok {
				return domain.MapModel{}, err
			}
			r.report(wrap(KindInvalidMapFloor, err, floorNode))
		} else {
			b.overlay = overlay
		}

		for _, g := range r.galleries {
			if g.Location.Floor != floor {
				continue
			}
			b.galleries = append(b.galleries, domain.TextAnnotation{
				Coordinate: g.Location.Coords,
				Text:       g.DisplayTitle,
				Type:       domain.TextGallery,
			})
		}
		for _, o := range r.objects {
			if o.Location.Floor != floor {
				continue
			}
			b.objects = append(b.objects, domain.ObjectAnnotation{
				ObjectID:     o.ID,
				Title:        o.Title,
				ThumbnailURL: o.ThumbnailURL,
				Location:     o.Location,
			})
		}
	}

	imageAnnotations := make([]domain.ImageAnnotation, 0)
	landmarkAnnotations := make([]domain.TextAnnotation, 0)
	gardenAnnotations := make([]domain.TextAnnotation, 0)

	for _, key := range sortedKeys(annotationsNode) {
		annotation, ok := annotationsNode[key].(map[string]any)
		if !ok {
			r.report(&ParseError{Kind: KindInvalidMapAnnotation, Msg: "map annotation entry is not an object", Data: snippet(annotationsNode[key])})
			continue
		}
		if err := r.parseMapAnnotation(annotation, buckets[:], &imageAnnotations, &landmarkAnnotations, &gardenAnnotations); err != nil {
			if _, ok := asParseError(err); !ok {
				return domain.MapModel{}, err
			}
			r.report(wrap(KindInvalidMapAnnotation, err, annotation))
		}
	}

	// Far objects: the floor's subset of the searchable artworks, matched
	// against the annotations already placed on that floor.
	for floor := 0; floor < domain.TotalFloors; floor++ {
		b := &buckets[floor]
		for _, artwork := range r.searchArtworks {
			if artwork.Location.Floor != floor {
				continue
			}
			for _, ann := range b.objects {
				if ann.ObjectID == artwork.ID {
					b.farObjects = append(b.farObjects, ann)
					break
				}
			}
		}
	}

	floors := make([]domain.MapFloor, 0, domain.TotalFloors)
	for floor := 0; floor < domain.TotalFloors; floor++ {
		b := buckets[floor]
		floors = append(floors, domain.MapFloor{
			Number:      floor,
			Overlay:     b.overlay,
			Objects:     b.objects,
			FarObjects:  b.farObjects,
			Amenities:   b.amenities,
			Departments: b.departments,
			Galleries:   b.galleries,
			Spaces:      b.spaces,
		})
	}

	return domain.MapModel{
		ImageAnnotations:    imageAnnotations,
		LandmarkAnnotations: landmarkAnnotations,
		GardenAnnotations:   gardenAnnotations,
		Floors:              floors,
	}, nil
}

func parseFloorOverlay(node map[string]any) (domain.FloorOverlay, error) {
	floorPlanURL, err := getURL(node, "floor_plan", false)
	if err != nil {
		return domain.FloorOverlay{}, err
	}
	anchorPixel1, err := getPoint(node, "anchor_pixel_1")
	if err != nil {
		return domain.FloorOverlay{}, err
	}
	anchorPixel2, err := getPoint(node, "anchor_pixel_2")
	if err != nil {
		return domain.FloorOverlay{}, err
	}
	anchorLocation1, err := getCoords(node, "anchor_location_1")
	if err != nil {
		return domain.FloorOverlay{}, err
	}
	anchorLocation2, err := getCoords(node, "anchor_location_2")
	if err != nil {
		return domain.FloorOverlay{}, err
	}
	return domain.FloorOverlay{
		FloorPlanURL:    floorPlanURL,
		AnchorPixel1:    anchorPixel1,
		AnchorPixel2:    anchorPixel2,
		AnchorLocation1: anchorLocation1,
		AnchorLocation2: anchorLocation2,
	}, nil
}

// floorBuckets accumulates one floor's collections while the map parses.
type floorBuckets struct {
	overlay     domain.FloorOverlay
	objects     []domain.ObjectAnnotation
	farObjects  []domain.ObjectAnnotation
	amenities   []domain.AmenityAnnotation
	departments []domain.DepartmentAnnotation
	galleries   []domain.TextAnnotation
	spaces      []domain.TextAnnotation
}

// parseMapAnnotation dispatches one annotation on its type tags. Dining
// amenities additionally yield a restaurant.
func (r *parseRun) parseMapAnnotation(
	node map[string]any,
	buckets []floorBuckets,
	imageAnnotations *[]domain.ImageAnnotation,
	landmarkAnnotations, gardenAnnotations *[]domain.TextAnnotation,
) error {
	var floor *int
	if f, err := getInt(node, "floor"); err == nil {
		v := int(f)
		floor = &v
	}
	onFloor := floor != nil && *floor >= 0 && *floor < domain.TotalFloors

	annotationType, err := getString(node, "annotation_type", false)
	if err != nil {
		return err
	}

	switch annotationType {
	case "Amenity":
		if !onFloor {
			return nil
		}
		amenity, err := parseAmenityAnnotation(node, *floor)
		if err != nil {
			return err
		}
		buckets[*floor].amenities = append(buckets[*floor].amenities, amenity)
		if amenity.Type == domain.AmenityDining {
			restaurant, err := parseRestaurant(node, *floor)
			if err != nil {
				return err
			}
			r.restaurants = append(r.restaurants, restaurant)
		}
	case "Text":
		textType, err := getString(node, "text_type", false)
		if err != nil {
			return err
		}
		switch domain.TextAnnotationType(textType) {
		case domain.TextSpace:
			if !onFloor {
				return nil
			}
			ann, err := parseTextAnnotation(node, domain.TextSpace)
			if err != nil {
				return err
			}
			buckets[*floor].spaces = append(buckets[*floor].spaces, ann)
		case domain.TextLandmark:
			ann, err := parseTextAnnotation(node, domain.TextLandmark)
			if err != nil {
				return err
			}
			*landmarkAnnotations = append(*landmarkAnnotations, ann)
		case domain.TextGarden:
			ann, err := parseTextAnnotation(node, domain.TextGarden)
			if err != nil {
				return err
			}
			*gardenAnnotations = append(*gardenAnnotations, ann)
		default:
			return errUnrecognizedTag("text_type", textType)
		}
	case "Department":
		if !onFloor {
			return nil
		}
		department, err := parseDepartmentAnnotation(node)
		if err != nil {
			return err
		}
		buckets[*floor].departments = append(buckets[*floor].departments, department)
	case "Image":
		ann, err := parseImageAnnotation(node)
		if err != nil {
			return err
		}
		*imageAnnotations = append(*imageAnnotations, ann)
	default:
		return errUnrecognizedTag("annotation_type", annotationType)
	}
	return nil
}

func parseAmenityAnnotation(node map[string]any, floor int) (domain.AmenityAnnotation, error) {
	id, err := getInt(node, "nid")
	if err != nil {
		return domain.AmenityAnnotation{}, err
	}
	coordinate, err := getCoords(node, "location")
	if err != nil {
		return domain.AmenityAnnotation{}, err
	}
	typeString, err := getString(node, "amenity_type", false)
	if err != nil {
		return domain.AmenityAnnotation{}, err
	}
	amenityType := domain.AmenityType(typeString)
	if !domain.KnownAmenityTypes[amenityType] {
		return domain.AmenityAnnotation{}, errUnrecognizedTag("amenity_type", typeString)
	}
	return domain.AmenityAnnotation{ID: id, Coordinate: coordinate, Floor: floor, Type: amenityType}, nil
}

func parseTextAnnotation(node map[string]any, t domain.TextAnnotationType) (domain.TextAnnotation, error) {
	coordinate, err := getCoords(node, "location")
	if err != nil {
		return domain.TextAnnotation{}, err
	}
	text, err := getString(node, "label", false)
	if err != nil {
		return domain.TextAnnotation{}, err
	}
	return domain.TextAnnotation{Coordinate: coordinate, Text: text, Type: t}, nil
}

func parseDepartmentAnnotation(node map[string]any) (domain.DepartmentAnnotation, error) {
	coordinate, err := getCoords(node, "location")
	if err != nil {
		return domain.DepartmentAnnotation{}, err
	}
	title, err := getString(node, "label", false)
	if err != nil {
		return domain.DepartmentAnnotation{}, err
	}
	imageURL, err := getURL(node, "image_url", false)
	if err != nil {
		return domain.DepartmentAnnotation{}, err
	}
	return domain.DepartmentAnnotation{Coordinate: coordinate, Title: title, ImageURL: imageURL}, nil
}

func parseImageAnnotation(node map[string]any) (domain.ImageAnnotation, error) {
	coordinate, err := getCoords(node, "location")
	if err != nil {
		return domain.ImageAnnotation{}, err
	}
	imageURL, err := getURL(node, "image_url", false)
	if err != nil {
		return domain.ImageAnnotation{}, err
	}
	return domain.ImageAnnotation{Coordinate: coordinate, ImageURL: imageURL}, nil
}

func parseRestaurant(node map[string]any, floor int) (domain.Restaurant, error) {
	id, err := getInt(node, "nid")
	if err != nil {
		return domain.Restaurant{}, err
	}
	title, _ := getString(node, "label", true)
	description, _ := getString(node, "description", true)
	coordinate, err := getCoords(node, "location")
	if err != nil {
		return domain.Restaurant{}, err
	}
	imageURL, _ := getURL(node, "image_url", true)

	return domain.Restaurant{
		ID:          id,
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
		Location:    domain.Location{Coords: coordinate, Floor: floor},
	}, nil
}
