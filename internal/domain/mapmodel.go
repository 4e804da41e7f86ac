package domain

// TextAnnotationType discriminates the feed's text annotations.
type TextAnnotationType string

const (
	TextGallery  TextAnnotationType = "Gallery"
	TextSpace    TextAnnotationType = "Space"
	TextLandmark TextAnnotationType = "Landmark"
	TextGarden   TextAnnotationType = "Garden"
)

// AmenityType is the closed set of map amenity tags. Dining annotations
// additionally produce a Restaurant.
type AmenityType string

const (
	AmenityDining         AmenityType = "Dining"
	AmenityWomensRoom     AmenityType = "WomensRoom"
	AmenityMensRoom       AmenityType = "MensRoom"
	AmenityFamilyRestroom AmenityType = "FamilyRestroom"
	AmenityElevator       AmenityType = "Elevator"
	AmenityEscalator      AmenityType = "Escalator"
	AmenityGiftShop       AmenityType = "GiftShop"
	AmenityTickets        AmenityType = "Tickets"
	AmenityInformation    AmenityType = "Information"
	AmenityCheckRoom      AmenityType = "CheckRoom"
	AmenityAudioGuide     AmenityType = "AudioGuide"
	AmenityMembersLounge  AmenityType = "MembersLounge"
	AmenityWheelchairRamp AmenityType = "WheelchairRamp"
)

// KnownAmenityTypes is the accepted tag set; anything else is an
// unrecognized-tag parse failure.
var KnownAmenityTypes = map[AmenityType]bool{
	AmenityDining:         true,
	AmenityWomensRoom:     true,
	AmenityMensRoom:       true,
	AmenityFamilyRestroom: true,
	AmenityElevator:       true,
	AmenityEscalator:      true,
	AmenityGiftShop:       true,
	AmenityTickets:        true,
	AmenityInformation:    true,
	AmenityCheckRoom:      true,
	AmenityAudioGuide:     true,
	AmenityMembersLounge:  true,
	AmenityWheelchairRamp: true,
}

// FloorOverlay georeferences a floor-plan image: two anchor pairs map
// floor-plan pixel space onto geographic coordinates.
type FloorOverlay struct {
	FloorPlanURL    string `json:"floor_plan_url"`
	AnchorPixel1    Point  `json:"anchor_pixel_1"`
	AnchorPixel2    Point  `json:"anchor_pixel_2"`
	AnchorLocation1 Coords `json:"anchor_location_1"`
	AnchorLocation2 Coords `json:"anchor_location_2"`
}

// TextAnnotation is a labelled point on the map.
type TextAnnotation struct {
	Coordinate Coords             `json:"coordinate"`
	Text       string             `json:"text"`
	Type       TextAnnotationType `json:"type"`
}

// ObjectAnnotation places one artwork on a floor.
type ObjectAnnotation struct {
	ObjectID     int64    `json:"object_id"`
	Title        string   `json:"title"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Location     Location `json:"location"`
}

// AmenityAnnotation places an amenity on a floor.
type AmenityAnnotation struct {
	ID         int64       `json:"id"`
	Coordinate Coords      `json:"coordinate"`
	Floor      int         `json:"floor"`
	Type       AmenityType `json:"type"`
}

// DepartmentAnnotation marks a curatorial department.
type DepartmentAnnotation struct {
	Coordinate Coords `json:"coordinate"`
	Title      string `json:"title"`
	ImageURL   string `json:"image_url"`
}

// ImageAnnotation is a floor-independent image marker.
type ImageAnnotation struct {
	Coordinate Coords `json:"coordinate"`
	ImageURL   string `json:"image_url"`
}

// MapFloor is one floor's overlay plus its annotation collections. Every
// collection is non-nil for every floor in [0, TotalFloors), even when empty.
type MapFloor struct {
	Number      int                    `json:"number"`
	Overlay     FloorOverlay           `json:"overlay"`
	Objects     []ObjectAnnotation     `json:"objects"`
	FarObjects  []ObjectAnnotation     `json:"far_objects"`
	Amenities   []AmenityAnnotation    `json:"amenities"`
	Departments []DepartmentAnnotation `json:"departments"`
	Galleries   []TextAnnotation       `json:"galleries"`
	Spaces      []TextAnnotation       `json:"spaces"`
}

// MapModel is the assembled museum map.
type MapModel struct {
	ImageAnnotations    []ImageAnnotation `json:"image_annotations"`
	LandmarkAnnotations []TextAnnotation  `json:"landmark_annotations"`
	GardenAnnotations   []TextAnnotation  `json:"garden_annotations"`
	Floors              []MapFloor        `json:"floors"`
}
