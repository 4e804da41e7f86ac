package domain

// Coords is a geographic coordinate. The feed encodes these as "lat,long"
// strings.
type Coords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location is a coordinate qualified with a floor number.
type Location struct {
	Coords Coords `json:"coords"`
	Floor  int    `json:"floor"`
}

// Point is a pixel-space point, encoded as "x,y" in the feed.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an image crop rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
