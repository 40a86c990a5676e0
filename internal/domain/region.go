package domain

// RegionMapper buckets a coordinate pair into a named region. Implementations
// must be synchronous and cheap; snapshot building calls this once per
// located report.
type RegionMapper interface {
	Region(lat, lon float64) string
}

// RegionOther is the bucket for coordinates no region claims.
const RegionOther = "Other"

// boundingBox is an inclusive lat/lon rectangle.
type boundingBox struct {
	name           string
	latMin, latMax float64
	lonMin, lonMax float64
}

// BoundingBoxMapper maps coordinates via an ordered list of rectangles;
// the first match wins. Coarse on purpose; see the package doc.
type BoundingBoxMapper struct {
	boxes []boundingBox
}

// NewBoundingBoxMapper returns the mapper for the monitored coastal metros.
func NewBoundingBoxMapper() *BoundingBoxMapper {
	return &BoundingBoxMapper{
		boxes: []boundingBox{
			{name: "Mumbai", latMin: 18.85, latMax: 19.30, lonMin: 72.75, lonMax: 73.15},
			{name: "Chennai", latMin: 12.85, latMax: 13.25, lonMin: 80.10, lonMax: 80.40},
			{name: "Kolkata", latMin: 22.40, latMax: 22.75, lonMin: 88.20, lonMax: 88.50},
			{name: "Kochi", latMin: 9.80, latMax: 10.15, lonMin: 76.15, lonMax: 76.45},
		},
	}
}

// Region returns the first bounding box containing the point, or RegionOther.
func (m *BoundingBoxMapper) Region(lat, lon float64) string {
	for _, b := range m.boxes {
		if lat >= b.latMin && lat <= b.latMax && lon >= b.lonMin && lon <= b.lonMax {
			return b.name
		}
	}
	return RegionOther
}
