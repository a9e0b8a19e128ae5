package geo

import (
	geom "github.com/peterstace/simplefeatures/geom"
)

// Path builds a planar LineString through pts. Fewer than two points, or a
// track that fails validation (all points coincident, non-finite values),
// give an empty line.
func Path(pts []geom.XY) geom.LineString {
	if len(pts) < 2 {
		return geom.LineString{}
	}
	flat := make([]float64, 0, len(pts)*2)
	for _, p := range pts {
		flat = append(flat, p.X, p.Y)
	}
	ls, err := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
	if err != nil {
		return geom.LineString{}
	}
	return ls
}

// PathLength returns the planar length of the polyline through pts.
func PathLength(pts []geom.XY) float64 {
	if len(pts) < 2 {
		return 0
	}
	return Path(pts).Length()
}
