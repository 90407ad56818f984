// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "fmt"

// Well-known spatial reference identifiers.
const (
	// WKIDWGS84 is geographic longitude/latitude in degrees.
	WKIDWGS84 = 4326

	// WKIDWebMercator is the auxiliary-sphere Web Mercator projection in meters.
	WKIDWebMercator = 102100
)

// SpatialReference identifies the coordinate system a position is expressed in.
type SpatialReference struct {
	// WKID is the well-known ID of the coordinate system.
	WKID int `yaml:"wkid"`
}

// String returns a short human readable form, e.g. "wkid:102100".
func (s SpatialReference) String() string {
	return fmt.Sprintf("wkid:%d", s.WKID)
}

// Extent is an axis-aligned geographic rectangle in WGS84 degrees.
type Extent struct {
	// XMin is the western longitude.
	XMin float64 `yaml:"xmin"`
	// YMin is the southern latitude.
	YMin float64 `yaml:"ymin"`
	// XMax is the eastern longitude.
	XMax float64 `yaml:"xmax"`
	// YMax is the northern latitude.
	YMax float64 `yaml:"ymax"`
}

// Valid reports whether the extent is non-empty and within WGS84 bounds.
//
// Returns:
//   - bool: true if XMin < XMax, YMin < YMax and all values are in range
func (e Extent) Valid() bool {
	if e.XMin >= e.XMax || e.YMin >= e.YMax {
		return false
	}
	if e.XMin < -180 || e.XMax > 180 {
		return false
	}
	return e.YMin >= -MaxMercatorLatitude && e.YMax <= MaxMercatorLatitude
}

// Center returns the longitude/latitude midpoint of the extent.
//
// Returns:
//   - lon, lat: center in degrees
func (e Extent) Center() (lon, lat float64) {
	return (e.XMin + e.XMax) / 2, (e.YMin + e.YMax) / 2
}

// ProjectedWidth returns the width of the extent in Web Mercator meters measured along its center latitude.
//
// Returns:
//   - float64: projected width in meters
func (e Extent) ProjectedWidth() float64 {
	_, lat := e.Center()
	x0, _ := LonLatToWebMercator(e.XMin, lat)
	x1, _ := LonLatToWebMercator(e.XMax, lat)
	return x1 - x0
}

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Lerp blends c towards o by t (0 returns c, 1 returns o).
//
// Parameters:
//   - o: the target color
//   - t: blend factor in [0, 1]
//
// Returns:
//   - Color: the blended color
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}
