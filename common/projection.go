package common

import "math"

// EarthRadius is the WGS84 semi-major axis used by the Web Mercator auxiliary sphere, in meters.
const EarthRadius = 6378137.0

// MaxMercatorLatitude is the latitude at which Web Mercator is clipped to a square world.
const MaxMercatorLatitude = 85.0511287798066

// LonLatToWebMercator projects WGS84 longitude/latitude degrees to Web Mercator meters.
// Latitude is clamped to the Mercator limit.
//
// Parameters:
//   - lon: longitude in degrees
//   - lat: latitude in degrees
//
// Returns:
//   - x, y: projected coordinates in meters
func LonLatToWebMercator(lon, lat float64) (x, y float64) {
	lat = Clamp(lat, -MaxMercatorLatitude, MaxMercatorLatitude)
	x = EarthRadius * DegToRad(lon)
	y = EarthRadius * math.Log(math.Tan(math.Pi/4+DegToRad(lat)/2))
	return x, y
}

// WebMercatorToLonLat is the inverse of LonLatToWebMercator.
//
// Parameters:
//   - x, y: projected coordinates in meters
//
// Returns:
//   - lon, lat: WGS84 degrees
func WebMercatorToLonLat(x, y float64) (lon, lat float64) {
	lon = RadToDeg(x / EarthRadius)
	lat = RadToDeg(2*math.Atan(math.Exp(y/EarthRadius)) - math.Pi/2)
	return lon, lat
}
