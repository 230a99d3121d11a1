// Package geodetic converts receiver positions between ECEF and WGS-84
// geodetic coordinates via Bowring's closed-form method (spec §4.8).
package geodetic

import (
	"math"

	"github.com/adedolapo/gnssl1/pkg/orbit"
)

// WGS-84 ellipsoid constants (spec §4.8).
const (
	SemiMajorAxis     = 6378137.0
	InverseFlattening = 298.257223563
)

var (
	flattening           = 1.0 / InverseFlattening
	semiMinorAxis        = SemiMajorAxis * (1 - flattening)
	eccentricitySquared  = 2*flattening - flattening*flattening
	secondEccSquared     = (SemiMajorAxis*SemiMajorAxis - semiMinorAxis*semiMinorAxis) / (semiMinorAxis * semiMinorAxis)
)

// Geodetic is a WGS-84 position: degrees for latitude/longitude, meters
// for altitude.
type Geodetic struct {
	LatDeg float64
	LonDeg float64
	AltM   float64
}

// ECEFToGeodetic converts ecef to WGS-84 geodetic coordinates via
// Bowring's closed-form formula (spec §4.8). The origin-on-axis
// degenerate case (p == 0 && z == 0) returns (0, 0, -a) rather than
// dividing by zero.
func ECEFToGeodetic(ecef orbit.Vector3) Geodetic {
	x, y, z := ecef.X, ecef.Y, ecef.Z

	lon := math.Atan2(y, x)
	p := math.Sqrt(x*x + y*y)
	if p == 0 && z == 0 {
		return Geodetic{LatDeg: 0, LonDeg: 0, AltM: -SemiMajorAxis}
	}

	theta := math.Atan2(z*SemiMajorAxis, p*semiMinorAxis)
	sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)
	lat := math.Atan2(
		z+secondEccSquared*semiMinorAxis*sinTheta*sinTheta*sinTheta,
		p-eccentricitySquared*SemiMajorAxis*cosTheta*cosTheta*cosTheta,
	)

	sinLat := math.Sin(lat)
	n := SemiMajorAxis / math.Sqrt(1-eccentricitySquared*sinLat*sinLat)
	alt := p/math.Cos(lat) - n

	return Geodetic{
		LatDeg: lat * 180 / math.Pi,
		LonDeg: lon * 180 / math.Pi,
		AltM:   alt,
	}
}

// GeodeticToECEF converts a geodetic position back to ECEF. It exists
// only to round-trip ECEFToGeodetic in tests; the pipeline never calls it
// (spec §4.8 defines only the ECEF->geodetic direction).
func GeodeticToECEF(g Geodetic) orbit.Vector3 {
	lat := g.LatDeg * math.Pi / 180
	lon := g.LonDeg * math.Pi / 180

	sinLat, cosLat := math.Sin(lat), math.Cos(lat)
	sinLon, cosLon := math.Sin(lon), math.Cos(lon)

	n := SemiMajorAxis / math.Sqrt(1-eccentricitySquared*sinLat*sinLat)

	return orbit.Vector3{
		X: (n + g.AltM) * cosLat * cosLon,
		Y: (n + g.AltM) * cosLat * sinLon,
		Z: (n*(1-eccentricitySquared) + g.AltM) * sinLat,
	}
}
