package geodetic

import (
	"math"
	"testing"

	"github.com/adedolapo/gnssl1/pkg/orbit"
)

func TestECEFToGeodeticOrigin(t *testing.T) {
	g := ECEFToGeodetic(orbit.Vector3{})
	if g.LatDeg != 0 || g.LonDeg != 0 || g.AltM != -SemiMajorAxis {
		t.Fatalf("got %+v, want (0,0,%v)", g, -SemiMajorAxis)
	}
}

func TestECEFToGeodeticKnownPoint(t *testing.T) {
	// Approximately equatorial, on the ellipsoid surface, at the prime
	// meridian: ECEF (a, 0, 0) should be (0 deg, 0 deg, ~0 m).
	g := ECEFToGeodetic(orbit.Vector3{X: SemiMajorAxis, Y: 0, Z: 0})
	if math.Abs(g.LatDeg) > 1e-6 {
		t.Fatalf("LatDeg = %v, want ~0", g.LatDeg)
	}
	if math.Abs(g.LonDeg) > 1e-6 {
		t.Fatalf("LonDeg = %v, want ~0", g.LonDeg)
	}
	if math.Abs(g.AltM) > 1e-3 {
		t.Fatalf("AltM = %v, want ~0", g.AltM)
	}
}

func TestRoundTripECEFGeodetic(t *testing.T) {
	original := orbit.Vector3{X: 4510731.0, Y: 4510731.0, Z: 1877747.0}
	g := ECEFToGeodetic(original)
	back := GeodeticToECEF(g)

	if math.Abs(back.X-original.X) > 1e-3 {
		t.Fatalf("X round-trip = %v, want %v", back.X, original.X)
	}
	if math.Abs(back.Y-original.Y) > 1e-3 {
		t.Fatalf("Y round-trip = %v, want %v", back.Y, original.Y)
	}
	if math.Abs(back.Z-original.Z) > 1e-3 {
		t.Fatalf("Z round-trip = %v, want %v", back.Z, original.Z)
	}
}

func TestLongitudeQuadrants(t *testing.T) {
	g := ECEFToGeodetic(orbit.Vector3{X: 0, Y: SemiMajorAxis, Z: 0})
	if math.Abs(g.LonDeg-90) > 1e-6 {
		t.Fatalf("LonDeg = %v, want 90", g.LonDeg)
	}
}
