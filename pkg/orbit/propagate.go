// Package orbit propagates satellite positions from broadcast Keplerous
// elements into the Earth-Centered Inertial (ECI) and Earth-Centered
// Earth-Fixed (ECEF) frames (spec §4.5), and produces the visualization
// orbit trace (spec §4.6).
package orbit

import (
	"math"

	"github.com/adedolapo/gnssl1/pkg/series"
)

const (
	// GM is μ = G·M_⊕, locked by external compatibility (spec §4.5).
	GM = 6.67430e-11 * 5.9722e24 // m^3/s^2

	// EarthRotationRate is ω_⊕, the sidereal Earth rotation rate. It is
	// not used by the ECI->ECEF stage below: that stage deliberately
	// rotates by a *solar*-day fraction instead (spec §4.5, §9). It is
	// kept here only as the documented constant external compatibility
	// assumes exists, should a sidereal correction ever be reintroduced.
	EarthRotationRate = 7.2921151467e-5 // rad/s

	// SolarDaySeconds is the rotation period the ECI->ECEF stage uses.
	// This is a known simplification inherited from the reference
	// algorithm and must be preserved, not "fixed" (spec §9).
	SolarDaySeconds = 86400.0

	maxKeplerIterations = 10
	keplerTolerance     = 1e-12
)

// Vector3 is a plain Cartesian triple, reused for both PQW/ECI and ECEF
// coordinates.
type Vector3 struct {
	X, Y, Z float64
}

// State is one PRN's propagated position at one observation index.
type State struct {
	ECI   Vector3
	ECEF  Vector3
	TMs   float64 // observation time in ms of week, carried for output
	Valid bool    // false when any intermediate was non-finite (spec §4.5 Failure semantics)
}

// rotateZ applies Rz(theta) to v: a rotation about the Z axis by theta
// radians. Every other rotation this package needs derives from this one
// primitive (spec §9's "single rotation primitive" note): Rx is rotateZ
// conjugated by an axis swap, and the ECI->ECEF stage's Rz^T(theta) is
// just rotateZ(-theta, v).
func rotateZ(theta float64, v Vector3) Vector3 {
	c, s := math.Cos(theta), math.Sin(theta)
	return Vector3{
		X: c*v.X - s*v.Y,
		Y: s*v.X + c*v.Y,
		Z: v.Z,
	}
}

// rotateX applies Rx(theta) to v, derived from rotateZ by swapping the Y
// and Z axes around the primitive.
func rotateX(theta float64, v Vector3) Vector3 {
	swapped := Vector3{X: v.Y, Y: v.Z, Z: v.X}
	r := rotateZ(theta, swapped)
	return Vector3{X: r.Z, Y: r.X, Z: r.Y}
}

// normalizeAngle wraps a radians angle into [-π, π].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// solveKepler iterates Newton's method from E=M, per spec §4.5 step 4.
func solveKepler(m, ecc float64) float64 {
	e := m
	for i := 0; i < maxKeplerIterations; i++ {
		delta := (e - ecc*math.Sin(e) - m) / (1 - ecc*math.Cos(e))
		e -= delta
		if math.Abs(delta) < keplerTolerance {
			break
		}
	}
	return e
}

// Propagate computes sample's satellite position at its observation time
// (spec §4.5). A sample with no selected ephemeris, or one that produces
// a non-finite intermediate, returns a State with Valid=false; the solver
// skips any index whose State is not Valid (spec §4.5 Failure semantics —
// no global fault).
func Propagate(sample series.Sample) State {
	if !sample.HasEph {
		return State{TMs: sample.TObs * 1000, Valid: false}
	}
	eph := sample.Eph

	if eph.A <= 0 || eph.Ecc >= 1 || eph.Ecc < 0 {
		return State{TMs: sample.TObs * 1000, Valid: false}
	}

	deltaT := sample.TObs - eph.Toe
	n := math.Sqrt(GM / (eph.A * eph.A * eph.A))
	m := normalizeAngle(eph.M0 + n*deltaT)

	e := solveKepler(m, eph.Ecc)

	sinNu := math.Sqrt(1-eph.Ecc*eph.Ecc) * math.Sin(e) / (1 - eph.Ecc*math.Cos(e))
	cosNu := (math.Cos(e) - eph.Ecc) / (1 - eph.Ecc*math.Cos(e))
	nu := math.Atan2(sinNu, cosNu)

	r := eph.A * (1 - eph.Ecc*math.Cos(e))
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return State{TMs: sample.TObs * 1000, Valid: false}
	}

	pqw := Vector3{X: r * math.Cos(nu), Y: r * math.Sin(nu), Z: 0}

	eci := rotateZ(eph.Omega, pqw)
	eci = rotateX(eph.I0, eci)
	eci = rotateZ(eph.Omega0, eci)

	if !finiteVector(eci) {
		return State{TMs: sample.TObs * 1000, Valid: false}
	}

	theta := math.Mod(sample.TObs/SolarDaySeconds, 1.0) * 2 * math.Pi
	ecef := rotateZ(-theta, eci)

	if !finiteVector(ecef) {
		return State{TMs: sample.TObs * 1000, Valid: false}
	}

	return State{
		ECI:   eci,
		ECEF:  ecef,
		TMs:   sample.TObs * 1000,
		Valid: true,
	}
}

func finiteVector(v Vector3) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// PropagateSeries propagates every sample in a satellite series.
func PropagateSeries(ser series.Series) []State {
	states := make([]State, len(ser.Samples))
	for i, sample := range ser.Samples {
		states[i] = Propagate(sample)
	}
	return states
}
