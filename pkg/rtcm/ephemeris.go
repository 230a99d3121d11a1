package rtcm

import "math"

// Ephemeris is the decoded content of an RTCM 1019 (GPS ephemeris) message:
// the broadcast Keplerian elements and clock polynomial for one PRN at one
// issue of data. It is never mutated after decode.
type Ephemeris struct {
	PRN        int
	Week       int
	URA        int // SV accuracy index (DF077)
	CodeOnL2   int
	IODE       int
	IODC       int
	SVHealth   int
	L2PFlag    int
	FitInterval int

	Toc float64 // clock reference time, s of week
	Toe float64 // ephemeris reference time, s of week

	SqrtA float64 // sqrt(semi-major axis), m^(1/2), as broadcast
	A     float64 // semi-major axis, m — derived as SqrtA^2

	Ecc float64 // eccentricity, unitless — derived from the broadcast integer

	I0       float64 // inclination at reference time, rad — scaled by π at decode
	Omega0   float64 // RAAN at weekly epoch, rad — scaled by π at decode
	Omega    float64 // argument of perigee, rad — scaled by π at decode
	M0       float64 // mean anomaly at reference time, rad — scaled by π at decode
	DeltaN   float64 // mean motion correction, rad/s
	OmegaDot float64 // rate of right ascension, rad/s
	IDOT     float64 // rate of inclination, rad/s

	Crs, Crc float64 // orbit radius harmonic corrections, m
	Cuc, Cus float64 // argument-of-latitude harmonic corrections, rad
	Cic, Cis float64 // inclination harmonic corrections, rad

	Af0, Af1, Af2 float64 // clock correction polynomial, s / s/s / s/s²
	TGD           float64 // group delay differential, s
}

// eccentricityScale converts the broadcast binary-scaled integer
// eccentricity to a unitless value (spec §4.2).
const eccentricityScale = 1.0 / 8589934592.0 // 2^-33

// DecodeEphemeris decodes an RTCM 1019 line into an Ephemeris record.
// Every field absent from the line is left at its zero value; the caller
// is responsible for treating an all-zero record as unusable.
func DecodeEphemeris(line string) Ephemeris {
	var e Ephemeris

	setInt(&e.PRN, line, "DF009")
	setInt(&e.Week, line, "DF076")
	setInt(&e.URA, line, "DF077")
	setInt(&e.CodeOnL2, line, "DF078")
	setFloat(&e.IDOT, line, "DF079")
	setInt(&e.IODE, line, "DF071")
	setFloat(&e.Toc, line, "DF081")
	setFloat(&e.Af2, line, "DF082")
	setFloat(&e.Af1, line, "DF083")
	setFloat(&e.Af0, line, "DF084")
	setInt(&e.IODC, line, "DF085")
	setFloat(&e.Crs, line, "DF086")
	setFloat(&e.DeltaN, line, "DF087")
	setFloat(&e.M0, line, "DF088")
	setFloat(&e.Cuc, line, "DF089")
	setFloat(&e.Ecc, line, "DF090")
	setFloat(&e.Cus, line, "DF091")
	setFloat(&e.SqrtA, line, "DF092")
	setFloat(&e.Toe, line, "DF093")
	setFloat(&e.Cic, line, "DF094")
	setFloat(&e.Omega0, line, "DF095")
	setFloat(&e.Cis, line, "DF096")
	setFloat(&e.I0, line, "DF097")
	setFloat(&e.Crc, line, "DF098")
	setFloat(&e.Omega, line, "DF099")
	setFloat(&e.OmegaDot, line, "DF100")
	setFloat(&e.TGD, line, "DF101")
	setInt(&e.SVHealth, line, "DF102")
	setInt(&e.L2PFlag, line, "DF103")
	setInt(&e.FitInterval, line, "DF137")

	// Angular fields arrive scaled by π (semicircles -> radians); the
	// eccentricity arrives as a binary-scaled integer; A is derived from
	// sqrt(A). A decoder must never skip these — the propagator's
	// correctness depends on them (spec §4.2).
	e.M0 *= math.Pi
	e.Omega0 *= math.Pi
	e.I0 *= math.Pi
	e.Omega *= math.Pi
	e.Ecc *= eccentricityScale
	e.A = e.SqrtA * e.SqrtA

	return e
}
