// Package gtime provides GPS time-of-week bookkeeping for the positioning
// pipeline: converting between a whole-seconds/fraction time pair and the
// (week, seconds-of-week) representation ephemerides and observations are
// keyed by.
package gtime

import "fmt"

// Gtime is a time represented as whole seconds since the GPS epoch plus a
// sub-second fraction, mirroring the split used throughout the teacher
// codebase's own time type.
type Gtime struct {
	Time int64   // whole seconds since GPS epoch (1980/1/6 00:00:00 UTC)
	Sec  float64 // fractional second [0,1)
}

const (
	// SecondsInWeek is the number of seconds in one GPS week.
	SecondsInWeek = 604800.0
	// GPSEpoch is the Unix time (s) of the GPS time origin.
	GPSEpoch = 315964800
)

// FromWeekTOW builds a Gtime from a GPS week number and seconds-of-week.
func FromWeekTOW(week int, tow float64) Gtime {
	total := float64(week)*SecondsInWeek + tow
	whole := int64(total)
	return Gtime{Time: whole, Sec: total - float64(whole)}
}

// TOW returns the GPS week and seconds-of-week for t.
func (t Gtime) TOW() (week int, tow float64) {
	total := float64(t.Time) + t.Sec
	week = int(total / SecondsInWeek)
	tow = total - float64(week)*SecondsInWeek
	return week, tow
}

// Diff returns t1-t2 in seconds.
func Diff(t1, t2 Gtime) float64 {
	return float64(t1.Time-t2.Time) + (t1.Sec - t2.Sec)
}

// Add returns t shifted by sec seconds, renormalizing the fraction.
func Add(t Gtime, sec float64) Gtime {
	s := t.Sec + sec
	whole := t.Time
	if s >= 1.0 {
		shift := int64(s)
		whole += shift
		s -= float64(shift)
	} else if s < 0.0 {
		shift := int64(s) - 1
		whole += shift
		s -= float64(shift)
	}
	return Gtime{Time: whole, Sec: s}
}

// String renders t as "week:tow" for log fields.
func (t Gtime) String() string {
	week, tow := t.TOW()
	return fmt.Sprintf("%d:%09.3f", week, tow)
}

// NormalizeTOW interprets raw as milliseconds-of-week when it exceeds one
// week's worth of seconds, otherwise treats it as already seconds-of-week.
// The series builder applies it to every observation timestamp before the
// propagator sees it: observation timestamps sometimes arrive in
// milliseconds, ephemeris TOE/TOC always in seconds.
func NormalizeTOW(raw float64) float64 {
	if raw > SecondsInWeek {
		return raw / 1000.0
	}
	return raw
}
