// Package rtcm decodes pre-tokenized RTCM-3 message lines (one message per
// text line, fields rendered as "DFxxx=value") into the ephemeris and
// observation records the rest of the positioning pipeline consumes.
//
// The package never reads a byte stream or frames a message off the wire;
// that belongs to an external collaborator (see spec §1/§6). It only ever
// scans an already-tokenized line for named fields.
package rtcm

import (
	"fmt"
	"strconv"
	"strings"
)

// fieldIndex returns the offset just past "key=" in line, or false if the
// field is not present. A missing field is not an error: callers leave the
// destination at its zero value, per §4.1.
func fieldIndex(line, key string) (int, bool) {
	token := key + "="
	idx := strings.Index(line, token)
	if idx < 0 {
		return 0, false
	}
	return idx + len(token), true
}

// fieldString extracts the raw text of a field, stopping at the next comma
// or closing paren (the line grammar in §6 separates fields with ", " and
// wraps the whole message in "<RTCM(...)>").
func fieldString(line, key string) (string, bool) {
	start, ok := fieldIndex(line, key)
	if !ok {
		return "", false
	}
	rest := line[start:]
	end := strings.IndexAny(rest, ",)")
	if end < 0 {
		end = len(rest)
	}
	return strings.TrimSpace(rest[:end]), true
}

// fieldFloat extracts a field as float64.
func fieldFloat(line, key string) (float64, bool) {
	s, ok := fieldString(line, key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// fieldInt extracts a field as int, tolerating a float-formatted token
// ("5" or "5.0").
func fieldInt(line, key string) (int, bool) {
	v, ok := fieldFloat(line, key)
	if !ok {
		return 0, false
	}
	return int(v), true
}

// setFloat assigns *dst only when key is present in line.
func setFloat(dst *float64, line, key string) {
	if v, ok := fieldFloat(line, key); ok {
		*dst = v
	}
}

// setInt assigns *dst only when key is present in line.
func setInt(dst *int, line, key string) {
	if v, ok := fieldInt(line, key); ok {
		*dst = v
	}
}

// setString assigns *dst only when key is present in line.
func setString(dst *string, line, key string) {
	if v, ok := fieldString(line, key); ok {
		*dst = v
	}
}

// indexedKey builds a per-cell field name such as "DF400_3".
func indexedKey(base string, i int) string {
	return fmt.Sprintf("%s_%d", base, i)
}
