/*
Package rtcm decodes the three RTCM-3 message types this positioning engine
understands:

  - 1019: GPS ephemeris — broadcast Keplerian elements for one PRN.
  - 1074: MSM4 observations — full pseudoranges for GPS, filtered to the
    L1 C/A ("1C") signal.
  - 1002: legacy GPS L1-only observations.

Every other DF002 message type is unsupported and reported through
ErrUnsupportedMessage; the caller (pkg/pipeline) treats that as a non-fatal
skip per the error taxonomy in spec §7.

Decoding works directly on the tokenized line, never on a byte stream: the
field extractor in field.go locates "DFxxx=" substrings and parses the
value that follows. Angular-unit scaling (the ×π corrections and the
eccentricity/semi-major-axis scaling) is centralized in ephemeris.go and
applied nowhere else, per the design notes in spec §9.
*/
package rtcm
