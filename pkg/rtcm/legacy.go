package rtcm

// clightPerMs is the speed of light scaled to meters per millisecond, used
// to recompose the legacy 1002 pseudorange from its rough-range ambiguity.
const clightPerMs = clight / 1000.0

// LegacyCell is one satellite's decoded observation from an RTCM 1002
// (GPS L1-only RTK observables) message.
type LegacyCell struct {
	PRN           int
	Pseudorange   float64 // m
	LockTime      int     // DF013
	CNR           float64 // DF015
	PhaseDiff     float64 // DF012, phase-pseudorange difference, m
}

// LegacyMessage is the decoded content of an RTCM 1002 line.
type LegacyMessage struct {
	ObsTimeMs float64 // DF004, ms of GPS week
	Cells     []LegacyCell
}

// maxLegacyCells bounds the per-message satellite scan.
const maxLegacyCells = 32

// DecodeLegacy decodes an RTCM 1002 line: per-satellite ambiguity (DF014)
// and remainder (DF011) combine into a full pseudorange (spec §3); the
// phase-pseudorange difference (DF012) is stored separately in PhaseDiff.
func DecodeLegacy(line string) LegacyMessage {
	var msg LegacyMessage
	setFloat(&msg.ObsTimeMs, line, "DF004")

	for i := 1; i <= maxLegacyCells; i++ {
		prn, ok := fieldInt(line, indexedKey("DF009", i))
		if !ok {
			continue
		}

		var cell LegacyCell
		cell.PRN = prn

		ambiguityMs, hasAmbig := fieldFloat(line, indexedKey("DF014", i))
		remainder, hasRemainder := fieldFloat(line, indexedKey("DF011", i))
		if hasAmbig && hasRemainder {
			cell.Pseudorange = ambiguityMs*clightPerMs + remainder
		} else {
			cell.Pseudorange = -1.0
		}

		setFloat(&cell.PhaseDiff, line, indexedKey("DF012", i))
		setInt(&cell.LockTime, line, indexedKey("DF013", i))
		setFloat(&cell.CNR, line, indexedKey("DF015", i))

		msg.Cells = append(msg.Cells, cell)
	}

	return msg
}
