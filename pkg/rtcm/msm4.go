package rtcm

import "math"

// clight is the speed of light in m/s, locked by external compatibility
// (spec §6). It must match exactly for pseudorange reconstruction to
// reproduce legacy outputs.
const clight = 299792458.0

// l1CASignal is the only signal ID this engine retains from an MSM4
// message (spec §3, invariant 2).
const l1CASignal = "1C"

// Msm4Cell is one retained (PRN, "1C") pseudorange observation from an
// RTCM 1074 message.
type Msm4Cell struct {
	PRN             int
	Pseudorange     float64 // m; -1.0 marks an incomplete/invalid cell
	PhaseResidual   float64 // DF401, cycles
	LockTime        int     // DF402
	CNR             float64 // DF403, dB-Hz
	HalfCycleAmbig  bool    // DF420
}

// Msm4Message is the decoded content of an RTCM 1074 message: the
// observation time shared by all cells, and the L1-only cell list.
type Msm4Message struct {
	ObsTimeMs float64 // DF004, ms of GPS week
	Cells     []Msm4Cell
	NCell     int // rewritten to the L1-only count, per spec §4.2
}

// maxMsmCells bounds the per-message cell scan; RTCM MSM messages carry at
// most 64 satellites × 32 signals, but in practice far fewer cells are
// ever populated in a single-frequency log.
const maxMsmCells = 128

// DecodeMSM4 decodes an RTCM 1074 line. It makes two passes over the cell
// list exactly as spec §4.2 describes: first to find the cells whose
// signal is "1C", then to harvest DF400-DF403/DF420 for those cells in
// filtered order.
func DecodeMSM4(line string) Msm4Message {
	var msg Msm4Message
	setFloat(&msg.ObsTimeMs, line, "DF004")

	var kept []int
	for i := 1; i <= maxMsmCells; i++ {
		sig, ok := fieldString(line, indexedKey("CELLSIG", i))
		if !ok {
			continue
		}
		if sig == l1CASignal {
			kept = append(kept, i)
		}
	}

	msg.Cells = make([]Msm4Cell, 0, len(kept))
	for _, i := range kept {
		var cell Msm4Cell
		setInt(&cell.PRN, line, indexedKey("PRN", i))

		intMs, hasInt := fieldFloat(line, indexedKey("DF397", i))
		mod1s, hasMod := fieldFloat(line, indexedKey("DF398", i))
		fine, hasFine := fieldFloat(line, indexedKey("DF400", i))

		if hasInt && hasMod && hasFine {
			cell.Pseudorange = clight*(intMs*1e-3) + mod1s + fine
		} else {
			cell.Pseudorange = -1.0
		}

		setFloat(&cell.PhaseResidual, line, indexedKey("DF401", i))
		setInt(&cell.LockTime, line, indexedKey("DF402", i))
		setFloat(&cell.CNR, line, indexedKey("DF403", i))

		var halfCycle int
		setInt(&halfCycle, line, indexedKey("DF420", i))
		cell.HalfCycleAmbig = halfCycle != 0

		if math.IsNaN(cell.Pseudorange) || math.IsInf(cell.Pseudorange, 0) {
			cell.Pseudorange = -1.0
		}

		msg.Cells = append(msg.Cells, cell)
	}

	msg.NCell = len(msg.Cells)
	return msg
}
