package rtcm

import (
	"errors"
	"fmt"
	"strings"
)

// Message type constants this engine understands (spec §6).
const (
	MsgTypeLegacy1002   = 1002
	MsgTypeEphemeris1019 = 1019
	MsgTypeMSM4_1074    = 1074
)

// ErrUnsupportedMessage is returned by Decode for any DF002 value this
// engine does not implement. The pipeline driver treats it as a non-fatal
// skip (spec §7).
var ErrUnsupportedMessage = errors.New("rtcm: unsupported message type")

// ErrMissingType is returned when a line carries no DF002 field at all.
var ErrMissingType = errors.New("rtcm: missing DF002")

// Decoded is the tagged union of the three message kinds Decode can
// produce.
type Decoded struct {
	Type      int
	Ephemeris *Ephemeris
	MSM4      *Msm4Message
	Legacy    *LegacyMessage
}

// SkipLine reports whether line should be ignored outright: blank,
// whitespace, or a comment (spec §6).
func SkipLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

// Decode dispatches a tokenized RTCM line on its DF002 message type and
// decodes it into the appropriate record. Unsupported types return
// ErrUnsupportedMessage; this is not fatal to the pipeline.
func Decode(line string) (Decoded, error) {
	msgType, ok := fieldInt(line, "DF002")
	if !ok {
		return Decoded{}, ErrMissingType
	}

	switch msgType {
	case MsgTypeEphemeris1019:
		e := DecodeEphemeris(line)
		return Decoded{Type: msgType, Ephemeris: &e}, nil
	case MsgTypeMSM4_1074:
		m := DecodeMSM4(line)
		return Decoded{Type: msgType, MSM4: &m}, nil
	case MsgTypeLegacy1002:
		l := DecodeLegacy(line)
		return Decoded{Type: msgType, Legacy: &l}, nil
	default:
		return Decoded{Type: msgType}, fmt.Errorf("%w: type %d", ErrUnsupportedMessage, msgType)
	}
}
