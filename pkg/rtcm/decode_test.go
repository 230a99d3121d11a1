package rtcm

import (
	"errors"
	"testing"
)

func TestDecodeDispatch(t *testing.T) {
	cases := []struct {
		line string
		want int
	}{
		{"<RTCM(1019, DF002=1019, DF009=5)>", MsgTypeEphemeris1019},
		{"<RTCM(1074, DF002=1074, DF004=1)>", MsgTypeMSM4_1074},
		{"<RTCM(1002, DF002=1002, DF004=1)>", MsgTypeLegacy1002},
	}
	for _, c := range cases {
		d, err := Decode(c.line)
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", c.line, err)
		}
		if d.Type != c.want {
			t.Fatalf("Decode(%q).Type = %d, want %d", c.line, d.Type, c.want)
		}
	}
}

func TestDecodeUnsupportedType(t *testing.T) {
	_, err := Decode("<RTCM(1005, DF002=1005)>")
	if !errors.Is(err, ErrUnsupportedMessage) {
		t.Fatalf("err = %v, want ErrUnsupportedMessage", err)
	}
}

func TestDecodeMissingType(t *testing.T) {
	_, err := Decode("<RTCM(???, no type here)>")
	if !errors.Is(err, ErrMissingType) {
		t.Fatalf("err = %v, want ErrMissingType", err)
	}
}

func TestSkipLine(t *testing.T) {
	for _, l := range []string{"", "   ", "# a comment"} {
		if !SkipLine(l) {
			t.Errorf("SkipLine(%q) = false, want true", l)
		}
	}
	if SkipLine("<RTCM(1019, DF002=1019)>") {
		t.Errorf("SkipLine matched a real message line")
	}
}
