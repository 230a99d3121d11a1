package rtcm

import "testing"

func TestFieldString(t *testing.T) {
	line := "<RTCM(1019, DF002=1019, DF009=5, DF088=0.5)>"
	v, ok := fieldString(line, "DF009")
	if !ok || v != "5" {
		t.Fatalf("fieldString(DF009) = %q, %v", v, ok)
	}
	_, ok = fieldString(line, "DF999")
	if ok {
		t.Fatalf("fieldString(DF999) found a field that isn't there")
	}
}

func TestSetFloatLeavesZeroWhenAbsent(t *testing.T) {
	var x float64 = 0
	setFloat(&x, "<RTCM(1019, DF002=1019)>", "DF088")
	if x != 0 {
		t.Fatalf("x = %v, want unchanged 0", x)
	}
}

func TestIndexedKey(t *testing.T) {
	if got := indexedKey("DF400", 3); got != "DF400_3" {
		t.Fatalf("indexedKey = %q", got)
	}
}
