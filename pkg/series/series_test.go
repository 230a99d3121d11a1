package series

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/adedolapo/gnssl1/pkg/history"
	"github.com/adedolapo/gnssl1/pkg/rtcm"
)

func newTestStore() *history.Store {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return history.NewStore(logger)
}

func TestBuildSelectsLargestToeNotExceedingTObs(t *testing.T) {
	s := newTestStore()
	s.StoreEphemeris(rtcm.Ephemeris{PRN: 5, Toe: 100, IODE: 1})
	s.StoreEphemeris(rtcm.Ephemeris{PRN: 5, Toe: 200, IODE: 2})
	s.StoreEphemeris(rtcm.Ephemeris{PRN: 5, Toe: 50, IODE: 3})
	s.StoreMSM4(rtcm.Msm4Message{ObsTimeMs: 150, Cells: []rtcm.Msm4Cell{{PRN: 5, Pseudorange: 123}}})

	ser := Build(s, 5)
	if len(ser.Samples) != 1 {
		t.Fatalf("len(Samples) = %d, want 1", len(ser.Samples))
	}
	sample := ser.Samples[0]
	if !sample.HasEph {
		t.Fatalf("HasEph = false, want true")
	}
	if sample.Eph.IODE != 1 {
		t.Fatalf("selected IODE = %d, want 1 (TOE=100 is largest <= 150)", sample.Eph.IODE)
	}
}

func TestBuildNoEphemerisSatisfiesBound(t *testing.T) {
	s := newTestStore()
	s.StoreEphemeris(rtcm.Ephemeris{PRN: 5, Toe: 200})
	s.StoreMSM4(rtcm.Msm4Message{ObsTimeMs: 100, Cells: []rtcm.Msm4Cell{{PRN: 5, Pseudorange: 123}}})

	ser := Build(s, 5)
	if ser.Samples[0].HasEph {
		t.Fatalf("HasEph = true, want false (no ephemeris with TOE <= 100)")
	}
}

func TestBuildTieBreaksFirstArrived(t *testing.T) {
	s := newTestStore()
	s.StoreEphemeris(rtcm.Ephemeris{PRN: 5, Toe: 100, IODE: 11})
	s.StoreEphemeris(rtcm.Ephemeris{PRN: 5, Toe: 100, IODE: 22})
	s.StoreMSM4(rtcm.Msm4Message{ObsTimeMs: 150, Cells: []rtcm.Msm4Cell{{PRN: 5, Pseudorange: 1}}})

	ser := Build(s, 5)
	if ser.Samples[0].Eph.IODE != 11 {
		t.Fatalf("selected IODE = %d, want 11 (first arrived at tied TOE)", ser.Samples[0].Eph.IODE)
	}
}

func TestEphemerisOnlyDedupsByToe(t *testing.T) {
	s := newTestStore()
	s.StoreEphemeris(rtcm.Ephemeris{PRN: 5, Toe: 100})
	s.StoreEphemeris(rtcm.Ephemeris{PRN: 5, Toe: 100})
	s.StoreEphemeris(rtcm.Ephemeris{PRN: 5, Toe: 200})

	got := EphemerisOnly(s, 5)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestNormalizesMillisecondObservationTime(t *testing.T) {
	s := newTestStore()
	s.StoreEphemeris(rtcm.Ephemeris{PRN: 1, Toe: 100})
	s.StoreMSM4(rtcm.Msm4Message{ObsTimeMs: 159000000, Cells: []rtcm.Msm4Cell{{PRN: 1, Pseudorange: 1}}})

	ser := Build(s, 1)
	if ser.Samples[0].TObs != 159000.0 {
		t.Fatalf("TObs = %v, want 159000.0", ser.Samples[0].TObs)
	}
}
