package domain_test

import (
	"testing"
	"time"

	"github.com/weekendsync/availability-api/internal/domain"
)

func TestMakeDateKey_ZeroPadsAndRoundTrips(t *testing.T) {
	t.Parallel()

	key := domain.MakeDateKey(2025, 5, 9) // month0=5 -> June
	if key != "2025-06-09" {
		t.Fatalf("key=%q, want 2025-06-09", key)
	}

	y, m0, d, err := key.Parse()
	if err != nil {
		t.Fatalf("Parse() err=%v", err)
	}
	if y != 2025 || m0 != 5 || d != 9 {
		t.Fatalf("Parse()=(%d,%d,%d), want (2025,5,9)", y, m0, d)
	}
}

func TestDateKey_RoundTripAcrossMonthLengths(t *testing.T) {
	t.Parallel()

	daysIn := func(year, month0 int) int {
		return time.Date(year, time.Month(month0+2), 0, 0, 0, 0, 0, time.UTC).Day()
	}

	for _, year := range []int{2024, 2025} { // leap and non-leap
		for m0 := 0; m0 < 12; m0++ {
			for day := 1; day <= daysIn(year, m0); day++ {
				key := domain.MakeDateKey(year, m0, day)
				gy, gm0, gd, err := key.Parse()
				if err != nil {
					t.Fatalf("Parse(%q) err=%v", key, err)
				}
				if gy != year || gm0 != m0 || gd != day {
					t.Fatalf("round-trip %q = (%d,%d,%d), want (%d,%d,%d)", key, gy, gm0, gd, year, m0, day)
				}
			}
		}
	}
}

func TestDateKey_LexicographicOrderIsCalendarOrder(t *testing.T) {
	t.Parallel()

	prev := domain.MakeDateKey(2025, 0, 1)
	for i := 0; i < 400; i++ {
		next := prev.Next()
		if !(prev < next) {
			t.Fatalf("%q should sort before %q", prev, next)
		}
		prev = next
	}
}

func TestDateKey_IsPast(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)

	if domain.DateKey("2025-06-15").IsPast(now) {
		t.Fatalf("today should not be past")
	}
	if !domain.DateKey("2025-06-14").IsPast(now) {
		t.Fatalf("yesterday should be past")
	}
	if domain.DateKey("2025-06-16").IsPast(now) {
		t.Fatalf("tomorrow should not be past")
	}

	// Monotonic: walking backwards from a past date stays past.
	key := domain.DateKey("2025-06-14")
	for i := 0; i < 30; i++ {
		if !key.IsPast(now) {
			t.Fatalf("%q should be past", key)
		}
		ts, err := key.Time()
		if err != nil {
			t.Fatalf("Time(%q) err=%v", key, err)
		}
		key = domain.DateKeyFromTime(ts.AddDate(0, 0, -1))
	}
}

func TestDateKey_NextCrossesMonthAndYear(t *testing.T) {
	t.Parallel()

	cases := map[domain.DateKey]domain.DateKey{
		"2025-06-30": "2025-07-01",
		"2025-12-31": "2026-01-01",
		"2024-02-28": "2024-02-29", // leap year
		"2025-02-28": "2025-03-01",
	}
	for in, want := range cases {
		if got := in.Next(); got != want {
			t.Fatalf("Next(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestDateKeysInRange_InclusiveBothEnds(t *testing.T) {
	t.Parallel()

	got := domain.DateKeysInRange("2025-06-29", "2025-07-02")
	want := []domain.DateKey{"2025-06-29", "2025-06-30", "2025-07-01", "2025-07-02"}
	if len(got) != len(want) {
		t.Fatalf("len=%d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d]=%q, want %q", i, got[i], want[i])
		}
	}

	if one := domain.DateKeysInRange("2025-06-10", "2025-06-10"); len(one) != 1 || one[0] != "2025-06-10" {
		t.Fatalf("single-day range=%v", one)
	}
	if rev := domain.DateKeysInRange("2025-06-11", "2025-06-10"); rev != nil {
		t.Fatalf("reversed range should be nil, got %v", rev)
	}
}

func TestDateKey_Valid(t *testing.T) {
	t.Parallel()

	for _, ok := range []domain.DateKey{"2025-01-01", "2024-02-29"} {
		if !ok.Valid() {
			t.Fatalf("%q should be valid", ok)
		}
	}
	for _, bad := range []domain.DateKey{"2025-1-1", "2025-02-30", "junk", ""} {
		if bad.Valid() {
			t.Fatalf("%q should be invalid", bad)
		}
	}
}
