package markethours

import (
	"testing"
	"time"
)

func ist(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, IST)
}

func TestIsTradingDay(t *testing.T) {
	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"regular weekday", ist(2026, time.March, 4), true}, // Wednesday
		{"saturday", ist(2026, time.March, 7), false},
		{"sunday", ist(2026, time.March, 8), false},
		{"republic day", ist(2026, time.January, 26), false},
		{"christmas", ist(2026, time.December, 25), false},
		{"day after holiday", ist(2026, time.January, 27), true},
	}
	for _, c := range cases {
		if got := IsTradingDay(c.t); got != c.want {
			t.Errorf("%s (%s): IsTradingDay=%v, want %v", c.name, c.t.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestIsTradingDay_ConvertsToIST(t *testing.T) {
	// Friday 20:00 UTC is already Saturday 01:30 IST.
	utcEvening := time.Date(2026, time.March, 6, 20, 0, 0, 0, time.UTC)
	if IsTradingDay(utcEvening) {
		t.Error("Friday evening UTC is Saturday in IST, not a trading day")
	}
}

func TestNextTradingDay_SkipsWeekend(t *testing.T) {
	// Friday 2026-03-06 → Monday 2026-03-09.
	next := NextTradingDay(ist(2026, time.March, 6))
	if next.Format("2006-01-02") != "2026-03-09" {
		t.Errorf("expected Monday 2026-03-09, got %s", next.Format("2006-01-02"))
	}
}

func TestNextTradingDay_SkipsHoliday(t *testing.T) {
	// Friday 2026-01-23 → weekend → Mon 26th is Republic Day → Tue 27th.
	next := NextTradingDay(ist(2026, time.January, 23))
	if next.Format("2006-01-02") != "2026-01-27" {
		t.Errorf("expected 2026-01-27, got %s", next.Format("2006-01-02"))
	}
}
