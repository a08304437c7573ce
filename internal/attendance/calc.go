package attendance

import (
	"math"
	"time"
)

// 週末の定義。二日週末が既定（変更する場合はここだけ触る）。
var weekend = map[time.Weekday]bool{
	time.Saturday: true,
	time.Sunday:   true,
}

// monthLength: その月の暦日数。当月でも満了日数を返す（経過日数ではない）。
func monthLength(year int, month time.Month) int {
	// 翌月0日 = 当月末日
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func workingDayCount(year int, month time.Month) int {
	n := 0
	last := monthLength(year, month)
	for d := 1; d <= last; d++ {
		if !weekend[time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Weekday()] {
			n++
		}
	}
	return n
}

// buildStatistics: presentDates は "YYYY-MM-DD"。同日重複は1日に畳む。
// 出勤日は平日のみ数える。週末打刻は分子に入れない（分母が平日数のため、
// present_days <= working_days を常に保つ）。
func buildStatistics(year int, month time.Month, presentDates []string) Statistics {
	total := monthLength(year, month)
	working := workingDayCount(year, month)

	seen := make(map[string]struct{}, len(presentDates))
	present := 0
	for _, ds := range presentDates {
		if _, dup := seen[ds]; dup {
			continue
		}
		seen[ds] = struct{}{}

		d, err := time.ParseInLocation(DateLayout, ds, time.UTC)
		if err != nil {
			continue
		}
		if d.Year() != year || d.Month() != month {
			continue
		}
		if weekend[d.Weekday()] {
			continue
		}
		present++
	}
	if present > working {
		present = working
	}

	pct := 0.0
	if working > 0 {
		pct = roundTo2(float64(present) / float64(working) * 100)
	}

	return Statistics{
		TotalDays:            total,
		PresentDays:          present,
		WorkingDays:          working,
		AttendancePercentage: pct,
	}
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
