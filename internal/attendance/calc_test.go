package attendance

import (
	"testing"
	"time"
)

func TestMonthLength(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29}, // うるう年
		{2023, time.February, 28},
		{2024, time.January, 31},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, c := range cases {
		if got := monthLength(c.year, c.month); got != c.want {
			t.Errorf("monthLength(%d, %v) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}

func TestWorkingDayCountFebruary2024(t *testing.T) {
	// 2024年2月: 29日中、土日が8日 → 平日21日
	if got := workingDayCount(2024, time.February); got != 21 {
		t.Errorf("workingDayCount = %d, want 21", got)
	}
}

func TestBuildStatisticsFebruary2024(t *testing.T) {
	dates := []string{
		"2024-02-01", "2024-02-02", "2024-02-05", "2024-02-06",
		"2024-02-07", "2024-02-08", "2024-02-09", "2024-02-12",
		"2024-02-13", "2024-02-14",
	}
	s := buildStatistics(2024, time.February, dates)

	if s.TotalDays != 29 {
		t.Errorf("TotalDays = %d, want 29", s.TotalDays)
	}
	if s.WorkingDays != 21 {
		t.Errorf("WorkingDays = %d, want 21", s.WorkingDays)
	}
	if s.PresentDays != 10 {
		t.Errorf("PresentDays = %d, want 10", s.PresentDays)
	}
	// 10/21*100 = 47.619... → 47.62
	if s.AttendancePercentage != 47.62 {
		t.Errorf("AttendancePercentage = %v, want 47.62", s.AttendancePercentage)
	}
}

func TestBuildStatisticsCollapsesSameDayDuplicates(t *testing.T) {
	// 同日複数打刻（同時スキャン含む）は1日として数える
	dates := []string{"2024-02-05", "2024-02-05", "2024-02-05"}
	s := buildStatistics(2024, time.February, dates)
	if s.PresentDays != 1 {
		t.Errorf("PresentDays = %d, want 1", s.PresentDays)
	}
}

func TestBuildStatisticsIgnoresWeekendAndOutOfMonth(t *testing.T) {
	dates := []string{
		"2024-02-03", // 土
		"2024-02-04", // 日
		"2024-01-31", // 前月
		"2024-03-01", // 翌月
		"bogus",
	}
	s := buildStatistics(2024, time.February, dates)
	if s.PresentDays != 0 {
		t.Errorf("PresentDays = %d, want 0", s.PresentDays)
	}
	if s.AttendancePercentage != 0 {
		t.Errorf("AttendancePercentage = %v, want 0", s.AttendancePercentage)
	}
}

func TestBuildStatisticsEmptyRecordSet(t *testing.T) {
	// 削除済み・未登録の識別子でも統計はゼロ埋めで返る（NotFoundにしない）
	s := buildStatistics(2024, time.June, nil)
	if s.PresentDays != 0 || s.AttendancePercentage != 0 {
		t.Errorf("expected zero statistics, got %+v", s)
	}
	if s.TotalDays != 30 || s.WorkingDays != 20 {
		t.Errorf("unexpected calendar for June 2024: %+v", s)
	}
}

func TestBuildStatisticsBounds(t *testing.T) {
	// 全ての月で present <= working <= total, 0 <= pct <= 100
	allDates := func(year int, month time.Month) []string {
		var out []string
		for d := 1; d <= monthLength(year, month); d++ {
			out = append(out, time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Format(DateLayout))
		}
		return out
	}

	for year := 2023; year <= 2025; year++ {
		for m := time.January; m <= time.December; m++ {
			s := buildStatistics(year, m, allDates(year, m))
			if s.PresentDays > s.WorkingDays {
				t.Errorf("%d-%v: present %d > working %d", year, m, s.PresentDays, s.WorkingDays)
			}
			if s.WorkingDays > s.TotalDays {
				t.Errorf("%d-%v: working %d > total %d", year, m, s.WorkingDays, s.TotalDays)
			}
			if s.AttendancePercentage < 0 || s.AttendancePercentage > 100 {
				t.Errorf("%d-%v: percentage out of range: %v", year, m, s.AttendancePercentage)
			}
			// 全平日出勤なら100%
			if s.AttendancePercentage != 100 {
				t.Errorf("%d-%v: full month should be 100%%, got %v", year, m, s.AttendancePercentage)
			}
		}
	}
}
