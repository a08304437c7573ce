package attendance

import (
	"context"
	"testing"
	"time"
)

type fakeStore struct {
	records []Attendance
	total   int64
	counts  struct{ total, today, weekly int64 }

	lastList *ListQuery
}

func (f *fakeStore) ListMonth(_ context.Context, employeeID string, from, to time.Time) ([]Attendance, error) {
	var out []Attendance
	for _, r := range f.records {
		if r.EmployeeID != employeeID {
			continue
		}
		if r.CheckInTime.Before(from) || !r.CheckInTime.Before(to) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) List(_ context.Context, q ListQuery) ([]Attendance, int64, error) {
	f.lastList = &q
	return f.records, f.total, nil
}

func (f *fakeStore) DashboardCounts(_ context.Context, _, _, _ time.Time) (int64, int64, int64, error) {
	return f.counts.total, f.counts.today, f.counts.weekly, nil
}

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestMonthlyKeepsRecordsWithoutPrincipal(t *testing.T) {
	// 社員行が削除済みでも、残っているレコードは識別子でそのまま照会できる。
	// name はレコード側のスナップショットから出る（principal参照なし）。
	fake := &fakeStore{records: []Attendance{
		{RecordID: "01A", EmployeeID: "EMP404", Name: "Taro Yamada", CheckInTime: at("2024-02-05T09:00:00Z"), Method: "qr_only"},
		{RecordID: "01B", EmployeeID: "EMP404", Name: "Taro Yamada", CheckInTime: at("2024-02-06T09:05:00Z"), Method: "qr_only"},
	}}
	svc := &Service{store: fake, clock: realClock{}}

	res, err := svc.Monthly(context.Background(), "EMP404", 2, 2024)
	if err != nil {
		t.Fatalf("Monthly failed: %v", err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(res.Records))
	}
	if res.Records[0].Name != "Taro Yamada" {
		t.Errorf("name = %q, want snapshot name", res.Records[0].Name)
	}
	if res.Statistics.PresentDays != 2 {
		t.Errorf("PresentDays = %d, want 2", res.Statistics.PresentDays)
	}
	// 2/21*100 = 9.523... → 9.52
	if res.Statistics.AttendancePercentage != 9.52 {
		t.Errorf("AttendancePercentage = %v, want 9.52", res.Statistics.AttendancePercentage)
	}
}

func TestMonthlyDefaultsPeriodFromClock(t *testing.T) {
	fake := &fakeStore{}
	svc := &Service{store: fake, clock: fakeClock{t: at("2024-06-15T12:00:00Z")}}

	res, err := svc.Monthly(context.Background(), "EMP001", 0, 0)
	if err != nil {
		t.Fatalf("Monthly failed: %v", err)
	}
	if res.Month != 6 || res.Year != 2024 {
		t.Errorf("period = %d/%d, want 6/2024", res.Month, res.Year)
	}
}

func TestMonthlyRejectsBadPeriod(t *testing.T) {
	svc := &Service{store: &fakeStore{}, clock: realClock{}}

	if _, err := svc.Monthly(context.Background(), "EMP001", 13, 2024); err == nil {
		t.Error("month 13 should fail")
	}
	if _, err := svc.Monthly(context.Background(), "EMP001", 2, 1999); err == nil {
		t.Error("year 1999 should fail")
	}
	if _, err := svc.Monthly(context.Background(), "", 2, 2024); err == nil {
		t.Error("empty employee_id should fail")
	}
}

func TestAdminListClampsLimit(t *testing.T) {
	fake := &fakeStore{total: 2000}
	svc := &Service{store: fake, clock: realClock{}}

	if _, _, err := svc.AdminList(context.Background(), ListQuery{Limit: 1000}); err != nil {
		t.Fatalf("AdminList failed: %v", err)
	}
	if fake.lastList.Limit != MaxPageLimit {
		t.Errorf("store saw limit %d, want %d", fake.lastList.Limit, MaxPageLimit)
	}

	if _, _, err := svc.AdminList(context.Background(), ListQuery{}); err != nil {
		t.Fatalf("AdminList failed: %v", err)
	}
	if fake.lastList.Limit != DefaultPageLimit {
		t.Errorf("store saw limit %d, want %d", fake.lastList.Limit, DefaultPageLimit)
	}
}

func TestDashboardRate(t *testing.T) {
	fake := &fakeStore{}
	fake.counts.total = 12
	fake.counts.today = 5
	fake.counts.weekly = 40
	svc := &Service{store: fake, clock: fakeClock{t: at("2024-06-15T12:00:00Z")}}

	res, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	// 5/12*100 = 41.666... → 41.67
	if res.AttendanceRateToday != 41.67 {
		t.Errorf("AttendanceRateToday = %v, want 41.67", res.AttendanceRateToday)
	}
	if res.TotalEmployees != 12 || res.TodayAttendance != 5 || res.WeeklyAttendance != 40 {
		t.Errorf("unexpected counts: %+v", res)
	}
}

func TestDashboardRateNoEmployees(t *testing.T) {
	svc := &Service{store: &fakeStore{}, clock: fakeClock{t: at("2024-06-15T12:00:00Z")}}

	res, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if res.AttendanceRateToday != 0 {
		t.Errorf("AttendanceRateToday = %v, want 0", res.AttendanceRateToday)
	}
}
