package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ===== Error model (employees/checkin と同型) =====
type Code string

// 集計は照会のみで、404を返す経路がない（削除済み識別子もゼロ埋めで返す）。
const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string     { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError { return &APIError{Code: CodeInvalidArgument, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		default:
			return 500
		}
	}
	return 500
}

// ===== Service =====

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// レコードの読み取り面。MySQL実装は Store。
type recordStore interface {
	ListMonth(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
	List(ctx context.Context, q ListQuery) ([]Attendance, int64, error)
	DashboardCounts(ctx context.Context, dayStart, dayEnd, weekStart time.Time) (total, today, weekly int64, err error)
}

// 集計は読み取り専用。レコードの書き込みは checkin 側のみが行う。
type Service struct {
	store recordStore
	clock Clock
}

func NewService(conn *sql.DB) *Service {
	return &Service{store: NewStore(conn), clock: realClock{}}
}

func clampLimit(n int) int {
	if n <= 0 {
		return DefaultPageLimit
	}
	if n > MaxPageLimit {
		return MaxPageLimit
	}
	return n
}

// Monthly: 指定社員の月次レコードと統計。month/year が 0 なら現在時刻（Clock）の月。
// 社員の実在は確認しない（削除済み社員の過去分も識別子で照会できる）。
func (s *Service) Monthly(ctx context.Context, employeeID string, month, year int) (MonthlyResponse, error) {
	if employeeID == "" {
		return MonthlyResponse{}, ErrInvalid("employee_id is required")
	}
	now := s.clock.Now().UTC()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return MonthlyResponse{}, ErrInvalid("month must be 1-12")
	}
	if year < 2000 || year > 2100 {
		return MonthlyResponse{}, ErrInvalid("year is out of range")
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	recs, err := s.store.ListMonth(ctx, employeeID, from, to)
	if err != nil {
		return MonthlyResponse{}, err
	}

	// 同日複数打刻は1日に畳む
	seen := make(map[string]struct{})
	dates := make([]string, 0, len(recs))
	records := make([]RecordResponse, 0, len(recs))
	for i := range recs {
		dto := recs[i].toDTO()
		records = append(records, dto)
		if _, ok := seen[dto.Date]; !ok {
			seen[dto.Date] = struct{}{}
			dates = append(dates, dto.Date)
		}
	}

	return MonthlyResponse{
		Month:      month,
		Year:       year,
		Records:    records,
		Statistics: buildStatistics(year, time.Month(month), dates),
	}, nil
}

// AdminList: 全社員のレコード一覧（新しい順、ページング）
func (s *Service) AdminList(ctx context.Context, q ListQuery) ([]RecordResponse, int64, error) {
	q.Limit = clampLimit(q.Limit)

	rows, total, err := s.store.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	out := make([]RecordResponse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDTO())
	}
	return out, total, nil
}

// Dashboard: 管理画面のサマリ（当日出勤・出勤率・週間合計）
func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	now := s.clock.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekStart := dayStart.AddDate(0, 0, -6)

	total, today, weekly, err := s.store.DashboardCounts(ctx, dayStart, dayEnd, weekStart)
	if err != nil {
		return DashboardStats{}, err
	}

	rate := 0.0
	if total > 0 {
		rate = roundTo2(float64(today) / float64(total) * 100)
	}

	return DashboardStats{
		TotalEmployees:      total,
		TodayAttendance:     today,
		AttendanceRateToday: rate,
		WeeklyAttendance:    weekly,
	}, nil
}
