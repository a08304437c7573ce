package attendance

import "time"

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
	DateLayout       = "2006-01-02"
)

// フロントは _id / employee_id / name / check_in_time / verification_method に直接バインドする
type RecordResponse struct {
	ID                 string    `json:"_id"`
	EmployeeID         string    `json:"employee_id"`
	Name               string    `json:"name"`
	CheckInTime        time.Time `json:"check_in_time"`
	VerificationMethod string    `json:"verification_method"`
	Date               string    `json:"date"`
}

// Statistics: 保存しない派生値。照会時点のレコード集合から毎回計算する。
type Statistics struct {
	TotalDays            int     `json:"total_days"`
	PresentDays          int     `json:"present_days"`
	WorkingDays          int     `json:"working_days"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

type MonthlyResponse struct {
	Month      int              `json:"month"`
	Year       int              `json:"year"`
	Records    []RecordResponse `json:"records"`
	Statistics Statistics       `json:"statistics"`
}

type ListQuery struct {
	EmployeeID *string
	From       *string
	To         *string
	Limit      int
	Offset     int
}

// 管理ダッシュボードのサマリ
type DashboardStats struct {
	TotalEmployees      int64   `json:"total_employees"`
	TodayAttendance     int64   `json:"today_attendance"`
	AttendanceRateToday float64 `json:"attendance_rate_today"`
	WeeklyAttendance    int64   `json:"weekly_attendance"`
}
