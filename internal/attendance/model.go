package attendance

import "time"

// DB行に対応（スキャン用）
type attendanceRow struct {
	RecordID    string
	EmployeeID  string
	Name        string
	CheckInTime time.Time
	Method      string
}

type Attendance struct {
	RecordID    string
	EmployeeID  string
	Name        string
	CheckInTime time.Time
	Method      string
}

func (r attendanceRow) toModel() Attendance {
	a := Attendance(r)
	a.CheckInTime = a.CheckInTime.UTC()
	return a
}

func (a Attendance) toDTO() RecordResponse {
	return RecordResponse{
		ID:                 a.RecordID,
		EmployeeID:         a.EmployeeID,
		Name:               a.Name,
		CheckInTime:        a.CheckInTime,
		VerificationMethod: a.Method,
		Date:               a.CheckInTime.Format(DateLayout),
	}
}
