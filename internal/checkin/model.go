package checkin

import "time"

const dateLayout = "2006-01-02"

// Record: 追記専用。作成後に更新・削除されることはない。
// name は打刻時点のスナップショット（社員削除後もレコードが自立するように）。
type Record struct {
	RecordID    string
	EmployeeID  string
	Name        string
	CheckInTime time.Time
	Method      string
}

func (r Record) toDTO() RecordResponse {
	return RecordResponse{
		ID:                 r.RecordID,
		EmployeeID:         r.EmployeeID,
		Name:               r.Name,
		CheckInTime:        r.CheckInTime.UTC(),
		VerificationMethod: r.Method,
		Date:               r.CheckInTime.UTC().Format(dateLayout),
	}
}
