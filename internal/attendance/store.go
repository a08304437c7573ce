package attendance

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"codtecs-backend/internal/platform/db"
)

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

const recordColumns = `record_ulid, employee_id, name, check_in_time, verification_method`

// ListMonth: 指定社員の [from, to) 区間のレコード（打刻順）
func (s *Store) ListMonth(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error) {
	const q = `
SELECT ` + recordColumns + `
FROM attendances
WHERE employee_id = ? AND check_in_time >= ? AND check_in_time < ?
ORDER BY check_in_time ASC, record_ulid ASC`
	rows, err := s.db.QueryContext(ctx, q, employeeID, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// List: 条件に応じて動的WHERE + LIMIT/OFFSET（新しい打刻が先頭）
func (s *Store) List(ctx context.Context, q ListQuery) ([]Attendance, int64, error) {
	var (
		buf    bytes.Buffer
		args   []any
		wheres []string
	)

	buf.WriteString(`
SELECT ` + recordColumns + `
FROM attendances
`)
	if q.EmployeeID != nil && *q.EmployeeID != "" {
		wheres = append(wheres, "employee_id = ?")
		args = append(args, *q.EmployeeID)
	}
	if q.From != nil && *q.From != "" {
		wheres = append(wheres, "check_in_time >= ?")
		args = append(args, *q.From)
	}
	if q.To != nil && *q.To != "" {
		wheres = append(wheres, "check_in_time < ?")
		args = append(args, *q.To)
	}
	if len(wheres) > 0 {
		buf.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}

	buf.WriteString(" ORDER BY check_in_time DESC, record_ulid DESC")
	buf.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", clampLimit(q.Limit), q.Offset))

	rows, err := s.db.QueryContext(ctx, buf.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := scanRecords(rows)
	if err != nil {
		return nil, 0, err
	}

	// COUNT（ORDER BY より前までを再構築）
	var cntBuf bytes.Buffer
	cntBuf.WriteString("SELECT COUNT(*) FROM attendances")
	if len(wheres) > 0 {
		cntBuf.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}
	var total int64
	if err := s.db.QueryRowContext(ctx, cntBuf.String(), args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func scanRecords(rows *sql.Rows) ([]Attendance, error) {
	var out []Attendance
	for rows.Next() {
		var r attendanceRow
		if err := rows.Scan(&r.RecordID, &r.EmployeeID, &r.Name, &r.CheckInTime, &r.Method); err != nil {
			return nil, err
		}
		out = append(out, r.toModel())
	}
	return out, rows.Err()
}

// ===== ダッシュボード用集計 =====

// DashboardCounts: 社員総数・当日出勤者数・週間の(社員,日付)組数。
// 3クエリを読み取り専用Txで同一スナップショットから取る（集計途中の打刻で数字がずれないように）。
func (s *Store) DashboardCounts(ctx context.Context, dayStart, dayEnd, weekStart time.Time) (total, today, weekly int64, err error) {
	err = db.ReadOnly(ctx, s.db, func(ctx context.Context, tx db.DBTX) error {
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&total); err != nil {
			return err
		}

		// 重複打刻は1人と数える
		const present = `
SELECT COUNT(DISTINCT employee_id)
FROM attendances
WHERE check_in_time >= ? AND check_in_time < ?`
		if err := tx.QueryRowContext(ctx, present, dayStart.UTC(), dayEnd.UTC()).Scan(&today); err != nil {
			return err
		}

		const days = `
SELECT COUNT(DISTINCT employee_id, DATE(check_in_time))
FROM attendances
WHERE check_in_time >= ? AND check_in_time < ?`
		return tx.QueryRowContext(ctx, days, weekStart.UTC(), dayEnd.UTC()).Scan(&weekly)
	})
	return total, today, weekly, err
}
