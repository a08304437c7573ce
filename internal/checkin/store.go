package checkin

import (
	"context"
	"database/sql"
	"errors"
)

type DBTX interface {
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row
}

type Store struct{ db DBTX }

func NewStore(db DBTX) *Store { return &Store{db: db} }

type employeeQR struct {
	Name      string
	QRVersion int
}

func (s *Store) GetEmployeeQR(ctx context.Context, employeeID string) (*employeeQR, error) {
	const q = `
SELECT name, qr_version
FROM employees
WHERE employee_id = ?
LIMIT 1`
	var e employeeQR
	err := s.db.QueryRowContext(ctx, q, employeeID).Scan(&e.Name, &e.QRVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// InsertRecord: 同日重複はここでは弾かない（集計側で日単位に畳む）。
func (s *Store) InsertRecord(ctx context.Context, r *Record) error {
	const q = `
INSERT INTO attendances (record_ulid, employee_id, name, check_in_time, verification_method)
VALUES (?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q, r.RecordID, r.EmployeeID, r.Name, r.CheckInTime.UTC(), r.Method)
	return err
}

// BumpQRVersion: ローテーション。旧バージョンのQRは即時に検証不可となる。
func (s *Store) BumpQRVersion(ctx context.Context, employeeID string) (int64, error) {
	const q = `UPDATE employees SET qr_version = qr_version + 1 WHERE employee_id = ?`
	res, err := s.db.ExecContext(ctx, q, employeeID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
