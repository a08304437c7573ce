package employees

import (
	"context"
	"database/sql"
	"errors"

	mysql "github.com/go-sql-driver/mysql"
)

type DBTX interface {
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row
}

type Store struct{ db DBTX }

func NewStore(db DBTX) *Store { return &Store{db: db} }

const employeeColumns = `employee_id, name, email, department, password_hash, has_login, qr_version, created_at`

func scanEmployee(row *sql.Row) (*Employee, error) {
	var (
		r           employeeRow
		hash        sql.NullString
		hasLoginInt int
	)
	err := row.Scan(&r.EmployeeID, &r.Name, &r.Email, &r.Department, &hash, &hasLoginInt, &r.QRVersion, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if hash.Valid {
		r.PasswordHash = &hash.String
	}
	r.HasLogin = hasLoginInt != 0
	m := r.toModel()
	return &m, nil
}

// Insert: PK重複はErrDuplicateに変換して返す
func (s *Store) Insert(ctx context.Context, tx DBTX, e *Employee) error {
	const q = `
INSERT INTO employees (employee_id, name, email, department, password_hash, has_login, qr_version, created_at)
VALUES (?, ?, ?, ?, ?, ?, 1, UTC_TIMESTAMP(6))
`
	hash := any(nil)
	if e.PasswordHash != nil {
		hash = *e.PasswordHash
	}
	hasLogin := 0
	if e.HasLogin {
		hasLogin = 1
	}
	_, err := tx.ExecContext(ctx, q, e.EmployeeID, e.Name, e.Email, e.Department, hash, hasLogin)
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return ErrDuplicate("employee_id already exists")
	}
	return err
}

func (s *Store) GetByID(ctx context.Context, employeeID string) (*Employee, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+employeeColumns+`
FROM employees
WHERE employee_id = ?
LIMIT 1`, employeeID)
	return scanEmployee(row)
}

// GetForUpdate: 認証情報の更新はこの行ロックの中で直列化する（生成パスワードの取り違え防止）
func (s *Store) GetForUpdate(ctx context.Context, tx DBTX, employeeID string) (*Employee, error) {
	row := tx.QueryRowContext(ctx, `
SELECT `+employeeColumns+`
FROM employees
WHERE employee_id = ?
LIMIT 1
FOR UPDATE`, employeeID)
	return scanEmployee(row)
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+employeeColumns+`
FROM employees
ORDER BY employee_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var (
			r           employeeRow
			hash        sql.NullString
			hasLoginInt int
		)
		if err := rows.Scan(&r.EmployeeID, &r.Name, &r.Email, &r.Department, &hash, &hasLoginInt, &r.QRVersion, &r.CreatedAt); err != nil {
			return nil, err
		}
		if hash.Valid {
			r.PasswordHash = &hash.String
		}
		r.HasLogin = hasLoginInt != 0
		out = append(out, r.toModel())
	}
	return out, rows.Err()
}

func (s *Store) SetPassword(ctx context.Context, tx DBTX, employeeID, passwordHash string) error {
	const q = `UPDATE employees SET password_hash = ?, has_login = 1 WHERE employee_id = ?`
	_, err := tx.ExecContext(ctx, q, passwordHash, employeeID)
	return err
}

// Delete: 勤怠レコードは監査用に残す（FKカスケードなし）
func (s *Store) Delete(ctx context.Context, employeeID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE employee_id = ?`, employeeID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
