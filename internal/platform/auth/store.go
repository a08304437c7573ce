package auth

import (
	"context"
	"database/sql"
	"errors"
)

// Credential Store の読み取り面。秘密情報(ハッシュ)はこのパッケージ経由でのみ参照する。
// 書き込み(付与・リセット)は employees 側のライフサイクル処理が行単位ロックの中で行う。

type Admin struct {
	Username     string
	PasswordHash string
}

type EmployeeCredential struct {
	EmployeeID   string
	Name         string
	Email        string
	Department   string
	PasswordHash *string
	HasLogin     bool
}

type CredentialStore interface {
	GetAdmin(ctx context.Context, username string) (*Admin, error)
	GetEmployee(ctx context.Context, employeeID string) (*EmployeeCredential, error)
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) CredentialStore {
	return &Store{db: db}
}

func (s *Store) GetAdmin(ctx context.Context, username string) (*Admin, error) {
	const q = `
SELECT username, password_hash
FROM admins
WHERE username = ?
LIMIT 1
`
	var a Admin
	err := s.db.QueryRowContext(ctx, q, username).Scan(&a.Username, &a.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (*EmployeeCredential, error) {
	const q = `
SELECT employee_id, name, email, department, password_hash, has_login
FROM employees
WHERE employee_id = ?
LIMIT 1
`
	var (
		e           EmployeeCredential
		hash        sql.NullString
		hasLoginInt int
	)
	err := s.db.QueryRowContext(ctx, q, employeeID).Scan(
		&e.EmployeeID,
		&e.Name,
		&e.Email,
		&e.Department,
		&hash,
		&hasLoginInt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if hash.Valid {
		e.PasswordHash = &hash.String
	}
	if hasLoginInt != 0 {
		e.HasLogin = true
	}
	return &e, nil
}
