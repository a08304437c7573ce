package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// 認証失敗は原因を区別せずこれ一本で返す（ID列挙対策）。
var ErrInvalidCredentials = errors.New("authentication failed")

type EmployeeInfo struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type Service struct {
	store  CredentialStore
	secret []byte
	ttl    time.Duration
}

func NewService(db *sql.DB, secret []byte, ttl time.Duration) *Service {
	return &Service{store: NewStore(db), secret: secret, ttl: ttl}
}

type AuthService interface {
	LoginAdmin(ctx context.Context, username, password string) (string, error)
	LoginEmployee(ctx context.Context, employeeID, password string) (string, *EmployeeInfo, error)
}

// MintToken: (sub, role, exp) をHS256で署名する。発行後は不変、更新は再発行のみ。
func MintToken(secret []byte, sub, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}

func (s *Service) LoginAdmin(ctx context.Context, username, password string) (string, error) {
	admin, err := s.store.GetAdmin(ctx, username)
	if err != nil {
		return "", err
	}
	if admin == nil {
		compareDummy(password)
		return "", ErrInvalidCredentials
	}
	if !CheckPassword(admin.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	return MintToken(s.secret, admin.Username, RoleAdmin, s.ttl)
}

func (s *Service) LoginEmployee(ctx context.Context, employeeID, password string) (string, *EmployeeInfo, error) {
	emp, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return "", nil, err
	}
	// 不存在・ログイン未付与・パスワード不一致はいずれも同じ失敗を返す
	if emp == nil || !emp.HasLogin || emp.PasswordHash == nil {
		compareDummy(password)
		return "", nil, ErrInvalidCredentials
	}
	if !CheckPassword(*emp.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := MintToken(s.secret, emp.EmployeeID, RoleEmployee, s.ttl)
	if err != nil {
		return "", nil, err
	}
	info := &EmployeeInfo{
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		Email:      emp.Email,
		Department: emp.Department,
	}
	return token, info, nil
}
