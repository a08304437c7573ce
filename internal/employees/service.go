package employees

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"codtecs-backend/internal/platform/auth"
	"codtecs-backend/internal/platform/db"
)

// ===== Error model (attendance/checkin と同型) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeDuplicate       Code = "DUPLICATE_IDENTIFIER"
	CodeAlreadyEnabled  Code = "ALREADY_ENABLED"
	CodeLoginNotEnabled Code = "LOGIN_NOT_ENABLED"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func ErrInvalid(msg string) *APIError   { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError  { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrDuplicate(msg string) *APIError { return &APIError{Code: CodeDuplicate, Message: msg} }
func ErrAlreadyEnabled(msg string) *APIError {
	return &APIError{Code: CodeAlreadyEnabled, Message: msg}
}
func ErrLoginNotEnabled(msg string) *APIError {
	return &APIError{Code: CodeLoginNotEnabled, Message: msg}
}
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		case CodeDuplicate, CodeAlreadyEnabled, CodeLoginNotEnabled:
			return 409
		default:
			return 500
		}
	}
	return 500
}

// ===== Service =====

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(conn *sql.DB) *Service {
	return &Service{db: conn, store: NewStore(conn)}
}

// 入力の表記ゆれを正規化（NFC）。メールは小文字に寄せる。
func normalizeField(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// POST /admin/employees
func (s *Service) Create(ctx context.Context, req CreateEmployeeRequest) (CreateEmployeeResponse, error) {
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.Name = normalizeField(req.Name)
	req.Email = strings.ToLower(normalizeField(req.Email))
	req.Department = normalizeField(req.Department)

	if req.EmployeeID == "" {
		return CreateEmployeeResponse{}, ErrInvalid("employee_id is required")
	}
	if req.Name == "" {
		return CreateEmployeeResponse{}, ErrInvalid("name is required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return CreateEmployeeResponse{}, ErrInvalid("valid email is required")
	}

	emp := Employee{
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
	}

	var creds *LoginCredentials
	if req.CreateLogin {
		plain, err := auth.GeneratePassword()
		if err != nil {
			return CreateEmployeeResponse{}, ErrInternal("password generation failed")
		}
		hash, err := auth.HashPassword(plain)
		if err != nil {
			return CreateEmployeeResponse{}, ErrInternal("password hashing failed")
		}
		emp.PasswordHash = &hash
		emp.HasLogin = true
		creds = &LoginCredentials{EmployeeID: emp.EmployeeID, Password: plain}
	}

	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		return s.store.Insert(ctx, tx, &emp)
	})
	if err != nil {
		return CreateEmployeeResponse{}, err
	}

	return CreateEmployeeResponse{
		Message:          "employee created",
		Employee:         emp.toDTO(),
		LoginCredentials: creds,
	}, nil
}

// GET /admin/employees
func (s *Service) List(ctx context.Context) ([]EmployeeResponse, error) {
	emps, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]EmployeeResponse, 0, len(emps))
	for i := range emps {
		out = append(out, emps[i].toDTO())
	}
	return out, nil
}

// GET /employee/profile
func (s *Service) Profile(ctx context.Context, employeeID string) (ProfileResponse, error) {
	emp, err := s.store.GetByID(ctx, employeeID)
	if err != nil {
		return ProfileResponse{}, err
	}
	if emp == nil {
		return ProfileResponse{}, ErrNotFound("employee not found")
	}
	return emp.toProfile(), nil
}

// POST /admin/employees/:employee_id/enable-login
// 行ロック(FOR UPDATE)で社員ごとに直列化する。生成した平文は戻り値で一度だけ返す。
func (s *Service) EnableLogin(ctx context.Context, employeeID string) (LoginCredentials, error) {
	var creds LoginCredentials
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		emp, err := s.store.GetForUpdate(ctx, tx, employeeID)
		if err != nil {
			return err
		}
		if emp == nil {
			return ErrNotFound("employee not found")
		}
		if emp.HasLogin {
			return ErrAlreadyEnabled("login is already enabled")
		}

		plain, err := auth.GeneratePassword()
		if err != nil {
			return ErrInternal("password generation failed")
		}
		hash, err := auth.HashPassword(plain)
		if err != nil {
			return ErrInternal("password hashing failed")
		}
		if err := s.store.SetPassword(ctx, tx, employeeID, hash); err != nil {
			return err
		}
		creds = LoginCredentials{EmployeeID: employeeID, Password: plain}
		return nil
	})
	if err != nil {
		return LoginCredentials{}, err
	}
	return creds, nil
}

// POST /admin/employees/:employee_id/reset-password
// 発行済みセッショントークンは失効させない（自然expまで有効）。
func (s *Service) ResetPassword(ctx context.Context, employeeID string) (LoginCredentials, error) {
	var creds LoginCredentials
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		emp, err := s.store.GetForUpdate(ctx, tx, employeeID)
		if err != nil {
			return err
		}
		if emp == nil {
			return ErrNotFound("employee not found")
		}
		if !emp.HasLogin {
			return ErrLoginNotEnabled("login is not enabled")
		}

		plain, err := auth.GeneratePassword()
		if err != nil {
			return ErrInternal("password generation failed")
		}
		hash, err := auth.HashPassword(plain)
		if err != nil {
			return ErrInternal("password hashing failed")
		}
		if err := s.store.SetPassword(ctx, tx, employeeID, hash); err != nil {
			return err
		}
		creds = LoginCredentials{EmployeeID: employeeID, Password: plain}
		return nil
	})
	if err != nil {
		return LoginCredentials{}, err
	}
	return creds, nil
}

// DELETE /admin/employees/:employee_id
// 勤怠レコードは消さない（削除後も統計は照会可能）。
func (s *Service) Delete(ctx context.Context, employeeID string) error {
	n, err := s.store.Delete(ctx, employeeID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound("employee not found")
	}
	return nil
}
