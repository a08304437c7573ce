package checkin

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"codtecs-backend/internal/qrtoken"
)

// ===== Error model (employees/attendance と同型) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeMalformedToken  Code = "MALFORMED_TOKEN"
	CodeUnknownEmployee Code = "UNKNOWN_EMPLOYEE"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func ErrInvalid(msg string) *APIError   { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrMalformed(msg string) *APIError { return &APIError{Code: CodeMalformedToken, Message: msg} }
func ErrUnknownEmployee(msg string) *APIError {
	return &APIError{Code: CodeUnknownEmployee, Message: msg}
}
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument, CodeMalformedToken:
			return 400
		case CodeUnknownEmployee:
			return 404
		default:
			return 500
		}
	}
	return 500
}

// ===== インターフェース群 =====

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type IDGen interface {
	New() (string, error)
}

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ===== Service本体 =====

type Service struct {
	store *Store
	codec *qrtoken.Codec
	clock Clock
	id    IDGen
}

func NewService(conn *sql.DB, codec *qrtoken.Codec) *Service {
	return &Service{
		store: NewStore(conn),
		codec: codec,
		clock: realClock{},
		id:    ulidGen{},
	}
}

// Enroll: 社員の現行qr_versionで署名付きペイロードを発行する。
// 決定的なので再取得してもQR画像は変わらない（ローテートするまで）。
func (s *Service) Enroll(ctx context.Context, employeeID string) (QRCodeResponse, error) {
	if employeeID == "" {
		return QRCodeResponse{}, ErrInvalid("employee_id is required")
	}
	emp, err := s.store.GetEmployeeQR(ctx, employeeID)
	if err != nil {
		return QRCodeResponse{}, err
	}
	if emp == nil {
		return QRCodeResponse{}, ErrUnknownEmployee("employee not found")
	}
	data, err := s.codec.Encode(employeeID, emp.QRVersion)
	if err != nil {
		return QRCodeResponse{}, ErrInternal("qr encoding failed")
	}
	return QRCodeResponse{QRData: data}, nil
}

// Verify: ペイロードを検証して社員IDを返す。
// 復号・署名不一致 → MALFORMED_TOKEN / 社員不存在 → UNKNOWN_EMPLOYEE /
// バージョン不一致（ローテート済み） → MALFORMED_TOKEN
func (s *Service) Verify(ctx context.Context, payload string) (string, string, error) {
	p, err := s.codec.Decode(payload)
	if err != nil {
		return "", "", ErrMalformed("invalid qr payload")
	}
	emp, err := s.store.GetEmployeeQR(ctx, p.EmployeeID)
	if err != nil {
		return "", "", err
	}
	if emp == nil {
		return "", "", ErrUnknownEmployee("employee not found")
	}
	if p.Version != emp.QRVersion {
		return "", "", ErrMalformed("qr code is no longer active")
	}
	return p.EmployeeID, emp.Name, nil
}

// CheckInQR: スキャナ経由の打刻。QRは所持要素でありパスワードは要求しない。
func (s *Service) CheckInQR(ctx context.Context, payload string) (RecordResponse, error) {
	employeeID, name, err := s.Verify(ctx, payload)
	if err != nil {
		return RecordResponse{}, err
	}
	return s.append(ctx, employeeID, name, MethodQROnly)
}

// CheckInManual: 管理者による手入力打刻（スキャナが使えない時の代替経路）。
func (s *Service) CheckInManual(ctx context.Context, employeeID string) (RecordResponse, error) {
	if employeeID == "" {
		return RecordResponse{}, ErrInvalid("employee_id is required")
	}
	emp, err := s.store.GetEmployeeQR(ctx, employeeID)
	if err != nil {
		return RecordResponse{}, err
	}
	if emp == nil {
		return RecordResponse{}, ErrUnknownEmployee("employee not found")
	}
	return s.append(ctx, employeeID, emp.Name, MethodManual)
}

func (s *Service) append(ctx context.Context, employeeID, name, method string) (RecordResponse, error) {
	recordID, err := s.id.New()
	if err != nil {
		return RecordResponse{}, ErrInternal("id generation failed")
	}
	rec := Record{
		RecordID:    recordID,
		EmployeeID:  employeeID,
		Name:        name,
		CheckInTime: s.clock.Now().UTC(),
		Method:      method,
	}
	if err := s.store.InsertRecord(ctx, &rec); err != nil {
		return RecordResponse{}, err
	}
	return rec.toDTO(), nil
}

// Rotate: 明示的なQRローテーション。旧コードは即時失効する。
func (s *Service) Rotate(ctx context.Context, employeeID string) error {
	n, err := s.store.BumpQRVersion(ctx, employeeID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUnknownEmployee("employee not found")
	}
	return nil
}
