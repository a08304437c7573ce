package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type fakeStore struct {
	admins    map[string]*Admin
	employees map[string]*EmployeeCredential
}

func (f *fakeStore) GetAdmin(_ context.Context, username string) (*Admin, error) {
	return f.admins[username], nil
}

func (f *fakeStore) GetEmployee(_ context.Context, id string) (*EmployeeCredential, error) {
	return f.employees[id], nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	adminHash, err := HashPassword("admin-pass")
	if err != nil {
		t.Fatal(err)
	}
	empHash, err := HashPassword("emp-pass")
	if err != nil {
		t.Fatal(err)
	}

	store := &fakeStore{
		admins: map[string]*Admin{
			"boss": {Username: "boss", PasswordHash: adminHash},
		},
		employees: map[string]*EmployeeCredential{
			"EMP001": {
				EmployeeID:   "EMP001",
				Name:         "Taro Yamada",
				Email:        "taro@example.com",
				Department:   "Engineering",
				PasswordHash: &empHash,
				HasLogin:     true,
			},
			"EMP002": {
				EmployeeID: "EMP002",
				Name:       "Hanako Sato",
				Email:      "hanako@example.com",
				Department: "Sales",
				HasLogin:   false,
			},
		},
	}
	return &Service{store: store, secret: []byte("test-secret"), ttl: time.Hour}
}

func TestLoginAdminSuccess(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.LoginAdmin(context.Background(), "boss", "admin-pass")
	if err != nil {
		t.Fatalf("LoginAdmin failed: %v", err)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		t.Fatalf("minted token should parse: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != "boss" || claims["role"] != RoleAdmin {
		t.Errorf("unexpected claims: %v", claims)
	}
}

func TestLoginAdminFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestService(t)

	// 存在しないID / パスワード不一致 が同一のエラー種で返ること
	_, errUnknown := svc.LoginAdmin(context.Background(), "nobody", "whatever")
	_, errWrongPw := svc.LoginAdmin(context.Background(), "boss", "wrong")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Errorf("unknown id: got %v", errUnknown)
	}
	if !errors.Is(errWrongPw, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v", errWrongPw)
	}
}

func TestLoginEmployeeSuccess(t *testing.T) {
	svc := newTestService(t)

	token, info, err := svc.LoginEmployee(context.Background(), "EMP001", "emp-pass")
	if err != nil {
		t.Fatalf("LoginEmployee failed: %v", err)
	}
	if token == "" {
		t.Fatal("token should not be empty")
	}
	if info == nil || info.EmployeeID != "EMP001" || info.Name != "Taro Yamada" {
		t.Errorf("unexpected user info: %+v", info)
	}
}

func TestLoginEmployeeFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestService(t)

	_, _, errUnknown := svc.LoginEmployee(context.Background(), "NOPE", "x")
	_, _, errNoLogin := svc.LoginEmployee(context.Background(), "EMP002", "x")
	_, _, errWrongPw := svc.LoginEmployee(context.Background(), "EMP001", "wrong")

	for name, err := range map[string]error{
		"unknown":       errUnknown,
		"login not set": errNoLogin,
		"wrong pw":      errWrongPw,
	} {
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("%s: got %v, want ErrInvalidCredentials", name, err)
		}
	}
}
