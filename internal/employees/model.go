package employees

import "time"

// DB行に対応（スキャン用）
type employeeRow struct {
	EmployeeID   string
	Name         string
	Email        string
	Department   string
	PasswordHash *string
	HasLogin     bool
	QRVersion    int
	CreatedAt    time.Time
}

type Employee struct {
	EmployeeID   string
	Name         string
	Email        string
	Department   string
	PasswordHash *string
	HasLogin     bool
	QRVersion    int
	CreatedAt    time.Time
}

func (r employeeRow) toModel() Employee {
	return Employee(r)
}

func (e Employee) toDTO() EmployeeResponse {
	return EmployeeResponse{
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		HasLogin:   e.HasLogin,
	}
}

func (e Employee) toProfile() ProfileResponse {
	return ProfileResponse{
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
	}
}
