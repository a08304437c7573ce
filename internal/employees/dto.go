package employees

type CreateEmployeeRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Department  string `json:"department"`
	CreateLogin bool   `json:"create_login"`
}

type EmployeeResponse struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	HasLogin   bool   `json:"has_login"`
}

// 管理画面のプロフィール表示用（認証情報の有無は出さない）
type ProfileResponse struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// LoginCredentials: 生成パスワードを管理者へ一度だけ提示する。保存はハッシュのみ。
type LoginCredentials struct {
	EmployeeID string `json:"employee_id"`
	Password   string `json:"password"`
}

type CreateEmployeeResponse struct {
	Message          string            `json:"message"`
	Employee         EmployeeResponse  `json:"employee"`
	LoginCredentials *LoginCredentials `json:"login_credentials,omitempty"`
}
