package checkin

import "time"

const (
	MethodQROnly = "qr_only"
	MethodManual = "manual"
)

// スキャナ端末からの打刻（QRの中身をそのまま送る）
type CheckInRequest struct {
	QRData string `json:"qr_data" binding:"required"`
}

// 管理者による手入力打刻
type ManualCheckInRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
}

type QRCodeResponse struct {
	QRData string `json:"qr_data"`
}

// フロントは _id / employee_id / name / check_in_time / verification_method に直接バインドする
type RecordResponse struct {
	ID                 string    `json:"_id"`
	EmployeeID         string    `json:"employee_id"`
	Name               string    `json:"name"`
	CheckInTime        time.Time `json:"check_in_time"`
	VerificationMethod string    `json:"verification_method"`
	Date               string    `json:"date"`
}
