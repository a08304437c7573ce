package checkin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codtecs-backend/internal/platform/auth"
)

type Handler struct{ svc *Service }

// スキャナ端末用（/api 直下、認証なし。QRそのものが所持要素）
func RegisterPublicRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.POST("/checkin", h.CheckInQR)
}

// 社員用（/api/employee 配下）
func RegisterEmployeeRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/qr-code", h.QRCode)
}

// 管理者用（/api/admin 配下）
func RegisterAdminRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.POST("/checkin", h.CheckInManual)
	r.POST("/employees/:employee_id/rotate-qr", h.RotateQR)
}

func (h *Handler) CheckInQR(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	rec, err := h.svc.CheckInQR(c.Request.Context(), req.QRData)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "attendance marked",
		"record":  rec,
	})
}

func (h *Handler) CheckInManual(c *gin.Context) {
	var req ManualCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	rec, err := h.svc.CheckInManual(c.Request.Context(), req.EmployeeID)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "attendance marked",
		"record":  rec,
	})
}

func (h *Handler) QRCode(c *gin.Context) {
	id := c.GetString(auth.CtxUserIDKey)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	res, err := h.svc.Enroll(c.Request.Context(), id)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) RotateQR(c *gin.Context) {
	id := c.Param("employee_id")
	if err := h.svc.Rotate(c.Request.Context(), id); err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "qr code rotated"})
}

// ===== helpers =====

type errDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func apiErr(code Code, msg string) errDTO {
	var e errDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func apiErrFrom(err error) errDTO {
	if api, ok := err.(*APIError); ok {
		return apiErr(api.Code, api.Message)
	}
	return apiErr(CodeInternal, err.Error())
}
