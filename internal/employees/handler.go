package employees

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codtecs-backend/internal/platform/auth"
)

type Handler struct{ svc *Service }

// 管理者用（/api/admin 配下）
func RegisterAdminRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/employees", h.List)
	r.POST("/employees", h.Create)
	r.DELETE("/employees/:employee_id", h.Delete)
	r.POST("/employees/:employee_id/enable-login", h.EnableLogin)
	r.POST("/employees/:employee_id/reset-password", h.ResetPassword)
}

// 社員用（/api/employee 配下）
func RegisterEmployeeRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/profile", h.Profile)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.Header("Location", "/api/admin/employees/"+res.Employee.EmployeeID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("employee_id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "employee deleted"})
}

func (h *Handler) EnableLogin(c *gin.Context) {
	id := c.Param("employee_id")
	creds, err := h.svc.EnableLogin(c.Request.Context(), id)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":           "login enabled",
		"login_credentials": creds,
	})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	id := c.Param("employee_id")
	creds, err := h.svc.ResetPassword(c.Request.Context(), id)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "password reset",
		"new_credentials": creds,
	})
}

func (h *Handler) Profile(c *gin.Context) {
	id := c.GetString(auth.CtxUserIDKey)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	res, err := h.svc.Profile(c.Request.Context(), id)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
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
