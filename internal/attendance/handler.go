package attendance

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"codtecs-backend/internal/platform/auth"
)

type Handler struct{ svc *Service }

// 社員用（/api/employee 配下）
func RegisterEmployeeRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/attendance", h.Monthly)
}

// 管理者用（/api/admin 配下）
func RegisterAdminRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/attendance", h.AdminList)
	r.GET("/stats", h.Dashboard)
}

// GET /employee/attendance?month=&year= （未指定は当月）
func (h *Handler) Monthly(c *gin.Context) {
	id := c.GetString(auth.CtxUserIDKey)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	// 未指定(0)は service が Clock 基準で当月に補完する
	month := atoiDef(c.Query("month"), 0)
	year := atoiDef(c.Query("year"), 0)

	res, err := h.svc.Monthly(c.Request.Context(), id, month, year)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) AdminList(c *gin.Context) {
	var q ListQuery
	if v := c.Query("employee_id"); v != "" {
		q.EmployeeID = &v
	}
	if v := c.Query("from"); v != "" {
		q.From = &v
	}
	if v := c.Query("to"); v != "" {
		q.To = &v
	}
	// next_offset は実際に返した行数で進める必要があるため、ここで確定させる
	q.Limit = clampLimit(atoiDef(c.Query("limit"), DefaultPageLimit))
	q.Offset = atoiDef(c.Query("offset"), 0)

	items, total, err := h.svc.AdminList(c.Request.Context(), q)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "next_offset": nextOffset(total, q)})
}

func (h *Handler) Dashboard(c *gin.Context) {
	res, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// ===== helpers =====

func atoiDef(s string, d int) int {
	if s == "" {
		return d
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return n
}

func nextOffset(total int64, q ListQuery) int {
	n := q.Offset + q.Limit
	if n >= int(total) {
		return 0
	}
	return n
}

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
