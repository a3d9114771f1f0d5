package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"shiftcare/internal/service"
	"shiftcare/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// exportRangeQuery 导出日期范围参数
type exportRangeQuery struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02"`
	End   time.Time `form:"end"   binding:"required" time_format:"2006-01-02"`
}

// ExportTimesheets 导出机构工时表为 Excel
// GET /api/v1/export/timesheets?start=2026-01-01&end=2026-01-31
func (h *ExportHandler) ExportTimesheets(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	var q exportRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportTimesheets(c.Request.Context(), orgID, q.Start, q.End)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNoData):
			response.NotFound(c, 19101, "所选区间内无可导出数据")
		default:
			response.InternalError(c)
		}
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// AvailabilityFeed 导出员工可用性 ICS 日历订阅
// GET /api/v1/export/availability.ics?user_id=xxx&start=2026-01-01&end=2026-01-31
func (h *ExportHandler) AvailabilityFeed(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	userID := c.Query("user_id")
	if userID == "" {
		response.BadRequest(c, 10001, "user_id 不能为空")
		return
	}

	var q exportRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	feed, err := h.exportSvc.AvailabilityFeed(c.Request.Context(), orgID, userID, q.Start, q.End)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNoData):
			response.NotFound(c, 19101, "所选区间内无可导出数据")
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", "attachment; filename=availability.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}
