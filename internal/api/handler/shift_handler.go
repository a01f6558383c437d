package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/alghaibb/everkind-community-support-sub000/internal/dto"
	"github.com/alghaibb/everkind-community-support-sub000/internal/service"
	"github.com/alghaibb/everkind-community-support-sub000/pkg/response"
)

// ShiftHandler 班次与班次申请模块 HTTP 处理器
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler 创建 ShiftHandler
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// Create 发布开放班次
// POST /api/v1/shifts
func (h *ShiftHandler) Create(c *gin.Context) {
	var req dto.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	adminID, ok := MustGetAccountID(c)
	if !ok {
		return
	}

	result, err := h.shiftSvc.CreateShift(c.Request.Context(), &req, adminID)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.Created(c, result)
}

// Update 更新班次
// PUT /api/v1/shifts/:id
func (h *ShiftHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "班次ID不能为空")
		return
	}

	var req dto.UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	adminID, ok := MustGetAccountID(c)
	if !ok {
		return
	}

	if err := h.shiftSvc.UpdateShift(c.Request.Context(), id, &req, adminID); err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, nil)
}

// Delete 删除班次
// DELETE /api/v1/shifts/:id
func (h *ShiftHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "班次ID不能为空")
		return
	}

	adminID, ok := MustGetAccountID(c)
	if !ok {
		return
	}

	if err := h.shiftSvc.DeleteShift(c.Request.Context(), id, adminID); err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, nil)
}

// List 班次列表
// GET /api/v1/shifts
func (h *ShiftHandler) List(c *gin.Context) {
	var req dto.ShiftListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.shiftSvc.ListShifts(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Request 员工申领开放班次
// POST /api/v1/shift-requests
func (h *ShiftHandler) Request(c *gin.Context) {
	var req dto.ClaimShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	staffID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	result, err := h.shiftSvc.Request(c.Request.Context(), staffID, req.ShiftID)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.Created(c, result)
}

// Approve 批准班次申请
// PUT /api/v1/shift-requests/:id/approve
func (h *ShiftHandler) Approve(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	adminID, ok := MustGetAccountID(c)
	if !ok {
		return
	}

	if err := h.shiftSvc.Approve(c.Request.Context(), id, adminID); err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, nil)
}

// Reject 驳回班次申请
// PUT /api/v1/shift-requests/:id/reject
func (h *ShiftHandler) Reject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	var req dto.RejectShiftRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	adminID, ok := MustGetAccountID(c)
	if !ok {
		return
	}

	if err := h.shiftSvc.Reject(c.Request.Context(), id, req.Reason, adminID); err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListRequests 班次申请列表
// GET /api/v1/shift-requests
func (h *ShiftHandler) ListRequests(c *gin.Context) {
	var req dto.ShiftRequestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	// 员工只能看自己的申请
	if role, ok := MustGetRole(c); !ok {
		return
	} else if role != "admin" {
		staffID, ok := MustGetStaffID(c)
		if !ok {
			return
		}
		req.StaffID = staffID
	}

	list, total, err := h.shiftSvc.ListRequests(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// handleShiftError 统一处理班次模块业务错误
func (h *ShiftHandler) handleShiftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 15001, "班次不存在")
	case errors.Is(err, service.ErrShiftRequestNotFound):
		response.NotFound(c, 15002, "班次申请不存在")
	case errors.Is(err, service.ErrAlreadyRequested):
		response.Conflict(c, 15003, "已申请过该班次")
	case errors.Is(err, service.ErrShiftUnavailable):
		response.Conflict(c, 15004, "该班次已被认领")
	case errors.Is(err, service.ErrShiftTimeConflict):
		response.Conflict(c, 15005, "该时段与已有安排冲突")
	case errors.Is(err, service.ErrShiftRequestDecided):
		response.Conflict(c, 15006, "班次申请已裁决")
	case errors.Is(err, service.ErrInvalidShiftTime):
		response.BadRequest(c, 15007, "班次起止时间非法")
	case errors.Is(err, service.ErrParticipantNotFound):
		response.NotFound(c, 14001, "参与者不存在")
	case errors.Is(err, service.ErrParticipantNotSchedulable):
		response.Conflict(c, 14005, "参与者当前不可排班")
	case errors.Is(err, service.ErrStaffNotFound):
		response.NotFound(c, 13001, "员工不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/shift_handler.go
